package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BookingRepository implements domain.BookingsPort using MongoDB.
//
// Every booked night is also written to the booking_nights collection; its
// unique (listing_id, night) index is what prevents overlapping bookings.
type BookingRepository struct {
	bookings *mongo.Collection
	nights   *mongo.Collection
	now      func() time.Time
	logger   *logger.Logger
}

var _ domain.BookingsPort = (*BookingRepository)(nil)

// NewBookingRepository creates a new MongoDB booking repository.
func NewBookingRepository(db *mongo.Database, log *logger.Logger) (*BookingRepository, error) {
	bookings := db.Collection(bookingCollectionName)
	nights := db.Collection(bookingNightsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), defaultIndexCreateTimeout)
	defer cancel()

	_, err := bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "guest_id", Value: 1}, {Key: "check_out_date", Value: 1}}},
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "check_out_date", Value: 1}}},
	})
	if err != nil {
		log.Error("Failed to create indexes for bookings collection", zap.Error(err))
	}

	// Without this index overlapping bookings cannot be detected, so it is fatal.
	_, err = nights.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "listing_id", Value: 1}, {Key: "night", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes for %s: %w", bookingNightsCollection, err)
	}
	log.Info("Successfully ensured indexes for bookings collections")

	return &BookingRepository{
		bookings: bookings,
		nights:   nights,
		now:      time.Now,
		logger:   log.Named("BookingRepository"),
	}, nil
}

// IsListingAvailable reports whether no booked night falls inside stay.
// A nil stay means no dates were requested and the listing counts as available.
func (r *BookingRepository) IsListingAvailable(ctx context.Context, listingID string, stay *domain.DateRange) (bool, error) {
	if stay == nil {
		return true, nil
	}
	if err := stay.Validate(); err != nil {
		return false, err
	}

	count, err := r.nights.CountDocuments(ctx, bson.M{
		"listing_id": listingID,
		"night": bson.M{
			"$gte": domain.TruncateDay(stay.CheckInDate),
			"$lt":  domain.TruncateDay(stay.CheckOutDate),
		},
	}, options.Count().SetLimit(1))
	if err != nil {
		r.logger.Error("Failed to count booked nights", zap.String("listing_id", listingID), zap.Error(err))
		return false, fmt.Errorf("%w: db count failed: %v", domain.ErrRepository, err)
	}
	return count == 0, nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	doc, err := r.findOne(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *BookingRepository) GetBookingsForUser(ctx context.Context, guestID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	query, err := r.withStatus(bson.M{"guest_id": guestID}, status)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, query)
}

func (r *BookingRepository) GetBookingsForListing(ctx context.Context, listingID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	query, err := r.withStatus(bson.M{"listing_id": listingID}, status)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, query)
}

// GetCurrentlyBookedDateRangesForListing returns the listing's stays that have not ended yet.
func (r *BookingRepository) GetCurrentlyBookedDateRangesForListing(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	upcoming := domain.BookingStatusUpcoming
	bookings, err := r.GetBookingsForListing(ctx, listingID, &upcoming)
	if err != nil {
		return nil, err
	}
	ranges := make([]domain.DateRange, len(bookings))
	for i, b := range bookings {
		ranges[i] = b.Range()
	}
	return ranges, nil
}

// CreateBooking claims every night of the stay and then stores the booking.
// A night that is already claimed fails the call with ErrDateRangeUnavailable.
func (r *BookingRepository) CreateBooking(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	doc := &bookingDocument{
		ID:           primitive.NewObjectID(),
		ListingID:    params.ListingID,
		GuestID:      params.GuestID,
		CheckInDate:  domain.TruncateDay(params.Range.CheckInDate),
		CheckOutDate: domain.TruncateDay(params.Range.CheckOutDate),
		TotalCost:    params.TotalCost,
		CreatedAt:    r.now().UTC(),
	}

	nights := params.Range.EachNight()
	claims := make([]interface{}, len(nights))
	for i, night := range nights {
		claims[i] = bookingNightDocument{ListingID: params.ListingID, Night: night, BookingID: doc.ID}
	}

	if _, err := r.nights.InsertMany(ctx, claims); err != nil {
		r.releaseNights(doc.ID)
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Booking overlaps an existing booking", zap.String("listing_id", params.ListingID), zap.Error(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrDateRangeUnavailable)
		}
		r.logger.Error("Failed to claim booking nights", zap.String("listing_id", params.ListingID), zap.Error(err))
		return nil, fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}

	if _, err := r.bookings.InsertOne(ctx, doc); err != nil {
		r.releaseNights(doc.ID)
		r.logger.Error("Failed to insert booking into DB", zap.String("listing_id", params.ListingID), zap.Error(err))
		return nil, fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}

	r.logger.Info("Booking created successfully in DB", zap.String("booking_id", doc.ID.Hex()), zap.String("listing_id", doc.ListingID), zap.Int("nights", len(nights)))
	return doc.toDomain(), nil
}

func (r *BookingRepository) GetGuestIDForBooking(ctx context.Context, bookingID string) (string, error) {
	doc, err := r.findOne(ctx, bookingID, bson.M{"guest_id": 1})
	if err != nil {
		return "", err
	}
	return doc.GuestID, nil
}

func (r *BookingRepository) GetListingIDForBooking(ctx context.Context, bookingID string) (string, error) {
	doc, err := r.findOne(ctx, bookingID, bson.M{"listing_id": 1})
	if err != nil {
		return "", err
	}
	return doc.ListingID, nil
}

// GetHumanReadableDate formats t like "Jul 10, 2025".
func (r *BookingRepository) GetHumanReadableDate(t time.Time) string {
	return t.UTC().Format(domain.HumanReadableLayout)
}

// releaseNights removes the nights claimed by a booking that could not be stored.
// It runs detached from the request so a cancelled caller does not leak claims.
func (r *BookingRepository) releaseNights(bookingID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.nights.DeleteMany(ctx, bson.M{"booking_id": bookingID}); err != nil {
		r.logger.Error("Failed to release booking nights", zap.String("booking_id", bookingID.Hex()), zap.Error(err))
	}
}

// withStatus narrows query to the given status. A booking is UPCOMING until its
// check-out day has passed.
func (r *BookingRepository) withStatus(query bson.M, status *domain.BookingStatus) (bson.M, error) {
	if status == nil {
		return query, nil
	}
	today := domain.TruncateDay(r.now())
	switch *status {
	case domain.BookingStatusUpcoming:
		query["check_out_date"] = bson.M{"$gte": today}
	case domain.BookingStatusCompleted:
		query["check_out_date"] = bson.M{"$lt": today}
	default:
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, *status)
	}
	return query, nil
}

func (r *BookingRepository) findOne(ctx context.Context, id string, projection bson.M) (*bookingDocument, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doc bookingDocument
	if err := r.bookings.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Warn("Booking not found in DB", zap.String("booking_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get booking by ID from DB", zap.String("booking_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return &doc, nil
}

func (r *BookingRepository) find(ctx context.Context, query bson.M) ([]*domain.Booking, error) {
	cursor, err := r.bookings.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "check_in_date", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed to find bookings from DB", zap.Any("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	out := make([]*domain.Booking, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}
