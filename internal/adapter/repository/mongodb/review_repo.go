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
	zap "go.uber.org/zap"
)

// ReviewRepository implements domain.ReviewsPort using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

var _ domain.ReviewsPort = (*ReviewRepository)(nil)

// NewReviewRepository creates a new MongoDB review repository.
func NewReviewRepository(db *mongo.Database, log *logger.Logger) (*ReviewRepository, error) {
	collection := db.Collection(reviewCollectionName)

	indexes := []mongo.IndexModel{
		// One review per booking and target type; resubmissions are rejected.
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "target_type", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "target_type", Value: 1}, {Key: "target_id", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultIndexCreateTimeout)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("failed to create indexes for %s: %w", reviewCollectionName, err)
	}
	log.Info("Successfully ensured indexes for reviews collection")

	return &ReviewRepository{
		collection: collection,
		logger:     log.Named("ReviewRepository"),
	}, nil
}

func (r *ReviewRepository) CreateReviewForGuest(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	return r.create(ctx, domain.TargetGuest, params)
}

func (r *ReviewRepository) CreateReviewForHost(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	return r.create(ctx, domain.TargetHost, params)
}

func (r *ReviewRepository) CreateReviewForListing(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	return r.create(ctx, domain.TargetListing, params)
}

func (r *ReviewRepository) create(ctx context.Context, target domain.TargetType, params domain.CreateReviewParams) (*domain.Review, error) {
	review, err := domain.NewReview(target, params)
	if err != nil {
		return nil, err
	}
	review.CreatedAt = time.Now().UTC()

	doc := fromDomainReview(review)
	doc.ID = primitive.NewObjectID()

	r.logger.Info("Creating review in DB", zap.String("booking_id", doc.BookingID), zap.String("target_type", string(target)))
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate key error on review creation", zap.String("booking_id", doc.BookingID), zap.String("target_type", string(target)))
			return nil, domain.ErrReviewAlreadyExists
		}
		r.logger.Error("Failed to insert review into DB", zap.Error(err))
		return nil, fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

// GetReviewForBooking returns nil without error when the booking has no review of that type.
func (r *ReviewRepository) GetReviewForBooking(ctx context.Context, target domain.TargetType, bookingID string) (*domain.Review, error) {
	var doc reviewDocument
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID, "target_type": target}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get review for booking", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) GetReviewsForListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	query := bson.M{"target_type": domain.TargetListing, "target_id": listingID}
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to find reviews for listing", zap.String("listing_id", listingID), zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*reviewDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	out := make([]*domain.Review, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out, nil
}

func (r *ReviewRepository) GetOverallRatingForListing(ctx context.Context, listingID string) (*float64, error) {
	return r.averageRating(ctx, domain.TargetListing, listingID)
}

func (r *ReviewRepository) GetOverallRatingForHost(ctx context.Context, hostID string) (*float64, error) {
	return r.averageRating(ctx, domain.TargetHost, hostID)
}

// averageRating is nil when the target has no reviews yet.
func (r *ReviewRepository) averageRating(ctx context.Context, target domain.TargetType, targetID string) (*float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "target_type", Value: target},
			{Key: "target_id", Value: targetID},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$target_id"},
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate average rating", zap.String("target_type", string(target)), zap.String("target_id", targetID), zap.Error(err))
		return nil, fmt.Errorf("%w: db aggregate failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		AverageRating float64 `bson:"average_rating"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("%w: db cursor all for aggregate failed: %v", domain.ErrRepository, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	avg := results[0].AverageRating
	return &avg, nil
}
