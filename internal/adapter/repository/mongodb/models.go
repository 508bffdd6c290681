package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	listingCollectionName     = "listings"
	amenityCollectionName     = "amenities"
	bookingCollectionName     = "bookings"
	bookingNightsCollection   = "booking_nights"
	walletCollectionName      = "wallets"
	reviewCollectionName      = "reviews"
	defaultIndexCreateTimeout = 10 * time.Second
)

// parseObjectID maps malformed ids to ErrNotFound, since no document can carry them.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", domain.ErrNotFound, id)
	}
	return oid, nil
}

type amenityDocument struct {
	ID       primitive.ObjectID     `bson:"_id,omitempty"`
	Category domain.AmenityCategory `bson:"category"`
	Name     string                 `bson:"name"`
}

func (d amenityDocument) toDomain() domain.Amenity {
	return domain.Amenity{ID: d.ID.Hex(), Category: d.Category, Name: d.Name}
}

type listingDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	HostID         string              `bson:"host_id"`
	Title          string              `bson:"title"`
	Description    string              `bson:"description"`
	PhotoThumbnail string              `bson:"photo_thumbnail"`
	NumOfBeds      int                 `bson:"num_of_beds"`
	CostPerNight   float64             `bson:"cost_per_night"`
	LocationType   domain.LocationType `bson:"location_type"`
	Amenities      []amenityDocument   `bson:"amenities"`
	IsFeatured     bool                `bson:"is_featured"`
	CreatedAt      time.Time           `bson:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at"`
}

func (d *listingDocument) toDomain() *domain.Listing {
	amenities := make([]domain.Amenity, len(d.Amenities))
	for i, a := range d.Amenities {
		amenities[i] = a.toDomain()
	}
	return &domain.Listing{
		ID:             d.ID.Hex(),
		HostID:         d.HostID,
		Title:          d.Title,
		Description:    d.Description,
		PhotoThumbnail: d.PhotoThumbnail,
		NumOfBeds:      d.NumOfBeds,
		CostPerNight:   d.CostPerNight,
		LocationType:   d.LocationType,
		Amenities:      amenities,
		IsFeatured:     d.IsFeatured,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, len(docs))
	for i, doc := range docs {
		out[i] = doc.toDomain()
	}
	return out
}

type bookingDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ListingID    string             `bson:"listing_id"`
	GuestID      string             `bson:"guest_id"`
	CheckInDate  time.Time          `bson:"check_in_date"`
	CheckOutDate time.Time          `bson:"check_out_date"`
	TotalCost    float64            `bson:"total_cost"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:           d.ID.Hex(),
		ListingID:    d.ListingID,
		GuestID:      d.GuestID,
		CheckInDate:  d.CheckInDate.UTC(),
		CheckOutDate: d.CheckOutDate.UTC(),
		TotalCost:    d.TotalCost,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// bookingNightDocument claims one night of a listing for a booking. The unique
// (listing_id, night) index turns a concurrent double booking into a duplicate key error.
type bookingNightDocument struct {
	ListingID string             `bson:"listing_id"`
	Night     time.Time          `bson:"night"`
	BookingID primitive.ObjectID `bson:"booking_id"`
}

type walletDocument struct {
	GuestID   string    `bson:"_id"`
	Amount    float64   `bson:"amount"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookingID  string             `bson:"booking_id"`
	AuthorID   string             `bson:"author_id"`
	TargetType domain.TargetType  `bson:"target_type"`
	TargetID   string             `bson:"target_id"`
	Rating     int                `bson:"rating"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func fromDomainReview(r *domain.Review) *reviewDocument {
	return &reviewDocument{
		BookingID:  r.BookingID,
		AuthorID:   r.AuthorID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Rating:     r.Rating,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}

func (d *reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:         d.ID.Hex(),
		BookingID:  d.BookingID,
		AuthorID:   d.AuthorID,
		TargetType: d.TargetType,
		TargetID:   d.TargetID,
		Rating:     d.Rating,
		Text:       d.Text,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}
