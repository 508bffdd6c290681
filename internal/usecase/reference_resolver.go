package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
)

// ReferenceResolver resolves fields whose value is owned by another service.
// Host and guest fields become weak references; a booking's listing is
// fetched in full.
type ReferenceResolver struct {
	listings domain.ListingsPort
}

func NewReferenceResolver(listings domain.ListingsPort) *ReferenceResolver {
	return &ReferenceResolver{listings: listings}
}

// ListingHost references the listing's host by hostId.
func (r *ReferenceResolver) ListingHost(listing *domain.Listing) domain.EntityRef {
	return domain.HostRef(listing.HostID)
}

// BookingGuest references the booking's guest by guestId.
func (r *ReferenceResolver) BookingGuest(booking *domain.Booking) domain.EntityRef {
	return domain.GuestRef(booking.GuestID)
}

// BookingListing loads the booked listing.
func (r *ReferenceResolver) BookingListing(ctx context.Context, booking *domain.Booking) (*domain.Listing, error) {
	return r.listings.GetListing(ctx, booking.ListingID)
}

// ReviewAuthor references the author with the type implied by the review target.
func (r *ReferenceResolver) ReviewAuthor(review *domain.Review) (domain.EntityRef, error) {
	authorType, err := review.TargetType.AuthorType()
	if err != nil {
		return domain.EntityRef{}, err
	}
	return domain.EntityRef{TypeName: authorType, ID: review.AuthorID}, nil
}
