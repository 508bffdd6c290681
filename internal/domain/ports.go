package domain

import (
	"context"
	"time"
)

// ListingsPort is the listings service boundary.
type ListingsPort interface {
	GetListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)
	GetListing(ctx context.Context, id string) (*Listing, error) // ErrNotFound
	GetListingsForUser(ctx context.Context, hostID string) ([]*Listing, error)
	GetFeaturedListings(ctx context.Context, limit int) ([]*Listing, error)
	GetAllAmenities(ctx context.Context) ([]Amenity, error)
	// GetTotalCost fails with ErrComputation if the listing is unknown or the range is invalid.
	GetTotalCost(ctx context.Context, id string, stay DateRange) (float64, error)
	CreateListing(ctx context.Context, params CreateListingParams) (*Listing, error)              // ErrValidation
	UpdateListing(ctx context.Context, id string, params UpdateListingParams) (*Listing, error) // ErrNotFound, ErrValidation
}

// BookingsPort is the bookings service boundary.
type BookingsPort interface {
	// IsListingAvailable treats a nil stay as unconditionally available.
	IsListingAvailable(ctx context.Context, listingID string, stay *DateRange) (bool, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	GetBookingsForUser(ctx context.Context, guestID string, status *BookingStatus) ([]*Booking, error)
	GetBookingsForListing(ctx context.Context, listingID string, status *BookingStatus) ([]*Booking, error)
	GetCurrentlyBookedDateRangesForListing(ctx context.Context, listingID string) ([]DateRange, error)
	// CreateBooking fails with ErrValidation, including ErrDateRangeUnavailable on overlap.
	CreateBooking(ctx context.Context, params CreateBookingParams) (*Booking, error)
	GetGuestIDForBooking(ctx context.Context, id string) (string, error)
	GetListingIDForBooking(ctx context.Context, id string) (string, error)
	GetHumanReadableDate(t time.Time) string
}

// PaymentsPort is the payments service boundary. Balances never go below zero.
type PaymentsPort interface {
	GetUserWalletAmount(ctx context.Context, guestID string) (float64, error)
	SubtractFunds(ctx context.Context, guestID string, amount float64) error // ErrInsufficientFunds
	AddFunds(ctx context.Context, guestID string, amount float64) (float64, error)
}

// ReviewsPort is the reviews service boundary.
type ReviewsPort interface {
	// Ratings are nil when nothing was reviewed yet.
	GetOverallRatingForHost(ctx context.Context, hostID string) (*float64, error)
	GetOverallRatingForListing(ctx context.Context, listingID string) (*float64, error)
	GetReviewsForListing(ctx context.Context, listingID string) ([]*Review, error)
	// GetReviewForBooking returns nil, nil when no such review exists.
	GetReviewForBooking(ctx context.Context, target TargetType, bookingID string) (*Review, error)
	CreateReviewForGuest(ctx context.Context, params CreateReviewParams) (*Review, error)
	CreateReviewForHost(ctx context.Context, params CreateReviewParams) (*Review, error)
	CreateReviewForListing(ctx context.Context, params CreateReviewParams) (*Review, error)
}
