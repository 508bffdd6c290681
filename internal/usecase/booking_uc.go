package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.uber.org/zap"
)

// BookingUsecase implements trip and listing booking queries.
type BookingUsecase struct {
	listings domain.ListingsPort
	bookings domain.BookingsPort
	now      func() time.Time
	logger   *logger.Logger
}

func NewBookingUsecase(listings domain.ListingsPort, bookings domain.BookingsPort, log *logger.Logger) *BookingUsecase {
	return &BookingUsecase{
		listings: listings,
		bookings: bookings,
		now:      time.Now,
		logger:   log.Named("BookingUsecase"),
	}
}

// GuestBookings returns the calling guest's trips, optionally by status.
func (uc *BookingUsecase) GuestBookings(ctx context.Context, rc domain.RequestContext, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if err := rc.RequireRole(domain.RoleGuest, MessageGuestsOnlyTrips); err != nil {
		return nil, err
	}
	return uc.bookings.GetBookingsForUser(ctx, rc.UserID(), status)
}

func (uc *BookingUsecase) UpcomingGuestBookings(ctx context.Context, rc domain.RequestContext) ([]*domain.Booking, error) {
	status := domain.BookingStatusUpcoming
	return uc.GuestBookings(ctx, rc, &status)
}

func (uc *BookingUsecase) PastGuestBookings(ctx context.Context, rc domain.RequestContext) ([]*domain.Booking, error) {
	status := domain.BookingStatusCompleted
	return uc.GuestBookings(ctx, rc, &status)
}

// BookingsForListing returns bookings of a listing the calling host owns.
// Ownership is checked before the bookings service is queried.
func (uc *BookingUsecase) BookingsForListing(ctx context.Context, rc domain.RequestContext, listingID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if err := rc.RequireRole(domain.RoleHost, MessageHostsOnlyListingBookings); err != nil {
		return nil, err
	}
	if err := requireListingOwner(ctx, uc.listings, rc, listingID); err != nil {
		uc.logger.Warn("Listing bookings requested by non owner", zap.String("listing_id", listingID), zap.String("user_id", rc.UserID()), zap.Error(err))
		return nil, err
	}

	bookings, err := uc.bookings.GetBookingsForListing(ctx, listingID, status)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// GetBooking returns a booking to its guest or to the host of its listing.
func (uc *BookingUsecase) GetBooking(ctx context.Context, rc domain.RequestContext, bookingID string) (*domain.Booking, error) {
	if err := rc.RequireIdentity(); err != nil {
		return nil, err
	}
	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch rc.Role() {
	case domain.RoleGuest:
		if booking.GuestID == rc.UserID() {
			return booking, nil
		}
	case domain.RoleHost:
		err := requireListingOwner(ctx, uc.listings, rc, booking.ListingID)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, domain.ErrForbidden) {
			return nil, err
		}
	}
	return nil, domain.NewForbiddenError(MessageBookingNotAccessible)
}

// CurrentlyBookedDates lists the ranges that are booked from today on.
func (uc *BookingUsecase) CurrentlyBookedDates(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	return uc.bookings.GetCurrentlyBookedDateRangesForListing(ctx, listingID)
}

// NumberOfUpcomingBookings counts the listing's UPCOMING bookings.
func (uc *BookingUsecase) NumberOfUpcomingBookings(ctx context.Context, listingID string) (int, error) {
	status := domain.BookingStatusUpcoming
	bookings, err := uc.bookings.GetBookingsForListing(ctx, listingID, &status)
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}

// HumanReadableDate formats a booking date for display.
func (uc *BookingUsecase) HumanReadableDate(t time.Time) string {
	return uc.bookings.GetHumanReadableDate(t)
}

// Status derives the booking's status relative to now.
func (uc *BookingUsecase) Status(booking *domain.Booking) domain.BookingStatus {
	return booking.Status(uc.now())
}
