package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingsPort struct{ mock.Mock }

func (m *MockListingsPort) GetListings(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingsPort) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingsPort) GetListingsForUser(ctx context.Context, hostID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingsPort) GetFeaturedListings(ctx context.Context, limit int) ([]*domain.Listing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingsPort) GetAllAmenities(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Amenity), args.Error(1)
}
func (m *MockListingsPort) GetTotalCost(ctx context.Context, id string, stay domain.DateRange) (float64, error) {
	args := m.Called(ctx, id, stay)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockListingsPort) CreateListing(ctx context.Context, params domain.CreateListingParams) (*domain.Listing, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingsPort) UpdateListing(ctx context.Context, id string, params domain.UpdateListingParams) (*domain.Listing, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

type MockBookingsPort struct{ mock.Mock }

func (m *MockBookingsPort) IsListingAvailable(ctx context.Context, listingID string, stay *domain.DateRange) (bool, error) {
	args := m.Called(ctx, listingID, stay)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingsPort) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingsPort) GetBookingsForUser(ctx context.Context, guestID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, guestID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}
func (m *MockBookingsPort) GetBookingsForListing(ctx context.Context, listingID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, listingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}
func (m *MockBookingsPort) GetCurrentlyBookedDateRangesForListing(ctx context.Context, listingID string) ([]domain.DateRange, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DateRange), args.Error(1)
}
func (m *MockBookingsPort) CreateBooking(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingsPort) GetGuestIDForBooking(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockBookingsPort) GetListingIDForBooking(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockBookingsPort) GetHumanReadableDate(t time.Time) string {
	args := m.Called(t)
	return args.String(0)
}

type MockPaymentsPort struct{ mock.Mock }

func (m *MockPaymentsPort) GetUserWalletAmount(ctx context.Context, guestID string) (float64, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockPaymentsPort) SubtractFunds(ctx context.Context, guestID string, amount float64) error {
	args := m.Called(ctx, guestID, amount)
	return args.Error(0)
}
func (m *MockPaymentsPort) AddFunds(ctx context.Context, guestID string, amount float64) (float64, error) {
	args := m.Called(ctx, guestID, amount)
	return args.Get(0).(float64), args.Error(1)
}

type MockReviewsPort struct{ mock.Mock }

func (m *MockReviewsPort) GetOverallRatingForHost(ctx context.Context, hostID string) (*float64, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}
func (m *MockReviewsPort) GetOverallRatingForListing(ctx context.Context, listingID string) (*float64, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}
func (m *MockReviewsPort) GetReviewsForListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Review), args.Error(1)
}
func (m *MockReviewsPort) GetReviewForBooking(ctx context.Context, target domain.TargetType, bookingID string) (*domain.Review, error) {
	args := m.Called(ctx, target, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewsPort) CreateReviewForGuest(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewsPort) CreateReviewForHost(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewsPort) CreateReviewForListing(ctx context.Context, params domain.CreateReviewParams) (*domain.Review, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockBookingNotifier struct{ mock.Mock }

func (m *MockBookingNotifier) SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error {
	args := m.Called(ctx, to, booking)
	return args.Error(0)
}

type MockPhotoStorage struct{ mock.Mock }

func (m *MockPhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
