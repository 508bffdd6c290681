package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	listings  *MockListingsPort
	bookings  *MockBookingsPort
	reviews   *MockReviewsPort
	publisher *MockEventPublisher
	sut       *ReviewUsecase
}

func newReviewFixture() *reviewFixture {
	f := &reviewFixture{
		listings:  new(MockListingsPort),
		bookings:  new(MockBookingsPort),
		reviews:   new(MockReviewsPort),
		publisher: new(MockEventPublisher),
	}
	f.publisher.On("Publish", mock.Anything, SubjectReviewCreated, mock.Anything).Return(nil).Maybe()
	f.sut = NewReviewUsecase(f.listings, f.bookings, f.reviews, f.publisher, nil, logger.NewNop())
	return f
}

func TestSubmitGuestReview(t *testing.T) {
	f := newReviewFixture()
	params := domain.CreateReviewParams{BookingID: "b-1", TargetID: "guest-7", AuthorID: "host-1", Text: "tidy", Rating: 5}
	created := &domain.Review{ID: "r-1", BookingID: "b-1", TargetType: domain.TargetGuest, TargetID: "guest-7", AuthorID: "host-1", Rating: 5}

	f.bookings.On("GetGuestIDForBooking", mock.Anything, "b-1").Return("guest-7", nil)
	f.reviews.On("CreateReviewForGuest", mock.Anything, params).Return(created, nil).Once()

	resp, err := f.sut.SubmitGuestReview(context.Background(), hostCtx, "b-1", ReviewInput{Rating: 5, Text: "tidy"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully submitted review for guest", resp.Message)
	assert.Same(t, created, resp.GuestReview)
	f.reviews.AssertExpectations(t)
	f.reviews.AssertNotCalled(t, "CreateReviewForHost", mock.Anything, mock.Anything)
	f.reviews.AssertNotCalled(t, "CreateReviewForListing", mock.Anything, mock.Anything)
}

func TestSubmitGuestReview_RequiresIdentity(t *testing.T) {
	f := newReviewFixture()

	_, err := f.sut.SubmitGuestReview(context.Background(), domain.Anonymous(), "b-1", ReviewInput{Rating: 5})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	f.bookings.AssertNotCalled(t, "GetGuestIDForBooking", mock.Anything, mock.Anything)
}

func TestSubmitGuestReview_ResubmissionIsRejected(t *testing.T) {
	f := newReviewFixture()
	f.bookings.On("GetGuestIDForBooking", mock.Anything, "b-1").Return("guest-7", nil)
	f.reviews.On("CreateReviewForGuest", mock.Anything, mock.Anything).Return(nil, domain.ErrReviewAlreadyExists)

	resp, err := f.sut.SubmitGuestReview(context.Background(), hostCtx, "b-1", ReviewInput{Rating: 4})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)
}

func TestSubmitHostAndLocationReviews(t *testing.T) {
	f := newReviewFixture()
	locationParams := domain.CreateReviewParams{BookingID: "b-1", TargetID: "listing-1", AuthorID: "guest-1", Text: "great view", Rating: 5}
	hostParams := domain.CreateReviewParams{BookingID: "b-1", TargetID: "host-9", AuthorID: "guest-1", Text: "friendly", Rating: 4}
	location := &domain.Review{ID: "r-loc", TargetType: domain.TargetListing}
	host := &domain.Review{ID: "r-host", TargetType: domain.TargetHost}

	f.bookings.On("GetListingIDForBooking", mock.Anything, "b-1").Return("listing-1", nil)
	listingReview := f.reviews.On("CreateReviewForListing", mock.Anything, locationParams).Return(location, nil).Once()
	f.listings.On("GetListing", mock.Anything, "listing-1").Return(&domain.Listing{ID: "listing-1", HostID: "host-9"}, nil)
	f.reviews.On("CreateReviewForHost", mock.Anything, hostParams).Return(host, nil).Once().NotBefore(listingReview)

	resp, err := f.sut.SubmitHostAndLocationReviews(context.Background(), guestCtx, "b-1",
		ReviewInput{Rating: 4, Text: "friendly"}, ReviewInput{Rating: 5, Text: "great view"})

	require.NoError(t, err)
	assert.Equal(t, "Successfully submitted review for host and location", resp.Message)
	assert.Same(t, host, resp.HostReview)
	assert.Same(t, location, resp.LocationReview)
	f.reviews.AssertExpectations(t)
}

func TestSubmitHostAndLocationReviews_SecondWriteFailureLeavesFirst(t *testing.T) {
	f := newReviewFixture()
	boom := errors.New("reviews store unavailable")

	f.bookings.On("GetListingIDForBooking", mock.Anything, "b-1").Return("listing-1", nil)
	f.reviews.On("CreateReviewForListing", mock.Anything, mock.Anything).Return(&domain.Review{ID: "r-loc", TargetType: domain.TargetListing}, nil).Once()
	f.listings.On("GetListing", mock.Anything, "listing-1").Return(&domain.Listing{ID: "listing-1", HostID: "host-9"}, nil)
	f.reviews.On("CreateReviewForHost", mock.Anything, mock.Anything).Return(nil, boom).Once()

	resp, err := f.sut.SubmitHostAndLocationReviews(context.Background(), guestCtx, "b-1", ReviewInput{Rating: 2}, ReviewInput{Rating: 3})

	assert.Nil(t, resp)
	assert.Same(t, boom, err)
	f.reviews.AssertExpectations(t)
	f.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSubmitHostAndLocationReviews_LookupFailureWritesNothing(t *testing.T) {
	f := newReviewFixture()
	f.bookings.On("GetListingIDForBooking", mock.Anything, "b-1").Return("", domain.ErrNotFound)

	_, err := f.sut.SubmitHostAndLocationReviews(context.Background(), guestCtx, "b-1", ReviewInput{Rating: 2}, ReviewInput{Rating: 3})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.reviews.AssertNotCalled(t, "CreateReviewForListing", mock.Anything, mock.Anything)
	f.reviews.AssertNotCalled(t, "CreateReviewForHost", mock.Anything, mock.Anything)
}

func TestReviewsForBooking(t *testing.T) {
	f := newReviewFixture()
	guestReview := &domain.Review{ID: "r-g", TargetType: domain.TargetGuest}
	f.reviews.On("GetReviewForBooking", mock.Anything, domain.TargetGuest, "b-1").Return(guestReview, nil)
	f.reviews.On("GetReviewForBooking", mock.Anything, domain.TargetHost, "b-1").Return(nil, nil)
	f.reviews.On("GetReviewForBooking", mock.Anything, domain.TargetListing, "b-1").Return(nil, nil)

	out, err := f.sut.ReviewsForBooking(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Same(t, guestReview, out.GuestReview)
	assert.Nil(t, out.HostReview)
	assert.Nil(t, out.LocationReview)
}
