package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"go.uber.org/zap"
)

const (
	MessageGuestReviewSubmitted           = "Successfully submitted review for guest"
	MessageHostAndLocationReviewSubmitted = "Successfully submitted review for host and location"
)

// ReviewInput is a rating and text left for one side of a booking.
type ReviewInput struct {
	Rating int
	Text   string
}

// ReviewUsecase implements review submission and review lookups.
//
// Submissions are not wrapped in envelopes on failure: any port error is
// returned as is, even after an earlier write in the same submission has
// succeeded. A second review for the same booking and target is rejected by
// the reviews store with domain.ErrReviewAlreadyExists.
type ReviewUsecase struct {
	listings  domain.ListingsPort
	bookings  domain.BookingsPort
	reviews   domain.ReviewsPort
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewReviewUsecase(
	listings domain.ListingsPort,
	bookings domain.BookingsPort,
	reviews domain.ReviewsPort,
	publisher EventPublisher,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *ReviewUsecase {
	return &ReviewUsecase{
		listings:  listings,
		bookings:  bookings,
		reviews:   reviews,
		publisher: publisher,
		metrics:   mm,
		logger:    log.Named("ReviewUsecase"),
	}
}

// SubmitGuestReview lets the caller review the guest of a booking.
func (uc *ReviewUsecase) SubmitGuestReview(ctx context.Context, rc domain.RequestContext, bookingID string, in ReviewInput) (*GuestReviewResponse, error) {
	if err := rc.RequireIdentity(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "ReviewUsecase.SubmitGuestReview")
	defer span.End()

	guestID, err := uc.bookings.GetGuestIDForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	review, err := uc.reviews.CreateReviewForGuest(ctx, domain.CreateReviewParams{
		BookingID: bookingID,
		TargetID:  guestID,
		AuthorID:  rc.UserID(),
		Text:      in.Text,
		Rating:    in.Rating,
	})
	if err != nil {
		uc.logger.Warn("Failed to create guest review", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, err
	}
	uc.recordCreated(ctx, review)

	return &GuestReviewResponse{Envelope: envelopeOK(MessageGuestReviewSubmitted), GuestReview: review}, nil
}

// SubmitHostAndLocationReviews lets the caller review the listing of a booking
// and its host. The listing review is written first; if the host review then
// fails, the listing review stays persisted and the error is returned.
func (uc *ReviewUsecase) SubmitHostAndLocationReviews(ctx context.Context, rc domain.RequestContext, bookingID string, hostReview, locationReview ReviewInput) (*HostAndLocationReviewsResponse, error) {
	if err := rc.RequireIdentity(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "ReviewUsecase.SubmitHostAndLocationReviews")
	defer span.End()

	listingID, err := uc.bookings.GetListingIDForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	createdLocation, err := uc.reviews.CreateReviewForListing(ctx, domain.CreateReviewParams{
		BookingID: bookingID,
		TargetID:  listingID,
		AuthorID:  rc.UserID(),
		Text:      locationReview.Text,
		Rating:    locationReview.Rating,
	})
	if err != nil {
		uc.logger.Warn("Failed to create location review", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, err
	}
	uc.recordCreated(ctx, createdLocation)

	listing, err := uc.listings.GetListing(ctx, listingID)
	if err != nil {
		uc.logger.Error("Location review stored but listing lookup failed", zap.String("booking_id", bookingID), zap.String("review_id", createdLocation.ID), zap.Error(err))
		return nil, err
	}

	createdHost, err := uc.reviews.CreateReviewForHost(ctx, domain.CreateReviewParams{
		BookingID: bookingID,
		TargetID:  listing.HostID,
		AuthorID:  rc.UserID(),
		Text:      hostReview.Text,
		Rating:    hostReview.Rating,
	})
	if err != nil {
		uc.logger.Error("Location review stored but host review failed", zap.String("booking_id", bookingID), zap.String("review_id", createdLocation.ID), zap.Error(err))
		return nil, err
	}
	uc.recordCreated(ctx, createdHost)

	return &HostAndLocationReviewsResponse{
		Envelope:       envelopeOK(MessageHostAndLocationReviewSubmitted),
		HostReview:     createdHost,
		LocationReview: createdLocation,
	}, nil
}

func (uc *ReviewUsecase) recordCreated(ctx context.Context, review *domain.Review) {
	uc.metrics.ReviewCreated(string(review.TargetType))
	publishEvent(ctx, uc.publisher, uc.logger, SubjectReviewCreated, map[string]interface{}{
		"review_id":   review.ID,
		"booking_id":  review.BookingID,
		"target_type": review.TargetType,
		"target_id":   review.TargetID,
		"author_id":   review.AuthorID,
		"rating":      review.Rating,
	})
}

func (uc *ReviewUsecase) ListingOverallRating(ctx context.Context, listingID string) (*float64, error) {
	return uc.reviews.GetOverallRatingForListing(ctx, listingID)
}

func (uc *ReviewUsecase) ListingReviews(ctx context.Context, listingID string) ([]*domain.Review, error) {
	return uc.reviews.GetReviewsForListing(ctx, listingID)
}

func (uc *ReviewUsecase) HostOverallRating(ctx context.Context, hostID string) (*float64, error) {
	return uc.reviews.GetOverallRatingForHost(ctx, hostID)
}

// BookingReviews holds the three reviews a booking can have. Missing ones are nil.
type BookingReviews struct {
	GuestReview    *domain.Review `json:"guestReview"`
	HostReview     *domain.Review `json:"hostReview"`
	LocationReview *domain.Review `json:"locationReview"`
}

// ReviewsForBooking loads every review of a booking.
func (uc *ReviewUsecase) ReviewsForBooking(ctx context.Context, bookingID string) (*BookingReviews, error) {
	var out BookingReviews
	for _, target := range domain.TargetTypes() {
		review, err := uc.reviews.GetReviewForBooking(ctx, target, bookingID)
		if err != nil {
			return nil, err
		}
		switch target {
		case domain.TargetGuest:
			out.GuestReview = review
		case domain.TargetHost:
			out.HostReview = review
		case domain.TargetListing:
			out.LocationReview = review
		}
	}
	return &out, nil
}
