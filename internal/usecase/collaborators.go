package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("rental-service/usecase")

// EventPublisher publishes domain events. Publishing happens after the write
// it describes and a failure never fails the operation.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// BookingNotifier tells a guest that their booking went through.
type BookingNotifier interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *domain.Booking) error
}

// PhotoStorage stores listing images and returns their public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

const (
	SubjectListingCreated            = "rentals.listing.created"
	SubjectListingUpdated            = "rentals.listing.updated"
	SubjectBookingCreated            = "rentals.booking.created"
	SubjectBookingCompensated        = "rentals.booking.compensated"
	SubjectBookingCompensationFailed = "rentals.booking.compensation_failed"
	SubjectWalletFunded              = "rentals.wallet.funded"
	SubjectReviewCreated             = "rentals.review.created"
)

func publishEvent(ctx context.Context, pub EventPublisher, log *logger.Logger, subject string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, subject, data); err != nil {
		log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
