package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	MessageBooked            = "Successfully booked!"
	MessageInsufficientFunds = "We couldn’t complete your request because your funds are insufficient."
)

// CompensationPolicy decides what happens to the debited amount when the
// booking cannot be persisted after the wallet was charged.
type CompensationPolicy string

const (
	// CompensateRefund credits the amount back to the guest.
	CompensateRefund CompensationPolicy = "refund"
	// CompensateNone leaves the guest debited.
	CompensateNone CompensationPolicy = "none"
)

// ParseCompensationPolicy validates a configured policy name.
func ParseCompensationPolicy(raw string) (CompensationPolicy, error) {
	switch p := CompensationPolicy(raw); p {
	case CompensateRefund, CompensateNone:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown compensation policy %q", domain.ErrValidation, raw)
}

// CreateBookingInput is the guest's reservation request.
type CreateBookingInput struct {
	ListingID    string
	CheckInDate  time.Time
	CheckOutDate time.Time
}

// BookingCoordinator runs the reservation workflow: price the stay, debit the
// guest, persist the booking. The steps are sequential and not atomic.
type BookingCoordinator struct {
	listings  domain.ListingsPort
	bookings  domain.BookingsPort
	payments  domain.PaymentsPort
	publisher EventPublisher
	notifier  BookingNotifier
	metrics   *metrics.MetricsManager
	policy    CompensationPolicy
	logger    *logger.Logger
}

func NewBookingCoordinator(
	listings domain.ListingsPort,
	bookings domain.BookingsPort,
	payments domain.PaymentsPort,
	publisher EventPublisher,
	notifier BookingNotifier,
	mm *metrics.MetricsManager,
	policy CompensationPolicy,
	log *logger.Logger,
) *BookingCoordinator {
	return &BookingCoordinator{
		listings:  listings,
		bookings:  bookings,
		payments:  payments,
		publisher: publisher,
		notifier:  notifier,
		metrics:   mm,
		policy:    policy,
		logger:    log.Named("BookingCoordinator"),
	}
}

// CreateBooking reserves a listing for the calling guest.
//
// A total cost failure is returned as an error and nothing else is called.
// A debit failure returns the insufficient funds envelope. A persistence
// failure returns an envelope carrying the cause, after the compensation
// policy has been applied.
func (c *BookingCoordinator) CreateBooking(ctx context.Context, rc domain.RequestContext, in CreateBookingInput) (*BookingResponse, error) {
	if err := rc.RequireRole(domain.RoleGuest, MessageGuestsOnlyTrips); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "BookingCoordinator.CreateBooking")
	defer span.End()

	guestID := rc.UserID()
	sagaID := uuid.NewString()
	log := c.logger.With(zap.String("saga_id", sagaID), zap.String("listing_id", in.ListingID), zap.String("guest_id", guestID))
	span.SetAttributes(attribute.String("saga.id", sagaID), attribute.String("listing.id", in.ListingID))

	stay := domain.DateRange{
		CheckInDate:  domain.TruncateDay(in.CheckInDate),
		CheckOutDate: domain.TruncateDay(in.CheckOutDate),
	}

	totalCost, err := c.listings.GetTotalCost(ctx, in.ListingID, stay)
	if err != nil {
		log.Error("Failed to compute total cost", zap.Error(err))
		c.metrics.BookingFailed("cost")
		span.RecordError(err)
		return nil, err
	}

	if err := c.payments.SubtractFunds(ctx, guestID, totalCost); err != nil {
		log.Warn("Failed to debit guest wallet", zap.Float64("total_cost", totalCost), zap.Error(err))
		c.metrics.BookingFailed("debit")
		return &BookingResponse{Envelope: envelopeFailureMessage(MessageInsufficientFunds)}, nil
	}

	booking, err := c.bookings.CreateBooking(ctx, domain.CreateBookingParams{
		ListingID: in.ListingID,
		GuestID:   guestID,
		Range:     stay,
		TotalCost: totalCost,
	})
	if err != nil {
		log.Error("Failed to persist booking after debit", zap.Float64("total_cost", totalCost), zap.Error(err))
		c.metrics.BookingFailed("persist")
		span.RecordError(err)
		c.compensate(ctx, log, sagaID, in.ListingID, guestID, totalCost, err)
		return &BookingResponse{Envelope: envelopeFailure(err)}, nil
	}

	log.Info("Booking created", zap.String("booking_id", booking.ID), zap.Float64("total_cost", totalCost))
	c.metrics.BookingCreated()
	publishEvent(ctx, c.publisher, c.logger, SubjectBookingCreated, map[string]interface{}{
		"saga_id":        sagaID,
		"booking_id":     booking.ID,
		"listing_id":     booking.ListingID,
		"guest_id":       booking.GuestID,
		"check_in_date":  booking.CheckInDate.Format(domain.DateLayout),
		"check_out_date": booking.CheckOutDate.Format(domain.DateLayout),
		"total_cost":     booking.TotalCost,
	})
	c.notify(ctx, log, rc.Email(), booking)

	return &BookingResponse{Envelope: envelopeOK(MessageBooked), Booking: booking}, nil
}

// compensate applies the policy after the debit succeeded and the booking
// write failed. It detaches from the request's cancellation so the refund is
// attempted even when the caller has gone away.
func (c *BookingCoordinator) compensate(ctx context.Context, log *logger.Logger, sagaID, listingID, guestID string, amount float64, cause error) {
	event := map[string]interface{}{
		"saga_id":    sagaID,
		"listing_id": listingID,
		"guest_id":   guestID,
		"amount":     amount,
		"cause":      cause.Error(),
	}

	switch c.policy {
	case CompensateNone:
		log.Warn("Compensation disabled, guest wallet stays debited", zap.Float64("amount", amount))
		c.metrics.Compensation("skipped")
		return
	case CompensateRefund:
	default:
		log.Error("Unknown compensation policy, refunding", zap.String("policy", string(c.policy)))
	}

	refundCtx := context.WithoutCancel(ctx)
	if _, err := c.payments.AddFunds(refundCtx, guestID, amount); err != nil {
		log.Error("Refund after failed booking did not go through, manual reconciliation needed",
			zap.Float64("amount", amount), zap.Error(err))
		c.metrics.Compensation("failed")
		event["refund_error"] = err.Error()
		publishEvent(refundCtx, c.publisher, c.logger, SubjectBookingCompensationFailed, event)
		return
	}

	log.Info("Guest refunded after failed booking", zap.Float64("amount", amount))
	c.metrics.Compensation("refunded")
	publishEvent(refundCtx, c.publisher, c.logger, SubjectBookingCompensated, event)
}

func (c *BookingCoordinator) notify(ctx context.Context, log *logger.Logger, to string, booking *domain.Booking) {
	if c.notifier == nil || to == "" {
		return
	}
	if err := c.notifier.SendBookingConfirmation(ctx, to, booking); err != nil {
		log.Warn("Failed to send booking confirmation", zap.String("booking_id", booking.ID), zap.Error(err))
	}
}
