package usecase

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AvailabilityFilter narrows a candidate set to the listings bookable for a stay.
type AvailabilityFilter struct {
	bookings domain.BookingsPort
	logger   *logger.Logger
}

func NewAvailabilityFilter(bookings domain.BookingsPort, log *logger.Logger) *AvailabilityFilter {
	return &AvailabilityFilter{bookings: bookings, logger: log.Named("AvailabilityFilter")}
}

// FilterAvailable checks every listing concurrently and returns, in input
// order, those whose check came back true. A single failed check fails the
// whole call. A nil stay is forwarded as is; the bookings side treats it as
// available.
func (f *AvailabilityFilter) FilterAvailable(ctx context.Context, listings []*domain.Listing, stay *domain.DateRange) ([]*domain.Listing, error) {
	if len(listings) == 0 {
		return []*domain.Listing{}, nil
	}

	ctx, span := tracer.Start(ctx, "AvailabilityFilter.FilterAvailable")
	defer span.End()
	span.SetAttributes(attribute.Int("listings.count", len(listings)))

	available := make([]bool, len(listings))
	g, gctx := errgroup.WithContext(ctx)
	for i, listing := range listings {
		i, listingID := i, listing.ID
		g.Go(func() error {
			ok, err := f.bookings.IsListingAvailable(gctx, listingID, stay)
			if err != nil {
				return fmt.Errorf("availability check for listing %s: %w", listingID, err)
			}
			available[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		f.logger.Error("Availability check failed", zap.Int("candidates", len(listings)), zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	result := make([]*domain.Listing, 0, len(listings))
	for i, listing := range listings {
		if available[i] {
			result = append(result, listing)
		}
	}
	f.logger.Debug("Availability filtered", zap.Int("candidates", len(listings)), zap.Int("available", len(result)))
	return result, nil
}
