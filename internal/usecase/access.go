package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
)

// Caller facing authorization messages.
const (
	MessageHostsOnlyListings        = "Only hosts have access to listings."
	MessageHostsOnlyCreateListing   = "Only hosts can create new listings"
	MessageHostsOnlyUpdateListing   = "Only hosts can update listings"
	MessageHostsOnlyListingBookings = "Only hosts have access to listing bookings"
	MessageGuestsOnlyTrips          = "Only guests have access to trips"
	MessageListingNotOwned          = "Listing does not belong to host"
	MessageBookingNotAccessible     = "Booking does not belong to user"
)

// requireListingOwner checks that listingID is in the caller's listing set.
// It runs after the role check and before any call touching the listing.
func requireListingOwner(ctx context.Context, listings domain.ListingsPort, rc domain.RequestContext, listingID string) error {
	owned, err := listings.GetListingsForUser(ctx, rc.UserID())
	if err != nil {
		return err
	}
	for _, l := range owned {
		if l != nil && l.ID == listingID {
			return nil
		}
	}
	return domain.NewForbiddenError(MessageListingNotOwned)
}
