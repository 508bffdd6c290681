package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	MessageListingCreated = "Listing successfully created!"
	MessageListingUpdated = "Listing successfully updated!"
)

// DefaultFeaturedListingsLimit is how many featured listings are returned.
const DefaultFeaturedListingsLimit = 3

// MaxThumbnailBytes bounds uploaded listing thumbnails.
const MaxThumbnailBytes = 5 << 20

// SearchCriteria is the listing search request. Dates are optional; a
// search without both of them skips no listings for availability.
type SearchCriteria struct {
	Filter       domain.ListingFilter
	CheckInDate  *time.Time
	CheckOutDate *time.Time
}

// Stay returns the requested range or nil when either date is missing.
func (c SearchCriteria) Stay() (*domain.DateRange, error) {
	if c.CheckInDate == nil || c.CheckOutDate == nil {
		return nil, nil
	}
	stay, err := domain.NewDateRange(*c.CheckInDate, *c.CheckOutDate)
	if err != nil {
		return nil, err
	}
	return &stay, nil
}

// ListingInput is the host-supplied listing body.
type ListingInput struct {
	Title          string
	Description    string
	PhotoThumbnail string
	NumOfBeds      int
	CostPerNight   float64
	LocationType   domain.LocationType
	AmenityIDs     []string
}

// ListingUsecase implements listing queries and host listing management.
type ListingUsecase struct {
	listings      domain.ListingsPort
	availability  *AvailabilityFilter
	storage       PhotoStorage
	publisher     EventPublisher
	featuredLimit int
	logger        *logger.Logger
}

func NewListingUsecase(
	listings domain.ListingsPort,
	availability *AvailabilityFilter,
	storage PhotoStorage,
	publisher EventPublisher,
	featuredLimit int,
	log *logger.Logger,
) *ListingUsecase {
	if featuredLimit < 1 {
		featuredLimit = DefaultFeaturedListingsLimit
	}
	return &ListingUsecase{
		listings:      listings,
		availability:  availability,
		storage:       storage,
		publisher:     publisher,
		featuredLimit: featuredLimit,
		logger:        log.Named("ListingUsecase"),
	}
}

// SearchListings pages through listings and keeps those available for the stay.
func (uc *ListingUsecase) SearchListings(ctx context.Context, criteria SearchCriteria) ([]*domain.Listing, error) {
	stay, err := criteria.Stay()
	if err != nil {
		return nil, err
	}
	filter := criteria.Filter.Normalize()

	uc.logger.Debug("Searching listings",
		zap.Int("num_of_beds", filter.NumOfBeds),
		zap.Int("page", filter.Page),
		zap.Int("limit", filter.Limit),
		zap.Bool("has_dates", stay != nil))

	candidates, err := uc.listings.GetListings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.availability.FilterAvailable(ctx, candidates, stay)
}

// HostListings returns the calling host's listings.
func (uc *ListingUsecase) HostListings(ctx context.Context, rc domain.RequestContext) ([]*domain.Listing, error) {
	if err := rc.RequireRole(domain.RoleHost, MessageHostsOnlyListings); err != nil {
		return nil, err
	}
	return uc.listings.GetListingsForUser(ctx, rc.UserID())
}

func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return uc.listings.GetListing(ctx, id)
}

func (uc *ListingUsecase) FeaturedListings(ctx context.Context) ([]*domain.Listing, error) {
	return uc.listings.GetFeaturedListings(ctx, uc.featuredLimit)
}

func (uc *ListingUsecase) Amenities(ctx context.Context) ([]domain.Amenity, error) {
	return uc.listings.GetAllAmenities(ctx)
}

// TotalCost prices a stay at the listing.
func (uc *ListingUsecase) TotalCost(ctx context.Context, listingID string, checkIn, checkOut time.Time) (float64, error) {
	stay := domain.DateRange{CheckInDate: domain.TruncateDay(checkIn), CheckOutDate: domain.TruncateDay(checkOut)}
	return uc.listings.GetTotalCost(ctx, listingID, stay)
}

// CreateListing creates a listing owned by the calling host.
func (uc *ListingUsecase) CreateListing(ctx context.Context, rc domain.RequestContext, in ListingInput) (*ListingResponse, error) {
	if err := rc.RequireRole(domain.RoleHost, MessageHostsOnlyCreateListing); err != nil {
		return nil, err
	}

	listing, err := uc.listings.CreateListing(ctx, domain.CreateListingParams{
		HostID:         rc.UserID(),
		Title:          in.Title,
		Description:    in.Description,
		PhotoThumbnail: in.PhotoThumbnail,
		NumOfBeds:      in.NumOfBeds,
		CostPerNight:   in.CostPerNight,
		LocationType:   in.LocationType,
		AmenityIDs:     in.AmenityIDs,
	})
	if err != nil {
		uc.logger.Warn("Failed to create listing", zap.String("host_id", rc.UserID()), zap.Error(err))
		return &ListingResponse{Envelope: envelopeFailure(err)}, nil
	}

	uc.logger.Info("Listing created", zap.String("listing_id", listing.ID), zap.String("host_id", listing.HostID))
	publishEvent(ctx, uc.publisher, uc.logger, SubjectListingCreated, map[string]interface{}{
		"listing_id":     listing.ID,
		"host_id":        listing.HostID,
		"cost_per_night": listing.CostPerNight,
	})
	return &ListingResponse{Envelope: envelopeOK(MessageListingCreated), Listing: listing}, nil
}

// UpdateListing applies a partial update to one of the calling host's listings.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, rc domain.RequestContext, listingID string, params domain.UpdateListingParams) (*ListingResponse, error) {
	if err := rc.RequireRole(domain.RoleHost, MessageHostsOnlyUpdateListing); err != nil {
		return nil, err
	}
	if err := requireListingOwner(ctx, uc.listings, rc, listingID); err != nil {
		return nil, err
	}

	listing, err := uc.listings.UpdateListing(ctx, listingID, params)
	if err != nil {
		uc.logger.Warn("Failed to update listing", zap.String("listing_id", listingID), zap.Error(err))
		return &ListingResponse{Envelope: envelopeFailure(err)}, nil
	}

	uc.logger.Info("Listing updated", zap.String("listing_id", listing.ID))
	publishEvent(ctx, uc.publisher, uc.logger, SubjectListingUpdated, map[string]interface{}{
		"listing_id": listing.ID,
		"host_id":    listing.HostID,
	})
	return &ListingResponse{Envelope: envelopeOK(MessageListingUpdated), Listing: listing}, nil
}

// UploadThumbnail stores an image and makes it the listing's photoThumbnail.
func (uc *ListingUsecase) UploadThumbnail(ctx context.Context, rc domain.RequestContext, listingID, fileName string, data []byte) (*ListingResponse, error) {
	if err := rc.RequireRole(domain.RoleHost, MessageHostsOnlyUpdateListing); err != nil {
		return nil, err
	}
	if err := requireListingOwner(ctx, uc.listings, rc, listingID); err != nil {
		return nil, err
	}
	if err := validateThumbnail(fileName, data); err != nil {
		return &ListingResponse{Envelope: envelopeFailure(err)}, nil
	}
	if uc.storage == nil {
		return &ListingResponse{Envelope: envelopeFailureMessage("thumbnail storage is not configured")}, nil
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Failed to upload listing thumbnail", zap.String("listing_id", listingID), zap.Error(err))
		return &ListingResponse{Envelope: envelopeFailure(err)}, nil
	}

	listing, err := uc.listings.UpdateListing(ctx, listingID, domain.UpdateListingParams{PhotoThumbnail: &url})
	if err != nil {
		uc.logger.Warn("Thumbnail uploaded but listing update failed", zap.String("listing_id", listingID), zap.String("url", url), zap.Error(err))
		return &ListingResponse{Envelope: envelopeFailure(err)}, nil
	}
	return &ListingResponse{Envelope: envelopeOK(MessageListingUpdated), Listing: listing}, nil
}

var thumbnailExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

func validateThumbnail(fileName string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: thumbnail is empty", domain.ErrValidation)
	}
	if len(data) > MaxThumbnailBytes {
		return fmt.Errorf("%w: thumbnail exceeds %d bytes", domain.ErrValidation, MaxThumbnailBytes)
	}
	if !thumbnailExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return fmt.Errorf("%w: unsupported thumbnail type %q", domain.ErrValidation, filepath.Ext(fileName))
	}
	return nil
}
