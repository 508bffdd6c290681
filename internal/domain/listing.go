package domain

import (
	"fmt"
	"strings"
	"time"
)

// --- Location Type Enum ---

// LocationType is the kind of place a listing offers.
type LocationType string

const (
	LocationSpaceship LocationType = "SPACESHIP"
	LocationHouse     LocationType = "HOUSE"
	LocationCampsite  LocationType = "CAMPSITE"
	LocationApartment LocationType = "APARTMENT"
	LocationRoom      LocationType = "ROOM"
)

// IsValid checks if the LocationType is one of the defined constants.
func (t LocationType) IsValid() bool {
	switch t {
	case LocationSpaceship, LocationHouse, LocationCampsite, LocationApartment, LocationRoom:
		return true
	}
	return false
}

// --- Amenity Category Enum ---

// AmenityCategory groups amenities for display.
type AmenityCategory string

const (
	AmenityAccommodationDetails AmenityCategory = "ACCOMMODATION_DETAILS"
	AmenitySpaceSurvival        AmenityCategory = "SPACE_SURVIVAL"
	AmenityOutdoors             AmenityCategory = "OUTDOORS"
)

// Label returns the human readable category name.
func (c AmenityCategory) Label() string {
	switch c {
	case AmenityAccommodationDetails:
		return "Accommodation Details"
	case AmenitySpaceSurvival:
		return "Space Survival"
	case AmenityOutdoors:
		return "Outdoors"
	}
	return string(c)
}

// Amenity is an item of the amenity catalog.
type Amenity struct {
	ID       string          `json:"id"`
	Category AmenityCategory `json:"category"`
	Name     string          `json:"name"`
}

// --- Listing Entity ---

// Listing is a place offered by a host. HostID is a foreign key owned by the
// accounts side; the host itself is never embedded.
type Listing struct {
	ID             string       `json:"id"`
	HostID         string       `json:"hostId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	PhotoThumbnail string       `json:"photoThumbnail"`
	NumOfBeds      int          `json:"numOfBeds"`
	CostPerNight   float64      `json:"costPerNight"`
	LocationType   LocationType `json:"locationType"`
	Amenities      []Amenity    `json:"amenities"`
	IsFeatured     bool         `json:"isFeatured"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ListingSortBy orders search results.
type ListingSortBy string

const (
	SortByCostAsc  ListingSortBy = "COST_ASC"
	SortByCostDesc ListingSortBy = "COST_DESC"
)

// ListingFilter is the query accepted by ListingsPort.GetListings.
type ListingFilter struct {
	NumOfBeds int
	Page      int
	Limit     int
	SortBy    ListingSortBy
}

const (
	DefaultListingPage  = 1
	DefaultListingLimit = 5
)

// Normalize fills in paging defaults.
func (f ListingFilter) Normalize() ListingFilter {
	if f.Page < 1 {
		f.Page = DefaultListingPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultListingLimit
	}
	if f.SortBy != SortByCostAsc && f.SortBy != SortByCostDesc {
		f.SortBy = SortByCostAsc
	}
	return f
}

// CreateListingParams holds the fields needed to create a listing.
type CreateListingParams struct {
	HostID         string
	Title          string
	Description    string
	PhotoThumbnail string
	NumOfBeds      int
	CostPerNight   float64
	LocationType   LocationType
	AmenityIDs     []string
}

// Validate checks the fields a listing cannot be created without.
func (p CreateListingParams) Validate() error {
	switch {
	case p.HostID == "":
		return fmt.Errorf("%w: hostId is required", ErrValidation)
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case p.NumOfBeds < 1:
		return fmt.Errorf("%w: numOfBeds must be at least 1", ErrValidation)
	case p.CostPerNight <= 0:
		return fmt.Errorf("%w: costPerNight must be greater than 0", ErrValidation)
	case !p.LocationType.IsValid():
		return fmt.Errorf("%w: unknown locationType %q", ErrValidation, p.LocationType)
	}
	return nil
}

// UpdateListingParams carries partial updates; nil fields are left untouched.
type UpdateListingParams struct {
	Title          *string
	Description    *string
	PhotoThumbnail *string
	NumOfBeds      *int
	CostPerNight   *float64
	LocationType   *LocationType
	AmenityIDs     []string
}

// Validate checks every field that is set.
func (p UpdateListingParams) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if p.NumOfBeds != nil && *p.NumOfBeds < 1 {
		return fmt.Errorf("%w: numOfBeds must be at least 1", ErrValidation)
	}
	if p.CostPerNight != nil && *p.CostPerNight <= 0 {
		return fmt.Errorf("%w: costPerNight must be greater than 0", ErrValidation)
	}
	if p.LocationType != nil && !p.LocationType.IsValid() {
		return fmt.Errorf("%w: unknown locationType %q", ErrValidation, *p.LocationType)
	}
	return nil
}

// IsEmpty reports whether the update carries no changes.
func (p UpdateListingParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.PhotoThumbnail == nil &&
		p.NumOfBeds == nil && p.CostPerNight == nil && p.LocationType == nil && p.AmenityIDs == nil
}
