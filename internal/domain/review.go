package domain

import (
	"fmt"
	"time"
)

// --- Review Target Enum ---

// TargetType is what a review is about. The set is closed; AuthorType must
// handle every member.
type TargetType string

const (
	TargetGuest   TargetType = "GUEST"
	TargetHost    TargetType = "HOST"
	TargetListing TargetType = "LISTING"
)

// TargetTypes lists every defined target type.
func TargetTypes() []TargetType {
	return []TargetType{TargetGuest, TargetHost, TargetListing}
}

// IsValid checks if the TargetType is one of the defined constants.
func (t TargetType) IsValid() bool {
	_, err := t.AuthorType()
	return err == nil
}

// AuthorType derives who writes a review of this target: guests review hosts
// and locations, hosts review guests.
func (t TargetType) AuthorType() (EntityType, error) {
	switch t {
	case TargetListing, TargetHost:
		return EntityGuest, nil
	case TargetGuest:
		return EntityHost, nil
	}
	return "", fmt.Errorf("%w: unknown review target type %q", ErrValidation, t)
}

// --- Review Entity ---

// Review is a rating left for one side of a booking. At most one review exists
// per (BookingID, TargetType).
type Review struct {
	ID         string     `json:"id"`
	BookingID  string     `json:"bookingId"`
	AuthorID   string     `json:"authorId"`
	TargetType TargetType `json:"targetType"`
	TargetID   string     `json:"targetId"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"createdAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// CreateReviewParams holds the fields for ReviewsPort.CreateReviewFor*.
// TargetID is the reviewed guest, host or listing.
type CreateReviewParams struct {
	BookingID string
	TargetID  string
	AuthorID  string
	Text      string
	Rating    int
}

// Validate checks the review fields.
func (p CreateReviewParams) Validate() error {
	if p.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrValidation)
	}
	if p.TargetID == "" {
		return fmt.Errorf("%w: review target id is required", ErrValidation)
	}
	if p.AuthorID == "" {
		return fmt.Errorf("%w: authorId is required", ErrValidation)
	}
	if p.Rating < MinRating || p.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinRating, MaxRating)
	}
	return nil
}

// NewReview builds a review for target from params.
func NewReview(target TargetType, p CreateReviewParams) (*Review, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown review target type %q", ErrValidation, target)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Review{
		BookingID:  p.BookingID,
		AuthorID:   p.AuthorID,
		TargetType: target,
		TargetID:   p.TargetID,
		Rating:     p.Rating,
		Text:       p.Text,
	}, nil
}
