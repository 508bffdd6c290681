package rest

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"
)

type amenityView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

func newAmenityViews(amenities []domain.Amenity) []amenityView {
	out := make([]amenityView, len(amenities))
	for i, a := range amenities {
		out[i] = amenityView{ID: a.ID, Category: a.Category.Label(), Name: a.Name}
	}
	return out
}

// listingView renders a listing with its host as a reference stub.
type listingView struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	PhotoThumbnail string              `json:"photoThumbnail"`
	NumOfBeds      int                 `json:"numOfBeds"`
	CostPerNight   float64             `json:"costPerNight"`
	LocationType   domain.LocationType `json:"locationType"`
	Amenities      []amenityView       `json:"amenities"`
	IsFeatured     bool                `json:"isFeatured"`
	Host           domain.EntityRef    `json:"host"`
}

func (h *Handler) newListingView(l *domain.Listing) *listingView {
	if l == nil {
		return nil
	}
	return &listingView{
		ID:             l.ID,
		Title:          l.Title,
		Description:    l.Description,
		PhotoThumbnail: l.PhotoThumbnail,
		NumOfBeds:      l.NumOfBeds,
		CostPerNight:   l.CostPerNight,
		LocationType:   l.LocationType,
		Amenities:      newAmenityViews(l.Amenities),
		IsFeatured:     l.IsFeatured,
		Host:           h.refs.ListingHost(l),
	}
}

func (h *Handler) newListingViews(listings []*domain.Listing) []*listingView {
	out := make([]*listingView, len(listings))
	for i, l := range listings {
		out[i] = h.newListingView(l)
	}
	return out
}

// bookingView renders dates for display and the guest as a reference stub.
// Listing is only filled in when it was fetched in full.
type bookingView struct {
	ID           string               `json:"id"`
	ListingID    string               `json:"listingId"`
	Listing      *listingView         `json:"listing,omitempty"`
	Guest        domain.EntityRef     `json:"guest"`
	CheckInDate  string               `json:"checkInDate"`
	CheckOutDate string               `json:"checkOutDate"`
	TotalPrice   float64              `json:"totalPrice"`
	Status       domain.BookingStatus `json:"status"`
}

func (h *Handler) newBookingView(b *domain.Booking) *bookingView {
	if b == nil {
		return nil
	}
	return &bookingView{
		ID:           b.ID,
		ListingID:    b.ListingID,
		Guest:        h.refs.BookingGuest(b),
		CheckInDate:  h.bookings.HumanReadableDate(b.CheckInDate),
		CheckOutDate: h.bookings.HumanReadableDate(b.CheckOutDate),
		TotalPrice:   b.TotalCost,
		Status:       h.bookings.Status(b),
	}
}

func (h *Handler) newBookingViews(bookings []*domain.Booking) []*bookingView {
	out := make([]*bookingView, len(bookings))
	for i, b := range bookings {
		out[i] = h.newBookingView(b)
	}
	return out
}

// newBookingDetailView also resolves the booked listing in full.
func (h *Handler) newBookingDetailView(ctx context.Context, b *domain.Booking) (*bookingView, error) {
	view := h.newBookingView(b)
	listing, err := h.refs.BookingListing(ctx, b)
	if err != nil {
		return nil, err
	}
	view.Listing = h.newListingView(listing)
	return view, nil
}

type reviewView struct {
	ID         string            `json:"id"`
	Rating     int               `json:"rating"`
	Text       string            `json:"text"`
	TargetType domain.TargetType `json:"targetType"`
	Author     domain.EntityRef  `json:"author"`
}

func (h *Handler) newReviewView(r *domain.Review) (*reviewView, error) {
	if r == nil {
		return nil, nil
	}
	author, err := h.refs.ReviewAuthor(r)
	if err != nil {
		return nil, err
	}
	return &reviewView{ID: r.ID, Rating: r.Rating, Text: r.Text, TargetType: r.TargetType, Author: author}, nil
}

func (h *Handler) newReviewViews(reviews []*domain.Review) ([]*reviewView, error) {
	out := make([]*reviewView, 0, len(reviews))
	for _, r := range reviews {
		v, err := h.newReviewView(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type listingResponseView struct {
	usecase.Envelope
	Listing *listingView `json:"listing"`
}

type bookingResponseView struct {
	usecase.Envelope
	Booking *bookingView `json:"booking"`
}

type guestReviewResponseView struct {
	usecase.Envelope
	GuestReview *reviewView `json:"guestReview"`
}

type hostAndLocationReviewsResponseView struct {
	usecase.Envelope
	HostReview     *reviewView `json:"hostReview"`
	LocationReview *reviewView `json:"locationReview"`
}

type bookingReviewsView struct {
	GuestReview    *reviewView `json:"guestReview"`
	HostReview     *reviewView `json:"hostReview"`
	LocationReview *reviewView `json:"locationReview"`
}
