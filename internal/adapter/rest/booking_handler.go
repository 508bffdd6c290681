package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type createBookingRequest struct {
	ListingID    string `json:"listingId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

func (h *Handler) HandleGuestBookings(w http.ResponseWriter, r *http.Request) {
	status, err := queryStatus(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	bookings, err := h.bookings.GuestBookings(r.Context(), requestContext(r), status)
	h.respondWithBookings(w, r, bookings, err)
}

func (h *Handler) HandleUpcomingGuestBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.UpcomingGuestBookings(r.Context(), requestContext(r))
	h.respondWithBookings(w, r, bookings, err)
}

func (h *Handler) HandlePastGuestBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.PastGuestBookings(r.Context(), requestContext(r))
	h.respondWithBookings(w, r, bookings, err)
}

// HandleHostBookings lists bookings of one hosted listing, optionally by status.
func (h *Handler) HandleHostBookings(w http.ResponseWriter, r *http.Request) {
	listingID := r.URL.Query().Get("listingId")
	if listingID == "" {
		h.respondWithError(w, r, validationError("listingId is required"))
		return
	}
	status, err := queryStatus(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	bookings, err := h.bookings.BookingsForListing(r.Context(), requestContext(r), listingID, status)
	h.respondWithBookings(w, r, bookings, err)
}

func (h *Handler) respondWithBookings(w http.ResponseWriter, r *http.Request, bookings []*domain.Booking, err error) {
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newBookingViews(bookings))
}

func (h *Handler) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetBooking(r.Context(), requestContext(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	view, err := h.newBookingDetailView(r.Context(), booking)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleBookingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ReviewsForBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var out bookingReviewsView
	if out.GuestReview, err = h.newReviewView(reviews.GuestReview); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if out.HostReview, err = h.newReviewView(reviews.HostReview); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if out.LocationReview, err = h.newReviewView(reviews.LocationReview); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, out)
}

// HandleCreateBooking runs the reservation workflow. Workflow failures come
// back as an envelope; only a pricing failure is raised as an error.
func (h *Handler) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	// Identity and role are checked before the body so a bad date never masks a 401.
	if err := requestContext(r).RequireRole(domain.RoleGuest, usecase.MessageGuestsOnlyTrips); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	checkIn, err := domain.ParseDate(req.CheckInDate)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	checkOut, err := domain.ParseDate(req.CheckOutDate)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	resp, err := h.coordinator.CreateBooking(r.Context(), requestContext(r), usecase.CreateBookingInput{
		ListingID:    req.ListingID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithEnvelope(w, resp.Envelope, bookingResponseView{Envelope: resp.Envelope, Booking: h.newBookingView(resp.Booking)})
}
