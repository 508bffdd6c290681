package rest

import (
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type reviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (req reviewRequest) input() usecase.ReviewInput {
	return usecase.ReviewInput{Rating: req.Rating, Text: req.Text}
}

type hostAndLocationReviewsRequest struct {
	HostReview     *reviewRequest `json:"hostReview"`
	LocationReview *reviewRequest `json:"locationReview"`
}

func validationError(message string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, message)
}

// HandleSubmitGuestReview lets the host of a booking review its guest.
func (h *Handler) HandleSubmitGuestReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	resp, err := h.reviews.SubmitGuestReview(r.Context(), requestContext(r), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	review, err := h.newReviewView(resp.GuestReview)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithEnvelope(w, resp.Envelope, guestReviewResponseView{Envelope: resp.Envelope, GuestReview: review})
}

// HandleSubmitHostAndLocationReviews lets a guest review the host and the listing.
func (h *Handler) HandleSubmitHostAndLocationReviews(w http.ResponseWriter, r *http.Request) {
	var req hostAndLocationReviewsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if req.HostReview == nil || req.LocationReview == nil {
		h.respondWithError(w, r, validationError("hostReview and locationReview are required"))
		return
	}
	resp, err := h.reviews.SubmitHostAndLocationReviews(r.Context(), requestContext(r), chi.URLParam(r, "id"),
		req.HostReview.input(), req.LocationReview.input())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	out := hostAndLocationReviewsResponseView{Envelope: resp.Envelope}
	if out.HostReview, err = h.newReviewView(resp.HostReview); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if out.LocationReview, err = h.newReviewView(resp.LocationReview); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithEnvelope(w, resp.Envelope, out)
}
