package usecase

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
)

// Envelope is the uniform mutation result. Failures caught on the mutation
// path are reported here with the cause message passed through unchanged.
type Envelope struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func envelopeOK(message string) Envelope {
	return Envelope{Code: http.StatusOK, Success: true, Message: message}
}

func envelopeFailure(err error) Envelope {
	return envelopeFailureMessage(err.Error())
}

func envelopeFailureMessage(message string) Envelope {
	return Envelope{Code: http.StatusBadRequest, Success: false, Message: message}
}

type ListingResponse struct {
	Envelope
	Listing *domain.Listing `json:"listing,omitempty"`
}

type BookingResponse struct {
	Envelope
	Booking *domain.Booking `json:"booking,omitempty"`
}

type WalletResponse struct {
	Envelope
	Amount *float64 `json:"amount,omitempty"`
}

type GuestReviewResponse struct {
	Envelope
	GuestReview *domain.Review `json:"guestReview,omitempty"`
}

type HostAndLocationReviewsResponse struct {
	Envelope
	HostReview     *domain.Review `json:"hostReview,omitempty"`
	LocationReview *domain.Review `json:"locationReview,omitempty"`
}
