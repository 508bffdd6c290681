package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every route. JWTAuth runs for all of them: requests without
// a token pass through anonymously and the usecases decide what they may do.
func NewRouter(h *Handler, jwtSecret string, mm *metrics.MetricsManager, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log.Named("HTTP"), mm))
	r.Use(middleware.JWTAuth(jwtSecret, log))

	SetupListingRoutes(r, h)
	SetupBookingRoutes(r, h)
	SetupWalletRoutes(r, h)
	SetupReviewRoutes(r, h)
	return r
}

func SetupListingRoutes(mux chi.Router, h *Handler) {
	mux.Get("/api/listings", h.HandleSearchListings)
	mux.Post("/api/listings", h.HandleCreateListing)
	mux.Get("/api/listings/featured", h.HandleFeaturedListings)
	mux.Get("/api/listings/amenities", h.HandleListingAmenities)
	mux.Get("/api/host/listings", h.HandleHostListings)

	mux.Route("/api/listings/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGetListing)
		r.Patch("/", h.HandleUpdateListing)
		r.Post("/thumbnail", h.HandleUploadThumbnail)
		r.Get("/total-cost", h.HandleTotalCost)
		r.Get("/booked-dates", h.HandleCurrentlyBookedDates)
		r.Get("/bookings", h.HandleListingBookings)
		r.Get("/upcoming-bookings", h.HandleNumberOfUpcomingBookings)
		r.Get("/reviews", h.HandleListingReviews)
		r.Get("/rating", h.HandleListingRating)
	})
	mux.Get("/api/hosts/{id}/rating", h.HandleHostRating)
}

func SetupBookingRoutes(mux chi.Router, h *Handler) {
	mux.Post("/api/bookings", h.HandleCreateBooking)
	mux.Get("/api/bookings/{id}", h.HandleGetBooking)
	mux.Get("/api/bookings/{id}/reviews", h.HandleBookingReviews)

	mux.Get("/api/trips", h.HandleGuestBookings)
	mux.Get("/api/trips/upcoming", h.HandleUpcomingGuestBookings)
	mux.Get("/api/trips/past", h.HandlePastGuestBookings)
	mux.Get("/api/host/bookings", h.HandleHostBookings)
}

func SetupWalletRoutes(mux chi.Router, h *Handler) {
	mux.Get("/api/wallet", h.HandleFunds)
	mux.Post("/api/wallet/funds", h.HandleAddFunds)
}

func SetupReviewRoutes(mux chi.Router, h *Handler) {
	mux.Post("/api/bookings/{id}/guest-review", h.HandleSubmitGuestReview)
	mux.Post("/api/bookings/{id}/host-and-location-reviews", h.HandleSubmitHostAndLocationReviews)
}
