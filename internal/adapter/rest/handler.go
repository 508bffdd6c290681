package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the usecases over HTTP. Every handler receives the caller
// identity from the JWT middleware and passes it on explicitly.
type Handler struct {
	listings    *usecase.ListingUsecase
	bookings    *usecase.BookingUsecase
	coordinator *usecase.BookingCoordinator
	payments    *usecase.PaymentUsecase
	reviews     *usecase.ReviewUsecase
	refs        *usecase.ReferenceResolver
	metrics     *metrics.MetricsManager
	logger      *logger.Logger
}

// Usecases groups the handler dependencies.
type Usecases struct {
	Listings    *usecase.ListingUsecase
	Bookings    *usecase.BookingUsecase
	Coordinator *usecase.BookingCoordinator
	Payments    *usecase.PaymentUsecase
	Reviews     *usecase.ReviewUsecase
	References  *usecase.ReferenceResolver
}

func NewHandler(uc Usecases, mm *metrics.MetricsManager, log *logger.Logger) *Handler {
	return &Handler{
		listings:    uc.Listings,
		bookings:    uc.Bookings,
		coordinator: uc.Coordinator,
		payments:    uc.Payments,
		reviews:     uc.Reviews,
		refs:        uc.References,
		metrics:     mm,
		logger:      log.Named("HTTPHandler"),
	}
}

func requestContext(r *http.Request) domain.RequestContext {
	return middleware.RequestContextFrom(r.Context())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithEnvelope uses the envelope code as the HTTP status.
func respondWithEnvelope(w http.ResponseWriter, env usecase.Envelope, payload interface{}) {
	respondWithJSON(w, env.Code, payload)
}

// respondWithError writes the error body for failures raised outside envelopes.
func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		message = http.StatusText(http.StatusInternalServerError)
	}
	h.metrics.APIError(routePattern(r), errorType(code))
	respondWithJSON(w, code, usecase.Envelope{Code: code, Success: false, Message: message})
}

// statusFor maps domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReviewAlreadyExists), errors.Is(err, domain.ErrDateRangeUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrComputation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorType(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnprocessableEntity:
		return "computation"
	default:
		return "internal"
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, name)
	}
	return v, nil
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requiredQueryDate(r *http.Request, name string) (time.Time, error) {
	t, err := queryDate(r, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return *t, nil
}

func queryStatus(r *http.Request) (*domain.BookingStatus, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status := domain.BookingStatus(raw)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, raw)
	}
	return &status, nil
}
