package rest

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type listingRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	PhotoThumbnail string              `json:"photoThumbnail"`
	NumOfBeds      int                 `json:"numOfBeds"`
	CostPerNight   float64             `json:"costPerNight"`
	LocationType   domain.LocationType `json:"locationType"`
	Amenities      []string            `json:"amenities"`
}

type updateListingRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	PhotoThumbnail *string              `json:"photoThumbnail"`
	NumOfBeds      *int                 `json:"numOfBeds"`
	CostPerNight   *float64             `json:"costPerNight"`
	LocationType   *domain.LocationType `json:"locationType"`
	Amenities      []string             `json:"amenities"`
}

func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	criteria, err := searchCriteria(r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	listings, err := h.listings.SearchListings(r.Context(), criteria)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newListingViews(listings))
}

func searchCriteria(r *http.Request) (usecase.SearchCriteria, error) {
	var c usecase.SearchCriteria
	var err error
	if c.Filter.NumOfBeds, err = queryInt(r, "numOfBeds"); err != nil {
		return c, err
	}
	if c.Filter.Page, err = queryInt(r, "page"); err != nil {
		return c, err
	}
	if c.Filter.Limit, err = queryInt(r, "limit"); err != nil {
		return c, err
	}
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		c.Filter.SortBy = domain.ListingSortBy(sortBy)
		if c.Filter.SortBy != domain.SortByCostAsc && c.Filter.SortBy != domain.SortByCostDesc {
			return c, fmt.Errorf("%w: unknown sortBy %q", domain.ErrValidation, sortBy)
		}
	}
	if c.CheckInDate, err = queryDate(r, "checkInDate"); err != nil {
		return c, err
	}
	if c.CheckOutDate, err = queryDate(r, "checkOutDate"); err != nil {
		return c, err
	}
	return c, nil
}

func (h *Handler) HandleHostListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.HostListings(r.Context(), requestContext(r))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newListingViews(listings))
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newListingView(listing))
}

func (h *Handler) HandleFeaturedListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.FeaturedListings(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newListingViews(listings))
}

func (h *Handler) HandleListingAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.listings.Amenities(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newAmenityViews(amenities))
}

func (h *Handler) HandleTotalCost(w http.ResponseWriter, r *http.Request) {
	checkIn, err := requiredQueryDate(r, "checkInDate")
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	checkOut, err := requiredQueryDate(r, "checkOutDate")
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	cost, err := h.listings.TotalCost(r.Context(), chi.URLParam(r, "id"), checkIn, checkOut)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"totalCost": cost})
}

func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	resp, err := h.listings.CreateListing(r.Context(), requestContext(r), usecase.ListingInput{
		Title:          req.Title,
		Description:    req.Description,
		PhotoThumbnail: req.PhotoThumbnail,
		NumOfBeds:      req.NumOfBeds,
		CostPerNight:   req.CostPerNight,
		LocationType:   req.LocationType,
		AmenityIDs:     req.Amenities,
	})
	h.respondWithListing(w, r, resp, err)
}

func (h *Handler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var req updateListingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	resp, err := h.listings.UpdateListing(r.Context(), requestContext(r), chi.URLParam(r, "id"), domain.UpdateListingParams{
		Title:          req.Title,
		Description:    req.Description,
		PhotoThumbnail: req.PhotoThumbnail,
		NumOfBeds:      req.NumOfBeds,
		CostPerNight:   req.CostPerNight,
		LocationType:   req.LocationType,
		AmenityIDs:     req.Amenities,
	})
	h.respondWithListing(w, r, resp, err)
}

// HandleUploadThumbnail accepts a multipart form with the image in "file".
func (h *Handler) HandleUploadThumbnail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxThumbnailBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondWithError(w, r, fmt.Errorf("%w: multipart field \"file\" is required: %v", domain.ErrValidation, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxThumbnailBytes+1))
	if err != nil {
		h.respondWithError(w, r, fmt.Errorf("%w: could not read upload: %v", domain.ErrValidation, err))
		return
	}
	resp, err := h.listings.UploadThumbnail(r.Context(), requestContext(r), chi.URLParam(r, "id"), header.Filename, data)
	h.respondWithListing(w, r, resp, err)
}

func (h *Handler) respondWithListing(w http.ResponseWriter, r *http.Request, resp *usecase.ListingResponse, err error) {
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithEnvelope(w, resp.Envelope, listingResponseView{Envelope: resp.Envelope, Listing: h.newListingView(resp.Listing)})
}

func (h *Handler) HandleCurrentlyBookedDates(w http.ResponseWriter, r *http.Request) {
	ranges, err := h.bookings.CurrentlyBookedDates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	out := make([]map[string]string, len(ranges))
	for i, rng := range ranges {
		out[i] = map[string]string{
			"checkInDate":  rng.CheckInDate.Format(domain.DateLayout),
			"checkOutDate": rng.CheckOutDate.Format(domain.DateLayout),
		}
	}
	respondWithJSON(w, http.StatusOK, out)
}

// HandleListingBookings lists every booking of a listing the caller hosts.
func (h *Handler) HandleListingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.BookingsForListing(r.Context(), requestContext(r), chi.URLParam(r, "id"), nil)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, h.newBookingViews(bookings))
}

func (h *Handler) HandleNumberOfUpcomingBookings(w http.ResponseWriter, r *http.Request) {
	n, err := h.bookings.NumberOfUpcomingBookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"numberOfUpcomingBookings": n})
}

func (h *Handler) HandleListingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListingReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	views, err := h.newReviewViews(reviews)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, views)
}

func (h *Handler) HandleListingRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.reviews.ListingOverallRating(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]*float64{"overallRating": rating})
}

func (h *Handler) HandleHostRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.reviews.HostOverallRating(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]*float64{"overallRating": rating})
}
