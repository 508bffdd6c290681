package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// HumanReadableLayout is used when dates are rendered for display.
const HumanReadableLayout = "Jan 2, 2006"

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, raw)
	}
	return t, nil
}

// TruncateDay drops the clock part of t, in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Date Range ---

// DateRange is the half-open stay [CheckInDate, CheckOutDate).
type DateRange struct {
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
}

// NewDateRange builds a validated range, truncated to whole days.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckInDate: TruncateDay(checkIn), CheckOutDate: TruncateDay(checkOut)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate enforces checkIn < checkOut.
func (r DateRange) Validate() error {
	if r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() {
		return fmt.Errorf("%w: checkInDate and checkOutDate are required", ErrValidation)
	}
	if !r.CheckInDate.Before(r.CheckOutDate) {
		return fmt.Errorf("%w: checkInDate must be before checkOutDate", ErrValidation)
	}
	return nil
}

// Nights is the number of nights in the stay.
func (r DateRange) Nights() int {
	return int(TruncateDay(r.CheckOutDate).Sub(TruncateDay(r.CheckInDate)).Hours() / 24)
}

// EachNight returns the start of every night in the stay.
func (r DateRange) EachNight() []time.Time {
	nights := make([]time.Time, 0, r.Nights())
	for d := TruncateDay(r.CheckInDate); d.Before(TruncateDay(r.CheckOutDate)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// Overlaps reports whether the two stays share at least one night.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckInDate.Before(other.CheckOutDate) && other.CheckInDate.Before(r.CheckOutDate)
}

// TotalCost prices the stay at costPerNight.
func TotalCost(costPerNight float64, r DateRange) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	return costPerNight * float64(r.Nights()), nil
}

// --- Booking Status Enum ---

// BookingStatus is derived from the stay dates, never stored.
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "UPCOMING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// IsValid checks if the BookingStatus is one of the defined constants.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusUpcoming, BookingStatusCompleted:
		return true
	}
	return false
}

// --- Booking Entity ---

// Booking is a guest's reservation of a listing. It is only created through
// the booking transaction and never updated in place.
type Booking struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listingId"`
	GuestID      string    `json:"guestId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	TotalCost    float64   `json:"totalCost"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Range returns the booked stay.
func (b Booking) Range() DateRange {
	return DateRange{CheckInDate: b.CheckInDate, CheckOutDate: b.CheckOutDate}
}

// Status is COMPLETED once the check-out day has passed relative to now.
func (b Booking) Status(now time.Time) BookingStatus {
	if TruncateDay(b.CheckOutDate).Before(TruncateDay(now)) {
		return BookingStatusCompleted
	}
	return BookingStatusUpcoming
}

// CreateBookingParams holds the fields persisted by BookingsPort.CreateBooking.
type CreateBookingParams struct {
	ListingID string
	GuestID   string
	Range     DateRange
	TotalCost float64
}

// Validate checks the booking fields.
func (p CreateBookingParams) Validate() error {
	if p.ListingID == "" {
		return fmt.Errorf("%w: listingId is required", ErrValidation)
	}
	if p.GuestID == "" {
		return fmt.Errorf("%w: guestId is required", ErrValidation)
	}
	if p.TotalCost < 0 {
		return fmt.Errorf("%w: totalCost cannot be negative", ErrValidation)
	}
	return p.Range.Validate()
}
