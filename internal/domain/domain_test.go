package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestTargetType_AuthorType(t *testing.T) {
	expected := map[TargetType]EntityType{
		TargetListing: EntityGuest,
		TargetHost:    EntityGuest,
		TargetGuest:   EntityHost,
	}
	for _, target := range TargetTypes() {
		author, err := target.AuthorType()
		require.NoError(t, err, target)
		assert.Equal(t, expected[target], author, target)
	}
	assert.Len(t, expected, len(TargetTypes()))

	_, err := TargetType("BOOKING").AuthorType()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateRange(t *testing.T) {
	stay, err := NewDateRange(mustDate(t, "2025-03-01"), mustDate(t, "2025-03-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, stay.Nights())
	assert.Len(t, stay.EachNight(), 3)
	assert.Equal(t, mustDate(t, "2025-03-03"), stay.EachNight()[2])

	_, err = NewDateRange(mustDate(t, "2025-03-04"), mustDate(t, "2025-03-04"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDate("03/04/2025")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateRange_Overlaps(t *testing.T) {
	a := DateRange{CheckInDate: mustDate(t, "2025-03-01"), CheckOutDate: mustDate(t, "2025-03-05")}
	b := DateRange{CheckInDate: mustDate(t, "2025-03-04"), CheckOutDate: mustDate(t, "2025-03-06")}
	c := DateRange{CheckInDate: mustDate(t, "2025-03-05"), CheckOutDate: mustDate(t, "2025-03-07")}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "check-out day is free for the next check-in")
}

func TestTotalCost(t *testing.T) {
	stay := DateRange{CheckInDate: mustDate(t, "2025-03-01"), CheckOutDate: mustDate(t, "2025-03-04")}
	cost, err := TotalCost(50, stay)
	require.NoError(t, err)
	assert.Equal(t, 150.0, cost)

	_, err = TotalCost(50, DateRange{CheckInDate: stay.CheckOutDate, CheckOutDate: stay.CheckInDate})
	assert.ErrorIs(t, err, ErrComputation)
}

func TestBooking_Status(t *testing.T) {
	b := Booking{CheckInDate: mustDate(t, "2025-03-01"), CheckOutDate: mustDate(t, "2025-03-04")}

	assert.Equal(t, BookingStatusUpcoming, b.Status(mustDate(t, "2025-02-20")))
	assert.Equal(t, BookingStatusUpcoming, b.Status(mustDate(t, "2025-03-04").Add(10*time.Hour)))
	assert.Equal(t, BookingStatusCompleted, b.Status(mustDate(t, "2025-03-05")))
}

func TestRequestContext(t *testing.T) {
	err := Anonymous().RequireIdentity()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, AuthenticationMessage, err.Error())

	guest := NewRequestContext("guest-1", RoleGuest, "")
	assert.NoError(t, guest.RequireRole(RoleGuest, "guests only"))

	err = guest.RequireRole(RoleHost, "Only hosts have access to listings.")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, errors.Is(err, ErrUnauthenticated))
	assert.Equal(t, "Only hosts have access to listings.", err.Error())

	err = Anonymous().RequireRole(RoleHost, "Only hosts have access to listings.")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateListingParams_Validate(t *testing.T) {
	valid := CreateListingParams{
		HostID: "host-1", Title: "Cozy pod", NumOfBeds: 2, CostPerNight: 120, LocationType: LocationSpaceship,
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.LocationType = "CASTLE"
	assert.ErrorIs(t, invalid.Validate(), ErrValidation)

	invalid = valid
	invalid.NumOfBeds = 0
	assert.ErrorIs(t, invalid.Validate(), ErrValidation)
}

func TestNewReview(t *testing.T) {
	params := CreateReviewParams{BookingID: "b-1", TargetID: "g-1", AuthorID: "h-1", Rating: 5, Text: "great"}
	review, err := NewReview(TargetGuest, params)
	require.NoError(t, err)
	assert.Equal(t, TargetGuest, review.TargetType)

	params.Rating = 6
	_, err = NewReview(TargetGuest, params)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAmenityCategory_Label(t *testing.T) {
	assert.Equal(t, "Accommodation Details", AmenityAccommodationDetails.Label())
	assert.Equal(t, "Space Survival", AmenitySpaceSurvival.Label())
	assert.Equal(t, "Outdoors", AmenityOutdoors.Label())
}
