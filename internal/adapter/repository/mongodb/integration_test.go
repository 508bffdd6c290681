//go:build integration

package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	testDBClient *mongo.Client
	testLogger   *logger.Logger
)

// TestMain starts a throwaway MongoDB container for the repository tests.
func TestMain(m *testing.M) {
	testLogger = logger.NewNop()

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "5.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	mongoURI := fmt.Sprintf("mongodb://root:password@%s/?authSource=admin", resource.GetHostPort("27017/tcp"))

	if err := pool.Retry(func() error {
		var errRetry error
		testDBClient, errRetry = mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
		if errRetry != nil {
			return errRetry
		}
		return testDBClient.Ping(context.Background(), nil)
	}); err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}

	code := m.Run()

	_ = testDBClient.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func freshDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	db := testDBClient.Database(fmt.Sprintf("rentals_%d", time.Now().UnixNano()))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })
	return db
}

func stay(t *testing.T, in, out string) domain.DateRange {
	t.Helper()
	checkIn, err := domain.ParseDate(in)
	require.NoError(t, err)
	checkOut, err := domain.ParseDate(out)
	require.NoError(t, err)
	return domain.DateRange{CheckInDate: checkIn, CheckOutDate: checkOut}
}

func TestBookingRepository_OverlapAndAvailability(t *testing.T) {
	ctx := context.Background()
	repo, err := NewBookingRepository(freshDatabase(t), testLogger)
	require.NoError(t, err)

	july := stay(t, "2031-07-10", "2031-07-13")
	booking, err := repo.CreateBooking(ctx, domain.CreateBookingParams{ListingID: "listing-1", GuestID: "guest-1", Range: july, TotalCost: 300})
	require.NoError(t, err)
	assert.Equal(t, july.CheckInDate, booking.CheckInDate)

	_, err = repo.CreateBooking(ctx, domain.CreateBookingParams{ListingID: "listing-1", GuestID: "guest-2", Range: stay(t, "2031-07-12", "2031-07-15"), TotalCost: 300})
	assert.ErrorIs(t, err, domain.ErrDateRangeUnavailable)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Check-out day is free for the next guest.
	_, err = repo.CreateBooking(ctx, domain.CreateBookingParams{ListingID: "listing-1", GuestID: "guest-2", Range: stay(t, "2031-07-13", "2031-07-15"), TotalCost: 200})
	require.NoError(t, err)

	available, err := repo.IsListingAvailable(ctx, "listing-1", &domain.DateRange{CheckInDate: july.CheckInDate, CheckOutDate: july.CheckOutDate})
	require.NoError(t, err)
	assert.False(t, available)

	available, err = repo.IsListingAvailable(ctx, "listing-1", nil)
	require.NoError(t, err)
	assert.True(t, available)

	guestID, err := repo.GetGuestIDForBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", guestID)

	listingID, err := repo.GetListingIDForBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "listing-1", listingID)

	ranges, err := repo.GetCurrentlyBookedDateRangesForListing(ctx, "listing-1")
	require.NoError(t, err)
	assert.Len(t, ranges, 2)

	assert.Equal(t, "Jul 10, 2031", repo.GetHumanReadableDate(booking.CheckInDate))
}

func TestBookingRepository_ConcurrentOverlapAdmitsOne(t *testing.T) {
	ctx := context.Background()
	repo, err := NewBookingRepository(freshDatabase(t), testLogger)
	require.NoError(t, err)

	august := stay(t, "2031-08-01", "2031-08-04")
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateBooking(ctx, domain.CreateBookingParams{
				ListingID: "listing-1",
				GuestID:   fmt.Sprintf("guest-%d", i),
				Range:     august,
				TotalCost: 100,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	nights, err := repo.nights.CountDocuments(ctx, bson.M{"listing_id": "listing-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, nights)
}

func TestBookingRepository_StatusFilter(t *testing.T) {
	ctx := context.Background()
	repo, err := NewBookingRepository(freshDatabase(t), testLogger)
	require.NoError(t, err)
	repo.now = func() time.Time { return time.Date(2031, 9, 1, 0, 0, 0, 0, time.UTC) }

	_, err = repo.CreateBooking(ctx, domain.CreateBookingParams{ListingID: "l-1", GuestID: "guest-1", Range: stay(t, "2031-08-01", "2031-08-03"), TotalCost: 10})
	require.NoError(t, err)
	_, err = repo.CreateBooking(ctx, domain.CreateBookingParams{ListingID: "l-2", GuestID: "guest-1", Range: stay(t, "2031-09-10", "2031-09-12"), TotalCost: 10})
	require.NoError(t, err)

	upcoming := domain.BookingStatusUpcoming
	completed := domain.BookingStatusCompleted

	next, err := repo.GetBookingsForUser(ctx, "guest-1", &upcoming)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "l-2", next[0].ListingID)

	past, err := repo.GetBookingsForUser(ctx, "guest-1", &completed)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "l-1", past[0].ListingID)

	all, err := repo.GetBookingsForUser(ctx, "guest-1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWalletRepository_DebitNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository(freshDatabase(t), testLogger)

	balance, err := repo.AddFunds(ctx, "guest-1", 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	assert.ErrorIs(t, repo.SubtractFunds(ctx, "guest-1", 150), domain.ErrInsufficientFunds)
	require.NoError(t, repo.SubtractFunds(ctx, "guest-1", 60))

	amount, err := repo.GetUserWalletAmount(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, amount)

	amount, err = repo.GetUserWalletAmount(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestReviewRepository_RejectsResubmissionAndAverages(t *testing.T) {
	ctx := context.Background()
	repo, err := NewReviewRepository(freshDatabase(t), testLogger)
	require.NoError(t, err)

	_, err = repo.CreateReviewForListing(ctx, domain.CreateReviewParams{BookingID: "b-1", TargetID: "listing-1", AuthorID: "guest-1", Rating: 4})
	require.NoError(t, err)
	_, err = repo.CreateReviewForListing(ctx, domain.CreateReviewParams{BookingID: "b-1", TargetID: "listing-1", AuthorID: "guest-1", Rating: 1})
	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)

	_, err = repo.CreateReviewForListing(ctx, domain.CreateReviewParams{BookingID: "b-2", TargetID: "listing-1", AuthorID: "guest-2", Rating: 2})
	require.NoError(t, err)
	// Same booking, different target type.
	_, err = repo.CreateReviewForHost(ctx, domain.CreateReviewParams{BookingID: "b-1", TargetID: "host-1", AuthorID: "guest-1", Rating: 5})
	require.NoError(t, err)

	avg, err := repo.GetOverallRatingForListing(ctx, "listing-1")
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 3.0, *avg, 0.0001)

	none, err := repo.GetOverallRatingForHost(ctx, "host-without-reviews")
	require.NoError(t, err)
	assert.Nil(t, none)

	missing, err := repo.GetReviewForBooking(ctx, domain.TargetGuest, "b-1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListingRepository_CreateSearchAndCost(t *testing.T) {
	ctx := context.Background()
	db := freshDatabase(t)
	repo, err := NewListingRepository(db, testLogger)
	require.NoError(t, err)

	res, err := db.Collection(amenityCollectionName).InsertOne(ctx, amenityDocument{Category: domain.AmenityOutdoors, Name: "Fire pit"})
	require.NoError(t, err)
	amenityID := res.InsertedID.(primitive.ObjectID).Hex()

	cheap, err := repo.CreateListing(ctx, domain.CreateListingParams{HostID: "host-1", Title: "Tent", NumOfBeds: 2, CostPerNight: 20, LocationType: domain.LocationCampsite, AmenityIDs: []string{amenityID}})
	require.NoError(t, err)
	require.Len(t, cheap.Amenities, 1)
	assert.Equal(t, "Fire pit", cheap.Amenities[0].Name)

	_, err = repo.CreateListing(ctx, domain.CreateListingParams{HostID: "host-1", Title: "Pod", NumOfBeds: 3, CostPerNight: 90, LocationType: domain.LocationSpaceship})
	require.NoError(t, err)

	_, err = repo.CreateListing(ctx, domain.CreateListingParams{HostID: "host-1", Title: "Bad", NumOfBeds: 1, CostPerNight: 10, LocationType: domain.LocationRoom, AmenityIDs: []string{"nope"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	desc, err := repo.GetListings(ctx, domain.ListingFilter{NumOfBeds: 2, SortBy: domain.SortByCostDesc})
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "Pod", desc[0].Title)

	cost, err := repo.GetTotalCost(ctx, cheap.ID, stay(t, "2031-07-10", "2031-07-13"))
	require.NoError(t, err)
	assert.Equal(t, 60.0, cost)

	_, err = repo.GetTotalCost(ctx, cheap.ID, stay(t, "2031-07-13", "2031-07-10"))
	assert.ErrorIs(t, err, domain.ErrComputation)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-object-id"} {
		_, err = repo.GetTotalCost(ctx, id, stay(t, "2031-07-10", "2031-07-13"))
		assert.ErrorIs(t, err, domain.ErrComputation, id)
		assert.NotErrorIs(t, err, domain.ErrNotFound, id)
	}

	title := "Big tent"
	updated, err := repo.UpdateListing(ctx, cheap.ID, domain.UpdateListingParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Len(t, updated.Amenities, 1)
}
