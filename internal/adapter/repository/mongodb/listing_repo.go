package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListingRepository implements domain.ListingsPort using MongoDB.
type ListingRepository struct {
	listings  *mongo.Collection
	amenities *mongo.Collection
	logger    *logger.Logger
}

var _ domain.ListingsPort = (*ListingRepository)(nil)

// NewListingRepository creates a new MongoDB listing repository.
func NewListingRepository(db *mongo.Database, log *logger.Logger) (*ListingRepository, error) {
	listings := db.Collection(listingCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
		{Keys: bson.D{{Key: "num_of_beds", Value: 1}, {Key: "cost_per_night", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultIndexCreateTimeout)
	defer cancel()

	if _, err := listings.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for listings collection", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for listings collection")
	}

	return &ListingRepository{
		listings:  listings,
		amenities: db.Collection(amenityCollectionName),
		logger:    log.Named("ListingRepository"),
	}, nil
}

// GetListings returns one page of listings with at least filter.NumOfBeds beds.
func (r *ListingRepository) GetListings(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	filter = filter.Normalize()
	r.logger.Debug("Finding listings", zap.Any("filter", filter))

	query := bson.M{}
	if filter.NumOfBeds > 0 {
		query["num_of_beds"] = bson.M{"$gte": filter.NumOfBeds}
	}

	direction := 1
	if filter.SortBy == domain.SortByCostDesc {
		direction = -1
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "cost_per_night", Value: direction}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	return r.find(ctx, query, findOptions)
}

func (r *ListingRepository) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc listingDocument
	err = r.listings.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Warn("Listing not found in DB", zap.String("listing_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to get listing by ID from DB", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) GetListingsForUser(ctx context.Context, hostID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"host_id": hostID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *ListingRepository) GetFeaturedListings(ctx context.Context, limit int) ([]*domain.Listing, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"is_featured": true}, findOptions)
}

func (r *ListingRepository) GetAllAmenities(ctx context.Context) ([]domain.Amenity, error) {
	cursor, err := r.amenities.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed to find amenities", zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []amenityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	out := make([]domain.Amenity, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// GetTotalCost prices a stay at the listing's nightly cost. An unknown listing
// is a computation failure, not a not-found.
func (r *ListingRepository) GetTotalCost(ctx context.Context, id string, stay domain.DateRange) (float64, error) {
	listing, err := r.GetListing(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("%w: listing %s not found", domain.ErrComputation, id)
	}
	if err != nil {
		return 0, err
	}
	return domain.TotalCost(listing.CostPerNight, stay)
}

// CreateListing stores a new listing. Unknown amenity ids fail with ErrValidation.
func (r *ListingRepository) CreateListing(ctx context.Context, params domain.CreateListingParams) (*domain.Listing, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	amenities, err := r.resolveAmenities(ctx, params.AmenityIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &listingDocument{
		ID:             primitive.NewObjectID(),
		HostID:         params.HostID,
		Title:          params.Title,
		Description:    params.Description,
		PhotoThumbnail: params.PhotoThumbnail,
		NumOfBeds:      params.NumOfBeds,
		CostPerNight:   params.CostPerNight,
		LocationType:   params.LocationType,
		Amenities:      amenities,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := r.listings.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing into DB", zap.String("host_id", params.HostID), zap.Error(err))
		return nil, fmt.Errorf("%w: db insert failed: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Listing created successfully in DB", zap.String("listing_id", doc.ID.Hex()), zap.String("host_id", params.HostID))
	return doc.toDomain(), nil
}

// UpdateListing applies the non-nil fields of params and returns the updated listing.
func (r *ListingRepository) UpdateListing(ctx context.Context, id string, params domain.UpdateListingParams) (*domain.Listing, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if params.Title != nil {
		set["title"] = *params.Title
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.PhotoThumbnail != nil {
		set["photo_thumbnail"] = *params.PhotoThumbnail
	}
	if params.NumOfBeds != nil {
		set["num_of_beds"] = *params.NumOfBeds
	}
	if params.CostPerNight != nil {
		set["cost_per_night"] = *params.CostPerNight
	}
	if params.LocationType != nil {
		set["location_type"] = *params.LocationType
	}
	if params.AmenityIDs != nil {
		amenities, err := r.resolveAmenities(ctx, params.AmenityIDs)
		if err != nil {
			return nil, err
		}
		set["amenities"] = amenities
	}

	var doc listingDocument
	err = r.listings.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Warn("Listing not found for update in DB", zap.String("listing_id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to update listing in DB", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Listing updated successfully in DB", zap.String("listing_id", id))
	return doc.toDomain(), nil
}

// resolveAmenities loads the catalog entries for ids, preserving their order.
func (r *ListingRepository) resolveAmenities(ctx context.Context, ids []string) ([]amenityDocument, error) {
	if len(ids) == 0 {
		return []amenityDocument{}, nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown amenity %s", domain.ErrValidation, id)
		}
		oids = append(oids, oid)
	}

	cursor, err := r.amenities.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []amenityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	byID := make(map[primitive.ObjectID]amenityDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	out := make([]amenityDocument, 0, len(oids))
	for i, oid := range oids {
		d, ok := byID[oid]
		if !ok {
			return nil, fmt.Errorf("%w: unknown amenity %s", domain.ErrValidation, ids[i])
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *ListingRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Listing, error) {
	cursor, err := r.listings.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to find listings from DB", zap.Any("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: db find failed: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode listings from DB", zap.Error(err))
		return nil, fmt.Errorf("%w: db cursor all failed: %v", domain.ErrRepository, err)
	}
	return toDomainListings(docs), nil
}
