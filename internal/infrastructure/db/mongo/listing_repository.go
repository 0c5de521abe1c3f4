package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

type listingDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	Price            float64            `bson:"price"`
	OwnerID          string             `bson:"owner_id"`
	LastModifiedDate time.Time          `bson:"last_modified_date"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d *listingDoc) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		Price:            d.Price,
		OwnerID:          d.OwnerID,
		LastModifiedDate: d.LastModifiedDate,
		CreatedAt:        d.CreatedAt,
	}
}

// Create inserts a new listing. A unique-index violation on the title maps
// to domain.ErrTitleTaken.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := listingDoc{
		Title:            listing.Title,
		Description:      listing.Description,
		Price:            listing.Price,
		OwnerID:          listing.OwnerID,
		LastModifiedDate: listing.LastModifiedDate,
		CreatedAt:        listing.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTitleTaken
		}
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	created := *listing
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ListingRepository) FindByTitle(ctx context.Context, title string) (*domain.Listing, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find listings by owner: %w", err)
	}
	defer cur.Close(ctx)

	var listings []*domain.Listing
	for cur.Next(ctx) {
		var doc listingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode listing: %w", err)
		}
		listings = append(listings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

// Update overwrites title, description, price, and last modified date in a
// single write.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":              listing.Title,
		"description":        listing.Description,
		"price":              listing.Price,
		"last_modified_date": listing.LastModifiedDate,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTitleTaken
		}
		return fmt.Errorf("update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// EnsureIndexes creates the unique title index and the owner lookup index.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ListingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc listingDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return doc.toDomain(), nil
}
