package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

const collectionBookings = "bookings"

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

type bookingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListingID string             `bson:"listing_id"`
	UserID    string             `bson:"user_id"`
	OwnerID   string             `bson:"owner_id"`
	StartDate time.Time          `bson:"start_date"`
	EndDate   time.Time          `bson:"end_date"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        d.ID.Hex(),
		ListingID: d.ListingID,
		UserID:    d.UserID,
		OwnerID:   d.OwnerID,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bookingDoc{
		ListingID: booking.ListingID,
		UserID:    booking.UserID,
		OwnerID:   booking.OwnerID,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		Price:     booking.Price,
		CreatedAt: booking.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	created := *booking
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookingRepository) FindByListing(ctx context.Context, listingID string) ([]*domain.Booking, error) {
	return r.findAll(ctx, bson.M{"listing_id": listingID})
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.findAll(ctx, bson.M{"user_id": userID})
}

// EnsureIndexes creates the lookup indexes used by the overlap resolver and
// the per-user booking view.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "start_date", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookingRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	var bookings []*domain.Booking
	for cur.Next(ctx) {
		var doc bookingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode booking: %w", err)
		}
		bookings = append(bookings, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}
