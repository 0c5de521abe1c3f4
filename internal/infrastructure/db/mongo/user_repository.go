package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	RealName       string             `bson:"real_name,omitempty"`
	PasswordHash   string             `bson:"password_hash"`
	Balance        int                `bson:"balance"`
	BillingAddress string             `bson:"billing_address"`
	PostalCode     string             `bson:"postal_code"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		RealName:       d.RealName,
		PasswordHash:   d.PasswordHash,
		Balance:        d.Balance,
		BillingAddress: d.BillingAddress,
		PostalCode:     d.PostalCode,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new user. Unique-index violations on email or username
// map to the corresponding domain error.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Username:       user.Username,
		Email:          user.Email,
		RealName:       user.RealName,
		PasswordHash:   user.PasswordHash,
		Balance:        user.Balance,
		BillingAddress: user.BillingAddress,
		PostalCode:     user.PostalCode,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids behave like absent users, not infrastructure errors.
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// Update overwrites every mutable field of the stored user in one write.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"username":        user.Username,
		"email":           user.Email,
		"password_hash":   user.PasswordHash,
		"billing_address": user.BillingAddress,
		"postal_code":     user.PostalCode,
		"updated_at":      user.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateUserError(err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DebitBalance subtracts amount only when the balance covers it. The filter
// and the $inc run as one storage operation, so concurrent debits cannot
// drive the balance negative.
func (r *UserRepository) DebitBalance(ctx context.Context, id string, amount int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	filter := bson.M{"_id": oid, "balance": bson.M{"$gte": amount}}
	res := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"balance": -amount}})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the user is gone or the balance is short; tell them apart.
			if _, findErr := r.FindByID(ctx, id); errors.Is(findErr, domain.ErrUserNotFound) {
				return domain.ErrUserNotFound
			}
			return domain.ErrInsufficientFunds
		}
		return fmt.Errorf("debit balance: %w", err)
	}
	return nil
}

func (r *UserRepository) CreditBalance(ctx context.Context, id string, amount int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"balance": amount}})
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique indexes backing the email and username
// constraints.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// duplicateUserError maps a duplicate-key error to the constraint that
// triggered it by inspecting the offending index name.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), "username") {
		return domain.ErrUsernameTaken
	}
	return domain.ErrEmailTaken
}
