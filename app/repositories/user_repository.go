// Package repositories holds the MongoDB data access layer. Each repository
// receives the store handle at construction; none reach for globals.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/database"
	"github.com/shashiranjanraj/plantnet/pkg/metrics"
)

// ErrAlreadyRequested is returned when a user retries a pending role request.
var ErrAlreadyRequested = errors.New("role change already requested")

// ErrUserNotFound is returned when no user document matches the email.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles database operations for User.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *database.Mongo) *UserRepository {
	return &UserRepository{col: db.Collection(database.UsersCollection)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveMongoOp(database.UsersCollection, "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find %s: %w", email, err)
	}
	return user, nil
}

// RoleOf returns the stored role for email. Satisfies rbac.LookupRole.
func (r *UserRepository) RoleOf(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Ensure inserts a user with the customer role if no document exists for
// the email. An existing document is returned unchanged, whatever the
// request carried.
func (r *UserRepository) Ensure(ctx context.Context, email string, u models.User) (models.User, error) {
	existing, err := r.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return models.User{}, err
	}

	defer metrics.ObserveMongoOp(database.UsersCollection, "insert", time.Now())

	u.Email = email
	u.Role = models.RoleCustomer
	u.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return models.User{}, fmt.Errorf("users: insert %s: %w", email, err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return u, nil
}

// RequestRoleChange flags the account as awaiting seller verification.
// A missing user or an already-pending request yields ErrAlreadyRequested.
func (r *UserRepository) RequestRoleChange(ctx context.Context, email string) error {
	user, err := r.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return ErrAlreadyRequested
	}
	if err != nil {
		return err
	}
	if user.Status == models.StatusRequested {
		return ErrAlreadyRequested
	}

	defer metrics.ObserveMongoOp(database.UsersCollection, "update", time.Now())

	_, err = r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"status": models.StatusRequested}},
	)
	if err != nil {
		return fmt.Errorf("users: request role change %s: %w", email, err)
	}
	return nil
}

// SetRole applies an admin role decision. The status field keeps the
// Requested marker so the admin dashboard shows the processed request.
func (r *UserRepository) SetRole(ctx context.Context, email, role string) (int64, error) {
	defer metrics.ObserveMongoOp(database.UsersCollection, "update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "status": models.StatusRequested}},
	)
	if err != nil {
		return 0, fmt.Errorf("users: set role %s: %w", email, err)
	}
	return res.ModifiedCount, nil
}

// AllExcept lists every user other than the caller.
func (r *UserRepository) AllExcept(ctx context.Context, email string) ([]models.User, error) {
	defer metrics.ObserveMongoOp(database.UsersCollection, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"email": bson.M{"$ne": email}})
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode list: %w", err)
	}
	return users, nil
}

// Count returns the approximate number of user documents.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveMongoOp(database.UsersCollection, "count", time.Now())

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return n, nil
}
