package users

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/api/internal/models"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user already exists")
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a repository for the given collection and
// ensures the unique email index (idempotent).
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoRepository) SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"avatar": avatar}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the account record. Deleting an already-removed account is
// not an error; account removal is sequenced and must stay idempotent.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
