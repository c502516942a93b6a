package profiles

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

var ErrNotFound = errors.New("profile not found")

// Fields is the writable portion of a profile; Upsert replaces these as a
// unit, keyed by the owning user.
type Fields struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         models.Social
}

// Repository defines persistence operations for profiles. All sub-list
// mutations are single atomic document updates; there is no
// find-then-splice-then-save sequence anywhere.
type Repository interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, f Fields) (*models.Profile, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]*models.Profile, error)
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a repository for the given collection and
// ensures the unique per-user index (idempotent).
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

func (r *MongoRepository) Upsert(ctx context.Context, userID primitive.ObjectID, f Fields) (*models.Profile, error) {
	update := bson.M{
		"$set": bson.M{
			"company":        f.Company,
			"website":        f.Website,
			"location":       f.Location,
			"status":         f.Status,
			"skills":         f.Skills,
			"bio":            f.Bio,
			"githubusername": f.GithubUsername,
			"social":         f.Social,
		},
		"$setOnInsert": bson.M{
			"user":       userID,
			"date":       time.Now().UTC(),
			"experience": []models.Experience{},
			"education":  []models.Education{},
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var p models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]*models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Profile{}
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

// AddExperience prepends the entry atomically ($push with $position 0).
func (r *MongoRepository) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	update := bson.M{"$push": bson.M{"experience": bson.M{"$each": []models.Experience{exp}, "$position": 0}}}
	return r.findOneAndUpdate(ctx, userID, update)
}

// RemoveExperience pulls the entry by id atomically. Pulling an id that is
// not present leaves the profile unchanged.
func (r *MongoRepository) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error) {
	update := bson.M{"$pull": bson.M{"experience": bson.M{"_id": expID}}}
	return r.findOneAndUpdate(ctx, userID, update)
}

func (r *MongoRepository) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	update := bson.M{"$push": bson.M{"education": bson.M{"$each": []models.Education{edu}, "$position": 0}}}
	return r.findOneAndUpdate(ctx, userID, update)
}

func (r *MongoRepository) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error) {
	update := bson.M{"$pull": bson.M{"education": bson.M{"_id": eduID}}}
	return r.findOneAndUpdate(ctx, userID, update)
}

// Delete removes the profile; missing profiles are not an error (account
// removal is sequenced and must stay idempotent).
func (r *MongoRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

func (r *MongoRepository) findOneAndUpdate(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, returnAfter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
