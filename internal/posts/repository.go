package posts

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
	ErrNotFound        = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment not found")
)

// Repository defines persistence operations for posts. Like and comment
// mutations are guarded single-document updates: the membership condition is
// part of the filter, so two concurrent likes of the same post cannot lose an
// update.
type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindAll(ctx context.Context) ([]*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindAll returns all posts, newest first.
func (r *MongoRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Post{}
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes every post authored by the user. Used by account
// removal; deleting zero posts is fine.
func (r *MongoRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

// AddLike prepends a like if the user has not liked the post yet. The
// not-yet-liked condition lives in the update filter, so the check and the
// insert are one atomic step.
func (r *MongoRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	filter := bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}}
	update := bson.M{"$push": bson.M{"likes": bson.M{"$each": []models.Like{{User: userID}}, "$position": 0}}}
	var p models.Post
	err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&p)
	if err == nil {
		return p.Likes, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	// no match: either the post is gone or the user already liked it
	if _, err := r.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyLiked
}

// RemoveLike pulls the user's like; the liked condition is part of the
// filter, mirroring AddLike.
func (r *MongoRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	filter := bson.M{"_id": postID, "likes.user": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	var p models.Post
	err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&p)
	if err == nil {
		return p.Likes, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if _, err := r.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, ErrNotLiked
}

func (r *MongoRepository) AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) ([]models.Comment, error) {
	filter := bson.M{"_id": postID}
	update := bson.M{"$push": bson.M{"comments": bson.M{"$each": []models.Comment{c}, "$position": 0}}}
	var p models.Post
	if err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment pulls the comment by its own id. The comment-exists condition
// is part of the filter so a repeated delete reports ErrCommentNotFound
// instead of silently succeeding.
func (r *MongoRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	var p models.Post
	err := r.col.FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&p)
	if err == nil {
		return p.Comments, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if _, err := r.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, ErrCommentNotFound
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
