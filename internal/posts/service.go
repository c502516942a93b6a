package posts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/internal/models"
)

// ErrNotOwner means the caller is authenticated but does not own the entity
// it tried to mutate.
var ErrNotOwner = errors.New("user not authorized")

// Service encapsulates post business logic, in particular the ownership
// checks that guard every destructive operation: load, reject if absent,
// reject if the recorded owner differs from the caller, only then mutate.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Create stores a new post carrying a snapshot of the author's name and
// avatar.
func (s *Service) Create(ctx context.Context, author *models.User, text string) (*models.Post, error) {
	p := &models.Post{
		User:   author.ID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) List(ctx context.Context) ([]*models.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// Delete removes a post after verifying the caller authored it.
func (s *Service) Delete(ctx context.Context, postID, callerID primitive.ObjectID) error {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.User != callerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, postID)
}

// DeleteByUser removes every post a user authored (account removal).
func (s *Service) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.DeleteByUser(ctx, userID)
}

func (s *Service) Like(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	return s.repo.AddLike(ctx, postID, userID)
}

func (s *Service) Unlike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	return s.repo.RemoveLike(ctx, postID, userID)
}

// Comment appends a comment authored by the given user.
func (s *Service) Comment(ctx context.Context, postID primitive.ObjectID, author *models.User, text string) ([]models.Comment, error) {
	c := models.Comment{
		ID:     primitive.NewObjectID(),
		User:   author.ID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	}
	return s.repo.AddComment(ctx, postID, c)
}

// DeleteComment removes a comment by its id after verifying the caller wrote
// it. The removal targets the comment id itself, never the caller's id, so a
// user with several comments on one post always deletes the right one.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID, callerID primitive.ObjectID) ([]models.Comment, error) {
	p, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	var target *models.Comment
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			target = &p.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCommentNotFound
	}
	if target.User != callerID {
		return nil, ErrNotOwner
	}
	return s.repo.RemoveComment(ctx, postID, commentID)
}
