package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. Mutations
// hold the lock for the whole check-and-modify step, matching the atomicity
// the Mongo implementation gets from guarded updates.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*models.Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*models.Post)}
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	cp := clonePost(p)
	r.store[p.ID] = cp
	return p, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Post, 0, len(r.store))
	for _, p := range r.store {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePost(p), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.store {
		if p.User == userID {
			delete(r.store, id)
		}
	}
	return nil
}

func (r *MemoryRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[postID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, l := range p.Likes {
		if l.User == userID {
			return nil, ErrAlreadyLiked
		}
	}
	p.Likes = append([]models.Like{{User: userID}}, p.Likes...)
	return append([]models.Like(nil), p.Likes...), nil
}

func (r *MemoryRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[postID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := p.Likes[:0]
	removed := false
	for _, l := range p.Likes {
		if l.User == userID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return nil, ErrNotLiked
	}
	p.Likes = kept
	return append([]models.Like(nil), p.Likes...), nil
}

func (r *MemoryRepository) AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[postID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Comments = append([]models.Comment{c}, p.Comments...)
	return append([]models.Comment(nil), p.Comments...), nil
}

func (r *MemoryRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[postID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := p.Comments[:0]
	removed := false
	for _, c := range p.Comments {
		if c.ID == commentID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil, ErrCommentNotFound
	}
	p.Comments = kept
	return append([]models.Comment(nil), p.Comments...), nil
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Likes = append([]models.Like(nil), p.Likes...)
	cp.Comments = append([]models.Comment(nil), p.Comments...)
	return &cp
}
