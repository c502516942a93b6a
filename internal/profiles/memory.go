package profiles

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It mirrors
// the Mongo implementation's semantics, including idempotent pulls.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*models.Profile // keyed by owning user
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*models.Profile)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, userID primitive.ObjectID, f Fields) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[userID]
	if !ok {
		p = &models.Profile{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Date:       time.Now().UTC(),
			Experience: []models.Experience{},
			Education:  []models.Education{},
		}
		r.store[userID] = p
	}
	p.Company = f.Company
	p.Website = f.Website
	p.Location = f.Location
	p.Status = f.Status
	p.Skills = f.Skills
	p.Bio = f.Bio
	p.GithubUsername = f.GithubUsername
	p.Social = f.Social
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Profile, 0, len(r.store))
	for _, p := range r.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepository) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Experience = append([]models.Experience{exp}, p.Experience...)
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	p.Education = append([]models.Education{edu}, p.Education...)
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.store[userID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, userID)
	return nil
}
