package profiles

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/api/internal/models"
)

// Service encapsulates profile business logic. Sub-entity ids are assigned
// here so repositories only ever see fully-formed entries.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Upsert creates or updates the caller's profile as a unit.
func (s *Service) Upsert(ctx context.Context, userID primitive.ObjectID, f Fields) (*models.Profile, error) {
	if f.Skills == nil {
		f.Skills = []string{}
	}
	return s.repo.Upsert(ctx, userID, f)
}

func (s *Service) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]*models.Profile, error) {
	return s.repo.FindAll(ctx)
}

// AddExperience prepends a new entry to the caller's experience list.
func (s *Service) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	exp.ID = primitive.NewObjectID()
	return s.repo.AddExperience(ctx, userID, exp)
}

func (s *Service) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error) {
	return s.repo.RemoveExperience(ctx, userID, expID)
}

func (s *Service) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	edu.ID = primitive.NewObjectID()
	return s.repo.AddEducation(ctx, userID, edu)
}

func (s *Service) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error) {
	return s.repo.RemoveEducation(ctx, userID, eduID)
}

func (s *Service) Delete(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.Delete(ctx, userID)
}
