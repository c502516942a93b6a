package users

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/api/internal/avatar"
	"github.com/devconnect/api/internal/models"
)

// ErrInvalidCredentials is returned for both unknown email and password
// mismatch so a caller cannot learn which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// bcrypt cost for newly stored password hashes.
const hashCost = 10

// Service encapsulates account business logic: registration, credential
// verification, and account removal.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Register creates a new account. The avatar URI is derived from the email;
// the password is stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   avatar.URL(email),
	}
	// the unique email index backstops the pre-check under concurrency
	return s.repo.Create(ctx, u)
}

// Authenticate verifies email/password and returns the account on success.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) SetAvatar(ctx context.Context, id primitive.ObjectID, avatarURL string) error {
	return s.repo.SetAvatar(ctx, id, avatarURL)
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
