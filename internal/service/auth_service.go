package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned when the registration email is already in use.
var ErrEmailTaken = errors.New("email already taken")

// ErrUsernameTaken is returned when the registration username is already in use.
var ErrUsernameTaken = errors.New("username already taken")

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not reveal whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput holds the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
	Phone    string
	Country  string
	City     string
}

// AuthService provides registration, login and profile management.
// Every returned user is sanitized: the password hash never leaves this layer.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	DeleteAccount(ctx context.Context, id string) error
	// ListUsers is an admin operation.
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register pre-checks both unique keys so the caller gets a field-specific
// conflict instead of a bare constraint error. The unique indexes still back
// this up against races.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hash),
		FullName: in.FullName,
		Phone:    in.Phone,
		Country:  in.Country,
		City:     in.City,
		Role:     model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user.Sanitize(), nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *authService) UpdateProfile(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *authService) DeleteAccount(ctx context.Context, id string) error {
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return repository.ErrNotFound
	}
	return nil
}

func (s *authService) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Sanitize()
	}
	return users, nil
}
