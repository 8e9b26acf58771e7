package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

func TestAuthService_Register_Success(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user-1"
			created = user
			return nil
		},
	}
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "amina@example.com",
		Username: "amina",
		Password: "s3cret-pass",
		FullName: "Amina K",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, user.Role)
	}
	if user.Password != "" {
		t.Errorf("password hash leaked in response")
	}
	if created == nil {
		t.Fatal("create not called")
	}
	if created.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email}, nil
		},
	}
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "taken@example.com", Username: "new", Password: "pw",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user-1", Username: username}, nil
		},
	}
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "new@example.com", Username: "taken", Password: "pw",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-pw"), bcrypt.MinCost)
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == "amina@example.com" {
				return &model.User{ID: "user-1", Email: email, Password: string(hash)}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(repo)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "amina@example.com", "correct-pw", nil},
		{"wrong password", "amina@example.com", "wrong", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "correct-pw", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if user.Password != "" {
				t.Error("password hash leaked in response")
			}
		})
	}
}

func TestAuthService_DeleteAccount_NotFound(t *testing.T) {
	repo := &mockUserRepo{
		deleteFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewAuthService(repo)

	err := svc.DeleteAccount(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
