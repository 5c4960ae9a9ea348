package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/voyatalk/voyatalk/internal/audit"
	"github.com/voyatalk/voyatalk/internal/auth"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/repository"
)

// ErrInvalidCredentials is returned on an unknown username or a wrong
// password; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

const bcryptCost = 12

type userService struct {
	users    repository.UserRepository
	verifier *auth.Verifier
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, verifier *auth.Verifier) UserService {
	return &userService{users: users, verifier: verifier}
}

func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		Age:          req.Age,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.verifier.Issue(domain.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			audit.Log(ctx, audit.ActionLoginFailed, req.Username, "login failed: unknown user")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.Log(ctx, audit.ActionLoginFailed, user.ID, "login failed: bad password")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.verifier.Issue(domain.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")
	return user, token, nil
}

func (s *userService) Directory(ctx context.Context) ([]domain.DirectoryEntry, error) {
	return s.users.ListAll(ctx)
}
