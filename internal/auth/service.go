package auth

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
	"github.com/rdjhm0765/loanops-copilot/internal/store"
)

// Service manages operator accounts over the configured store.
type Service struct {
	store store.Store
}

// NewService creates an auth service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Register creates a new user with a hashed password. Returns false when
// the username is already taken.
func (s *Service) Register(ctx context.Context, username, password, fullName, role string) (bool, error) {
	if username == "" || password == "" {
		return false, eris.New("auth: username and password are required")
	}
	if role == "" {
		role = model.RoleUser
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	created, err := s.store.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if created {
		zap.L().Info("user created", zap.String("username", username), zap.String("role", role))
	}
	return created, nil
}

// Authenticate verifies credentials and returns a fresh session, or nil
// when the user is unknown or the password does not match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return &model.Session{
		Username:  user.Username,
		Role:      user.Role,
		LoginTime: time.Now().UTC(),
		IsActive:  true,
	}, nil
}

// SetPassword replaces a user's password hash.
func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return eris.New("auth: password is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.UpdateUser(ctx, username, model.UserUpdate{PasswordHash: &hash})
}
