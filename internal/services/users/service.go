// Package users manages the minimal user rows that guesses, results
// and streaks reference. There is no authentication; callers supply
// their identity.
package users

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"github.com/ballknowledge/ballknowledge-go/internal/dependencies/clock"
	"github.com/ballknowledge/ballknowledge-go/internal/model"
	"github.com/ballknowledge/ballknowledge-go/internal/storage"
)

// Service manages user rows
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new user service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// GetOrCreate returns the user with this username, creating the row on
// first sight. Usernames are trimmed and compared case-insensitively.
func (s *Service) GetOrCreate(ctx context.Context, username string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, model.ErrUserNotFound
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	user = &model.User{
		ID:        model.UserID(generateID("user_")),
		Username:  username,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("created user",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// Get returns the user by ID
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// generateID generates a random ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

// Interface for dependency injection
type ServiceInterface interface {
	GetOrCreate(ctx context.Context, username string) (*model.User, error)
	Get(ctx context.Context, id model.UserID) (*model.User, error)
}

var _ ServiceInterface = (*Service)(nil)
