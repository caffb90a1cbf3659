package users

import (
	"context"
	"errors"
	"strings"

	"github.com/sriniyarram/AI-PoweredDocumentProcess/internal/shared/server/middleware"
)

// Service contains account lookup and credential matching.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Authenticate matches username and password against the seeded accounts.
// On success it returns the public projection plus an opaque bearer token.
// The token is attribution only; it carries no signature.
func (s *Service) Authenticate(ctx context.Context, username, password string) (PublicUser, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return PublicUser{}, "", ErrInvalidCredentials
	}

	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PublicUser{}, "", ErrInvalidCredentials
		}
		return PublicUser{}, "", err
	}
	if u.Password != password {
		return PublicUser{}, "", ErrInvalidCredentials
	}

	return toPublic(u), middleware.TokenPrefix + u.ID, nil
}

// List returns the public projections of all accounts.
func (s *Service) List(ctx context.Context) ([]PublicUser, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublicUser, 0, len(all))
	for _, u := range all {
		out = append(out, toPublic(u))
	}
	return out, nil
}
