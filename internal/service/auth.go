// Package service provides the CMS business logic for accounts, documents
// and media, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/atinyakov/filecms/internal/models"
	"github.com/atinyakov/filecms/internal/repository"
)

// CredentialRepository defines the persistence operations
// required by the authentication service.
type CredentialRepository interface {
	// Load returns the full username → password hash mapping.
	Load(ctx context.Context) (map[string]string, error)
	// Save replaces the stored mapping with users.
	Save(ctx context.Context, users map[string]string) error
	// Verify reports whether password matches the stored hash of username.
	Verify(ctx context.Context, username, password string) (bool, error)
	// Hash derives the stored form of a new password.
	Hash(password string) (string, error)
}

// AuthService implements sign in, sign up and account removal.
type AuthService struct {
	// repo performs the credential file operations.
	repo CredentialRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo CredentialRepository) *AuthService {
	return &AuthService{repo: repo}
}

// SignIn reports whether username and password match a stored account.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (bool, error) {
	return s.repo.Verify(ctx, username, password)
}

// SignUp validates and stores a new account. Validation failures are
// returned as ozzo-validation errors carrying the user-facing message.
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := repository.ValidateNewUsername(users, username); err != nil {
		return err
	}
	if err := repository.ValidateNewPassword(password); err != nil {
		return err
	}

	hash, err := s.repo.Hash(password)
	if err != nil {
		return err
	}
	users[username] = hash
	return s.repo.Save(ctx, users)
}

// DeleteUser removes the account of username, or returns models.ErrNotFound.
func (s *AuthService) DeleteUser(ctx context.Context, username string) error {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := users[username]; !ok {
		return fmt.Errorf("user %s: %w", username, models.ErrNotFound)
	}
	delete(users, username)
	return s.repo.Save(ctx, users)
}
