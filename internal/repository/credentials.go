package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Validation errors reported for new accounts. Their messages are shown to
// the user as-is.
var (
	ErrUsernameTaken    = validation.NewError("username_taken", "Username already exists.")
	ErrUsernameTooShort = validation.NewError("username_too_short", "Username is too short, needs to be at least 3 letters.")
	ErrPasswordTooShort = validation.NewError("password_too_short", "Password needs to be at least 8 characters long.")
	ErrPasswordTooLong  = validation.NewError("password_too_long", "Password must be at most 72 bytes long.")
)

// FileCredentialRepository keeps the username → bcrypt hash mapping in a
// YAML file.
type FileCredentialRepository struct {
	// Path is the location of the YAML credential file.
	Path string
	// Cost is the bcrypt cost used for new hashes.
	Cost int
}

// NewFileCredentialRepository creates a repository backed by the file at path.
// A cost below bcrypt.MinCost selects bcrypt.DefaultCost.
func NewFileCredentialRepository(path string, cost int) *FileCredentialRepository {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &FileCredentialRepository{Path: path, Cost: cost}
}

// Load reads the whole credential file. A missing or malformed file is an
// error; an empty file is an empty mapping.
func (r *FileCredentialRepository) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	users := map[string]string{}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", r.Path, err)
	}
	if users == nil {
		users = map[string]string{}
	}
	return users, nil
}

// Save replaces the credential file with users.
func (r *FileCredentialRepository) Save(ctx context.Context, users map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(r.Path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Verify reports whether username exists and password matches its stored
// hash. The comparison is done by bcrypt, never on the raw strings.
func (r *FileCredentialRepository) Verify(ctx context.Context, username, password string) (bool, error) {
	users, err := r.Load(ctx)
	if err != nil {
		return false, err
	}
	hash, ok := users[username]
	if !ok {
		return false, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify %s: %w", username, err)
	}
}

// Hash returns the bcrypt hash of password.
func (r *FileCredentialRepository) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ValidateNewUsername checks a signup username against the loaded users.
// A taken name is reported before a short one.
func ValidateNewUsername(users map[string]string, username string) error {
	return validation.Validate(username,
		validation.By(func(value any) error {
			if _, taken := users[value.(string)]; taken {
				return ErrUsernameTaken
			}
			return nil
		}),
		validation.Required.ErrorObject(ErrUsernameTooShort),
		validation.RuneLength(3, 0).ErrorObject(ErrUsernameTooShort),
	)
}

// ValidateNewPassword checks the length of a signup password.
func ValidateNewPassword(password string) error {
	return validation.Validate(password,
		validation.Required.ErrorObject(ErrPasswordTooShort),
		validation.RuneLength(8, 0).ErrorObject(ErrPasswordTooShort),
		validation.Length(0, 72).ErrorObject(ErrPasswordTooLong),
	)
}
