package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// adminHash is the bcrypt hash of "secret".
const adminHash = "$2a$12$pvtX5Gf2ZloWTIDoet0PmOceo5dwiiC33sQzMpOAGtn8YHzyXJeVi"

func setupCredentials(t *testing.T, content string) *FileCredentialRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return NewFileCredentialRepository(path, bcrypt.MinCost)
}

func TestCredentials_Load(t *testing.T) {
	repo := setupCredentials(t, "---\nadmin: "+adminHash+"\n")

	users, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"admin": adminHash}, users)
}

func TestCredentials_LoadEmptyFile(t *testing.T) {
	repo := setupCredentials(t, "")

	users, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestCredentials_LoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		repo := NewFileCredentialRepository(filepath.Join(t.TempDir(), "users.yml"), bcrypt.MinCost)
		_, err := repo.Load(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		repo := setupCredentials(t, "- just\n- a list\n")
		_, err := repo.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse credentials")
	})
}

func TestCredentials_SaveOverwrites(t *testing.T) {
	repo := setupCredentials(t, "admin: "+adminHash+"\n")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, map[string]string{"alice": "hash-a"}))

	users, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "hash-a"}, users)
}

func TestCredentials_Verify(t *testing.T) {
	repo := setupCredentials(t, "admin: "+adminHash+"\nbroken: not-a-hash\n")
	ctx := context.Background()

	tests := []struct {
		name     string
		user     string
		password string
		want     bool
		wantErr  bool
	}{
		{"correct password", "admin", "secret", true, false},
		{"wrong password", "admin", "Secret", false, false},
		{"unknown user", "nobody", "secret", false, false},
		{"empty credentials", "", "", false, false},
		{"corrupt hash", "broken", "secret", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.Verify(ctx, tt.user, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCredentials_HashVerifies(t *testing.T) {
	repo := setupCredentials(t, "")
	ctx := context.Background()

	hash, err := repo.Hash("test1234")
	require.NoError(t, err)
	assert.NotEqual(t, "test1234", hash)
	require.NoError(t, repo.Save(ctx, map[string]string{"new_user": hash}))

	ok, err := repo.Verify(ctx, "new_user", "test1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateNewUsername(t *testing.T) {
	users := map[string]string{"admin": adminHash}

	tests := []struct {
		name     string
		username string
		want     string
	}{
		{"taken", "admin", "Username already exists."},
		{"too short", "aa", "Username is too short, needs to be at least 3 letters."},
		{"empty", "", "Username is too short, needs to be at least 3 letters."},
		{"multibyte counts runes", "äöü", ""},
		{"valid", "new_user", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewUsername(users, tt.username)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, ValidateNewPassword("test1234"))

	err := ValidateNewPassword("test123")
	require.Error(t, err)
	assert.Equal(t, "Password needs to be at least 8 characters long.", err.Error())

	err = ValidateNewPassword("")
	require.Error(t, err)
	assert.Equal(t, "Password needs to be at least 8 characters long.", err.Error())

	err = ValidateNewPassword(strings.Repeat("x", 73))
	require.Error(t, err)
	assert.Equal(t, "Password must be at most 72 bytes long.", err.Error())
}
