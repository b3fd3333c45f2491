package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"

	"tradejournal/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for auth tests
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Status = status
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "pbkdf2:sha256:100000$"))
	assert.True(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, IsLegacyHash(hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword("same-password", h1))
	assert.True(t, VerifyPassword("same-password", h2))
}

func legacyHash(password string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(password), legacySalt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New))
}

func TestVerifyPasswordLegacyFormat(t *testing.T) {
	t.Parallel()

	stored := legacyHash("admin123")
	assert.True(t, IsLegacyHash(stored))
	assert.True(t, VerifyPassword("admin123", stored))
	assert.False(t, VerifyPassword("admin124", stored))
}

func TestVerifyPasswordGarbageStored(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyPassword("x", "not-hex-and-not-our-format"))
	assert.False(t, VerifyPassword("x", "pbkdf2:sha256:100000$zz$zz"))
	assert.False(t, VerifyPassword("x", ""))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	active, err := svc.CreateUser(ctx, "alice", "hunter2", domain.RoleUser)
	require.NoError(t, err)

	disabled, err := svc.CreateUser(ctx, "bob", "hunter2", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, disabled.ID, domain.StatusInactive))

	t.Run("success", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, active.ID, user.ID)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("unknown_username", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "hunter2")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	})

	t.Run("disabled_account_correct_password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob", "hunter2")
		assert.ErrorIs(t, err, domain.ErrAccountDisabled)
	})
}

// A stored legacy static-salt hash must still log in, and doing so rewrites
// the credential to the per-user-salt format.
func TestLoginUpgradesLegacyHash(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	legacy := &domain.User{
		ID:           uuid.New(),
		Username:     "carol",
		PasswordHash: legacyHash("oldpass"),
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	require.NoError(t, repo.Create(ctx, legacy))

	user, err := svc.Login(ctx, "carol", "oldpass")
	require.NoError(t, err)
	assert.False(t, IsLegacyHash(user.PasswordHash))

	stored, err := repo.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, IsLegacyHash(stored.PasswordHash))
	assert.True(t, VerifyPassword("oldpass", stored.PasswordHash))

	// Second login goes straight through the new format
	_, err = svc.Login(ctx, "carol", "oldpass")
	assert.NoError(t, err)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, "admin", "admin123", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "admin", "other-password", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// The existing record is left unmodified
	stored, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
	assert.True(t, VerifyPassword("admin123", stored.PasswordHash))
}

func TestCreateUserDefaultsRole(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.CreateUser(context.Background(), "dave", "pw", "superuser")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.StatusActive, user.Status)
}
