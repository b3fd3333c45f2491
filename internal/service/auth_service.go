package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"

	"tradejournal/internal/domain"
)

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
	saltLen          = 16

	// hashPrefix tags the per-user-salt credential format:
	// pbkdf2:sha256:100000$<hex salt>$<hex key>
	hashPrefix = "pbkdf2:sha256:100000"
)

// legacySalt is the fixed application-wide salt of the first-generation
// credential format (bare hex digest, no embedded salt). Kept only to verify
// old hashes; every successful login re-hashes to the per-user format.
var legacySalt = []byte("trading_app_salt_v1")

// AuthService validates credentials and enforces account-status rules
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HashPassword derives a PBKDF2-HMAC-SHA256 hash with a fresh random
// per-user salt.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("%s$%s$%s", hashPrefix, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword recomputes the hash and compares in constant time. Both the
// per-user-salt format and the legacy static-salt format are accepted.
func VerifyPassword(password, stored string) bool {
	if salt, key, ok := parseHash(stored); ok {
		derived := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
		return subtle.ConstantTimeCompare(derived, key) == 1
	}

	// Legacy: bare hex digest against the fixed application salt
	expected, err := hex.DecodeString(stored)
	if err != nil {
		return false
	}
	derived := pbkdf2.Key([]byte(password), legacySalt, pbkdf2Iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// IsLegacyHash reports whether stored uses the static-salt format
func IsLegacyHash(stored string) bool {
	_, _, ok := parseHash(stored)
	return !ok
}

func parseHash(stored string) (salt, key []byte, ok bool) {
	rest, found := strings.CutPrefix(stored, hashPrefix+"$")
	if !found {
		return nil, nil, false
	}
	saltHex, keyHex, found := strings.Cut(rest, "$")
	if !found {
		return nil, nil, false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, nil, false
	}
	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, false
	}
	return salt, key, true
}

// Login validates a credential pair. Failure modes, in order:
// ErrUserNotFound, ErrAccountDisabled, ErrInvalidCredential. On success a
// legacy static-salt hash is transparently upgraded to the per-user format.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user.Status != domain.StatusActive {
		return nil, domain.ErrAccountDisabled
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredential
	}

	if IsLegacyHash(user.PasswordHash) {
		if upgraded, err := HashPassword(password); err == nil {
			if err := s.userRepo.UpdatePassword(ctx, user.ID, upgraded); err != nil {
				log.Printf("[WARN] Failed to upgrade legacy hash for user %s: %v", user.Username, err)
			} else {
				user.PasswordHash = upgraded
			}
		}
	}

	return user, nil
}

// CreateUser hashes the password and stores a new account
func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredential
	}
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.StatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces a user's credential with a freshly salted hash
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredential
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}
