package adapters

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

type memoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
	valid  map[string]bool
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{
		tokens: make(map[string]uuid.UUID),
		valid:  make(map[string]bool),
	}
}

func (r *memoryTokenRepository) SaveRefreshToken(_ context.Context, token string, userID uuid.UUID, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	r.valid[token] = true
	return nil
}

func (r *memoryTokenRepository) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.valid[token], nil
}

func (r *memoryTokenRepository) InvalidateRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valid[token] = false
	return nil
}

func (r *memoryTokenRepository) InvalidateAllUserRefreshTokens(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.tokens {
		if owner == userID {
			r.valid[token] = false
		}
	}
	return nil
}

func TestTokenService(t *testing.T) {
	repo := newMemoryTokenRepository()
	service := NewTokenService(TokenConfig{Secret: "test-secret"}, repo)
	ctx := context.Background()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(ctx, userID, "awa@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user %s, got %s", userID, claims.UserID)
		}
		if claims.Email != "awa@example.com" {
			t.Errorf("expected email awa@example.com, got %s", claims.Email)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		if _, err := service.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected refresh token to be rejected as access token")
		}
		if _, err := service.ValidateRefreshToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected access token to be rejected as refresh token")
		}
	})

	t.Run("tokens issued together are distinct", func(t *testing.T) {
		second, err := service.GenerateTokenPair(ctx, userID, "awa@example.com", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.RefreshToken == pair.RefreshToken {
			t.Error("expected a new refresh token")
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewTokenService(TokenConfig{Secret: "other-secret"}, repo)
		if _, err := other.ValidateAccessToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected signature check to fail")
		}
	})

	t.Run("invalidate all user tokens", func(t *testing.T) {
		if err := service.InvalidateAllUserTokens(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		valid, _ := service.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if valid {
			t.Error("expected refresh token to be invalidated")
		}
	})
}

func TestTokenService_Expired(t *testing.T) {
	service := NewTokenService(TokenConfig{Secret: "test-secret", AccessDuration: time.Nanosecond}, newMemoryTokenRepository())
	pair, err := service.GenerateTokenPair(context.Background(), uuid.New(), "a@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	if _, err := service.ValidateAccessToken(context.Background(), pair.AccessToken); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestPasswordService(t *testing.T) {
	service := NewPasswordService(bcrypt.MinCost)

	hash, err := service.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("expected password to be hashed")
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Errorf("expected cost %d, got %d", bcrypt.MinCost, cost)
	}
	if !service.Matches(hash, "s3cret-pass") {
		t.Error("expected password to match")
	}
	if service.Matches(hash, "wrong-pass") {
		t.Error("expected wrong password not to match")
	}
	if service.Matches("not-a-hash", "s3cret-pass") {
		t.Error("expected malformed hash not to match")
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "short", true},
		{"padded with spaces", "  abc   ", true},
		{"minimum length", "12345678", false},
		{"bcrypt limit", strings.Repeat("a", 72), false},
		{"past bcrypt limit", strings.Repeat("a", 73), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CheckStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, domainerror.ErrWeakPassword) {
				t.Errorf("expected weak password error, got %v", err)
			}
		})
	}
}

func TestNewPasswordService_CostOutOfRange(t *testing.T) {
	hash, err := NewPasswordService(99).Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.DefaultCost {
		t.Errorf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
