// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

type bcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a bcrypt PasswordService. A cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptPasswordService{cost: cost}
}

func (s *bcryptPasswordService) CheckStrength(password string) error {
	switch {
	case len(strings.TrimSpace(password)) < minPasswordLength:
		return weakPassword(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	case len(password) > maxPasswordBytes:
		return weakPassword(fmt.Sprintf("password must be at most %d bytes long", maxPasswordBytes))
	}
	return nil
}

func (s *bcryptPasswordService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *bcryptPasswordService) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func weakPassword(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, message, domainerror.ErrWeakPassword)
}
