package authservice

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"stockledger/internal/domain"
	apperror "stockledger/internal/errors"
)

// TokenService is the part of internal/pkg/token the login flow needs.
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// Service authenticates the single configured administrator.
type Service struct {
	username     string
	passwordHash []byte
	tokens       TokenService
	expiresIn    int64
}

// NewService takes the admin username, its bcrypt hash and the token
// lifetime in seconds.
func NewService(username, passwordHash string, tokens TokenService, expiresIn int64) *Service {
	return &Service{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		expiresIn:    expiresIn,
	}
}

// Login checks the credential and returns a signed token. Wrong user and
// wrong password produce the same error.
func (s *Service) Login(_ context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return domain.LoginResponse{}, apperror.NewUnauthorizedError("username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		return domain.LoginResponse{}, apperror.NewUnauthorizedError("invalid credentials")
	}

	tok, err := s.tokens.GenerateToken(s.username, string(domain.RoleAdmin))
	if err != nil {
		return domain.LoginResponse{}, apperror.NewInternalError("failed to generate token", err)
	}
	return domain.LoginResponse{Token: tok, ExpiresIn: s.expiresIn}, nil
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperror.NewValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
