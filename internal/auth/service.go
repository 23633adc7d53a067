package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// Service authenticates the configured administrator.
type Service struct {
	admin  Admin
	tokens *TokenService
	logger *zap.Logger
}

// NewService creates an auth Service.
func NewService(admin Admin, tokens *TokenService, logger *zap.Logger) *Service {
	return &Service{
		admin:  admin,
		tokens: tokens,
		logger: logger,
	}
}

// Tokens returns the token service for middleware use.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login checks credentials against the admin account and issues a token.
func (s *Service) Login(_ context.Context, username, password string) (*TokenResponse, error) {
	if s.admin.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := CheckPassword(s.admin.PasswordHash, password)
	if !userOK || !passOK {
		s.logger.Warn("failed login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(s.admin.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", username))
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}
