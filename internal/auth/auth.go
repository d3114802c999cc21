// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/flipitnews/internal/config"
	"github.com/tomtom215/flipitnews/internal/logging"
)

// DemoToken is returned by /token when no JWT secret is configured.
const DemoToken = "fake-jwt-token-for-demo"

// TokenType is the token_type of every issued token.
const TokenType = "bearer"

// ErrInvalidCredentials is returned for any unknown username or wrong password.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// TokenResponse is the body of a successful /token call.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service checks the demo credential and issues tokens.
type Service struct {
	creds    *CredentialChecker
	jwt      *JWTManager
	security *logging.SecurityLogger
}

// NewService creates the token service from security settings. The demo
// password is hashed here and the plaintext is not retained.
func NewService(cfg *config.SecurityConfig) (*Service, error) {
	return newService(cfg, bcrypt.DefaultCost)
}

func newService(cfg *config.SecurityConfig, cost int) (*Service, error) {
	creds, err := NewCredentialChecker(cfg.DemoUsername, cfg.DemoPassword, cost)
	if err != nil {
		return nil, fmt.Errorf("demo credential: %w", err)
	}

	s := &Service{
		creds:    creds,
		security: logging.NewSecurityLogger(),
	}
	if cfg.JWTSecret != "" {
		m, err := NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			return nil, err
		}
		s.jwt = m
	}
	return s, nil
}

// Signed reports whether issued tokens are real JWTs.
func (s *Service) Signed() bool {
	return s.jwt != nil
}

// Login verifies the credential and issues a token. ip is only logged.
func (s *Service) Login(username, password, ip string) (TokenResponse, error) {
	if !s.creds.Verify(username, password) {
		s.security.LogLoginFailure(username, ip, "invalid credentials")
		return TokenResponse{}, ErrInvalidCredentials
	}

	token := DemoToken
	if s.jwt != nil {
		signed, err := s.jwt.GenerateToken(username)
		if err != nil {
			return TokenResponse{}, err
		}
		token = signed
	}

	s.security.LogTokenIssued(username, ip, token)
	return TokenResponse{AccessToken: token, TokenType: TokenType}, nil
}

// ValidateToken checks a token previously returned by Login.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	if s.jwt == nil {
		if token == DemoToken {
			return &Claims{}, nil
		}
		return nil, fmt.Errorf("invalid token")
	}
	return s.jwt.ValidateToken(token)
}
