// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialChecker verifies a single username/password pair. Only the
// bcrypt hash of the password is kept.
type CredentialChecker struct {
	username     string
	passwordHash []byte
}

// NewCredentialChecker hashes password with the given bcrypt cost.
func NewCredentialChecker(username, password string, cost int) (*CredentialChecker, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters for security")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &CredentialChecker{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Verify reports whether username and password match. Both comparisons
// always run so that timing does not reveal which one failed.
func (c *CredentialChecker) Verify(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return usernameMatch && passwordMatch
}
