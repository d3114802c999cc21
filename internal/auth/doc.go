// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

/*
Package auth implements the /token stub.

There is one configured credential (security.demo_username and
security.demo_password, user1/password123 by default). Its password is
bcrypt-hashed when the Service is built and compared with
CompareHashAndPassword; the username is compared in constant time.

Token format depends on configuration:

  - no security.jwt_secret: the static token "fake-jwt-token-for-demo"
  - with a secret: an HS256 JWT carrying the username, valid for
    security.token_ttl

No endpoint requires a token. Issued tokens exist so that clients can
exercise a login flow; real session management is out of scope.

Usage:

	svc, err := auth.NewService(&cfg.Security)
	if err != nil {
	    return err
	}
	resp, err := svc.Login(username, password, clientIP)
	if errors.Is(err, auth.ErrInvalidCredentials) {
	    // 401 with WWW-Authenticate: Bearer
	}
*/
package auth
