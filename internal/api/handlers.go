// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flipitnews/internal/auth"
	"github.com/tomtom215/flipitnews/internal/classify"
	"github.com/tomtom215/flipitnews/internal/validation"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to FlipItNews Advanced API"

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Classifier is the prediction backend. *classify.Service satisfies it.
type Classifier interface {
	Classify(ctx context.Context, st classify.Strategy, text string) (classify.Prediction, error)
	Status() map[classify.Strategy]classify.StrategyStatus
}

// TokenIssuer checks credentials and issues tokens. *auth.Service satisfies it.
type TokenIssuer interface {
	Login(username, password, ip string) (auth.TokenResponse, error)
}

// Handler serves every endpoint.
type Handler struct {
	classifier   Classifier
	tokens       TokenIssuer
	maxBodyBytes int64
	version      string
	startTime    time.Time
}

// HandlerConfig holds Handler dependencies.
type HandlerConfig struct {
	Classifier Classifier
	Tokens     TokenIssuer

	// MaxBodyBytes defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Version is reported by /health.
	Version string
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		classifier:   cfg.Classifier,
		tokens:       cfg.Tokens,
		maxBodyBytes: cfg.MaxBodyBytes,
		version:      cfg.Version,
		startTime:    time.Now(),
	}
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// Root handles GET /.
//
// @Summary Welcome message
// @Tags Core
// @Produce json
// @Success 200 {object} WelcomeResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, WelcomeResponse{Message: WelcomeMessage})
}

// LoginRequest is the body of POST /token.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=256"`
	Password string `json:"password" validate:"required,max=1024"`
}

// Token handles POST /token.
//
// @Summary Exchange the demo credential for an access token
// @Description Returns a signed HS256 JWT when JWT_SECRET is set, otherwise the static demo token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} APIResponse "Invalid body or missing field"
// @Failure 401 {object} APIResponse "Incorrect username or password"
// @Failure 429 {object} APIResponse "Too many login attempts"
// @Router /token [post]
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.tokens.Login(req.Username, req.Password, clientIP(r))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, msgInvalidCredentials, nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, "Failed to issue token", err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// decodeAndValidate reads a JSON body into dst and validates it, writing
// the error response itself when it returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, CodeBadRequest, msgBodyTooLarge, err)
		} else {
			respondError(w, r, http.StatusBadRequest, CodeBadRequest, msgInvalidBody, err)
		}
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return false
	}
	return true
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already rewritten when trusted proxies are configured.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
