// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flipitnews/internal/auth"
	"github.com/tomtom215/flipitnews/internal/classify"
)

// fakeClassifier answers per strategy from fixed results.
type fakeClassifier struct {
	mu      sync.Mutex
	results map[classify.Strategy]classify.Prediction
	errs    map[classify.Strategy]error
	status  map[classify.Strategy]classify.StrategyStatus
	texts   []string
}

func (f *fakeClassifier) Classify(_ context.Context, st classify.Strategy, text string) (classify.Prediction, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	if err := f.errs[st]; err != nil {
		return classify.Prediction{}, err
	}
	return f.results[st], nil
}

func (f *fakeClassifier) Status() map[classify.Strategy]classify.StrategyStatus {
	return f.status
}

type fakeTokens struct{}

func (fakeTokens) Login(username, password, _ string) (auth.TokenResponse, error) {
	if username == "user1" && password == "password123" {
		return auth.TokenResponse{AccessToken: auth.DemoToken, TokenType: auth.TokenType}, nil
	}
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

func allLoaded() *fakeClassifier {
	return &fakeClassifier{
		results: map[classify.Strategy]classify.Prediction{
			classify.StrategyCustom:   {Category: "Technology", Confidence: 0.91, ModelUsed: "Linear SVM (Custom Trained on FlipItNews Data)"},
			classify.StrategyZeroShot: {Category: "Technology", Confidence: 0.88, ModelUsed: "facebook/bart-large-mnli (Zero-Shot)"},
			classify.StrategyRules:    {Category: "Technology", Confidence: 0.95, ModelUsed: classify.RulesModelName},
		},
		status: map[classify.Strategy]classify.StrategyStatus{
			classify.StrategyCustom:   {State: classify.StateLoaded},
			classify.StrategyZeroShot: {State: classify.StateLoaded},
			classify.StrategyRules:    {State: classify.StateLoaded},
		},
	}
}

func newTestServer(t *testing.T, c Classifier) http.Handler {
	t.Helper()
	h := NewHandler(HandlerConfig{Classifier: c, Tokens: fakeTokens{}, Version: "test"})
	return NewRouter(h, nil).SetupChi()
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestRoot(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, allLoaded()), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[WelcomeResponse](t, rec); got.Message != "Welcome to FlipItNews Advanced API" {
		t.Errorf("message = %q", got.Message)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, allLoaded())
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "valid", body: `{"username":"user1","password":"password123"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"username":"user1","password":"nope"}`, wantStatus: http.StatusUnauthorized, wantCode: CodeUnauthorized},
		{name: "missing password", body: `{"username":"user1"}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidationFailed},
		{name: "blank username", body: `{"username":"  ","password":"password123"}`, wantStatus: http.StatusBadRequest, wantCode: CodeValidationFailed},
		{name: "malformed", body: `{"username":`, wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, srv, http.MethodPost, "/token", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode == "" {
				got := decode[auth.TokenResponse](t, rec)
				if got.AccessToken != "fake-jwt-token-for-demo" || got.TokenType != "bearer" {
					t.Errorf("token = %+v", got)
				}
				return
			}
			env := decode[APIResponse](t, rec)
			if env.Success || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("envelope = %+v", env)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if rec.Header().Get("WWW-Authenticate") != "Bearer" {
					t.Errorf("WWW-Authenticate = %q", rec.Header().Get("WWW-Authenticate"))
				}
				if env.Detail != "Incorrect username or password" {
					t.Errorf("detail = %q", env.Detail)
				}
			}
		})
	}
}

func TestPredict_Success(t *testing.T) {
	t.Parallel()

	fc := allLoaded()
	srv := newTestServer(t, fc)
	for path, wantModel := range map[string]string{
		"/predict/bert":   "facebook/bart-large-mnli (Zero-Shot)",
		"/predict/custom": "Linear SVM (Custom Trained on FlipItNews Data)",
		"/predict/rules":  "Rule-Based Classifier",
	} {
		rec := do(t, srv, http.MethodPost, path, `{"text":"Apple releases new iPhone with AI chip"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d (%s)", path, rec.Code, rec.Body.String())
		}
		got := decode[PredictionResponse](t, rec)
		if got.Category != "Technology" || got.ModelUsed != wantModel || got.Confidence <= 0 || got.Confidence > 1 {
			t.Errorf("%s = %+v", path, got)
		}
		if strings.Contains(rec.Body.String(), "strategy") {
			t.Errorf("%s body leaks internal fields: %s", path, rec.Body.String())
		}
	}
}

func TestPredict_EmptyTextIsClassified(t *testing.T) {
	t.Parallel()

	svc := classify.NewService(classify.Options{Rules: true})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	srv := newTestServer(t, svc)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: `{"text":""}`},
		{name: "whitespace", body: `{"text":"   "}`},
		{name: "punctuation only", body: `{"text":"!!! ... ???"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, srv, http.MethodPost, "/predict/rules", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
			}
			got := decode[PredictionResponse](t, rec)
			if !slices.Contains(classify.Categories, got.Category) {
				t.Errorf("category = %q, want one of %v", got.Category, classify.Categories)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("confidence = %v", got.Confidence)
			}
		})
	}
}

func TestPredict_PassesTextThrough(t *testing.T) {
	t.Parallel()

	fc := allLoaded()
	srv := newTestServer(t, fc)
	for _, text := range []string{"", "   "} {
		body, _ := json.Marshal(map[string]string{"text": text})
		if rec := do(t, srv, http.MethodPost, "/predict/custom", string(body)); rec.Code != http.StatusOK {
			t.Fatalf("text %q status = %d (%s)", text, rec.Code, rec.Body.String())
		}
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if len(fc.texts) != 2 || fc.texts[0] != "" || fc.texts[1] != "   " {
		t.Errorf("classifier saw %q, want the raw texts", fc.texts)
	}
}

func TestPredict_Errors(t *testing.T) {
	t.Parallel()

	fc := allLoaded()
	fc.errs = map[classify.Strategy]error{
		classify.StrategyCustom:   fmt.Errorf("%w: custom strategy not loaded", classify.ErrUnavailable),
		classify.StrategyZeroShot: fmt.Errorf("%w: upstream returned 500", classify.ErrProcessing),
	}
	srv := newTestServer(t, fc)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name: "custom unavailable", path: "/predict/custom", body: `{"text":"x"}`,
			wantStatus: http.StatusServiceUnavailable, wantCode: CodeServiceUnavailable,
			wantDetail: "Custom model not available. Please train the model first.",
		},
		{
			name: "processing error", path: "/predict/bert", body: `{"text":"x"}`,
			wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError,
			wantDetail: "Prediction failed",
		},
		{
			name: "missing text", path: "/predict/rules", body: `{}`,
			wantStatus: http.StatusBadRequest, wantCode: CodeValidationFailed,
			wantDetail: "text is required",
		},
		{
			name: "null text", path: "/predict/rules", body: `{"text":null}`,
			wantStatus: http.StatusBadRequest, wantCode: CodeValidationFailed,
			wantDetail: "text is required",
		},
		{
			name: "not json", path: "/predict/rules", body: `text=hello`,
			wantStatus: http.StatusBadRequest, wantCode: CodeBadRequest,
			wantDetail: "Request body must be a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, srv, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decode[APIResponse](t, rec)
			if env.Success || env.Error == nil {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Error.Code != tt.wantCode || env.Detail != tt.wantDetail || env.Error.Message != tt.wantDetail {
				t.Errorf("error = %+v detail = %q", env.Error, env.Detail)
			}
			if env.Error.RequestID == "" || env.Error.RequestID != rec.Header().Get("X-Request-ID") {
				t.Errorf("request_id = %q, header %q", env.Error.RequestID, rec.Header().Get("X-Request-ID"))
			}
			if strings.Contains(rec.Body.String(), "upstream returned 500") {
				t.Error("internal error text leaked to client")
			}
		})
	}
}

func TestNewsEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, allLoaded())

	tests := []struct {
		path    string
		wantIDs []int
	}{
		{path: "/news", wantIDs: []int{1, 2, 3}},
		{path: "/news/feed", wantIDs: []int{1, 2, 3}},
		{path: "/news/feed?category=technology", wantIDs: []int{1}},
		{path: "/news/feed?category=Sports", wantIDs: []int{3}},
		{path: "/news/feed?category=Politics", wantIDs: []int{}},
		{path: "/recommendations/user1", wantIDs: []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := do(t, srv, http.MethodGet, tt.path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			items := decode[[]struct {
				ID int `json:"id"`
			}](t, rec)
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items (%s), want %d", len(items), rec.Body.String(), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Errorf("item %d id = %d, want %d", i, items[i].ID, id)
				}
			}
		})
	}

	rec := do(t, srv, http.MethodGet, "/recommendations/42", "")
	if !strings.Contains(rec.Body.String(), `"reason":"Based on your reading history"`) {
		t.Errorf("recommendations body = %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status map[classify.Strategy]classify.StrategyStatus
		want   string
	}{
		{
			name: "all loaded",
			status: map[classify.Strategy]classify.StrategyStatus{
				classify.StrategyCustom: {State: classify.StateLoaded},
				classify.StrategyRules:  {State: classify.StateLoaded},
			},
			want: HealthHealthy,
		},
		{
			name: "disabled strategy does not degrade",
			status: map[classify.Strategy]classify.StrategyStatus{
				classify.StrategyZeroShot: {State: classify.StateUnloaded},
				classify.StrategyRules:    {State: classify.StateLoaded},
			},
			want: HealthHealthy,
		},
		{
			name: "missing artifact degrades",
			status: map[classify.Strategy]classify.StrategyStatus{
				classify.StrategyCustom: {State: classify.StateUnloaded, Error: "model artifact not found"},
				classify.StrategyRules:  {State: classify.StateLoaded},
			},
			want: HealthDegraded,
		},
		{
			name: "nothing loaded",
			status: map[classify.Strategy]classify.StrategyStatus{
				classify.StrategyRules: {State: classify.StateUnloaded},
			},
			want: HealthDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, newTestServer(t, &fakeClassifier{status: tt.status}), http.MethodGet, "/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			got := decode[HealthResponse](t, rec)
			if got.Status != tt.want {
				t.Errorf("status = %q, want %q", got.Status, tt.want)
			}
			if len(got.Strategies) != len(tt.status) || got.UptimeSeconds < 0 {
				t.Errorf("health = %+v", got)
			}
		})
	}
}

func TestCORSAndNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, allLoaded())

	req := httptest.NewRequest(http.MethodOptions, "/predict/custom", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	rec = do(t, srv, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decode[APIResponse](t, rec); env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("envelope = %+v", env)
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := NewHandler(HandlerConfig{Classifier: allLoaded(), Tokens: fakeTokens{}})
	srv := NewRouter(h, &ChiMiddlewareConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute}).SetupChi()

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = do(t, srv, http.MethodGet, "/news", "")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if env := decode[APIResponse](t, last); env.Error == nil || env.Error.Code != CodeRateLimitExceeded {
		t.Errorf("envelope = %+v", env)
	}
}
