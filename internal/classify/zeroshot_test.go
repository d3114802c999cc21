// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// stubUpstream answers zero-shot requests with the given status and body,
// and records the last decoded request.
func stubUpstream(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value, *atomic.Int32) {
	t.Helper()

	var last atomic.Value
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		data, _ := io.ReadAll(r.Body)
		var req zeroShotRequest
		if err := json.Unmarshal(data, &req); err == nil {
			last.Store(req)
		}
		if got := r.Header.Get("Authorization"); got != "" && got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &last, &calls
}

func TestZeroShotClassifier_Classify(t *testing.T) {
	t.Parallel()

	body := `{"sequence":"x","labels":["Technology","Business","Sports","Entertainment","Politics"],"scores":[0.91,0.04,0.03,0.01,0.01]}`
	srv, last, _ := stubUpstream(t, http.StatusOK, body)

	c, err := NewZeroShotClassifier(ZeroShotConfig{URL: srv.URL, APIToken: "secret"})
	if err != nil {
		t.Fatalf("NewZeroShotClassifier() error = %v", err)
	}

	got, err := c.Classify(context.Background(), appleHeadline)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got.Category != "Technology" || got.Confidence != 0.91 {
		t.Errorf("Classify() = %+v, want Technology 0.91", got)
	}
	if got.ModelUsed != "facebook/bart-large-mnli (Zero-Shot)" {
		t.Errorf("ModelUsed = %q", got.ModelUsed)
	}

	req, ok := last.Load().(zeroShotRequest)
	if !ok {
		t.Fatal("upstream did not receive a decodable request")
	}
	if req.Inputs != appleHeadline {
		t.Errorf("inputs = %q, want raw text", req.Inputs)
	}
	if strings.Join(req.Parameters.CandidateLabels, ",") != strings.Join(Categories, ",") {
		t.Errorf("candidate_labels = %v", req.Parameters.CandidateLabels)
	}
	if req.Parameters.MultiLabel {
		t.Error("multi_label = true, want false")
	}
}

func TestZeroShotClassifier_Responses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantLabel string
		wantScore float64
	}{
		{
			name:      "list form",
			status:    http.StatusOK,
			body:      `[{"label":"Sports","score":0.2},{"label":"Politics","score":0.7}]`,
			wantLabel: "Politics",
			wantScore: 0.7,
		},
		{
			name:      "unsorted object",
			status:    http.StatusOK,
			body:      `{"labels":["Business","Sports"],"scores":[0.3,0.6]}`,
			wantLabel: "Sports",
			wantScore: 0.6,
		},
		{
			name:      "score clamped",
			status:    http.StatusOK,
			body:      `{"labels":["Business"],"scores":[1.4]}`,
			wantLabel: "Business",
			wantScore: 1,
		},
		{
			name:    "unknown label",
			status:  http.StatusOK,
			body:    `{"labels":["Weather"],"scores":[0.9]}`,
			wantErr: ErrProcessing,
		},
		{
			name:    "empty labels",
			status:  http.StatusOK,
			body:    `{"labels":[],"scores":[]}`,
			wantErr: ErrProcessing,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"labels":`,
			wantErr: ErrProcessing,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"boom"}`,
			wantErr: ErrProcessing,
		},
		{
			name:    "model loading",
			status:  http.StatusServiceUnavailable,
			body:    `{"error":"Model is currently loading"}`,
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _, _ := stubUpstream(t, tt.status, tt.body)
			c, err := NewZeroShotClassifier(ZeroShotConfig{URL: srv.URL})
			if err != nil {
				t.Fatalf("NewZeroShotClassifier() error = %v", err)
			}

			got, err := c.Classify(context.Background(), "text")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Classify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if got.Category != tt.wantLabel || got.Confidence != tt.wantScore {
				t.Errorf("Classify() = %s %v, want %s %v", got.Category, got.Confidence, tt.wantLabel, tt.wantScore)
			}
		})
	}
}

func TestZeroShotClassifier_CircuitOpens(t *testing.T) {
	t.Parallel()

	srv, _, calls := stubUpstream(t, http.StatusBadGateway, "bad gateway")
	c, err := NewZeroShotClassifier(ZeroShotConfig{
		URL:             srv.URL,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	})
	if err != nil {
		t.Fatalf("NewZeroShotClassifier() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Classify(context.Background(), "text"); !errors.Is(err, ErrProcessing) {
			t.Fatalf("call %d error = %v, want ErrProcessing", i, err)
		}
	}
	if c.BreakerState() != gobreaker.StateOpen {
		t.Fatalf("BreakerState() = %v, want open", c.BreakerState())
	}

	if _, err := c.Classify(context.Background(), "text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify() with open circuit error = %v, want ErrUnavailable", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 (open circuit must not call upstream)", got)
	}
}

func TestNewZeroShotClassifier_RequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewZeroShotClassifier(ZeroShotConfig{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewZeroShotClassifier() error = %v, want ErrUnavailable", err)
	}
}
