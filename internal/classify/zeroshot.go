// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/metrics"
)

// DefaultZeroShotModel is the model name reported when none is configured.
const DefaultZeroShotModel = "facebook/bart-large-mnli"

const (
	zeroShotBreakerName = "zero-shot"
	maxErrorBodyBytes   = 512
	maxResponseBytes    = 1 << 20
)

// ZeroShotConfig configures the remote zero-shot classifier.
type ZeroShotConfig struct {
	// URL receives POSTed zero-shot-classification requests.
	URL string

	// Model is reported in ModelUsed.
	Model string

	// APIToken is sent as a bearer token when set.
	APIToken string

	Timeout time.Duration

	// RequestsPerSecond and Burst pace outbound calls. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int

	// BreakerFailures consecutive failures open the circuit for
	// BreakerTimeout, during which calls fail fast with ErrUnavailable.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// zeroShotRequest is the Hugging Face Inference API request body.
type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

// zeroShotResponse holds labels sorted by descending score.
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// labelScore is the list form some inference servers return instead.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// errUpstreamUnavailable marks upstream answers that mean "try later", such
// as a model still loading.
var errUpstreamUnavailable = errors.New("zero-shot upstream unavailable")

// ZeroShotClassifier calls a zero-shot-classification endpoint with the
// raw text and the five fixed categories.
type ZeroShotClassifier struct {
	cfg     ZeroShotConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*zeroShotResponse]
	allowed map[string]struct{}
}

// NewZeroShotClassifier creates a classifier for cfg.
func NewZeroShotClassifier(cfg ZeroShotConfig) (*ZeroShotClassifier, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: zero-shot URL not configured", ErrUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultZeroShotModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	allowed := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		allowed[c] = struct{}{}
	}

	metrics.CircuitBreakerState.WithLabelValues(zeroShotBreakerName).Set(0)
	log := logging.WithComponent("zero-shot")
	threshold := cfg.BreakerFailures

	breaker := gobreaker.NewCircuitBreaker[*zeroShotResponse](gobreaker.Settings{
		Name:        zeroShotBreakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String(), int(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &ZeroShotClassifier{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		breaker: breaker,
		allowed: allowed,
	}, nil
}

// ModelName implements Classifier.
func (c *ZeroShotClassifier) ModelName() string {
	return c.cfg.Model + " (Zero-Shot)"
}

// BreakerState returns the circuit breaker state.
func (c *ZeroShotClassifier) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// Classify returns the top-scoring category. An open circuit or an
// upstream that reports itself unavailable yields ErrUnavailable; any other
// failure, including a label outside Categories, yields ErrProcessing.
func (c *ZeroShotClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Prediction{}, fmt.Errorf("%w: rate limiter: %w", ErrProcessing, err)
	}

	resp, err := c.breaker.Execute(func() (*zeroShotResponse, error) {
		return c.call(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitBreakerRequest(zeroShotBreakerName, "rejected")
			return Prediction{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		metrics.RecordCircuitBreakerRequest(zeroShotBreakerName, "failure")
		if errors.Is(err, errUpstreamUnavailable) {
			return Prediction{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return Prediction{}, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	metrics.RecordCircuitBreakerRequest(zeroShotBreakerName, "success")

	if len(resp.Labels) == 0 || len(resp.Scores) == 0 {
		return Prediction{}, fmt.Errorf("%w: zero-shot response has no labels", ErrProcessing)
	}
	label := resp.Labels[0]
	if _, ok := c.allowed[label]; !ok {
		return Prediction{}, fmt.Errorf("%w: zero-shot returned unknown label %q", ErrProcessing, label)
	}

	return Prediction{
		Category:   label,
		Confidence: clamp01(resp.Scores[0]),
		ModelUsed:  c.ModelName(),
		Strategy:   StrategyZeroShot,
	}, nil
}

func (c *ZeroShotClassifier) call(ctx context.Context, text string) (*zeroShotResponse, error) {
	body, err := json.Marshal(zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: Categories,
			MultiLabel:      false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if resp.StatusCode == http.StatusServiceUnavailable {
			return nil, fmt.Errorf("%w: status %d: %s", errUpstreamUnavailable, resp.StatusCode, bytes.TrimSpace(msg))
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return decodeZeroShot(data)
}

// decodeZeroShot accepts both the {"labels","scores"} object and a list of
// {"label","score"} pairs, and returns labels by descending score.
func decodeZeroShot(data []byte) (*zeroShotResponse, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs []labelScore
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		out := &zeroShotResponse{}
		best := -1
		for i, p := range pairs {
			if best < 0 || p.Score > pairs[best].Score {
				best = i
			}
		}
		if best >= 0 {
			out.Labels = []string{pairs[best].Label}
			out.Scores = []float64{pairs[best].Score}
		}
		return out, nil
	}

	var out zeroShotResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Labels) != len(out.Scores) {
		return nil, fmt.Errorf("decode response: %d labels for %d scores", len(out.Labels), len(out.Scores))
	}
	best := 0
	for i := range out.Scores {
		if out.Scores[i] > out.Scores[best] {
			best = i
		}
	}
	if len(out.Labels) > 0 && best != 0 {
		out.Labels[0], out.Labels[best] = out.Labels[best], out.Labels[0]
		out.Scores[0], out.Scores[best] = out.Scores[best], out.Scores[0]
	}
	return &out, nil
}
