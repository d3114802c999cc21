// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tomtom215/flipitnews/internal/events"
	"github.com/tomtom215/flipitnews/internal/logging"
	"github.com/tomtom215/flipitnews/internal/modelstore"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.PredictionEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.PredictionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) recorded() []events.PredictionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.PredictionEvent(nil), p.events...)
}

func missingStore(t *testing.T) *modelstore.FileStore {
	t.Helper()
	return modelstore.NewFileStore(filepath.Join(t.TempDir(), "absent.model"))
}

func TestService_AllStrategiesClassifyHeadline(t *testing.T) {
	t.Parallel()

	body := `{"labels":["Technology","Business","Sports","Entertainment","Politics"],"scores":[0.88,0.05,0.03,0.02,0.02]}`
	srv, _, _ := stubUpstream(t, http.StatusOK, body)

	svc := NewService(Options{
		Store:    savedStore(t),
		ZeroShot: &ZeroShotConfig{URL: srv.URL},
		Rules:    true,
	})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, st := range Strategies {
		if !svc.Loaded(st) {
			t.Errorf("%s not loaded", st)
		}
		pred, err := svc.Classify(context.Background(), st, appleHeadline)
		if err != nil {
			t.Fatalf("Classify(%s) error = %v", st, err)
		}
		if pred.Category != "Technology" {
			t.Errorf("Classify(%s) = %q, want Technology", st, pred.Category)
		}
		if pred.Confidence < 0 || pred.Confidence > 1 {
			t.Errorf("Classify(%s) confidence = %v", st, pred.Confidence)
		}
		if pred.Strategy != st {
			t.Errorf("Classify(%s) served by %s", st, pred.Strategy)
		}
	}

	status := svc.Status()
	if status[StrategyCustom].Model != "Naive Bayes (Custom Trained on FlipItNews Data)" {
		t.Errorf("custom status = %+v", status[StrategyCustom])
	}
}

func TestService_MissingModelIsUnavailable(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Store: missingStore(t), Rules: true})
	err := svc.Load(context.Background())
	if !errors.Is(err, modelstore.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}

	if got := svc.Status()[StrategyCustom].State; got != StateUnloaded {
		t.Errorf("custom state = %q, want unloaded", got)
	}
	if _, err := svc.Classify(context.Background(), StrategyCustom, appleHeadline); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify(custom) error = %v, want ErrUnavailable", err)
	}
	if _, err := svc.Classify(context.Background(), StrategyRules, appleHeadline); err != nil {
		t.Errorf("Classify(rules) error = %v", err)
	}
}

func TestService_DisabledStrategies(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, st := range Strategies {
		if got := svc.Status()[st].State; got != StateUnloaded {
			t.Errorf("%s state = %q, want unloaded", st, got)
		}
		if _, err := svc.Classify(context.Background(), st, "text"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Classify(%s) error = %v, want ErrUnavailable", st, err)
		}
	}
}

func TestService_CorruptModelFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom_model.model")
	if err := os.WriteFile(path, []byte("not a model"), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := NewService(Options{Store: modelstore.NewFileStore(path)})
	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error for corrupt artifact")
	}
	st := svc.Status()[StrategyCustom]
	if st.State != StateFailed || st.Error == "" {
		t.Errorf("custom status = %+v, want failed with error", st)
	}
}

func TestService_DefaultStrategyFallback(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{
		Store:           missingStore(t),
		Rules:           true,
		DefaultStrategy: StrategyRules,
	})
	_ = svc.Load(context.Background())

	for _, st := range []Strategy{StrategyCustom, StrategyZeroShot} {
		pred, err := svc.Classify(context.Background(), st, "Senate passes the bill")
		if err != nil {
			t.Fatalf("Classify(%s) error = %v", st, err)
		}
		if pred.Strategy != StrategyRules || pred.ModelUsed != RulesModelName {
			t.Errorf("Classify(%s) = %+v, want rules fallback", st, pred)
		}
		if pred.Category != "Politics" {
			t.Errorf("Classify(%s) category = %q, want Politics", st, pred.Category)
		}
	}
}

func TestService_Reload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom_model.model")
	store := modelstore.NewFileStore(path)
	svc := NewService(Options{Store: store})
	_ = svc.Load(context.Background())
	if svc.Loaded(StrategyCustom) {
		t.Fatal("custom loaded before the artifact exists")
	}

	if err := store.Save(context.Background(), trainedPipeline(t)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !svc.Loaded(StrategyCustom) {
		t.Fatal("custom not loaded after Reload")
	}

	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(context.Background()); err == nil {
		t.Fatal("Reload() of corrupt artifact expected error")
	}
	if _, err := svc.Classify(context.Background(), StrategyCustom, appleHeadline); err != nil {
		t.Errorf("Classify() after failed reload error = %v, want the previous model to keep serving", err)
	}
}

func TestService_ReloadWithoutStore(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Rules: true})
	if err := svc.Reload(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Reload() error = %v, want ErrUnavailable", err)
	}
}

func TestService_UnknownStrategy(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Rules: true})
	_ = svc.Load(context.Background())
	if _, err := svc.Classify(context.Background(), Strategy("bert"), "text"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Classify() error = %v, want ErrUnknownStrategy", err)
	}
}

func TestService_PublishesEvents(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	svc := NewService(Options{Rules: true, Publisher: pub})
	_ = svc.Load(context.Background())

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	pred, err := svc.Classify(ctx, StrategyRules, "Team wins the cup")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	got := pub.recorded()
	if len(got) != 1 {
		t.Fatalf("published %d events, want 1", len(got))
	}
	ev := got[0]
	if ev.RequestID != "req-42" || ev.Strategy != "rules" || ev.Category != pred.Category || ev.Text != "Team wins the cup" {
		t.Errorf("event = %+v", ev)
	}
}

func TestService_PublishFailureDoesNotFailPrediction(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := NewService(Options{Rules: true, Publisher: pub})
	_ = svc.Load(context.Background())

	if _, err := svc.Classify(context.Background(), StrategyRules, "Team wins the cup"); err != nil {
		t.Errorf("Classify() error = %v, want nil despite publish failure", err)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	for _, st := range Strategies {
		got, err := ParseStrategy(string(st))
		if err != nil || got != st {
			t.Errorf("ParseStrategy(%q) = %q, %v", st, got, err)
		}
	}
	if _, err := ParseStrategy("bert"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("ParseStrategy(bert) error = %v", err)
	}
}
