// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package ml

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Kind identifies the classifier family inside a pipeline.
type Kind string

// Supported classifier kinds.
const (
	KindLogisticRegression Kind = "logistic_regression"
	KindNaiveBayes         Kind = "naive_bayes"
	KindRandomForest       Kind = "random_forest"
	KindLinearSVM          Kind = "linear_svm"
)

// ErrUnknownKind is returned when decoding a pipeline of an unsupported kind.
var ErrUnknownKind = errors.New("unknown classifier kind")

// Pipeline is a TF-IDF vectorizer followed by a classifier, together with
// the label set and the identifier of the normalizer its inputs went through.
//
// Pipeline does not normalize text; callers apply the normalizer recorded
// in Normalizer before Fit and before every prediction.
type Pipeline struct {
	Name       string
	Kind       Kind
	Normalizer string
	Labels     []string
	Vectorizer *TfidfVectorizer
	Classifier Classifier
}

// NewPipeline creates an unfitted pipeline for the given classifier kind.
func NewPipeline(name string, kind Kind, tfidf TfidfConfig, classifier Classifier) *Pipeline {
	return &Pipeline{
		Name:       name,
		Kind:       kind,
		Vectorizer: NewTfidfVectorizer(tfidf),
		Classifier: classifier,
	}
}

// DefaultCandidates returns the four candidate pipelines in evaluation
// order. seed drives every stochastic component.
func DefaultCandidates(seed int64) []*Pipeline {
	tfidf := DefaultTfidfConfig()

	svm := DefaultSVMConfig()
	svm.Seed = seed
	forest := DefaultForestConfig()
	forest.Seed = seed

	return []*Pipeline{
		NewPipeline("Logistic Regression", KindLogisticRegression, tfidf, NewLogisticRegression(DefaultLogisticConfig())),
		NewPipeline("Naive Bayes", KindNaiveBayes, tfidf, NewNaiveBayes(DefaultNaiveBayesConfig())),
		NewPipeline("Random Forest", KindRandomForest, tfidf, NewRandomForest(forest)),
		NewPipeline("Linear SVM", KindLinearSVM, tfidf, NewLinearSVM(svm)),
	}
}

// Fit learns the label set, the vocabulary and the classifier from
// normalized documents and their labels.
func (p *Pipeline) Fit(ctx context.Context, docs, labels []string) error {
	if len(docs) == 0 {
		return ErrEmptyDataset
	}
	if len(docs) != len(labels) {
		return fmt.Errorf("%w: %d documents, %d labels", ErrShapeMismatch, len(docs), len(labels))
	}

	p.Labels = uniqueSorted(labels)
	index := make(map[string]int, len(p.Labels))
	for i, label := range p.Labels {
		index[label] = i
	}
	y := make([]int, len(labels))
	for i, label := range labels {
		y[i] = index[label]
	}

	X, err := p.Vectorizer.FitTransform(ctx, docs)
	if err != nil {
		return fmt.Errorf("vectorize: %w", err)
	}
	if err := p.Classifier.Fit(ctx, X, y, len(p.Labels), p.Vectorizer.NumFeatures()); err != nil {
		return fmt.Errorf("fit %s: %w", p.Name, err)
	}
	return nil
}

// Fitted reports whether the pipeline can predict.
func (p *Pipeline) Fitted() bool {
	return p != nil && len(p.Labels) > 0 && p.Vectorizer != nil && p.Classifier != nil &&
		p.Vectorizer.NumFeatures() > 0
}

// Probabilities returns the class distribution for a normalized document,
// aligned with Labels.
func (p *Pipeline) Probabilities(doc string) ([]float64, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	proba := p.Classifier.Probabilities(p.Vectorizer.Transform(doc))
	if len(proba) != len(p.Labels) {
		return nil, fmt.Errorf("%w: %d probabilities for %d labels", ErrShapeMismatch, len(proba), len(p.Labels))
	}
	return proba, nil
}

// Predict returns the most probable label and its probability.
func (p *Pipeline) Predict(doc string) (string, float64, error) {
	proba, err := p.Probabilities(doc)
	if err != nil {
		return "", 0, err
	}
	best := argmax(proba)
	return p.Labels[best], clamp01(proba[best]), nil
}

// PredictIndices returns the predicted label index for every document.
func (p *Pipeline) PredictIndices(docs []string) ([]int, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	return PredictAll(p.Classifier, p.Vectorizer.TransformAll(docs)), nil
}

// LabelIndices maps labels onto the pipeline's label indices; unknown
// labels map to -1.
func (p *Pipeline) LabelIndices(labels []string) []int {
	index := make(map[string]int, len(p.Labels))
	for i, label := range p.Labels {
		index[label] = i
	}
	out := make([]int, len(labels))
	for i, label := range labels {
		if k, ok := index[label]; ok {
			out[i] = k
		} else {
			out[i] = -1
		}
	}
	return out
}

type pipelineEnvelope struct {
	Name       string           `json:"name"`
	Kind       Kind             `json:"kind"`
	Normalizer string           `json:"normalizer"`
	Labels     []string         `json:"labels"`
	Vectorizer *TfidfVectorizer `json:"vectorizer"`
	Model      json.RawMessage  `json:"model"`
}

// MarshalJSON encodes the pipeline with its classifier as a raw sub-document.
func (p *Pipeline) MarshalJSON() ([]byte, error) {
	model, err := json.Marshal(p.Classifier)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", p.Kind, err)
	}
	return json.Marshal(pipelineEnvelope{
		Name:       p.Name,
		Kind:       p.Kind,
		Normalizer: p.Normalizer,
		Labels:     p.Labels,
		Vectorizer: p.Vectorizer,
		Model:      model,
	})
}

// UnmarshalJSON decodes a pipeline written by MarshalJSON.
func (p *Pipeline) UnmarshalJSON(data []byte) error {
	var env pipelineEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var classifier Classifier
	switch env.Kind {
	case KindLogisticRegression:
		classifier = &LogisticRegression{}
	case KindNaiveBayes:
		classifier = &NaiveBayes{}
	case KindRandomForest:
		classifier = &RandomForest{}
	case KindLinearSVM:
		classifier = &LinearSVM{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}
	if err := json.Unmarshal(env.Model, classifier); err != nil {
		return fmt.Errorf("decode %s: %w", env.Kind, err)
	}

	*p = Pipeline{
		Name:       env.Name,
		Kind:       env.Kind,
		Normalizer: env.Normalizer,
		Labels:     env.Labels,
		Vectorizer: env.Vectorizer,
		Classifier: classifier,
	}
	return nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
