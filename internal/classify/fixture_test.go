// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package classify

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tomtom215/flipitnews/internal/ml"
	"github.com/tomtom215/flipitnews/internal/modelstore"
	"github.com/tomtom215/flipitnews/internal/textnorm"
)

const appleHeadline = "Apple releases new iPhone with AI chip"

var fixtureArticles = []struct{ text, label string }{
	{"Apple unveils new iPhone 15 with faster AI chip", "Technology"},
	{"Google releases Android update with AI assistant", "Technology"},
	{"Microsoft software update improves computer security", "Technology"},
	{"New chip from Apple powers the latest iPhone", "Technology"},
	{"Stock market rallies as investors cheer strong earnings", "Business"},
	{"Company profit rises on higher trade volume", "Business"},
	{"Bitcoin price surges as crypto investment grows", "Business"},
	{"Investors buy stock after company raises profit outlook", "Business"},
	{"Team wins championship after dramatic final game", "Sports"},
	{"Star player scores twice as league leaders win", "Sports"},
	{"Coach praises football team after victory", "Sports"},
	{"Olympics sprinter wins gold in record race", "Sports"},
	{"New movie tops box office on opening weekend", "Entertainment"},
	{"Actor joins cast of Hollywood film sequel", "Entertainment"},
	{"Celebrity couple attends film festival premiere", "Entertainment"},
	{"Music awards celebrate best album of the year", "Entertainment"},
	{"Senate passes bill on healthcare reform", "Politics"},
	{"President signs law after Congress vote", "Politics"},
	{"Parliament debates government budget proposal", "Politics"},
	{"Voters head to polls in national election", "Politics"},
}

// trainedPipeline fits a Naive Bayes pipeline on the fixture articles.
func trainedPipeline(t *testing.T) *ml.Pipeline {
	t.Helper()

	docs := make([]string, len(fixtureArticles))
	labels := make([]string, len(fixtureArticles))
	for i, a := range fixtureArticles {
		docs[i] = a.text
		labels[i] = a.label
	}

	p := ml.NewPipeline("Naive Bayes", ml.KindNaiveBayes, ml.DefaultTfidfConfig(), ml.NewNaiveBayes(ml.DefaultNaiveBayesConfig()))
	p.Normalizer = textnorm.Version
	if err := p.Fit(context.Background(), textnorm.NormalizeAll(docs), labels); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return p
}

// savedStore writes a trained pipeline to a file store in a temp dir.
func savedStore(t *testing.T) *modelstore.FileStore {
	t.Helper()

	store := modelstore.NewFileStore(filepath.Join(t.TempDir(), "custom_model.model"))
	if err := store.Save(context.Background(), trainedPipeline(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return store
}
