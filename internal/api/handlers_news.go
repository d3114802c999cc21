// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/flipitnews/internal/news"
)

// News handles GET /news.
//
// @Summary Full demo news feed
// @Tags News
// @Produce json
// @Success 200 {array} news.Article
// @Router /news [get]
func (h *Handler) News(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, news.Feed())
}

// NewsFeed handles GET /news/feed. The optional category query parameter
// filters case-insensitively.
//
// @Summary Demo news feed filtered by category
// @Tags News
// @Produce json
// @Param category query string false "Category name, case-insensitive"
// @Success 200 {array} news.Article
// @Router /news/feed [get]
func (h *Handler) NewsFeed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, news.FeedByCategory(r.URL.Query().Get("category")))
}

// Recommendations handles GET /recommendations/{user_id}.
//
// @Summary Demo recommendations for a user
// @Tags News
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} news.Recommendation
// @Router /recommendations/{user_id} [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, news.Recommendations(chi.URLParam(r, "user_id")))
}
