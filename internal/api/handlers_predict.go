// FlipItNews - News Classification Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flipitnews

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/flipitnews/internal/classify"
)

// PredictRequest is the body of every /predict endpoint. The text field must
// be present and is limited to 100000 characters. Empty or blank text is
// classified like any other input: the custom model predicts from an
// all-zero feature vector and the rules fall back to their default.
type PredictRequest struct {
	Text *string `json:"text" validate:"required,max=100000"`
}

// PredictionResponse is the body of a successful prediction.
type PredictionResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	ModelUsed  string  `json:"model_used"`
}

var unavailableMessages = map[classify.Strategy]string{
	classify.StrategyCustom:   msgCustomUnavailable,
	classify.StrategyZeroShot: msgZeroShotUnavailable,
	classify.StrategyRules:    msgRulesUnavailable,
}

// PredictBERT handles POST /predict/bert with the zero-shot strategy.
//
// @Summary Classify text with the hosted zero-shot model
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Text to classify"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} APIResponse "Invalid body or missing text field"
// @Failure 503 {object} APIResponse "Strategy not loaded"
// @Failure 500 {object} APIResponse "Classification failed"
// @Router /predict/bert [post]
func (h *Handler) PredictBERT(w http.ResponseWriter, r *http.Request) {
	h.predict(w, r, classify.StrategyZeroShot)
}

// PredictCustom handles POST /predict/custom with the trained pipeline.
//
// @Summary Classify text with the trained TF-IDF pipeline
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Text to classify"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} APIResponse "Invalid body or missing text field"
// @Failure 503 {object} APIResponse "Strategy not loaded"
// @Failure 500 {object} APIResponse "Classification failed"
// @Router /predict/custom [post]
func (h *Handler) PredictCustom(w http.ResponseWriter, r *http.Request) {
	h.predict(w, r, classify.StrategyCustom)
}

// PredictRules handles POST /predict/rules with the keyword rules.
//
// @Summary Classify text with the keyword rules
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Text to classify"
// @Success 200 {object} PredictionResponse
// @Failure 400 {object} APIResponse "Invalid body or missing text field"
// @Failure 503 {object} APIResponse "Strategy not loaded"
// @Failure 500 {object} APIResponse "Classification failed"
// @Router /predict/rules [post]
func (h *Handler) PredictRules(w http.ResponseWriter, r *http.Request) {
	h.predict(w, r, classify.StrategyRules)
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request, st classify.Strategy) {
	var req PredictRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pred, err := h.classifier.Classify(r.Context(), st, *req.Text)
	if err != nil {
		if errors.Is(err, classify.ErrUnavailable) {
			respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, unavailableMessages[st], err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, msgPredictionFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PredictionResponse{
		Category:   pred.Category,
		Confidence: pred.Confidence,
		ModelUsed:  pred.ModelUsed,
	})
}
