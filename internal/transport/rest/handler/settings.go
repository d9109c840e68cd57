package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/swaggo/swag"

	"surveyportal/internal/model"
	"surveyportal/internal/service"
)

// SettingsHandler handles global settings, demo reset and the API document
type SettingsHandler struct {
	surveySvc *service.SurveyService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(surveySvc *service.SurveyService) *SettingsHandler {
	return &SettingsHandler{surveySvc: surveySvc}
}

// HighlightArticleRequest is the request body for the post-submission link
type HighlightArticleRequest struct {
	URL string `json:"url"`
}

// Get handles GET /v1/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surveySvc.Settings(r.Context()))
}

// SetHighlightArticle handles PUT /v1/settings/highlight-article
func (h *SettingsHandler) SetHighlightArticle(w http.ResponseWriter, r *http.Request) {
	var req HighlightArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL != "" {
		if u, err := url.Parse(req.URL); err != nil || u.Scheme == "" || u.Host == "" {
			writeError(w, http.StatusBadRequest, "url must be absolute")
			return
		}
	}

	writeJSON(w, http.StatusOK, h.surveySvc.SetHighlightArticleURL(r.Context(), req.URL))
}

// Reset handles POST /v1/reset
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.surveySvc.Reset(r.Context())
	writeJSON(w, http.StatusOK, h.surveySvc.Settings(r.Context()))
}

// ExportState handles GET /v1/state
func (h *SettingsHandler) ExportState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.surveySvc.Export(r.Context()))
}

// ImportState handles PUT /v1/state
func (h *SettingsHandler) ImportState(w http.ResponseWriter, r *http.Request) {
	var doc model.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.surveySvc.Import(r.Context(), doc))
}

// OpenAPI handles GET /v1/openapi.json
func (h *SettingsHandler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api document not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
