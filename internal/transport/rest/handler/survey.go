package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveyportal/internal/model"
	"surveyportal/internal/service"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// SetActiveRequest is the request body for selecting the active survey
type SetActiveRequest struct {
	SurveyID string `json:"surveyId"`
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	settings := h.surveySvc.Settings(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"surveys":        h.surveySvc.List(r.Context()),
		"activeSurveyId": settings.ActiveSurveyID,
	})
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SurveyMetaPatch
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), &req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// UpdateMeta handles PATCH /v1/surveys/{surveyId}
func (h *SurveyHandler) UpdateMeta(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req model.SurveyMetaPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.UpdateMeta(r.Context(), surveyID, req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	if err := h.surveySvc.Delete(r.Context(), surveyID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.surveySvc.Settings(r.Context()))
}

// GetActive handles GET /v1/surveys/active
func (h *SurveyHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	survey, ok := h.surveySvc.Active(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no active survey")
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// SetActive handles PUT /v1/surveys/active
func (h *SurveyHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.surveySvc.SetActive(r.Context(), req.SurveyID); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.surveySvc.Settings(r.Context()))
}
