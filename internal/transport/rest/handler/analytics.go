package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveyportal/internal/service"
)

// AnalyticsHandler handles survey statistics endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Survey handles GET /v1/surveys/{surveyId}/analytics
func (h *AnalyticsHandler) Survey(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	summary, err := h.analyticsSvc.Summary(r.Context(), surveyID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Active handles GET /v1/analytics/active
func (h *AnalyticsHandler) Active(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analyticsSvc.ActiveSummary(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
