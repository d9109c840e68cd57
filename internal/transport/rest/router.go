package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"surveyportal/internal/service"
	"surveyportal/internal/transport/rest/handler"
	"surveyportal/internal/transport/rest/middleware"
	"surveyportal/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService    *service.SurveyService
	ResponseService  *service.ResponseService
	AnalyticsService *service.AnalyticsService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	questionHandler := handler.NewQuestionHandler(c.SurveyService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	settingsHandler := handler.NewSettingsHandler(c.SurveyService)
	wsHandler := ws.NewHandler(c.WSHub, c.SurveyService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Surveys. /surveys/active must be registered before /surveys/{surveyId}
	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/active", surveyHandler.GetActive).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/active", surveyHandler.SetActive).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.UpdateMeta).Methods("PATCH", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")

	// Question editing
	v1.HandleFunc("/surveys/{surveyId}/questions", questionHandler.Add).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/reorder", questionHandler.Reorder).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}", questionHandler.Update).Methods("PATCH", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}", questionHandler.Remove).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/type", questionHandler.ChangeType).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/questions/{questionId}/move", questionHandler.Move).Methods("POST", "OPTIONS")

	// Responses and analytics
	v1.HandleFunc("/surveys/{surveyId}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/responses/export", responseHandler.Export).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/analytics", analyticsHandler.Survey).Methods("GET", "OPTIONS")
	v1.HandleFunc("/analytics/active", analyticsHandler.Active).Methods("GET", "OPTIONS")

	// Settings
	v1.HandleFunc("/settings", settingsHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/settings/highlight-article", settingsHandler.SetHighlightArticle).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/reset", settingsHandler.Reset).Methods("POST", "OPTIONS")
	v1.HandleFunc("/state", settingsHandler.ExportState).Methods("GET", "OPTIONS")
	v1.HandleFunc("/state", settingsHandler.ImportState).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/openapi.json", settingsHandler.OpenAPI).Methods("GET")

	// Live dashboard updates
	v1.HandleFunc("/ws/surveys/{surveyId}", wsHandler.SurveyWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
