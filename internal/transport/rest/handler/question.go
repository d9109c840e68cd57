package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"surveyportal/internal/model"
	"surveyportal/internal/service"
)

// QuestionHandler handles question editing endpoints
type QuestionHandler struct {
	surveySvc *service.SurveyService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(surveySvc *service.SurveyService) *QuestionHandler {
	return &QuestionHandler{surveySvc: surveySvc}
}

// AddQuestionRequest adds either a full question or a default one of Type
type AddQuestionRequest struct {
	Type     model.QuestionType `json:"type"`
	Question *model.Question    `json:"question,omitempty"`
}

// ChangeTypeRequest is the request body for switching a question type
type ChangeTypeRequest struct {
	Type model.QuestionType `json:"type"`
}

// ReorderRequest moves the question at From to To
type ReorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveRequest shifts a question one slot; Direction is "up" or "down"
type MoveRequest struct {
	Direction string `json:"direction"`
}

// Add handles POST /v1/surveys/{surveyId}/questions
func (h *QuestionHandler) Add(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req AddQuestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		q   model.Question
		err error
	)
	if req.Question != nil {
		q, err = h.surveySvc.AddQuestion(r.Context(), surveyID, *req.Question)
	} else {
		q, err = h.surveySvc.AddDefaultQuestion(r.Context(), surveyID, req.Type)
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, q)
}

// Update handles PATCH /v1/surveys/{surveyId}/questions/{questionId}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch model.QuestionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.surveySvc.UpdateQuestion(r.Context(), vars["surveyId"], vars["questionId"], patch)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// ChangeType handles PUT /v1/surveys/{surveyId}/questions/{questionId}/type
func (h *QuestionHandler) ChangeType(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req ChangeTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.surveySvc.ChangeQuestionType(r.Context(), vars["surveyId"], vars["questionId"], req.Type)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// Remove handles DELETE /v1/surveys/{surveyId}/questions/{questionId}
func (h *QuestionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.surveySvc.RemoveQuestion(r.Context(), vars["surveyId"], vars["questionId"]); err != nil {
		writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /v1/surveys/{surveyId}/questions/reorder
func (h *QuestionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.surveySvc.ReorderQuestions(r.Context(), surveyID, req.From, req.To)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Move handles POST /v1/surveys/{surveyId}/questions/{questionId}/move
func (h *QuestionHandler) Move(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var direction int
	switch req.Direction {
	case "up":
		direction = service.MoveUp
	case "down":
		direction = service.MoveDown
	default:
		writeError(w, http.StatusBadRequest, `direction must be "up" or "down"`)
		return
	}

	survey, err := h.surveySvc.MoveQuestion(r.Context(), vars["surveyId"], vars["questionId"], direction)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}
