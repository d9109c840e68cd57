package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"surveyportal/internal/analytics"
	"surveyportal/internal/model"
	"surveyportal/internal/store"
)

// ErrRequiredMissing is returned when a submission leaves required questions blank
var ErrRequiredMissing = errors.New("required questions are not answered")

// RequiredMissingError lists the blank required questions of a submission
type RequiredMissingError struct {
	QuestionIDs []string
}

func (e *RequiredMissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRequiredMissing, strings.Join(e.QuestionIDs, ", "))
}

func (e *RequiredMissingError) Is(target error) bool {
	return target == ErrRequiredMissing
}

// SubmitResult is returned to the respondent after a successful submission
type SubmitResult struct {
	Response            model.Response `json:"response"`
	HighlightArticleURL string         `json:"highlightArticleUrl,omitempty"`
}

// Export is a downloadable JSON document of a survey's responses
type Export struct {
	Filename string
	Data     []byte
}

// ResponseService handles respondent submissions and response listings
type ResponseService struct {
	store       *store.Store
	broadcaster Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(st *store.Store) *ResponseService {
	return &ResponseService{store: st}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates required answers and records the response
func (s *ResponseService) Submit(ctx context.Context, surveyID string, answers map[string]string) (*SubmitResult, error) {
	survey, err := s.store.Survey(surveyID)
	if err != nil {
		return nil, err
	}
	if missing := analytics.MissingRequired(survey, answers); len(missing) > 0 {
		return nil, &RequiredMissingError{QuestionIDs: missing}
	}

	response, err := s.store.AddResponse(ctx, surveyID, answers)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(surveyID, EventResponseRecorded, response)
		s.broadcaster.BroadcastToSurvey(surveyID, EventAnalyticsUpdate, map[string]interface{}{
			"surveyId":       surveyID,
			"totalResponses": len(s.store.Responses(surveyID)),
		})
	}

	return &SubmitResult{
		Response:            response,
		HighlightArticleURL: s.store.HighlightArticleURL(),
	}, nil
}

// List returns a survey's responses in submission order
func (s *ResponseService) List(ctx context.Context, surveyID string) ([]model.Response, error) {
	if _, err := s.store.Survey(surveyID); err != nil {
		return nil, err
	}
	return s.store.Responses(surveyID), nil
}

// Export serializes a survey's responses as an indented JSON array
func (s *ResponseService) Export(ctx context.Context, surveyID string) (*Export, error) {
	survey, err := s.store.Survey(surveyID)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s.store.Responses(surveyID), "", "  ")
	if err != nil {
		return nil, err
	}
	return &Export{
		Filename: ExportFilename(survey.Title),
		Data:     data,
	}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFilename derives "<title-slug>-responses.json" from a survey title
func ExportFilename(title string) string {
	slug := strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(title), "-"))
	if slug == "" {
		slug = "survey"
	}
	return slug + "-responses.json"
}
