package service

import (
	"context"
	"fmt"
	"log/slog"

	"surveyportal/internal/cache"
	"surveyportal/internal/model"
	"surveyportal/internal/store"
)

// Move directions for MoveQuestion
const (
	MoveUp   = -1
	MoveDown = 1
)

// Settings are the process-wide options edited next to the surveys
type Settings struct {
	ActiveSurveyID      string   `json:"activeSurveyId"`
	HighlightArticleURL string   `json:"highlightArticleUrl"`
	AccentPresets       []string `json:"accentPresets"`
}

// SurveyService handles survey editing on top of the store
type SurveyService struct {
	store       *store.Store
	broadcaster Broadcaster
	cache       cache.AnalyticsCache
}

// NewSurveyService creates a new survey service
func NewSurveyService(st *store.Store) *SurveyService {
	return &SurveyService{
		store: st,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetAnalyticsCache sets the cache purged when surveys are deleted or replaced
func (s *SurveyService) SetAnalyticsCache(c cache.AnalyticsCache) {
	s.cache = c
}

func (s *SurveyService) invalidate(ctx context.Context, surveyIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range surveyIDs {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			slog.Warn("analytics cache invalidation failed", slog.String("surveyId", id), slog.String("error", err.Error()))
		}
	}
}

func (s *SurveyService) surveyIDs() []string {
	surveys := s.store.Surveys()
	ids := make([]string, len(surveys))
	for i, survey := range surveys {
		ids[i] = survey.ID
	}
	return ids
}

func (s *SurveyService) notify(surveyID string) {
	if s.broadcaster == nil {
		return
	}
	survey, err := s.store.Survey(surveyID)
	if err != nil {
		return
	}
	s.broadcaster.BroadcastToSurvey(surveyID, EventSurveyUpdated, survey)
}

// List returns every survey in creation order
func (s *SurveyService) List(ctx context.Context) []model.Survey {
	return s.store.Surveys()
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (model.Survey, error) {
	return s.store.Survey(id)
}

// Create adds a survey with default metadata, applies meta when given and
// makes the new survey active.
func (s *SurveyService) Create(ctx context.Context, meta *model.SurveyMetaPatch) (model.Survey, error) {
	survey := s.store.CreateSurvey(ctx)
	if meta == nil {
		return survey, nil
	}
	updated, err := s.store.UpdateSurveyMeta(ctx, survey.ID, *meta)
	if err != nil {
		// keep the default survey; the caller sees why the metadata was refused
		return survey, err
	}
	return updated, nil
}

// Delete deletes a survey and its responses
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteSurvey(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSurvey(id, EventSurveyDeleted, map[string]string{"surveyId": id})
	}
	return nil
}

// UpdateMeta merges survey metadata
func (s *SurveyService) UpdateMeta(ctx context.Context, id string, patch model.SurveyMetaPatch) (model.Survey, error) {
	survey, err := s.store.UpdateSurveyMeta(ctx, id, patch)
	if err != nil {
		return model.Survey{}, err
	}
	s.notify(id)
	return survey, nil
}

// Active returns the active survey, or false when there is none
func (s *SurveyService) Active(ctx context.Context) (model.Survey, bool) {
	return s.store.ActiveSurvey()
}

// SetActive selects the active survey
func (s *SurveyService) SetActive(ctx context.Context, id string) error {
	return s.store.SetActiveSurvey(ctx, id)
}

// AddQuestion appends a caller-built question
func (s *SurveyService) AddQuestion(ctx context.Context, surveyID string, q model.Question) (model.Question, error) {
	added, err := s.store.AddQuestion(ctx, surveyID, q)
	if err != nil {
		return model.Question{}, err
	}
	s.notify(surveyID)
	return added, nil
}

// AddDefaultQuestion appends a question of type t with editor defaults
func (s *SurveyService) AddDefaultQuestion(ctx context.Context, surveyID string, t model.QuestionType) (model.Question, error) {
	if t == "" {
		t = model.QuestionTypeMultipleChoice
	}
	return s.AddQuestion(ctx, surveyID, model.NewQuestion("", t))
}

// UpdateQuestion merges a sparse patch into a question
func (s *SurveyService) UpdateQuestion(ctx context.Context, surveyID, questionID string, patch model.QuestionPatch) (model.Question, error) {
	q, err := s.store.UpdateQuestion(ctx, surveyID, questionID, patch)
	if err != nil {
		return model.Question{}, err
	}
	s.notify(surveyID)
	return q, nil
}

// ChangeQuestionType switches the type and reseeds the payload
func (s *SurveyService) ChangeQuestionType(ctx context.Context, surveyID, questionID string, t model.QuestionType) (model.Question, error) {
	q, err := s.store.ChangeQuestionType(ctx, surveyID, questionID, t)
	if err != nil {
		return model.Question{}, err
	}
	s.notify(surveyID)
	return q, nil
}

// ReorderQuestions moves the question at from to index to
func (s *SurveyService) ReorderQuestions(ctx context.Context, surveyID string, from, to int) (model.Survey, error) {
	if err := s.store.ReorderQuestions(ctx, surveyID, from, to); err != nil {
		return model.Survey{}, err
	}
	s.notify(surveyID)
	return s.store.Survey(surveyID)
}

// MoveQuestion shifts a question one slot up or down. Moving past either
// end leaves the order unchanged.
func (s *SurveyService) MoveQuestion(ctx context.Context, surveyID, questionID string, direction int) (model.Survey, error) {
	survey, err := s.store.Survey(surveyID)
	if err != nil {
		return model.Survey{}, err
	}
	from := survey.QuestionIndex(questionID)
	if from < 0 {
		return model.Survey{}, fmt.Errorf("%w: %s", store.ErrQuestionNotFound, questionID)
	}
	return s.ReorderQuestions(ctx, surveyID, from, from+direction)
}

// RemoveQuestion deletes a question, keeping answers already recorded for it
func (s *SurveyService) RemoveQuestion(ctx context.Context, surveyID, questionID string) error {
	if err := s.store.RemoveQuestion(ctx, surveyID, questionID); err != nil {
		return err
	}
	s.notify(surveyID)
	return nil
}

// Reset restores the demo dataset
func (s *SurveyService) Reset(ctx context.Context) {
	before := s.surveyIDs()
	s.store.ResetToDefaults(ctx)
	s.invalidate(ctx, append(before, s.surveyIDs()...)...)
}

// Import replaces the whole state with doc. Broken references in doc are
// repaired the same way a loaded state is.
func (s *SurveyService) Import(ctx context.Context, doc model.Document) model.Document {
	before := s.surveyIDs()
	s.store.Restore(ctx, doc)
	after := s.surveyIDs()
	s.invalidate(ctx, append(before, after...)...)
	for _, id := range after {
		s.notify(id)
	}
	return s.store.Document()
}

// Export returns the whole state in its persisted shape
func (s *SurveyService) Export(ctx context.Context) model.Document {
	return s.store.Document()
}

// Settings returns the active survey, the highlight article link and the
// accent colors offered by the editor
func (s *SurveyService) Settings(ctx context.Context) Settings {
	return Settings{
		ActiveSurveyID:      s.store.ActiveSurveyID(),
		HighlightArticleURL: s.store.HighlightArticleURL(),
		AccentPresets:       append([]string(nil), model.AccentPresets...),
	}
}

// SetHighlightArticleURL sets the link shown after a submission
func (s *SurveyService) SetHighlightArticleURL(ctx context.Context, url string) Settings {
	s.store.SetHighlightArticleURL(ctx, url)
	return s.Settings(ctx)
}
