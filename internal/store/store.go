// Package store owns the survey collection, its responses and the global
// settings. Every mutation is applied in memory first and then written
// through to the configured Medium as one JSON document.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"surveyportal/internal/idgen"
	"surveyportal/internal/model"
)

var (
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrInvalidQuestion    = errors.New("invalid question")
	ErrInvalidAccentColor = errors.New("accent color must not be empty")
)

// Medium is a single-key byte store holding the serialized document.
// Load returns nil, nil when nothing has been saved yet.
type Medium interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store is the single source of truth for surveys and responses.
// Calls are serialized by an internal lock so one Store can be shared by
// concurrent request handlers; writes reach the medium in call order.
type Store struct {
	mu sync.RWMutex

	doc          model.Document
	lastMutation time.Time
	revision     uint64

	medium         Medium
	ids            idgen.Generator
	now            func() time.Time
	logger         *slog.Logger
	persistTimeout time.Duration
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the random UUID generator
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for persistence warnings
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithPersistTimeout bounds every write-through to the medium
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) { s.persistTimeout = d }
}

// New builds a store and restores its state from medium. A nil medium
// keeps the state in memory only. A missing, unreadable or corrupt
// document falls back to the seed dataset.
func New(ctx context.Context, medium Medium, opts ...Option) *Store {
	s := &Store{
		medium:         medium,
		ids:            idgen.NewUUID(),
		now:            time.Now,
		logger:         slog.Default(),
		persistTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.load(ctx)
	s.lastMutation = s.timestamp()
	return s
}

func (s *Store) load(ctx context.Context) model.Document {
	if s.medium == nil {
		return Seed()
	}
	data, err := s.medium.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load survey state, using seed data", slog.String("error", err.Error()))
		return Seed()
	}
	if data == nil {
		s.logger.Info("no saved survey state, using seed data")
		return Seed()
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		s.logger.Warn("saved survey state is corrupt, using seed data", slog.String("error", err.Error()))
		return Seed()
	}
	return doc
}

// DecodeDocument parses a persisted document and repairs it: question
// payloads are aligned with their types, duplicate ids are dropped,
// orphaned responses are removed and the active survey is re-pointed.
func DecodeDocument(data []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, err
	}
	return normalize(doc), nil
}

// EncodeDocument serializes a document in its persisted form
func EncodeDocument(doc model.Document) ([]byte, error) {
	return json.Marshal(doc)
}

func normalize(doc model.Document) model.Document {
	out := model.Document{
		Surveys:             make([]model.Survey, 0, len(doc.Surveys)),
		Responses:           make([]model.Response, 0, len(doc.Responses)),
		ActiveSurveyID:      doc.ActiveSurveyID,
		HighlightArticleURL: doc.HighlightArticleURL,
	}

	surveyIDs := make(map[string]bool, len(doc.Surveys))
	for _, survey := range doc.Surveys {
		if survey.ID == "" || surveyIDs[survey.ID] {
			continue
		}
		surveyIDs[survey.ID] = true

		survey = survey.Clone()
		if strings.TrimSpace(survey.AccentColor) == "" {
			survey.AccentColor = model.DefaultAccentColor
		}
		questions := make([]model.Question, 0, len(survey.Questions))
		seen := make(map[string]bool, len(survey.Questions))
		for _, q := range survey.Questions {
			if q.ID == "" || seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			q.Normalize()
			questions = append(questions, q)
		}
		survey.Questions = questions
		out.Surveys = append(out.Surveys, survey)
	}

	for _, r := range doc.Responses {
		if !surveyIDs[r.SurveyID] {
			continue
		}
		out.Responses = append(out.Responses, r.Clone())
	}

	if !surveyIDs[out.ActiveSurveyID] {
		out.ActiveSurveyID = ""
		if len(out.Surveys) > 0 {
			out.ActiveSurveyID = out.Surveys[0].ID
		}
	}
	return out
}

// persist writes the current document through to the medium. Failures are
// logged and the in-memory state is kept. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) {
	s.lastMutation = s.timestamp()
	s.revision++
	if s.medium == nil {
		return
	}
	data, err := EncodeDocument(s.doc)
	if err != nil {
		s.logger.Error("failed to encode survey state", slog.String("error", err.Error()))
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	saveCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()
	if err := s.medium.Save(saveCtx, data); err != nil {
		s.logger.Warn("failed to persist survey state", slog.String("error", err.Error()))
	}
}

// timestamp strips the monotonic reading and keeps millisecond precision,
// the finest every medium stores (BSON datetimes are milliseconds)
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) surveyIndex(id string) int {
	for i, survey := range s.doc.Surveys {
		if survey.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findSurvey(id string) (int, error) {
	i := s.surveyIndex(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrSurveyNotFound, id)
	}
	return i, nil
}

func (s *Store) findQuestion(surveyID, questionID string) (int, int, error) {
	si, err := s.findSurvey(surveyID)
	if err != nil {
		return -1, -1, err
	}
	qi := s.doc.Surveys[si].QuestionIndex(questionID)
	if qi < 0 {
		return -1, -1, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	return si, qi, nil
}

// CreateSurvey appends an empty survey with default metadata and makes it active
func (s *Store) CreateSurvey(ctx context.Context) model.Survey {
	s.mu.Lock()
	defer s.mu.Unlock()

	survey := model.NewSurvey(s.ids.Next("survey"))
	s.doc.Surveys = append(s.doc.Surveys, survey)
	s.doc.ActiveSurveyID = survey.ID
	s.persist(ctx)
	return survey.Clone()
}

// SetActiveSurvey selects the survey shown by the editor.
// Unknown ids are reported with ErrSurveyNotFound and leave the selection
// unchanged; callers that prefer a silent no-op ignore the error.
func (s *Store) SetActiveSurvey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findSurvey(id); err != nil {
		return err
	}
	if s.doc.ActiveSurveyID == id {
		return nil
	}
	s.doc.ActiveSurveyID = id
	s.persist(ctx)
	return nil
}

// DeleteSurvey removes a survey together with its responses. When the
// active survey is deleted the selection moves to the survey that took its
// place, or the previous one, or none if the collection is empty.
func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.findSurvey(id)
	if err != nil {
		return err
	}
	s.doc.Surveys = append(s.doc.Surveys[:si], s.doc.Surveys[si+1:]...)

	kept := s.doc.Responses[:0]
	for _, r := range s.doc.Responses {
		if r.SurveyID != id {
			kept = append(kept, r)
		}
	}
	s.doc.Responses = kept

	if s.doc.ActiveSurveyID == id {
		switch {
		case len(s.doc.Surveys) == 0:
			s.doc.ActiveSurveyID = ""
		case si < len(s.doc.Surveys):
			s.doc.ActiveSurveyID = s.doc.Surveys[si].ID
		default:
			s.doc.ActiveSurveyID = s.doc.Surveys[si-1].ID
		}
	}
	s.persist(ctx)
	return nil
}

// AddQuestion appends q to the survey. An empty id is generated; the
// payload is aligned with the question type.
func (s *Store) AddQuestion(ctx context.Context, surveyID string, q model.Question) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.findSurvey(surveyID)
	if err != nil {
		return model.Question{}, err
	}
	if !q.Type.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, q.Type)
	}
	q = q.Clone()
	if q.ID == "" {
		q.ID = s.ids.Next("question")
	}
	if s.doc.Surveys[si].QuestionIndex(q.ID) >= 0 {
		return model.Question{}, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
	}
	q.Normalize()
	if err := validateScale(q); err != nil {
		return model.Question{}, err
	}

	s.doc.Surveys[si].Questions = append(s.doc.Surveys[si].Questions, q)
	s.persist(ctx)
	return q.Clone(), nil
}

// UpdateQuestion merges patch into the question. No defaults are derived
// from a type change here: the payload of the resulting type must already
// be present or supplied by the patch, the other payload is dropped.
func (s *Store) UpdateQuestion(ctx context.Context, surveyID, questionID string, patch model.QuestionPatch) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, qi, err := s.findQuestion(surveyID, questionID)
	if err != nil {
		return model.Question{}, err
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, *patch.Type)
	}

	q := patch.Apply(s.doc.Surveys[si].Questions[qi])
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		if q.Options == nil {
			return model.Question{}, fmt.Errorf("%w: multiple_choice needs options", ErrInvalidQuestion)
		}
		q.Scale = nil
	case model.QuestionTypeRating:
		if q.Scale == nil {
			return model.Question{}, fmt.Errorf("%w: rating needs a scale", ErrInvalidQuestion)
		}
		q.Options = nil
		if err := validateScale(q); err != nil {
			return model.Question{}, err
		}
	default:
		q.Options = nil
		q.Scale = nil
	}

	s.doc.Surveys[si].Questions[qi] = q
	s.persist(ctx)
	return q.Clone(), nil
}

// ChangeQuestionType switches the question type, resetting the old payload
// and seeding the new one with defaults. Selecting the current type is a no-op.
func (s *Store) ChangeQuestionType(ctx context.Context, surveyID, questionID string, t model.QuestionType) (model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, qi, err := s.findQuestion(surveyID, questionID)
	if err != nil {
		return model.Question{}, err
	}
	if !t.Valid() {
		return model.Question{}, fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, t)
	}
	current := s.doc.Surveys[si].Questions[qi]
	if current.Type == t {
		return current.Clone(), nil
	}

	q := current.WithType(t)
	s.doc.Surveys[si].Questions[qi] = q
	s.persist(ctx)
	return q.Clone(), nil
}

// ReorderQuestions moves the question at from to position to.
// Both indices are clamped to the question list.
func (s *Store) ReorderQuestions(ctx context.Context, surveyID string, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.findSurvey(surveyID)
	if err != nil {
		return err
	}
	questions := s.doc.Surveys[si].Questions
	if len(questions) == 0 {
		return nil
	}
	from = clamp(from, 0, len(questions)-1)
	to = clamp(to, 0, len(questions)-1)
	if from == to {
		return nil
	}

	moved := questions[from]
	questions = append(questions[:from], questions[from+1:]...)
	questions = append(questions[:to], append([]model.Question{moved}, questions[to:]...)...)
	s.doc.Surveys[si].Questions = questions
	s.persist(ctx)
	return nil
}

// RemoveQuestion deletes the question from the survey. Answers already
// recorded for it stay in their responses.
func (s *Store) RemoveQuestion(ctx context.Context, surveyID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, qi, err := s.findQuestion(surveyID, questionID)
	if err != nil {
		return err
	}
	questions := s.doc.Surveys[si].Questions
	s.doc.Surveys[si].Questions = append(questions[:qi], questions[qi+1:]...)
	s.persist(ctx)
	return nil
}

// UpdateSurveyMeta merges title, description, audience hint and accent color
func (s *Store) UpdateSurveyMeta(ctx context.Context, surveyID string, patch model.SurveyMetaPatch) (model.Survey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.findSurvey(surveyID)
	if err != nil {
		return model.Survey{}, err
	}
	if patch.AccentColor != nil && strings.TrimSpace(*patch.AccentColor) == "" {
		return model.Survey{}, ErrInvalidAccentColor
	}

	s.doc.Surveys[si] = patch.Apply(s.doc.Surveys[si])
	s.persist(ctx)
	return s.doc.Surveys[si].Clone(), nil
}

// AddResponse records answers for the survey. Required questions are not
// checked here. Keys that are not current question ids are dropped.
func (s *Store) AddResponse(ctx context.Context, surveyID string, answers map[string]string) (model.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	si, err := s.findSurvey(surveyID)
	if err != nil {
		return model.Response{}, err
	}
	current := s.doc.Surveys[si].QuestionIDs()
	kept := make(map[string]string, len(answers))
	for id, value := range answers {
		if current[id] {
			kept[id] = value
		}
	}

	r := model.Response{
		ID:          s.ids.Next("response"),
		SurveyID:    surveyID,
		Answers:     kept,
		SubmittedAt: s.timestamp(),
	}
	s.doc.Responses = append(s.doc.Responses, r)
	s.persist(ctx)
	return r.Clone(), nil
}

// ResetToDefaults replaces every survey, response and setting with the seed dataset
func (s *Store) ResetToDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = Seed()
	s.persist(ctx)
}

// SetHighlightArticleURL sets the link shown to respondents after submission
func (s *Store) SetHighlightArticleURL(ctx context.Context, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.HighlightArticleURL = strings.TrimSpace(url)
	s.persist(ctx)
}

// Restore replaces the whole state with doc after repairing it
func (s *Store) Restore(ctx context.Context, doc model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = normalize(doc)
	s.persist(ctx)
}

// Document returns a copy of the full state in its persisted shape
func (s *Store) Document() model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Surveys returns copies of all surveys in creation order
func (s *Store) Surveys() []model.Survey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Survey, len(s.doc.Surveys))
	for i, survey := range s.doc.Surveys {
		out[i] = survey.Clone()
	}
	return out
}

// Survey returns a copy of one survey
func (s *Store) Survey(id string) (model.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	si, err := s.findSurvey(id)
	if err != nil {
		return model.Survey{}, err
	}
	return s.doc.Surveys[si].Clone(), nil
}

// ActiveSurveyID returns the selected survey id, empty when no survey exists
func (s *Store) ActiveSurveyID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.ActiveSurveyID
}

// ActiveSurvey returns the selected survey; ok is false when none exists
func (s *Store) ActiveSurvey() (model.Survey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	si := s.surveyIndex(s.doc.ActiveSurveyID)
	if si < 0 {
		return model.Survey{}, false
	}
	return s.doc.Surveys[si].Clone(), true
}

// Responses returns the responses of a survey in the order they were recorded
func (s *Store) Responses(surveyID string) []model.Response {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.responsesLocked(surveyID)
}

func (s *Store) responsesLocked(surveyID string) []model.Response {
	out := []model.Response{}
	for _, r := range s.doc.Responses {
		if r.SurveyID == surveyID {
			out = append(out, r.Clone())
		}
	}
	return out
}

// HighlightArticleURL returns the post-submission link
func (s *Store) HighlightArticleURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.HighlightArticleURL
}

// LastMutation returns when the state last changed (or was loaded)
func (s *Store) LastMutation() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMutation
}

// Snapshot is a consistent view of one survey for analytics callers.
// Revision counts mutations since the store was built, so two changes
// within the same millisecond still differ.
type Snapshot struct {
	Survey       model.Survey
	Responses    []model.Response
	LastMutation time.Time
	Revision     uint64
}

// Snapshot returns the survey, its responses and the mutation timestamp
// read under a single lock.
func (s *Store) Snapshot(surveyID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	si, err := s.findSurvey(surveyID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Survey:       s.doc.Surveys[si].Clone(),
		Responses:    s.responsesLocked(surveyID),
		LastMutation: s.lastMutation,
		Revision:     s.revision,
	}, nil
}

func validateScale(q model.Question) error {
	if q.Type != model.QuestionTypeRating || q.Scale == nil {
		return nil
	}
	if err := q.Scale.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
