package model

import (
	"errors"
	"fmt"
)

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice" // Picks one of Options
	QuestionTypeRating         QuestionType = "rating"          // Integer on Scale
	QuestionTypeText           QuestionType = "text"            // Free text, never bucketed
)

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeRating, QuestionTypeText:
		return true
	}
	return false
}

// Defaults applied to freshly created questions
const (
	DefaultQuestionPrompt      = "New question"
	DefaultQuestionDescription = "Describe the answer you expect from the audience."
	DefaultScaleMinLabel       = "Minimum"
	DefaultScaleMaxLabel       = "Maximum"
)

// RatingScale is the payload of a rating question
type RatingScale struct {
	Min    int       `json:"min" bson:"min"`
	Max    int       `json:"max" bson:"max"`
	Step   int       `json:"step" bson:"step"`
	Labels [2]string `json:"labels" bson:"labels"` // [minLabel, maxLabel]
}

// MaxScaleBuckets bounds the number of values a rating scale may define
const MaxScaleBuckets = 100

// intervals returns (Max-Min)/step without overflowing, for Min <= Max
func (s RatingScale) intervals(step int) uint64 {
	span := uint64(s.Max) - uint64(s.Min)
	return span / uint64(step)
}

// Validate reports why the scale cannot be used by a question
func (s RatingScale) Validate() error {
	switch {
	case s.Step <= 0:
		return errors.New("scale step must be positive")
	case s.Min > s.Max:
		return errors.New("scale min must not exceed max")
	case s.intervals(s.Step) >= MaxScaleBuckets:
		return fmt.Errorf("scale defines more than %d values", MaxScaleBuckets)
	}
	return nil
}

// Values lists every bucket from Min to Max by Step.
// A non-positive step counts as 1; Min > Max and scales with more than
// MaxScaleBuckets values yield no values.
func (s RatingScale) Values() []int {
	step := s.Step
	if step <= 0 {
		step = 1
	}
	if s.Min > s.Max {
		return []int{}
	}
	n := s.intervals(step)
	if n >= MaxScaleBuckets {
		return []int{}
	}
	values := make([]int, 0, n+1)
	for i := uint64(0); i <= n; i++ {
		values = append(values, int(uint64(s.Min)+i*uint64(step)))
	}
	return values
}

// Question is one item of a survey.
// Exactly one payload is populated and it matches Type: Options for
// multiple_choice, Scale for rating, neither for text. Absent payloads are
// nil; a multiple choice question may carry an empty, non-nil option list.
type Question struct {
	ID          string       `json:"id" bson:"id"`
	Prompt      string       `json:"prompt" bson:"prompt"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Type        QuestionType `json:"type" bson:"type"`
	Required    bool         `json:"required" bson:"required"`
	Options     []string     `json:"options" bson:"options"` // an empty list is kept as []
	Scale       *RatingScale `json:"scale,omitempty" bson:"scale,omitempty"`
}

// DefaultOptions returns the placeholder options of a new multiple choice question
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2"}
}

// DefaultScale returns the 1..5 scale of a new rating question
func DefaultScale() *RatingScale {
	return &RatingScale{
		Min:    1,
		Max:    5,
		Step:   1,
		Labels: [2]string{DefaultScaleMinLabel, DefaultScaleMaxLabel},
	}
}

// NewQuestion builds a question of type t with the editor defaults
func NewQuestion(id string, t QuestionType) Question {
	q := Question{
		ID:          id,
		Prompt:      DefaultQuestionPrompt,
		Description: DefaultQuestionDescription,
		Required:    false,
	}
	return q.WithType(t)
}

// WithType returns a copy switched to type t. The payload of the old type
// is dropped and the new one is seeded with its default.
func (q Question) WithType(t QuestionType) Question {
	q.Type = t
	q.Options = nil
	q.Scale = nil
	switch t {
	case QuestionTypeMultipleChoice:
		q.Options = DefaultOptions()
	case QuestionTypeRating:
		q.Scale = DefaultScale()
	}
	return q
}

// Normalize drops the payload that does not belong to the question type
// and seeds a missing one. Unknown types fall back to text.
func (q *Question) Normalize() {
	if !q.Type.Valid() {
		q.Type = QuestionTypeText
	}
	switch q.Type {
	case QuestionTypeMultipleChoice:
		q.Scale = nil
		if q.Options == nil {
			q.Options = DefaultOptions()
		}
	case QuestionTypeRating:
		q.Options = nil
		if q.Scale == nil {
			q.Scale = DefaultScale()
		}
	default:
		q.Options = nil
		q.Scale = nil
	}
}

// Clone returns a deep copy
func (q Question) Clone() Question {
	if q.Options != nil {
		q.Options = append([]string{}, q.Options...)
	}
	if q.Scale != nil {
		scale := *q.Scale
		q.Scale = &scale
	}
	return q
}

// QuestionPatch is a sparse update; nil fields are left unchanged.
// Type defaulting is not applied here, see Store.ChangeQuestionType.
type QuestionPatch struct {
	Prompt      *string       `json:"prompt,omitempty"`
	Description *string       `json:"description,omitempty"`
	Type        *QuestionType `json:"type,omitempty"`
	Required    *bool         `json:"required,omitempty"`
	Options     *[]string     `json:"options,omitempty"`
	Scale       *RatingScale  `json:"scale,omitempty"`
}

// Apply merges the patch into a copy of q
func (p QuestionPatch) Apply(q Question) Question {
	q = q.Clone()
	if p.Prompt != nil {
		q.Prompt = *p.Prompt
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Type != nil {
		q.Type = *p.Type
	}
	if p.Required != nil {
		q.Required = *p.Required
	}
	if p.Options != nil {
		q.Options = append([]string{}, (*p.Options)...)
	}
	if p.Scale != nil {
		scale := *p.Scale
		q.Scale = &scale
	}
	return q
}
