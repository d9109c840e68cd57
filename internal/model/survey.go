package model

// DefaultAccentColor is the accent of newly created surveys
const DefaultAccentColor = "#8a68ff"

// AccentPresets are the accent colors offered by the editor
var AccentPresets = []string{"#8a68ff", "#ff6ec7", "#00f5d4", "#38bdf8", "#f97316"}

// Defaults applied by NewSurvey
const (
	DefaultSurveyTitle       = "New survey"
	DefaultSurveyDescription = "Tell respondents what this survey is about."
)

// Survey is a named, ordered collection of questions plus presentation metadata
type Survey struct {
	ID           string     `json:"id" bson:"id"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description" bson:"description"`
	AudienceHint string     `json:"audienceHint,omitempty" bson:"audienceHint,omitempty"`
	AccentColor  string     `json:"accentColor" bson:"accentColor"`
	Questions    []Question `json:"questions" bson:"questions"`
}

// NewSurvey builds an empty survey with the editor defaults
func NewSurvey(id string) Survey {
	return Survey{
		ID:          id,
		Title:       DefaultSurveyTitle,
		Description: DefaultSurveyDescription,
		AccentColor: DefaultAccentColor,
		Questions:   []Question{},
	}
}

// QuestionIndex returns the position of the question or -1
func (s Survey) QuestionIndex(questionID string) int {
	for i, q := range s.Questions {
		if q.ID == questionID {
			return i
		}
	}
	return -1
}

// QuestionIDs returns the set of current question ids
func (s Survey) QuestionIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		ids[q.ID] = true
	}
	return ids
}

// Clone returns a deep copy
func (s Survey) Clone() Survey {
	questions := make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = q.Clone()
	}
	s.Questions = questions
	return s
}

// SurveyMetaPatch is a sparse update of survey metadata
type SurveyMetaPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	AudienceHint *string `json:"audienceHint,omitempty"`
	AccentColor  *string `json:"accentColor,omitempty"`
}

// Apply merges the patch into a copy of s
func (p SurveyMetaPatch) Apply(s Survey) Survey {
	s = s.Clone()
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.AudienceHint != nil {
		s.AudienceHint = *p.AudienceHint
	}
	if p.AccentColor != nil {
		s.AccentColor = *p.AccentColor
	}
	return s
}
