package model

import "time"

// Response is one respondent's answers, immutable once recorded
type Response struct {
	ID          string            `json:"id" bson:"id"`
	SurveyID    string            `json:"surveyId" bson:"surveyId"`
	Answers     map[string]string `json:"answers" bson:"answers"` // question id -> value
	SubmittedAt time.Time         `json:"submittedAt" bson:"submittedAt"`
}

// Clone returns a deep copy
func (r Response) Clone() Response {
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		answers[k] = v
	}
	r.Answers = answers
	return r
}

// Document is the whole persisted state of the store
type Document struct {
	Surveys             []Survey   `json:"surveys" bson:"surveys"`
	Responses           []Response `json:"responses" bson:"responses"`
	ActiveSurveyID      string     `json:"activeSurveyId" bson:"activeSurveyId"`
	HighlightArticleURL string     `json:"highlightArticleUrl" bson:"highlightArticleUrl"`
}

// Clone returns a deep copy
func (d Document) Clone() Document {
	out := Document{
		Surveys:             make([]Survey, len(d.Surveys)),
		Responses:           make([]Response, len(d.Responses)),
		ActiveSurveyID:      d.ActiveSurveyID,
		HighlightArticleURL: d.HighlightArticleURL,
	}
	for i, s := range d.Surveys {
		out.Surveys[i] = s.Clone()
	}
	for i, r := range d.Responses {
		out.Responses[i] = r.Clone()
	}
	return out
}
