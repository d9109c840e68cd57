package model

import "time"

// DistributionEntry is one bucket of a question distribution
type DistributionEntry struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // of matched answers, one decimal
}

// QuestionAnalytics holds the statistics of a single question
type QuestionAnalytics struct {
	Question     Question            `json:"question"`
	Answered     int                 `json:"answered"` // answers that matched a bucket (text: non-blank answers)
	Distribution []DistributionEntry `json:"distribution"`
	AverageScore *float64            `json:"averageScore,omitempty"` // rating only
}

// DailyCount is the number of responses submitted on a UTC day
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// SurveyAnalytics is the aggregate view of a survey and its responses
type SurveyAnalytics struct {
	SurveyID              string              `json:"surveyId"`
	TotalResponses        int                 `json:"totalResponses"`
	CompletionRate        float64             `json:"completionRate"`        // 0-100
	AverageCompletionTime float64             `json:"averageCompletionTime"` // seconds
	LastResponseAt        *time.Time          `json:"lastResponseAt,omitempty"`
	QuestionAnalytics     []QuestionAnalytics `json:"questionAnalytics"`
	Timeline              []DailyCount        `json:"timeline"`
}
