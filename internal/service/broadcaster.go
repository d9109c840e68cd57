package service

// Event types pushed to survey subscribers
const (
	EventSurveyUpdated    = "survey_updated"
	EventSurveyDeleted    = "survey_deleted"
	EventResponseRecorded = "response_recorded"
	EventAnalyticsUpdate  = "analytics_update"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
}
