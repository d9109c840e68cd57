package store

import (
	"time"

	"surveyportal/internal/model"
)

// DefaultHighlightArticleURL is the article linked after a submission in the seed dataset
const DefaultHighlightArticleURL = "https://example.com/articles/neuro-pulse-voice-study"

// Seed returns the fixed demo dataset. Ids and timestamps are constants so
// every call yields an identical document.
func Seed() model.Document {
	voice := model.Survey{
		ID:           "survey-voice-pulse",
		Title:        "Neuro Pulse: voice experience check",
		Description:  "Help us tune the synthetic voice. It takes about a minute.",
		AudienceHint: "Listeners who tried the voice assistant this week",
		AccentColor:  model.DefaultAccentColor,
		Questions: []model.Question{
			{
				ID:          "question-first-impression",
				Prompt:      "How did the voice sound to you?",
				Description: "Pick the option closest to your first impression.",
				Type:        model.QuestionTypeMultipleChoice,
				Required:    true,
				Options:     []string{"Natural", "Slightly robotic", "Robotic", "Hard to tell"},
			},
			{
				ID:          "question-clarity",
				Prompt:      "How clear was the speech?",
				Description: "1 means you missed most words, 5 means every word was clear.",
				Type:        model.QuestionTypeRating,
				Required:    true,
				Scale:       &model.RatingScale{Min: 1, Max: 5, Step: 1, Labels: [2]string{"Unclear", "Crystal clear"}},
			},
			{
				ID:          "question-feedback",
				Prompt:      "Anything else we should know?",
				Description: "Optional. Mention moments that felt off.",
				Type:        model.QuestionTypeText,
			},
		},
	}

	onboarding := model.Survey{
		ID:           "survey-studio-onboarding",
		Title:        "Studio onboarding",
		Description:  "Tell us how you found the studio and how setup went.",
		AudienceHint: "New workspace owners",
		AccentColor:  "#00f5d4",
		Questions: []model.Question{
			{
				ID:       "question-source",
				Prompt:   "Where did you hear about us?",
				Type:     model.QuestionTypeMultipleChoice,
				Required: true,
				Options:  []string{"Friend", "Social media", "Search", "Other"},
			},
			{
				ID:       "question-setup-ease",
				Prompt:   "How easy was the setup?",
				Type:     model.QuestionTypeRating,
				Required: false,
				Scale:    &model.RatingScale{Min: 1, Max: 10, Step: 1, Labels: [2]string{"Painful", "Effortless"}},
			},
		},
	}

	at := func(day, hour, minute int) time.Time {
		return time.Date(2026, time.January, day, hour, minute, 0, 0, time.UTC)
	}

	return model.Document{
		Surveys: []model.Survey{voice, onboarding},
		Responses: []model.Response{
			{
				ID:       "response-seed-1",
				SurveyID: voice.ID,
				Answers: map[string]string{
					"question-first-impression": "Natural",
					"question-clarity":          "5",
					"question-feedback":         "Pleasant pacing, loved the pauses.",
				},
				SubmittedAt: at(12, 9, 30),
			},
			{
				ID:       "response-seed-2",
				SurveyID: voice.ID,
				Answers: map[string]string{
					"question-first-impression": "Slightly robotic",
					"question-clarity":          "4",
				},
				SubmittedAt: at(12, 14, 5),
			},
			{
				ID:       "response-seed-3",
				SurveyID: voice.ID,
				Answers: map[string]string{
					"question-first-impression": "Natural",
					"question-feedback":         "Some words were clipped at the end.",
				},
				SubmittedAt: at(13, 11, 45),
			},
			{
				ID:       "response-seed-4",
				SurveyID: onboarding.ID,
				Answers: map[string]string{
					"question-source":     "Friend",
					"question-setup-ease": "8",
				},
				SubmittedAt: at(14, 16, 20),
			},
		},
		ActiveSurveyID:      voice.ID,
		HighlightArticleURL: DefaultHighlightArticleURL,
	}
}
