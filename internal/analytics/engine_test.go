package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"surveyportal/internal/model"
)

var day = time.Date(2025, 9, 18, 10, 0, 0, 0, time.UTC)

func responsesFor(surveyID, questionID string, values ...string) []model.Response {
	out := make([]model.Response, 0, len(values))
	for i, v := range values {
		out = append(out, model.Response{
			ID:          "response-" + string(rune('a'+i)),
			SurveyID:    surveyID,
			Answers:     map[string]string{questionID: v},
			SubmittedAt: day.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestMultipleChoiceDistribution(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeMultipleChoice, Options: []string{"A", "B"}}
	survey := model.Survey{ID: "s1", Questions: []model.Question{q}}

	got := Build(survey, responsesFor("s1", "q1", "A", "A", "B"))
	want := []model.DistributionEntry{
		{Option: "A", Count: 2, Percentage: 66.7},
		{Option: "B", Count: 1, Percentage: 33.3},
	}
	if !reflect.DeepEqual(got.QuestionAnalytics[0].Distribution, want) {
		t.Fatalf("distribution = %+v, want %+v", got.QuestionAnalytics[0].Distribution, want)
	}
	if got.QuestionAnalytics[0].AverageScore != nil {
		t.Fatal("multiple choice question must not carry an average score")
	}
}

func TestRatingDistributionAndAverage(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeRating, Scale: &model.RatingScale{Min: 1, Max: 5, Step: 1}}
	survey := model.Survey{ID: "s1", Questions: []model.Question{q}}

	got := Build(survey, responsesFor("s1", "q1", "2", "4", "4")).QuestionAnalytics[0]

	counts := make([]int, 0, len(got.Distribution))
	options := make([]string, 0, len(got.Distribution))
	for _, e := range got.Distribution {
		counts = append(counts, e.Count)
		options = append(options, e.Option)
	}
	if !reflect.DeepEqual(options, []string{"1", "2", "3", "4", "5"}) {
		t.Fatalf("options = %v", options)
	}
	if !reflect.DeepEqual(counts, []int{0, 1, 0, 2, 0}) {
		t.Fatalf("counts = %v", counts)
	}
	if got.AverageScore == nil {
		t.Fatal("expected an average score")
	}
	if math.Abs(*got.AverageScore-10.0/3.0) > 1e-9 {
		t.Fatalf("average = %v, want 3.333...", *got.AverageScore)
	}
}

func TestRatingEdgeCases(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeRating, Scale: &model.RatingScale{Min: 1, Max: 5, Step: 1}}
	survey := model.Survey{ID: "s1", Questions: []model.Question{q}}

	t.Run("no numeric answers", func(t *testing.T) {
		got := Build(survey, responsesFor("s1", "q1", "great", "")).QuestionAnalytics[0]
		if got.AverageScore != nil {
			t.Fatalf("expected no average, got %v", *got.AverageScore)
		}
		if got.Answered != 0 {
			t.Fatalf("expected 0 answered, got %d", got.Answered)
		}
	})

	t.Run("out of range still averaged", func(t *testing.T) {
		got := Build(survey, responsesFor("s1", "q1", "5", "9")).QuestionAnalytics[0]
		if got.Answered != 1 {
			t.Fatalf("expected 1 matched answer, got %d", got.Answered)
		}
		if got.Distribution[4].Percentage != 100 {
			t.Fatalf("expected 100%% in bucket 5, got %v", got.Distribution[4].Percentage)
		}
		if *got.AverageScore != 7 {
			t.Fatalf("expected average 7, got %v", *got.AverageScore)
		}
	})

	t.Run("inverted scale", func(t *testing.T) {
		inverted := model.Question{ID: "q1", Type: model.QuestionTypeRating, Scale: &model.RatingScale{Min: 5, Max: 1, Step: 1}}
		got := Build(model.Survey{ID: "s1", Questions: []model.Question{inverted}}, responsesFor("s1", "q1", "3")).QuestionAnalytics[0]
		if len(got.Distribution) != 0 {
			t.Fatalf("expected no buckets, got %v", got.Distribution)
		}
	})
}

func TestRatingScaleTooWideForBuckets(t *testing.T) {
	scales := map[string]model.RatingScale{
		"full int range": {Min: math.MinInt, Max: math.MaxInt, Step: 1},
		"too many steps": {Min: 0, Max: 1_000_000, Step: 1},
		"zero step":      {Min: 1, Max: 5, Step: 0},
	}
	for name, scale := range scales {
		scale := scale
		t.Run(name, func(t *testing.T) {
			q := model.Question{ID: "q1", Type: model.QuestionTypeRating, Scale: &scale}
			got := Build(model.Survey{ID: "s1", Questions: []model.Question{q}}, responsesFor("s1", "q1", "2", "4")).QuestionAnalytics[0]
			if name == "zero step" {
				if len(got.Distribution) != 5 {
					t.Fatalf("zero step should fall back to 1, got %d buckets", len(got.Distribution))
				}
			} else if len(got.Distribution) != 0 {
				t.Fatalf("expected no buckets, got %d", len(got.Distribution))
			}
			if got.AverageScore == nil || *got.AverageScore != 3 {
				t.Fatalf("average = %v, want 3", got.AverageScore)
			}
		})
	}
}

func TestStaleOptionExcluded(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeMultipleChoice, Options: []string{"Yes", "No"}}
	survey := model.Survey{ID: "s1", Questions: []model.Question{q}}

	got := Build(survey, responsesFor("s1", "q1", "Yes", "Maybe", "No", "Yes")).QuestionAnalytics[0]
	if got.Answered != 3 {
		t.Fatalf("expected 3 matched answers, got %d", got.Answered)
	}
	if got.Distribution[0].Percentage != 66.7 || got.Distribution[1].Percentage != 33.3 {
		t.Fatalf("percentages must use matched count: %+v", got.Distribution)
	}
}

func TestUnansweredOptionsKept(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeMultipleChoice, Options: []string{"A", "B", "C"}}
	got := Build(model.Survey{ID: "s1", Questions: []model.Question{q}}, nil).QuestionAnalytics[0]
	if len(got.Distribution) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got.Distribution))
	}
	for _, e := range got.Distribution {
		if e.Count != 0 || e.Percentage != 0 {
			t.Fatalf("expected zero entry, got %+v", e)
		}
	}
}

func TestTextQuestion(t *testing.T) {
	q := model.Question{ID: "q1", Type: model.QuestionTypeText}
	got := Build(model.Survey{ID: "s1", Questions: []model.Question{q}}, responsesFor("s1", "q1", "hello", " ", "world")).QuestionAnalytics[0]
	if got.Distribution == nil || len(got.Distribution) != 0 {
		t.Fatalf("text distribution must be an empty sequence, got %v", got.Distribution)
	}
	if got.Answered != 2 {
		t.Fatalf("expected 2 non-blank answers, got %d", got.Answered)
	}
}

func TestCompletionRate(t *testing.T) {
	required := model.Question{ID: "q1", Type: model.QuestionTypeText, Required: true}
	optional := model.Question{ID: "q2", Type: model.QuestionTypeText}
	survey := model.Survey{ID: "s1", Questions: []model.Question{required, optional}}

	tests := []struct {
		name    string
		answers []map[string]string
		want    float64
	}{
		{"no responses", nil, 0},
		{"all complete", []map[string]string{{"q1": "a"}, {"q1": "b", "q2": "c"}}, 100},
		{"blank counts as missing", []map[string]string{{"q1": "  "}, {"q1": "x"}}, 50},
		{"one of three", []map[string]string{{"q2": "a"}, {"q1": "b"}, {}}, 33.3},
		{"two of three", []map[string]string{{"q1": "a"}, {"q1": "b"}, {}}, 66.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := make([]model.Response, len(tt.answers))
			for i, a := range tt.answers {
				responses[i] = model.Response{ID: "r", SurveyID: "s1", Answers: a, SubmittedAt: day}
			}
			got := Build(survey, responses)
			if got.CompletionRate != tt.want {
				t.Errorf("completion rate = %v, want %v", got.CompletionRate, tt.want)
			}
			if got.CompletionRate < 0 || got.CompletionRate > 100 {
				t.Errorf("completion rate out of bounds: %v", got.CompletionRate)
			}
		})
	}
}

func TestAverageCompletionTime(t *testing.T) {
	survey := model.Survey{ID: "s1", Questions: []model.Question{
		{ID: "q1", Type: model.QuestionTypeText},
		{ID: "q2", Type: model.QuestionTypeText},
	}}
	responses := []model.Response{
		{ID: "r1", SurveyID: "s1", Answers: map[string]string{"q1": "a", "q2": "b"}, SubmittedAt: day},
		{ID: "r2", SurveyID: "s1", Answers: map[string]string{"q1": "a", "gone": "stale"}, SubmittedAt: day},
	}
	got := Build(survey, responses)
	if got.AverageCompletionTime != 30 {
		t.Fatalf("expected 30s, got %v", got.AverageCompletionTime)
	}
	if Build(survey, nil).AverageCompletionTime != 0 {
		t.Fatal("expected 0 without responses")
	}
}

func TestLastResponseAndTimeline(t *testing.T) {
	survey := model.Survey{ID: "s1"}
	later := day.Add(48 * time.Hour)
	responses := []model.Response{
		{ID: "r1", SurveyID: "s1", SubmittedAt: later},
		{ID: "r2", SurveyID: "s1", SubmittedAt: day},
		{ID: "r3", SurveyID: "s1", SubmittedAt: day.Add(time.Hour)},
	}
	got := Build(survey, responses)
	if got.LastResponseAt == nil || !got.LastResponseAt.Equal(later) {
		t.Fatalf("last response = %v, want %v", got.LastResponseAt, later)
	}
	want := []model.DailyCount{{Date: "2025-09-18", Count: 2}, {Date: "2025-09-20", Count: 1}}
	if !reflect.DeepEqual(got.Timeline, want) {
		t.Fatalf("timeline = %+v, want %+v", got.Timeline, want)
	}
	if Build(survey, nil).LastResponseAt != nil {
		t.Fatal("expected no last response without responses")
	}
}

func TestBuildDeterministic(t *testing.T) {
	survey := model.Survey{ID: "s1", Questions: []model.Question{
		{ID: "q1", Type: model.QuestionTypeRating, Scale: model.DefaultScale()},
	}}
	responses := responsesFor("s1", "q1", "1", "2", "3", "5", "4", "2")
	if !reflect.DeepEqual(Build(survey, responses), Build(survey, responses)) {
		t.Fatal("Build must be deterministic")
	}
}

func TestMissingRequired(t *testing.T) {
	survey := model.Survey{ID: "s1", Questions: []model.Question{
		{ID: "q1", Required: true},
		{ID: "q2"},
		{ID: "q3", Required: true},
	}}
	got := MissingRequired(survey, map[string]string{"q1": "x", "q3": "   "})
	if !reflect.DeepEqual(got, []string{"q3"}) {
		t.Fatalf("missing = %v", got)
	}
}
