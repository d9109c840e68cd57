// Package analytics turns a survey and its responses into aggregate statistics.
// Everything here is pure: no I/O, no clock, no randomness. Responses are
// folded in the order given so repeated calls produce identical output.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"surveyportal/internal/model"
)

// SecondsPerAnswer is the completion time credited for every non-blank
// answer to a current question. Responses carry no timing of their own.
const SecondsPerAnswer = 20

// Build computes the analytics of survey over responses.
// The caller passes the responses recorded for survey, in stored order.
func Build(survey model.Survey, responses []model.Response) model.SurveyAnalytics {
	out := model.SurveyAnalytics{
		SurveyID:          survey.ID,
		TotalResponses:    len(responses),
		QuestionAnalytics: make([]model.QuestionAnalytics, 0, len(survey.Questions)),
		Timeline:          []model.DailyCount{},
	}

	complete := 0
	answeredTotal := 0
	countsByDay := make(map[string]int)
	for _, r := range responses {
		if IsComplete(survey, r.Answers) {
			complete++
		}
		for _, q := range survey.Questions {
			if !isBlank(r.Answers[q.ID]) {
				answeredTotal++
			}
		}
		if out.LastResponseAt == nil || r.SubmittedAt.After(*out.LastResponseAt) {
			at := r.SubmittedAt
			out.LastResponseAt = &at
		}
		countsByDay[r.SubmittedAt.UTC().Format(time.DateOnly)]++
	}

	out.CompletionRate = percentage(complete, len(responses))
	if len(responses) > 0 {
		out.AverageCompletionTime = decimal.NewFromInt(int64(answeredTotal * SecondsPerAnswer)).
			DivRound(decimal.NewFromInt(int64(len(responses))), 1).
			InexactFloat64()
	}
	out.Timeline = buildTimeline(countsByDay)

	for _, q := range survey.Questions {
		out.QuestionAnalytics = append(out.QuestionAnalytics, buildQuestion(q, responses))
	}
	return out
}

// IsComplete reports whether answers hold a non-blank value for every
// required question of survey.
func IsComplete(survey model.Survey, answers map[string]string) bool {
	return len(MissingRequired(survey, answers)) == 0
}

// MissingRequired lists the required questions left blank, in survey order
func MissingRequired(survey model.Survey, answers map[string]string) []string {
	missing := []string{}
	for _, q := range survey.Questions {
		if q.Required && isBlank(answers[q.ID]) {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func buildQuestion(q model.Question, responses []model.Response) model.QuestionAnalytics {
	qa := model.QuestionAnalytics{
		Question:     q.Clone(),
		Distribution: []model.DistributionEntry{},
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		labels := q.Options
		counts := make([]int, len(labels))
		for _, r := range responses {
			value, ok := r.Answers[q.ID]
			if !ok {
				continue
			}
			if i := indexOf(labels, value); i >= 0 {
				counts[i]++
				qa.Answered++
			}
		}
		qa.Distribution = distribution(labels, counts, qa.Answered)

	case model.QuestionTypeRating:
		var values []int
		if q.Scale != nil {
			values = q.Scale.Values()
		}
		labels := make([]string, len(values))
		for i, v := range values {
			labels[i] = strconv.Itoa(v)
		}
		counts := make([]int, len(values))
		sum, scored := 0.0, 0
		for _, r := range responses {
			n, ok := parseScore(r.Answers[q.ID])
			if !ok {
				continue
			}
			sum += n
			scored++
			if n != math.Trunc(n) {
				continue
			}
			for i, v := range values {
				if float64(v) == n {
					counts[i]++
					qa.Answered++
					break
				}
			}
		}
		qa.Distribution = distribution(labels, counts, qa.Answered)
		if scored > 0 {
			avg := sum / float64(scored)
			qa.AverageScore = &avg
		}

	default:
		for _, r := range responses {
			if !isBlank(r.Answers[q.ID]) {
				qa.Answered++
			}
		}
	}
	return qa
}

func distribution(labels []string, counts []int, matched int) []model.DistributionEntry {
	entries := make([]model.DistributionEntry, len(labels))
	for i, label := range labels {
		entries[i] = model.DistributionEntry{
			Option:     label,
			Count:      counts[i],
			Percentage: percentage(counts[i], matched),
		}
	}
	return entries
}

// percentage returns 100*part/whole rounded half away from zero to one
// decimal, or 0 when whole is 0.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part) * 100).
		DivRound(decimal.NewFromInt(int64(whole)), 1).
		InexactFloat64()
}

func parseScore(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func buildTimeline(counts map[string]int) []model.DailyCount {
	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]model.DailyCount, 0, len(days))
	for _, d := range days {
		out = append(out, model.DailyCount{Date: d, Count: counts[d]})
	}
	return out
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
