package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "surveyportal/docs"
	"surveyportal/internal/idgen"
	"surveyportal/internal/model"
	"surveyportal/internal/service"
	"surveyportal/internal/store"
	"surveyportal/internal/transport/ws"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	clock := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	st := store.New(context.Background(), nil,
		store.WithIDGenerator(idgen.NewSequence()),
		store.WithClock(func() time.Time { return clock }),
		store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	surveys := service.NewSurveyService(st)
	responses := service.NewResponseService(st)
	surveys.SetBroadcaster(hub)
	responses.SetBroadcaster(hub)

	srv := httptest.NewServer(NewRouter(&Container{
		SurveyService:    surveys,
		ResponseService:  responses,
		AnalyticsService: service.NewAnalyticsService(st, nil),
		WSHub:            hub,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRouterStatusCodes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"health", "GET", "/health", "", http.StatusOK},
		{"list surveys", "GET", "/v1/surveys", "", http.StatusOK},
		{"active survey", "GET", "/v1/surveys/active", "", http.StatusOK},
		{"get survey", "GET", "/v1/surveys/survey-voice-pulse", "", http.StatusOK},
		{"unknown survey", "GET", "/v1/surveys/nope", "", http.StatusNotFound},
		{"empty accent", "PATCH", "/v1/surveys/survey-voice-pulse", `{"accentColor":""}`, http.StatusBadRequest},
		{"bad body", "PATCH", "/v1/surveys/survey-voice-pulse", `{`, http.StatusBadRequest},
		{"set unknown active", "PUT", "/v1/surveys/active", `{"surveyId":"nope"}`, http.StatusNotFound},
		{"duplicate question", "POST", "/v1/surveys/survey-voice-pulse/questions", `{"question":{"id":"question-clarity","type":"text"}}`, http.StatusConflict},
		{"unknown question", "PATCH", "/v1/surveys/survey-voice-pulse/questions/nope", `{"prompt":"x"}`, http.StatusNotFound},
		{"bad direction", "POST", "/v1/surveys/survey-voice-pulse/questions/question-clarity/move", `{"direction":"left"}`, http.StatusBadRequest},
		{"analytics", "GET", "/v1/surveys/survey-voice-pulse/analytics", "", http.StatusOK},
		{"active analytics", "GET", "/v1/analytics/active", "", http.StatusOK},
		{"unknown analytics", "GET", "/v1/surveys/nope/analytics", "", http.StatusNotFound},
		{"settings", "GET", "/v1/settings", "", http.StatusOK},
		{"relative highlight", "PUT", "/v1/settings/highlight-article", `{"url":"/relative"}`, http.StatusBadRequest},
		{"export state", "GET", "/v1/state", "", http.StatusOK},
		{"bad state", "PUT", "/v1/state", `{`, http.StatusBadRequest},
		{"preflight", "OPTIONS", "/v1/surveys", "", http.StatusOK},
		{"wrong method", "PUT", "/v1/surveys", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestRouterActiveRouteIsNotASurveyID(t *testing.T) {
	srv := newTestServer(t)

	var survey model.Survey
	decode(t, do(t, srv, "GET", "/v1/surveys/active", ""), &survey)
	if survey.ID != "survey-voice-pulse" {
		t.Fatalf("active = %q", survey.ID)
	}
}

func TestRouterSurveyLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "POST", "/v1/surveys", `{"title":"Podcast feedback"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created model.Survey
	decode(t, resp, &created)
	if created.Title != "Podcast feedback" || created.AccentColor != model.DefaultAccentColor {
		t.Fatalf("unexpected survey %+v", created)
	}

	var list struct {
		Surveys        []model.Survey `json:"surveys"`
		ActiveSurveyID string         `json:"activeSurveyId"`
	}
	decode(t, do(t, srv, "GET", "/v1/surveys", ""), &list)
	if len(list.Surveys) != 3 || list.ActiveSurveyID != created.ID {
		t.Fatalf("unexpected list %d surveys, active %q", len(list.Surveys), list.ActiveSurveyID)
	}

	resp = do(t, srv, "POST", "/v1/surveys/"+created.ID+"/questions", `{"type":"rating"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add question status = %d", resp.StatusCode)
	}
	var q model.Question
	decode(t, resp, &q)
	if q.Type != model.QuestionTypeRating || q.Scale == nil || q.Options != nil {
		t.Fatalf("unexpected question %+v", q)
	}

	resp = do(t, srv, "PUT", "/v1/surveys/"+created.ID+"/questions/"+q.ID+"/type", `{"type":"multiple_choice"}`)
	decode(t, resp, &q)
	if q.Type != model.QuestionTypeMultipleChoice || q.Scale != nil || len(q.Options) != 2 {
		t.Fatalf("unexpected converted question %+v", q)
	}

	resp = do(t, srv, "DELETE", "/v1/surveys/"+created.ID+"/questions/"+q.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}

	resp = do(t, srv, "DELETE", "/v1/surveys/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	var settings service.Settings
	decode(t, resp, &settings)
	if settings.ActiveSurveyID == created.ID || settings.ActiveSurveyID == "" {
		t.Fatalf("active survey not reassigned: %q", settings.ActiveSurveyID)
	}
}

func TestRouterSubmitAndAnalytics(t *testing.T) {
	srv := newTestServer(t)
	path := "/v1/surveys/survey-voice-pulse/responses"

	resp := do(t, srv, "POST", path, `{"answers":{"question-feedback":"nice"}}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	var rejected struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	decode(t, resp, &rejected)
	if len(rejected.Missing) != 2 || rejected.Missing[0] != "question-first-impression" {
		t.Fatalf("missing = %v", rejected.Missing)
	}

	resp = do(t, srv, "POST", path, `{"answers":{"question-first-impression":"Natural","question-clarity":"5"}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var result service.SubmitResult
	decode(t, resp, &result)
	if result.HighlightArticleURL != store.DefaultHighlightArticleURL {
		t.Fatalf("highlight = %q", result.HighlightArticleURL)
	}

	var summary model.SurveyAnalytics
	decode(t, do(t, srv, "GET", "/v1/surveys/survey-voice-pulse/analytics", ""), &summary)
	if summary.TotalResponses != 4 || summary.CompletionRate != 75 {
		t.Fatalf("unexpected summary total=%d completion=%v", summary.TotalResponses, summary.CompletionRate)
	}

	resp = do(t, srv, "GET", path+"/export", "")
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "-responses.json") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	var exported []model.Response
	decode(t, resp, &exported)
	if len(exported) != 4 {
		t.Fatalf("exported %d responses", len(exported))
	}
}

func TestRouterSettingsAndReset(t *testing.T) {
	srv := newTestServer(t)

	var settings service.Settings
	decode(t, do(t, srv, "PUT", "/v1/settings/highlight-article", `{"url":" https://example.com/next "}`), &settings)
	if settings.HighlightArticleURL != "https://example.com/next" {
		t.Fatalf("highlight = %q", settings.HighlightArticleURL)
	}

	do(t, srv, "DELETE", "/v1/surveys/survey-voice-pulse", "")
	decode(t, do(t, srv, "POST", "/v1/reset", ""), &settings)
	if settings.ActiveSurveyID != "survey-voice-pulse" || settings.HighlightArticleURL != store.DefaultHighlightArticleURL {
		t.Fatalf("reset did not restore the seed: %+v", settings)
	}
}

func TestRouterSettingsListAccentPresets(t *testing.T) {
	srv := newTestServer(t)

	var settings service.Settings
	decode(t, do(t, srv, "GET", "/v1/settings", ""), &settings)
	if len(settings.AccentPresets) != len(model.AccentPresets) || settings.AccentPresets[0] != model.AccentPresets[0] {
		t.Fatalf("presets = %v", settings.AccentPresets)
	}
}

func TestRouterStateExportImport(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/v1/state", "")
	saved, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	do(t, srv, "DELETE", "/v1/surveys/survey-voice-pulse", "")
	if resp := do(t, srv, "GET", "/v1/surveys/survey-voice-pulse", ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d", resp.StatusCode)
	}

	resp = do(t, srv, "PUT", "/v1/state", string(saved))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d", resp.StatusCode)
	}
	var doc model.Document
	decode(t, resp, &doc)
	if doc.ActiveSurveyID != "survey-voice-pulse" || len(doc.Responses) != 4 {
		t.Fatalf("unexpected imported state active=%q responses=%d", doc.ActiveSurveyID, len(doc.Responses))
	}
	if resp := do(t, srv, "GET", "/v1/surveys/survey-voice-pulse", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("status after import = %d", resp.StatusCode)
	}
}

func TestRouterOpenAPI(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "GET", "/v1/openapi.json", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var doc struct {
		Swagger  string                     `json:"swagger"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	decode(t, resp, &doc)
	if doc.Swagger != "2.0" || doc.BasePath != "/v1" {
		t.Fatalf("unexpected document header %+v", doc)
	}
	if _, ok := doc.Paths["/surveys/{surveyId}/analytics"]; !ok {
		t.Fatal("analytics path missing from document")
	}
}

func TestRouterCORSHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, "OPTIONS", "/v1/surveys/survey-voice-pulse", "")
	if got := resp.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Fatalf("allowed methods = %q", got)
	}
}
