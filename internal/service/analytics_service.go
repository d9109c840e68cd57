package service

import (
	"context"
	"log/slog"

	"surveyportal/internal/analytics"
	"surveyportal/internal/cache"
	"surveyportal/internal/model"
	"surveyportal/internal/store"
)

// AnalyticsService serves survey statistics, cached when a cache is configured
type AnalyticsService struct {
	store *store.Store
	cache cache.AnalyticsCache
}

// NewAnalyticsService creates a new analytics service. analyticsCache may be nil.
func NewAnalyticsService(st *store.Store, analyticsCache cache.AnalyticsCache) *AnalyticsService {
	return &AnalyticsService{
		store: st,
		cache: analyticsCache,
	}
}

// Summary returns the statistics of one survey
func (s *AnalyticsService) Summary(ctx context.Context, surveyID string) (*model.SurveyAnalytics, error) {
	snap, err := s.store.Snapshot(surveyID)
	if err != nil {
		return nil, err
	}
	key := cache.AnalyticsKey{
		SurveyID:      surveyID,
		ResponseCount: len(snap.Responses),
		LastMutation:  snap.LastMutation,
		Revision:      snap.Revision,
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("analytics cache read failed", slog.String("surveyId", surveyID), slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	result := analytics.Build(snap.Survey, snap.Responses)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &result); err != nil {
			slog.Warn("analytics cache write failed", slog.String("surveyId", surveyID), slog.String("error", err.Error()))
		}
	}
	return &result, nil
}

// ActiveSummary returns the statistics of the active survey
func (s *AnalyticsService) ActiveSummary(ctx context.Context) (*model.SurveyAnalytics, error) {
	return s.Summary(ctx, s.store.ActiveSurveyID())
}
