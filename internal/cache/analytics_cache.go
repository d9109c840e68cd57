package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"surveyportal/internal/model"
)

// AnalyticsKey identifies one computed analytics result. Any new response
// or mutation changes the key, so stale entries are never read.
// Revision separates mutations that share a millisecond timestamp.
type AnalyticsKey struct {
	SurveyID      string
	ResponseCount int
	LastMutation  time.Time
	Revision      uint64
}

// AnalyticsCache stores computed survey analytics in Redis
type AnalyticsCache interface {
	Get(ctx context.Context, key AnalyticsKey) (*model.SurveyAnalytics, error)
	Set(ctx context.Context, key AnalyticsKey, analytics *model.SurveyAnalytics) error
	Invalidate(ctx context.Context, surveyID string) error
}

type analyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) AnalyticsCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func (c *analyticsCache) analyticsKey(key AnalyticsKey) string {
	return fmt.Sprintf("survey:%s:analytics:%d:%d:%d", key.SurveyID, key.ResponseCount, key.LastMutation.UnixNano(), key.Revision)
}

func (c *analyticsCache) surveyPattern(surveyID string) string {
	return fmt.Sprintf("survey:%s:analytics:*", surveyID)
}

func (c *analyticsCache) Get(ctx context.Context, key AnalyticsKey) (*model.SurveyAnalytics, error) {
	data, err := c.client.Get(ctx, c.analyticsKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var analytics model.SurveyAnalytics
	if err := json.Unmarshal([]byte(data), &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (c *analyticsCache) Set(ctx context.Context, key AnalyticsKey, analytics *model.SurveyAnalytics) error {
	data, err := json.Marshal(analytics)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.analyticsKey(key), data, c.ttl).Err()
}

// Invalidate drops every cached result of the survey
func (c *analyticsCache) Invalidate(ctx context.Context, surveyID string) error {
	iter := c.client.Scan(ctx, 0, c.surveyPattern(surveyID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
