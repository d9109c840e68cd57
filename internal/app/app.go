// Package app wires the configured persistence medium, the store, the
// services and the HTTP router together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "surveyportal/docs"
	"surveyportal/internal/cache"
	"surveyportal/internal/config"
	"surveyportal/internal/repository"
	"surveyportal/internal/service"
	"surveyportal/internal/store"
	"surveyportal/internal/transport/rest"
	"surveyportal/internal/transport/ws"
)

const connectTimeout = 10 * time.Second

// App holds the running components of the portal
type App struct {
	Store  *store.Store
	Hub    *ws.Hub
	Router http.Handler

	rdb     *redis.Client
	closers []func() error
}

// New opens the configured medium and builds every component on top of it
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	medium, err := a.openMedium(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Store = store.New(ctx, medium, store.WithPersistTimeout(cfg.Store.PersistTimeout))

	var analyticsCache cache.AnalyticsCache
	if cfg.AnalyticsCache.Enabled {
		rdb, err := a.redisClient(ctx, cfg.Store.RedisURI)
		if err != nil {
			a.Close()
			return nil, err
		}
		analyticsCache = cache.NewAnalyticsCache(rdb, cfg.AnalyticsCache.TTL)
		slog.Info("analytics cache enabled", slog.Duration("ttl", cfg.AnalyticsCache.TTL))
	}

	a.Hub = ws.NewHub()
	a.closers = append(a.closers, func() error {
		a.Hub.Close()
		return nil
	})

	surveySvc := service.NewSurveyService(a.Store)
	responseSvc := service.NewResponseService(a.Store)
	analyticsSvc := service.NewAnalyticsService(a.Store, analyticsCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	surveySvc.SetBroadcaster(a.Hub)
	responseSvc.SetBroadcaster(a.Hub)
	surveySvc.SetAnalyticsCache(analyticsCache)

	a.Router = rest.NewRouter(&rest.Container{
		SurveyService:    surveySvc,
		ResponseService:  responseSvc,
		AnalyticsService: analyticsSvc,
		WSHub:            a.Hub,
	})
	return a, nil
}

// OpenMedium opens only the state medium; the caller must Close the App
func OpenMedium(ctx context.Context, cfg *config.Config) (*App, repository.StateRepo, error) {
	a := &App{}
	medium, err := a.openMedium(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, medium, nil
}

// Close releases connections in reverse opening order
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openMedium(ctx context.Context, cfg *config.Config) (repository.StateRepo, error) {
	sc := cfg.Store
	slog.Info("opening state medium", slog.String("medium", sc.Medium))

	switch sc.Medium {
	case config.MediumMemory:
		return repository.NewMemoryStateRepo(), nil

	case config.MediumFile:
		return repository.NewFileStateRepo(sc.FilePath), nil

	case config.MediumRedis:
		rdb, err := a.redisClient(ctx, sc.RedisURI)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStateRepo(rdb, sc.Key), nil

	case config.MediumMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(sc.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		a.closers = append(a.closers, func() error {
			return client.Disconnect(context.Background())
		})
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, fmt.Errorf("ping mongodb: %w", err)
		}
		return repository.NewMongoStateRepo(client.Database(sc.MongoDatabase), sc.Key), nil

	case config.MediumSQLite:
		db, err := repository.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return repository.NewSQLiteStateRepo(db, sc.Key), nil

	case config.MediumBadger:
		db, err := repository.OpenBadger(sc.BadgerDir)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return repository.NewBadgerStateRepo(db, sc.Key), nil
	}
	return nil, fmt.Errorf("unknown store medium %q", sc.Medium)
}

// redisClient connects once and shares the client between the medium and the cache
func (a *App) redisClient(ctx context.Context, uri string) (*redis.Client, error) {
	if a.rdb != nil {
		return a.rdb, nil
	}

	var opts *redis.Options
	if strings.Contains(uri, "://") {
		parsed, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("parse redis uri: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: uri}
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	a.rdb = rdb
	a.closers = append(a.closers, rdb.Close)
	return rdb, nil
}
