// Command seed overwrites the configured state medium with the demo dataset
package main

import (
	"context"
	"log/slog"
	"os"

	"surveyportal/internal/app"
	"surveyportal/internal/config"
	"surveyportal/internal/logging"
	"surveyportal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.Logging)

	ctx := context.Background()
	conn, medium, err := app.OpenMedium(ctx, cfg)
	if err != nil {
		slog.Error("failed to open state medium", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	st := store.New(ctx, medium, store.WithPersistTimeout(cfg.Store.PersistTimeout))
	st.ResetToDefaults(ctx)

	doc := st.Document()
	slog.Info("seeded survey state",
		slog.String("medium", cfg.Store.Medium),
		slog.Int("surveys", len(doc.Surveys)),
		slog.Int("responses", len(doc.Responses)),
	)
}
