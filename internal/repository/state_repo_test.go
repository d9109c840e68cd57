package repository

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveyportal/internal/store"
)

func stateRepos(t *testing.T) map[string]StateRepo {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sqlDB, err := OpenSQLite(filepath.Join(t.TempDir(), "state.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	bdb, err := OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger: %v", err)
	}
	t.Cleanup(func() { bdb.Close() })

	return map[string]StateRepo{
		"memory": NewMemoryStateRepo(),
		"file":   NewFileStateRepo(filepath.Join(t.TempDir(), "nested", "state.json")),
		"redis":  NewRedisStateRepo(rdb, ""),
		"sqlite": NewSQLiteStateRepo(sqlDB, ""),
		"badger": NewBadgerStateRepo(bdb, ""),
	}
}

func TestStateRepoLoadSave(t *testing.T) {
	ctx := context.Background()
	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			data, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load on empty repo: %v", err)
			}
			if data != nil {
				t.Fatalf("expected nil data before first save, got %q", data)
			}

			first := []byte(`{"surveys":[],"responses":[],"activeSurveyId":"","highlightArticleUrl":""}`)
			if err := repo.Save(ctx, first); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !bytes.Equal(got, first) {
				t.Fatalf("Load = %q, want %q", got, first)
			}

			second := []byte(`{"surveys":[],"responses":[],"activeSurveyId":"","highlightArticleUrl":"https://example.com"}`)
			if err := repo.Save(ctx, second); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ = repo.Load(ctx)
			if !bytes.Equal(got, second) {
				t.Fatalf("overwrite not visible: %q", got)
			}
		})
	}
}

func TestStoreOverStateRepos(t *testing.T) {
	ctx := context.Background()
	for name, repo := range stateRepos(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(ctx, repo)
			survey := s.CreateSurvey(ctx)
			s.SetHighlightArticleURL(ctx, "https://example.com/"+name)

			reopened := store.New(ctx, repo)
			if reopened.ActiveSurveyID() != survey.ID {
				t.Fatalf("active = %q, want %q", reopened.ActiveSurveyID(), survey.ID)
			}
			if reopened.HighlightArticleURL() != "https://example.com/"+name {
				t.Fatalf("highlight = %q", reopened.HighlightArticleURL())
			}
		})
	}
}

func TestFileStateRepoLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileStateRepo(filepath.Join(dir, "state.json"))
	for i := 0; i < 3; i++ {
		if err := repo.Save(context.Background(), []byte(`{}`)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "state.json" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files: %v", names)
	}
}

func TestMongoStateRepo(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("surveyportal_test")
	defer db.Drop(ctx)

	repo := NewMongoStateRepo(db, "test-state")
	if data, err := repo.Load(ctx); err != nil || data != nil {
		t.Fatalf("expected empty repo, got %q, %v", data, err)
	}

	s := store.New(ctx, repo)
	survey := s.CreateSurvey(ctx)

	reopened := store.New(ctx, repo)
	if reopened.ActiveSurveyID() != survey.ID {
		t.Fatalf("active = %q, want %q", reopened.ActiveSurveyID(), survey.ID)
	}
}
