package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lexroute/lexroute/pkg/classifier"
	"github.com/lexroute/lexroute/pkg/engine"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/policy"
	"github.com/lexroute/lexroute/pkg/routes"
	"github.com/lexroute/lexroute/pkg/store"
	storememory "github.com/lexroute/lexroute/pkg/store/memory"
)

var (
	snapOnce sync.Once
	seedSnap *classifier.Snapshot
)

func seedSnapshot(t *testing.T) *classifier.Snapshot {
	t.Helper()

	snapOnce.Do(func() {
		cfg := classifier.DefaultTrainerConfig()
		cfg.Seed = 42
		trainer := classifier.NewTrainer(classifier.SeedExamples(), cfg, nil)
		snap, err := trainer.Train(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("seed training failed: %v", err)
		}
		seedSnap = snap
	})
	return seedSnap
}

func testLogger() logger.Logger {
	return logger.New(&logger.Config{Level: logger.ErrorLevel, Format: "text", Output: "stderr"})
}

func newTestEngine(t *testing.T) (*engine.Engine, store.Store) {
	t.Helper()

	trainerCfg := classifier.DefaultTrainerConfig()
	trainerCfg.Seed = 42

	polCfg := policy.DefaultConfig()
	polCfg.Seed = 42

	cfg := engine.DefaultConfig()
	cfg.RetrainMinExamples = 1000

	st := storememory.NewMemoryStore()
	eng := engine.New(cfg, st,
		classifier.New(seedSnapshot(t), classifier.DefaultConfig(), nil),
		classifier.NewTrainer(classifier.SeedExamples(), trainerCfg, nil),
		routes.NewSelector(nil, nil),
		policy.New(polCfg, nil),
		engine.WithLogger(testLogger()),
	)
	return eng, st
}

func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
