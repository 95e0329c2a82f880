package main

import (
	"log/slog"
	"strings"

	"mergebench/internal/benchmark"
	"mergebench/internal/config"
	"mergebench/internal/dataset"
	"mergebench/internal/db"
)

// pipeline is the set of collaborators one command needs to run trials.
type pipeline struct {
	Runner *benchmark.Runner
	Store  *dataset.FileStore
}

var (
	// pipelineFactory builds the trial pipeline for s. progress may be nil.
	pipelineFactory = func(s config.Settings, progress func(benchmark.Progress)) (*pipeline, error) {
		gen, err := dataset.NewGenerator(s.Range(), s.Seed)
		if err != nil {
			return nil, err
		}
		store := dataset.NewFileStore(s.DatasetPath)
		runner, err := benchmark.NewRunner(benchmark.Config{
			Generator: gen,
			Store:     store,
			OnDefect:  benchmark.DefectPolicy(s.OnDefect),
			Logger:    slog.Default(),
			Recorder:  metricsRecorder(),
			Progress:  progress,
		})
		if err != nil {
			return nil, err
		}
		return &pipeline{Runner: runner, Store: store}, nil
	}

	// historyStoreFactory opens the configured suite history. It returns
	// nil, nil when history is disabled.
	historyStoreFactory = func(s config.Settings) (db.Store, error) {
		if strings.EqualFold(s.History.Type, "none") {
			return nil, nil
		}
		return db.NewStore(db.StoreConfig{Type: s.History.Type, ConnectionString: s.History.DSN})
	}
)

func metricsRecorder() benchmark.Recorder {
	if metrics == nil {
		return nil
	}
	return metrics
}
