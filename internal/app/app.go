// Package app wires configuration, storage and services into one value
// shared by the CLI and the HTTP server.
package app

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/adaptlearn/internal/catalog"
	"github.com/abhisek/adaptlearn/internal/config"
	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/store"
)

// Options holds the dependencies an App is built from.
type Options struct {
	Config config.Config
	Logger *logging.Logger

	// DBPath is the resolved SQLite path for the sqlite backend.
	DBPath string
}

// App holds the wired services.
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Catalog   *catalog.Catalog
	Content   *content.Generator
	Progress  *progress.Service
	Recommend *recommend.Service

	store *store.Store
}

// New opens the configured progress backend and builds the services.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	log := logging.OrNop(opts.Logger)

	cat, err := loadCatalog(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}

	policy, err := content.ParsePolicy(cfg.Content.SubjectPolicy)
	if err != nil {
		return nil, err
	}
	genOpts := content.Options{
		Policy:   policy,
		CacheTTL: cfg.Content.CacheTTL,
		Logger:   log,
	}
	if cfg.Content.Seed != 0 {
		genOpts.Rand = rand.New(rand.NewSource(cfg.Content.Seed))
	}
	gen, err := content.Default(genOpts)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		Catalog: cat,
		Content: gen,
	}

	var repo store.ProgressRepo
	switch cfg.Store.Backend {
	case config.BackendCSV:
		repo = store.NewCSVProgressRepo(cfg.Store.CSV, cfg.Store.CatalogSize)
		log.Debug("progress store opened", "backend", "csv", "path", cfg.Store.CSV)
	default:
		if opts.DBPath == "" {
			return nil, fmt.Errorf("database path is required for the sqlite backend")
		}
		st, err := store.Open(opts.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.store = st
		repo = st.ProgressRepo(cfg.Store.CatalogSize)
		log.Debug("progress store opened", "backend", "sqlite", "path", opts.DBPath)
	}

	a.Progress = progress.NewService(repo, log)
	a.Progress.ResolveSubjectsWith(cat.Lookup)
	a.Recommend = recommend.NewService(cat, gen, a.Progress, log)
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
