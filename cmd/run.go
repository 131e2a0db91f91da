package cmd

import (
	"fmt"

	"github.com/abhisek/adaptlearn/internal/app"
	"github.com/abhisek/adaptlearn/internal/config"
)

// openApp resolves the store location and builds the services.
func openApp() (*app.App, error) {
	opts := app.Options{
		Config: appCfg,
		Logger: logger,
	}
	if appCfg.Store.Backend != config.BackendCSV {
		dbPath, err := resolveDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		opts.DBPath = dbPath
	}
	a, err := app.New(opts)
	if err != nil {
		return nil, err
	}
	return a, nil
}
