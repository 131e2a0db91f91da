package cmd

import (
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/adaptlearn/internal/config"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/store"
)

var (
	cfgFile string
	verbose bool
	jsonOut bool

	appCfg config.Config
	vp     *viper.Viper
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adaptlearn",
	Short: "Adaptive study recommendations",
	Long: `adaptlearn recommends study materials and adapts explanatory text to a
learner's pace, inferred from recorded progress or given explicitly.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (ADAPTLEARN_*)
  3. Config file ($XDG_CONFIG_HOME/adaptlearn/config.yaml)
  4. Defaults`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/adaptlearn/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&jsonOut, "json", false, "print JSON instead of styled text")
	pf.String("db", "", "Path to SQLite database file (overrides ADAPTLEARN_DB env var)")
	pf.String("backend", "", "progress backend: sqlite or csv")
	pf.String("csv", "", "Path to CSV progress file for the csv backend")
	pf.String("catalog", "", "Path to a catalog YAML file replacing the built-in one")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(speedCmd)
	rootCmd.AddCommand(placementCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads configuration, binds flags over it and builds the logger.
func initConfig(cmd *cobra.Command) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}

	pf := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("store.db", pf.Lookup("db"))
	_ = v.BindPFlag("store.backend", pf.Lookup("backend"))
	_ = v.BindPFlag("store.csv", pf.Lookup("csv"))
	_ = v.BindPFlag("catalog.file", pf.Lookup("catalog"))
	if verbose {
		v.Set("log.mode", "dev")
	}

	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if f := v.ConfigFileUsed(); f != "" {
		l.Debug("using config file", "path", f)
	}

	appCfg, vp, logger = cfg, v, l
	return nil
}

// resolveDBPath returns the database path using --db / store.db (highest
// priority), then ADAPTLEARN_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := appCfg.Store.DB; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// render prints v as indented JSON with --json, otherwise the styled view.
func render(cmd *cobra.Command, v any, view func() string) error {
	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := lipgloss.Fprintln(cmd.OutOrStdout(), view())
	return err
}
