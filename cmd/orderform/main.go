package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/internal/config"
	"github.com/goliatone/go-orderform/internal/logging"
	"github.com/goliatone/go-orderform/pkg/remote"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath  string
	envFiles    []string
	backend     string
	match       string
	scopePolicy string
	discover    bool
	verbose     bool
	logFormat   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "orderform",
		Short: "Cascading purchase-order form (country, harbor, item)",
		Long: `orderform fills a purchase order against an inventory backend.

Choosing a country narrows the harbors, choosing a harbor narrows the items,
and choosing an item fills description, price, discount, and total.

Run "orderform fill" for the interactive form or "orderform serve" for the
web front-end.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, ".env files to read (missing files are skipped)")
	flags.StringVar(&a.backend, "backend", "", "Backend base URL (overrides config)")
	flags.StringVar(&a.match, "match", "", "Name match mode: exact or like")
	flags.StringVar(&a.scopePolicy, "scope-policy", "", "Unscoped child lookups: superset or empty")
	flags.BoolVar(&a.discover, "discover", false, "Resolve endpoints from the backend's OpenAPI document")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.logFormat, "log-format", "", "Log encoding: console or json")

	root.AddCommand(
		newServeCmd(a),
		newFillCmd(a),
		newOptionsCmd(a),
		newDiscoverCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{Path: a.configPath, EnvFiles: a.envFiles})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend.URL = a.backend
	}
	if flags.Changed("match") {
		cfg.Backend.Match = remote.MatchMode(a.match)
	}
	if flags.Changed("scope-policy") {
		cfg.Backend.ScopePolicy = remote.ScopePolicy(a.scopePolicy)
	}
	if flags.Changed("discover") {
		cfg.Backend.Discover = a.discover
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbose = a.verbose
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{Verbose: cfg.Log.Verbose, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// client builds the backend client, resolving endpoints first when discovery
// is enabled. A failed discovery keeps the configured endpoints.
func (a *app) client(ctx context.Context) *remote.Client {
	opts := append(a.cfg.ClientOptions(), remote.WithLogger(a.logger))
	client := remote.New(opts...)
	if a.cfg.Backend.Discover {
		if _, err := client.Discover(ctx); err != nil {
			a.logger.Warn("endpoint discovery failed; using configured endpoints", zap.Error(err))
		}
	}
	return client
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
