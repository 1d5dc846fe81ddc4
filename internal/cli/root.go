package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/cli/formatter"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/config"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Estimates service.EstimateService
	Rollups   service.RollupService
	Buffers   service.BufferService
	Hierarchy service.HierarchyService

	// Close releases whatever the wiring opened. May be nil.
	Close func() error
}

// Wiring builds an App once configuration is known.
type Wiring func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error)

// Option customises the root command.
type Option func(*rootState)

// WithLogger replaces the logger normally built from --verbose.
func WithLogger(logger *zap.Logger) Option {
	return func(s *rootState) { s.logger = logger }
}

// skipWiring marks commands that run without a database or services.
const skipWiring = "skip-wiring"

type rootState struct {
	wire       Wiring
	v          *viper.Viper
	configPath string
	jsonOut    bool
	verbose    bool
	logger     *zap.Logger
	app        *App
}

// NewRootCmd creates the top-level "tracker" command. Services are wired
// lazily in PersistentPreRunE so --db and --config take effect.
func NewRootCmd(wire Wiring, opts ...Option) *cobra.Command {
	s := &rootState{wire: wire, v: viper.New()}
	for _, opt := range opts {
		opt(s)
	}

	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Hierarchical effort estimation and rollup",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.String("db", "", "SQLite database path (overrides config)")
	pf.StringVar(&s.configPath, "config", "", "config file (default ./tracker.yaml)")
	pf.BoolVar(&s.jsonOut, "json", false, "output JSON")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newEstimateCmd(s),
		newHistoryCmd(s),
		newRollupCmd(s),
		newRollupAllCmd(s),
		newBufferCmd(s),
		newHierarchyCmd(s),
		newServeCmd(s),
		newConfigCmd(s),
	)
	return root
}

func (s *rootState) setup(cmd *cobra.Command) error {
	formatter.SetColor(!s.jsonOut && isTerminal(os.Stdout))
	if cmd.Annotations[skipWiring] == "true" {
		return nil
	}

	cfg, err := config.Load(s.v, s.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if s.logger == nil {
		if s.logger, err = NewLogger(s.verbose); err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
	}
	app, err := s.wire(cmd.Context(), cfg, s.logger)
	if err != nil {
		return err
	}
	if app.Config == nil {
		app.Config = cfg
	}
	if app.Logger == nil {
		app.Logger = s.logger
	}
	s.app = app
	return nil
}

func (s *rootState) teardown() error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if s.app == nil || s.app.Close == nil {
		return nil
	}
	return s.app.Close()
}

// print writes v as indented JSON under --json, otherwise the rendered text.
func (s *rootState) print(cmd *cobra.Command, v any, render func() string) error {
	out := cmd.OutOrStdout()
	if s.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(out, render())
	return err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewLogger builds the production zap logger writing to stderr, at debug
// level when verbose.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
