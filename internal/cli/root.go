package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"casedesk/internal/bridge"
	"casedesk/internal/desktop"
	"casedesk/internal/format"
	"casedesk/internal/logging"
	"casedesk/internal/store"
	"casedesk/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	SeedPath   string
	Empty      bool
	LogFile    string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg      *store.GlobalConfig
	closeLog func() error
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "casedesk",
		Short:        "Investigation desktop for files, notes and cases",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive desktop
  casedesk

  # Start from your own desktop layout
  casedesk --seed desktop.yaml

  # Print the demo desktop as YAML
  casedesk tree --format yaml

  # Analyze files without the TUI
  casedesk analyze statement.pdf notes.txt --case "Project Alpha"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.SeedPath, "seed", envOr("CASEDESK_SEED", ""), "YAML file describing the initial desktop (default: demo desktop)")
	cmd.PersistentFlags().BoolVar(&app.Empty, "empty", false, "Start with an empty desktop")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("CASEDESK_LOG_FILE", ""), "Write JSON logs to this file (default: from config, else discarded)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("CASEDESK_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CASEDESK_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newAnalyzeCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// setup loads the config and points the logger at the configured file. Flags win over
// the config file.
func (app *App) setup() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app.cfg = cfg

	logCfg := cfg.LogSettings()
	if strings.TrimSpace(app.LogFile) != "" {
		logCfg.File = app.LogFile
	}
	if strings.TrimSpace(app.LogLevel) != "" {
		logCfg.Level = app.LogLevel
	}
	closeLog, err := logging.Open(logCfg.File, logCfg.Level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	app.closeLog = closeLog
	return nil
}

func (app *App) teardown() error {
	if app.closeLog == nil {
		return nil
	}
	err := app.closeLog()
	app.closeLog = nil
	return err
}

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	desk, err := app.newDesktop(time.Now())
	if err != nil {
		return err
	}
	svc, closeAI, err := app.newService(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeAI() }()

	ui := app.cfg.TUISettings()
	logging.For("cli").WithField("items", len(desk.DB().Items)).Info("starting desktop")
	return tui.Run(ctx, desk, tui.Options{
		Service:     svc,
		DoubleClick: time.Duration(ui.DoubleClickMillis) * time.Millisecond,
		Theme:       ui.Theme,
	})
}

// loadDB builds the starting desktop: empty, from --seed, or the demo seed.
func (app *App) loadDB(now time.Time) (*store.DB, error) {
	if app.Empty {
		return store.New(), nil
	}
	seed := store.DefaultSeed()
	if path := strings.TrimSpace(app.SeedPath); path != "" {
		sf, err := store.LoadSeedFile(path)
		if err != nil {
			return nil, fmt.Errorf("load seed %s: %w", path, err)
		}
		seed = sf
	}
	return seed.Build(now)
}

func (app *App) newDesktop(now time.Time) (*desktop.Desktop, error) {
	db, err := app.loadDB(now)
	if err != nil {
		return nil, err
	}
	return desktop.New(db), nil
}

// newService wires the Gemini analyst when an API key is available and the offline
// analyst otherwise. The returned func releases the client.
func (app *App) newService(ctx context.Context) (*bridge.Service, func() error, error) {
	ai := app.cfg.AISettings()
	analyst, closeFn, err := bridge.NewAnalyst(ctx, ai.APIKey(), bridge.GeminiModels{
		Analysis: ai.AnalysisModel,
		Scenario: ai.ScenarioModel,
		Chat:     ai.ChatModel,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init ai: %w", err)
	}
	if _, offline := analyst.(bridge.Offline); offline {
		logging.For("cli").WithField("env", ai.APIKeyEnv).Info("no api key; ai features run offline")
	}
	return bridge.NewService(analyst), closeFn, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
