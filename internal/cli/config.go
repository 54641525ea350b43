package cli

import (
	"errors"
	"fmt"
	"os"

	"casedesk/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the casedesk config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (defaults filled in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ai := app.cfg.AISettings()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"ai":        ai,
				"apiKeySet": ai.APIKey() != "",
				"tui":       app.cfg.TUISettings(),
				"log":       app.cfg.LogSettings(),
			}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(path); err == nil {
				return writeErr(cmd, fmt.Errorf("config already exists: %s", path))
			} else if !errors.Is(err, os.ErrNotExist) {
				return writeErr(cmd, err)
			}
			ai := app.cfg.AISettings()
			ui := app.cfg.TUISettings()
			logCfg := app.cfg.LogSettings()
			cfg := &store.GlobalConfig{AI: &ai, TUI: &ui, Log: &logCfg}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	})

	return cmd
}
