package tui

import (
	"context"
	"time"

	"casedesk/internal/bridge"
	"casedesk/internal/desktop"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Service     *bridge.Service
	DoubleClick time.Duration
	Theme       string
	Now         func() time.Time
}

// Run starts the interactive desktop and blocks until the user quits.
func Run(ctx context.Context, desk *desktop.Desktop, opts Options) error {
	applyThemePreference(opts.Theme)
	applyColorProfilePreference()

	m := newAppModel(ctx, desk, opts)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	return err
}
