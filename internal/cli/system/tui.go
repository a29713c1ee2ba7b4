package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/scheduler"
	"github.com/julianstephens/taskflow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()
	if _, err := scheduler.New(ctx.Store, ctx.UserID()).Sweep(ctx.Now()); err != nil {
		logger.Warn("Reminder sweep failed", "error", err)
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Tracker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
