package system

import (
	"fmt"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/scheduler"
)

// RemindCmd records notifications for reminders that are due now.
type RemindCmd struct{}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	created, err := scheduler.New(ctx.Store, ctx.UserID()).Sweep(ctx.Now())
	if err != nil {
		return fmt.Errorf("reminder sweep failed: %w", err)
	}
	if len(created) == 0 {
		fmt.Println("No reminders due.")
		return nil
	}
	for _, n := range created {
		fmt.Printf("🔔 %s\n    %s\n", n.Title, n.Message)
	}
	return nil
}
