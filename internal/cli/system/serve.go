package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/logger"
	"github.com/julianstephens/taskflow/internal/pidfile"
	"github.com/julianstephens/taskflow/internal/scheduler"
	"github.com/julianstephens/taskflow/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on (default from config)."`
}

func (c *ServeCmd) addr(ctx *cli.Context) string {
	if c.Addr != "" {
		return c.Addr
	}
	if ctx.Config != nil && ctx.Config.Server.Addr != "" {
		return ctx.Config.Server.Addr
	}
	return constants.DefaultServerAddr
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	path := pidfile.Path(ctx.ConfigDir)
	if info, err := pidfile.Running(path); err == nil {
		return fmt.Errorf("server already running at %s (pid %d)", info.Addr, info.Pid)
	} else if errors.Is(err, pidfile.ErrStale) {
		logger.Warn("Removing stale pidfile", "path", path, "error", err)
	}

	addr := c.addr(ctx)
	if err := pidfile.Write(path, pidfile.Info{Pid: os.Getpid(), Addr: addr}); err != nil {
		return err
	}
	defer func() {
		if err := pidfile.Remove(path); err != nil {
			logger.Warn("Failed to remove pidfile", "path", path, "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remindersDone := make(chan struct{})
	go func() {
		defer close(remindersDone)
		scheduler.New(ctx.Store, ctx.UserID()).Run(sigCtx, scheduler.DefaultInterval, ctx.Now)
	}()

	fmt.Printf("Serving taskflow API on http://%s (Ctrl+C to stop)\n", addr)
	srv := server.New(ctx.Store, server.WithClock(ctx.Now), server.WithUser(ctx.UserID()))
	err := srv.Run(sigCtx, addr)
	stop()
	<-remindersDone
	return err
}
