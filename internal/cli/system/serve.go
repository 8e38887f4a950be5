package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/daytrack/internal/api"
	"github.com/julianstephens/daytrack/internal/cli"
	"github.com/julianstephens/daytrack/internal/constants"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${api_addr}" env:"DAYTRACK_API_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.LoadTracker(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultAPIAddr
	}
	ctx.Printf("Serving the %s API on http://%s/api (Ctrl+C to stop)\n", constants.AppName, addr)
	return api.Serve(sigCtx, addr, api.NewHandler(ctx.Tracker))
}
