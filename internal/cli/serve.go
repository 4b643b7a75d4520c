package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/evcraddock/estate-finder/internal/search"
	"github.com/evcraddock/estate-finder/internal/session"
	"github.com/evcraddock/estate-finder/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start an HTTP server with the JSON search, favorites and drag API. Idle sessions and their favorites expire.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = cfg.Port
			}
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", defaultPort, "port to listen on (default from config)")

	return cmd
}

func runServe(port int) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	ttl, err := cfg.sessionTTL()
	if err != nil {
		return err
	}
	sessions := session.NewManager(catalog, ttl)

	sweeper := cron.New()
	if _, err := sessions.Schedule(sweeper, cfg.SweepSchedule); err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(catalog, sessions, search.ParsePostcodeMode(cfg.PostcodeMode))
	return srv.ListenAndServe(ctx, port)
}
