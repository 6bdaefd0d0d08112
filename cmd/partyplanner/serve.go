package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appLog "partyplanner/internal/log"
	"partyplanner/internal/web"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the party list and serve the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if listen != "" {
				conf.Listen = listen
			}

			appLog.Info("partyplanner starting", "version", version)
			appLog.Info("effective config",
				"listen", conf.Listen,
				"events_url", conf.EventsURL(),
				"request_timeout", conf.API.RequestTimeout,
				"refresh", conf.RefreshCron,
				"log_level", conf.LogLevel,
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					appLog.Info("signal received, shutting down", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			p := newPlanner(conf)

			// Initial load; the first page render shows whatever it produced.
			p.LoadParties(ctx)
			appLog.Info("initial party list loaded", "count", len(p.State().Parties))

			stopRefresh, err := p.StartRefresh(ctx, conf.RefreshCron)
			if err != nil {
				return err
			}
			defer stopRefresh()

			if err := web.NewServer(conf, p).Run(ctx); err != nil {
				return err
			}
			appLog.Info("partyplanner exiting")
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	return cmd
}
