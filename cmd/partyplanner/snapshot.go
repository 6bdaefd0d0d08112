package main

import (
	"github.com/spf13/cobra"

	"partyplanner/internal/capture"
	appLog "partyplanner/internal/log"
)

func newSnapshotCmd(flags *rootFlags) *cobra.Command {
	var (
		pageURL string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture a PNG of a running party planner page with headless Chromium",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if pageURL == "" {
				pageURL = "http://" + conf.Listen + "/"
			}

			err = capture.CapturePagePNG(cmd.Context(), capture.Options{
				URL:        pageURL,
				OutputPath: out,
				Width:      conf.Snapshot.Width,
				Height:     conf.Snapshot.Height,
			})
			if err != nil {
				return err
			}
			appLog.Info("snapshot written", "url", pageURL, "path", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Page to capture (defaults to the configured listen address)")
	cmd.Flags().StringVar(&out, "out", "preview.png", "Output PNG path")
	return cmd
}
