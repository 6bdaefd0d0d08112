package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the remote party list and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(flags)
			if err != nil {
				return err
			}

			p := newPlanner(conf)
			p.LoadParties(cmd.Context())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, party := range p.State().Parties {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", party.ID, party.DisplayDate(), party.Name)
			}
			return tw.Flush()
		},
	}
}
