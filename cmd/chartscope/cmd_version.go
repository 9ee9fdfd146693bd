package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chartscope/internal/config"
)

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chartscope %s\n", config.GetVersion())
		},
	}
}
