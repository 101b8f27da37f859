package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "briscola",
		Short: "Five-player Briscola server",
		Long: `Briscola runs a five-player Briscola chiamata table over WebSockets,
with optional result history in Redis and announcements on Discord.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDeckCmd())

	return cmd
}
