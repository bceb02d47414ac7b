// Package main implements riderparse, a CLI that turns rider text into structured JSON or YAML.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "riderparse",
		Short: "Extract structured requirements from event rider text",
		Long: `riderparse reads the text of hospitality and technical riders and prints
artists, rooms, contacts, allergies, special requirements and itemized requests.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newWatchCmd())
	return root
}
