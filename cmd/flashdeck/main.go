// Package main is flashdeck, a command-line companion to the server: it
// previews the decks the selection policies deal, imports corpus files into
// Postgres and prints the rest breathing phase.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flashdeck",
		Short:         "flashdeck - deck preview and corpus tooling for flashloop",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(dealCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(phaseCmd())
	return rootCmd
}
