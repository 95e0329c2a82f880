package main

import (
	"mergebench/internal/session"
	"mergebench/internal/ui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive sort session",
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	p, err := pipelineFactory(settings, nil)
	if err != nil {
		return err
	}

	s, err := session.New(session.Config{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Runner:  p.Runner,
		Store:   p.Store,
		Title:   ui.Title,
		Success: ui.Success,
		Failure: ui.Failure,
	})
	if err != nil {
		return err
	}
	return s.Run(cmd.Context())
}
