package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/listkit/internal/app"
	"github.com/dshills/listkit/internal/renderer/backend"
)

func newChooseCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "choose [items...]",
		Short: "Show the list on the full terminal (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChoose(cmd, args, f)
		},
	}
}

func runChoose(cmd *cobra.Command, args []string, f *flags) error {
	opts, err := f.options(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal(backend.WithMouse(true))
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}
	if err := application.Run(cmd.Context()); err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), application.Result(), f.format)
}
