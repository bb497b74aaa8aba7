package main

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dshills/listkit/internal/app"
	"github.com/dshills/listkit/internal/binding/bubble"
)

func newTeaCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tea [items...]",
		Short: "Show the list inline with Bubble Tea",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTea(cmd, args, f)
		},
	}
}

func runTea(cmd *cobra.Command, args []string, f *flags) error {
	opts, err := f.options(cmd, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	// Rescans are debounced off the program loop, so they are sent back
	// through the program. Anything posted before it exists waits for it.
	var (
		mu      sync.Mutex
		program *tea.Program
		queued  []func()
	)
	opts.Poster = func(fn func()) {
		mu.Lock()
		p := program
		if p == nil {
			queued = append(queued, fn)
		}
		mu.Unlock()
		if p != nil {
			bubble.Poster(p)(fn)
		}
	}

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Shutdown()

	model := bubble.New(application.Host(),
		bubble.WithStyles(bubble.StylesFromConfig(application.Config().Theme())),
		bubble.WithDone(application.Ended),
	)
	if err := model.Attach(application.List()); err != nil {
		return err
	}
	defer model.Detach()

	progOpts := []tea.ProgramOption{
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithMouseCellMotion(),
	}
	if opts.FeedPath == "-" {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(model, progOpts...)
	mu.Lock()
	program = p
	early := queued
	queued = nil
	mu.Unlock()
	// Send blocks until Run reads the message.
	go func() {
		for _, fn := range early {
			bubble.Poster(p)(fn)
		}
	}()

	if _, err := p.Run(); err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		application.Cancel()
	}
	if model.Cancelled() {
		application.Cancel()
	}
	return writeResult(cmd.OutOrStdout(), application.Result(), f.format)
}
