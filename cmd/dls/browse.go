package main

import (
	"fmt"

	"github.com/michaelscutari/dls/internal/identity"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/pathutil"
	"github.com/michaelscutari/dls/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func browse(args []string, opts options.Options) error {
	if len(args) > 1 {
		return &usageError{err: fmt.Errorf("--browse takes at most one directory")}
	}
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	model := tui.NewModel(pathutil.Normalize(root), opts, identity.NewSystem())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
