package tui

import (
	"path/filepath"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/options"

	tea "github.com/charmbracelet/bubbletea"
)

const pageSize = 10

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.currentPath = msg.path
		m.total = msg.total
		m.totalSize = msg.totalSize
		m.errCount = msg.errCount
		m.filter = ""
		m.filterActive = false
		m.setRows(msg.rows)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterActive {
		switch msg.String() {
		case "enter":
			m.filterActive = false
			return m, nil

		case "esc":
			m.filterActive = false
			m.filter = ""
			m.applyFilter()
			return m, nil

		case "backspace":
			if len(m.filter) > 0 {
				runes := []rune(m.filter)
				m.filter = string(runes[:len(runes)-1])
				m.applyFilter()
			}
			return m, nil

		case "ctrl+c":
			return m, tea.Quit
		}

		if msg.Type == tea.KeyRunes {
			m.filter += msg.String()
			m.applyFilter()
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if m.cursor < len(m.rows) {
			selected := m.rows[m.cursor]
			if selected.kind == entry.KindDir && selected.name != "." && selected.name != ".." {
				return m, m.loadEntries(filepath.Clean(selected.path))
			}
		}
		return m, nil

	case "backspace", "h", "left":
		if m.currentPath != m.root {
			return m, m.loadEntries(filepath.Dir(m.currentPath))
		}
		return m, nil

	case "s":
		return m, m.resort(options.SortSize, m.opts.Reverse)

	case "t":
		return m, m.resort(options.SortTime, m.opts.Reverse)

	case "n":
		return m, m.resort(options.SortName, m.opts.Reverse)

	case "f":
		return m, m.resort(options.SortUnsorted, m.opts.Reverse)

	case "r":
		return m, m.resort(m.opts.Sort, !m.opts.Reverse)

	case "/":
		m.filterActive = true
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, nil

	case "pgup":
		m.cursor = max(m.cursor-pageSize, 0)
		return m, nil

	case "pgdown":
		m.cursor = max(min(m.cursor+pageSize, len(m.rows)-1), 0)
		return m, nil
	}

	return m, nil
}
