// Package tui is an interactive directory browser built on the same
// snapshot and render engine as the plain listing.
package tui

import (
	"path/filepath"
	"strings"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/identity"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/render"
	"github.com/michaelscutari/dls/internal/snapshot"
	"github.com/michaelscutari/dls/internal/walk"

	tea "github.com/charmbracelet/bubbletea"
)

// row is one rendered entry of the current directory.
type row struct {
	name string
	path string
	kind entry.Kind
	size int64
	line string
}

// Model holds the TUI state.
type Model struct {
	opts         options.Options
	ids          identity.Resolver
	style        render.Styler
	root         string
	currentPath  string
	allRows      []row
	rows         []row
	total        string
	cursor       int
	totalSize    int64
	errCount     int
	width        int
	height       int
	filter       string
	filterActive bool
	err          error
}

// NewModel creates a browser rooted at root. Rows are rendered in long
// mode with opts' sort, filter and time settings.
func NewModel(root string, opts options.Options, ids identity.Resolver) *Model {
	if ids == nil {
		ids = identity.NewSystem()
	}
	opts = opts.WithLongMode(true).WithGoIntoDirs(true).WithRecurse(false)
	return &Model{
		opts:        opts,
		ids:         ids,
		style:       render.NewColor(nil),
		root:        filepath.Clean(root),
		currentPath: filepath.Clean(root),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries(m.currentPath)
}

type entriesLoadedMsg struct {
	path      string
	rows      []row
	total     string
	totalSize int64
	errCount  int
	err       error
}

func (m *Model) loadEntries(path string) tea.Cmd {
	opts := m.opts
	ids := m.ids
	style := m.style
	return func() tea.Msg {
		return load(path, opts, ids, style)
	}
}

func load(path string, opts options.Options, ids identity.Resolver, style render.Styler) entriesLoadedMsg {
	b := snapshot.NewBuilder(opts, ids, nil)
	listing, err := walk.List(path, 0, opts, b)
	if err != nil {
		return entriesLoadedMsg{path: path, err: err}
	}

	r := render.New(opts, style)
	lines := r.Rows(&listing.Group)
	rows := make([]row, len(lines))
	for i, line := range lines {
		rec := &listing.Group.Records[i]
		rows[i] = row{
			name: listing.Children[i].Name,
			path: rec.Path,
			kind: rec.Kind,
			size: rec.RawSize,
			line: line,
		}
	}

	total := ""
	if text, ok, err := render.New(opts.WithInteractive(true), nil).Total(&listing.Group); err == nil && ok {
		total = text
	}
	_, size := listing.Group.Totals()

	return entriesLoadedMsg{
		path:      path,
		rows:      rows,
		total:     total,
		totalSize: size,
		errCount:  len(listing.Errors),
	}
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	return "↑/↓ move | Enter: open | Backspace: up | s/t/n/f: sort | r: reverse | /: filter | q: quit"
}

func (m *Model) setRows(rows []row) {
	m.allRows = rows
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.rows = m.allRows
	} else {
		filtered := make([]row, 0, len(m.allRows))
		needle := strings.ToLower(m.filter)
		for _, r := range m.allRows {
			if strings.Contains(strings.ToLower(r.name), needle) {
				filtered = append(filtered, r)
			}
		}
		m.rows = filtered
	}
	m.cursor = 0
}

// resort reloads the current directory with a new order.
func (m *Model) resort(mode options.SortMode, reverse bool) tea.Cmd {
	m.opts = m.opts.WithSort(mode).WithReverse(reverse)
	return m.loadEntries(m.currentPath)
}
