// Package render aligns display records into columns and writes them.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/michaelscutari/dls/internal/humanize"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/snapshot"
)

// Group is the set of sibling records rendered together.
type Group struct {
	// Path is the directory the records were read from; empty for the
	// group of file operands.
	Path    string
	Records []snapshot.Record
	// ShowTotal permits the "total" line. The operand group never has one.
	ShowTotal bool
}

// Totals sums the raw block and size counts of the group.
func (g *Group) Totals() (blocks, size int64) {
	for i := range g.Records {
		blocks += g.Records[i].RawBlocks
		size += g.Records[i].RawSize
	}
	return blocks, size
}

// Widths holds the measured width of every variable column.
type Widths struct {
	Inode  int
	Blocks int
	Links  int
	Owner  int
	Group  int
	Size   int
	Major  int
	Minor  int
	Time   int
}

// Measure computes column widths over records. The size column is shared
// between byte sizes and "major, minor" pairs.
func Measure(records []snapshot.Record) Widths {
	var w Widths
	devices := false
	for i := range records {
		r := &records[i]
		w.Inode = max(w.Inode, len(r.Inode))
		w.Blocks = max(w.Blocks, len(r.Blocks))
		w.Links = max(w.Links, len(r.Links))
		w.Owner = max(w.Owner, len(r.Owner))
		w.Group = max(w.Group, len(r.Group))
		w.Time = max(w.Time, len(r.Time))
		if r.Size.IsDevice() {
			devices = true
			w.Major = max(w.Major, len(r.Size.MajorText()))
			w.Minor = max(w.Minor, len(r.Size.MinorText()))
		} else {
			w.Size = max(w.Size, len(r.Size.Text()))
		}
	}
	if devices {
		w.Size = max(w.Size, w.Major+2+w.Minor)
	}
	return w
}

// Renderer formats groups according to the listing options.
type Renderer struct {
	opts  options.Options
	style Styler
}

// New creates a renderer. A nil style renders plain text.
func New(opts options.Options, style Styler) *Renderer {
	if style == nil {
		style = Plain{}
	}
	return &Renderer{opts: opts, style: style}
}

// Total returns the "total N" line for g, if one should be printed. N is
// the raw sum of 512-byte block counts, or the humanized byte total under
// -h.
func (r *Renderer) Total(g *Group) (string, bool, error) {
	if !g.ShowTotal || !r.opts.Interactive || !(r.opts.LongMode || r.opts.PrintBlocks) {
		return "", false, nil
	}
	blocks, size := g.Totals()
	if r.opts.Humanize {
		text, err := humanize.Bytes(5, size)
		if err != nil {
			return "", false, fmt.Errorf("humanize(%d): %w", size, err)
		}
		return "total " + text, true, nil
	}
	return "total " + strconv.FormatInt(blocks, 10), true, nil
}

// Rows formats every record of g against widths measured over the whole
// group. It performs no I/O.
func (r *Renderer) Rows(g *Group) []string {
	w := Measure(g.Records)
	rows := make([]string, 0, len(g.Records))
	var b strings.Builder
	for i := range g.Records {
		b.Reset()
		r.row(&b, &g.Records[i], w)
		rows = append(rows, b.String())
	}
	return rows
}

// Lines returns the optional total line followed by all rows.
func (r *Renderer) Lines(g *Group) ([]string, error) {
	total, ok, err := r.Total(g)
	if err != nil {
		return nil, err
	}
	rows := r.Rows(g)
	if !ok {
		return rows, nil
	}
	return append([]string{total}, rows...), nil
}

// Render writes g to out, one newline-terminated line per record.
func (r *Renderer) Render(out io.Writer, g *Group) error {
	lines, err := r.Lines(g)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(out, line+"\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

func (r *Renderer) row(b *strings.Builder, rec *snapshot.Record, w Widths) {
	if r.opts.PrintInode {
		fmt.Fprintf(b, "%*s ", w.Inode, rec.Inode)
	}
	if r.opts.PrintBlocks {
		fmt.Fprintf(b, "%*s ", w.Blocks, rec.Blocks)
	}

	if r.opts.LongMode {
		b.WriteString(rec.Mode)
		b.WriteString("  ")
		fmt.Fprintf(b, "%*s ", w.Links, rec.Links)

		b.WriteString(r.style.Owner(rec.Owner))
		b.WriteString(strings.Repeat(" ", w.Owner-len(rec.Owner)+2))
		b.WriteString(r.style.Group(rec.Group))
		b.WriteString(strings.Repeat(" ", w.Group-len(rec.Group)+2))

		if rec.Size.IsDevice() {
			dev := fmt.Sprintf("%*s, %*s", w.Major, rec.Size.MajorText(), w.Minor, rec.Size.MinorText())
			fmt.Fprintf(b, "%*s ", w.Size, dev)
		} else {
			fmt.Fprintf(b, "%*s ", w.Size, rec.Size.Text())
		}

		fmt.Fprintf(b, "%*s ", w.Time, rec.Time)
	}

	b.WriteString(r.style.Name(rec))

	if r.opts.TypeIndicator && rec.TypeChar != 0 {
		b.WriteByte(rec.TypeChar)
	}

	if r.opts.LongMode && rec.IsSymlink() {
		b.WriteString(" -> ")
		b.WriteString(rec.Target)
	}
}
