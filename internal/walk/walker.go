package walk

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/identity"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/order"
	"github.com/michaelscutari/dls/internal/render"
	"github.com/michaelscutari/dls/internal/snapshot"

	log "github.com/sirupsen/logrus"
)

// Action is the outcome of visiting one node.
type Action int

const (
	// ActionDescend lists the node's children as a group of their own.
	ActionDescend Action = iota
	// ActionSkip shows the node as an entry but never descends into it.
	ActionSkip
	// ActionReport prints a diagnostic for the node and moves on.
	ActionReport
)

func (a Action) String() string {
	switch a {
	case ActionDescend:
		return "descend"
	case ActionSkip:
		return "skip-subtree"
	default:
		return "report-and-continue"
	}
}

// Config wires a Walker to its collaborators. Zero fields get defaults.
type Config struct {
	// Out may be buffered; a Flush method is called before each
	// diagnostic.
	Out      io.Writer
	Diag     io.Writer
	Prog     string
	Builder  *snapshot.Builder
	Renderer *render.Renderer
}

// Walker drives one listing run. It is not safe for concurrent use.
type Walker struct {
	opts     options.Options
	out      io.Writer
	diag     io.Writer
	prog     string
	builder  *snapshot.Builder
	renderer *render.Renderer

	headers bool
	first   bool
	stats   Stats
}

// New creates a walker for opts.
func New(opts options.Options, cfg Config) *Walker {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}
	if cfg.Prog == "" {
		cfg.Prog = "dls"
	}
	if cfg.Builder == nil {
		cfg.Builder = snapshot.NewBuilder(opts, identity.NewSystem(), nil)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = render.New(opts, nil)
	}
	return &Walker{
		opts:     opts,
		out:      cfg.Out,
		diag:     cfg.Diag,
		prog:     cfg.Prog,
		builder:  cfg.Builder,
		renderer: cfg.Renderer,
		first:    true,
	}
}

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Run lists roots, or "." when none are given. Per-node failures are
// reported on the diagnostic stream and do not stop the run; the returned
// error is fatal.
func (w *Walker) Run(roots []string) error {
	if err := w.opts.Validate(); err != nil {
		return err
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	w.headers = len(roots) > 1 || w.opts.Recurse

	var files, dirs []entry.Entry
	for _, root := range roots {
		meta, err := entry.Lstat(root)
		e := entry.New(root, root, "", 0, meta)
		switch w.visit(&e, err) {
		case ActionDescend:
			dirs = append(dirs, e)
		case ActionSkip:
			files = append(files, e)
		}
	}

	order.Sort(files, w.opts)
	order.Sort(dirs, w.opts)

	if len(files) > 0 {
		records, err := w.builder.BuildAll(files)
		if err != nil {
			return err
		}
		if err := w.separate(); err != nil {
			return err
		}
		if err := w.emit(&render.Group{Records: records}); err != nil {
			return err
		}
	}

	// Depth-first in display order: push siblings in reverse.
	stack := make([]entry.Entry, 0, len(dirs))
	for i := len(dirs) - 1; i >= 0; i-- {
		stack = append(stack, dirs[i])
	}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		subdirs, err := w.listDir(&dir)
		if err != nil {
			return err
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return nil
}

// visit decides what happens to e. err is the failure, if any, that
// occurred while reaching e.
func (w *Walker) visit(e *entry.Entry, err error) Action {
	action := w.decide(e, err)
	fields := log.Fields{"path": e.Path, "depth": e.Depth, "action": action}
	if action == ActionReport {
		w.report(&entry.ScanError{Path: e.Path, Err: err})
		log.WithFields(fields).WithError(err).Debug("visit")
	} else {
		log.WithFields(fields).Debug("visit")
	}
	return action
}

func (w *Walker) decide(e *entry.Entry, err error) Action {
	switch {
	case err != nil:
		return ActionReport
	case !e.IsDir() || e.IsSelfOrParent() || !w.opts.GoIntoDirs:
		return ActionSkip
	case e.Depth == 0 || w.opts.Recurse:
		return ActionDescend
	default:
		return ActionSkip
	}
}

// listDir prints dir's group and returns the children to descend into.
func (w *Walker) listDir(dir *entry.Entry) ([]entry.Entry, error) {
	if err := w.separate(); err != nil {
		return nil, err
	}
	if w.headers {
		if _, err := fmt.Fprintf(w.out, "%s:\n", dir.Path); err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
	}

	listing, err := List(dir.Path, dir.Depth, w.opts, w.builder)
	if err != nil {
		return nil, err
	}
	for _, se := range listing.Errors {
		w.report(se)
	}
	w.stats.Dirs++

	if err := w.emit(&listing.Group); err != nil {
		return nil, err
	}

	var subdirs []entry.Entry
	for i := range listing.Children {
		child := &listing.Children[i]
		if w.visit(child, nil) == ActionDescend {
			subdirs = append(subdirs, *child)
		}
	}
	return subdirs, nil
}

// separate writes the blank line that goes between groups.
func (w *Walker) separate() error {
	if w.first {
		w.first = false
		return nil
	}
	if _, err := io.WriteString(w.out, "\n"); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (w *Walker) emit(g *render.Group) error {
	if err := w.renderer.Render(w.out, g); err != nil {
		return err
	}
	w.stats.Entries += int64(len(g.Records))
	_, size := g.Totals()
	w.stats.Bytes += size
	return nil
}

// report prints "<prog>: <path>: <reason>" on the diagnostic stream.
// report writes se to the diagnostic stream. Buffered listing output is
// flushed first so the diagnostic lands after the rows it follows.
func (w *Walker) report(se *entry.ScanError) {
	w.stats.Errors++
	if f, ok := w.out.(interface{ Flush() error }); ok {
		f.Flush()
	}
	fmt.Fprintf(w.diag, "%s: %s: %s\n", w.prog, se.Path, Reason(se.Err))
}

// Reason strips the operation and path from OS errors, leaving text such
// as "permission denied".
func Reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
