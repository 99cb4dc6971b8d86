// Package walk lists directory trees: it reads each directory level,
// orders and snapshots its children, and renders one group per level.
package walk

import (
	"os"
	"strings"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/order"
	"github.com/michaelscutari/dls/internal/pathutil"
	"github.com/michaelscutari/dls/internal/render"
	"github.com/michaelscutari/dls/internal/snapshot"

	log "github.com/sirupsen/logrus"
)

// ReadDir returns the immediate children of dir that are visible under
// filter, in the order the directory yields them. Children get depth+1.
// Failures to read the directory or to stat a child are returned as scan
// errors; whatever could be read is still returned.
func ReadDir(dir string, depth int, filter options.Filter) ([]entry.Entry, []*entry.ScanError) {
	var errs []*entry.ScanError

	f, err := os.Open(dir)
	if err != nil {
		return nil, append(errs, &entry.ScanError{Path: dir, Err: err})
	}
	defer f.Close()

	// Read everything in one call so unsorted listings keep the order the
	// filesystem returns.
	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		errs = append(errs, &entry.ScanError{Path: dir, Err: err})
	}

	children := make([]entry.Entry, 0, len(dirEntries)+2)
	if filter == options.FilterAll {
		for _, name := range []string{".", ".."} {
			childPath := pathutil.Join(dir, name)
			meta, err := entry.Lstat(childPath)
			if err != nil {
				errs = append(errs, &entry.ScanError{Path: childPath, Err: err})
				continue
			}
			children = append(children, entry.New(name, childPath, dir, depth+1, meta))
		}
	}

	for _, de := range dirEntries {
		name := de.Name()
		if filter == options.FilterNormal && strings.HasPrefix(name, ".") {
			continue
		}

		childPath := pathutil.Join(dir, name)

		// Always use Lstat to avoid following symlinks
		meta, err := entry.Lstat(childPath)
		if err != nil {
			errs = append(errs, &entry.ScanError{Path: childPath, Err: err})
			continue
		}
		children = append(children, entry.New(name, childPath, dir, depth+1, meta))
	}

	log.WithFields(log.Fields{
		"path":    dir,
		"depth":   depth,
		"entries": len(children),
		"errors":  len(errs),
	}).Debug("read directory")

	return children, errs
}

// Listing is one directory level: its children in display order and the
// group of display records built from them.
type Listing struct {
	Children []entry.Entry
	Group    render.Group
	Errors   []*entry.ScanError
}

// List reads dir, orders its children and builds their display records.
// Per-node failures are collected in Errors; the returned error is fatal
// for the run.
func List(dir string, depth int, opts options.Options, b *snapshot.Builder) (*Listing, error) {
	children, errs := ReadDir(dir, depth, opts.Filter)
	order.Sort(children, opts)

	records, err := b.BuildAll(children)
	if err != nil {
		return nil, err
	}

	return &Listing{
		Children: children,
		Group: render.Group{
			Path:      dir,
			Records:   records,
			ShowTotal: true,
		},
		Errors: errs,
	}, nil
}
