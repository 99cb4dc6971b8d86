package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"
)

// flags mirrors the command line. Conflicting letters are resolved in
// toOptions rather than by argument order.
type flags struct {
	one       bool
	almostAll bool
	all       bool
	ctime     bool
	directory bool
	classify  bool
	unsorted  bool
	human     bool
	inode     bool
	kilo      bool
	long      bool
	numeric   bool
	hideCtrl  bool
	recurse   bool
	reverse   bool
	sizeSort  bool
	blocks    bool
	timeSort  bool
	atime     bool
	showCtrl  bool
	browse    bool
	color     string
	stats     bool
	verbose   bool
}

func (f *flags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	// -h is humanize; help keeps only its long form.
	fs.Bool("help", false, "Show help")

	fs.BoolVarP(&f.one, "one", "1", false, "Force one entry per line, no long format")
	fs.BoolVarP(&f.almostAll, "almost-all", "A", false, "Show dotfiles except . and ..")
	fs.BoolVarP(&f.all, "all", "a", false, "Show all entries including . and ..")
	fs.BoolVarP(&f.ctime, "ctime", "c", false, "Use status change time")
	fs.BoolVarP(&f.directory, "directory", "d", false, "List directories themselves, not their contents")
	fs.BoolVarP(&f.classify, "classify", "F", false, "Append a type indicator to names")
	fs.BoolVarP(&f.unsorted, "unsorted", "f", false, "Do not sort")
	fs.BoolVarP(&f.human, "human-readable", "h", false, "Print sizes like 1.0K")
	fs.BoolVarP(&f.inode, "inode", "i", false, "Print inode numbers")
	fs.BoolVarP(&f.kilo, "kibibytes", "k", false, "Use 1024-byte blocks")
	fs.BoolVarP(&f.long, "long", "l", false, "Long listing format")
	fs.BoolVarP(&f.numeric, "numeric-uid-gid", "n", false, "Numeric user and group IDs (implies -l)")
	fs.BoolVarP(&f.hideCtrl, "hide-control-chars", "q", false, "Print ? for non-printable characters")
	fs.BoolVarP(&f.recurse, "recursive", "R", false, "List subdirectories recursively")
	fs.BoolVarP(&f.reverse, "reverse", "r", false, "Reverse the sort order")
	fs.BoolVarP(&f.sizeSort, "size-sort", "S", false, "Sort by size, largest first")
	fs.BoolVarP(&f.blocks, "size", "s", false, "Print allocated blocks")
	fs.BoolVarP(&f.timeSort, "time-sort", "t", false, "Sort by time, newest first")
	fs.BoolVarP(&f.atime, "atime", "u", false, "Use access time")
	fs.BoolVarP(&f.showCtrl, "show-control-chars", "w", false, "Print non-printable characters raw")

	fs.BoolVar(&f.browse, "browse", false, "Browse interactively")
	fs.StringVar(&f.color, "color", "never", "Colorize output: auto|always|never")
	fs.BoolVar(&f.stats, "stats", false, "Print a summary line on stderr")
	fs.BoolVar(&f.verbose, "verbose", false, "Enable debug tracing")
}

// toOptions builds the listing configuration. interactive reports whether
// stdout is a terminal.
func (f *flags) toOptions(interactive bool) (options.Options, error) {
	opts := options.DefaultOptions().
		WithInteractive(interactive)

	if os.Getuid() == 0 {
		opts = opts.WithFilter(options.FilterAllExceptDot)
	}
	switch {
	case f.all:
		opts = opts.WithFilter(options.FilterAll)
	case f.almostAll:
		opts = opts.WithFilter(options.FilterAllExceptDot)
	}

	switch {
	case f.unsorted:
		opts = opts.WithSort(options.SortUnsorted)
	case f.sizeSort:
		opts = opts.WithSort(options.SortSize)
	case f.timeSort:
		opts = opts.WithSort(options.SortTime)
	}
	opts = opts.WithReverse(f.reverse)

	switch {
	case f.atime:
		opts = opts.WithTime(options.TimeAccess)
	case f.ctime:
		opts = opts.WithTime(options.TimeChange)
	}

	opts = opts.
		WithRecurse(f.recurse).
		WithGoIntoDirs(!f.directory).
		WithLongMode((f.long || f.numeric) && !f.one).
		WithHumanize(f.human)
	opts.NumericIDs = f.numeric
	opts.TypeIndicator = f.classify
	opts.PrintInode = f.inode
	opts.PrintBlocks = f.blocks

	opts.HideNonPrintable = interactive
	if f.hideCtrl {
		opts.HideNonPrintable = true
	}
	if f.showCtrl {
		opts.HideNonPrintable = false
	}

	if opts.PrintBlocks || opts.LongMode {
		if v, ok := os.LookupEnv("BLOCKSIZE"); ok {
			size, err := options.ParseBlockSize(v)
			if err != nil {
				log.WithField("BLOCKSIZE", v).Warn("invalid block size, using 512")
			}
			opts = opts.WithBlockSize(size)
		}
	}
	if f.kilo {
		opts = opts.WithBlockSize(1024)
	}

	switch f.color {
	case "never":
	case "always":
		opts.Color = true
	case "auto":
		opts.Color = interactive
	default:
		return opts, &usageError{err: fmt.Errorf("invalid --color value %q", f.color)}
	}

	return opts, opts.Validate()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
