package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/michaelscutari/dls/internal/identity"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/render"
	"github.com/michaelscutari/dls/internal/snapshot"
	"github.com/michaelscutari/dls/internal/walk"
	"github.com/muesli/termenv"

	log "github.com/sirupsen/logrus"
)

func run(prog string, f *flags, args []string) error {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if f.verbose {
		log.SetLevel(log.DebugLevel)
	}

	opts, err := f.toOptions(stdoutIsTerminal())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"sort":    opts.Sort,
		"filter":  opts.Filter,
		"recurse": opts.Recurse,
		"long":    opts.LongMode,
	}).Debug("options")

	if f.browse {
		return browse(args, opts)
	}
	return list(prog, args, opts, f.stats)
}

func list(prog string, args []string, opts options.Options, stats bool) error {
	out := bufio.NewWriter(os.Stdout)

	w := walk.New(opts, walk.Config{
		Out:      out,
		Diag:     os.Stderr,
		Prog:     prog,
		Builder:  snapshot.NewBuilder(opts, identity.NewSystem(), nil),
		Renderer: render.New(opts, styler(opts)),
	})
	runErr := w.Run(args)

	if err := out.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("write: %w", err)
	}
	if stats {
		fmt.Fprintln(os.Stderr, w.Stats().Summary(prog))
	}
	return runErr
}

func styler(opts options.Options) render.Styler {
	if !opts.Color {
		return render.Plain{}
	}
	r := lipgloss.NewRenderer(os.Stdout)
	if !opts.Interactive {
		// --color=always on a pipe.
		r.SetColorProfile(termenv.ANSI256)
	}
	return render.NewColor(r)
}
