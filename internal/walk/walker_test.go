package walk

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"testing"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/options"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
}

func run(t *testing.T, opts options.Options, roots ...string) (string, string, Stats) {
	t.Helper()
	var out, diag bytes.Buffer
	w := New(opts, Config{Out: &out, Diag: &diag, Prog: "dls"})
	if err := w.Run(roots); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), diag.String(), w.Stats()
}

func names(entries []entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	slices.Sort(out)
	return out
}

func TestReadDirDotfileVisibility(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden"), 1)
	writeFile(t, filepath.Join(dir, "visible"), 1)

	tests := []struct {
		filter options.Filter
		want   []string
	}{
		{options.FilterNormal, []string{"visible"}},
		{options.FilterAllExceptDot, []string{".hidden", "visible"}},
		{options.FilterAll, []string{".", "..", ".hidden", "visible"}},
	}
	for _, tt := range tests {
		children, errs := ReadDir(dir, 0, tt.filter)
		if len(errs) != 0 {
			t.Fatalf("%s: unexpected errors: %v", tt.filter, errs)
		}
		if got := names(children); !slices.Equal(got, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.filter, got, tt.want)
		}
		for _, c := range children {
			if c.Depth != 1 || c.Dir != dir {
				t.Fatalf("%s: child %q has depth %d dir %q", tt.filter, c.Name, c.Depth, c.Dir)
			}
		}
	}
}

func TestReadDirKeepsEnumerationOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"m", "c", "x", "a", "q"} {
		writeFile(t, filepath.Join(dir, name), 1)
	}

	f, err := os.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	raw, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}

	children, _ := ReadDir(dir, 0, options.FilterNormal)
	if len(children) != len(raw) {
		t.Fatalf("expected %d children, got %d", len(raw), len(children))
	}
	for i := range raw {
		if children[i].Name != raw[i].Name() {
			t.Fatalf("position %d: got %q, want %q", i, children[i].Name, raw[i].Name())
		}
	}
}

func TestReadDirMissing(t *testing.T) {
	children, errs := ReadDir(filepath.Join(t.TempDir(), "nope"), 0, options.FilterNormal)
	if children != nil || len(errs) != 1 {
		t.Fatalf("expected one error, got %v %v", children, errs)
	}
	if !errors.Is(errs[0], fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", errs[0])
	}
}

func TestRunSingleRoot(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b", "a", "c", ".dot"} {
		writeFile(t, filepath.Join(dir, name), 1)
	}

	out, diag, stats := run(t, options.DefaultOptions(), dir)
	if out != "a\nb\nc\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if diag != "" {
		t.Fatalf("unexpected diagnostics %q", diag)
	}
	if stats.Dirs != 1 || stats.Entries != 3 || stats.Bytes != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestRunDefaultsToCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "only"), 1)
	t.Chdir(dir)

	out, _, _ := run(t, options.DefaultOptions())
	if out != "only\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunTwoRootsSeparator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one", "x"), 1)
	writeFile(t, filepath.Join(dir, "two", "y"), 1)
	t.Chdir(dir)

	out, _, _ := run(t, options.DefaultOptions(), "two", "one")
	if out != "one:\nx\n\ntwo:\ny\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Count(out, "\n\n") != 1 || strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected exactly one separator between groups: %q", out)
	}
}

func TestRunFileOperandsFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "f2"), 1)
	writeFile(t, filepath.Join(dir, "f1"), 1)
	writeFile(t, filepath.Join(dir, "d", "x"), 1)
	t.Chdir(dir)

	out, _, _ := run(t, options.DefaultOptions(), "f2", "d", "f1")
	if out != "f1\nf2\n\nd:\nx\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunListDirectoriesAsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "d", "x"), 1)
	writeFile(t, filepath.Join(dir, "f"), 1)
	t.Chdir(dir)

	out, _, stats := run(t, options.DefaultOptions().WithGoIntoDirs(false), "f", "d")
	if out != "d\nf\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if stats.Dirs != 0 {
		t.Fatalf("no directory should be descended, got %d", stats.Dirs)
	}
}

func TestRunRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), 1)
	writeFile(t, filepath.Join(dir, "sub", "b"), 1)
	writeFile(t, filepath.Join(dir, "sub", "deep", "c"), 1)
	writeFile(t, filepath.Join(dir, ".hid", "z"), 1)
	writeFile(t, filepath.Join(dir, "zz", "w"), 1)
	t.Chdir(dir)

	out, _, stats := run(t, options.DefaultOptions().WithRecurse(true), ".")
	want := ".:\na\nsub\nzz\n\n" +
		"./sub:\nb\ndeep\n\n" +
		"./sub/deep:\nc\n\n" +
		"./zz:\nw\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
	if stats.Dirs != 4 {
		t.Fatalf("expected 4 directories, got %d", stats.Dirs)
	}
}

func TestRunNonRecursiveStopsAtFirstLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "b"), 1)
	t.Chdir(dir)

	out, _, _ := run(t, options.DefaultOptions(), ".")
	if out != "sub\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunAllNeverDescendsSelfOrParent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "b"), 1)
	t.Chdir(dir)

	opts := options.DefaultOptions().WithRecurse(true).WithFilter(options.FilterAll)
	out, _, stats := run(t, opts, ".")
	want := ".:\n.\n..\nsub\n\n./sub:\n.\n..\nb\n"
	if out != want {
		t.Fatalf("unexpected output %q", out)
	}
	if stats.Dirs != 2 {
		t.Fatalf("expected 2 directories, got %d", stats.Dirs)
	}
}

func TestRunReportsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "d", "x"), 1)
	t.Chdir(dir)

	out, diag, stats := run(t, options.DefaultOptions(), "missing", "d")
	if out != "d:\nx\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if diag != "dls: missing: no such file or directory\n" {
		t.Fatalf("unexpected diagnostics %q", diag)
	}
	if stats.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", stats.Errors)
	}
}

func TestRunUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locked", "secret"), 1)
	writeFile(t, filepath.Join(dir, "open", "x"), 1)
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })
	t.Chdir(dir)

	out, diag, _ := run(t, options.DefaultOptions().WithRecurse(true), ".")
	if !strings.Contains(diag, "dls: ./locked: permission denied\n") {
		t.Fatalf("unexpected diagnostics %q", diag)
	}
	if !strings.HasSuffix(out, "./open:\nx\n") {
		t.Fatalf("listing did not continue past the error: %q", out)
	}
}

func TestReportFlushesListingFirst(t *testing.T) {
	var shared bytes.Buffer
	out := bufio.NewWriter(&shared)
	w := New(options.DefaultOptions(), Config{Out: out, Diag: &shared, Prog: "dls"})

	out.WriteString("d:\nx\n")
	w.report(&entry.ScanError{Path: "d/y", Err: &fs.PathError{Op: "lstat", Path: "d/y", Err: syscall.ENOENT}})

	if got := shared.String(); got != "d:\nx\ndls: d/y: no such file or directory\n" {
		t.Fatalf("diagnostic overtook buffered output: %q", got)
	}
}

func TestRunUnreadableDirectoryHeaderPrecedesDiagnostic(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "locked", "secret"), 1)
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })
	t.Chdir(dir)

	var shared bytes.Buffer
	out := bufio.NewWriter(&shared)
	w := New(options.DefaultOptions().WithRecurse(true), Config{Out: out, Diag: &shared, Prog: "dls"})
	if err := w.Run([]string{"."}); err != nil {
		t.Fatalf("run: %v", err)
	}
	out.Flush()

	got := shared.String()
	header := strings.Index(got, "./locked:\n")
	diag := strings.Index(got, "dls: ./locked: permission denied\n")
	if header < 0 || diag < 0 || header > diag {
		t.Fatalf("header should precede its diagnostic: %q", got)
	}
}

func TestRunSizeOrderHumanized(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ten"), 10)
	writeFile(t, filepath.Join(dir, "big"), 2048)
	writeFile(t, filepath.Join(dir, "five"), 5)

	opts := options.DefaultOptions().
		WithSort(options.SortSize).
		WithHumanize(true).
		WithLongMode(true)
	out, _, _ := run(t, opts, dir)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	wantSizes := []string{"2.0K", "10B", "5B"}
	wantNames := []string{"big", "ten", "five"}
	for i, line := range lines {
		fields := strings.Fields(line)
		if fields[4] != wantSizes[i] || fields[len(fields)-1] != wantNames[i] {
			t.Fatalf("line %d = %q", i, line)
		}
		if len(line)-len(wantNames[i]) != len(lines[0])-len(wantNames[0]) {
			t.Fatalf("size column not aligned: %q", lines)
		}
	}
}

func TestRunSymlinkTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "target"), 1)
	if err := os.Symlink("target", filepath.Join(dir, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	opts := options.DefaultOptions().WithLongMode(true)
	opts.TypeIndicator = true
	out, _, _ := run(t, opts, dir)
	if !strings.Contains(out, " link@ -> target\n") {
		t.Fatalf("missing symlink arrow: %q", out)
	}
	if !strings.HasPrefix(out, "l") {
		t.Fatalf("expected link first with a symlink mode: %q", out)
	}
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	w := New(options.DefaultOptions().WithSort(options.SortMode(42)), Config{Out: &bytes.Buffer{}})
	if err := w.Run([]string{"."}); !errors.Is(err, options.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestDecide(t *testing.T) {
	dirMeta := entry.Meta{Mode: entry.ModeTypeDir | 0o755}
	fileMeta := entry.Meta{Mode: entry.ModeTypeReg | 0o644}

	tests := []struct {
		name string
		opts options.Options
		e    entry.Entry
		err  error
		want Action
	}{
		{"error", options.DefaultOptions(), entry.New("x", "x", "", 0, fileMeta), syscall.ENOENT, ActionReport},
		{"file", options.DefaultOptions(), entry.New("f", "f", "", 0, fileMeta), nil, ActionSkip},
		{"root dir", options.DefaultOptions(), entry.New("d", "d", "", 0, dirMeta), nil, ActionDescend},
		{"child dir", options.DefaultOptions(), entry.New("d", "p/d", "p", 1, dirMeta), nil, ActionSkip},
		{"child dir recursive", options.DefaultOptions().WithRecurse(true), entry.New("d", "p/d", "p", 1, dirMeta), nil, ActionDescend},
		{"dot", options.DefaultOptions().WithRecurse(true), entry.New(".", "p/.", "p", 1, dirMeta), nil, ActionSkip},
		{"dotdot", options.DefaultOptions().WithRecurse(true), entry.New("..", "p/..", "p", 1, dirMeta), nil, ActionSkip},
		{"no descend", options.DefaultOptions().WithGoIntoDirs(false), entry.New("d", "d", "", 0, dirMeta), nil, ActionSkip},
	}
	w := &Walker{}
	for _, tt := range tests {
		w.opts = tt.opts
		if got := w.decide(&tt.e, tt.err); got != tt.want {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestReason(t *testing.T) {
	err := &fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}
	if got := Reason(err); got != "permission denied" {
		t.Fatalf("unexpected reason %q", got)
	}
	if got := Reason(errors.New("plain")); got != "plain" {
		t.Fatalf("unexpected reason %q", got)
	}
}

func TestStatsSummary(t *testing.T) {
	s := Stats{Dirs: 1234, Entries: 5, Bytes: 2048, Errors: 0}
	want := "dls: 1,234 directories, 5 entries, 2.0 KiB (0 errors)"
	if got := s.Summary("dls"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func BenchmarkRunLong(b *testing.B) {
	dir := b.TempDir()
	for i := range 200 {
		path := filepath.Join(dir, "d"+string(rune('a'+i%26)), "f"+strings.Repeat("x", i%7)+string(rune('a'+i%26)))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, make([]byte, i), 0o644); err != nil {
			b.Fatalf("write: %v", err)
		}
	}
	opts := options.DefaultOptions().WithLongMode(true).WithRecurse(true)

	for b.Loop() {
		var out bytes.Buffer
		if err := New(opts, Config{Out: &out, Diag: &out}).Run([]string{dir}); err != nil {
			b.Fatalf("run: %v", err)
		}
	}
}
