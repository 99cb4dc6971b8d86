// Package snapshot turns walked entries into display records.
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/humanize"
	"github.com/michaelscutari/dls/internal/identity"
	"github.com/michaelscutari/dls/internal/options"
	"github.com/michaelscutari/dls/internal/pathutil"
)

// humanLen is the buffer budget for humanized columns: "999B" and "1.0K"
// are both four characters.
const humanLen = 5

var months = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// LinkReader reads the target of a symbolic link found in dir.
type LinkReader interface {
	Readlink(dir, name string) (string, error)
}

// OSLinks reads link targets from the local filesystem.
type OSLinks struct{}

// Readlink implements LinkReader.
func (OSLinks) Readlink(dir, name string) (string, error) {
	return os.Readlink(pathutil.Join(dir, name))
}

// Builder produces Records for one listing run.
type Builder struct {
	opts  options.Options
	ids   identity.Resolver
	links LinkReader
}

// NewBuilder creates a builder. A nil links reader uses OSLinks.
func NewBuilder(opts options.Options, ids identity.Resolver, links LinkReader) *Builder {
	if links == nil {
		links = OSLinks{}
	}
	return &Builder{opts: opts, ids: ids, links: links}
}

// Build captures the display record for e. Only the symlink read and
// identity lookups touch the system; both are single attempts. A failed
// symlink read is returned as an error.
func (b *Builder) Build(e *entry.Entry) (Record, error) {
	m := &e.Meta
	r := Record{
		Inode:     strconv.FormatUint(m.Inode, 10),
		Mode:      entry.Permissions(m.Mode),
		Links:     strconv.FormatUint(m.Links, 10),
		Owner:     identity.UserText(b.ids, m.UID, b.opts.NumericIDs),
		Group:     identity.GroupText(b.ids, m.GID, b.opts.NumericIDs),
		Time:      FormatTime(e.Time(b.opts.Time)),
		Name:      e.Name,
		TypeChar:  TypeChar(e.Kind, m.Mode),
		Kind:      e.Kind,
		Path:      e.Path,
		RawBlocks: m.Blocks,
		RawSize:   m.Size,
	}

	blocks, err := BlockText(m.Blocks, b.opts)
	if err != nil {
		return Record{}, err
	}
	r.Blocks = blocks

	if e.Kind.IsDevice() {
		r.Size = DeviceSize(m.Major, m.Minor)
	} else {
		text, err := b.sizeText(m.Size)
		if err != nil {
			return Record{}, err
		}
		r.Size = ByteSize(text)
	}

	if b.opts.HideNonPrintable {
		r.Name = MaskNonPrintable(r.Name)
	}

	if e.Kind == entry.KindSymlink {
		target, err := b.links.Readlink(e.Dir, e.Name)
		if err != nil {
			var pe *fs.PathError
			if errors.As(err, &pe) {
				err = pe.Err
			}
			return Record{}, fmt.Errorf("readlink %s: %w", pathutil.Join(e.Dir, e.Name), err)
		}
		r.Target = target
	}

	return r, nil
}

// BuildAll builds records for entries in order, stopping at the first
// error.
func (b *Builder) BuildAll(entries []entry.Entry) ([]Record, error) {
	records := make([]Record, 0, len(entries))
	for i := range entries {
		r, err := b.Build(&entries[i])
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (b *Builder) sizeText(size int64) (string, error) {
	if !b.opts.Humanize {
		return strconv.FormatInt(size, 10), nil
	}
	text, err := humanize.Bytes(humanLen, size)
	if err != nil {
		return "", fmt.Errorf("humanize(%d): %w", size, err)
	}
	return text, nil
}

// BlockText formats a count of 512-byte blocks: humanized bytes, or the
// count in opts.BlockSize units rounded up.
func BlockText(blocks int64, opts options.Options) (string, error) {
	bytes := blocks * 512
	if opts.Humanize {
		text, err := humanize.Bytes(humanLen, bytes)
		if err != nil {
			return "", fmt.Errorf("humanize(%d): %w", bytes, err)
		}
		return text, nil
	}
	return strconv.FormatInt(ceilDiv(bytes, opts.BlockSize), 10), nil
}

func ceilDiv(n, d int64) int64 {
	if d <= 0 {
		d = options.DefaultBlockSize
	}
	q := n / d
	if n%d != 0 && n > 0 {
		q++
	}
	return q
}

// FormatTime renders t in local time as "Mon DD HH:MM".
func FormatTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s %2d %02d:%02d", months[t.Month()-1], t.Day(), t.Hour(), t.Minute())
}

// TypeChar returns the -F indicator for a node, or 0.
func TypeChar(kind entry.Kind, mode uint32) byte {
	switch {
	case kind == entry.KindDir:
		return '/'
	case kind == entry.KindSymlink:
		return '@'
	case mode&entry.ModeExecAny != 0:
		return '*'
	case kind == entry.KindWhiteout:
		return '%'
	case kind == entry.KindSocket:
		return '='
	case kind == entry.KindFIFO:
		return '|'
	default:
		return 0
	}
}

// MaskNonPrintable replaces every byte outside printable ASCII with '?',
// keeping the length unchanged.
func MaskNonPrintable(name string) string {
	var buf []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 0x20 && c < 0x7f {
			continue
		}
		if buf == nil {
			buf = []byte(name)
		}
		buf[i] = '?'
	}
	if buf == nil {
		return name
	}
	return string(buf)
}
