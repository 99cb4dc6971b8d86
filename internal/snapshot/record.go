package snapshot

import (
	"strconv"

	"github.com/michaelscutari/dls/internal/entry"
)

// Size is the size column of a record: either a byte count text or a
// device major/minor pair, fixed when the record is built.
type Size struct {
	device bool
	text   string
	major  uint32
	minor  uint32
}

// ByteSize returns a Size holding formatted byte text.
func ByteSize(text string) Size {
	return Size{text: text}
}

// DeviceSize returns a Size holding a device number pair.
func DeviceSize(major, minor uint32) Size {
	return Size{device: true, major: major, minor: minor}
}

// IsDevice reports whether the size is a major/minor pair.
func (s Size) IsDevice() bool {
	return s.device
}

// Text returns the byte text; empty for devices.
func (s Size) Text() string {
	return s.text
}

// Device returns the major/minor pair; zero for byte sizes.
func (s Size) Device() (major, minor uint32) {
	return s.major, s.minor
}

// MajorText and MinorText return the decimal device numbers.
func (s Size) MajorText() string { return strconv.FormatUint(uint64(s.major), 10) }
func (s Size) MinorText() string { return strconv.FormatUint(uint64(s.minor), 10) }

// Record is the display-ready projection of one entry. Every field is
// final once Build returns.
type Record struct {
	Inode  string
	Blocks string
	Mode   string
	Links  string
	Owner  string
	Group  string
	Size   Size
	Time   string
	Name   string
	// TypeChar is the -F indicator, or 0 when the entry has none.
	TypeChar byte
	// Target is the symlink target; empty for other kinds.
	Target string

	Kind entry.Kind
	Path string

	// Raw values feeding the group totals.
	RawBlocks int64
	RawSize   int64
}

// IsSymlink reports whether the record carries a link target.
func (r *Record) IsSymlink() bool {
	return r.Kind == entry.KindSymlink
}
