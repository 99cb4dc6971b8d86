package entry

import (
	"time"

	"github.com/michaelscutari/dls/internal/options"
)

// Kind represents the type of filesystem entry.
type Kind uint8

const (
	KindFile        Kind = 0
	KindDir         Kind = 1
	KindSymlink     Kind = 2
	KindOther       Kind = 3
	KindCharDevice  Kind = 4
	KindBlockDevice Kind = 5
	KindSocket      Kind = 6
	KindFIFO        Kind = 7
	KindWhiteout    Kind = 8
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	case KindCharDevice:
		return "chardev"
	case KindBlockDevice:
		return "blockdev"
	case KindSocket:
		return "socket"
	case KindFIFO:
		return "fifo"
	case KindWhiteout:
		return "whiteout"
	default:
		return "other"
	}
}

// IsDevice reports whether the kind carries a major/minor pair instead
// of a size.
func (k Kind) IsDevice() bool {
	return k == KindCharDevice || k == KindBlockDevice
}

// KindFromMode derives the Kind from a raw st_mode value.
func KindFromMode(mode uint32) Kind {
	switch mode & ModeTypeMask {
	case ModeTypeReg:
		return KindFile
	case ModeTypeDir:
		return KindDir
	case ModeTypeSymlink:
		return KindSymlink
	case ModeTypeChar:
		return KindCharDevice
	case ModeTypeBlock:
		return KindBlockDevice
	case ModeTypeSocket:
		return KindSocket
	case ModeTypeFIFO:
		return KindFIFO
	case ModeTypeWhiteout:
		if WhiteoutSupported {
			return KindWhiteout
		}
		return KindOther
	default:
		return KindOther
	}
}

// Meta is the stat snapshot captured when an entry is discovered. It is
// never refreshed afterwards.
type Meta struct {
	Inode  uint64
	Mode   uint32 // raw st_mode: type and permission bits
	Links  uint64
	UID    uint32
	GID    uint32
	Size   int64 // Apparent size (st_size)
	Blocks int64 // st_blocks, in 512-byte units
	Major  uint32
	Minor  uint32
	ATime  time.Time
	MTime  time.Time
	CTime  time.Time
}

// Entry is one filesystem node discovered by a walk.
type Entry struct {
	// Name is the display name: the operand as typed for roots, the base
	// name for directory children.
	Name string
	// Path is the path used to reach the node.
	Path string
	// Dir is the directory the node was read from; empty for operands.
	Dir   string
	Depth int
	Kind  Kind
	Meta  Meta
}

// New builds an Entry, deriving the kind from the captured mode.
func New(name, path, dir string, depth int, meta Meta) Entry {
	return Entry{
		Name:  name,
		Path:  path,
		Dir:   dir,
		Depth: depth,
		Kind:  KindFromMode(meta.Mode),
		Meta:  meta,
	}
}

// Time returns the timestamp selected by f.
func (e *Entry) Time(f options.TimeField) time.Time {
	switch f {
	case options.TimeChange:
		return e.Meta.CTime
	case options.TimeAccess:
		return e.Meta.ATime
	default:
		return e.Meta.MTime
	}
}

// IsDir reports whether the entry is a real directory (symlinks to
// directories are not followed).
func (e *Entry) IsDir() bool {
	return e.Kind == KindDir
}

// IsSelfOrParent reports whether the entry is a synthesized "." or "..".
func (e *Entry) IsSelfOrParent() bool {
	return e.Depth > 0 && (e.Name == "." || e.Name == "..")
}

// ScanError represents an error encountered while walking.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
