package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned by Validate for out-of-range settings.
var ErrInvalidOption = errors.New("invalid option")

// SortMode selects how sibling entries are ordered.
type SortMode uint8

const (
	SortUnsorted SortMode = 0
	SortSize     SortMode = 1
	SortTime     SortMode = 2
	SortName     SortMode = 3
)

func (s SortMode) String() string {
	switch s {
	case SortUnsorted:
		return "unsorted"
	case SortSize:
		return "size"
	case SortTime:
		return "time"
	case SortName:
		return "name"
	default:
		return fmt.Sprintf("SortMode(%d)", uint8(s))
	}
}

// TimeField selects which timestamp is displayed and compared.
type TimeField uint8

const (
	TimeChange TimeField = 0
	TimeModify TimeField = 1
	TimeAccess TimeField = 2
)

func (t TimeField) String() string {
	switch t {
	case TimeChange:
		return "ctime"
	case TimeModify:
		return "mtime"
	case TimeAccess:
		return "atime"
	default:
		return fmt.Sprintf("TimeField(%d)", uint8(t))
	}
}

// Filter controls dotfile visibility.
type Filter uint8

const (
	// FilterNormal hides names starting with '.' below the root operands.
	FilterNormal Filter = 0
	// FilterAllExceptDot shows dotfiles but not the "." and ".." entries.
	FilterAllExceptDot Filter = 1
	// FilterAll shows everything, including "." and "..".
	FilterAll Filter = 2
)

func (f Filter) String() string {
	switch f {
	case FilterNormal:
		return "normal"
	case FilterAllExceptDot:
		return "almost-all"
	case FilterAll:
		return "all"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

const (
	DefaultBlockSize int64 = 512
	MaxBlockSize     int64 = 1 << 30
)

// Options configures a listing run. It is a plain value: the With*
// setters return modified copies, so a value handed to the engine can
// never change underneath it.
type Options struct {
	// Sort is the ordering applied inside every group.
	Sort SortMode

	// Reverse negates the comparator result.
	Reverse bool

	// Time selects the displayed and compared timestamp.
	Time TimeField

	// Filter is the dotfile visibility policy.
	Filter Filter

	// Recurse lists subdirectories depth-first (-R).
	Recurse bool

	// GoIntoDirs lists directory contents instead of the directory itself.
	// Cleared by -d.
	GoIntoDirs bool

	// NumericIDs prints uid/gid numbers instead of names.
	NumericIDs bool

	// TypeIndicator appends one of "/@*%=|" after names (-F).
	TypeIndicator bool

	PrintInode  bool
	PrintBlocks bool
	LongMode    bool

	// BlockSize is the unit for the block column, in bytes.
	BlockSize int64

	// Humanize renders sizes and blocks as "1.2K" style values.
	Humanize bool

	// HideNonPrintable replaces non-printable filename bytes with '?'.
	HideNonPrintable bool

	// Interactive reports whether output goes to a terminal. Totals lines
	// are only printed when it is set.
	Interactive bool

	// Color styles names and owners with ANSI colours.
	Color bool
}

// DefaultOptions returns the defaults of a plain invocation.
func DefaultOptions() Options {
	return Options{
		Sort:       SortName,
		Time:       TimeModify,
		Filter:     FilterNormal,
		GoIntoDirs: true,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSort sets the sort mode.
func (o Options) WithSort(s SortMode) Options {
	o.Sort = s
	return o
}

// WithReverse sets reverse ordering.
func (o Options) WithReverse(r bool) Options {
	o.Reverse = r
	return o
}

// WithTime sets the time field.
func (o Options) WithTime(t TimeField) Options {
	o.Time = t
	return o
}

// WithFilter sets the dotfile policy.
func (o Options) WithFilter(f Filter) Options {
	o.Filter = f
	return o
}

// WithRecurse sets recursive listing.
func (o Options) WithRecurse(r bool) Options {
	o.Recurse = r
	return o
}

// WithGoIntoDirs sets whether directory operands are listed by content.
func (o Options) WithGoIntoDirs(g bool) Options {
	o.GoIntoDirs = g
	return o
}

// WithLongMode sets long format.
func (o Options) WithLongMode(l bool) Options {
	o.LongMode = l
	return o
}

// WithHumanize sets human-readable sizes.
func (o Options) WithHumanize(h bool) Options {
	o.Humanize = h
	return o
}

// WithBlockSize sets the block unit.
func (o Options) WithBlockSize(n int64) Options {
	o.BlockSize = n
	return o
}

// WithInteractive marks output as going to a terminal.
func (o Options) WithInteractive(i bool) Options {
	o.Interactive = i
	return o
}

// Validate checks enum ranges and the block size.
func (o Options) Validate() error {
	if o.Sort > SortName {
		return fmt.Errorf("%w: sort mode %d", ErrInvalidOption, o.Sort)
	}
	if o.Time > TimeAccess {
		return fmt.Errorf("%w: time field %d", ErrInvalidOption, o.Time)
	}
	if o.Filter > FilterAll {
		return fmt.Errorf("%w: filter %d", ErrInvalidOption, o.Filter)
	}
	if o.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidOption, o.BlockSize)
	}
	return nil
}

// ParseBlockSize interprets a BLOCKSIZE value: a decimal number with an
// optional K, M or G multiplier. Results are clamped to
// [DefaultBlockSize, MaxBlockSize]. An unparsable value yields
// DefaultBlockSize and an error.
func ParseBlockSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultBlockSize, nil
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1 << 10
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1 << 20
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1 << 30
		s = s[:len(s)-1]
	}

	n := int64(1)
	if s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return DefaultBlockSize, fmt.Errorf("%w: BLOCKSIZE %q", ErrInvalidOption, s)
		}
		n = v
	}

	if n > MaxBlockSize/mult {
		return MaxBlockSize, nil
	}
	n *= mult
	if n < DefaultBlockSize {
		return DefaultBlockSize, nil
	}
	return n, nil
}
