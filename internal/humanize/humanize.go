// Package humanize formats byte counts into compact strings such as
// "999B" or "1.0K" under a fixed buffer budget.
//
// The buffer length plays the role of a C buffer size: it includes one
// byte for a terminator, so a length of 5 allows at most 4 visible
// characters.
package humanize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrBufferTooSmall means the buffer cannot hold sign, digit, prefix
	// and suffix.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrInvalidScale means a negative scale, or a fixed scale beyond E.
	ErrInvalidScale = errors.New("invalid scale")
)

// Flags modify the output format.
type Flags int

const (
	// Decimal renders one decimal place for scaled values below 9.95.
	Decimal Flags = 0x01
	// NoSpace omits the space between number and prefix.
	NoSpace Flags = 0x02
	// B prints a bare "B" prefix at scale zero.
	B Flags = 0x04
	// Divisor1000 uses SI multiples instead of powers of 1024.
	Divisor1000 Flags = 0x08
)

// Scale values with special meaning. Any other scale in [0, MaxScale]
// divides exactly that many times.
const (
	GetScale  = 0x10
	AutoScale = 0x20

	MaxScale = 6
)

var (
	binaryPrefixes  = [...]string{"", "K", "M", "G", "T", "P", "E"}
	binaryPrefixesB = [...]string{"B", "K", "M", "G", "T", "P", "E"}
	siPrefixes      = [...]string{"", "k", "M", "G", "T", "P", "E"}
	siPrefixesB     = [...]string{"B", "k", "M", "G", "T", "P", "E"}
)

// Number formats n into at most length-1 visible characters. A result
// that would not fit is ErrBufferTooSmall, never a truncated string.
//
// With AutoScale the value is divided by the divisor until it fits the
// columns left after reserving room for sign, one digit, separator,
// prefix and suffix, up to MaxScale steps. All arithmetic is done on a
// hundredths-scaled integer, so rounding is round-half-up without
// floating point.
func Number(length int, n int64, suffix string, scale int, flags Flags) (string, error) {
	s, _, err := format(length, n, suffix, scale, flags)
	return s, err
}

// Scale returns the scale AutoScale would pick for n, without formatting.
func Scale(length int, n int64, suffix string, flags Flags) (int, error) {
	_, i, err := format(length, n, suffix, GetScale, flags)
	return i, err
}

func format(length int, n int64, suffix string, scale int, flags Flags) (string, int, error) {
	if scale < 0 {
		return "", 0, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	if scale > MaxScale && scale&(AutoScale|GetScale) == 0 {
		return "", 0, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}

	divisor := int64(1024)
	prefixes := binaryPrefixes[:]
	switch {
	case flags&Divisor1000 != 0 && flags&B != 0:
		divisor, prefixes = 1000, siPrefixesB[:]
	case flags&Divisor1000 != 0:
		divisor, prefixes = 1000, siPrefixes[:]
	case flags&B != 0:
		prefixes = binaryPrefixesB[:]
	}

	var (
		sign    string
		baselen int
		post    int64 = 1
	)
	if n < 0 {
		sign = "-"
		baselen = 3 // sign, digit, prefix
		switch {
		case n == math.MinInt64:
			n = math.MaxInt64
			post = 100
			baselen += 2
		case -n < math.MaxInt64/100:
			n *= -100
		default:
			n = -n
			post = 100
			baselen += 2
		}
	} else {
		baselen = 2 // digit, prefix
		if n < math.MaxInt64/100 {
			n *= 100
		} else {
			post = 100
			baselen += 2
		}
	}

	sep := ""
	if flags&NoSpace == 0 {
		sep = " "
		baselen++
	}
	baselen += len(suffix)

	if length < baselen+1 {
		return "", 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, baselen+1, length)
	}

	var i int
	if scale&(AutoScale|GetScale) != 0 {
		limit := int64(100)
		for j := length - baselen; j > 0; j-- {
			limit *= 10
		}

		// Divide until the value fits, one extra step if the rounding
		// below would overflow the column.
		for i = 0; n >= limit-50 && i < MaxScale; i++ {
			n /= divisor
		}

		if scale&GetScale != 0 {
			return "", i, nil
		}
	} else {
		for i = 0; i < scale && i < MaxScale; i++ {
			n /= divisor
		}
	}
	n *= post

	var out string
	if n < 995 && i > 0 && flags&Decimal != 0 {
		if length < baselen+1+2 {
			return "", 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, baselen+3, length)
		}
		b := (n + 5) / 10
		out = sign + strconv.FormatInt(b/10, 10) + "." + strconv.FormatInt(b%10, 10) +
			sep + prefixes[i] + suffix
	} else {
		out = sign + strconv.FormatInt((n+50)/100, 10) + sep + prefixes[i] + suffix
	}

	if len(out) > length-1 {
		return "", 0, fmt.Errorf("%w: %q needs %d bytes, have %d", ErrBufferTooSmall, out, len(out)+1, length)
	}
	return out, i, nil
}

// Bytes formats n the way listings print sizes and block counts: binary
// multiples, a bare B at scale zero, no space, one decimal below 10.
func Bytes(length int, n int64) (string, error) {
	return Number(length, n, "", AutoScale, Decimal|B|NoSpace)
}
