// Package order implements the sibling ordering used by listings.
package order

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/michaelscutari/dls/internal/entry"
	"github.com/michaelscutari/dls/internal/options"
)

// Compare orders a before b (negative), after b (positive) or equal (0)
// under opts.Sort. Size and time order largest/newest first; times are
// compared in whole seconds. Ties fall back to a byte-wise name
// comparison so the order is total. Reverse negates the final result.
//
// Compare panics for SortUnsorted or an unknown mode: callers must not
// compare at all when sorting is disabled.
func Compare(a, b *entry.Entry, opts options.Options) int {
	var res int

	switch opts.Sort {
	case options.SortSize:
		res = cmp.Compare(b.Meta.Size, a.Meta.Size)
		if res == 0 {
			res = byName(a, b)
		}
	case options.SortTime:
		res = cmp.Compare(b.Time(opts.Time).Unix(), a.Time(opts.Time).Unix())
		if res == 0 {
			res = byName(a, b)
		}
	case options.SortName:
		res = byName(a, b)
	default:
		panic(fmt.Sprintf("order: invalid sort mode %s", opts.Sort))
	}

	if opts.Reverse {
		res = -res
	}
	return res
}

func byName(a, b *entry.Entry) int {
	return strings.Compare(a.Name, b.Name)
}

// Sort orders entries in place. SortUnsorted leaves the enumeration
// order untouched.
func Sort(entries []entry.Entry, opts options.Options) {
	if opts.Sort == options.SortUnsorted {
		return
	}
	slices.SortStableFunc(entries, func(a, b entry.Entry) int {
		return Compare(&a, &b, opts)
	})
}
