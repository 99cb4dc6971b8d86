package walk

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats counts what a run listed.
type Stats struct {
	Dirs    int64
	Entries int64
	Bytes   int64
	Errors  int64
}

// Summary formats the counters as a single diagnostic line.
func (s Stats) Summary(prog string) string {
	bytes := s.Bytes
	if bytes < 0 {
		bytes = 0
	}
	return fmt.Sprintf("%s: %s directories, %s entries, %s (%s errors)",
		prog,
		humanize.Comma(s.Dirs),
		humanize.Comma(s.Entries),
		humanize.IBytes(uint64(bytes)),
		humanize.Comma(s.Errors),
	)
}
