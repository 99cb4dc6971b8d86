//go:build !linux && !darwin

package entry

import "io/fs"

// WhiteoutSupported reports whether the platform has whiteout nodes.
const WhiteoutSupported = false

func sysMeta(fs.FileInfo) (Meta, bool) {
	return Meta{}, false
}
