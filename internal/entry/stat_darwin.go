//go:build darwin

package entry

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// WhiteoutSupported reports whether the platform has whiteout nodes.
const WhiteoutSupported = true

func sysMeta(info fs.FileInfo) (Meta, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Meta{}, false
	}
	rdev := uint64(st.Rdev)
	return Meta{
		Inode:  st.Ino,
		Mode:   uint32(st.Mode),
		Links:  uint64(st.Nlink),
		UID:    st.Uid,
		GID:    st.Gid,
		Size:   st.Size,
		Blocks: st.Blocks,
		Major:  unix.Major(rdev),
		Minor:  unix.Minor(rdev),
		ATime:  time.Unix(st.Atimespec.Unix()),
		MTime:  time.Unix(st.Mtimespec.Unix()),
		CTime:  time.Unix(st.Ctimespec.Unix()),
	}, true
}
