//go:build linux

package entry

import (
	"io/fs"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// WhiteoutSupported reports whether the platform has whiteout nodes.
const WhiteoutSupported = false

func sysMeta(info fs.FileInfo) (Meta, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Meta{}, false
	}
	rdev := uint64(st.Rdev)
	return Meta{
		Inode:  st.Ino,
		Mode:   st.Mode,
		Links:  uint64(st.Nlink),
		UID:    st.Uid,
		GID:    st.Gid,
		Size:   st.Size,
		Blocks: st.Blocks,
		Major:  unix.Major(rdev),
		Minor:  unix.Minor(rdev),
		ATime:  time.Unix(st.Atim.Unix()),
		MTime:  time.Unix(st.Mtim.Unix()),
		CTime:  time.Unix(st.Ctim.Unix()),
	}, true
}
