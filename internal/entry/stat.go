package entry

import (
	"io/fs"
	"os"
)

// Lstat captures the metadata of path without following symlinks.
func Lstat(path string) (Meta, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Meta{}, err
	}
	return FromFileInfo(info), nil
}

// FromFileInfo converts a FileInfo into Meta. Platform stat data is used
// when available; otherwise only mode, size and mtime are known.
func FromFileInfo(info fs.FileInfo) Meta {
	if m, ok := sysMeta(info); ok {
		return m
	}
	return Meta{
		Mode:  rawMode(info.Mode()),
		Links: 1,
		Size:  info.Size(),
		ATime: info.ModTime(),
		MTime: info.ModTime(),
		CTime: info.ModTime(),
	}
}

func rawMode(m fs.FileMode) uint32 {
	mode := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		mode |= ModeTypeDir
	case m&fs.ModeSymlink != 0:
		mode |= ModeTypeSymlink
	case m&fs.ModeDevice != 0 && m&fs.ModeCharDevice != 0:
		mode |= ModeTypeChar
	case m&fs.ModeDevice != 0:
		mode |= ModeTypeBlock
	case m&fs.ModeNamedPipe != 0:
		mode |= ModeTypeFIFO
	case m&fs.ModeSocket != 0:
		mode |= ModeTypeSocket
	case m.IsRegular():
		mode |= ModeTypeReg
	}
	if m&fs.ModeSetuid != 0 {
		mode |= ModeSetuid
	}
	if m&fs.ModeSetgid != 0 {
		mode |= ModeSetgid
	}
	if m&fs.ModeSticky != 0 {
		mode |= ModeSticky
	}
	return mode
}
