package entry

// POSIX file type and permission bits as they appear in st_mode.
const (
	ModeTypeMask     uint32 = 0o170000
	ModeTypeFIFO     uint32 = 0o010000
	ModeTypeChar     uint32 = 0o020000
	ModeTypeDir      uint32 = 0o040000
	ModeTypeBlock    uint32 = 0o060000
	ModeTypeReg      uint32 = 0o100000
	ModeTypeSymlink  uint32 = 0o120000
	ModeTypeSocket   uint32 = 0o140000
	ModeTypeWhiteout uint32 = 0o160000

	ModeSetuid uint32 = 0o4000
	ModeSetgid uint32 = 0o2000
	ModeSticky uint32 = 0o1000

	ModeExecAny uint32 = 0o111
)

// Permissions renders mode the way strmode(3) does, without the trailing
// alternate-access column: a type character followed by three rwx
// triplets, with setuid/setgid shown as s/S and sticky as t/T.
func Permissions(mode uint32) string {
	b := []byte("?---------")

	switch mode & ModeTypeMask {
	case ModeTypeReg:
		b[0] = '-'
	case ModeTypeDir:
		b[0] = 'd'
	case ModeTypeSymlink:
		b[0] = 'l'
	case ModeTypeChar:
		b[0] = 'c'
	case ModeTypeBlock:
		b[0] = 'b'
	case ModeTypeSocket:
		b[0] = 's'
	case ModeTypeFIFO:
		b[0] = 'p'
	case ModeTypeWhiteout:
		b[0] = 'w'
	}

	const rwx = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if mode&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		}
	}

	special := func(idx int, bit uint32, set, unset byte) {
		if mode&bit == 0 {
			return
		}
		if b[idx] == 'x' {
			b[idx] = set
		} else {
			b[idx] = unset
		}
	}
	special(3, ModeSetuid, 's', 'S')
	special(6, ModeSetgid, 's', 'S')
	special(9, ModeSticky, 't', 'T')

	return string(b)
}
