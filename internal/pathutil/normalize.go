package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize returns a canonical filesystem path string.
// It removes trailing slashes, collapses "." and "..", and
// preserves relative paths when provided.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.Clean(path)
}

// Join appends name to dir without cleaning, so listed paths keep the
// spelling the user typed ("./a" stays "./a/b"). An empty dir yields name.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// Parent returns the directory containing path. The filesystem root and
// "." are their own parents.
func Parent(path string) string {
	clean := Normalize(path)
	if clean == "/" || clean == "." {
		return clean
	}
	return filepath.Dir(clean)
}
