package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"
)

func Canonical(baseDir string, uri string) string {
	if filepath.IsAbs(uri) {
		return filepath.Clean(uri)
	}
	return filepath.Join(baseDir, uri)
}

// Exe returns the executable file name for base on the host.
func Exe(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(base, ".exe") {
		return base + ".exe"
	}
	return base
}

// TrimExt removes the extension of file, if any.
func TrimExt(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
