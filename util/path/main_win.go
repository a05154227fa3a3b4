//go:build windows

package path

import (
	"path/filepath"
	"strings"
)

// Canonical os.Getwd と os.MkdirTemp でドライブレターの大文字小文字が揃わないことがあるため大文字に統一する
func Canonical(path string) (string, error) {
	path = filepath.Clean(path)
	if vol := filepath.VolumeName(path); len(vol) == 2 {
		path = strings.ToUpper(vol) + path[2:]
	}
	return path, nil
}
