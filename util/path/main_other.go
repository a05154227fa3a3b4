//go:build !darwin && !windows

package path

import "path/filepath"

func Canonical(path string) (string, error) {
	return filepath.Clean(path), nil
}
