//go:build darwin

package path

import "path/filepath"

// Canonical macの場合、/var/folders/... と /private/var/folders/... が同じフォルダを指すため
// シンボリックリンクを解決して /private に統一する。存在しないパスはそのまま返す
func Canonical(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path, nil
	}
	return resolved, nil
}
