//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package timer

import "time"

// ITimer 実行時刻の取得元（履歴ディレクトリの命名に使う）
type ITimer interface {
	Now() time.Time
}
