//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package ksuid

// IKsuid バックアップ1回分を識別するIDの発行元
type IKsuid interface {
	New() string
}
