//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package file

type Repository interface {
	Getwd() (string, error)
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
	Exists(path string) bool
	// ListFiles returns the names of the regular files directly inside dir.
	ListFiles(dir string) ([]string, error)
	MkdirAll(path string) error
}
