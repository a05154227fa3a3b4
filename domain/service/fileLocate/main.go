package fileLocate

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/t-kuni/ngpkgsync/domain/repository/file"
)

type FileLocateService struct {
	fileRepository file.Repository
}

func NewFileLocateService(fileRepository file.Repository) *FileLocateService {
	return &FileLocateService{
		fileRepository: fileRepository,
	}
}

// FindAscending looks for fileName in startDir and then in each parent
// directory up to the filesystem root. Subdirectories are never searched.
func (s *FileLocateService) FindAscending(startDir string, fileName string) (string, bool, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, eris.Wrapf(err, "failed to resolve directory: %s", startDir)
	}

	for {
		if !s.fileRepository.Exists(currentDir) {
			return "", false, nil
		}

		path, found, err := s.FindInDir(currentDir, fileName)
		if err != nil || found {
			return path, found, err
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}

// FindInDir looks for fileName among the files directly inside dir. The match
// ignores case; the returned path keeps the name as it is on disk.
func (s *FileLocateService) FindInDir(dir string, fileName string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, eris.Wrapf(err, "failed to resolve directory: %s", dir)
	}

	if !s.fileRepository.Exists(dir) {
		return "", false, nil
	}

	names, err := s.fileRepository.ListFiles(dir)
	if err != nil {
		return "", false, eris.Wrapf(err, "failed to list files: %s", dir)
	}

	for _, name := range names {
		if strings.EqualFold(name, fileName) {
			return filepath.Join(dir, name), true, nil
		}
	}
	return "", false, nil
}
