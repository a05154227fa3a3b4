package history

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/t-kuni/ngpkgsync/domain/repository/file"
	"github.com/t-kuni/ngpkgsync/domain/system/ksuid"
	"github.com/t-kuni/ngpkgsync/domain/system/timer"
)

const BaseDir = ".ngpkgsync"

// externalDir holds backups of files outside the workspace root. Each ".."
// segment of their relative path becomes "__".
const externalDir = "_external"

// HistoryService keeps copies of manifests before they are overwritten.
// One run directory is created lazily per service instance.
type HistoryService struct {
	fileRepository file.Repository
	ksuid          ksuid.IKsuid
	timer          timer.ITimer

	runDir string
}

func NewHistoryService(fileRepository file.Repository, ksuid ksuid.IKsuid, timer timer.ITimer) *HistoryService {
	return &HistoryService{
		fileRepository: fileRepository,
		ksuid:          ksuid,
		timer:          timer,
	}
}

// Backup copies the file at path into
// <workspaceRoot>/.ngpkgsync/history/<id>/<path relative to workspaceRoot>
// and returns the destination. The destination is always inside the run
// directory.
func (s *HistoryService) Backup(workspaceRoot string, path string) (string, error) {
	runDir, err := s.ensureRunDir(workspaceRoot)
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(workspaceRoot, path)
	if err != nil {
		return "", eris.Wrapf(err, "failed to get relative path: %s", path)
	}

	content, err := s.fileRepository.Read(path)
	if err != nil {
		return "", eris.Wrapf(err, "failed to read %s", path)
	}

	dest := filepath.Join(runDir, confine(relPath))
	if err := s.fileRepository.Write(dest, content); err != nil {
		return "", eris.Wrapf(err, "failed to write backup: %s", dest)
	}
	return dest, nil
}

func (s *HistoryService) ensureRunDir(workspaceRoot string) (string, error) {
	if s.runDir != "" {
		return s.runDir, nil
	}

	runDir := filepath.Join(workspaceRoot, BaseDir, "history", s.ksuid.New())
	if err := s.fileRepository.MkdirAll(runDir); err != nil {
		return "", eris.Wrapf(err, "failed to create history directory: %s", runDir)
	}

	timeFile := filepath.Join(runDir, s.timer.Now().Format("2006-01-02T15:04:05"))
	if err := s.fileRepository.Write(timeFile, nil); err != nil {
		return "", eris.Wrapf(err, "failed to create %s", timeFile)
	}

	s.runDir = runDir
	return runDir, nil
}

func confine(relPath string) string {
	parts := strings.Split(relPath, string(filepath.Separator))
	if parts[0] != ".." {
		return relPath
	}
	for i, part := range parts {
		if part == ".." {
			parts[i] = "__"
		}
	}
	return filepath.Join(append([]string{externalDir}, parts...)...)
}
