package workspaceFind

import (
	"path/filepath"

	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
	"github.com/t-kuni/ngpkgsync/domain/service/fileLocate"
	"github.com/t-kuni/ngpkgsync/util/path"
)

type WorkspaceFindService struct {
	fileRepository    FileRepository
	fileLocateService *fileLocate.FileLocateService
}

type FileRepository interface {
	Getwd() (string, error)
}

func NewWorkspaceFindService(fileRepository FileRepository, fileLocateService *fileLocate.FileLocateService) *WorkspaceFindService {
	return &WorkspaceFindService{
		fileRepository:    fileRepository,
		fileLocateService: fileLocateService,
	}
}

// FindWorkspace returns the path of angular.json in the working directory or
// the closest parent directory that has one.
func (s *WorkspaceFindService) FindWorkspace() (string, error) {
	currentDir, err := s.fileRepository.Getwd()
	if err != nil {
		return "", err
	}

	currentDir, err = path.Canonical(currentDir)
	if err != nil {
		return "", err
	}

	descriptorPath, found, err := s.fileLocateService.FindAscending(currentDir, workspace.DescriptorFileName)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &syncError.NotFoundError{
			FileName:  workspace.DescriptorFileName,
			Dir:       currentDir,
			Ascending: true,
		}
	}

	return descriptorPath, nil
}

func (s *WorkspaceFindService) GetWorkspaceRoot(descriptorPath string) string {
	return filepath.Dir(descriptorPath)
}
