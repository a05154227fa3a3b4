package projectFilter

import (
	"os"
	"path/filepath"

	"github.com/denormal/go-gitignore"
	"github.com/rotisserie/eris"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
)

const IgnoreFileName = ".ngpkgsyncignore"

type ProjectFilterService struct{}

func NewProjectFilterService() *ProjectFilterService {
	return &ProjectFilterService{}
}

// Filter is the loaded ignore file of one workspace. The zero value ignores nothing.
type Filter struct {
	root   string
	ignore gitignore.GitIgnore
}

// Load reads <workspaceRoot>/.ngpkgsyncignore when it exists.
func (s *ProjectFilterService) Load(workspaceRoot string) (*Filter, error) {
	ignorePath := filepath.Join(workspaceRoot, IgnoreFileName)
	ignore, err := gitignore.NewFromFile(ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Filter{root: workspaceRoot}, nil
		}
		return nil, eris.Wrapf(err, "failed to load %s", ignorePath)
	}

	return &Filter{root: workspaceRoot, ignore: ignore}, nil
}

// Ignored reports whether the project's root directory matches the ignore file.
func (f *Filter) Ignored(project workspace.NamedProject) bool {
	if f == nil || f.ignore == nil {
		return false
	}

	projectDir := filepath.Join(f.root, project.Root)
	if projectDir == f.root {
		return false
	}

	match := f.ignore.Absolute(projectDir, true)
	return match != nil && match.Ignore()
}
