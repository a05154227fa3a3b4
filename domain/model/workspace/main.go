package workspace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
)

const (
	DescriptorFileName = "angular.json"
	LibraryProjectType = "library"
	ProjectsKey        = "projects"
)

// Project angular.json の projects 配下の1エントリ
type Project struct {
	ProjectType string `json:"projectType"`
	// Root ワークスペースルートからの相対パス
	Root string `json:"root"`
}

type NamedProject struct {
	Name string
	Project
}

// Projects angular.json に書かれた順序を保持する
type Projects []NamedProject

func (p *Projects) UnmarshalJSON(data []byte) error {
	node, err := jsonTree.Parse(data)
	if err != nil {
		return err
	}
	if node.IsNull() {
		*p = nil
		return nil
	}
	if node.Kind != jsonTree.Object {
		return fmt.Errorf("projects must be an object, got %s", node.Kind)
	}

	projects := make(Projects, 0, len(node.Members))
	seen := make(map[string]bool, len(node.Members))
	for _, m := range node.Members {
		if seen[m.Key] {
			return fmt.Errorf("project %q is declared more than once", m.Key)
		}
		seen[m.Key] = true

		var project Project
		if err := json.Unmarshal(m.Value.Compact(), &project); err != nil {
			return fmt.Errorf("project %q: %w", m.Key, err)
		}
		projects = append(projects, NamedProject{Name: m.Key, Project: project})
	}
	*p = projects
	return nil
}

type Descriptor struct {
	Projects Projects `json:"projects"`
}

// Libraries projectType が一致するプロジェクトを返す（大文字小文字は区別しない）
func (d *Descriptor) Libraries(projectType string) []NamedProject {
	var libraries []NamedProject
	for _, p := range d.Projects {
		if strings.EqualFold(p.ProjectType, projectType) {
			libraries = append(libraries, p)
		}
	}
	return libraries
}
