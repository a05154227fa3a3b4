package manifest

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
	"github.com/t-kuni/ngpkgsync/domain/repository/manifest"
)

type repositoryImpl struct{}

func NewRepository() manifest.Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ReadDescriptor(path string) (*workspace.Descriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", path)
	}

	tree, err := jsonTree.Parse(content)
	if err != nil {
		return nil, &syncError.ParseError{Path: path, Err: err}
	}
	if tree.Kind != jsonTree.Object {
		return nil, &syncError.ParseError{Path: path, Reason: "root value must be an object, got " + tree.Kind.String()}
	}
	if count := len(tree.Lookup(workspace.ProjectsKey)); count > 1 {
		return nil, &syncError.ParseError{Path: path, Reason: workspace.ProjectsKey + " is declared more than once"}
	}

	var descriptor workspace.Descriptor
	if err := json.Unmarshal(content, &descriptor); err != nil {
		return nil, &syncError.ParseError{Path: path, Err: err}
	}
	if descriptor.Projects == nil {
		return nil, &syncError.ParseError{Path: path, Reason: "projects is missing"}
	}
	if len(descriptor.Projects) == 0 {
		return nil, &syncError.ParseError{Path: path, Reason: "does not have any projects"}
	}

	return &descriptor, nil
}

func (r *repositoryImpl) ReadTree(path string) (*jsonTree.Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", path)
	}

	tree, err := jsonTree.Parse(content)
	if err != nil {
		return nil, &syncError.ParseError{Path: path, Err: err}
	}
	if tree.Kind != jsonTree.Object {
		return nil, &syncError.ParseError{Path: path, Reason: "root value must be an object, got " + tree.Kind.String()}
	}

	return tree, nil
}

func (r *repositoryImpl) Encode(tree *jsonTree.Node) ([]byte, bool, error) {
	if tree == nil || tree.Kind != jsonTree.Object {
		return nil, false, nil
	}

	content, err := tree.Indent()
	if err != nil {
		return nil, false, err
	}
	return append(content, '\n'), true, nil
}

func (r *repositoryImpl) WriteTree(path string, tree *jsonTree.Node) error {
	content, ok, err := r.Encode(tree)
	if err != nil {
		return eris.Wrapf(err, "failed to encode %s", path)
	}
	if !ok {
		return nil
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
