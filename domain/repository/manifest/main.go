package manifest

import (
	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
)

const FileName = "package.json"

type Repository interface {
	ReadDescriptor(path string) (*workspace.Descriptor, error)
	ReadTree(path string) (*jsonTree.Node, error)
	// Encode returns the bytes WriteTree would write, or ok=false when the
	// tree is not an object.
	Encode(tree *jsonTree.Node) (data []byte, ok bool, err error)
	WriteTree(path string, tree *jsonTree.Node) error
}
