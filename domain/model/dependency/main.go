package dependency

import (
	"fmt"

	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
)

const (
	Dependencies     = "dependencies"
	DevDependencies  = "devDependencies"
	PeerDependencies = "peerDependencies"
)

var (
	DefaultRootSections    = []string{Dependencies, DevDependencies}
	DefaultLibrarySections = []string{Dependencies, PeerDependencies}
)

// Map パッケージ名 -> バージョン文字列
type Map map[string]string

// Section manifest から name のセクションを取り出す。無い場合と null の場合は nil を返す。
// 同じセクションがトップレベルに複数回現れる場合は ParseError
func Section(path string, manifest *jsonTree.Node, name string) (*jsonTree.Node, error) {
	values := manifest.Lookup(name)
	if len(values) > 1 {
		return nil, &syncError.ParseError{
			Path:   path,
			Reason: fmt.Sprintf("%s is declared more than once", name),
		}
	}

	var section *jsonTree.Node
	if len(values) == 1 {
		section = values[0]
	}

	if section.IsNull() {
		return nil, nil
	}
	if section.Kind != jsonTree.Object {
		return nil, &syncError.ParseError{
			Path:   path,
			Reason: fmt.Sprintf("%s must be an object, got %s", name, section.Kind),
		}
	}
	return section, nil
}

// Merge sections を順に1つの Map にまとめる。
// 同じパッケージが2回以上現れた場合はバージョンが同じでも DuplicateKeyError
func Merge(path string, manifest *jsonTree.Node, sections ...string) (Map, error) {
	merged := Map{}
	for _, name := range sections {
		section, err := Section(path, manifest, name)
		if err != nil {
			return nil, err
		}
		if section == nil {
			continue
		}

		for _, m := range section.Members {
			if _, ok := merged[m.Key]; ok {
				return nil, &syncError.DuplicateKeyError{Path: path, Package: m.Key}
			}
			merged[m.Key] = m.Value.Text()
		}
	}
	return merged, nil
}
