package librarySync

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/t-kuni/ngpkgsync/domain/model/dependency"
	"github.com/t-kuni/ngpkgsync/domain/model/jsonTree"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/domain/model/workspace"
	"github.com/t-kuni/ngpkgsync/domain/repository/manifest"
	"github.com/t-kuni/ngpkgsync/domain/service/fileLocate"
	"github.com/t-kuni/ngpkgsync/domain/service/history"
	"github.com/t-kuni/ngpkgsync/domain/service/manifestDiff"
	"github.com/t-kuni/ngpkgsync/ui"
)

const diffContext = 2

type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusDryRun    Status = "dry-run"
	StatusSaved     Status = "saved"
	StatusSkipped   Status = "skipped"
)

// Update ルートのバージョンに置き換えたパッケージ
type Update struct {
	Package string
	Section string
	From    string
	To      string
}

func (u Update) String() string {
	return fmt.Sprintf("From %s - %s -> %s", u.Section, u.From, u.To)
}

// Removal ルートに存在しないため削除したパッケージ
type Removal struct {
	Package string
	Section string
}

type Result struct {
	Project  workspace.NamedProject
	Manifest string
	Updates  []Update
	Removals []Removal
	Status   Status
}

func (r Result) Changed() bool {
	return len(r.Updates) > 0 || len(r.Removals) > 0
}

type Options struct {
	DryRun   bool
	ShowDiff bool
	Backup   bool
	Sections []string
}

type LibrarySyncService struct {
	manifestRepository  manifest.Repository
	fileLocateService   *fileLocate.FileLocateService
	historyService      *history.HistoryService
	manifestDiffService *manifestDiff.ManifestDiffService
	logger              *log.Logger
}

func NewLibrarySyncService(
	manifestRepository manifest.Repository,
	fileLocateService *fileLocate.FileLocateService,
	historyService *history.HistoryService,
	manifestDiffService *manifestDiff.ManifestDiffService,
	logger *log.Logger,
) *LibrarySyncService {
	return &LibrarySyncService{
		manifestRepository:  manifestRepository,
		fileLocateService:   fileLocateService,
		historyService:      historyService,
		manifestDiffService: manifestDiffService,
		logger:              logger,
	}
}

// Sync ライブラリの package.json の依存セクションを root に合わせて書き換える。
// package.json が無い場合は警告を出してスキップし、それ以外の失敗はエラーを返す
func (s *LibrarySyncService) Sync(
	printer *ui.Printer,
	workspaceRoot string,
	project workspace.NamedProject,
	root dependency.Map,
	opts Options,
) (Result, error) {
	result := Result{Project: project}

	projectDir := filepath.Join(workspaceRoot, project.Root)
	manifestPath, found, err := s.fileLocateService.FindInDir(projectDir, manifest.FileName)
	if err != nil {
		return result, err
	}
	if !found {
		printer.Warn("%s file could not be found in %s for library %s.", manifest.FileName, project.Root, project.Name)
		result.Status = StatusSkipped
		return result, nil
	}
	result.Manifest = manifestPath
	s.logger.Debug("syncing library", "project", project.Name, "manifest", manifestPath)

	tree, err := s.manifestRepository.ReadTree(manifestPath)
	if err != nil {
		return result, err
	}

	var before []byte
	if opts.ShowDiff {
		before, _, err = s.manifestRepository.Encode(tree)
		if err != nil {
			return result, err
		}
	}

	for _, sectionName := range opts.Sections {
		section, err := dependency.Section(manifestPath, tree, sectionName)
		if err != nil {
			return result, err
		}
		if section == nil {
			continue
		}

		rewritten, updates, removals, err := ReconcileSection(manifestPath, sectionName, section, root)
		if err != nil {
			return result, err
		}
		tree.Set(sectionName, rewritten)
		result.Updates = append(result.Updates, updates...)
		result.Removals = append(result.Removals, removals...)
	}

	if !result.Changed() {
		printer.Println("No changes were necessary")
		result.Status = StatusUnchanged
		return result, nil
	}

	printChanges(printer, result)

	if opts.ShowDiff {
		after, _, err := s.manifestRepository.Encode(tree)
		if err != nil {
			return result, err
		}
		printer.Diff(s.manifestDiffService.Diff(string(before), string(after), diffContext))
	}

	if opts.DryRun {
		printer.Println("Dry run is enabled, changes have not been saved")
		result.Status = StatusDryRun
		return result, nil
	}

	if opts.Backup {
		dest, err := s.historyService.Backup(workspaceRoot, manifestPath)
		if err != nil {
			return result, err
		}
		s.logger.Debug("backed up manifest", "from", manifestPath, "to", dest)
	}

	if err := s.manifestRepository.WriteTree(manifestPath, tree); err != nil {
		return result, err
	}
	s.logger.Debug("wrote manifest", "path", manifestPath)
	result.Status = StatusSaved
	return result, nil
}

// ReconcileSection 1つのセクションの置き換え後の内容を作る。
// root に無いパッケージは削除、バージョンが異なるものは root のバージョンに置き換え、一致するものは元の値のまま
func ReconcileSection(
	path string,
	sectionName string,
	section *jsonTree.Node,
	root dependency.Map,
) (*jsonTree.Node, []Update, []Removal, error) {
	rewritten := jsonTree.NewObject()
	var updates []Update
	var removals []Removal

	seen := make(map[string]bool, len(section.Members))
	for _, m := range section.Members {
		if seen[m.Key] {
			return nil, nil, nil, &syncError.DuplicateKeyError{Path: path, Package: m.Key}
		}
		seen[m.Key] = true

		rootVersion, ok := root[m.Key]
		if !ok {
			removals = append(removals, Removal{Package: m.Key, Section: sectionName})
			continue
		}

		declared := m.Value.Text()
		if declared == rootVersion {
			rewritten.AppendMember(m)
			continue
		}

		m.Value = jsonTree.NewString(rootVersion)
		rewritten.AppendMember(m)
		updates = append(updates, Update{Package: m.Key, Section: sectionName, From: declared, To: rootVersion})
	}

	return rewritten, updates, removals, nil
}

func printChanges(printer *ui.Printer, result Result) {
	if len(result.Updates) > 0 {
		printer.Println("Updating the following packages:")
		for _, u := range result.Updates {
			printer.Printf("%s %s\n", u.Package, u)
		}
	}

	if len(result.Removals) > 0 {
		printer.Println("Removing the following packages:")
		for _, r := range result.Removals {
			printer.Println(r.Package)
		}
	}
}
