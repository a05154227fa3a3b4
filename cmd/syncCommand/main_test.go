package syncCommand

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/domain/service/fileLocate"
	"github.com/t-kuni/ngpkgsync/domain/service/history"
	"github.com/t-kuni/ngpkgsync/domain/service/librarySync"
	"github.com/t-kuni/ngpkgsync/domain/service/manifestDiff"
	"github.com/t-kuni/ngpkgsync/domain/service/projectFilter"
	"github.com/t-kuni/ngpkgsync/domain/service/workspaceFind"
	"github.com/t-kuni/ngpkgsync/domain/system/ksuid"
	"github.com/t-kuni/ngpkgsync/domain/system/timer"
	configRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/config"
	fileRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/file"
	manifestRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/manifest"
	"github.com/t-kuni/ngpkgsync/testUtil"
	"go.uber.org/mock/gomock"
)

const angularJson = `{
  "version": 1,
  "projects": {
    "ui": {"projectType": "library", "root": "projects/ui"},
    "app": {"projectType": "application", "root": "projects/app"},
    "core": {"projectType": "Library", "root": "projects/core"},
    "forms": {"projectType": "library", "root": "projects/forms"}
  }
}`

const rootPackageJson = `{
  "name": "workspace",
  "dependencies": {"react": "18.0.0", "rxjs": "~7.8.0"},
  "devDependencies": {"typescript": "5.0.0"}
}`

const uiPackageJson = `{
  "name": "ui",
  "version": "0.0.1",
  "peerDependencies": {"react": "17.0.0", "lodash": "4.0.0"},
  "dependencies": {"rxjs": "~7.8.0"}
}`

const corePackageJson = `{
  "name": "core",
  "dependencies": {"typescript": "4.9.0"}
}`

const appPackageJson = `{"name": "app", "dependencies": {"lodash": "4.0.0"}}`

type runResult struct {
	out *bytes.Buffer
	err error
}

func newCommand(t *testing.T, mockCtrl *gomock.Controller) *cobra.Command {
	t.Helper()

	mockKsuid := ksuid.NewMockIKsuid(mockCtrl)
	mockKsuid.EXPECT().New().Return("2Zd1ksuid").AnyTimes()
	mockTimer := timer.NewMockITimer(mockCtrl)
	mockTimer.EXPECT().Now().Return(testUtil.NewTime("2022-01-01T00:00:00Z")).AnyTimes()

	logger := log.New(io.Discard)
	fileRepository := fileRepo.NewFileRepository()
	manifestRepository := manifestRepo.NewRepository()
	fileLocateSrv := fileLocate.NewFileLocateService(fileRepository)

	syncCmd := NewSyncCommand(
		workspaceFind.NewWorkspaceFindService(fileRepository, fileLocateSrv),
		fileLocateSrv,
		manifestRepository,
		configRepo.NewConfigRepository(),
		projectFilter.NewProjectFilterService(),
		librarySync.NewLibrarySyncService(
			manifestRepository,
			fileLocateSrv,
			history.NewHistoryService(fileRepository, mockKsuid, mockTimer),
			manifestDiff.NewManifestDiffService(),
			logger,
		),
		logger,
	)

	cmd := &cobra.Command{SilenceErrors: true, SilenceUsage: true}
	cmd.AddCommand(syncCmd.CobraCommand)
	return cmd
}

func run(t *testing.T, mockCtrl *gomock.Controller, args ...string) runResult {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := newCommand(t, mockCtrl)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"sync"}, args...))

	return runResult{out: out, err: cmd.Execute()}
}

func clearEnv(t *testing.T) {
	for _, name := range []string{EnvDryRun, EnvDiff, EnvBackup, EnvVerbose} {
		t.Setenv(name, "")
	}
}

func writeWorkspace(space testUtil.Space) {
	space.WriteFile("angular.json", []byte(angularJson))
	space.WriteFile("package.json", []byte(rootPackageJson))
	space.WriteFile("projects/ui/package.json", []byte(uiPackageJson))
	space.WriteFile("projects/core/package.json", []byte(corePackageJson))
	space.WriteFile("projects/app/package.json", []byte(appPackageJson))
	space.MkDir("projects/forms")
}

func TestSyncCommand(t *testing.T) {
	t.Run("ライブラリのpackage.jsonがルートのバージョンに揃うこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile("projects/ui/package.json", func(actual []byte) {
			expect := `{
  "name": "ui",
  "version": "0.0.1",
  "peerDependencies": {
    "react": "18.0.0"
  },
  "dependencies": {
    "rxjs": "~7.8.0"
  }
}
`
			assert.Equal(t, expect, string(actual))
		})
		space.AssertFile("projects/core/package.json", func(actual []byte) {
			expect := `{
  "name": "core",
  "dependencies": {
    "typescript": "5.0.0"
  }
}
`
			assert.Equal(t, expect, string(actual))
		})
		space.AssertFile("projects/app/package.json", func(actual []byte) {
			assert.Equal(t, appPackageJson, string(actual))
		})

		out := result.out.String()
		assert.Contains(t, out, "react From peerDependencies - 17.0.0 -> 18.0.0")
		assert.Contains(t, out, "typescript From dependencies - 4.9.0 -> 5.0.0")
		assert.Contains(t, out, "Removing the following packages:\nlodash\n")
		assert.Contains(t, out, "[WARN] package.json file could not be found in projects/forms for library forms.")
		assert.Contains(t, out, "Library")
		assert.Contains(t, out, "skipped")
		assert.Contains(t, out, "saved")
		assert.NotContains(t, out, "Library app")
	})

	t.Run("2回目の実行では何も変更されないこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)

		first := run(t, mockCtrl)
		assert.NoError(t, first.err)
		ui := space.ReadFile("projects/ui/package.json")
		core := space.ReadFile("projects/core/package.json")

		second := run(t, mockCtrl)
		assert.NoError(t, second.err)

		assert.Equal(t, ui, space.ReadFile("projects/ui/package.json"))
		assert.Equal(t, core, space.ReadFile("projects/core/package.json"))
		assert.Equal(t, 2, bytes.Count(second.out.Bytes(), []byte("No changes were necessary")))
		assert.NotContains(t, second.out.String(), "Updating the following packages:")
	})

	t.Run("ドライランではファイルが変更されないこと", func(t *testing.T) {
		for _, flag := range []string{"-dr", "-dry-run", "--DRY-RUN"} {
			t.Run(flag, func(t *testing.T) {
				mockCtrl := gomock.NewController(t)
				defer mockCtrl.Finish()
				clearEnv(t)

				space := testUtil.BeginTestSpace(t)
				defer space.CleanUp()
				writeWorkspace(space)

				result := run(t, mockCtrl, flag)
				assert.NoError(t, result.err)

				space.AssertFile("projects/ui/package.json", func(actual []byte) {
					assert.Equal(t, uiPackageJson, string(actual))
				})
				space.AssertFile("projects/core/package.json", func(actual []byte) {
					assert.Equal(t, corePackageJson, string(actual))
				})
				assert.Equal(t, 2, bytes.Count(result.out.Bytes(), []byte("Dry run is enabled, changes have not been saved")))
			})
		}
	})

	t.Run("環境変数でドライランを有効にできること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)
		t.Setenv(EnvDryRun, "true")

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile("projects/ui/package.json", func(actual []byte) {
			assert.Equal(t, uiPackageJson, string(actual))
		})
	})

	t.Run("不正な環境変数の値は無視されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)
		t.Setenv(EnvDryRun, "maybe")

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile("projects/core/package.json", func(actual []byte) {
			assert.Contains(t, string(actual), `"typescript": "5.0.0"`)
		})
	})

	t.Run("3階層上のangular.jsonが見つかること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("ws/angular.json", []byte(`{"projects": {"ui": {"projectType": "library", "root": "projects/ui"}}}`))
		space.WriteFile("ws/package.json", []byte(rootPackageJson))
		space.WriteFile("ws/projects/ui/package.json", []byte(uiPackageJson))
		space.WriteFile("ws/sibling/angular.json", []byte(`{`))
		space.WriteFile("ws/a/b/c/d/angular.json", []byte(`{`))
		space.MkDir("ws/a/b/c")

		assert.NoError(t, os.Chdir(filepath.Join(space.Dir, "ws", "a", "b", "c")))

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile(filepath.Join(space.Dir, "ws", "projects", "ui", "package.json"), func(actual []byte) {
			assert.Contains(t, string(actual), `"react": "18.0.0"`)
		})
	})

	t.Run("angular.jsonが見つからない場合はエラーになること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		result := run(t, mockCtrl)

		var notFound *syncError.NotFoundError
		assert.True(t, errors.As(result.err, &notFound))
		assert.Equal(t, "angular.json", notFound.FileName)
		assert.True(t, notFound.Ascending)
	})

	t.Run("ルートのpackage.jsonが無い場合はエラーになること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		space.WriteFile("angular.json", []byte(angularJson))

		result := run(t, mockCtrl)

		var notFound *syncError.NotFoundError
		assert.True(t, errors.As(result.err, &notFound))
		assert.Equal(t, "package.json", notFound.FileName)
		assert.Equal(t, space.Dir, notFound.Dir)
		assert.False(t, notFound.Ascending)
	})

	t.Run("ルートのpackage.jsonに重複がある場合は何も書き換えずにエラーになること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)
		space.WriteFile("package.json", []byte(`{"dependencies": {"react": "18.0.0"}, "devDependencies": {"react": "18.0.0"}}`))

		result := run(t, mockCtrl)

		var dup *syncError.DuplicateKeyError
		assert.True(t, errors.As(result.err, &dup))
		assert.Equal(t, "react", dup.Package)
		assert.Equal(t, filepath.Join(space.Dir, "package.json"), dup.Path)
		space.AssertFile("projects/ui/package.json", func(actual []byte) {
			assert.Equal(t, uiPackageJson, string(actual))
		})
	})

	t.Run("ライブラリのセクション内に重複がある場合はエラーになること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)
		space.WriteFile("projects/ui/package.json", []byte(`{"dependencies": {"a": "1.0.0", "a": "1.0.0"}}`))

		result := run(t, mockCtrl)

		var dup *syncError.DuplicateKeyError
		assert.True(t, errors.As(result.err, &dup))
		assert.Equal(t, "a", dup.Package)
		assert.Equal(t, filepath.Join(space.Dir, "projects", "ui", "package.json"), dup.Path)
	})

	t.Run("除外ファイルに記載されたライブラリはスキップされること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)
		space.WriteFile(".ngpkgsyncignore", []byte("projects/core\n"))

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile("projects/core/package.json", func(actual []byte) {
			assert.Equal(t, corePackageJson, string(actual))
		})
		space.AssertFile("projects/ui/package.json", func(actual []byte) {
			assert.Contains(t, string(actual), `"react": "18.0.0"`)
		})
		assert.Contains(t, result.out.String(), "[INFO] Skipping core, it is listed in .ngpkgsyncignore")
	})

	t.Run("設定ファイルの内容が反映されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)
		space.WriteFile("ngpkgsync.yml", []byte(`
library-sections:
  - peerDependencies
backup: true
`))

		result := run(t, mockCtrl)
		assert.NoError(t, result.err)

		space.AssertFile("projects/core/package.json", func(actual []byte) {
			assert.Equal(t, corePackageJson, string(actual))
		})
		space.AssertFile(".ngpkgsync/history/2Zd1ksuid/projects/ui/package.json", func(actual []byte) {
			assert.Equal(t, uiPackageJson, string(actual))
		})
		space.AssertExistPath(".ngpkgsync/history/2Zd1ksuid/2022-01-01T00:00:00")
	})

	t.Run("バックアップが取られること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()
		writeWorkspace(space)

		result := run(t, mockCtrl, "-bk")
		assert.NoError(t, result.err)

		space.AssertFile(".ngpkgsync/history/2Zd1ksuid/projects/ui/package.json", func(actual []byte) {
			assert.Equal(t, uiPackageJson, string(actual))
		})
		space.AssertFile(".ngpkgsync/history/2Zd1ksuid/projects/core/package.json", func(actual []byte) {
			assert.Equal(t, corePackageJson, string(actual))
		})
		space.AssertNotExistPath(".ngpkgsync/history/2Zd1ksuid/projects/app")
	})

	t.Run("ヘルプが表示されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		clearEnv(t)

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		result := run(t, mockCtrl, "-h")
		assert.NoError(t, result.err)
		assert.Contains(t, result.out.String(), "-dry-run, -dr")
	})
}
