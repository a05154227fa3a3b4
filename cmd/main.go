package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/t-kuni/ngpkgsync/cmd/initCommand"
	"github.com/t-kuni/ngpkgsync/cmd/syncCommand"
	"github.com/t-kuni/ngpkgsync/cmd/versionCommand"
	"github.com/t-kuni/ngpkgsync/domain/service/fileLocate"
	"github.com/t-kuni/ngpkgsync/domain/service/history"
	"github.com/t-kuni/ngpkgsync/domain/service/librarySync"
	"github.com/t-kuni/ngpkgsync/domain/service/manifestDiff"
	"github.com/t-kuni/ngpkgsync/domain/service/projectFilter"
	"github.com/t-kuni/ngpkgsync/domain/service/workspaceFind"
	configRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/config"
	fileRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/file"
	manifestRepo "github.com/t-kuni/ngpkgsync/infrastructure/repository/manifest"
	"github.com/t-kuni/ngpkgsync/infrastructure/system/ksuid"
	"github.com/t-kuni/ngpkgsync/infrastructure/system/timer"
)

const rootUsageTemplate = `Usage:
  {{.CommandPath}} [flags]
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

` + syncCommand.UsageFlags

type RootCommand struct {
	CobraCommand *cobra.Command
}

func NewLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.WarnLevel,
	})
}

func NewRootCommand() *RootCommand {
	logger := NewLogger()
	timerSystem := timer.NewTimer()
	ksuidSystem := ksuid.NewKsuidGenerator(timerSystem)

	fileRepository := fileRepo.NewFileRepository()
	configRepository := configRepo.NewConfigRepository()
	manifestRepository := manifestRepo.NewRepository()

	fileLocateSrv := fileLocate.NewFileLocateService(fileRepository)
	workspaceFindSrv := workspaceFind.NewWorkspaceFindService(fileRepository, fileLocateSrv)
	historySrv := history.NewHistoryService(fileRepository, ksuidSystem, timerSystem)
	librarySyncSrv := librarySync.NewLibrarySyncService(
		manifestRepository,
		fileLocateSrv,
		historySrv,
		manifestDiff.NewManifestDiffService(),
		logger,
	)

	syncCmd := syncCommand.NewSyncCommand(
		workspaceFindSrv,
		fileLocateSrv,
		manifestRepository,
		configRepository,
		projectFilter.NewProjectFilterService(),
		librarySyncSrv,
		logger,
	)

	cmd := &cobra.Command{
		Use:   "ngpkgsync [flags]",
		Short: "Keep Angular library package.json versions in line with the workspace",
		Long: `ngpkgsync finds angular.json in the current or a parent directory and rewrites
the dependencies and peerDependencies of every library project so that they use
the versions declared in the workspace's root package.json.

Running ngpkgsync without a command is the same as running ngpkgsync sync.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               syncCmd.Run,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetUsageTemplate(rootUsageTemplate)

	cmd.AddCommand(syncCmd.CobraCommand)
	cmd.AddCommand(initCommand.NewInitCommand(configRepository, fileRepository, workspaceFindSrv).CobraCommand)
	cmd.AddCommand(versionCommand.NewVersionCommand().CobraCommand)

	return &RootCommand{
		CobraCommand: cmd,
	}
}
