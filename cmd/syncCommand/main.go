package syncCommand

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/t-kuni/ngpkgsync/domain/model/dependency"
	"github.com/t-kuni/ngpkgsync/domain/model/syncError"
	"github.com/t-kuni/ngpkgsync/domain/repository/config"
	"github.com/t-kuni/ngpkgsync/domain/repository/manifest"
	"github.com/t-kuni/ngpkgsync/domain/service/fileLocate"
	"github.com/t-kuni/ngpkgsync/domain/service/librarySync"
	"github.com/t-kuni/ngpkgsync/domain/service/projectFilter"
	"github.com/t-kuni/ngpkgsync/domain/service/workspaceFind"
	"github.com/t-kuni/ngpkgsync/ui"
	"github.com/t-kuni/ngpkgsync/util/args"
)

const (
	EnvDryRun  = "NGPKGSYNC_DRY_RUN"
	EnvDiff    = "NGPKGSYNC_DIFF"
	EnvBackup  = "NGPKGSYNC_BACKUP"
	EnvVerbose = "NGPKGSYNC_VERBOSE"
)

var (
	dryRunAliases  = []string{"dry-run", "dr"}
	diffAliases    = []string{"diff"}
	backupAliases  = []string{"backup", "bk"}
	verboseAliases = []string{"verbose", "v"}
	helpAliases    = []string{"help", "h"}
)

const UsageFlags = `Flags:
  -dry-run, -dr   report changes without saving them
  -diff           print a diff of every changed package.json
  -backup, -bk    copy package.json into .ngpkgsync/history before saving
  -verbose, -v    print debug logs to stderr
  -help, -h       show this help
`

type SyncCommand struct {
	CobraCommand *cobra.Command

	workspaceFindService *workspaceFind.WorkspaceFindService
	fileLocateService    *fileLocate.FileLocateService
	manifestRepository   manifest.Repository
	configRepository     config.Repository
	projectFilterService *projectFilter.ProjectFilterService
	librarySyncService   *librarySync.LibrarySyncService
	logger               *log.Logger
}

func NewSyncCommand(
	workspaceFindService *workspaceFind.WorkspaceFindService,
	fileLocateService *fileLocate.FileLocateService,
	manifestRepository manifest.Repository,
	configRepository config.Repository,
	projectFilterService *projectFilter.ProjectFilterService,
	librarySyncService *librarySync.LibrarySyncService,
	logger *log.Logger,
) *SyncCommand {
	c := &SyncCommand{
		workspaceFindService: workspaceFindService,
		fileLocateService:    fileLocateService,
		manifestRepository:   manifestRepository,
		configRepository:     configRepository,
		projectFilterService: projectFilterService,
		librarySyncService:   librarySyncService,
		logger:               logger,
	}

	c.CobraCommand = &cobra.Command{
		Use:   "sync [flags]",
		Short: "Sync library package.json versions with the root package.json",
		Long: `Copy dependency versions from the workspace's root package.json into the
package.json of every library project listed in angular.json. Packages that the
root does not declare are removed from the library.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               c.Run,
	}
	c.CobraCommand.SetUsageTemplate(usageTemplate)

	return c
}

// usageTemplate replaces cobra's flag listing, since flags are matched by util/args.
const usageTemplate = `Usage:
  {{.CommandPath}} [flags]

` + UsageFlags

type options struct {
	librarySync.Options
	Verbose bool
}

// Run is the sync entry point shared by `ngpkgsync` and `ngpkgsync sync`.
func (c *SyncCommand) Run(cmd *cobra.Command, cmdArgs []string) error {
	if args.Exists(cmdArgs, helpAliases...) {
		return cmd.Help()
	}

	c.logger.SetOutput(cmd.ErrOrStderr())
	opts := c.resolveOptions(cmdArgs)
	if opts.Verbose {
		c.logger.SetLevel(log.DebugLevel)
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())

	descriptorPath, err := c.workspaceFindService.FindWorkspace()
	if err != nil {
		return err
	}
	workspaceRoot := c.workspaceFindService.GetWorkspaceRoot(descriptorPath)
	c.logger.Debug("found workspace descriptor", "path", descriptorPath)

	rootManifestPath, found, err := c.fileLocateService.FindInDir(workspaceRoot, manifest.FileName)
	if err != nil {
		return err
	}
	if !found {
		return &syncError.NotFoundError{FileName: manifest.FileName, Dir: workspaceRoot}
	}
	c.logger.Debug("found root manifest", "path", rootManifestPath)

	descriptor, err := c.manifestRepository.ReadDescriptor(descriptorPath)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig(workspaceRoot)
	if err != nil {
		return err
	}
	opts.Backup = opts.Backup || cfg.Backup
	opts.Sections = cfg.LibrarySections

	rootTree, err := c.manifestRepository.ReadTree(rootManifestPath)
	if err != nil {
		return err
	}
	rootDeps, err := dependency.Merge(rootManifestPath, rootTree, cfg.RootSections...)
	if err != nil {
		return err
	}
	c.logger.Debug("collected root dependencies", "count", len(rootDeps))

	filter, err := c.projectFilterService.Load(workspaceRoot)
	if err != nil {
		return err
	}

	var results []librarySync.Result
	for _, project := range descriptor.Libraries(cfg.LibraryType) {
		printer.Info("Library %s (%s)", project.Name, project.Root)

		if filter.Ignored(project) {
			printer.Info("Skipping %s, it is listed in %s", project.Name, projectFilter.IgnoreFileName)
			results = append(results, librarySync.Result{Project: project, Status: librarySync.StatusSkipped})
			continue
		}

		result, err := c.librarySyncService.Sync(printer, workspaceRoot, project, rootDeps, opts.Options)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	if len(results) > 0 {
		printSummary(printer, results)
	}
	return nil
}

func (c *SyncCommand) resolveOptions(cmdArgs []string) options {
	var opts options
	opts.DryRun = args.Exists(cmdArgs, dryRunAliases...) || c.envBool(EnvDryRun)
	opts.ShowDiff = args.Exists(cmdArgs, diffAliases...) || c.envBool(EnvDiff)
	opts.Backup = args.Exists(cmdArgs, backupAliases...) || c.envBool(EnvBackup)
	opts.Verbose = args.Exists(cmdArgs, verboseAliases...) || c.envBool(EnvVerbose)
	return opts
}

func (c *SyncCommand) envBool(name string) bool {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		c.logger.Debug("ignoring invalid environment value", "name", name, "value", value)
		return false
	}
	return b
}

func (c *SyncCommand) loadConfig(workspaceRoot string) (*config.Config, error) {
	configPath, found := c.configRepository.Find(workspaceRoot)
	if !found {
		c.logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}

	c.logger.Debug("loading config", "path", configPath)
	return c.configRepository.Read(configPath)
}

func printSummary(printer *ui.Printer, results []librarySync.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Project.Name,
			r.Project.Root,
			strconv.Itoa(len(r.Updates)),
			strconv.Itoa(len(r.Removals)),
			string(r.Status),
		})
	}
	printer.Table([]string{"Library", "Root", "Updated", "Removed", "Status"}, rows)
}
