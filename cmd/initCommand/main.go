package initCommand

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/t-kuni/ngpkgsync/domain/repository/config"
	"github.com/t-kuni/ngpkgsync/domain/repository/file"
	"github.com/t-kuni/ngpkgsync/domain/service/history"
	"github.com/t-kuni/ngpkgsync/domain/service/workspaceFind"
)

const gitignoreEntry = "/" + history.BaseDir

type InitCommand struct {
	CobraCommand *cobra.Command
}

func NewInitCommand(
	configRepository config.Repository,
	fileRepository file.Repository,
	workspaceFindService *workspaceFind.WorkspaceFindService,
) *InitCommand {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a ngpkgsync.yml in the workspace root",
		Long:  `Create a ngpkgsync.yml with the default settings next to angular.json and add the backup directory to .gitignore.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptorPath, err := workspaceFindService.FindWorkspace()
			if err != nil {
				return err
			}
			rootDir := workspaceFindService.GetWorkspaceRoot(descriptorPath)

			if existing, found := configRepository.Find(rootDir); found {
				return fmt.Errorf("%s already exists", existing)
			}

			configPath := filepath.Join(rootDir, config.FileNames[0])
			if err := configRepository.Write(configPath, config.Default()); err != nil {
				return err
			}

			if err := addGitignoreEntry(fileRepository, rootDir); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
			return nil
		},
	}

	return &InitCommand{
		CobraCommand: cmd,
	}
}

func addGitignoreEntry(fileRepository file.Repository, rootDir string) error {
	gitignorePath := filepath.Join(rootDir, ".gitignore")

	var content string
	if fileRepository.Exists(gitignorePath) {
		data, err := fileRepository.Read(gitignorePath)
		if err != nil {
			return err
		}
		content = string(data)
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == gitignoreEntry {
			return nil
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += gitignoreEntry + "\n"

	return fileRepository.Write(gitignorePath, []byte(content))
}
