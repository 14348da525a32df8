package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPromptCmd(a *app) *cobra.Command {
	var backupDir string

	cmd := &cobra.Command{
		Use:   "prompt <file>...",
		Short: "Generate the integration prompt for backed-up configs",
		Long: `Write integration-prompt.md into the backup directory. Each argument is the
original path of a backed-up config; its copy is looked up in the backup
directory by file name and skipped when absent.

Example:
  ai-tools prompt --backup-dir .agent-md-backups CLAUDE.md .cursorrules`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(backupDir)
			if err != nil {
				return err
			}
			l, err := a.newLinker()
			if err != nil {
				return err
			}
			path, err := l.GenerateGuidance(dir, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Integration prompt generated at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&backupDir, "backup-dir", "", "Directory containing the backed-up files")
	_ = cmd.MarkFlagRequired("backup-dir")
	return cmd
}
