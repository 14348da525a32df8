package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	var (
		dir   string
		tools []string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Move existing AI tool configs into .agent-md-backups/",
		Long: `Copy each real (non-symlink) tool config into .agent-md-backups/ and
remove the original. Without --tools every supported tool is checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveDir(dir)
			if err != nil {
				return err
			}
			l, err := a.newLinker()
			if err != nil {
				return err
			}
			report, err := l.Backup(root, tools)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	addTargetFlags(cmd, &dir, &tools)
	return cmd
}
