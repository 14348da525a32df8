package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	var (
		dir   string
		tools []string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that AGENT.md exists and each tool links to it",
		Long: `Report the state of AGENT.md and each tool config without changing
anything. Exits with status 1 when AGENT.md is missing or any tool is not
linked. Without --tools every supported tool is checked.`,
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
			v, err := l.Verify(root, tools)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			if !v.OK() {
				return exitError(1, "verification failed for %s", root)
			}
			return nil
		},
	}

	addTargetFlags(cmd, &dir, &tools)
	return cmd
}
