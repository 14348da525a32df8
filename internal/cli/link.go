package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	var (
		dir   string
		tools []string
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create symlinks from AI tool configs to AGENT.md",
		Long: `Create a relative symlink to AGENT.md at each tool config path that does
not exist yet. Existing files and links are reported and left alone. Without
--tools every supported tool is linked.`,
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
			report, err := l.Link(root, tools)
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
