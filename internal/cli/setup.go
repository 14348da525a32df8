package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cpritchett/ai-tools/internal/config"
	"github.com/cpritchett/ai-tools/internal/linker"
)

func newSetupCmd(a *app) *cobra.Command {
	var (
		dir   string
		tools []string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up AGENT.md and link AI tool configs to it",
		Long: `Create AGENT.md in a git repository, back up existing AI tool configs
into .agent-md-backups/, and replace each tool config with a symlink to AGENT.md.

Without --tools or --all, the tools listed in the default_tools config key are
used, falling back to the built-in defaults (claude, copilot).

Example:
  ai-tools setup
  ai-tools setup --tools claude,cursor,kiro
  ai-tools setup --all --dir ../other-repo`,
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

			ids := tools
			switch {
			case all:
				ids = l.Tools().IDs()
			case len(ids) == 0:
				ids = config.DefaultTools()
			}

			report, err := l.Setup(root, ids)
			if errors.Is(err, linker.ErrNotGitRepository) {
				return fmt.Errorf("%w: %s (run 'git init' first)", linker.ErrNotGitRepository, root)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	addTargetFlags(cmd, &dir, &tools)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Enable every supported tool")
	return cmd
}
