package cli

import (
	"github.com/spf13/cobra"

	"github.com/cpritchett/ai-tools/internal/config"
	"github.com/cpritchett/ai-tools/internal/mcpserver"
)

func newServeCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Serve the AGENT.md operations as MCP tools on stdin/stdout. Calls that omit
targetDirectory act on --dir, or the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := resolveDir(dir)
			if err != nil {
				return err
			}
			l, err := a.newLinker()
			if err != nil {
				return err
			}

			srv := mcpserver.New(l, mcpserver.Options{
				Version:      a.build.Version,
				WorkDir:      workDir,
				DefaultTools: config.DefaultTools(),
				Logger:       a.logger,
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Default target directory (default current directory)")
	return cmd
}
