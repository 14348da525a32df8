package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cpritchett/ai-tools/internal/branding"
	"github.com/cpritchett/ai-tools/internal/config"
	"github.com/cpritchett/ai-tools/internal/linker"
	"github.com/cpritchett/ai-tools/internal/logging"
	"github.com/cpritchett/ai-tools/internal/platform"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries state shared by the commands of one invocation.
type app struct {
	build      BuildInfo
	configFile string
	fs         platform.FS
	logger     *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	return newRootCmd(&app{build: build, fs: platform.OS{}})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` makes AGENT.md the single instruction file for AI coding assistants.
Existing tool configs (CLAUDE.md, .cursorrules, ...) are backed up and replaced
with symlinks to AGENT.md, so every assistant reads the same instructions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(a.configFile); err != nil {
				return err
			}
			a.logger = logging.New(cmd.ErrOrStderr(), config.LogLevel(), config.LogFormat())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(
		newSetupCmd(a),
		newToolsCmd(),
		newBackupCmd(a),
		newLinkCmd(a),
		newPromptCmd(a),
		newVerifyCmd(a),
		newServeCmd(a),
		newConfigCmd(),
		newVersionCmd(a),
	)
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd(BuildInfo{Version: version, Commit: commit, Date: date})
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// newLinker builds a Linker from the loaded configuration.
func (a *app) newLinker() (*linker.Linker, error) {
	reg, err := config.Registry()
	if err != nil {
		return nil, err
	}
	return linker.New(a.fs, reg,
		linker.WithLogger(a.logger),
		linker.WithIgnoreBackups(config.GitignoreBackups()),
	), nil
}

// resolveDir returns dir as an absolute path, defaulting to the working directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// addTargetFlags registers the --dir and --tools flags shared by most commands.
func addTargetFlags(cmd *cobra.Command, dir *string, tools *[]string) {
	cmd.Flags().StringVarP(dir, "dir", "d", "", "Target project directory (default current directory)")
	cmd.Flags().StringSliceVarP(tools, "tools", "t", nil, "Comma-separated tool IDs")
}
