package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/cpritchett/ai-tools/internal/branding"
	"github.com/cpritchett/ai-tools/internal/integrations"
	"github.com/cpritchett/ai-tools/internal/manifest"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
	KeyToolsFile        = "tools_file"
	KeyGitignoreBackups = "gitignore_backups"
	KeyDefaultTools     = "default_tools"
)

// Keys lists every supported key in display order.
var Keys = []string{KeyLogLevel, KeyLogFormat, KeyToolsFile, KeyGitignoreBackups, KeyDefaultTools}

// ErrUnknownKey is returned by Set for keys outside Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Dir returns the path to the config directory (~/.ai-tools/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the default config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the directory holding path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyToolsFile, "")
	viper.SetDefault(KeyGitignoreBackups, false)
	viper.SetDefault(KeyDefaultTools, []string{})
}

// Load initializes Viper from the config file and environment. An empty path
// selects the default file, which may be absent. An explicit path must exist.
func Load(path string) error {
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}

	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	if key == KeyDefaultTools {
		return strings.Join(DefaultTools(), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var v any = value
	switch key {
	case KeyGitignoreBackups:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		v = b
	case KeyDefaultTools:
		v = splitList([]string{value})
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	if err := EnsureDir(configFile); err != nil {
		return err
	}

	viper.Set(key, v)

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// LogLevel returns the configured slog level name.
func LogLevel() string { return viper.GetString(KeyLogLevel) }

// LogFormat returns "text" or "json".
func LogFormat() string { return viper.GetString(KeyLogFormat) }

// ToolsFile returns the path of the custom tools file, if any.
func ToolsFile() string { return viper.GetString(KeyToolsFile) }

// GitignoreBackups reports whether setup should ignore the backup directory.
func GitignoreBackups() bool { return viper.GetBool(KeyGitignoreBackups) }

// DefaultTools returns the configured default tool IDs. Environment values
// may be comma or space separated.
func DefaultTools() []string {
	return splitList(viper.GetStringSlice(KeyDefaultTools))
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, f := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, f)
		}
	}
	return out
}

// Registry builds the tool registry: the built-in tools plus any declared in
// the configured tools file.
func Registry() (*integrations.Registry, error) {
	path := ToolsFile()
	if path == "" {
		return integrations.Builtin(), nil
	}

	f, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	reg, err := integrations.WithBuiltins(f.Descriptors())
	if err != nil {
		return nil, fmt.Errorf("loading tools from %s: %w", path, err)
	}
	return reg, nil
}
