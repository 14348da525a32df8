// Package config manages user-level settings stored at ~/.ai-tools/config.yaml.
// Values can be overridden with AITOOLS_-prefixed environment variables. The
// settings cover logging, the optional custom tools file, and the tool
// selection used when setup is run without explicit tools.
package config
