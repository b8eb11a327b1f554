package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".web3threat"
	DefaultConfigFile = "config.yaml"
)

// Config holds defaults for the derived tools. Command-line flags win over
// anything set here.
type Config struct {
	// AppPath is the web3-threatmodel binary to run. Empty renders in process.
	AppPath string       `yaml:"app_path"`
	Export  ExportConfig `yaml:"export"`
	Diff    DiffConfig   `yaml:"diff"`
	Search  SearchConfig `yaml:"search"`

	// Path is the file the config was read from, empty when none was found.
	Path string `yaml:"-"`
}

type ExportConfig struct {
	OutDir       string `yaml:"out_dir"`
	Format       string `yaml:"format"`
	HeadingLevel int    `yaml:"heading_level"`
	CodeBlock    bool   `yaml:"code_block"`
}

type DiffConfig struct {
	ContextLines int  `yaml:"context_lines"`
	Color        bool `yaml:"color"`
}

type SearchConfig struct {
	IgnoreCase bool `yaml:"ignore_case"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutDir:       "exports",
			Format:       "md",
			HeadingLevel: 1,
			CodeBlock:    true,
		},
		Diff: DiffConfig{
			ContextLines: 3,
			Color:        true,
		},
	}
}

// DefaultPath returns ~/.web3threat/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(homeDir, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads path over the defaults. An empty path means DefaultPath, and a
// missing default file is not an error. A missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
	}
	cfg.Path = path
	return cfg, nil
}
