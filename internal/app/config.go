package app

import (
	"errors"
	"fmt"

	"github.com/vk/routergen/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// TargetDir receives the generated program and the snapshot.
	TargetDir string
	// CheckChanges allows skipping the run when the dependency set is
	// unchanged since the last successful build.
	CheckChanges bool

	DepsPath   string // dependency list file or directory of .hcl files
	DepsInline string // dependency list blob, wins over DepsPath
	DepsFormat config.SourceFormat

	// ToolConfigPath is an optional HCL file overriding config.DefaultTool.
	ToolConfigPath string

	LogFormat string
	LogLevel  string
	// LogFile, when set, receives the diagnostic log instead of the output
	// writer.
	LogFile string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TargetDir == "" {
		return nil, errors.New("TargetDir is a required configuration field and cannot be empty")
	}
	if cfg.DepsPath == "" && cfg.DepsInline == "" {
		return nil, errors.New("either a dependency list path or an inline dependency list is required")
	}

	switch cfg.DepsFormat {
	case "":
		cfg.DepsFormat = config.FormatAuto
	case config.FormatAuto, config.FormatJSON, config.FormatYAML, config.FormatHCL:
	default:
		return nil, fmt.Errorf("unsupported dependency list format %q", cfg.DepsFormat)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}

// source describes where the loader reads the dependency list from.
func (c *Config) source() config.Source {
	return config.Source{
		Path:   c.DepsPath,
		Inline: c.DepsInline,
		Format: c.DepsFormat,
	}
}
