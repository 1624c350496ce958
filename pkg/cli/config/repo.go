package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/shiprel/shiprel/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

const defaultConfigFile = ".shiprel.toml"

// Repo holds repository location configuration
type Repo struct {
	Dir        string
	ConfigPath string
}

// Flags returns CLI flags for repository configuration
func (c *Repo) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo-dir",
			Usage:       "Path to the repository root",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("SHIPREL_REPO_DIR"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the repo config file (default <repo-dir>/.shiprel.toml)",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("SHIPREL_CONFIG"),
		},
	}
}

// FileConfig is the repo-level configuration read from .shiprel.toml.
// Explicit CLI flags take precedence over file values.
type FileConfig struct {
	TagScheme           string            `toml:"tag_scheme"`
	ConventionalCommits *bool             `toml:"conventional_commits"`
	BumpTypes           map[string]string `toml:"bump_types"`
	Packages            []string          `toml:"packages"`
}

// Load reads the repo config file. A missing file is not an error and
// yields an empty config.
func (c *Repo) Load(ctx context.Context) (*FileConfig, error) {
	logger := ctxlog.From(ctx)

	path := c.ConfigPath
	if path == "" {
		path = filepath.Join(c.Dir, defaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && c.ConfigPath == "" {
			logger.Debug("no repo config file", "path", path)
			return &FileConfig{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	logger.Debug("loaded repo config", "path", path)
	return &cfg, nil
}

// BumpTypeOverrides converts the bump_types table to release types,
// skipping entries with unknown severities
func (c *FileConfig) BumpTypeOverrides(ctx context.Context) map[string]model.ReleaseType {
	logger := ctxlog.From(ctx)

	overrides := make(map[string]model.ReleaseType, len(c.BumpTypes))
	for commitType, severity := range c.BumpTypes {
		rt := model.ReleaseType(severity)
		switch rt {
		case model.ReleaseMajor, model.ReleaseMinor, model.ReleasePatch:
			overrides[commitType] = rt
		default:
			logger.Warn("ignoring bump type with unknown severity",
				"type", commitType,
				"severity", severity,
			)
		}
	}

	return overrides
}
