package config

import (
	"github.com/urfave/cli/v3"
)

// Release holds release analysis and tagging configuration
type Release struct {
	ConventionalCommits bool
	TagScheme           string
	DryRun              bool
	MaxCommits          int64
	DiffBatchSize       int64
	PushRetries         int64
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "conventional-commits",
			Usage:       "Parse commit messages as conventional commits",
			Value:       true,
			Destination: &c.ConventionalCommits,
			Sources:     cli.EnvVars("SHIPREL_CONVENTIONAL_COMMITS"),
		},
		&cli.StringFlag{
			Name:        "tag-scheme",
			Usage:       "Tag naming scheme (npm, slash, standard)",
			Value:       "slash",
			Destination: &c.TagScheme,
			Sources:     cli.EnvVars("SHIPREL_TAG_SCHEME"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Log intended actions without creating tags or releases",
			Value:       false,
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("SHIPREL_DRY_RUN"),
		},
		&cli.Int64Flag{
			Name:        "max-commits",
			Usage:       "Maximum commits to analyze when no release tag exists",
			Value:       1000,
			Destination: &c.MaxCommits,
			Sources:     cli.EnvVars("SHIPREL_MAX_COMMITS"),
		},
		&cli.Int64Flag{
			Name:        "diff-batch-size",
			Usage:       "Commits per changed-file query",
			Value:       50,
			Destination: &c.DiffBatchSize,
			Sources:     cli.EnvVars("SHIPREL_DIFF_BATCH_SIZE"),
		},
		&cli.Int64Flag{
			Name:        "push-retries",
			Usage:       "Maximum attempts for pushing a tag",
			Value:       3,
			Destination: &c.PushRetries,
			Sources:     cli.EnvVars("SHIPREL_PUSH_RETRIES"),
		},
	}
}
