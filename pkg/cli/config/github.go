package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds hosting-platform configuration
type GitHub struct {
	Token      string
	Repository string
}

// Flags returns CLI flags for GitHub configuration. Defaults fall back to
// the standard GitHub Actions environment variables.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Target repository as owner/repo",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("SHIPREL_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
	}
}

// OwnerRepo splits the configured repository into owner and name
func (c *GitHub) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", goerr.New("repository must be specified as owner/repo",
			goerr.V("repository", c.Repository),
		)
	}
	return owner, repo, nil
}
