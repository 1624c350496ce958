package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/cli/config"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
	gitinfra "github.com/shiprel/shiprel/pkg/infra/git"
	githubinfra "github.com/shiprel/shiprel/pkg/infra/github"
	"github.com/shiprel/shiprel/pkg/infra/workspace"
	"github.com/shiprel/shiprel/pkg/usecase"
	"github.com/shiprel/shiprel/pkg/utils/async"
	"github.com/shiprel/shiprel/pkg/utils/retry"
	"github.com/urfave/cli/v3"
)

func cmdRelease() *cli.Command {
	var (
		githubCfg  config.GitHub
		releaseCfg config.Release
		repoCfg    config.Repo
	)

	flags := append(githubCfg.Flags(), releaseCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "release",
		Aliases: []string{"r"},
		Usage:   "Analyze commits, then create tags and releases per package",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			decisions, fileCfg, err := analyzeWorkspace(ctx, c, &repoCfg, &releaseCfg)
			if err != nil {
				return err
			}
			if len(decisions) == 0 {
				logger.Info("nothing to release")
				fmt.Println("No packages need a release.")
				return nil
			}

			scheme := effectiveScheme(ctx, c, &releaseCfg, fileCfg)

			var owner, repo string
			var host interfaces.ReleaseHost
			if !releaseCfg.DryRun {
				if githubCfg.Token == "" {
					return goerr.New("a GitHub token is required unless --dry-run is set")
				}
				owner, repo, err = githubCfg.OwnerRepo()
				if err != nil {
					return err
				}
				host = githubinfra.NewClient(githubCfg.Token)
			}

			gitClient := gitinfra.New(repoCfg.Dir,
				gitinfra.WithBatchSize(int(releaseCfg.DiffBatchSize)),
			)

			policy := retry.DefaultPolicy()
			policy.Attempts = int(releaseCfg.PushRetries)

			tagUC := usecase.NewTag(gitClient, host, owner, repo,
				usecase.WithTagScheme(scheme),
				usecase.WithDryRun(releaseCfg.DryRun),
				usecase.WithRetryPolicy(policy),
			)

			results := async.Map(ctx, decisions, func(ctx context.Context, d *model.VersionDecision) (string, error) {
				tag, err := tagUC.CreateTag(ctx, d)
				if err != nil {
					return "", err
				}
				if _, err := tagUC.CreateRelease(ctx, d, usecase.RenderChangelog(d)); err != nil {
					return tag, err
				}
				return tag, nil
			})

			var failed int
			for i, r := range results {
				if r.Err != nil {
					failed++
					fmt.Printf("%s %s: %v\n", color.RedString("FAIL"), decisions[i].Name, r.Err)
					continue
				}
				fmt.Printf("%s %s %s -> %s (%s)\n",
					color.GreenString("OK"),
					decisions[i].Name,
					decisions[i].CurrentVersion,
					decisions[i].NewVersion,
					r.Value,
				)
			}

			if failed > 0 {
				return goerr.New("some package releases failed",
					goerr.V("failed", failed),
					goerr.V("total", len(decisions)),
				)
			}

			logger.Info("release run complete",
				"package_count", len(decisions),
				"dry_run", releaseCfg.DryRun,
			)
			return nil
		},
	}
}

// analyzeWorkspace discovers packages and resolves version decisions,
// merging repo-file configuration under explicit CLI flags
func analyzeWorkspace(ctx context.Context, c *cli.Command, repoCfg *config.Repo, releaseCfg *config.Release) ([]*model.VersionDecision, *config.FileConfig, error) {
	logger := ctxlog.From(ctx)

	fileCfg, err := repoCfg.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	conventional := releaseCfg.ConventionalCommits
	if !c.IsSet("conventional-commits") && fileCfg.ConventionalCommits != nil {
		conventional = *fileCfg.ConventionalCommits
	}

	scanner := workspace.New(fileCfg.Packages...)
	packages, err := scanner.Discover(ctx, repoCfg.Dir)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to discover workspace packages")
	}
	if len(packages) == 0 {
		logger.Info("no packages found in workspace", "dir", repoCfg.Dir)
		return nil, fileCfg, nil
	}

	gitClient := gitinfra.New(repoCfg.Dir,
		gitinfra.WithBatchSize(int(releaseCfg.DiffBatchSize)),
	)

	analyzer := usecase.NewAnalyze(gitClient,
		usecase.WithConventionalCommits(conventional),
		usecase.WithBumpTypes(fileCfg.BumpTypeOverrides(ctx)),
		usecase.WithMaxCommits(int(releaseCfg.MaxCommits)),
	)

	decisions, err := analyzer.AnalyzeCommits(ctx, packages)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to analyze commits")
	}

	return decisions, fileCfg, nil
}

// effectiveScheme resolves the tag scheme from flags and the repo config
// file, warning about unknown values which fall back to standard formatting
func effectiveScheme(ctx context.Context, c *cli.Command, releaseCfg *config.Release, fileCfg *config.FileConfig) model.TagScheme {
	logger := ctxlog.From(ctx)

	scheme := model.TagScheme(releaseCfg.TagScheme)
	if !c.IsSet("tag-scheme") && fileCfg.TagScheme != "" {
		scheme = model.TagScheme(fileCfg.TagScheme)
	}
	if !scheme.Valid() {
		logger.Warn("unknown tag scheme, falling back to standard", "scheme", scheme)
	}

	return scheme
}
