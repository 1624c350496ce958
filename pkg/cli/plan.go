package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/shiprel/shiprel/pkg/cli/config"
	"github.com/shiprel/shiprel/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdPlan() *cli.Command {
	var (
		releaseCfg config.Release
		repoCfg    config.Repo
	)

	flags := append(releaseCfg.Flags(), repoCfg.Flags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Analyze commits and print the release plan without mutating anything",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			decisions, fileCfg, err := analyzeWorkspace(ctx, c, &repoCfg, &releaseCfg)
			if err != nil {
				return err
			}

			printPlan(decisions, effectiveScheme(ctx, c, &releaseCfg, fileCfg))
			logger.Info("release plan complete", "decision_count", len(decisions))
			return nil
		},
	}
}

// printPlan renders the per-package release plan for human consumption
func printPlan(decisions []*model.VersionDecision, scheme model.TagScheme) {
	if len(decisions) == 0 {
		fmt.Println("No packages need a release.")
		return
	}

	for _, d := range decisions {
		tag := model.FormatTag(d.Name, d.NewVersion, scheme)
		fmt.Printf("%s %s -> %s  %s  (%d commits, tag %s)\n",
			color.CyanString(d.Name),
			d.CurrentVersion,
			color.New(color.Bold).Sprint(d.NewVersion),
			releaseTypeLabel(d.ReleaseType),
			len(d.Commits),
			tag,
		)
	}
}

func releaseTypeLabel(rt model.ReleaseType) string {
	switch rt {
	case model.ReleaseMajor:
		return color.RedString(string(rt))
	case model.ReleaseMinor:
		return color.YellowString(string(rt))
	default:
		return color.GreenString(string(rt))
	}
}
