package usecase

import (
	"context"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
	"github.com/m-mizutani/ctxlog"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
)

const defaultMaxCommits = 1000

type analyzeUseCase struct {
	git          interfaces.GitClient
	conventional bool
	bumpTypes    map[string]model.ReleaseType
	maxCommits   int
	parser       conventionalcommits.Machine
}

// AnalyzeOption configures the analyze use case
type AnalyzeOption func(*analyzeUseCase)

// WithConventionalCommits enables or disables conventional-commit parsing.
// When disabled, any relevant commit yields a patch release.
func WithConventionalCommits(enabled bool) AnalyzeOption {
	return func(uc *analyzeUseCase) {
		uc.conventional = enabled
	}
}

// WithBumpTypes overrides the severity mapped to individual commit types.
// Types not present in the override keep their default severity.
func WithBumpTypes(overrides map[string]model.ReleaseType) AnalyzeOption {
	return func(uc *analyzeUseCase) {
		for t, rt := range overrides {
			uc.bumpTypes[t] = rt
		}
	}
}

// WithMaxCommits caps how much history is analyzed when no release tag exists
func WithMaxCommits(n int) AnalyzeOption {
	return func(uc *analyzeUseCase) {
		if n > 0 {
			uc.maxCommits = n
		}
	}
}

// NewAnalyze creates a new instance of AnalyzeUseCase
func NewAnalyze(git interfaces.GitClient, opts ...AnalyzeOption) interfaces.AnalyzeUseCase {
	uc := &analyzeUseCase{
		git:          git,
		conventional: true,
		bumpTypes:    defaultBumpTypes(),
		maxCommits:   defaultMaxCommits,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.parser = parser.NewMachine(
		conventionalcommits.WithTypes(conventionalcommits.TypesConventional),
		conventionalcommits.WithBestEffort(),
	)

	return uc
}

// AnalyzeCommits reads history since the last release boundary and resolves
// one version decision per package with relevant commits
func (uc *analyzeUseCase) AnalyzeCommits(ctx context.Context, packages []model.Package) ([]*model.VersionDecision, error) {
	logger := ctxlog.From(ctx)

	lastTag, err := uc.git.LatestTag(ctx)
	if err != nil {
		logger.Warn("failed to determine last release tag, analyzing full history", "error", err)
		lastTag = ""
	}

	raws, err := uc.git.Log(ctx, lastTag, uc.maxCommits)
	if err != nil {
		logger.Warn("failed to read history, treating as empty", "error", err)
		raws = nil
	}
	if len(raws) == 0 {
		logger.Info("no commits since last release", "last_tag", lastTag)
		return nil, nil
	}

	commits := uc.classify(raws)

	ids := make([]string, len(commits))
	for i, c := range commits {
		ids[i] = c.ID
	}
	files, err := uc.git.ChangedFiles(ctx, ids)
	if err != nil {
		logger.Warn("failed to resolve changed files, attribution falls back to scopes", "error", err)
		files = nil
	}

	logger.Info("analyzing commits",
		"last_tag", lastTag,
		"commit_count", len(commits),
		"package_count", len(packages),
	)

	var decisions []*model.VersionDecision
	for _, pkg := range packages {
		relevant := relevantCommits(pkg, commits, files)
		if len(relevant) == 0 {
			logger.Debug("no relevant commits for package", "package", pkg.Name)
			continue
		}

		releaseType := uc.determineReleaseType(relevant)
		if releaseType == model.ReleaseNone {
			logger.Debug("no release-worthy commits for package",
				"package", pkg.Name,
				"commit_count", len(relevant),
			)
			continue
		}

		current := pkg.CurrentVersion()
		next, err := nextVersion(current, releaseType)
		if err != nil {
			logger.Warn("dropping package with unresolvable version bump",
				"package", pkg.Name,
				"current_version", current,
				"release_type", releaseType,
				"error", err,
			)
			continue
		}

		logger.Info("resolved package release",
			"package", pkg.Name,
			"current_version", current,
			"new_version", next,
			"release_type", releaseType,
			"commit_count", len(relevant),
		)

		decisions = append(decisions, &model.VersionDecision{
			Package:        pkg,
			CurrentVersion: current,
			NewVersion:     next,
			ReleaseType:    releaseType,
			Commits:        relevant,
		})
	}

	return decisions, nil
}
