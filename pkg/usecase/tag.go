package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
	"github.com/shiprel/shiprel/pkg/domain/types"
	"github.com/shiprel/shiprel/pkg/utils/retry"
)

type tagUseCase struct {
	git    interfaces.GitClient
	host   interfaces.ReleaseHost
	owner  string
	repo   string
	scheme model.TagScheme
	dryRun bool
	policy retry.Policy
}

// TagOption configures the tag use case
type TagOption func(*tagUseCase)

// WithTagScheme selects the tag naming scheme. Unknown values fall back to
// the standard scheme at format time.
func WithTagScheme(scheme model.TagScheme) TagOption {
	return func(uc *tagUseCase) {
		uc.scheme = scheme
	}
}

// WithDryRun makes both operations log and return before any mutating call
func WithDryRun(enabled bool) TagOption {
	return func(uc *tagUseCase) {
		uc.dryRun = enabled
	}
}

// WithRetryPolicy overrides the backoff policy applied to tag pushes
func WithRetryPolicy(policy retry.Policy) TagOption {
	return func(uc *tagUseCase) {
		uc.policy = policy
	}
}

// NewTag creates a new instance of TagUseCase
func NewTag(git interfaces.GitClient, host interfaces.ReleaseHost, owner, repo string, opts ...TagOption) interfaces.TagUseCase {
	uc := &tagUseCase{
		git:    git,
		host:   host,
		owner:  owner,
		repo:   repo,
		scheme: model.DefaultScheme,
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateTag idempotently creates and pushes the tag for the decision. The
// tag is checked against both the local ref store and the remote before
// creation; if either confirms existence, the tag name is returned without
// any mutation. A failed existence check is treated conservatively as
// absent and creation is attempted anyway.
func (uc *tagUseCase) CreateTag(ctx context.Context, decision *model.VersionDecision) (string, error) {
	logger := ctxlog.From(ctx)
	tag := model.FormatTag(decision.Name, decision.NewVersion, uc.scheme)

	if uc.dryRun {
		logger.Info("dry run: would create and push tag",
			"tag", tag,
			"package", decision.Name,
		)
		return tag, nil
	}

	localExists, err := uc.git.TagExists(ctx, tag)
	if err != nil {
		logger.Warn("local tag check failed, assuming absent", "tag", tag, "error", err)
	} else if localExists {
		logger.Info("tag already exists locally, skipping creation", "tag", tag)
		return tag, nil
	}

	remoteExists, err := uc.host.RefExists(ctx, uc.owner, uc.repo, "tags/"+tag)
	if err != nil {
		logger.Warn("remote tag check failed, assuming absent", "tag", tag, "error", err)
	} else if remoteExists {
		logger.Info("tag already exists on remote, skipping creation", "tag", tag)
		return tag, nil
	}

	message := fmt.Sprintf("Release %s v%s", decision.Name, decision.NewVersion)
	if err := uc.git.CreateTag(ctx, tag, message); err != nil {
		logger.Error("failed to create local tag", "tag", tag, "error", err)
		return "", goerr.Wrap(err, "failed to create tag", goerr.V("tag", tag))
	}

	err = retry.Do(ctx, uc.policy, func(ctx context.Context) error {
		return uc.git.PushTag(ctx, tag)
	})
	if err != nil {
		logger.Error("failed to push tag", "tag", tag, "error", err)
		return "", goerr.Wrap(err, "failed to push tag", goerr.V("tag", tag))
	}

	logger.Info("created and pushed tag", "tag", tag, "package", decision.Name)
	return tag, nil
}

// CreateRelease idempotently publishes a hosting-platform release for the
// decision's tag. An existing release for the same tag is returned
// unchanged.
func (uc *tagUseCase) CreateRelease(ctx context.Context, decision *model.VersionDecision, changelog string) (*model.HostedRelease, error) {
	logger := ctxlog.From(ctx)
	tag := model.FormatTag(decision.Name, decision.NewVersion, uc.scheme)

	if uc.dryRun {
		logger.Info("dry run: would create release",
			"tag", tag,
			"package", decision.Name,
		)
		return nil, nil
	}

	existing, err := uc.host.GetReleaseByTag(ctx, uc.owner, uc.repo, tag)
	switch {
	case err == nil:
		logger.Info("release already exists, skipping creation", "tag", tag, "release_id", existing.ID)
		return existing, nil
	case types.IsNotFound(err):
		logger.Debug("no existing release for tag", "tag", tag)
	default:
		logger.Warn("release existence check failed, attempting creation", "tag", tag, "error", err)
	}

	release := &model.NewRelease{
		TagName:    tag,
		Name:       model.ReleaseTitle(decision.Name, decision.NewVersion),
		Body:       changelog,
		Draft:      false,
		Prerelease: model.IsPrerelease(decision.NewVersion),
	}

	created, err := uc.host.CreateRelease(ctx, uc.owner, uc.repo, release)
	if err != nil {
		logger.Error("failed to create release", "tag", tag, "error", err)
		return nil, goerr.Wrap(err, "failed to create release", goerr.V("tag", tag))
	}

	logger.Info("created release",
		"tag", tag,
		"release_id", created.ID,
		"prerelease", created.Prerelease,
	)
	return created, nil
}
