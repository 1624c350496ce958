package interfaces

import (
	"context"

	"github.com/shiprel/shiprel/pkg/domain/model"
)

// AnalyzeUseCase resolves which packages need a release and what the next
// version of each is
type AnalyzeUseCase interface {
	// AnalyzeCommits reads history since the last release boundary and
	// produces one decision per package that has relevant commits. Packages
	// without relevant commits yield no decision.
	AnalyzeCommits(ctx context.Context, packages []model.Package) ([]*model.VersionDecision, error)
}

// TagUseCase idempotently creates tags and hosting-platform releases for
// resolved version decisions
type TagUseCase interface {
	// CreateTag creates and pushes the tag for the decision, returning the
	// tag name. Creating an already-existing tag is a no-op, not an error.
	CreateTag(ctx context.Context, decision *model.VersionDecision) (string, error)

	// CreateRelease publishes a hosting-platform release for the decision
	// with the given changelog body. An existing release for the same tag is
	// returned unchanged. In dry-run mode it returns (nil, nil).
	CreateRelease(ctx context.Context, decision *model.VersionDecision, changelog string) (*model.HostedRelease, error)
}

// WorkspaceScanner discovers releasable packages in the monorepo
type WorkspaceScanner interface {
	// Discover returns the packages found under the repository root
	Discover(ctx context.Context, dir string) ([]model.Package, error)
}
