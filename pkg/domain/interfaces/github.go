package interfaces

import (
	"context"

	"github.com/shiprel/shiprel/pkg/domain/model"
)

// ReleaseHost defines operations against the hosting platform's release API.
// Absence of a release is reported via a types.TagNotFound tagged error so
// callers can distinguish "does not exist" from infrastructure failure.
type ReleaseHost interface {
	// GetReleaseByTag returns the release published for the exact tag name.
	// A missing release yields an error satisfying types.IsNotFound.
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.HostedRelease, error)

	// CreateRelease publishes a new release for the given tag
	CreateRelease(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.HostedRelease, error)

	// RefExists reports whether the given ref (e.g. "tags/pkg/v1.2.0") exists
	// on the remote. (false, nil) means confirmed absence; a non-nil error
	// means the check itself failed.
	RefExists(ctx context.Context, owner, repo, ref string) (bool, error)
}
