package interfaces

import (
	"context"

	"github.com/shiprel/shiprel/pkg/domain/model"
)

// GitClient defines the revision-history operations the core needs from the
// local repository. Implementations wrap the git command line; test doubles
// implement the same interface.
type GitClient interface {
	// LatestTag returns the most recent tag reachable from HEAD, or an empty
	// string when the repository has no tags yet. Absence is not an error.
	LatestTag(ctx context.Context) (string, error)

	// Log returns the commits reachable from HEAD after the given tag, newest
	// first. When sinceTag is empty the full history is returned, capped at
	// maxCount entries.
	Log(ctx context.Context, sinceTag string, maxCount int) ([]model.RawCommit, error)

	// ChangedFiles returns the repo-relative paths touched by each of the
	// given commits, keyed by commit ID. Commits whose file list cannot be
	// determined map to an empty list.
	ChangedFiles(ctx context.Context, commitIDs []string) (map[string][]string, error)

	// TagExists reports whether the tag exists in the local ref store
	TagExists(ctx context.Context, tag string) (bool, error)

	// CreateTag creates an annotated tag at HEAD with the given message
	CreateTag(ctx context.Context, tag, message string) error

	// PushTag pushes the tag ref to the default remote
	PushTag(ctx context.Context, tag string) error
}
