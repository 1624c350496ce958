package usecase

import (
	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/domain/model"
)

// nextVersion applies the release type to the current version. The result
// must compare strictly greater than the current version; anything else
// indicates a broken current version or increment and yields an error so the
// caller can drop the decision.
func nextVersion(current string, releaseType model.ReleaseType) (string, error) {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return "", goerr.Wrap(err, "unparseable current version", goerr.V("version", current))
	}

	var next semver.Version
	switch releaseType {
	case model.ReleaseMajor:
		next = cur.IncMajor()
	case model.ReleaseMinor:
		next = cur.IncMinor()
	case model.ReleasePatch:
		next = cur.IncPatch()
	default:
		return "", goerr.New("no version bump for release type", goerr.V("release_type", releaseType))
	}

	if !next.GreaterThan(cur) {
		return "", goerr.New("computed version does not increase",
			goerr.V("current", current),
			goerr.V("next", next.String()),
		)
	}

	return next.String(), nil
}
