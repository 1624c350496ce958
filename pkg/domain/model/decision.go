package model

// ReleaseType represents which semantic-version component to increment
type ReleaseType string

const (
	ReleaseMajor ReleaseType = "major"
	ReleaseMinor ReleaseType = "minor"
	ReleasePatch ReleaseType = "patch"
	ReleaseNone  ReleaseType = "none"
)

// Rank returns the precedence of the release type (major > minor > patch > none)
func (r ReleaseType) Rank() int {
	switch r {
	case ReleaseMajor:
		return 3
	case ReleaseMinor:
		return 2
	case ReleasePatch:
		return 1
	default:
		return 0
	}
}

// VersionDecision is the resolved release unit for one package: the version
// bump to perform and the commits that justify it. Produced once per run and
// never persisted.
type VersionDecision struct {
	Package

	CurrentVersion string
	NewVersion     string
	ReleaseType    ReleaseType
	Commits        []Commit // Relevant commits in source-log order
}

// HostedRelease is a release object returned by the hosting platform
type HostedRelease struct {
	ID         int64
	TagName    string
	Name       string
	URL        string
	Prerelease bool
}

// NewRelease describes a release to be created on the hosting platform
type NewRelease struct {
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}
