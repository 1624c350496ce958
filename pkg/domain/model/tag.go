package model

import (
	"strings"
	"unicode"
)

// TagScheme selects the naming strategy for version-control tags in a
// multi-package repository
type TagScheme string

const (
	// SchemeNPM formats tags as "<name>@v<version>", keeping scoped names verbatim
	SchemeNPM TagScheme = "npm"
	// SchemeSlash formats tags as "<cleaned-name>/v<version>"
	SchemeSlash TagScheme = "slash"
	// SchemeStandard formats tags as "v<version>", for single-package repositories
	SchemeStandard TagScheme = "standard"

	// DefaultScheme is used when no scheme is configured
	DefaultScheme = SchemeSlash
)

// Valid reports whether the scheme is one of the known values
func (s TagScheme) Valid() bool {
	switch s {
	case SchemeNPM, SchemeSlash, SchemeStandard:
		return true
	}
	return false
}

// FormatTag deterministically derives the tag name for a package version.
// Unknown schemes fall back to the standard scheme.
func FormatTag(name, version string, scheme TagScheme) string {
	switch scheme {
	case SchemeNPM:
		return name + "@v" + version
	case SchemeSlash:
		cleaned := strings.ReplaceAll(strings.TrimPrefix(name, "@"), "/", "-")
		return cleaned + "/v" + version
	default:
		return "v" + version
	}
}

// ReleaseTitle derives the human-readable release name for a package version:
// the package name with its leading "@" stripped, "/" replaced by spaces and
// every word capitalized, followed by "v<version>"
func ReleaseTitle(name, version string) string {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(name, "@"), "/", " ")
	words := strings.Fields(cleaned)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	if len(words) == 0 {
		return "v" + version
	}
	return strings.Join(words, " ") + " v" + version
}

// prereleaseKeywords are the only version substrings that mark a release as a
// prerelease. Plain substring checks are used instead of semver prerelease
// parsing so the result is stable across all tag schemes.
var prereleaseKeywords = []string{"-alpha", "-beta", "-rc", "-preview", "-canary"}

// IsPrerelease reports whether the version string denotes a prerelease
func IsPrerelease(version string) bool {
	for _, kw := range prereleaseKeywords {
		if strings.Contains(version, kw) {
			return true
		}
	}
	return false
}
