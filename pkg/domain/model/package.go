package model

import "strings"

// Package represents one releasable package inside the monorepo workspace.
// Instances are read fresh from workspace metadata per run and are never
// mutated afterwards.
type Package struct {
	Name    string // Package name, possibly scoped ("@myorg/pkg")
	Path    string // Repository-relative directory of the package
	Version string // Current version from package metadata, empty if unset
}

// CurrentVersion returns the package version, defaulting to "0.0.0" when the
// package metadata carries no version field
func (p *Package) CurrentVersion() string {
	if p.Version == "" {
		return "0.0.0"
	}
	return p.Version
}

// ShortName returns the package name without any leading "@scope/" segment
func (p *Package) ShortName() string {
	if idx := strings.LastIndex(p.Name, "/"); idx >= 0 {
		return p.Name[idx+1:]
	}
	return p.Name
}

// IsPackageScope reports whether a conventional-commit scope refers to the
// given package name, either by full name or by the name with its leading
// scope segment stripped. Empty scope or name never match.
func IsPackageScope(scope, name string) bool {
	if scope == "" || name == "" {
		return false
	}
	if scope == name {
		return true
	}
	parts := strings.Split(name, "/")
	return scope == parts[len(parts)-1]
}
