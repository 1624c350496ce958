package usecase

import (
	"strings"

	"github.com/shiprel/shiprel/pkg/domain/model"
)

// relevantCommits selects the commits attributed to the package, by the
// union of file-path prefix matching and conventional-commit scope matching.
// A single ordered pass keeps source-log order and yields each commit at
// most once even when both criteria match.
func relevantCommits(pkg model.Package, commits []model.Commit, files map[string][]string) []model.Commit {
	prefix := pkg.Path + "/"

	var relevant []model.Commit
	for _, commit := range commits {
		if touchesPath(files[commit.ID], prefix) || model.IsPackageScope(commit.Scope, pkg.Name) {
			relevant = append(relevant, commit)
		}
	}

	return relevant
}

func touchesPath(files []string, prefix string) bool {
	for _, f := range files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}
