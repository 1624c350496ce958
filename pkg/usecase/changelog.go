package usecase

import (
	"fmt"
	"strings"

	"github.com/shiprel/shiprel/pkg/domain/model"
)

// RenderChangelog produces the release body for a decision: one bullet per
// relevant commit in source-log order
func RenderChangelog(decision *model.VersionDecision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s v%s\n\n", decision.Name, decision.NewVersion)
	for _, commit := range decision.Commits {
		fmt.Fprintf(&b, "- %s (%s)\n", commit.Subject(), commit.ShortID())
	}

	return b.String()
}
