package usecase

import "github.com/shiprel/shiprel/pkg/domain/model"

// defaultBumpTypes maps conventional-commit types to their release severity
func defaultBumpTypes() map[string]model.ReleaseType {
	return map[string]model.ReleaseType{
		"feat":     model.ReleaseMinor,
		"fix":      model.ReleasePatch,
		"perf":     model.ReleasePatch,
		"revert":   model.ReleasePatch,
		"docs":     model.ReleasePatch,
		"style":    model.ReleasePatch,
		"refactor": model.ReleasePatch,
		"test":     model.ReleasePatch,
		"build":    model.ReleasePatch,
		"ci":       model.ReleasePatch,
		"chore":    model.ReleasePatch,
	}
}

// determineReleaseType reduces the package's relevant commits to a single
// release type. A breaking commit short-circuits to major; otherwise the
// highest severity among recognized commit types wins (major > minor >
// patch). Commits without a recognized type contribute nothing. With
// conventional parsing disabled any non-empty commit set yields patch.
func (uc *analyzeUseCase) determineReleaseType(commits []model.Commit) model.ReleaseType {
	if !uc.conventional {
		if len(commits) > 0 {
			return model.ReleasePatch
		}
		return model.ReleaseNone
	}

	result := model.ReleaseNone
	for _, commit := range commits {
		if commit.IsBreaking() {
			return model.ReleaseMajor
		}
		if severity, ok := uc.bumpTypes[commit.Type]; ok && severity.Rank() > result.Rank() {
			result = severity
		}
	}

	return result
}
