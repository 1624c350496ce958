package usecase

import (
	"github.com/leodido/go-conventionalcommits"
	"github.com/shiprel/shiprel/pkg/domain/model"
)

// classify turns raw log records into structured commits. With conventional
// parsing disabled only ID and message are populated. Parsing never fails: a
// message without a recognizable conventional header simply leaves type,
// scope and breaking unset.
func (uc *analyzeUseCase) classify(raws []model.RawCommit) []model.Commit {
	commits := make([]model.Commit, 0, len(raws))

	for _, raw := range raws {
		commit := model.Commit{
			ID:      raw.ID,
			Message: raw.Message(),
		}

		if uc.conventional {
			uc.parseConventional(&commit)
		}

		commits = append(commits, commit)
	}

	return commits
}

func (uc *analyzeUseCase) parseConventional(commit *model.Commit) {
	msg, err := uc.parser.Parse([]byte(commit.Message))
	if err != nil || msg == nil {
		return
	}

	cc, ok := msg.(*conventionalcommits.ConventionalCommit)
	if !ok {
		return
	}

	commit.Type = cc.Type
	if cc.Scope != nil {
		commit.Scope = *cc.Scope
	}
	commit.Breaking = cc.IsBreakingChange()
}
