package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/shiprel/shiprel/pkg/cli/config"
	"github.com/shiprel/shiprel/pkg/domain/model"
)

func TestRepo_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	content := `
tag_scheme = "npm"
conventional_commits = false
packages = ["libs/*", "apps/*"]

[bump_types]
perf = "minor"
docs = "none-of-the-above"
`
	gt.NoError(t, os.WriteFile(filepath.Join(dir, ".shiprel.toml"), []byte(content), 0644))

	repo := &config.Repo{Dir: dir}
	cfg, err := repo.Load(ctx)

	gt.NoError(t, err)
	gt.Value(t, cfg.TagScheme).Equal("npm")
	gt.Value(t, *cfg.ConventionalCommits).Equal(false)
	gt.Value(t, cfg.Packages).Equal([]string{"libs/*", "apps/*"})

	overrides := cfg.BumpTypeOverrides(ctx)
	gt.Value(t, overrides["perf"]).Equal(model.ReleaseMinor)

	// Unknown severities are skipped, not errors
	_, ok := overrides["docs"]
	gt.Value(t, ok).Equal(false)
}

func TestRepo_Load_MissingFileIsEmptyConfig(t *testing.T) {
	ctx := context.Background()

	repo := &config.Repo{Dir: t.TempDir()}
	cfg, err := repo.Load(ctx)

	gt.NoError(t, err)
	gt.Value(t, cfg.TagScheme).Equal("")
	gt.Number(t, len(cfg.Packages)).Equal(0)
}

func TestRepo_Load_ExplicitMissingPathIsError(t *testing.T) {
	ctx := context.Background()

	repo := &config.Repo{
		Dir:        t.TempDir(),
		ConfigPath: filepath.Join(t.TempDir(), "nope.toml"),
	}
	_, err := repo.Load(ctx)

	gt.Error(t, err)
}

func TestRepo_Load_InvalidTOML(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	gt.NoError(t, os.WriteFile(filepath.Join(dir, ".shiprel.toml"), []byte("tag_scheme = [broken"), 0644))

	repo := &config.Repo{Dir: dir}
	_, err := repo.Load(ctx)

	gt.Error(t, err)
}
