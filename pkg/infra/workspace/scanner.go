package workspace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

const workspaceFile = "pnpm-workspace.yaml"

var defaultGlobs = []string{"packages/*"}

type scanner struct {
	globs []string
}

// New creates a WorkspaceScanner. When no globs are given, they are read
// from pnpm-workspace.yaml in the repository root, falling back to
// "packages/*".
func New(globs ...string) interfaces.WorkspaceScanner {
	return &scanner{globs: globs}
}

type workspaceConfig struct {
	Packages []string `yaml:"packages"`
}

type packageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`
}

// Discover scans the workspace globs for package.json manifests and returns
// one Package per public, named package, sorted by path for a stable run
// order.
func (s *scanner) Discover(ctx context.Context, dir string) ([]model.Package, error) {
	logger := ctxlog.From(ctx)

	globs := s.globs
	if len(globs) == 0 {
		globs = readWorkspaceGlobs(ctx, dir)
	}

	var packages []model.Package
	for _, glob := range globs {
		matches, err := filepath.Glob(filepath.Join(dir, glob))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid workspace glob", goerr.V("glob", glob))
		}

		for _, match := range matches {
			pkg, ok := readPackage(ctx, dir, match)
			if ok {
				packages = append(packages, pkg)
			}
		}
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Path < packages[j].Path
	})

	logger.Info("discovered workspace packages", "count", len(packages))
	return packages, nil
}

// readWorkspaceGlobs loads package globs from pnpm-workspace.yaml. A missing
// or unreadable file falls back to the default globs.
func readWorkspaceGlobs(ctx context.Context, dir string) []string {
	logger := ctxlog.From(ctx)

	data, err := os.ReadFile(filepath.Join(dir, workspaceFile))
	if err != nil {
		logger.Debug("no workspace file, using default globs", "error", err)
		return defaultGlobs
	}

	var cfg workspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("failed to parse workspace file, using default globs", "error", err)
		return defaultGlobs
	}
	if len(cfg.Packages) == 0 {
		return defaultGlobs
	}

	return cfg.Packages
}

func readPackage(ctx context.Context, root, pkgDir string) (model.Package, bool) {
	logger := ctxlog.From(ctx)

	info, err := os.Stat(pkgDir)
	if err != nil || !info.IsDir() {
		return model.Package{}, false
	}

	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return model.Package{}, false
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		logger.Warn("skipping package with unparsable manifest", "dir", pkgDir, "error", err)
		return model.Package{}, false
	}
	if manifest.Name == "" || manifest.Private {
		return model.Package{}, false
	}

	rel, err := filepath.Rel(root, pkgDir)
	if err != nil {
		return model.Package{}, false
	}

	return model.Package{
		Name:    manifest.Name,
		Path:    filepath.ToSlash(rel),
		Version: manifest.Version,
	}, true
}
