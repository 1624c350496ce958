package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
)

const (
	// fieldSep and recordSep delimit git log output. The ASCII unit and
	// record separators never appear in commit text written by humans, and
	// git can emit them directly via %x1f / %x1e format escapes.
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	logFormat  = "--pretty=format:%H" + "%x1f" + "%s" + "%x1f" + "%b" + "%x1e"
	showFormat = "--pretty=format:%x1e%H"

	defaultBatchSize = 50
)

// CommandResult holds the captured output of one git invocation
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a git command and captures its output. A non-zero exit
// code is reported through ExitCode, not through the error; the error is
// reserved for failures to run the command at all.
type Runner interface {
	Run(ctx context.Context, args ...string) (*CommandResult, error)
}

type execRunner struct {
	dir string
}

func (r *execRunner) Run(ctx context.Context, args ...string) (*CommandResult, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, goerr.Wrap(err, "failed to run git", goerr.V("args", args))
		}
		return &CommandResult{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitErr.ExitCode(),
		}, nil
	}

	return &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}, nil
}

type client struct {
	runner    Runner
	batchSize int
}

// Option configures the git client
type Option func(*client)

// WithRunner replaces the command runner, mainly for tests
func WithRunner(r Runner) Option {
	return func(c *client) {
		c.runner = r
	}
}

// WithBatchSize sets how many commits are queried per diff invocation
func WithBatchSize(n int) Option {
	return func(c *client) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// New creates a GitClient operating on the repository at dir
func New(dir string, opts ...Option) interfaces.GitClient {
	c := &client{
		runner:    &execRunner{dir: dir},
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestTag returns the most recent tag reachable from HEAD. A repository
// without tags yields an empty string and no error.
func (c *client) LatestTag(ctx context.Context) (string, error) {
	logger := ctxlog.From(ctx)

	result, err := c.runner.Run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", goerr.Wrap(err, "failed to look up latest tag")
	}
	if result.ExitCode != 0 {
		// No tags yet: expected on the first release of a repository
		logger.Debug("no release tag found in history", "stderr", strings.TrimSpace(result.Stderr))
		return "", nil
	}

	return strings.TrimSpace(result.Stdout), nil
}

// Log returns the raw commits reachable from HEAD after sinceTag, newest
// first. A failed history read is non-fatal: it logs a warning and yields an
// empty sequence.
func (c *client) Log(ctx context.Context, sinceTag string, maxCount int) ([]model.RawCommit, error) {
	logger := ctxlog.From(ctx)

	args := []string{"log", logFormat}
	if sinceTag != "" {
		args = append(args, sinceTag+"..HEAD")
	} else {
		args = append(args, "-n", strconv.Itoa(maxCount))
	}

	result, err := c.runner.Run(ctx, args...)
	if err != nil {
		logger.Warn("failed to read commit history, treating as empty", "error", err)
		return nil, nil
	}
	if result.ExitCode != 0 {
		logger.Warn("git log failed, treating history as empty",
			"exit_code", result.ExitCode,
			"stderr", strings.TrimSpace(result.Stderr),
		)
		return nil, nil
	}

	return parseLog(result.Stdout), nil
}

// parseLog splits sentinel-delimited git log output into raw commits.
// Records with fewer than two fields are retained in degraded form with the
// remainder as the subject.
func parseLog(out string) []model.RawCommit {
	var commits []model.RawCommit

	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 3)
		if len(fields) < 2 {
			id, rest, _ := strings.Cut(fields[0], " ")
			commits = append(commits, model.RawCommit{
				ID:      strings.TrimSpace(id),
				Subject: strings.TrimSpace(rest),
			})
			continue
		}

		commit := model.RawCommit{
			ID:      strings.TrimSpace(fields[0]),
			Subject: strings.TrimSpace(fields[1]),
		}
		if len(fields) > 2 {
			commit.Body = strings.TrimSpace(fields[2])
		}
		commits = append(commits, commit)
	}

	return commits
}

// ChangedFiles returns the files touched by each commit. Commits are queried
// in batches; a failing batch degrades to per-commit queries, and a failing
// individual query floors at an empty file list so attribution never aborts
// the run.
func (c *client) ChangedFiles(ctx context.Context, commitIDs []string) (map[string][]string, error) {
	logger := ctxlog.From(ctx)
	files := make(map[string][]string, len(commitIDs))

	for start := 0; start < len(commitIDs); start += c.batchSize {
		end := start + c.batchSize
		if end > len(commitIDs) {
			end = len(commitIDs)
		}
		batch := commitIDs[start:end]

		args := append([]string{"show", "--name-only", showFormat}, batch...)
		result, err := c.runner.Run(ctx, args...)
		if err == nil && result.ExitCode == 0 {
			for id, list := range parseNameOnly(result.Stdout) {
				files[id] = list
			}
			continue
		}

		logger.Warn("batched file query failed, falling back to per-commit queries",
			"batch_size", len(batch),
			"error", err,
		)

		for _, id := range batch {
			result, err := c.runner.Run(ctx, "show", "--name-only", showFormat, id)
			if err != nil || result.ExitCode != 0 {
				logger.Warn("file query failed for commit, assuming no files",
					"commit", id,
					"error", err,
				)
				files[id] = nil
				continue
			}
			for cid, list := range parseNameOnly(result.Stdout) {
				files[cid] = list
			}
		}
	}

	return files, nil
}

// parseNameOnly splits marker-delimited `git show --name-only` output into a
// commit ID → file list map. Each record starts with the commit hash on its
// own line followed by the touched paths.
func parseNameOnly(out string) map[string][]string {
	files := make(map[string][]string)

	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		lines := strings.Split(record, "\n")
		id := strings.TrimSpace(lines[0])
		if id == "" {
			continue
		}

		var list []string
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line != "" {
				list = append(list, line)
			}
		}
		files[id] = list
	}

	return files
}

// TagExists reports whether the tag exists in the local ref store
func (c *client) TagExists(ctx context.Context, tag string) (bool, error) {
	result, err := c.runner.Run(ctx, "rev-parse", "--verify", "--quiet", "refs/tags/"+tag)
	if err != nil {
		return false, goerr.Wrap(err, "failed to check local tag", goerr.V("tag", tag))
	}
	return result.ExitCode == 0, nil
}

// CreateTag creates an annotated tag at HEAD
func (c *client) CreateTag(ctx context.Context, tag, message string) error {
	result, err := c.runner.Run(ctx, "tag", "-a", tag, "-m", message)
	if err != nil {
		return goerr.Wrap(err, "failed to create tag", goerr.V("tag", tag))
	}
	if result.ExitCode != 0 {
		return goerr.New("git tag failed",
			goerr.V("tag", tag),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("stderr", strings.TrimSpace(result.Stderr)),
		)
	}
	return nil
}

// PushTag pushes the tag ref to the origin remote
func (c *client) PushTag(ctx context.Context, tag string) error {
	result, err := c.runner.Run(ctx, "push", "origin", "refs/tags/"+tag)
	if err != nil {
		return goerr.Wrap(err, "failed to push tag", goerr.V("tag", tag))
	}
	if result.ExitCode != 0 {
		return goerr.New("git push failed",
			goerr.V("tag", tag),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("stderr", strings.TrimSpace(result.Stderr)),
		)
	}
	return nil
}
