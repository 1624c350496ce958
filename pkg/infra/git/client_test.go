package git_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	gitinfra "github.com/shiprel/shiprel/pkg/infra/git"
)

// stubRunner routes git invocations to a test-provided function
type stubRunner struct {
	runFunc func(args ...string) (*gitinfra.CommandResult, error)
	calls   [][]string
}

func (s *stubRunner) Run(ctx context.Context, args ...string) (*gitinfra.CommandResult, error) {
	s.calls = append(s.calls, args)
	return s.runFunc(args...)
}

func TestLatestTag(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{Stdout: "myorg-package/v1.0.0\n"}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	tag, err := client.LatestTag(ctx)

	gt.NoError(t, err)
	gt.Value(t, tag).Equal("myorg-package/v1.0.0")
}

func TestLatestTag_NoTags(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{
				Stderr:   "fatal: No names found, cannot describe anything.",
				ExitCode: 128,
			}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	tag, err := client.LatestTag(ctx)

	// Absence of tags is the empty-history case, not an error
	gt.NoError(t, err)
	gt.Value(t, tag).Equal("")
}

func TestLog_ParsesSentinelRecords(t *testing.T) {
	ctx := context.Background()

	out := strings.Join([]string{
		"aaa111", "\x1f", "feat: add pagination", "\x1f", "some body text", "\x1e",
		"\nbbb222", "\x1f", "fix: rounding", "\x1f", "", "\x1e",
	}, "")

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			gt.Value(t, args[0]).Equal("log")
			return &gitinfra.CommandResult{Stdout: out}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	commits, err := client.Log(ctx, "", 1000)

	gt.NoError(t, err)
	gt.Number(t, len(commits)).Equal(2)
	gt.Value(t, commits[0].ID).Equal("aaa111")
	gt.Value(t, commits[0].Subject).Equal("feat: add pagination")
	gt.Value(t, commits[0].Body).Equal("some body text")
	gt.Value(t, commits[1].ID).Equal("bbb222")
	gt.Value(t, commits[1].Body).Equal("")
}

func TestLog_MalformedRecordRetainedDegraded(t *testing.T) {
	ctx := context.Background()

	out := "ccc333 leftover text without separators\x1e"
	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{Stdout: out}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	commits, err := client.Log(ctx, "", 1000)

	gt.NoError(t, err)
	gt.Number(t, len(commits)).Equal(1)
	gt.Value(t, commits[0].ID).Equal("ccc333")
	gt.Value(t, commits[0].Subject).Equal("leftover text without separators")
}

func TestLog_SinceTagUsesRange(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			gt.Value(t, args[len(args)-1]).Equal("pkg/v1.0.0..HEAD")
			return &gitinfra.CommandResult{}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	_, err := client.Log(ctx, "pkg/v1.0.0", 1000)
	gt.NoError(t, err)
}

func TestLog_FailureYieldsEmpty(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return nil, errors.New("git not installed")
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	commits, err := client.Log(ctx, "", 1000)

	gt.NoError(t, err)
	gt.Number(t, len(commits)).Equal(0)
}

func TestChangedFiles_BatchedQuery(t *testing.T) {
	ctx := context.Background()

	out := "\x1eaaa111\n\npackages/pkg/index.js\npackages/pkg/util.js\n" +
		"\x1ebbb222\n\nREADME.md\n"

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{Stdout: out}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	files, err := client.ChangedFiles(ctx, []string{"aaa111", "bbb222"})

	gt.NoError(t, err)
	gt.Number(t, len(runner.calls)).Equal(1)
	gt.Value(t, files["aaa111"]).Equal([]string{"packages/pkg/index.js", "packages/pkg/util.js"})
	gt.Value(t, files["bbb222"]).Equal([]string{"README.md"})
}

func TestChangedFiles_BatchFallsBackToIndividual(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{}
	runner.runFunc = func(args ...string) (*gitinfra.CommandResult, error) {
		// Batched form carries both IDs; fail it to force the fallback
		if strings.Contains(strings.Join(args, " "), "aaa111 bbb222") {
			return &gitinfra.CommandResult{ExitCode: 128, Stderr: "bad object"}, nil
		}
		id := args[len(args)-1]
		return &gitinfra.CommandResult{Stdout: "\x1e" + id + "\n\npackages/pkg/" + id + ".js\n"}, nil
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	files, err := client.ChangedFiles(ctx, []string{"aaa111", "bbb222"})

	gt.NoError(t, err)
	gt.Number(t, len(runner.calls)).Equal(3)
	gt.Value(t, files["aaa111"]).Equal([]string{"packages/pkg/aaa111.js"})
	gt.Value(t, files["bbb222"]).Equal([]string{"packages/pkg/bbb222.js"})
}

func TestChangedFiles_IndividualFailureFloorsAtEmpty(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{ExitCode: 128, Stderr: "bad object"}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	files, err := client.ChangedFiles(ctx, []string{"aaa111"})

	gt.NoError(t, err)
	gt.Number(t, len(files["aaa111"])).Equal(0)
}

func TestChangedFiles_RespectsBatchSize(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner), gitinfra.WithBatchSize(2))
	_, err := client.ChangedFiles(ctx, []string{"a", "b", "c", "d", "e"})

	gt.NoError(t, err)
	gt.Number(t, len(runner.calls)).Equal(3)
}

func TestTagExists(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			gt.Value(t, args[len(args)-1]).Equal("refs/tags/pkg/v1.1.0")
			return &gitinfra.CommandResult{Stdout: "deadbeef\n"}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	exists, err := client.TagExists(ctx, "pkg/v1.1.0")

	gt.NoError(t, err)
	gt.Value(t, exists).Equal(true)
}

func TestTagExists_Absent(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{ExitCode: 1}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	exists, err := client.TagExists(ctx, "pkg/v1.1.0")

	gt.NoError(t, err)
	gt.Value(t, exists).Equal(false)
}

func TestCreateTag_Failure(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{ExitCode: 128, Stderr: "fatal: tag already exists"}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	err := client.CreateTag(ctx, "pkg/v1.1.0", "Release pkg v1.1.0")

	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("git tag failed")
}

func TestPushTag_Failure(t *testing.T) {
	ctx := context.Background()

	runner := &stubRunner{
		runFunc: func(args ...string) (*gitinfra.CommandResult, error) {
			return &gitinfra.CommandResult{ExitCode: 1, Stderr: "remote hung up"}, nil
		},
	}

	client := gitinfra.New(".", gitinfra.WithRunner(runner))
	err := client.PushTag(ctx, "pkg/v1.1.0")

	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("git push failed")
}
