package async_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/shiprel/shiprel/pkg/utils/async"
)

func TestMap_CollectsResultsInOrder(t *testing.T) {
	ctx := context.Background()

	results := async.Map(ctx, []int{1, 2, 3}, func(ctx context.Context, n int) (int, error) {
		return n * n, nil
	})

	gt.Number(t, len(results)).Equal(3)
	gt.Number(t, results[0].Value).Equal(1)
	gt.Number(t, results[1].Value).Equal(4)
	gt.Number(t, results[2].Value).Equal(9)
}

func TestMap_FailureDoesNotAbortSiblings(t *testing.T) {
	ctx := context.Background()

	results := async.Map(ctx, []string{"ok", "fail", "ok"}, func(ctx context.Context, s string) (string, error) {
		if s == "fail" {
			return "", errors.New("task failed")
		}
		return s + "!", nil
	})

	gt.NoError(t, results[0].Err)
	gt.Value(t, results[0].Value).Equal("ok!")
	gt.Error(t, results[1].Err)
	gt.NoError(t, results[2].Err)
	gt.Value(t, results[2].Value).Equal("ok!")
}

func TestMap_RecoversPanics(t *testing.T) {
	ctx := context.Background()

	results := async.Map(ctx, []int{0, 1}, func(ctx context.Context, n int) (int, error) {
		if n == 0 {
			panic("boom")
		}
		return n, nil
	})

	gt.Error(t, results[0].Err)
	gt.String(t, results[0].Err.Error()).Contains("panic")
	gt.NoError(t, results[1].Err)
	gt.Number(t, results[1].Value).Equal(1)
}

func TestMap_EmptyInput(t *testing.T) {
	ctx := context.Background()

	results := async.Map(ctx, nil, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})

	gt.Number(t, len(results)).Equal(0)
}
