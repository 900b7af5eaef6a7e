package binstall

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsStagesInOrder(t *testing.T) {
	var order []string

	stage := func(name string) Stage {
		return func(_ context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	err := New().Execute(context.Background(), stage("one"), stage("two"), stage("three"))

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, order)
}

func TestExecuteStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var ran []string

	err := New().Execute(
		context.Background(),
		func(_ context.Context) error {
			ran = append(ran, "first")
			return nil
		},
		func(_ context.Context) error {
			ran = append(ran, "second")
			return boom
		},
		func(_ context.Context) error {
			ran = append(ran, "third")
			return nil
		},
	)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestExecuteRecoversPanics(t *testing.T) {
	t.Run("non-error panic value", func(t *testing.T) {
		err := New().Execute(
			context.Background(),
			func(_ context.Context) error { panic("surprise") },
		)

		require.ErrorIs(t, err, ErrUnknown)
		assert.Contains(t, err.Error(), "surprise")
	})

	t.Run("error panic value", func(t *testing.T) {
		boom := errors.New("boom")

		err := New().Execute(
			context.Background(),
			func(_ context.Context) error { panic(boom) },
		)

		require.ErrorIs(t, err, boom)
	})
}

func TestExecutePreExecHookFailure(t *testing.T) {
	boom := errors.New("no init")
	var ran bool

	pipeline := New(
		WithPreExecFunc(func(_ context.Context) error { return boom }),
	)

	err := pipeline.Execute(
		context.Background(),
		func(_ context.Context) error {
			ran = true
			return nil
		},
	)

	require.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestExecutePostExecHookRuns(t *testing.T) {
	var ran bool

	pipeline := New(
		WithPostExecFunc(func(_ context.Context) error {
			ran = true
			return nil
		}),
	)

	err := pipeline.Execute(context.Background())

	require.NoError(t, err)
	assert.True(t, ran)
}
