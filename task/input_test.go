package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aexvir/binstall"
)

func TestParsePackages(t *testing.T) {
	t.Run("space delimited", func(t *testing.T) {
		assert.Equal(t, []string{"ripgrep", "cargo-audit"}, ParsePackages("ripgrep cargo-audit"))
	})

	t.Run("comma delimited", func(t *testing.T) {
		assert.Equal(t, []string{"ripgrep", "cargo-audit"}, ParsePackages("ripgrep,cargo-audit"))
	})

	t.Run("mixed delimiters and padding", func(t *testing.T) {
		assert.Equal(
			t,
			[]string{"ripgrep", "cargo-audit", "cargo-deny"},
			ParsePackages("  ripgrep, cargo-audit\ncargo-deny  "),
		)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParsePackages(""))
		assert.Empty(t, ParsePackages("   \n\t ,, "))
	})
}

func TestValidateStage(t *testing.T) {
	t.Run("accepts non-empty list", func(t *testing.T) {
		tsk, err := New(Config{Packages: "ripgrep, cargo-audit", Home: t.TempDir()})
		require.NoError(t, err)

		require.NoError(t, tsk.validate(context.Background()))
		assert.Equal(t, []string{"ripgrep", "cargo-audit"}, tsk.packages)
	})

	t.Run("rejects empty list", func(t *testing.T) {
		tsk, err := New(Config{Packages: " , ", Home: t.TempDir()})
		require.NoError(t, err)

		err = tsk.validate(context.Background())
		assert.ErrorIs(t, err, binstall.ErrEmptyInput)
	})
}
