package task

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallerPath(t *testing.T) {
	path := InstallerPath("/home/agent")

	expected := filepath.Join("/home/agent", ".cargo", "bin", "cargo-binstall")
	if runtime.GOOS == "windows" {
		expected += ".exe"
	}
	assert.Equal(t, expected, path)
}

// placeInstaller writes a fake installer binary under home/.cargo/bin.
func placeInstaller(t *testing.T, home, script string) string {
	t.Helper()

	path := InstallerPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestLocated(t *testing.T) {
	t.Run("absent binary", func(t *testing.T) {
		home := t.TempDir()
		tsk, err := New(Config{Home: home})
		require.NoError(t, err)

		assert.False(t, tsk.located(context.Background(), InstallerPath(home)))
	})

	t.Run("present binary without pin", func(t *testing.T) {
		home := t.TempDir()
		path := placeInstaller(t, home, "")

		tsk, err := New(Config{Home: home})
		require.NoError(t, err)

		assert.True(t, tsk.located(context.Background(), path))
	})

	t.Run("present but not executable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("executable bit has no meaning on windows")
		}

		home := t.TempDir()
		path := InstallerPath(home)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

		tsk, err := New(Config{Home: home})
		require.NoError(t, err)

		assert.False(t, tsk.located(context.Background(), path))
	})
}

func TestLocatedWithVersionPin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh scripts")
	}

	cases := []struct {
		name    string
		output  string
		pin     string
		located bool
	}{
		{"newer than pin", `echo "cargo-binstall 1.6.4"`, "1.5.0", true},
		{"exactly pinned", `echo "cargo-binstall 1.6.4"`, "1.6.4", true},
		{"older than pin", `echo "cargo-binstall 1.6.4"`, "2.0.0", false},
		{"unparseable output", `echo "something went sideways"`, "1.0.0", false},
		{"version query fails", "exit 1", "1.0.0", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			home := t.TempDir()
			path := placeInstaller(t, home, tc.output)

			tsk, err := New(Config{Home: home, RequireVersion: tc.pin})
			require.NoError(t, err)

			assert.Equal(t, tc.located, tsk.located(context.Background(), path))
		})
	}
}
