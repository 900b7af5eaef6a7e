package task

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/aexvir/binstall"
)

const installerName = "cargo-binstall"

// InstallerPath returns the expected location of the installer binary for
// the given home directory: <home>/.cargo/bin/cargo-binstall with the
// executable suffix appropriate for the host platform.
func InstallerPath(home string) string {
	name := installerName
	if binstall.IsWindows() {
		name += ".exe"
	}
	return filepath.Join(home, ".cargo", "bin", name)
}

// located reports whether the installer binary is already usable at path.
// Read-only check; the file may still appear or disappear between this check
// and its use, which is an accepted limitation.
func (t *Task) located(ctx context.Context, path string) bool {
	if !installerUsable(path) {
		return false
	}

	if t.cfg.RequireVersion == "" {
		return true
	}

	return t.matchesVersion(ctx, path)
}

// installerUsable reports whether path points at an existing file the host
// can execute. The executable bit has no meaning on windows, where any
// present file counts.
func installerUsable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if binstall.IsWindows() {
		return true
	}

	return info.Mode().Perm()&0o111 != 0
}

// matchesVersion runs the installed binary in version mode and compares the
// reported version with the configured pin. Anything that fails to parse
// counts as a mismatch and forces a reinstall.
func (t *Task) matchesVersion(ctx context.Context, path string) bool {
	result, err := binstall.Run(ctx, path, binstall.WithArgs("-V"), binstall.WithoutNoise())
	if err != nil {
		return false
	}

	fields := strings.Fields(strings.TrimSpace(result.Stdout))
	if len(fields) == 0 {
		return false
	}

	installed := "v" + strings.TrimPrefix(fields[len(fields)-1], "v")
	wanted := "v" + strings.TrimPrefix(t.cfg.RequireVersion, "v")

	if !semver.IsValid(installed) || !semver.IsValid(wanted) {
		return false
	}

	ok := semver.Compare(installed, wanted) >= 0
	t.cfg.Log.Debugf("installed %s %s, pinned %s: match=%v", installerName, installed, wanted, ok)
	return ok
}
