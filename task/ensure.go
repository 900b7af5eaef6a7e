package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aexvir/binstall"
	"github.com/aexvir/binstall/target"
)

// ensureInstaller makes sure the installer binary exists at its expected
// path. When it is already present nothing else happens; otherwise the host
// triple is resolved and the matching archive downloaded and extracted, or
// the installer is built from source on platforms without a published
// archive. Either provisioning route must leave a usable binary behind
// before the delegated install stage is allowed to run.
func (t *Task) ensureInstaller(ctx context.Context) error {
	path := InstallerPath(t.cfg.Home)

	if t.located(ctx, path) {
		binstall.LogStep(fmt.Sprintf("%s already present at %s", installerName, path))
		return nil
	}

	binstall.LogStep(fmt.Sprintf("%s not found, provisioning", installerName))

	desc, supported, err := t.resolve(ctx)
	if err != nil {
		return err
	}

	if !supported {
		if err := t.buildFromSource(ctx); err != nil {
			return err
		}
		return verifyInstaller(path, "build")
	}

	archivePath := filepath.Join(t.cfg.TempDir, desc.FileName)
	if _, err := t.download(ctx, desc.URL, archivePath); err != nil {
		return err
	}

	bindir := filepath.Dir(path)
	if err := os.MkdirAll(bindir, 0o755); err != nil {
		return binstall.NewStageError(
			binstall.ErrExtraction,
			"extract",
			fmt.Errorf("failed to create destination folder %s: %w", bindir, err),
		)
	}

	if err := t.extract(ctx, archivePath, bindir); err != nil {
		return err
	}

	return verifyInstaller(path, "extract")
}

// verifyInstaller enforces the guarantee the whole stage exists to provide:
// whichever provisioning route ran, the installer binary must now be present
// and executable at its expected path.
func verifyInstaller(path, stage string) error {
	if installerUsable(path) {
		return nil
	}

	return binstall.NewStageError(
		binstall.ErrPostExtractVerify,
		stage,
		fmt.Errorf("expected executable at %s", path),
	)
}

// buildFromSource provisions the installer on platforms without a published
// archive by delegating to a plain cargo source build. Slow, but it keeps
// exotic agents working.
func (t *Task) buildFromSource(ctx context.Context) error {
	binstall.LogStep(fmt.Sprintf(
		"no published archive for this platform (supported: %s), building from source",
		strings.Join(target.Supported(), ", "),
	))

	result, err := binstall.Run(ctx, t.cfg.Cargo, binstall.WithArgs("install", installerName))
	if err != nil {
		return binstall.NewStageError(
			binstall.ErrUnsupportedPlatformBuild,
			"resolve",
			fmt.Errorf("%s install exited with code %d", t.cfg.Cargo, result.ExitCode),
		)
	}

	return nil
}
