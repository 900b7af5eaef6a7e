// Package task composes the cargo-binstall provisioning pipeline: validate
// the requested package list, make sure the installer binary is present on
// the agent (downloading and extracting it when it is not) and delegate the
// actual installation to it.
package task

import (
	"context"
	"os"
	"time"

	"github.com/aexvir/binstall"
	"github.com/aexvir/binstall/archive"
	"github.com/aexvir/binstall/diag"
	"github.com/aexvir/binstall/fetch"
	"github.com/aexvir/binstall/target"
)

// Config carries every external value the pipeline needs. Environment
// specifics like the home and temp directories are threaded in here by the
// entry point instead of being read ad hoc mid-flow.
type Config struct {
	// Packages is the raw delimited list of requested package names.
	Packages string

	// Home is the home directory of the agent user; the installer binary
	// lives under <home>/.cargo/bin.
	Home string
	// TempDir is where downloaded archives are staged.
	TempDir string

	// RequireVersion optionally pins a minimum installer version; when set,
	// an installed binary older than this is reinstalled.
	RequireVersion string

	// Timeout bounds the whole run when non-zero. The zero value keeps the
	// historical behavior of waiting indefinitely on network and
	// subprocesses.
	Timeout time.Duration

	// Log receives free-text diagnostic lines.
	Log *diag.Logger

	// Executable overrides, mainly useful on agents with non-standard
	// tool locations.
	Rustc    string
	Cargo    string
	SevenZip string
	Tar      string
}

// Task is a single provisioning run.
type Task struct {
	cfg Config

	// parsed by the validation stage, consumed by the install stage
	packages []string

	// seams for the provisioning steps, swapped out in tests
	resolve  func(ctx context.Context) (target.Descriptor, bool, error)
	download func(ctx context.Context, url, destination string) (fetch.Result, error)
	extract  func(ctx context.Context, archivePath, destination string) error
}

// New builds a task from the given configuration, filling in environment
// defaults for anything left unset.
func New(cfg Config) (*Task, error) {
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Home = home
	}

	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}

	if cfg.Log == nil {
		cfg.Log = diag.Nop()
	}

	if cfg.Rustc == "" {
		cfg.Rustc = "rustc"
	}
	if cfg.Cargo == "" {
		cfg.Cargo = "cargo"
	}
	if cfg.SevenZip == "" {
		cfg.SevenZip = "7z"
	}
	if cfg.Tar == "" {
		cfg.Tar = "tar"
	}

	t := Task{cfg: cfg}

	t.resolve = func(ctx context.Context) (target.Descriptor, bool, error) {
		return target.Resolve(ctx, target.WithRustc(cfg.Rustc), target.WithLogger(cfg.Log))
	}
	t.download = func(ctx context.Context, url, destination string) (fetch.Result, error) {
		return fetch.Download(ctx, url, destination, fetch.WithLogger(cfg.Log))
	}
	t.extract = func(ctx context.Context, archivePath, destination string) error {
		return archive.Extract(
			ctx,
			archivePath,
			destination,
			archive.WithSevenZip(cfg.SevenZip),
			archive.WithTar(cfg.Tar),
			archive.WithLogger(cfg.Log),
		)
	}

	return &t, nil
}

// Run executes the provisioning pipeline. The stages run strictly in order
// and the first failure terminates the run; the pipeline reports a single
// success or failure line as the outcome.
func (t *Task) Run(ctx context.Context) error {
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	return binstall.New().Execute(
		ctx,
		t.validate,
		t.ensureInstaller,
		t.install,
	)
}
