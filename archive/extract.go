// Package archive implements the extraction step of the provisioning
// pipeline. Extraction is delegated to the archive utilities already present
// on build agents; the package only dispatches to the right one and reports
// how the invocation went.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aexvir/binstall"
	"github.com/aexvir/binstall/diag"
)

type extractor struct {
	sevenzip string
	tar      string
	log      *diag.Logger
}

// Option allows customizing the extraction behavior.
type Option func(e *extractor)

// WithSevenZip overrides the executable used to extract zip archives.
func WithSevenZip(path string) Option {
	return func(e *extractor) {
		e.sevenzip = path
	}
}

// WithTar overrides the executable used to extract tgz archives.
func WithTar(path string) Option {
	return func(e *extractor) {
		e.tar = path
	}
}

// WithLogger sets the diagnostic logger for the extraction.
func WithLogger(log *diag.Logger) Option {
	return func(e *extractor) {
		e.log = log
	}
}

// Extract unpacks an archive into destination, selecting the external
// utility by the archive's file extension: zip archives go through 7z, tgz
// archives through tar. Any other extension is refused with
// [binstall.ErrUnknownArchiveFormat]. A non-zero utility exit surfaces as
// [binstall.ErrExtraction] carrying the exit code and captured output.
func Extract(ctx context.Context, archive, destination string, opts ...Option) error {
	e := extractor{
		sevenzip: "7z",
		tar:      "tar",
		log:      diag.Nop(),
	}

	for _, opt := range opts {
		opt(&e)
	}

	binstall.LogDetail(fmt.Sprintf("extracting %s", archive))

	var (
		utility string
		args    []string
	)

	switch ext := filepath.Ext(archive); ext {
	case ".zip":
		utility = e.sevenzip
		args = []string{"x", "-y", "-o" + destination, archive}
	case ".tgz":
		utility = e.tar
		args = []string{"xzf", archive, "-C", destination}
	default:
		return fmt.Errorf("%w: %q", binstall.ErrUnknownArchiveFormat, ext)
	}

	e.log.Debugf("running %s %s", utility, strings.Join(args, " "))

	result, err := binstall.Run(ctx, utility, binstall.WithArgs(args...), binstall.WithoutNoise())
	if err != nil {
		return fmt.Errorf(
			"%w: %s exited with code %d: %s",
			binstall.ErrExtraction, utility, result.ExitCode,
			strings.TrimSpace(result.Stdout+result.Stderr),
		)
	}

	return nil
}
