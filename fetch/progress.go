package fetch

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/aexvir/binstall"
)

// progress wraps an io.Reader to display a progress bar when running in a
// terminal. Returns the wrapped reader and a function to finalize the
// progress display. The bar is suppressed on ci agents and non-terminal
// output, where it would only pollute the build log.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !interactive || binstall.IsCIEnv() {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}
