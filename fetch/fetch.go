// Package fetch implements the archive download step of the provisioning
// pipeline: a single-attempt streaming HTTP(S) download with partial-file
// cleanup on any failure.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/aexvir/binstall"
	"github.com/aexvir/binstall/diag"
)

// Result carries the informational metadata captured from the response
// headers of a successful download.
type Result struct {
	// ContentType is the media type reported by the server, if any.
	ContentType string
	// ContentLength is the size reported by the server; -1 when unknown.
	ContentLength int64
}

type fetcher struct {
	client *http.Client
	log    *diag.Logger
}

// Option allows customizing the download behavior.
type Option func(f *fetcher)

// WithClient overrides the http client used for the download.
// Redirect following is delegated to the client.
func WithClient(client *http.Client) Option {
	return func(f *fetcher) {
		f.client = client
	}
}

// WithLogger sets the diagnostic logger for the download.
func WithLogger(log *diag.Logger) Option {
	return func(f *fetcher) {
		f.log = log
	}
}

// Download fetches url into destination, streaming the body to disk.
// Single attempt, no retry. The destination file is created eagerly; on an
// error status or any transport or write failure the partial file is removed
// best-effort before the error is surfaced. Exactly one outcome is produced
// per call.
func Download(ctx context.Context, url, destination string, opts ...Option) (res Result, err error) {
	f := fetcher{
		client: http.DefaultClient,
		log:    diag.Nop(),
	}

	for _, opt := range opts {
		opt(&f)
	}

	binstall.LogDetail(fmt.Sprintf("downloading %s to %s", url, destination))
	f.log.Debugf("fetching %s", url)

	start := time.Now()
	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			color.Red("     ✘ %s", elapsed)
			return
		}
		color.Green("     ✔ %s", elapsed)
	}()

	out, err := os.Create(destination)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create file %s: %w", destination, err)
	}

	// remove the partial file on any failure path; removal failure is not
	// itself reported
	fail := func(cause error) (Result, error) {
		out.Close()
		_ = os.Remove(destination)
		return Result{}, cause
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", binstall.ErrTransport, err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", binstall.ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fail(fmt.Errorf("%w: http %d fetching %s", binstall.ErrHTTPStatus, resp.StatusCode, url))
	}

	data, finish := progress(resp.Body, resp.ContentLength)
	defer finish()

	if _, err := io.Copy(out, data); err != nil {
		return fail(fmt.Errorf("%w: %v", binstall.ErrTransport, err))
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(destination)
		return Result{}, fmt.Errorf("%w: %v", binstall.ErrTransport, err)
	}

	res = Result{
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
	}

	f.log.Debugf("fetched %s: type=%q length=%d", url, res.ContentType, res.ContentLength)
	return res, nil
}
