package binstall

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure mode of a run.
// Callers use errors.Is rather than string matching; the pipeline is
// fail-fast so any of these terminates the run.
var (
	// ErrEmptyInput indicates no package names were supplied.
	ErrEmptyInput = errors.New("no packages requested")

	// ErrToolchainQuery indicates the compiler target introspection command
	// exited non-zero.
	ErrToolchainQuery = errors.New("toolchain query failed")

	// ErrMalformedOutput indicates the toolchain query produced output that
	// is not valid JSON or is missing required fields.
	ErrMalformedOutput = errors.New("malformed toolchain output")

	// ErrUnsupportedPlatformBuild indicates the fallback source build for an
	// unsupported platform exited non-zero.
	ErrUnsupportedPlatformBuild = errors.New("source build failed for unsupported platform")

	// ErrHTTPStatus indicates the download response carried an error status.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrTransport indicates a network or stream failure during download.
	ErrTransport = errors.New("download transport failed")

	// ErrUnknownArchiveFormat indicates the downloaded archive has an
	// extension no extraction utility is known for.
	ErrUnknownArchiveFormat = errors.New("unknown archive format")

	// ErrExtraction indicates the external extraction utility exited non-zero.
	ErrExtraction = errors.New("archive extraction failed")

	// ErrPostExtractVerify indicates the installer binary was still absent
	// or unusable after provisioning reported success.
	ErrPostExtractVerify = errors.New("installer binary missing after provisioning")

	// ErrInstallCommand indicates the delegated install invocation exited
	// non-zero.
	ErrInstallCommand = errors.New("install command failed")

	// ErrUnknown is the catch-all for failures that don't surface as errors,
	// e.g. recovered panic values.
	ErrUnknown = errors.New("unknown error")
)

// StageError wraps an underlying error with the pipeline stage it originated
// from. It preserves the original error in the chain for inspection via
// errors.Is and errors.As.
type StageError struct {
	// Kind is the sentinel error classifying the failure.
	Kind error
	// Stage is the pipeline stage that failed, e.g. "fetch".
	Stage string
	// Err is the underlying error.
	Err error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
}

// Unwrap returns the underlying error for chain traversal.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *StageError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewStageError creates a classified stage error.
func NewStageError(kind error, stage string, err error) *StageError {
	return &StageError{
		Kind:  kind,
		Stage: stage,
		Err:   err,
	}
}
