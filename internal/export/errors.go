package export

import (
	"errors"
	"fmt"
)

var (
	// ErrToolNotFound indicates the transcoder binary could not be resolved.
	ErrToolNotFound = errors.New("transcoder not found")
	// ErrNoClips indicates an export request with an empty clip sequence.
	ErrNoClips = errors.New("export requires at least one clip")
	// ErrExportInFlight indicates another run holds the export lock.
	ErrExportInFlight = errors.New("another export is already in flight")
)

// InvalidClipRangeError reports a clip whose time range cannot be exported.
type InvalidClipRangeError struct {
	Index  int
	Reason string
}

func (e *InvalidClipRangeError) Error() string {
	return fmt.Sprintf("clip %d: invalid range: %s", e.Index, e.Reason)
}

// WorkspaceError reports a failure to create the scratch workspace.
type WorkspaceError struct {
	Err error
}

func (e *WorkspaceError) Error() string { return fmt.Sprintf("create workspace: %v", e.Err) }

func (e *WorkspaceError) Unwrap() error { return e.Err }

// TrimError reports a failed segment extraction for one clip.
type TrimError struct {
	Index int
	Err   error
}

func (e *TrimError) Error() string { return fmt.Sprintf("trim clip %d: %v", e.Index, e.Err) }

func (e *TrimError) Unwrap() error { return e.Err }

// ManifestWriteError reports a failure to flush the concat manifest.
type ManifestWriteError struct {
	Err error
}

func (e *ManifestWriteError) Error() string { return fmt.Sprintf("write concat manifest: %v", e.Err) }

func (e *ManifestWriteError) Unwrap() error { return e.Err }

// OutputDirError reports a failure to create the output file's parent.
type OutputDirError struct {
	Err error
}

func (e *OutputDirError) Error() string { return fmt.Sprintf("create output directory: %v", e.Err) }

func (e *OutputDirError) Unwrap() error { return e.Err }

// MuxError reports a failed final concat-and-mux invocation.
type MuxError struct {
	Err error
}

func (e *MuxError) Error() string { return fmt.Sprintf("mux final output: %v", e.Err) }

func (e *MuxError) Unwrap() error { return e.Err }
