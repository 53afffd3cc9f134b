package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"rvj/internal/logging"
)

// workspacePrefix names per-run scratch directories so stale-workspace
// cleanup can recognize them.
const workspacePrefix = "export-"

// Workspace is the exclusively-owned scratch directory of one export run.
// Every run gets a unique directory so concurrent invocations cannot
// collide on segment or manifest files.
type Workspace struct {
	id       string
	dir      string
	released bool
}

func openWorkspace(root string) (*Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(root, workspacePrefix+id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace %q: %w", dir, err)
	}
	return &Workspace{id: id, dir: dir}, nil
}

// ID returns the run identifier embedded in the directory name.
func (w *Workspace) ID() string { return w.id }

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// SegmentPath returns the intermediate segment file for clip i.
func (w *Workspace) SegmentPath(i int) string {
	return filepath.Join(w.dir, fmt.Sprintf("segment-%03d.ts", i))
}

// ManifestPath returns the concat manifest file location.
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.dir, "concat.txt")
}

// Release removes the workspace recursively. Removal is best-effort: a
// failure is logged and swallowed so cleanup can never mask the run's real
// outcome. Subsequent calls are no-ops.
func (w *Workspace) Release(logger *slog.Logger) {
	if w == nil || w.released {
		return
	}
	w.released = true
	if err := os.RemoveAll(w.dir); err != nil {
		if logger != nil {
			logger.Warn("failed to remove export workspace",
				logging.String("path", w.dir),
				logging.Error(err),
			)
		}
	}
}
