package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rvj/internal/logging"
)

func TestOpenWorkspaceCreatesUniqueDirs(t *testing.T) {
	root := t.TempDir()

	first, err := openWorkspace(root)
	if err != nil {
		t.Fatalf("openWorkspace returned error: %v", err)
	}
	second, err := openWorkspace(root)
	if err != nil {
		t.Fatalf("openWorkspace returned error: %v", err)
	}

	if first.Dir() == second.Dir() {
		t.Fatalf("expected unique workspace dirs, both %q", first.Dir())
	}
	for _, ws := range []*Workspace{first, second} {
		if !strings.HasPrefix(filepath.Base(ws.Dir()), workspacePrefix) {
			t.Fatalf("workspace dir %q missing prefix", ws.Dir())
		}
		info, err := os.Stat(ws.Dir())
		if err != nil || !info.IsDir() {
			t.Fatalf("expected workspace dir, err=%v", err)
		}
	}
}

func TestWorkspacePaths(t *testing.T) {
	root := t.TempDir()
	ws, err := openWorkspace(root)
	if err != nil {
		t.Fatalf("openWorkspace returned error: %v", err)
	}

	if got := ws.SegmentPath(7); filepath.Base(got) != "segment-007.ts" {
		t.Fatalf("SegmentPath(7) = %q", got)
	}
	if got := ws.ManifestPath(); filepath.Base(got) != "concat.txt" {
		t.Fatalf("ManifestPath = %q", got)
	}
	if filepath.Dir(ws.SegmentPath(0)) != ws.Dir() {
		t.Fatal("segment paths must live inside the workspace")
	}
}

func TestWorkspaceReleaseRemovesOnce(t *testing.T) {
	root := t.TempDir()
	ws, err := openWorkspace(root)
	if err != nil {
		t.Fatalf("openWorkspace returned error: %v", err)
	}
	if err := os.WriteFile(ws.SegmentPath(0), []byte("segment"), 0o644); err != nil {
		t.Fatalf("write segment: %v", err)
	}

	ws.Release(logging.NewNop())
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Fatalf("expected workspace removal, err=%v", err)
	}

	// Second release is a no-op even if a new dir reappears at the path.
	if err := os.MkdirAll(ws.Dir(), 0o755); err != nil {
		t.Fatalf("recreate dir: %v", err)
	}
	ws.Release(logging.NewNop())
	if _, err := os.Stat(ws.Dir()); err != nil {
		t.Fatal("second release should not remove anything")
	}
}

func TestWorkspaceReleaseNilSafe(t *testing.T) {
	var ws *Workspace
	ws.Release(nil)
}
