package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifestBuilder accumulates ordered segment references and serializes
// them once, after every trim has succeeded. Entry order is the sole
// ordering contract between trimming and muxing.
type manifestBuilder struct {
	entries []string
}

// Add records a segment path. Separators are normalized to forward slashes;
// the concat demuxer requires them regardless of host OS conventions.
func (b *manifestBuilder) Add(path string) {
	b.entries = append(b.entries, filepath.ToSlash(path))
}

// Len returns the number of recorded segments.
func (b *manifestBuilder) Len() int { return len(b.entries) }

// Write flushes the manifest as one `file '<path>'` record per line.
func (b *manifestBuilder) Write(path string) error {
	var sb strings.Builder
	for _, entry := range b.entries {
		fmt.Fprintf(&sb, "file '%s'\n", entry)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}
