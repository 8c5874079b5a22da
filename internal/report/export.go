package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jbonatakis/attest/internal/fsutil"
)

// Render writes r in the given format. Color only applies to text.
func Render(w io.Writer, r Report, f Format, colored bool) error {
	switch f {
	case FormatText:
		return RenderText(w, r, colored)
	case FormatMarkdown:
		return RenderMarkdown(w, r)
	case FormatHTML:
		return RenderHTML(w, r)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// Export renders r into dir (or to path when it names a file) and returns
// the written path. The write is atomic and serialized across processes.
func Export(ctx context.Context, r Report, f Format, dir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, DefaultFilename(r, f))
	}

	var buf bytes.Buffer
	if err := Render(&buf, r, f, false); err != nil {
		return "", err
	}
	if err := fsutil.WriteFileLocked(ctx, path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	return path, nil
}
