// Package fs exports analyses as JSON files.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kwrank"
)

// Ensure Exporter implements kwrank.AnalysisWriter at compile time.
var _ kwrank.AnalysisWriter = (*Exporter)(nil)

// Exporter writes one JSON file per analysis with atomic update semantics.
// Files are saved to a temporary directory, then moved into place on Commit.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter for dir. Files are written to dir.tmp
// and replace dir on Commit.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: filepath.Clean(dir)}
}

func (e *Exporter) tempDir() string {
	return e.dir + ".tmp"
}

// Save writes the analysis as indented JSON under the pending directory.
func (e *Exporter) Save(ctx context.Context, a *kwrank.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(a.SourceURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(e.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// Commit replaces the export directory with the pending one.
func (e *Exporter) Commit() error {
	if err := os.RemoveAll(e.dir); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

// Abort discards pending files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// URLToPath converts a page URL to a relative export path.
//
//	https://example.com/news/story      → example.com/news/story.json
//	https://example.com/news/           → example.com/news/index.json
//	https://example.com/search?q=ice    → example.com/search-<hash>.json
//
// The query string is folded into a short hash so distinct queries do not
// overwrite each other.
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", kwrank.Errorf(kwrank.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", kwrank.Errorf(kwrank.EINVALID, "URL %q has no host", rawURL)
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index"
	}
	// Cleaning against a rooted path drops any ".." that would escape host.
	p = strings.TrimPrefix(path.Clean("/"+p), "/")

	if u.RawQuery != "" {
		p += fmt.Sprintf("-%08x", uint32(xxhash.Sum64String(u.RawQuery)))
	}
	return filepath.Join(host, filepath.FromSlash(p)+".json"), nil
}
