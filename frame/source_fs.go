package frame

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FSSource reads frames from the local filesystem. Frame paths use '/'
// separators regardless of platform; they are converted on open.
type FSSource struct {
	// Root is an optional directory prepended to every frame path.
	// Empty means paths are used as given.
	Root string
}

// NewFSSource creates a filesystem source rooted at dir.
func NewFSSource(dir string) *FSSource {
	return &FSSource{Root: dir}
}

// Open implements Source.
func (s *FSSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	p := filepath.FromSlash(path)
	if s.Root != "" {
		p = filepath.Join(s.Root, p)
	}
	return os.Open(p)
}

// Kind implements Source.
func (s *FSSource) Kind() string { return "fs" }
