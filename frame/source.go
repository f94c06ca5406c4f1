package frame

import (
	"context"
	"io"
)

// Source supplies raw frame bytes for a constructed frame path. Exactly
// one open attempt is made per frame per load; retry policy is the
// caller's concern and the engine deliberately has none.
type Source interface {
	// Open returns a reader for the frame at path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Kind returns a short backend label ("fs", "http", "s3") for
	// logging and metrics dimensions.
	Kind() string
}
