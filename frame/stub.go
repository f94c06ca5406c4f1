package frame

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
)

// StubSource is an in-memory Source for tests. It records open order and
// per-path open counts, and can be primed to fail specific paths.
type StubSource struct {
	mu     sync.Mutex
	data   map[string][]byte
	fail   map[string]error
	opens  map[string]int
	order  []string
	inUse  int
	maxUse int
}

// NewStubSource creates an empty stub source.
func NewStubSource() *StubSource {
	return &StubSource{
		data:  make(map[string][]byte),
		fail:  make(map[string]error),
		opens: make(map[string]int),
	}
}

// Add registers a PNG-encoded rendering of img at path.
func (s *StubSource) Add(path string, img image.Image) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(fmt.Sprintf("stub source: encode %s: %v", path, err))
	}
	s.mu.Lock()
	s.data[path] = buf.Bytes()
	s.mu.Unlock()
}

// AddRaw registers raw bytes at path.
func (s *StubSource) AddRaw(path string, data []byte) {
	s.mu.Lock()
	s.data[path] = data
	s.mu.Unlock()
}

// Fail makes opens of path return err.
func (s *StubSource) Fail(path string, err error) {
	s.mu.Lock()
	s.fail[path] = err
	s.mu.Unlock()
}

// Open implements Source.
func (s *StubSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	s.opens[path]++
	s.order = append(s.order, path)
	if err, ok := s.fail[path]; ok {
		s.mu.Unlock()
		return nil, err
	}
	data, ok := s.data[path]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("stub source: %s: not found", path)
	}
	s.inUse++
	if s.inUse > s.maxUse {
		s.maxUse = s.inUse
	}
	s.mu.Unlock()

	return &stubReader{Reader: bytes.NewReader(data), release: s.release}, nil
}

// Kind implements Source.
func (s *StubSource) Kind() string { return "stub" }

func (s *StubSource) release() {
	s.mu.Lock()
	s.inUse--
	s.mu.Unlock()
}

// OpenCount returns how many times path was opened.
func (s *StubSource) OpenCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens[path]
}

// OpenOrder returns the paths in the order they were opened.
func (s *StubSource) OpenOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// MaxConcurrent returns the peak number of simultaneously open readers.
func (s *StubSource) MaxConcurrent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxUse
}

type stubReader struct {
	*bytes.Reader
	release func()
	closed  bool
}

func (r *stubReader) Close() error {
	if !r.closed {
		r.closed = true
		r.release()
	}
	return nil
}
