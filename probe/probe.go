// Package probe inspects frame sequences and caches the results.
//
// A probe decodes only the first frame's header to learn the sequence's
// natural dimensions. Results are persisted as length-prefixed msgpack
// records so repeated inspections skip the decode entirely.
package probe

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/iox"
)

// MaxRecordSize bounds a single cache record (64 KiB), including the
// length prefix. Anything larger indicates a corrupt cache file.
const MaxRecordSize = 64 * 1024

// LengthPrefixSize is the size of the record length prefix in bytes.
const LengthPrefixSize = 4

// MaxPayloadSize is the maximum record payload size.
const MaxPayloadSize = MaxRecordSize - LengthPrefixSize

// RecordErrorKind classifies record decoding errors.
type RecordErrorKind int

const (
	// RecordErrorPartial indicates a truncated record.
	RecordErrorPartial RecordErrorKind = iota
	// RecordErrorTooLarge indicates a record exceeding MaxRecordSize.
	RecordErrorTooLarge
	// RecordErrorDecode indicates a msgpack decoding error.
	RecordErrorDecode
)

// RecordError represents a cache record decoding error.
type RecordError struct {
	Kind RecordErrorKind
	Msg  string
	Err  error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Record holds the probed facts about one sequence.
type Record struct {
	Prefix     string `msgpack:"prefix"`
	FrameCount int    `msgpack:"frame_count"`
	Width      int    `msgpack:"width"`
	Height     int    `msgpack:"height"`
	// ProbedAt is the probe time in Unix seconds.
	ProbedAt int64 `msgpack:"probed_at"`
}

// WriteRecord writes one length-prefixed msgpack record.
func WriteRecord(w io.Writer, record *Record) error {
	payload, err := msgpack.Marshal(record)
	if err != nil {
		return fmt.Errorf("probe: encode record: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return &RecordError{
			Kind: RecordErrorTooLarge,
			Msg:  fmt.Sprintf("record size %d exceeds maximum %d", len(payload), MaxPayloadSize),
		}
	}

	var lengthBuf [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(len(payload)))
	if _, err := w.Write(lengthBuf[:]); err != nil {
		return fmt.Errorf("probe: write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("probe: write payload: %w", err)
	}
	return nil
}

// ReadRecord reads one length-prefixed msgpack record.
//
// Errors:
//   - io.EOF: stream ended cleanly (no more records)
//   - *RecordError with Kind=RecordErrorPartial: truncated record
//   - *RecordError with Kind=RecordErrorTooLarge: record exceeds limit
//   - *RecordError with Kind=RecordErrorDecode: msgpack decode failure
func ReadRecord(r io.Reader) (*Record, error) {
	var lengthBuf [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &RecordError{
			Kind: RecordErrorPartial,
			Msg:  "failed to read length prefix",
			Err:  err,
		}
	}

	payloadSize := binary.BigEndian.Uint32(lengthBuf[:])
	if payloadSize > MaxPayloadSize {
		return nil, &RecordError{
			Kind: RecordErrorTooLarge,
			Msg:  fmt.Sprintf("record size %d exceeds maximum %d", payloadSize, MaxPayloadSize),
		}
	}

	payload := make([]byte, payloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, &RecordError{
			Kind: RecordErrorPartial,
			Msg:  "failed to read payload",
			Err:  err,
		}
	}

	var record Record
	if err := msgpack.Unmarshal(payload, &record); err != nil {
		return nil, &RecordError{
			Kind: RecordErrorDecode,
			Msg:  "failed to decode record",
			Err:  err,
		}
	}
	return &record, nil
}

// Sequence probes a sequence by decoding the header of its first frame.
func Sequence(ctx context.Context, source frame.Source, paths *frame.PathBuilder, frameCount int) (*Record, error) {
	if frameCount <= 0 {
		return nil, errors.New("probe: frame count must be positive")
	}

	path := paths.Path(1)
	rc, err := source.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe: open %s: %w", path, err)
	}
	defer iox.DiscardClose(rc)

	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		return nil, fmt.Errorf("probe: decode %s: %w", path, err)
	}

	return &Record{
		Prefix:     paths.Prefix(),
		FrameCount: frameCount,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ProbedAt:   time.Now().Unix(),
	}, nil
}
