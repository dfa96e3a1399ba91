// Package output defines the JSON envelopes written by --json commands and
// the payload models they carry.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// SchemaVersion is bumped when an envelope or payload changes incompatibly.
const SchemaVersion = "1.0.0"

type Meta struct {
	Command       string    `json:"command"`
	SchemaVersion string    `json:"schema_version"`
	Version       string    `json:"version,omitempty"`
	DurationMS    float64   `json:"duration_ms,omitempty"`
	TS            time.Time `json:"ts"`
	Stream        bool      `json:"stream,omitempty"`
	Seq           int64     `json:"seq,omitempty"`
	EOF           bool      `json:"eof,omitempty"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Ok    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
	Meta  Meta      `json:"meta"`
}

type SuccessEnvelope struct {
	Ok   bool `json:"ok"`
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

func NewMeta(command, version string) Meta {
	return Meta{
		Command:       command,
		SchemaVersion: SchemaVersion,
		Version:       version,
		TS:            time.Now().UTC(),
	}
}

func NewStreamMeta(command, version string, seq int64, eof bool) Meta {
	meta := NewMeta(command, version)
	meta.Stream = true
	meta.Seq = seq
	meta.EOF = eof
	return meta
}

// WithDuration records the time since start with sub-millisecond precision.
func WithDuration(meta Meta, start time.Time) Meta {
	meta.DurationMS = float64(time.Since(start).Microseconds()) / 1000
	return meta
}

func WriteSuccess(w io.Writer, meta Meta, data any) error {
	return writeJSON(w, SuccessEnvelope{Ok: true, Data: data, Meta: meta})
}

func WriteError(w io.Writer, meta Meta, code, message string, details map[string]any) error {
	if code == "" {
		code = "unknown"
	}
	if message == "" {
		message = "unknown error"
	}
	return writeJSON(w, ErrorEnvelope{
		Ok: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: meta,
	})
}

// Stream writes one success envelope per event for a streaming command,
// numbering them from 1. After the envelope marked EOF, or after a write
// fails, further writes return the same error or ErrStreamClosed.
type Stream struct {
	mu      sync.Mutex
	w       io.Writer
	command string
	version string
	seq     int64
	err     error
}

// ErrStreamClosed is returned by writes after the EOF envelope.
var ErrStreamClosed = errors.New("output: stream closed")

func NewStream(w io.Writer, command, version string) *Stream {
	return &Stream{w: w, command: command, version: version}
}

func (s *Stream) Write(data any, eof bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.seq++
	if err := WriteSuccess(s.w, NewStreamMeta(s.command, s.version, s.seq, eof), data); err != nil {
		s.err = err
		return err
	}
	if eof {
		s.err = ErrStreamClosed
	}
	return nil
}

// Seq returns the sequence number of the last envelope written.
func (s *Stream) Seq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
