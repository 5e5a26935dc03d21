// Package source abstracts where frame buffers come from: a plain file,
// a shared-memory segment, or a framebuffer device node. The daemon polls
// one Source at its target rate and keeps the last frame when a poll
// yields no update.
package source

import "errors"

// ErrNoUpdate means the source has no new frame since the last read.
var ErrNoUpdate = errors.New("source: no update")

// Source yields raw RGB frame buffers (height*width*3 bytes, row-major).
type Source interface {
	Open() error
	// NextFrame returns a fresh frame buffer, or ErrNoUpdate when the
	// backing store has not changed.
	NextFrame() ([]byte, error)
	Close() error
}
