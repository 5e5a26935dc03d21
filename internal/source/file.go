package source

import (
	"fmt"
	"os"
	"time"
)

// FileSource reads raw RGB frames from a file. Any process that can write
// the file can drive the display; ffmpeg writing rawvideo works as-is.
//
// When pollMtime is set, NextFrame reports ErrNoUpdate until the file's
// mtime moves. Shared-memory and framebuffer reads skip the mtime check
// and return a frame on every poll for consistent timing.
type FileSource struct {
	Path      string
	FrameSize int

	pollMtime bool
	create    bool
	lastMtime time.Time
}

// NewFileSource polls a regular file, creating it zero-filled and
// world-writable when absent.
func NewFileSource(path string, width, height int) *FileSource {
	return &FileSource{Path: path, FrameSize: width * height * 3, pollMtime: true, create: true}
}

// NewSharedMemorySource reads a /dev/shm-backed segment every poll.
func NewSharedMemorySource(name string, width, height int) *FileSource {
	return &FileSource{Path: "/dev/shm/" + name, FrameSize: width * height * 3, create: true}
}

// NewFramebufferSource reads a framebuffer device node every poll.
func NewFramebufferSource(device string, width, height int) *FileSource {
	return &FileSource{Path: device, FrameSize: width * height * 3}
}

func (s *FileSource) Open() error {
	if !s.create {
		if _, err := os.Stat(s.Path); err != nil {
			return fmt.Errorf("source: open %q: %w", s.Path, err)
		}
		return nil
	}
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		if err := os.WriteFile(s.Path, make([]byte, s.FrameSize), 0o666); err != nil {
			return fmt.Errorf("source: create %q: %w", s.Path, err)
		}
		// WriteFile applies umask; writers may run as another user.
		if err := os.Chmod(s.Path, 0o666); err != nil {
			return fmt.Errorf("source: chmod %q: %w", s.Path, err)
		}
	}
	return nil
}

func (s *FileSource) NextFrame() ([]byte, error) {
	if s.pollMtime {
		info, err := os.Stat(s.Path)
		if err != nil {
			return nil, ErrNoUpdate
		}
		if info.ModTime().Equal(s.lastMtime) {
			return nil, ErrNoUpdate
		}
		s.lastMtime = info.ModTime()
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, ErrNoUpdate
	}

	// Tolerate writers that race us: pad short reads, drop extra bytes.
	if len(data) < s.FrameSize {
		data = append(data, make([]byte, s.FrameSize-len(data))...)
	}
	return data[:s.FrameSize], nil
}

func (s *FileSource) Close() error { return nil }
