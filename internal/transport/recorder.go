package transport

import "errors"

// Recorder is an in-memory Transport for tests and dry runs. It keeps
// every transmitted frame in order.
type Recorder struct {
	Frames [][]byte

	// FailAfter, when >= 0, makes transmission n fail (0-based). Lets
	// tests exercise abort-on-first-failure paths.
	FailAfter int

	closed bool
}

var errRecorderFail = errors.New("transport: injected failure")

func NewRecorder() *Recorder {
	return &Recorder{FailAfter: -1}
}

func (r *Recorder) Transmit(frame []byte) error {
	if r.FailAfter >= 0 && len(r.Frames) == r.FailAfter {
		return errRecorderFail
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	r.Frames = append(r.Frames, cp)
	return nil
}

func (r *Recorder) Close() error {
	r.closed = true
	return nil
}
