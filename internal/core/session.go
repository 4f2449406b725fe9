// Video session: an open, positioned handle onto a decodable source.
package core

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Session wraps a video decoder with an explicit position and lifecycle:
// opened by OpenSession, read-advanced by NextFrame, terminal after Close.
// Stream geometry is fixed at open time.
type Session struct {
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	logger *logrus.Logger

	path       string
	width      int
	height     int
	fps        float64
	frameCount int
	pos        int
	closed     bool
}

// OpenSession opens path for decoding and reads the stream geometry. The
// decoder-reported frame count is trusted when positive; containers that
// report none are probed with ffprobe instead.
func OpenSession(path string, logger *logrus.Logger) (*Session, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", ErrCannotOpen, path)
	}

	s := &Session{
		cap:        capture,
		logger:     logger,
		path:       path,
		width:      int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:     int(capture.Get(gocv.VideoCaptureFrameHeight)),
		fps:        capture.Get(gocv.VideoCaptureFPS),
		frameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}

	if s.width <= 0 || s.height <= 0 {
		capture.Close()
		return nil, fmt.Errorf("%w: %s: invalid frame geometry %dx%d",
			ErrCannotOpen, path, s.width, s.height)
	}

	if s.frameCount <= 0 {
		n, err := ProbeFrameCount(path)
		if err != nil {
			capture.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, path, err)
		}
		s.frameCount = n
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  s.width,
		"height": s.height,
		"fps":    s.fps,
		"frames": s.frameCount,
	}).Info("Video session opened")

	return s, nil
}

// NextFrame decodes one frame into dst and advances the position by one.
// At or past the final frame it rewinds to frame 0 and returns
// ErrEndOfStream; the caller is expected to stop playback in response.
// A decoder that stalls short of the reported frame count is treated as
// a clean end of stream.
func (s *Session) NextFrame(dst *gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.pos >= s.frameCount {
		s.rewindLocked()
		return ErrEndOfStream
	}
	if ok := s.cap.Read(dst); !ok || dst.Empty() {
		s.rewindLocked()
		return ErrEndOfStream
	}
	s.pos++
	return nil
}

// Rewind resets the position to frame 0 without reading. No-op once closed.
func (s *Session) Rewind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rewindLocked()
}

func (s *Session) rewindLocked() {
	s.cap.Set(gocv.VideoCapturePosFrames, 0)
	s.pos = 0
}

// Close releases the decoder. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.cap.Close()
	s.logger.WithField("path", s.path).Debug("Video session closed")
	return err
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Position returns the index of the next frame NextFrame will decode.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Width is the frame width in pixels.
func (s *Session) Width() int { return s.width }

// Height is the frame height in pixels.
func (s *Session) Height() int { return s.height }

// FPS is the source frame rate.
func (s *Session) FPS() float64 { return s.fps }

// FrameCount is the total number of frames in the source.
func (s *Session) FrameCount() int { return s.frameCount }

// Path is the source file the session was opened from.
func (s *Session) Path() string { return s.path }
