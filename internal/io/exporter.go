// Video export: full re-encode of a session with color mappings applied.
package io

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"video-color-remap/internal/core"
)

// OutputFourCC is the fixed encoder pairing for exported files; the save
// dialog only offers .mp4 destinations to match.
const OutputFourCC = "mp4v"

// Exporter replays a session from frame 0 and writes a re-encoded copy
// with every mapping applied per frame.
type Exporter struct {
	logger *logrus.Logger
}

// NewExporter creates an exporter.
func NewExporter(logger *logrus.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export rewinds session, composites each frame against mappings, and writes
// the result to destPath with the source's dimensions and frame rate. The
// mappings slice is the snapshot frozen when the export started; later edits
// do not affect it. On completion the session is rewound again so the live
// preview resumes at frame 0.
//
// A sink creation or write failure leaves any partially written file in
// place; it is not cleaned up.
func (e *Exporter) Export(session *core.Session, mappings []core.Mapping, destPath string) error {
	if session == nil || session.Closed() {
		return core.ErrNoSource
	}
	if destPath == "" {
		return core.ErrNoDestination
	}

	session.Rewind()

	writer, err := gocv.VideoWriterFile(destPath, OutputFourCC,
		session.FPS(), session.Width(), session.Height(), true)
	if err != nil {
		return fmt.Errorf("create sink %s: %w", destPath, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return fmt.Errorf("create sink %s: writer did not open", destPath)
	}
	defer writer.Close()

	e.logger.WithFields(logrus.Fields{
		"source":      session.Path(),
		"destination": destPath,
		"mappings":    len(mappings),
	}).Info("Export started")
	start := time.Now()

	frame := gocv.NewMat()
	defer frame.Close()

	written := 0
	for {
		err := session.NextFrame(&frame)
		if errors.Is(err, core.ErrEndOfStream) {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", written, err)
		}

		composited := core.Composite(frame, mappings)
		err = writer.Write(composited)
		composited.Close()
		if err != nil {
			return fmt.Errorf("write frame %d to %s: %w", written, destPath, err)
		}
		written++
	}

	session.Rewind()

	e.logger.WithFields(logrus.Fields{
		"destination": destPath,
		"frames":      written,
		"elapsed":     time.Since(start),
	}).Info("Export finished")
	return nil
}
