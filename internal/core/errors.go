// Error taxonomy for the session and export lifecycle.
package core

import "errors"

// EndOfStream is a control signal rather than a failure: the session has
// auto-rewound to frame 0 and the caller should stop playback or finish
// the export in response.
var (
	ErrCannotOpen    = errors.New("cannot open video source")
	ErrEndOfStream   = errors.New("end of stream")
	ErrSessionClosed = errors.New("session is closed")
	ErrNoSource      = errors.New("no video source loaded")
	ErrNoDestination = errors.New("no destination path supplied")
	ErrMappingLimit  = errors.New("mapping limit reached")
)
