package io

import (
	"path/filepath"
	"strings"
)

// SupportedVideoExtensions lists the containers offered by the open dialog.
// Anything the decoder can read will still open; this is the UI surface.
var SupportedVideoExtensions = []string{".mp4", ".avi", ".mov"}

// IsSupportedVideoFormat reports whether path carries a supported extension.
func IsSupportedVideoFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedVideoExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
