package core

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFFProbe(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}
}

func TestProbeFrameCount(t *testing.T) {
	requireFFProbe(t)

	path := writeFixtureVideo(t, 5, BGR{0, 0, 0})

	n, err := ProbeFrameCount(path)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestProbeFrameCountMissingFile(t *testing.T) {
	requireFFProbe(t)

	_, err := ProbeFrameCount(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestParseFrameRate(t *testing.T) {
	assert.InDelta(t, 29.97, parseFrameRate("30000/1001"), 0.01)
	assert.Equal(t, 30.0, parseFrameRate("30/1"))
	assert.Zero(t, parseFrameRate("0/0"))
	assert.Zero(t, parseFrameRate("garbage"))
}
