package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// streamProbe is the subset of ffprobe output needed to size a stream.
type streamProbe struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		NbFrames     string `json:"nb_frames"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Duration     string `json:"duration"`
	} `json:"streams"`
}

// ProbeFrameCount asks ffprobe for the total frame count of the first video
// stream in path. Containers that omit nb_frames fall back to an estimate
// from avg_frame_rate and duration.
func ProbeFrameCount(path string) (int, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var probe streamProbe
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return 0, fmt.Errorf("ffprobe output for %s: %w", path, err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
			return n, nil
		}
		rate := parseFrameRate(stream.AvgFrameRate)
		duration, _ := strconv.ParseFloat(stream.Duration, 64)
		if rate > 0 && duration > 0 {
			return int(rate*duration + 0.5), nil
		}
	}

	return 0, fmt.Errorf("no sized video stream in %s", path)
}

// parseFrameRate parses ffprobe's rational rate form, e.g. "30000/1001".
func parseFrameRate(r string) float64 {
	parts := strings.Split(r, "/")
	if len(parts) != 2 {
		return 0
	}
	num, _ := strconv.ParseFloat(parts[0], 64)
	den, _ := strconv.ParseFloat(parts[1], 64)
	if den == 0 {
		return 0
	}
	return num / den
}
