package video

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Metadata holds the stream properties the pipeline needs from a video file
type Metadata struct {
	Width  int
	Height int
	FPS    float64
}

type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// Probe reads a video file's metadata via ffprobe
func Probe(path string) (Metadata, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("error probing %s: %w", path, err)
	}
	var probed probeOutput
	if err := json.Unmarshal([]byte(raw), &probed); err != nil {
		return Metadata{}, fmt.Errorf("error parsing probe output for %s: %w", path, err)
	}
	for _, stream := range probed.Streams {
		if stream.CodecType != "video" {
			continue
		}
		fps, err := parseRate(stream.RFrameRate)
		if err != nil || fps <= 0 {
			fps, err = parseRate(stream.AvgFrameRate)
			if err != nil {
				return Metadata{}, fmt.Errorf("error parsing frame rate for %s: %w", path, err)
			}
		}
		return Metadata{Width: stream.Width, Height: stream.Height, FPS: fps}, nil
	}
	return Metadata{}, fmt.Errorf("no video stream found in %s", path)
}

// parseRate parses an ffprobe rational like "30000/1001"
func parseRate(rate string) (float64, error) {
	num, den, found := strings.Cut(rate, "/")
	if !found {
		return strconv.ParseFloat(rate, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q", rate)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("invalid frame rate %q", rate)
	}
	return n / d, nil
}
