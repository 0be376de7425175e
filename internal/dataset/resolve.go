package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/melody-ding/go-vidfeat/internal/types"
)

// NoVideosError reports a dataset location that yielded no video files
type NoVideosError struct {
	Dir  string
	Mode string
}

func (e *NoVideosError) Error() string {
	return fmt.Sprintf("could not find any mp4 videos for %s in %s", e.Mode, e.Dir)
}

// ValidMode reports whether mode is one of the supported dataset splits
func ValidMode(mode string) bool {
	return mode == "train" || mode == "val" || mode == "test"
}

// Resolve locates the videos of one dataset split. raw is either a
// directory laid out as <raw>/<mode>/*.mp4, or a .tar archive of mp4
// files for a single split (which is unpacked to a scratch directory so
// ffmpeg can read the files). Videos are returned sorted by path.
func Resolve(raw, mode string) ([]types.Video, error) {
	if !ValidMode(mode) {
		return nil, fmt.Errorf("extraction mode must be train, val, or test, got %q", mode)
	}

	dir := filepath.Join(raw, mode)
	if strings.HasSuffix(raw, ".tar") {
		unpacked, err := UnpackVideos(raw)
		if err != nil {
			return nil, err
		}
		dir = unpacked
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, fmt.Errorf("error globbing %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, &NoVideosError{Dir: raw, Mode: mode}
	}

	videos := make([]types.Video, 0, len(paths))
	for _, path := range paths {
		key := strings.TrimSuffix(filepath.Base(path), ".mp4")
		videos = append(videos, types.Video{Key: key, Path: path})
	}
	return videos, nil
}
