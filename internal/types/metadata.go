package types

// RunMetadata describes one completed feature extraction run
type RunMetadata struct {
	Dataset     string  `json:"dataset"`
	Mode        string  `json:"mode"`
	Frequency   float64 `json:"frequency"`
	MaxFrames   int     `json:"max_frames"`
	FeatureDim  int     `json:"feature_dim"`
	NumVideos   int     `json:"num_videos"`
	Size        []int   `json:"size"`
	FrameCounts []int   `json:"frame_counts,omitempty"`
}
