package types

// Video represents one video file belonging to a dataset
type Video struct {
	Key  string
	Path string
}
