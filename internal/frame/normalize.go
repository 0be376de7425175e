package frame

// ImageNet channel statistics, R,G,B order
var (
	ImageNetMean = [3]float32{0.485, 0.456, 0.406}
	ImageNetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Normalize converts a 3-channel frame to float32 HWC, subtracting the
// ImageNet per-channel mean and dividing by the per-channel standard
// deviation
func Normalize(f Frame) []float32 {
	out := make([]float32, len(f.Pixels))
	for i, v := range f.Pixels {
		c := i % 3
		out[i] = (float32(v) - ImageNetMean[c]) / ImageNetStd[c]
	}
	return out
}

// Preprocess composes Resize and Normalize, producing the float32 HWC
// tensor the encoder batch is assembled from
func Preprocess(f Frame, dims Dimensions) ([]float32, error) {
	resized, err := Resize(f, dims)
	if err != nil {
		return nil, err
	}
	return Normalize(resized), nil
}
