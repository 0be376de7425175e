package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/melody-ding/go-vidfeat/internal/dataset"
	"github.com/melody-ding/go-vidfeat/internal/encoder"
	"github.com/melody-ding/go-vidfeat/internal/features"
	"github.com/melody-ding/go-vidfeat/internal/frame"
	"github.com/melody-ding/go-vidfeat/internal/numpy"
	"github.com/melody-ding/go-vidfeat/internal/sampler"
	"github.com/melody-ding/go-vidfeat/internal/sharding"
	"github.com/melody-ding/go-vidfeat/internal/types"
	"github.com/melody-ding/go-vidfeat/internal/video"
)

func main() {
	parser := argparse.NewParser("govidfeat", "Builds per-frame feature matrices from raw video datasets")
	raw := parser.String("r", "raw", &argparse.Options{Help: "Raw dataset: a directory with <mode>/*.mp4, or a .tar of mp4s", Required: true})
	out := parser.String("o", "out", &argparse.Options{Help: "Directory to write the feature chunks into", Required: true})
	mode := parser.String("m", "mode", &argparse.Options{Help: "Dataset split (train, val, test)", Default: "train"})
	frequency := parser.Float("f", "frequency", &argparse.Options{Help: "Sampling frequency as a fraction of the native frame rate, in (0,1]", Default: 1.0})
	maxFrames := parser.Int("n", "max-frames", &argparse.Options{Help: "Maximum sampled frames per video", Default: 100})
	size := parser.String("s", "size", &argparse.Options{Help: "Target frame resolution, WxH", Default: "224x224"})
	chunkSize := parser.Int("c", "chunk-size", &argparse.Options{Help: "Videos per output .npy chunk", Default: 100})
	shardSize := parser.Int("", "shard-size", &argparse.Options{Help: "Files per output tar shard (0 disables sharding)", Default: 0})
	shardDir := parser.String("", "shard-dir", &argparse.Options{Help: "Directory for tar shards (defaults to <out>/shards)", Default: ""})
	s3Bucket := parser.String("", "s3-bucket", &argparse.Options{Help: "Upload the run output to this S3 bucket", Default: ""})
	s3Prefix := parser.String("", "s3-prefix", &argparse.Options{Help: "Key prefix for S3 upload", Default: ""})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(logger, *raw, *out, *mode, *frequency, *maxFrames, *size, *chunkSize, *shardSize, *shardDir, *s3Bucket, *s3Prefix); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger logs.Log, raw, out, mode string, frequency float64, maxFrames int, size string, chunkSize, shardSize int, shardDir, s3Bucket, s3Prefix string) error {
	dims, err := frame.ParseDimensions(size)
	if err != nil {
		return err
	}

	videos, err := dataset.Resolve(raw, mode)
	if err != nil {
		return err
	}
	logger.Infof("Found %d videos for %s in %s", len(videos), mode, raw)

	enc := encoder.NewPooledStatsEncoder()
	builder, err := features.NewBuilder(features.Config{
		Frequency: frequency,
		MaxFrames: maxFrames,
		Dims:      dims,
	}, logger, enc, openVideo)
	if err != nil {
		return err
	}

	matrix, counts, err := builder.Build(videos)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", out, err)
	}
	paths, err := numpy.WriteChunks(out, "frames", chunkSize, matrix.Bytes(), matrix.Shape(), numpy.DescrFloat32)
	if err != nil {
		return err
	}
	logger.Infof("Wrote %d feature chunks to %s", len(paths), out)

	if err := dataset.WriteMetadata(out, types.RunMetadata{
		Dataset:     raw,
		Mode:        mode,
		Frequency:   frequency,
		MaxFrames:   maxFrames,
		FeatureDim:  enc.FeatureSize(),
		NumVideos:   matrix.NumVideos,
		Size:        []int{dims.Width, dims.Height},
		FrameCounts: counts,
	}); err != nil {
		return err
	}

	if shardSize > 0 {
		dir := shardDir
		if dir == "" {
			dir = filepath.Join(out, "shards")
		}
		if err := sharding.CreateShards(out, dir, shardSize); err != nil {
			return err
		}
		logger.Infof("Sharded run output into %s", dir)
	}

	if s3Bucket != "" {
		uploader, err := dataset.NewS3Uploader(s3Bucket, s3Prefix)
		if err != nil {
			return err
		}
		if err := uploader.UploadDir(out); err != nil {
			return err
		}
		logger.Infof("Uploaded run output to s3://%s/%s", s3Bucket, s3Prefix)
	}

	return nil
}

func openVideo(path string) (sampler.Source, error) {
	reader, err := video.Open(path)
	if err != nil {
		return nil, err
	}
	return reader, nil
}
