package sharding

import (
	"archive/tar"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CreateShards packs the .npy chunks of a run directory into tar shards
// of at most shardSize files each, written to outputDir as
// shard_%05d.tar. The run's metadata.json, if present, rides along in
// the first shard.
func CreateShards(runDir, outputDir string, shardSize int) error {
	if shardSize <= 0 {
		return fmt.Errorf("shard size must be positive, got %d", shardSize)
	}

	var samples []string
	err := filepath.Walk(runDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".npy") {
			samples = append(samples, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error scanning run directory %s: %v", runDir, err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no feature chunks found in %s", runDir)
	}
	sort.Strings(samples)

	if meta := filepath.Join(runDir, "metadata.json"); fileExists(meta) {
		samples = append([]string{meta}, samples...)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating shard directory: %v", err)
	}

	numShards := (len(samples) + shardSize - 1) / shardSize
	for i := 0; i < numShards; i++ {
		start := i * shardSize
		end := (i + 1) * shardSize
		if end > len(samples) {
			end = len(samples)
		}

		shardPath := filepath.Join(outputDir, fmt.Sprintf("shard_%05d.tar", i))
		if err := createShard(shardPath, samples[start:end]); err != nil {
			return fmt.Errorf("error creating shard %d: %v", i, err)
		}
	}

	return nil
}

// createShard creates a tar file containing the given samples
func createShard(shardPath string, samples []string) error {
	tarFile, err := os.Create(shardPath)
	if err != nil {
		return fmt.Errorf("error creating tar file: %v", err)
	}
	defer tarFile.Close()

	tw := tar.NewWriter(tarFile)
	defer tw.Close()

	for _, sample := range samples {
		data, err := os.ReadFile(sample)
		if err != nil {
			return fmt.Errorf("error reading sample %s: %v", sample, err)
		}

		header := &tar.Header{
			Name: filepath.Base(sample),
			Mode: 0644,
			Size: int64(len(data)),
		}

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("error writing tar header: %v", err)
		}

		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("error writing tar data: %v", err)
		}
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
