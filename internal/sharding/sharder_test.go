package sharding

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func listShard(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var names []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, hdr.Name)
	}
	return names
}

func TestCreateShards(t *testing.T) {
	runDir := t.TempDir()
	for _, name := range []string{"frames_00000.npy", "frames_00001.npy", "frames_00002.npy"} {
		if err := os.WriteFile(filepath.Join(runDir, name), []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(t.TempDir(), "shards")
	if err := CreateShards(runDir, outDir, 2); err != nil {
		t.Fatalf("CreateShards() error = %v", err)
	}

	// 4 files (metadata + 3 chunks) at 2 per shard
	shards, err := filepath.Glob(filepath.Join(outDir, "shard_*.tar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(shards) != 2 {
		t.Fatalf("CreateShards() wrote %d shards, want 2", len(shards))
	}

	first := listShard(t, filepath.Join(outDir, "shard_00000.tar"))
	if len(first) != 2 || first[0] != "metadata.json" || first[1] != "frames_00000.npy" {
		t.Errorf("first shard contents = %v, want [metadata.json frames_00000.npy]", first)
	}
	second := listShard(t, filepath.Join(outDir, "shard_00001.tar"))
	if len(second) != 2 || second[0] != "frames_00001.npy" || second[1] != "frames_00002.npy" {
		t.Errorf("second shard contents = %v, want [frames_00001.npy frames_00002.npy]", second)
	}
}

func TestCreateShardsEmptyRun(t *testing.T) {
	if err := CreateShards(t.TempDir(), t.TempDir(), 2); err == nil {
		t.Error("CreateShards() accepted a run directory with no chunks")
	}
}

func TestCreateShardsBadSize(t *testing.T) {
	if err := CreateShards(t.TempDir(), t.TempDir(), 0); err == nil {
		t.Error("CreateShards() accepted a non-positive shard size")
	}
}
