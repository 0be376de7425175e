package dataset

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UnpackVideos extracts every mp4 in a tar archive into a fresh scratch
// directory and returns that directory. Nested paths are flattened to
// their base names; macOS resource-fork entries ("._*") are skipped.
func UnpackVideos(tarPath string) (string, error) {
	f, err := os.Open(tarPath)
	if err != nil {
		return "", fmt.Errorf("error opening archive %s: %w", tarPath, err)
	}
	defer f.Close()

	dir, err := os.MkdirTemp("", "vidfeat-*")
	if err != nil {
		return "", fmt.Errorf("error creating scratch directory: %w", err)
	}

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error reading archive %s: %w", tarPath, err)
		}

		name := filepath.Base(hdr.Name)
		if !strings.HasSuffix(name, ".mp4") || strings.HasPrefix(name, "._") {
			continue
		}

		if err := writeEntry(filepath.Join(dir, name), tr); err != nil {
			return "", fmt.Errorf("error unpacking %s: %w", hdr.Name, err)
		}
	}
	return dir, nil
}

func writeEntry(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
