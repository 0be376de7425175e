package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/melody-ding/go-vidfeat/internal/types"
)

// MetadataFile is the name of the run descriptor written next to the
// feature chunks
const MetadataFile = "metadata.json"

// WriteMetadata writes the run descriptor into dir
func WriteMetadata(dir string, meta types.RunMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding run metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFile), data, 0644); err != nil {
		return fmt.Errorf("error writing run metadata: %w", err)
	}
	return nil
}

// ReadMetadata reads a run descriptor back from dir
func ReadMetadata(dir string) (types.RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return types.RunMetadata{}, fmt.Errorf("error reading run metadata: %w", err)
	}
	var meta types.RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return types.RunMetadata{}, fmt.Errorf("error decoding run metadata: %w", err)
	}
	return meta, nil
}
