package visuals

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Asset is a single renderable visual (illustration or character pose) owned
// by an external asset store. Assets are referenced, never mutated.
type Asset struct {
	ID       string `json:"id"`
	FilePath string `json:"file_path"`
	Category string `json:"category,omitempty"`
}

// Manifest is a catalog of generated assets as written by the upstream
// image-generation collaborators.
type Manifest struct {
	Assets []Asset `json:"images"`
}

// manifestPayload accepts both catalog spellings used upstream: illustration
// manifests use "images", pose catalogs use "poses". Individual entries may
// carry "image_path" instead of "file_path".
type manifestPayload struct {
	Images []assetPayload `json:"images"`
	Poses  []assetPayload `json:"poses"`
}

type assetPayload struct {
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
	ImagePath string `json:"image_path"`
	Category  string `json:"category"`
}

// ParseManifest decodes an asset catalog payload.
func ParseManifest(data []byte) (Manifest, error) {
	var payload manifestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Manifest{}, fmt.Errorf("parse asset manifest: %w", err)
	}

	entries := payload.Images
	if len(entries) == 0 {
		entries = payload.Poses
	}

	manifest := Manifest{Assets: make([]Asset, 0, len(entries))}
	for i, entry := range entries {
		path := entry.FilePath
		if path == "" {
			path = entry.ImagePath
		}
		if path == "" {
			continue
		}
		id := entry.ID
		if id == "" {
			id = fmt.Sprintf("asset_%d", i+1)
		}
		manifest.Assets = append(manifest.Assets, Asset{
			ID:       id,
			FilePath: path,
			Category: entry.Category,
		})
	}
	return manifest, nil
}

// Resolve joins relative asset paths with baseDir. Absolute paths and an
// empty baseDir pass through unchanged, so manifests may mix catalog-relative
// and fully qualified entries.
func (m Manifest) Resolve(baseDir string) Manifest {
	if baseDir == "" {
		return m
	}
	resolved := Manifest{Assets: make([]Asset, len(m.Assets))}
	for i, asset := range m.Assets {
		if !filepath.IsAbs(asset.FilePath) {
			asset.FilePath = filepath.Join(baseDir, asset.FilePath)
		}
		resolved.Assets[i] = asset
	}
	return resolved
}

// LoadManifest reads and parses an asset catalog file. A missing file is not
// an error: visuals are optional and the compositor degrades gracefully
// without them.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return Manifest{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("read asset manifest: %w", err)
	}
	return ParseManifest(data)
}
