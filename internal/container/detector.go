// Package container recognizes application root directories and extracts
// the metadata declared in their package manifest.
package container

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/aerovista-us/echovalentine/pkg/models"
	"go.uber.org/zap"
)

const (
	// ManifestFile marks a candidate application root
	ManifestFile = "package.json"

	electronDependency = "electron"
	tailwindDependency = "tailwindcss"
)

// EntryPoints are the files of which at least one must sit next to the manifest
var EntryPoints = []string{"index.html", "main.js"}

// Detector detects application containers
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new container detector
func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// IsContainer reports whether a directory listing holds the manifest plus an
// entry point. Names are matched exactly.
func IsContainer(files []string) bool {
	hasManifest, hasEntry := false, false
	for _, f := range files {
		if f == ManifestFile {
			hasManifest = true
			continue
		}
		for _, e := range EntryPoints {
			if f == e {
				hasEntry = true
			}
		}
	}
	return hasManifest && hasEntry
}

// Detect returns the container record of dir, or nil when dir is not an
// application container. A manifest that cannot be parsed still yields a
// container record; the failure lands in its description.
func (d *Detector) Detect(dir *models.Directory) *models.ContainerRecord {
	if !IsContainer(dir.Files) {
		return nil
	}

	record := ParseManifest(filepath.Join(dir.Path, ManifestFile))
	d.logger.Debug("Detected application container",
		zap.String("dir", dir.Path),
		zap.String("app", record.AppName),
		zap.Int("dependencies", len(record.Dependencies)))
	return record
}

// manifest is the subset of package.json the inventory reads. Every field is
// optional.
type manifest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Dependencies json.RawMessage `json:"dependencies"`
	Scripts      json.RawMessage `json:"scripts"`
	Main         string          `json:"main"`
	Version      string          `json:"version"`
}

// ParseManifest reads a package manifest into a container record. It never
// fails: on error the record is defaulted and carries the reason in its
// description.
func ParseManifest(path string) *models.ContainerRecord {
	record, err := parseManifest(path)
	if err != nil {
		return &models.ContainerRecord{
			IsAppContainer: true,
			Description:    fmt.Sprintf("Failed to parse %s: %v", ManifestFile, err),
		}
	}
	return record
}

func parseManifest(path string) (*models.ContainerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if string(bytes.TrimSpace(data)) == "null" {
		return nil, errors.New("manifest is not a JSON object")
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	deps, err := objectKeys(m.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	scripts, err := objectKeys(m.Scripts)
	if err != nil {
		return nil, fmt.Errorf("scripts: %w", err)
	}

	record := &models.ContainerRecord{
		IsAppContainer: true,
		AppName:        m.Name,
		Description:    m.Description,
		Dependencies:   deps,
		HasElectron:    containsKey(deps, electronDependency),
		HasTailwind:    containsKey(deps, tailwindDependency),
		Scripts:        scripts,
		Main:           m.Main,
		Version:        m.Version,
	}
	if v, err := semver.NewVersion(m.Version); err == nil {
		record.SemVer = v.String()
	}
	return record, nil
}

// objectKeys returns the keys of a JSON object in document order. A missing
// or null value yields no keys; any other non-object is an error.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %s", raw)
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
