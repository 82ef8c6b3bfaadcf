package container

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerovista-us/echovalentine/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsContainer(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected bool
	}{
		{"Manifest and UI entry", []string{"package.json", "index.html"}, true},
		{"Manifest and logic entry", []string{"main.js", "package.json", "README.md"}, true},
		{"Manifest only", []string{"package.json", "app.js"}, false},
		{"Entry only", []string{"index.html", "main.js"}, false},
		{"Names are case-sensitive", []string{"Package.json", "index.html"}, false},
		{"Empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsContainer(tt.files))
		})
	}
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644))
	return dir
}

func TestDetect(t *testing.T) {
	dir := writeManifest(t, `{
  "name": "echo-valentine",
  "description": "Greeting cards",
  "version": "1.4",
  "main": "main.js",
  "scripts": {"start": "electron .", "build": "vite build", "lint": "eslint ."},
  "dependencies": {"vite": "^5.0.0", "electron": "^30.0.0", "tailwindcss": "^3.4.0"}
}`)

	d := NewDetector(zap.NewNop())
	record := d.Detect(&models.Directory{Path: dir, Files: []string{"package.json", "main.js"}})
	require.NotNil(t, record)

	assert.True(t, record.IsAppContainer)
	assert.Equal(t, "echo-valentine", record.AppName)
	assert.Equal(t, "Greeting cards", record.Description)
	assert.Equal(t, []string{"vite", "electron", "tailwindcss"}, record.Dependencies, "manifest order is kept")
	assert.True(t, record.HasElectron)
	assert.True(t, record.HasTailwind)
	assert.Equal(t, []string{"start", "build", "lint"}, record.Scripts)
	assert.Equal(t, "main.js", record.Main)
	assert.Equal(t, "1.4", record.Version)
	assert.Equal(t, "1.4.0", record.SemVer)
}

func TestDetect_NotAContainer(t *testing.T) {
	dir := writeManifest(t, `{"name": "lib"}`)

	d := NewDetector(zap.NewNop())
	assert.Nil(t, d.Detect(&models.Directory{Path: dir, Files: []string{"package.json", "lib.js"}}))
}

func TestParseManifest_Defaults(t *testing.T) {
	dir := writeManifest(t, `{}`)

	record := ParseManifest(filepath.Join(dir, ManifestFile))
	assert.Equal(t, &models.ContainerRecord{IsAppContainer: true}, record)
}

func TestParseManifest_NullSections(t *testing.T) {
	dir := writeManifest(t, `{"dependencies": null, "scripts": {}, "version": "not-a-version"}`)

	record := ParseManifest(filepath.Join(dir, ManifestFile))
	assert.Empty(t, record.Dependencies)
	assert.Empty(t, record.Scripts)
	assert.False(t, record.HasElectron)
	assert.Equal(t, "not-a-version", record.Version)
	assert.Empty(t, record.SemVer)
}

func TestParseManifest_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Malformed JSON", `{"name": "broken",`},
		{"Not an object", `["a", "b"]`},
		{"Null document", `null`},
		{"Dependencies not an object", `{"dependencies": ["electron"]}`},
		{"Scripts not an object", `{"scripts": "start"}`},
		{"Name not a string", `{"name": 42, "dependencies": {"electron": "1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeManifest(t, tt.content)

			record := ParseManifest(filepath.Join(dir, ManifestFile))
			require.NotNil(t, record)

			assert.True(t, record.IsAppContainer, "structural detection is independent of parsing")
			assert.True(t, strings.HasPrefix(record.Description, "Failed to parse package.json: "), record.Description)
			assert.Empty(t, record.AppName)
			assert.Empty(t, record.Dependencies)
			assert.Empty(t, record.Scripts)
			assert.False(t, record.HasElectron)
			assert.False(t, record.HasTailwind)
			assert.Empty(t, record.Main)
			assert.Empty(t, record.Version)
		})
	}
}

func TestParseManifest_Unreadable(t *testing.T) {
	record := ParseManifest(filepath.Join(t.TempDir(), ManifestFile))
	assert.True(t, record.IsAppContainer)
	assert.Contains(t, record.Description, "Failed to parse package.json")
}
