package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsHashError(t *testing.T) {
	assert.True(t, IsHashError("ERROR:permission denied"))
	assert.False(t, IsHashError("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"))
	assert.False(t, IsHashError(""))
}

func TestHasValidHash(t *testing.T) {
	assert.True(t, (&InventoryRecord{FileHash: "abc"}).HasValidHash())
	assert.False(t, (&InventoryRecord{FileHash: "ERROR:x"}).HasValidHash())
	assert.False(t, (&InventoryRecord{}).HasValidHash())
}

func TestRecord_Variants(t *testing.T) {
	inv := NewInventory(&InventoryRecord{FullPath: "/a"})
	assert.False(t, inv.IsError())
	assert.Equal(t, "/a", inv.Path())

	fail := NewFailure(&ErrorRecord{FullPath: "/b"})
	assert.True(t, fail.IsError())
	assert.Equal(t, "/b", fail.Path())

	assert.Equal(t, "", Record{}.Path())
}

func TestContainerRecord_Clone(t *testing.T) {
	var nilRec *ContainerRecord
	assert.Nil(t, nilRec.Clone())

	orig := &ContainerRecord{AppName: "demo", Dependencies: []string{"vite"}, Scripts: []string{"dev"}}
	cp := orig.Clone()
	assert.Equal(t, orig, cp)

	cp.Dependencies[0] = "electron"
	cp.Scripts = append(cp.Scripts, "build")
	assert.Equal(t, []string{"vite"}, orig.Dependencies)
	assert.Equal(t, []string{"dev"}, orig.Scripts)
}

func TestScanResults_AddRecord(t *testing.T) {
	r := &ScanResults{}
	r.AddRecord(NewInventory(&InventoryRecord{FullPath: "/a", SizeBytes: 10, FileHash: "h"}))
	r.AddRecord(NewInventory(&InventoryRecord{FullPath: "/b", SizeBytes: 5, FileHash: "ERROR:x"}))
	r.AddRecord(NewFailure(&ErrorRecord{FullPath: "/c"}))

	assert.Len(t, r.Records, 3)
	assert.Equal(t, 2, r.Stats.ProcessedFiles)
	assert.Equal(t, 1, r.Stats.ErrorRecords)
	assert.Equal(t, 1, r.Stats.HashErrors)
	assert.Equal(t, int64(15), r.Stats.TotalSize)
	assert.Equal(t, []string{"/c"}, r.Stats.ErrorFiles)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "", FormatTime(time.Time{}))

	ts := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	parsed, err := time.Parse(time.RFC3339Nano, FormatTime(ts))
	assert.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}
