package models

import "strings"

// Role is the semantic classification of a file
type Role string

const (
	RoleUICore       Role = "ui_core"
	RoleLogicCore    Role = "logic_core"
	RoleConfig       Role = "config"
	RoleContentAsset Role = "content_asset"
	RoleDependency   Role = "dependency"
	RoleGeneral      Role = "general"
)

// OwnerUnknown is the owner label used when no ownership rule matches
const OwnerUnknown = "Unknown"

// HashErrorPrefix tags a hash value that carries a read failure instead of a digest
const HashErrorPrefix = "ERROR:"

// ContainerRecord describes a directory recognized as an application root
type ContainerRecord struct {
	IsAppContainer bool
	AppName        string
	Description    string
	Dependencies   []string // Dependency names in manifest order
	HasElectron    bool
	HasTailwind    bool
	Scripts        []string // Script names in manifest order
	Main           string
	Version        string
	SemVer         string // Normalized version, empty when Version is not semver
}

// Clone returns a deep copy so every file record owns its container fields
func (c *ContainerRecord) Clone() *ContainerRecord {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Dependencies = append([]string(nil), c.Dependencies...)
	cp.Scripts = append([]string(nil), c.Scripts...)
	return &cp
}

// InventoryRecord is the full inventory row for one file
type InventoryRecord struct {
	FileName     string
	FullPath     string
	SizeBytes    int64
	LastModified string
	LastAccessed string
	Created      string
	Extension    string
	Role         Role
	MimeType     string

	Host      string
	Username  string
	OS        string
	OSVersion string
	ScanID    string
	ScanTime  string

	ParentFolder string
	RootFolder   string
	Owner        string
	FileHash     string

	IsAppContainer bool
	Container      *ContainerRecord

	// Set once by the dedup pass
	IsDuplicate bool
	DuplicateOf string
}

// HasValidHash reports whether FileHash is a real digest
func (r *InventoryRecord) HasValidHash() bool {
	return r.FileHash != "" && !IsHashError(r.FileHash)
}

// ErrorRecord is produced when a file's metadata could not be collected
type ErrorRecord struct {
	FileName string
	FullPath string
	Error    string
}

// Record holds exactly one of Inventory or Failure
type Record struct {
	Inventory *InventoryRecord
	Failure   *ErrorRecord
}

// NewInventory wraps a full record
func NewInventory(r *InventoryRecord) Record {
	return Record{Inventory: r}
}

// NewFailure wraps an error record
func NewFailure(r *ErrorRecord) Record {
	return Record{Failure: r}
}

// IsError reports whether the record is the error variant
func (r Record) IsError() bool {
	return r.Failure != nil
}

// Path returns the file path of either variant
func (r Record) Path() string {
	if r.Inventory != nil {
		return r.Inventory.FullPath
	}
	if r.Failure != nil {
		return r.Failure.FullPath
	}
	return ""
}

// IsHashError reports whether h is a tagged hash failure
func IsHashError(h string) bool {
	return strings.HasPrefix(h, HashErrorPrefix)
}
