package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aerovista-us/echovalentine/pkg/models"
)

// Column names
const (
	ColFullPath       = "full_path"
	ColFileName       = "file_name"
	ColSizeBytes      = "size_bytes"
	ColLastModified   = "last_modified"
	ColLastAccessed   = "last_accessed"
	ColCreated        = "created"
	ColExtension      = "extension"
	ColSubrole        = "subrole"
	ColMimeType       = "mime_type"
	ColHost           = "host"
	ColUsername       = "username"
	ColOS             = "os"
	ColOSVersion      = "os_version"
	ColScanID         = "scan_id"
	ColScanTimestamp  = "scan_timestamp"
	ColParentFolder   = "parent_folder"
	ColRootFolder     = "root_folder"
	ColOwner          = "responsible_party"
	ColFileHash       = "file_hash"
	ColIsAppContainer = "is_app_container"
	ColIsDuplicate    = "is_duplicate"
	ColDuplicateOf    = "duplicate_of"

	ColAppName      = "app_name"
	ColDescription  = "description"
	ColDependencies = "dependencies"
	ColHasElectron  = "has_electron"
	ColHasTailwind  = "has_tailwind"
	ColScripts      = "scripts"
	ColPkgMain      = "pkg_main"
	ColPkgVersion   = "pkg_version"
	ColPkgSemVer    = "pkg_semver"

	ColError = "error"
)

// PriorityColumns lead every header in this order, whether or not any row
// has a value for them
var PriorityColumns = []string{
	ColFullPath,
	ColFileName,
	ColSizeBytes,
	ColLastModified,
	ColIsDuplicate,
	ColDuplicateOf,
	ColAppName,
	ColDescription,
}

var (
	baseColumns = []string{
		ColFullPath, ColFileName, ColSizeBytes, ColLastModified, ColLastAccessed,
		ColCreated, ColExtension, ColSubrole, ColMimeType, ColHost, ColUsername,
		ColOS, ColOSVersion, ColScanID, ColScanTimestamp, ColParentFolder,
		ColRootFolder, ColOwner, ColFileHash, ColIsAppContainer, ColIsDuplicate,
		ColDuplicateOf,
	}
	containerColumns = []string{
		ColAppName, ColDescription, ColDependencies, ColHasElectron,
		ColHasTailwind, ColScripts, ColPkgMain, ColPkgVersion, ColPkgSemVer,
	}
	errorColumns = []string{ColFullPath, ColFileName, ColError}
)

// ListSeparator joins list-valued fields into one cell
const ListSeparator = ";"

// Table is the flattened report: a header and one row per record
type Table struct {
	Header []string
	Rows   [][]string
}

// BuildTable flattens records into a table. The header is the union of the
// column groups present in records, priority columns first and the rest in
// lexicographic order. Absent values are empty cells.
func BuildTable(records []models.Record) *Table {
	present := make(map[string]bool)
	rows := make([]map[string]string, 0, len(records))

	for _, rec := range records {
		var row map[string]string
		switch {
		case rec.Inventory != nil:
			row = inventoryRow(rec.Inventory)
			markAll(present, baseColumns)
			if rec.Inventory.Container != nil {
				markAll(present, containerColumns)
			}
		case rec.Failure != nil:
			row = errorRow(rec.Failure)
			markAll(present, errorColumns)
		default:
			continue
		}
		rows = append(rows, row)
	}

	table := &Table{Header: header(present)}
	for _, row := range rows {
		cells := make([]string, len(table.Header))
		for i, col := range table.Header {
			cells[i] = row[col]
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func header(present map[string]bool) []string {
	cols := append([]string(nil), PriorityColumns...)
	isPriority := make(map[string]bool, len(PriorityColumns))
	for _, c := range PriorityColumns {
		isPriority[c] = true
	}

	var rest []string
	for c := range present {
		if !isPriority[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

func markAll(set map[string]bool, cols []string) {
	for _, c := range cols {
		set[c] = true
	}
}

func inventoryRow(r *models.InventoryRecord) map[string]string {
	row := map[string]string{
		ColFullPath:       r.FullPath,
		ColFileName:       r.FileName,
		ColSizeBytes:      strconv.FormatInt(r.SizeBytes, 10),
		ColLastModified:   r.LastModified,
		ColLastAccessed:   r.LastAccessed,
		ColCreated:        r.Created,
		ColExtension:      r.Extension,
		ColSubrole:        string(r.Role),
		ColMimeType:       r.MimeType,
		ColHost:           r.Host,
		ColUsername:       r.Username,
		ColOS:             r.OS,
		ColOSVersion:      r.OSVersion,
		ColScanID:         r.ScanID,
		ColScanTimestamp:  r.ScanTime,
		ColParentFolder:   r.ParentFolder,
		ColRootFolder:     r.RootFolder,
		ColOwner:          r.Owner,
		ColFileHash:       r.FileHash,
		ColIsAppContainer: strconv.FormatBool(r.IsAppContainer),
		ColIsDuplicate:    strconv.FormatBool(r.IsDuplicate),
		ColDuplicateOf:    r.DuplicateOf,
	}

	if c := r.Container; c != nil {
		row[ColAppName] = c.AppName
		row[ColDescription] = c.Description
		row[ColDependencies] = strings.Join(c.Dependencies, ListSeparator)
		row[ColHasElectron] = strconv.FormatBool(c.HasElectron)
		row[ColHasTailwind] = strconv.FormatBool(c.HasTailwind)
		row[ColScripts] = strings.Join(c.Scripts, ListSeparator)
		row[ColPkgMain] = c.Main
		row[ColPkgVersion] = c.Version
		row[ColPkgSemVer] = c.SemVer
	}
	return row
}

func errorRow(r *models.ErrorRecord) map[string]string {
	return map[string]string{
		ColFullPath: r.FullPath,
		ColFileName: r.FileName,
		ColError:    r.Error,
	}
}
