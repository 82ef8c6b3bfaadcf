package core

import "github.com/aerovista-us/echovalentine/pkg/models"

// Deduplicate marks content duplicates in a completed record set and returns
// how many were found. Records are visited in slice order; the first record
// seen with a hash is canonical and every later one points back to it. Error
// records and records without a valid hash never take part.
//
// It must only run after every file task has finished.
func Deduplicate(records []models.Record) int {
	canonical := make(map[string]string)
	duplicates := 0

	for _, rec := range records {
		inv := rec.Inventory
		if inv == nil {
			continue
		}
		if !inv.HasValidHash() {
			inv.IsDuplicate = false
			inv.DuplicateOf = ""
			continue
		}
		if first, ok := canonical[inv.FileHash]; ok {
			inv.IsDuplicate = true
			inv.DuplicateOf = first
			duplicates++
			continue
		}
		inv.IsDuplicate = false
		inv.DuplicateOf = ""
		canonical[inv.FileHash] = inv.FullPath
	}

	return duplicates
}
