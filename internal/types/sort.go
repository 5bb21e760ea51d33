package types

import "sort"

// SortNotes orders notes for display: pinned notes before unpinned ones,
// most recently updated first within each group.
//
// The pinned-first order is a compound order the storage layer's single
// updated_at index cannot express, so callers fetch by that index and apply
// this in-memory pass. The data set is one user's personal collection, so
// the re-sort on every read is not a scaling concern.
func SortNotes(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].UpdatedAt > notes[j].UpdatedAt
	})
}
