package stats

import (
	"fmt"
	"sort"
	"time"
)

// DateLookup resolves an entity id to the date it is ordered by.
type DateLookup func(id string) (time.Time, bool)

type indexEntry struct {
	id   string
	date time.Time
}

// Index keeps, per user, entity ids ordered by the entity's date ascending.
// Equal dates keep insertion order. The date is read once at insertion, which
// is safe because entity dates never change after synthesis.
//
// Index is not safe for concurrent writes. Once synthesis is done it is only
// read, and concurrent reads need no locking.
type Index struct {
	dateOf  DateLookup
	entries map[string][]indexEntry
}

// NewIndex creates an empty index that orders ids by dateOf.
func NewIndex(dateOf DateLookup) *Index {
	return &Index{
		dateOf:  dateOf,
		entries: make(map[string][]indexEntry),
	}
}

// Insert adds id to the username's ordered collection. It fails when id does
// not resolve to an entity.
func (ix *Index) Insert(username, id string) error {
	date, ok := ix.dateOf(id)
	if !ok {
		return fmt.Errorf("index %s: unknown id %q", username, id)
	}

	list := ix.entries[username]
	// First position with a strictly later date, so ties stay in insertion order.
	pos := sort.Search(len(list), func(i int) bool {
		return list[i].date.After(date)
	})
	list = append(list, indexEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = indexEntry{id: id, date: date}
	ix.entries[username] = list
	return nil
}

// Page returns ids [(page-1)*size, page*size) of the user's collection,
// clamped to its length. Unknown users, pages past the end and non-positive
// arguments yield an empty slice.
func (ix *Index) Page(username string, page, size int) []string {
	if page < 1 || size < 1 {
		return []string{}
	}
	list := ix.entries[username]
	if len(list) == 0 || page-1 > (len(list)-1)/size {
		return []string{}
	}
	// page-1 is at most the last page index here, so neither product overflows.
	start := (page - 1) * size
	end := len(list)
	if size < end-start {
		end = start + size
	}

	ids := make([]string, 0, end-start)
	for _, e := range list[start:end] {
		ids = append(ids, e.id)
	}
	return ids
}

// Len returns the number of ids indexed for username.
func (ix *Index) Len(username string) int {
	return len(ix.entries[username])
}

// Users returns the number of users with at least one entry.
func (ix *Index) Users() int {
	return len(ix.entries)
}
