// index.go builds the read-only lookup structure used by one search.
//
// The index is an arena of records in catalogue order plus a mapping from
// each declared name to the set of records that declare it. It is built
// from a single snapshot and never mutated afterwards.

package catalog

import (
	"slices"

	"github.com/jpl-au/caskfind/internal/query"
)

// Record is one catalogue identifier with its precomputed normalised form.
type Record struct {
	Identifier string
	Normalized string
}

// Index is an immutable view of a catalogue snapshot.
type Index struct {
	records []Record
	names   []string         // first-seen order
	aliases map[string][]int // name -> sorted record indices
}

// Build creates an index from the ordered identifiers and the entries
// declaring names. Names of entries whose identifier is not listed are kept
// as names but point at no record.
func Build(identifiers []string, entries []Entry) *Index {
	idx := &Index{
		records: make([]Record, 0, len(identifiers)),
		aliases: make(map[string][]int),
	}
	pos := make(map[string]int, len(identifiers))
	for _, id := range identifiers {
		if _, dup := pos[id]; dup {
			continue
		}
		pos[id] = len(idx.records)
		idx.records = append(idx.records, Record{Identifier: id, Normalized: query.Normalize(id)})
	}

	for _, e := range entries {
		i, listed := pos[e.Identifier]
		for _, n := range e.Names {
			set, seen := idx.aliases[n]
			if !seen {
				idx.names = append(idx.names, n)
				set = []int{}
			}
			if listed {
				if at, found := slices.BinarySearch(set, i); !found {
					set = slices.Insert(set, at, i)
				}
			}
			idx.aliases[n] = set
		}
	}
	return idx
}

// Len returns the number of records.
func (x *Index) Len() int { return len(x.records) }

// Records returns the records in catalogue order. The slice must not be modified.
func (x *Index) Records() []Record { return x.records }

// Names returns every declared name in first-seen order. The slice must not be modified.
func (x *Index) Names() []string { return x.names }

// Aliases returns the identifiers declaring name, in catalogue order.
func (x *Index) Aliases(name string) []string {
	set := x.aliases[name]
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = x.records[r].Identifier
	}
	return out
}
