package watchlist

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devbrewai/veritas/internal/normalize"
	"github.com/devbrewai/veritas/internal/phonetic"
)

// Snapshot is an immutable, versioned view of the watchlist plus its blocking
// index. Snapshots are built entirely off to the side and never mutated after
// publication; in-flight queries hold a reference for the duration of a call
// and old snapshots are garbage-collected once no references remain.
type Snapshot struct {
	// Version identifies this snapshot. A fresh token is minted per build, so
	// results can report exactly which list state they were screened against.
	Version string

	// BuiltAt records when the snapshot was constructed.
	BuiltAt time.Time

	// SkippedVariants counts name variants whose normalization produced zero
	// tokens and which were therefore left out of the index.
	SkippedVariants int

	entries  []Entry
	variants []Variant
	index    *Index
}

// Build constructs a snapshot from raw feed records, including the blocking
// index. prefixLen is the block-key prefix length (see Index).
//
// Entry IDs must be unique within the snapshot; a duplicate fails the whole
// build. A variant that normalizes to zero tokens is skipped (and counted)
// rather than failing the load, but an entry with no usable variant at all is
// rejected because it would be unreachable by blocking.
func Build(records []Record, prefixLen int) (*Snapshot, error) {
	snap := &Snapshot{
		Version: uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		entries: make([]Entry, 0, len(records)),
	}

	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		id := rec.EntryID
		if id == "" {
			id = fmt.Sprintf("%s-%06d", rec.SourceListID, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate entry id %q at record %d", id, i)
		}
		seen[id] = struct{}{}

		entry := Entry{
			ID:             id,
			PrimaryName:    rec.PrimaryName,
			NormalizedName: normalize.Normalize(rec.PrimaryName),
			Aliases:        rec.Aliases,
			ListSource:     rec.SourceListID,
		}
		if len(rec.CountryCodes) > 0 {
			entry.CountryCodes = make(map[string]struct{}, len(rec.CountryCodes))
			for _, c := range rec.CountryCodes {
				entry.CountryCodes[c] = struct{}{}
			}
		}

		entryIdx := len(snap.entries)
		usable := 0

		if entry.NormalizedName.IsEmpty() {
			snap.SkippedVariants++
		} else {
			snap.variants = append(snap.variants, newVariant(entryIdx, 0, rec.PrimaryName, entry.NormalizedName))
			usable++
		}

		for ai, alias := range rec.Aliases {
			name := normalize.Normalize(alias)
			if name.IsEmpty() {
				snap.SkippedVariants++
				continue
			}
			snap.variants = append(snap.variants, newVariant(entryIdx, ai+1, alias, name))
			usable++
		}

		if usable == 0 {
			return nil, fmt.Errorf("entry %q has no name variant that survives normalization", id)
		}

		snap.entries = append(snap.entries, entry)
	}

	snap.index = buildIndex(snap.variants, prefixLen)
	return snap, nil
}

func newVariant(entryIdx, variantID int, display string, name normalize.Name) Variant {
	return Variant{
		EntryIdx:  entryIdx,
		VariantID: variantID,
		Display:   display,
		Name:      name,
		Codes:     phonetic.EncodeAll(name.Tokens),
	}
}

// Len returns the number of entries in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Entry returns the entry at index i.
func (s *Snapshot) Entry(i int) *Entry {
	return &s.entries[i]
}

// Variant returns the name variant at index vi.
func (s *Snapshot) Variant(vi int) *Variant {
	return &s.variants[vi]
}

// VariantCount returns the number of indexed name variants.
func (s *Snapshot) VariantCount() int {
	return len(s.variants)
}

// Candidates retrieves the blocking candidates for a normalized, encoded
// query. See Index.Candidates for the retrieval and ceiling semantics.
func (s *Snapshot) Candidates(tokens []string, codes []phonetic.Code, ceiling int) []int {
	return s.index.Candidates(tokens, codes, ceiling)
}
