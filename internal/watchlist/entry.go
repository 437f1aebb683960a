// Package watchlist owns the immutable, versioned in-memory representation of
// sanctions watchlist entries, the blocking index derived from them, and the
// store that publishes snapshots atomically.
package watchlist

import (
	"sort"

	"github.com/devbrewai/veritas/internal/normalize"
	"github.com/devbrewai/veritas/internal/phonetic"
)

// Record is one raw entry from the ingestion feed, as supplied by an external
// loader. Fetching and parsing OFAC/UN/EU source formats happens upstream;
// this core only consumes already-parsed records.
type Record struct {
	EntryID      string   `json:"entry_id,omitempty"`
	SourceListID string   `json:"source_list_id"`
	PrimaryName  string   `json:"primary_name"`
	Aliases      []string `json:"aliases,omitempty"`
	CountryCodes []string `json:"country_codes,omitempty"`
}

// Entry is one sanctioned entity inside a snapshot. Entries are immutable
// after the snapshot is built.
type Entry struct {
	// ID is stable and unique within a snapshot. It comes from the feed when
	// provided, otherwise it is derived deterministically from the source
	// list and ordinal so repeated loads of the same feed agree.
	ID string

	// PrimaryName is the canonical display name, kept raw for reporting.
	PrimaryName string

	// NormalizedName is the cached normalized form of PrimaryName. It is
	// recomputed only at ingestion and always derivable via normalize.Normalize.
	NormalizedName normalize.Name

	// Aliases keeps the source-list order and is not deduplicated; a list may
	// legitimately repeat a spelling.
	Aliases []string

	// CountryCodes is the set of ISO codes associated with the entity.
	// Empty means unknown, which is common on real lists.
	CountryCodes map[string]struct{}

	// ListSource records provenance (e.g. OFAC-SDN, UN, EU). It is used for
	// tie-breaking and reporting, never for matching.
	ListSource string
}

// HasCountry reports whether code is associated with the entry.
func (e *Entry) HasCountry(code string) bool {
	_, ok := e.CountryCodes[code]
	return ok
}

// Countries returns the entry's country codes in sorted order.
func (e *Entry) Countries() []string {
	if len(e.CountryCodes) == 0 {
		return nil
	}
	codes := make([]string, 0, len(e.CountryCodes))
	for c := range e.CountryCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Variant is one name variant (primary or alias) of an entry, with its
// normalized tokens and per-token phonetic codes precomputed at build time.
// Blocking and scoring both operate at variant granularity: an entity can
// have a low-similarity primary name but a high-similarity alias.
type Variant struct {
	// EntryIdx indexes into the snapshot's entry slice.
	EntryIdx int

	// VariantID is 0 for the primary name, i for the i-th alias (1-based).
	VariantID int

	// Display is the raw variant string for reporting.
	Display string

	Name  normalize.Name
	Codes []phonetic.Code
}

// IsPrimary reports whether the variant is the entry's primary name.
func (v *Variant) IsPrimary() bool {
	return v.VariantID == 0
}
