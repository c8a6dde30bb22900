// Package classify provides the static classification lookup used to
// reconstruct the category → sector → subsector hierarchy from flat
// allocation codes.
//
// The lookup is built from a packaged reference dataset of classification
// records (one per leaf code) and is immutable after construction, so a
// single table can be shared by any number of concurrent layout
// computations.
//
// Codes follow a fixed-width convention: 3-digit codes identify sectors
// (mid-level entities), 5-digit codes identify subsectors (leaf entities).
// Codes absent from the dataset are resolved through a truncation fallback
// rather than rejected; see [Lookup.Resolve].
package classify

// Record is a single entry in the packaged reference dataset.
//
// The JSON field names mirror the dataset file verbatim: each record
// describes one leaf classification code together with its sector group
// and top-level category. This is the only bit-exact external format the
// engine depends on.
type Record struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	GroupCode    string `json:"group-code"`
	GroupName    string `json:"group-name"`
	CategoryCode string `json:"category-code"`
	CategoryName string `json:"category-name"`
}

// Ancestry is the resolved ancestor chain for a classification code.
type Ancestry struct {
	CategoryCode string
	CategoryName string
	SectorCode   string
	SectorName   string

	// Synthetic is true when the ancestors were derived by the truncation
	// fallback because the code has no dataset entry.
	Synthetic bool
}

// IsSectorCode reports whether code identifies a mid-level (sector) entity
// under the fixed-width convention. A sector-level allocation is its own
// mid-level parent; no leaf node is created for it.
func IsSectorCode(code string) bool {
	return len(code) == 3
}
