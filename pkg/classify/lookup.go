package classify

// Lookup is an immutable classification table keyed by leaf and sector
// code. Construct one with [NewLookup] or use the packaged [Default] table.
type Lookup struct {
	records  []Record
	byLeaf   map[string]Record
	bySector map[string]sectorEntry
}

type sectorEntry struct {
	name         string
	categoryCode string
	categoryName string
}

// NewLookup builds a lookup table from dataset records.
//
// Each record is indexed by its leaf code, and additionally by its group
// (sector) code so that sector-level allocations resolve without a separate
// dataset. Later records win on duplicate codes, matching the dataset's
// "last entry is authoritative" convention.
func NewLookup(records []Record) *Lookup {
	l := &Lookup{
		records:  append([]Record(nil), records...),
		byLeaf:   make(map[string]Record, len(records)),
		bySector: make(map[string]sectorEntry),
	}
	for _, r := range records {
		l.byLeaf[r.Code] = r
		if r.GroupCode != "" {
			l.bySector[r.GroupCode] = sectorEntry{
				name:         r.GroupName,
				categoryCode: r.CategoryCode,
				categoryName: r.CategoryName,
			}
		}
	}
	return l
}

// Len returns the number of leaf records in the table.
func (l *Lookup) Len() int { return len(l.byLeaf) }

// Records returns a copy of the dataset records in file order.
func (l *Lookup) Records() []Record {
	return append([]Record(nil), l.records...)
}

// Leaf returns the dataset record for a leaf code, if present.
func (l *Lookup) Leaf(code string) (Record, bool) {
	r, ok := l.byLeaf[code]
	return r, ok
}

// Resolve returns the ancestor chain for a classification code.
//
// Known codes resolve from the dataset. Unknown codes never fail: the
// sector ancestor is derived by truncating to the first 3 digits and the
// category ancestor by taking the first 2 digits plus a trailing zero,
// with synthetic labels "{sectorCode}" and "Category {categoryCode}".
// This recovery policy keeps allocations with missing classification data
// visible in the hierarchy instead of silently dropping them.
//
// A 3-digit code is its own sector ancestor: only its category is resolved
// or derived.
func (l *Lookup) Resolve(code, name string) Ancestry {
	if IsSectorCode(code) {
		return l.resolveSector(code, name)
	}
	return l.resolveLeaf(code)
}

func (l *Lookup) resolveLeaf(code string) Ancestry {
	if r, ok := l.byLeaf[code]; ok {
		anc := Ancestry{
			CategoryCode: r.CategoryCode,
			CategoryName: r.CategoryName,
			SectorCode:   r.GroupCode,
			SectorName:   r.GroupName,
		}
		// The sector index is authoritative for the sector → category edge
		// so that a sector can never resolve to two different categories.
		if s, ok := l.bySector[r.GroupCode]; ok {
			anc.CategoryCode = s.categoryCode
			anc.CategoryName = s.categoryName
			anc.SectorName = s.name
		}
		return anc
	}

	sectorCode := truncateSector(code)
	categoryCode := truncateCategory(code)

	// The derived sector may still be known even when the leaf is not.
	if s, ok := l.bySector[sectorCode]; ok {
		return Ancestry{
			CategoryCode: s.categoryCode,
			CategoryName: s.categoryName,
			SectorCode:   sectorCode,
			SectorName:   s.name,
			Synthetic:    true,
		}
	}

	return Ancestry{
		CategoryCode: categoryCode,
		CategoryName: "Category " + categoryCode,
		SectorCode:   sectorCode,
		SectorName:   sectorCode,
		Synthetic:    true,
	}
}

func (l *Lookup) resolveSector(code, name string) Ancestry {
	if s, ok := l.bySector[code]; ok {
		sectorName := s.name
		if sectorName == "" {
			sectorName = name
		}
		return Ancestry{
			CategoryCode: s.categoryCode,
			CategoryName: s.categoryName,
			SectorCode:   code,
			SectorName:   sectorName,
		}
	}

	categoryCode := truncateCategory(code)
	sectorName := name
	if sectorName == "" {
		sectorName = code
	}
	return Ancestry{
		CategoryCode: categoryCode,
		CategoryName: "Category " + categoryCode,
		SectorCode:   code,
		SectorName:   sectorName,
		Synthetic:    true,
	}
}

// truncateSector derives a sector code from the first 3 digits.
func truncateSector(code string) string {
	if len(code) >= 3 {
		return code[:3]
	}
	return code
}

// truncateCategory derives a category code from the first 2 digits plus a
// trailing zero (e.g. "11120" → "110", "99999" → "990").
func truncateCategory(code string) string {
	if len(code) >= 2 {
		return code[:2] + "0"
	}
	return code
}
