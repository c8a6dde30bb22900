package hierarchy

import (
	"fmt"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/classify"
)

// RootID is the node ID of the synthetic root.
const RootID = "root"

// RootName is the display name of the synthetic root.
const RootName = "Total"

// Build folds the flat allocation list into a category → sector →
// subsector tree under a synthetic root.
//
// For each allocation the sector and category ancestors are resolved via
// the lookup (with truncation fallback for unknown codes). A 3-digit
// allocation is its own sector: its value lands on the sector node and no
// subsector child is created for it. Aggregation is strictly additive and
// every allocation contributes exactly one leaf, so duplicate codes yield
// duplicate leaves.
//
// An empty allocation list returns a root with zero children and value 0;
// that is a valid terminal state, not an error.
func Build(allocations []allocation.Leaf, lookup *classify.Lookup) *Node {
	root := &Node{ID: RootID, Level: LevelRoot, Name: RootName}

	b := &builder{
		categories: make(map[string]*Node),
		sectors:    make(map[string]*Node),
		leafSeen:   make(map[string]int),
	}

	for _, a := range allocations {
		anc := lookup.Resolve(a.Code, a.Name)

		category := b.category(root, anc)
		sector := b.sector(category, anc)

		category.Value += a.Percentage
		sector.Value += a.Percentage
		root.Value += a.Percentage

		if classify.IsSectorCode(a.Code) {
			// Sector-level allocation: the value stays on the sector node.
			continue
		}
		sector.Children = append(sector.Children, b.leaf(a))
	}

	return root
}

// builder tracks already-created branch nodes by code so repeated
// allocations route into the same branch. Child order is first-appearance
// order, which makes traversal order a function of allocation order.
type builder struct {
	categories map[string]*Node
	sectors    map[string]*Node
	leafSeen   map[string]int
}

func (b *builder) category(root *Node, anc classify.Ancestry) *Node {
	if n, ok := b.categories[anc.CategoryCode]; ok {
		return n
	}
	n := &Node{
		ID:    "category:" + anc.CategoryCode,
		Code:  anc.CategoryCode,
		Level: LevelCategory,
		Name:  anc.CategoryName,
	}
	b.categories[anc.CategoryCode] = n
	root.Children = append(root.Children, n)
	return n
}

func (b *builder) sector(category *Node, anc classify.Ancestry) *Node {
	if n, ok := b.sectors[anc.SectorCode]; ok {
		return n
	}
	n := &Node{
		ID:    "sector:" + anc.SectorCode,
		Code:  anc.SectorCode,
		Level: LevelSector,
		Name:  anc.SectorName,
	}
	b.sectors[anc.SectorCode] = n
	category.Children = append(category.Children, n)
	return n
}

// leaf creates a subsector node for one allocation. Duplicate codes get a
// numbered ID suffix so IDs stay unique across the tree.
func (b *builder) leaf(a allocation.Leaf) *Node {
	b.leafSeen[a.Code]++
	id := "subsector:" + a.Code
	if seen := b.leafSeen[a.Code]; seen > 1 {
		id = fmt.Sprintf("%s#%d", id, seen)
	}
	return &Node{
		ID:    id,
		Code:  a.Code,
		Level: LevelSubsector,
		Name:  a.Name,
		Value: a.Percentage,
	}
}
