// Package hierarchy reconstructs the three-level classification tree
// implied by a flat list of leaf allocations.
//
// The tree has a synthetic root above three levels: category (top),
// sector (mid) and subsector (leaf). Values aggregate strictly additively
// upward, so for every non-leaf node the value equals the sum of its
// children's values within floating-point tolerance.
package hierarchy

// Level identifies a node's tier in the classification hierarchy.
type Level int

// Hierarchy levels from the synthetic root down to the leaves.
const (
	LevelRoot Level = iota
	LevelCategory
	LevelSector
	LevelSubsector
)

// String returns the lowercase level name used in serialized output and
// selection callbacks.
func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "root"
	case LevelCategory:
		return "category"
	case LevelSector:
		return "sector"
	case LevelSubsector:
		return "subsector"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialize as
// their names in JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "root":
		*l = LevelRoot
	case "category":
		*l = LevelCategory
	case "sector":
		*l = LevelSector
	case "subsector":
		*l = LevelSubsector
	default:
		*l = LevelRoot
	}
	return nil
}

// Node is a single node in the reconstructed hierarchy.
//
// ID is unique within the whole tree. Code carries the classification code
// for the selection callback contract; the synthetic root has an empty
// code. Children is non-empty for category and sector nodes that carry
// value, and always empty for subsector nodes.
type Node struct {
	ID       string
	Code     string
	Level    Level
	Name     string
	Value    float64
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits the node and all descendants in depth-first traversal
// order, parents before children, siblings in insertion order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the descendant (or the node itself) with the given ID,
// or nil if absent.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.ID == id {
			found = node
		}
	})
	return found
}

// MaxDepth returns the number of levels below the node, counting the node
// itself as depth zero. An empty root reports zero.
func (n *Node) MaxDepth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.MaxDepth() + 1; d > max {
			max = d
		}
	}
	return max
}

// CountNodes returns the total number of nodes in the subtree, including
// the node itself.
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
