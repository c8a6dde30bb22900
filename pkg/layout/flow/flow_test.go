package flow

import (
	"math"
	"reflect"
	"testing"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/hierarchy"
	"github.com/openaims/sectorflow/pkg/layout"
)

const tolerance = 1e-6

func testLookup() *classify.Lookup {
	return classify.NewLookup([]classify.Record{
		{Code: "11120", Name: "Education facilities and training", GroupCode: "111", GroupName: "Education, Level Unspecified", CategoryCode: "110", CategoryName: "Education"},
		{Code: "11130", Name: "Teacher training", GroupCode: "111", GroupName: "Education, Level Unspecified", CategoryCode: "110", CategoryName: "Education"},
		{Code: "12220", Name: "Basic health care", GroupCode: "122", GroupName: "Basic Health", CategoryCode: "120", CategoryName: "Health"},
	})
}

func testTree() *hierarchy.Node {
	return hierarchy.Build([]allocation.Leaf{
		{Code: "11120", Name: "Education facilities", Percentage: 40},
		{Code: "11130", Name: "Teacher training", Percentage: 20},
		{Code: "12220", Name: "Basic health care", Percentage: 40},
	}, testLookup())
}

func testCanvas() layout.Canvas {
	return layout.Canvas{Width: 800, Height: 600}
}

func nodesByID(nodes []layout.PositionedNode) map[string]layout.PositionedNode {
	m := make(map[string]layout.PositionedNode, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}

func TestLayoutBandPositions(t *testing.T) {
	nodes, _ := Layout(testTree(), testCanvas())
	byID := nodesByID(nodes)

	levelWidth := (800.0 - NodeWidth) / 3

	tests := []struct {
		id    string
		wantX float64
	}{
		{"root", 0},
		{"category:110", levelWidth},
		{"sector:111", 2 * levelWidth},
		{"subsector:11120", 3 * levelWidth},
	}
	for _, tt := range tests {
		n, ok := byID[tt.id]
		if !ok {
			t.Fatalf("node %s missing from layout", tt.id)
		}
		if math.Abs(n.Rect.X0-tt.wantX) > tolerance {
			t.Errorf("%s X0 = %g, want %g", tt.id, n.Rect.X0, tt.wantX)
		}
		if math.Abs(n.Rect.Width()-NodeWidth) > tolerance {
			t.Errorf("%s width = %g, want %g", tt.id, n.Rect.Width(), NodeWidth)
		}
	}
}

func TestLayoutProportionalHeights(t *testing.T) {
	tree := testTree()
	canvas := testCanvas()
	nodes, _ := Layout(tree, canvas)
	byID := nodesByID(nodes)

	scale := canvas.Height / tree.Value

	// 60% education category → height 60*scale.
	if got, want := byID["category:110"].Rect.Height(), 60*scale; math.Abs(got-want) > tolerance {
		t.Errorf("category:110 height = %g, want %g", got, want)
	}
	if got, want := byID["subsector:11130"].Rect.Height(), 20*scale; math.Abs(got-want) > tolerance {
		t.Errorf("subsector:11130 height = %g, want %g", got, want)
	}
}

func TestLayoutFlowConservation(t *testing.T) {
	tree := testTree()
	canvas := testCanvas()
	_, links := Layout(tree, canvas)

	scale := canvas.Height / tree.Value

	outgoing := make(map[string]float64)
	for _, l := range links {
		outgoing[l.SourceID] += l.Thickness
	}

	tree.Walk(func(n *hierarchy.Node) {
		if n.IsLeaf() {
			return
		}
		if got, want := outgoing[n.ID], n.Value*scale; math.Abs(got-want) > tolerance {
			t.Errorf("node %s: outgoing thickness %g, want %g", n.ID, got, want)
		}
	})
}

func TestLayoutLinkAnchorsMonotone(t *testing.T) {
	_, links := Layout(testTree(), testCanvas())

	// Outgoing anchors on a node advance monotonically in link order.
	lastSourceY := make(map[string]float64)
	for _, l := range links {
		if prev, ok := lastSourceY[l.SourceID]; ok && l.SourceY < prev {
			t.Errorf("link %s→%s: source anchor %g regressed below %g", l.SourceID, l.TargetID, l.SourceY, prev)
		}
		lastSourceY[l.SourceID] = l.SourceY + l.Thickness
	}
}

func TestLayoutDeterminism(t *testing.T) {
	nodesA, linksA := Layout(testTree(), testCanvas())
	nodesB, linksB := Layout(testTree(), testCanvas())

	if !reflect.DeepEqual(nodesA, nodesB) {
		t.Error("node geometry differs between identical calls")
	}
	if !reflect.DeepEqual(linksA, linksB) {
		t.Error("link geometry differs between identical calls")
	}
}

func TestLayoutMinHeightFloor(t *testing.T) {
	tree := hierarchy.Build([]allocation.Leaf{
		{Code: "11120", Name: "Big", Percentage: 99.99},
		{Code: "12220", Name: "Tiny", Percentage: 0.01},
	}, testLookup())

	nodes, _ := Layout(tree, testCanvas())
	byID := nodesByID(nodes)

	tiny := byID["subsector:12220"]
	if tiny.Rect.Height() != minHeight[hierarchy.LevelSubsector] {
		t.Errorf("tiny leaf height = %g, want min height %g", tiny.Rect.Height(), minHeight[hierarchy.LevelSubsector])
	}
}

func TestLayoutZeroValueNode(t *testing.T) {
	tree := hierarchy.Build([]allocation.Leaf{
		{Code: "11120", Name: "All of it", Percentage: 100},
		{Code: "12220", Name: "Nothing", Percentage: 0},
	}, testLookup())

	nodes, links := Layout(tree, testCanvas())
	byID := nodesByID(nodes)

	zero := byID["subsector:12220"]
	if zero.Rect.Height() != minHeight[hierarchy.LevelSubsector] {
		t.Errorf("zero-value node height = %g, want min height", zero.Rect.Height())
	}

	for _, l := range links {
		if l.TargetID == "subsector:12220" && l.Thickness != 0 {
			t.Errorf("zero-value link thickness = %g, want 0", l.Thickness)
		}
	}
}

func TestLayoutEmptyTree(t *testing.T) {
	tree := hierarchy.Build(nil, testLookup())
	nodes, links := Layout(tree, testCanvas())

	if len(nodes) != 0 {
		t.Errorf("nodes = %d, want 0", len(nodes))
	}
	if len(links) != 0 {
		t.Errorf("links = %d, want 0", len(links))
	}
}

func TestLayoutZeroTotalValue(t *testing.T) {
	// All-zero allocations: every node floors to its minimum height and
	// every link has zero thickness. Must not panic or divide by zero.
	tree := hierarchy.Build([]allocation.Leaf{
		{Code: "11120", Name: "A", Percentage: 0},
		{Code: "12220", Name: "B", Percentage: 0},
	}, testLookup())

	nodes, links := Layout(tree, testCanvas())
	if len(nodes) == 0 {
		t.Fatal("zero-value tree should still produce nodes")
	}
	for _, l := range links {
		if l.Thickness != 0 {
			t.Errorf("link %s→%s thickness = %g, want 0", l.SourceID, l.TargetID, l.Thickness)
		}
	}
}

func TestLayoutStackingPadding(t *testing.T) {
	nodes, _ := Layout(testTree(), testCanvas())

	// Within a band, consecutive rects are separated by exactly NodePadding.
	var cats []layout.PositionedNode
	for _, n := range nodes {
		if n.Level == hierarchy.LevelCategory {
			cats = append(cats, n)
		}
	}
	if len(cats) != 2 {
		t.Fatalf("categories = %d, want 2", len(cats))
	}
	gap := cats[1].Rect.Y0 - cats[0].Rect.Y1
	if math.Abs(gap-NodePadding) > tolerance {
		t.Errorf("gap = %g, want %g", gap, NodePadding)
	}
}
