package engine

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/hierarchy"
	"github.com/openaims/sectorflow/pkg/layout"
	"github.com/openaims/sectorflow/pkg/palette"

	sferrors "github.com/openaims/sectorflow/pkg/errors"
)

const tolerance = 1e-6

func testLookup() *classify.Lookup {
	return classify.NewLookup([]classify.Record{
		{Code: "11120", Name: "Education facilities and training", GroupCode: "111", GroupName: "Education, Level Unspecified", CategoryCode: "110", CategoryName: "Education"},
		{Code: "11130", Name: "Teacher training", GroupCode: "111", GroupName: "Education, Level Unspecified", CategoryCode: "110", CategoryName: "Education"},
		{Code: "12220", Name: "Basic health care", GroupCode: "122", GroupName: "Basic Health", CategoryCode: "120", CategoryName: "Health"},
	})
}

func testCanvas() layout.Canvas {
	return layout.Canvas{Width: 800, Height: 600}
}

func TestComputeFlowScenario(t *testing.T) {
	// Two leaves sharing one sector: one category node with value 100, one
	// sector node with value 100, two leaves with 60 and 40.
	allocs := []allocation.Leaf{
		{Code: "11120", Name: "Education", Percentage: 60},
		{Code: "11130", Name: "Training", Percentage: 40},
	}

	result, err := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	category, ok := result.Node("category:110")
	if !ok || math.Abs(category.Value-100) > tolerance {
		t.Errorf("category value = %g (found %v), want 100", category.Value, ok)
	}
	sector, ok := result.Node("sector:111")
	if !ok || math.Abs(sector.Value-100) > tolerance {
		t.Errorf("sector value = %g (found %v), want 100", sector.Value, ok)
	}
	leafA, _ := result.Node("subsector:11120")
	leafB, _ := result.Node("subsector:11130")
	if leafA.Value != 60 || leafB.Value != 40 {
		t.Errorf("leaf values = %g/%g, want 60/40", leafA.Value, leafB.Value)
	}

	if result.Summary.TotalValue != 100 {
		t.Errorf("summary total = %g, want 100", result.Summary.TotalValue)
	}
	if result.Summary.NodeCount != len(result.Nodes) || result.Summary.LinkCount != len(result.Links) {
		t.Error("summary counts disagree with output slices")
	}
}

func TestComputeEmptyInput(t *testing.T) {
	result, err := Compute(context.Background(), nil, testLookup(), ModeFlow, testCanvas())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(result.Nodes) != 0 || len(result.Links) != 0 {
		t.Errorf("empty input gave %d nodes, %d links; want 0/0", len(result.Nodes), len(result.Links))
	}
	if result.Summary.TotalValue != 0 {
		t.Errorf("summary total = %g, want 0", result.Summary.TotalValue)
	}
}

func TestComputeUnknownCodeFallback(t *testing.T) {
	allocs := []allocation.Leaf{
		{Code: "99999", Name: "Mystery", Percentage: 100},
	}

	result, err := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())
	if err != nil {
		t.Fatalf("Compute() must not fail on unknown codes: %v", err)
	}

	category, ok := result.Node("category:990")
	if !ok {
		t.Fatal("synthetic category missing")
	}
	if category.Name != "Category 990" {
		t.Errorf("synthetic category name = %q, want %q", category.Name, "Category 990")
	}
	sector, ok := result.Node("sector:999")
	if !ok || sector.Name != "999" {
		t.Errorf("synthetic sector = %+v", sector)
	}
}

func TestComputeIdempotent(t *testing.T) {
	allocs := []allocation.Leaf{
		{Code: "11120", Name: "A", Percentage: 55},
		{Code: "12220", Name: "B", Percentage: 45},
	}

	first, err := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, _ := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different results")
	}

	firstJSON, _ := RenderJSON(first)
	secondJSON, _ := RenderJSON(second)
	if string(firstJSON) != string(secondJSON) {
		t.Error("identical results serialized differently")
	}
}

func TestComputeRadialMode(t *testing.T) {
	allocs := []allocation.Leaf{
		{Code: "11120", Name: "A", Percentage: 70},
		{Code: "12220", Name: "B", Percentage: 30},
	}

	result, err := Compute(context.Background(), allocs, testLookup(), ModeRadial, testCanvas())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if len(result.Links) != 0 {
		t.Errorf("radial mode emitted %d links, want 0", len(result.Links))
	}
	for _, n := range result.Nodes {
		if n.Arc == nil {
			t.Errorf("node %s missing arc geometry", n.ID)
		}
		if n.Rect != nil {
			t.Errorf("node %s has rect geometry in radial mode", n.ID)
		}
	}

	// Radius derives from the smaller canvas dimension.
	cat, _ := result.Node("category:110")
	var maxOuter float64
	for _, n := range result.Nodes {
		if n.Arc.RadiusOuter > maxOuter {
			maxOuter = n.Arc.RadiusOuter
		}
	}
	if math.Abs(maxOuter-300) > tolerance {
		t.Errorf("outer radius = %g, want 300", maxOuter)
	}
	if cat.Arc.RadiusInner != 0 {
		t.Errorf("category ring starts at %g, want 0", cat.Arc.RadiusInner)
	}
}

func TestComputeColors(t *testing.T) {
	allocs := []allocation.Leaf{
		{Code: "11120", Name: "A", Percentage: 100},
	}

	result, err := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	category, _ := result.Node("category:110")
	if want := palette.Base[0].Darken(0.7).Hex(); category.Color != want {
		t.Errorf("category color = %s, want darkened base %s", category.Color, want)
	}

	// The root→category link keeps the undarkened base color.
	var rootLink *layout.FlowLink
	for i := range result.Links {
		if result.Links[i].TargetID == "category:110" {
			rootLink = &result.Links[i]
		}
	}
	if rootLink == nil {
		t.Fatal("root link missing")
	}
	if want := palette.Base[0].Hex(); rootLink.Color != want {
		t.Errorf("root link color = %s, want base %s", rootLink.Color, want)
	}
}

func TestComputeInvalidMode(t *testing.T) {
	_, err := Compute(context.Background(), nil, testLookup(), Mode("spiral"), testCanvas())
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !sferrors.Is(err, sferrors.ErrCodeInvalidMode) {
		t.Errorf("error code = %q, want INVALID_MODE", sferrors.GetCode(err))
	}
}

func TestComputeInvalidCanvas(t *testing.T) {
	_, err := Compute(context.Background(), nil, testLookup(), ModeFlow, layout.Canvas{Width: -1, Height: 600})
	if err == nil {
		t.Fatal("expected error for invalid canvas")
	}
	if !sferrors.Is(err, sferrors.ErrCodeInvalidCanvas) {
		t.Errorf("error code = %q, want INVALID_CANVAS", sferrors.GetCode(err))
	}
}

func TestSelection(t *testing.T) {
	allocs := []allocation.Leaf{
		{Code: "11120", Name: "A", Percentage: 100},
	}
	result, _ := Compute(context.Background(), allocs, testLookup(), ModeFlow, testCanvas())

	sel, ok := result.Selection("subsector:11120")
	if !ok {
		t.Fatal("selection lookup failed")
	}
	if sel.Code != "11120" || sel.Level != hierarchy.LevelSubsector {
		t.Errorf("selection = %+v", sel)
	}

	if _, ok := result.Selection("missing"); ok {
		t.Error("selection of unknown id should fail")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("flow"); err != nil || m != ModeFlow {
		t.Errorf("ParseMode(flow) = %v, %v", m, err)
	}
	if m, err := ParseMode("radial"); err != nil || m != ModeRadial {
		t.Errorf("ParseMode(radial) = %v, %v", m, err)
	}
	if _, err := ParseMode("sunburst"); err == nil {
		t.Error("ParseMode(sunburst) should fail")
	}
}
