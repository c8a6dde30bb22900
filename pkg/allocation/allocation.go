// Package allocation defines the leaf allocation input type and the strict
// schema validation applied at the system boundary.
//
// The surrounding application supplies allocations as loosely-typed JSON.
// Everything entering the pure layout core goes through [Parse] first, so
// shape problems (missing fields, wrong types, unknown keys) are rejected
// with structured errors before any geometry is computed.
//
// Percentage values are validated for shape only: negative values, values
// above 100, and sums that do not reach 100 all pass through verbatim and
// propagate into aggregated node values unchanged. This is a deliberate
// garbage-in/garbage-out policy; silently "fixing" suspect percentages
// would hide upstream data-quality issues from the dashboard.
package allocation

import (
	"bytes"
	"encoding/json"

	"github.com/openaims/sectorflow/pkg/errors"
)

// Leaf is a single percentage-weighted classification entry supplied by
// the caller. Code follows the fixed-width convention: 3 digits for a
// sector-level entry, 5 digits for a subsector-level entry.
type Leaf struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// rawLeaf mirrors Leaf with pointer fields so field presence can be
// distinguished from zero values during validation.
type rawLeaf struct {
	Code       *string  `json:"code"`
	Name       *string  `json:"name"`
	Percentage *float64 `json:"percentage"`
}

// Parse decodes and validates a JSON array of leaf allocations.
//
// Validation is strict: unknown fields, missing fields, and codes outside
// the 3/5-digit convention are rejected with INVALID_ALLOCATION errors.
// An empty array is valid input and yields an empty slice.
func Parse(data []byte) ([]Leaf, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw []rawLeaf
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAllocation, err, "failed to parse allocations")
	}

	out := make([]Leaf, 0, len(raw))
	for i, r := range raw {
		leaf, err := validate(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, leaf)
	}
	return out, nil
}

func validate(i int, r rawLeaf) (Leaf, error) {
	if r.Code == nil {
		return Leaf{}, errors.New(errors.ErrCodeInvalidAllocation, "allocation %d: missing code", i)
	}
	if r.Name == nil {
		return Leaf{}, errors.New(errors.ErrCodeInvalidAllocation, "allocation %d: missing name", i)
	}
	if r.Percentage == nil {
		return Leaf{}, errors.New(errors.ErrCodeInvalidAllocation, "allocation %d: missing percentage", i)
	}
	if err := errors.ValidateClassificationCode(*r.Code); err != nil {
		return Leaf{}, errors.Wrap(errors.ErrCodeInvalidAllocation, err, "allocation %d", i)
	}
	if err := errors.ValidateAllocationName(*r.Name); err != nil {
		return Leaf{}, errors.Wrap(errors.ErrCodeInvalidAllocation, err, "allocation %d", i)
	}
	return Leaf{Code: *r.Code, Name: *r.Name, Percentage: *r.Percentage}, nil
}
