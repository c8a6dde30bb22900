package errors

import (
	"math"
	"regexp"
	"unicode"
)

// classificationCodeRegex matches numeric classification codes.
// Valid codes are 3 digits (sector) or 5 digits (subsector).
var classificationCodeRegex = regexp.MustCompile(`^\d{3}(\d{2})?$`)

// ValidateClassificationCode validates a classification code string.
// It enforces the fixed-width convention used throughout: 3-digit codes
// identify sectors (mid-level entities), 5-digit codes identify subsectors
// (leaf entities). Codes of any other shape are rejected at the boundary;
// the pure core never sees them.
func ValidateClassificationCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidAllocation, "classification code cannot be empty")
	}

	for _, r := range code {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAllocation, "classification code contains control characters")
		}
	}

	if !classificationCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidAllocation, "classification code must be 3 or 5 digits: %q", code)
	}

	return nil
}

// ValidateAllocationName validates a display name attached to an allocation.
// Names are free-form but must be printable and of reasonable length.
func ValidateAllocationName(name string) error {
	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidAllocation, "allocation name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidAllocation, "allocation name contains control characters")
		}
	}

	return nil
}

// ValidateCanvas validates flow layout canvas dimensions.
func ValidateCanvas(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidCanvas, "canvas dimensions must be finite")
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas dimensions must be positive: %gx%g", width, height)
	}
	return nil
}
