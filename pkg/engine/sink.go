package engine

import "encoding/json"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent    bool
	generator string
}

// WithJSONIndent pretty-prints the output with two-space indentation.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONGenerator records the producing tool and version in the output,
// for provenance when results are stored or shared.
func WithJSONGenerator(g string) JSONOption { return func(r *jsonRenderer) { r.generator = g } }

type jsonOutput struct {
	Generator string `json:"generator,omitempty"`
	*LayoutResult
}

// RenderJSON serializes a layout result to JSON. Field order is fixed by
// the struct definitions, so identical results serialize to identical
// bytes, which makes the output suitable for snapshot tests and cache keys.
func RenderJSON(result *LayoutResult, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Generator: r.generator, LayoutResult: result}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// ParseResult deserializes a layout result previously produced by
// [RenderJSON]. Used by saved-view storage and the API layer.
func ParseResult(data []byte) (*LayoutResult, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out.LayoutResult == nil {
		out.LayoutResult = &LayoutResult{}
	}
	return out.LayoutResult, nil
}
