package classify

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/openaims/sectorflow/pkg/errors"
)

//go:embed data/sectors.json
var sectorData []byte

var (
	defaultOnce   sync.Once
	defaultLookup *Lookup
	defaultErr    error
)

// Default returns the lookup table built from the packaged sector dataset.
// The table is parsed once per process and shared; it is safe for
// concurrent use.
func Default() (*Lookup, error) {
	defaultOnce.Do(func() {
		defaultLookup, defaultErr = ParseDataset(sectorData)
	})
	return defaultLookup, defaultErr
}

// MustDefault is like Default but panics if the packaged dataset cannot
// be parsed. The dataset is embedded at build time, so a failure here
// means a broken build rather than a runtime condition.
func MustDefault() *Lookup {
	lookup, err := Default()
	if err != nil {
		panic(err)
	}
	return lookup
}

// ParseDataset decodes a classification dataset from JSON bytes and builds
// a lookup table. The expected format is an array of records with "code",
// "name", "group-code", "group-name", "category-code" and "category-name"
// fields.
func ParseDataset(data []byte) (*Lookup, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "failed to parse classification dataset")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "classification dataset is empty")
	}
	for i, r := range records {
		if r.Code == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "record %d: missing code", i)
		}
	}
	return NewLookup(records), nil
}
