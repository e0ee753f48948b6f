package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// LoadFile reads a JSON document containing a list of profile records.
// Records are decoded leniently: unknown keys are ignored and numeric types
// are coerced, so documents exported by the enrichment pipeline load without
// a strict schema match.
func LoadFile(path string) ([]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file %q: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profiles file %q: %w", path, err)
	}

	return Decode(raw)
}

// Decode converts loosely-typed profile documents into Profile records and
// validates their identity fields.
func Decode(items []map[string]any) ([]*Profile, error) {
	var profiles []*Profile

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &profiles,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("building profile decoder: %w", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding profiles: %w", err)
	}

	for i, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile at index %d: %w", i, err)
		}
	}

	return profiles, nil
}
