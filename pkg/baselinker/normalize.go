package baselinker

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Params is the parameter mapping of a single remote operation.
type Params map[string]any

// Normalize returns a copy of params with every null-valued key removed at
// every mapping depth. Sequences are kept as they are: their elements are
// neither filtered nor descended into. Normalize is idempotent.
func Normalize(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		switch nested := v.(type) {
		case map[string]any:
			out[k] = Normalize(nested)
		case Params:
			out[k] = Normalize(nested)
		default:
			out[k] = v
		}
	}
	return out
}

// toParams converts a request builder, a Params value or any JSON-encodable
// struct into a generic mapping. Nested structs come back as mappings, so
// their null fields are stripped too. A nil input yields a nil mapping.
func toParams(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("parameters must encode to a JSON object: %w", err)
	}
	return out, nil
}

// encodeParams normalizes params and serializes them for the form body.
func encodeParams(v any) (string, bool, error) {
	params, err := toParams(v)
	if err != nil {
		return "", false, err
	}
	if params == nil {
		return "", false, nil
	}
	data, err := json.Marshal(Normalize(params))
	if err != nil {
		return "", false, fmt.Errorf("encoding parameters: %w", err)
	}
	return string(data), true, nil
}
