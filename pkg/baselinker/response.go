package baselinker

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response status values reported by the API.
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Response is a decoded API response. Numbers are kept as json.Number so
// large identifiers survive the round trip.
type Response map[string]any

// Status returns the "status" field, or "" when absent.
func (r Response) Status() string {
	return r.String("status")
}

// String returns the value at key rendered as a string, or "" when absent.
func (r Response) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Decode re-encodes the response into v, typically a struct describing the
// shape of one operation's answer.
func (r Response) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeResponse parses a response body. Anything other than a JSON object
// is reported as ErrInvalidResponse.
func decodeResponse(body []byte) (Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidResponse)
	}
	return resp, nil
}
