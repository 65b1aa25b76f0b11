// FILE: oxidecomputer/slog-dtrace/payload.go
package dtrace

import (
	"bytes"
	"time"

	gojson "github.com/goccy/go-json"
)

// Location describes the source location from which a record was issued.
type Location struct {
	Module string `json:"module"`
	File   string `json:"file"`
	Line   int    `json:"line"`
}

// Payload is the decoded "ok" form of a fired probe argument.
type Payload struct {
	Location  Location  `json:"location"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	KV        Pairs     `json:"kv"`
}

// Fallback is the decoded "err" form: the record metadata that survived an
// encoding failure, plus the failure reason.
type Fallback struct {
	Location  Location  `json:"location"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Error     string    `json:"error"`
}

// ParsePayload decodes a fired payload into its "ok" or "err" form.
// Exactly one of the first two returns is non-nil on success.
func ParsePayload(data []byte) (*Payload, *Fallback, error) {
	var envelope struct {
		Ok  *Payload  `json:"ok"`
		Err *Fallback `json:"err"`
	}
	if err := gojson.Unmarshal(data, &envelope); err != nil {
		return nil, nil, fmtErrorf("invalid payload: %w", err)
	}
	if envelope.Ok == nil && envelope.Err == nil {
		return nil, nil, fmtErrorf("payload has neither ok nor err variant")
	}
	return envelope.Ok, envelope.Err, nil
}

// Pair is a single key-value pair from a payload's kv object.
type Pair struct {
	Key   string
	Value any // bool, float64, string, Pairs (nested object), []any, or nil
}

// Pairs is an ordered key-value sequence. Duplicate keys are retained, and
// decoding preserves document order, matching what the encoder emits.
type Pairs []Pair

// Get returns the value of the first pair with the given key.
func (p Pairs) Get(key string) (any, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the pairs as a JSON object in sequence order, with
// duplicate keys repeated.
func (p Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := gojson.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := gojson.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object through the token stream so that
// pair order and duplicate keys survive.
func (p *Pairs) UnmarshalJSON(data []byte) error {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return fmtErrorf("kv must be a JSON object")
	}
	pairs, err := decodePairs(dec)
	if err != nil {
		return err
	}
	*p = pairs
	return nil
}

// decodePairs consumes object members up to and including the closing
// brace.
func decodePairs(dec *gojson.Decoder) (Pairs, error) {
	var out Pairs
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmtErrorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, Pair{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return out, nil
}

// decodeValue consumes one JSON value, recursing into objects and arrays.
func decodeValue(dec *gojson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(gojson.Delim)
	if !ok {
		return tok, nil // string, float64, bool, or nil
	}
	switch delim {
	case '{':
		pairs, err := decodePairs(dec)
		if err != nil {
			return nil, err
		}
		return pairs, nil
	case '[':
		var arr []any
		for dec.More() {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmtErrorf("unexpected delimiter: %v", delim)
	}
}
