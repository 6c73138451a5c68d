package scene

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ErrUnsupportedValue is returned by Marshal for anything that has no JSON
// representation: non-finite or malformed numbers, strings or keys that are
// not valid UTF-8, foreign Value types and trees nested past MaxDepth.
var ErrUnsupportedValue = errors.New("scene: unsupported value")

// Marshal encodes v as compact UTF-8 JSON. Object keys keep their order and
// number literals are written as stored.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v Value, depth int) error {
	if depth > MaxDepth {
		return errors.Wrapf(ErrUnsupportedValue, "nested deeper than %d, document may be cyclic", MaxDepth)
	}

	switch t := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case Bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		if !validNumber(t) {
			return errors.Wrapf(ErrUnsupportedValue, "number %q", string(t))
		}
		buf.WriteString(string(t))
	case String:
		if !utf8.ValidString(string(t)) {
			return errors.Wrapf(ErrUnsupportedValue, "invalid UTF-8 in %q", string(t))
		}
		writeString(buf, string(t))
	case *Array:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range t.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, item, depth+1); err != nil {
				return errors.WithMessagef(err, "[%d]", i)
			}
		}
		buf.WriteByte(']')
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if !utf8.ValidString(key) {
				return errors.Wrapf(ErrUnsupportedValue, "invalid UTF-8 in key %q", key)
			}
			writeString(buf, key)
			buf.WriteByte(':')
			if err := encode(buf, t.values[key], depth+1); err != nil {
				return errors.WithMessagef(err, "%q", key)
			}
		}
		buf.WriteByte('}')
	default:
		return errors.Wrapf(ErrUnsupportedValue, "type %T", v)
	}
	return nil
}

func validNumber(n Number) bool {
	if len(n) == 0 {
		return false
	}
	if c := n[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(n))
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}
