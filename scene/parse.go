package scene

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
)

// MaxDepth bounds nesting on both parse and marshal. A tree that reaches it
// while marshalling is almost certainly cyclic.
const MaxDepth = 512

// Parse decodes a single JSON value into a document tree. Number literals are
// kept as written.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("scene: unexpected data after top-level value")
	}
	return v, nil
}

// ParseDocument decodes a scene description, which must be a JSON object.
func ParseDocument(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, errors.Errorf("scene: document must be an object, got %s", v.Kind())
	}
	return obj, nil
}

// ParseJSONC is ParseDocument for hand-written documents that carry comments
// or trailing commas.
func ParseJSONC(data []byte) (*Object, error) {
	return ParseDocument(jsonc.ToJSON(data))
}

func parseValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "scene: parsing document")
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return nil, errors.Errorf("scene: document nested deeper than %d", MaxDepth)
		}
		switch t {
		case '{':
			return parseObject(dec, depth)
		case '[':
			return parseArray(dec, depth)
		}
		return nil, errors.Errorf("scene: unexpected delimiter %q", t)
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case nil:
		return Null{}, nil
	}
	return nil, errors.Errorf("scene: unexpected token %v", tok)
}

func parseObject(dec *json.Decoder, depth int) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "scene: parsing object key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("scene: object key is %T", tok)
		}
		v, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", key)
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "scene: closing object")
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) (*Array, error) {
	arr := NewArray()
	for dec.More() {
		v, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "[%d]", arr.Len())
		}
		arr.Append(v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "scene: closing array")
	}
	return arr, nil
}
