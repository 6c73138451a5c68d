// Package scene models a glTF scene description as a loosely typed document
// tree. Only the handful of fields the container assembler rewrites are ever
// looked at; everything else is carried through untouched, including the
// input key order and number literals.
package scene

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{"null", "bool", "number", "string", "array", "object"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of the document tree.
type Value interface {
	Kind() Kind
}

type Null struct{}

type Bool bool

// Number holds a JSON number literal verbatim.
type Number string

type String string

func (Null) Kind() Kind    { return KindNull }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (*Array) Kind() Kind  { return KindArray }
func (*Object) Kind() Kind { return KindObject }

// Int returns the number literal for an integer.
func Int(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// Uint returns the number literal for an unsigned integer.
func Uint(u uint64) Number {
	return Number(strconv.FormatUint(u, 10))
}

// Float returns the number literal for f. Non-finite values produce a literal
// that Marshal refuses to encode.
func Float(f float64) Number {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Int64 parses the literal as an integer.
func (n Number) Int64() (int64, error) {
	return json.Number(n).Int64()
}

// Float64 parses the literal as a float.
func (n Number) Float64() (float64, error) {
	return json.Number(n).Float64()
}

// Array is an ordered sequence of values.
type Array struct {
	items []Value
}

func NewArray(items ...Value) *Array {
	return &Array{items: append([]Value(nil), items...)}
}

func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the i-th element, or nil when i is out of range.
func (a *Array) At(i int) Value {
	if i < 0 || i >= a.Len() {
		return nil
	}
	return a.items[i]
}

// Set replaces the i-th element and reports whether i was in range.
func (a *Array) Set(i int, v Value) bool {
	if i < 0 || i >= a.Len() {
		return false
	}
	a.items[i] = v
	return true
}

// Append adds v and returns its index.
func (a *Array) Append(v Value) int {
	a.items = append(a.items, v)
	return len(a.items) - 1
}

// Clone returns a shallow copy; elements are shared. A nil array clones to an
// empty one.
func (a *Array) Clone() *Array {
	if a == nil {
		return NewArray()
	}
	return &Array{items: append([]Value(nil), a.items...)}
}

// Object is a JSON object that keeps its keys in insertion order.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set stores v under key. A new key goes to the end, an existing key keeps its
// position.
func (o *Object) Set(key string, v Value) *Object {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy; values are shared. A nil object clones to an
// empty one.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}
	c := &Object{
		keys:   append([]string(nil), o.keys...),
		values: make(map[string]Value, len(o.values)),
	}
	for k, v := range o.values {
		c.values[k] = v
	}
	return c
}

// Array returns the array stored under key. ok is false when the key is absent
// or holds something else.
func (o *Object) Array(key string) (*Array, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	a, ok := v.(*Array)
	return a, ok
}
