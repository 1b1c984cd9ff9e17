package nb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// Extras holds a record's open fields in insertion order. The zero
// value is an empty, usable collection.
//
// Values are decoded JSON: bool, json.Number, string, []any,
// map[string]any or nil. Equality is content-based and independent of
// insertion order.
type Extras struct {
	keys []string
	vals map[string]any
}

func (e *Extras) Set(key string, val any) {
	if e.vals == nil {
		e.vals = map[string]any{}
	}
	if _, ok := e.vals[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.vals[key] = val
}

func (e Extras) Get(key string) (any, bool) {
	v, ok := e.vals[key]
	return v, ok
}

func (e Extras) Has(key string) bool {
	_, ok := e.vals[key]
	return ok
}

func (e *Extras) Delete(key string) {
	if _, ok := e.vals[key]; !ok {
		return
	}
	delete(e.vals, key)
	e.keys = slices.DeleteFunc(e.keys, func(k string) bool { return k == key })
}

func (e Extras) Keys() []string {
	return slices.Clone(e.keys)
}

func (e Extras) Len() int {
	return len(e.keys)
}

func (e Extras) Equal(o Extras) bool {
	if len(e.keys) != len(o.keys) {
		return false
	}
	for k, v := range e.vals {
		ov, ok := o.vals[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

func (e Extras) Clone() Extras {
	cp := Extras{keys: slices.Clone(e.keys)}
	if e.vals != nil {
		cp.vals = make(map[string]any, len(e.vals))
		for k, v := range e.vals {
			cp.vals[k] = v
		}
	}
	return cp
}

func (e Extras) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(e.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Extras) UnmarshalJSON(data []byte) error {
	entries, err := objectEntries(data)
	if err != nil {
		return err
	}
	*e = Extras{}
	for _, ent := range entries {
		v, err := decodeValue(ent.val)
		if err != nil {
			return fmt.Errorf("field %q: %w", ent.key, err)
		}
		e.Set(ent.key, v)
	}
	return nil
}

type rawEntry struct {
	key string
	val json.RawMessage
}

// objectEntries decodes a JSON object into its entries, preserving key
// order.
func objectEntries(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		entries = append(entries, rawEntry{key: key, val: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// decodeValue decodes a raw JSON value, keeping numbers as json.Number
// so round-trips do not lose precision.
func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
