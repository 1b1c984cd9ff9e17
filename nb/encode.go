package nb

import (
	"bytes"
	"encoding/json"
)

// objWriter builds a JSON object with explicit field order.
type objWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func (w *objWriter) field(name string, v any) {
	if w.err != nil {
		return
	}
	d, err := json.Marshal(v)
	if err != nil {
		w.err = err
		return
	}
	w.raw(name, d)
}

func (w *objWriter) raw(name string, raw []byte) {
	if w.err != nil {
		return
	}
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	k, err := json.Marshal(name)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
}

func (w *objWriter) extras(e Extras) {
	for _, k := range e.keys {
		w.field(k, e.vals[k])
	}
}

func (w *objWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.n == 0 {
		return []byte("{}"), nil
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// canonicalize re-encodes a JSON document with sorted keys everywhere,
// giving a stable form for content comparison.
func canonicalize(data []byte) (string, error) {
	v, err := decodeValue(data)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
