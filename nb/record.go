package nb

// Field is a single named value in a record's field view. A nil Value
// marks an absent field.
type Field struct {
	Name  string
	Value any
}

// Record is a typed key-value node that can be diffed field-wise and
// rebuilt from resolved fields. Two records are diffable only when
// their RecordType agrees.
type Record interface {
	RecordType() string

	// Fields lists declared fields followed by open extras, in a
	// stable order.
	Fields() []Field

	// WithFields builds a new record of the same type from resolved
	// fields, validating the result. Fields with a nil Value are
	// omitted.
	WithFields(fields []Field) (Record, error)
}

// NotebookMetadata is the notebook-level metadata record. All fields
// are open.
type NotebookMetadata struct {
	Extras
}

func (m *NotebookMetadata) RecordType() string { return "NotebookMetadata" }

func (m *NotebookMetadata) Fields() []Field {
	fields := make([]Field, 0, m.Len())
	for _, k := range m.keys {
		fields = append(fields, Field{Name: k, Value: m.vals[k]})
	}
	return fields
}

func (m *NotebookMetadata) WithFields(fields []Field) (Record, error) {
	res := &NotebookMetadata{}
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		res.Set(f.Name, f.Value)
	}
	return res, nil
}

func (m *NotebookMetadata) Equal(o *NotebookMetadata) bool {
	return m.Extras.Equal(o.Extras)
}

// CellMetadata is the cell-level metadata record. All fields are open.
type CellMetadata struct {
	Extras
}

func (m *CellMetadata) RecordType() string { return "CellMetadata" }

func (m *CellMetadata) Fields() []Field {
	fields := make([]Field, 0, m.Len())
	for _, k := range m.keys {
		fields = append(fields, Field{Name: k, Value: m.vals[k]})
	}
	return fields
}

func (m *CellMetadata) WithFields(fields []Field) (Record, error) {
	res := &CellMetadata{}
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		res.Set(f.Name, f.Value)
	}
	return res, nil
}

func (m *CellMetadata) Equal(o *CellMetadata) bool {
	return m.Extras.Equal(o.Extras)
}
