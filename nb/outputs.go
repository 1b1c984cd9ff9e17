package nb

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Output is one entry of a code cell's outputs array, tagged by
// OutputType. Only the fields of the tagged variant are meaningful and
// serialized.
type Output struct {
	Type OutputType

	// stream
	Name string
	Text Source

	// display_data and execute_result
	Data           Extras
	Metadata       Extras
	ExecutionCount *int

	// error
	Ename     string
	Evalue    string
	Traceback []string

	Extras Extras
}

var streamNames = []string{"stdout", "stderr"}

func (o *Output) Validate() error {
	switch o.Type {
	case StreamOutput:
		if !slices.Contains(streamNames, o.Name) {
			return fmt.Errorf("invalid stream name %q, expected one of %v", o.Name, streamNames)
		}
	case ExecuteResultOutput:
		if o.ExecutionCount == nil || *o.ExecutionCount < 1 {
			return fmt.Errorf("execute_result output requires a positive execution count")
		}
	}
	return nil
}

func (o Output) MarshalJSON() ([]byte, error) {
	w := &objWriter{}
	w.field("output_type", o.Type)
	switch o.Type {
	case StreamOutput:
		w.field("name", o.Name)
		w.field("text", o.Text)
	case DisplayDataOutput:
		w.field("data", o.Data)
		w.field("metadata", o.Metadata)
	case ExecuteResultOutput:
		w.field("data", o.Data)
		w.field("execution_count", o.ExecutionCount)
		w.field("metadata", o.Metadata)
	case ErrorOutput:
		w.field("ename", o.Ename)
		w.field("evalue", o.Evalue)
		w.field("traceback", o.Traceback)
	}
	w.extras(o.Extras)
	return w.bytes()
}

func (o *Output) UnmarshalJSON(data []byte) error {
	entries, err := objectEntries(data)
	if err != nil {
		return err
	}
	*o = Output{}
	seen := map[string]bool{}
	for _, ent := range entries {
		seen[ent.key] = true
		switch ent.key {
		case "output_type":
			err = json.Unmarshal(ent.val, &o.Type)
		case "name":
			err = json.Unmarshal(ent.val, &o.Name)
		case "text":
			err = json.Unmarshal(ent.val, &o.Text)
		case "data":
			err = json.Unmarshal(ent.val, &o.Data)
		case "metadata":
			err = json.Unmarshal(ent.val, &o.Metadata)
		case "execution_count":
			err = json.Unmarshal(ent.val, &o.ExecutionCount)
		case "ename":
			err = json.Unmarshal(ent.val, &o.Ename)
		case "evalue":
			err = json.Unmarshal(ent.val, &o.Evalue)
		case "traceback":
			err = json.Unmarshal(ent.val, &o.Traceback)
		default:
			var v any
			if v, err = decodeValue(ent.val); err == nil {
				o.Extras.Set(ent.key, v)
			}
		}
		if err != nil {
			return fmt.Errorf("output field %q: %w", ent.key, err)
		}
	}
	if !seen["output_type"] {
		return fmt.Errorf("output missing output_type")
	}
	for _, req := range requiredOutputFields(o.Type) {
		if !seen[req] {
			return fmt.Errorf("%s output missing %s", o.Type, req)
		}
	}
	return o.Validate()
}

func requiredOutputFields(t OutputType) []string {
	switch t {
	case StreamOutput:
		return []string{"name", "text"}
	case DisplayDataOutput:
		return []string{"data", "metadata"}
	case ExecuteResultOutput:
		return []string{"data", "metadata", "execution_count"}
	case ErrorOutput:
		return []string{"ename", "evalue", "traceback"}
	}
	return nil
}

func (o Output) Clone() Output {
	cp := o
	cp.Text = o.Text.Clone()
	cp.Data = o.Data.Clone()
	cp.Metadata = o.Metadata.Clone()
	cp.Traceback = slices.Clone(o.Traceback)
	cp.Extras = o.Extras.Clone()
	if o.ExecutionCount != nil {
		n := *o.ExecutionCount
		cp.ExecutionCount = &n
	}
	return cp
}

func (o Output) Equal(other Output) bool {
	a, err := o.canon()
	if err != nil {
		return false
	}
	b, err := other.canon()
	if err != nil {
		return false
	}
	return a == b
}

func (o Output) canon() (string, error) {
	d, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return canonicalize(d)
}
