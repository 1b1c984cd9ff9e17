package nb

import "fmt"

// CellType discriminates the three legal cell variants.
type CellType int

const (
	RawCell CellType = iota
	MarkdownCell
	CodeCell
)

func (t CellType) String() string {
	s, ok := map[CellType]string{
		RawCell:      "raw",
		MarkdownCell: "markdown",
		CodeCell:     "code",
	}[t]
	if ok {
		return s
	}
	return "<unknown cell type>"
}

func (t CellType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CellType) UnmarshalText(d []byte) error {
	tt, ok := map[string]CellType{
		"raw":      RawCell,
		"markdown": MarkdownCell,
		"code":     CodeCell,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized cell type %q", d)
	}
	*t = tt
	return nil
}

func CellTypes() []CellType {
	return []CellType{RawCell, MarkdownCell, CodeCell}
}

// OutputType discriminates the four legal code-cell output variants.
type OutputType int

const (
	StreamOutput OutputType = iota
	DisplayDataOutput
	ExecuteResultOutput
	ErrorOutput
)

func (t OutputType) String() string {
	s, ok := map[OutputType]string{
		StreamOutput:        "stream",
		DisplayDataOutput:   "display_data",
		ExecuteResultOutput: "execute_result",
		ErrorOutput:         "error",
	}[t]
	if ok {
		return s
	}
	return "<unknown output type>"
}

func (t OutputType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *OutputType) UnmarshalText(d []byte) error {
	tt, ok := map[string]OutputType{
		"stream":         StreamOutput,
		"display_data":   DisplayDataOutput,
		"execute_result": ExecuteResultOutput,
		"error":          ErrorOutput,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized output type %q", d)
	}
	*t = tt
	return nil
}
