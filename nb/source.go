package nb

import (
	"encoding/json"
	"slices"
	"strings"
)

// Source is the text of a cell or stream output. The on-disk form is
// either a single string or an array of lines; the original form is
// kept so round-trips are faithful and so the two forms compare as
// distinct values, matching the document schema.
type Source struct {
	lines  []string
	scalar bool
}

// SourceText builds a Source whose on-disk form is a single string.
func SourceText(s string) Source {
	return Source{lines: []string{s}, scalar: true}
}

// SourceLines builds a Source whose on-disk form is an array of lines.
func SourceLines(lines ...string) Source {
	return Source{lines: lines}
}

func (s Source) Text() string {
	return strings.Join(s.lines, "")
}

func (s Source) Lines() []string {
	return slices.Clone(s.lines)
}

func (s Source) Equal(o Source) bool {
	return s.scalar == o.scalar && slices.Equal(s.lines, o.lines)
}

func (s Source) Clone() Source {
	return Source{lines: slices.Clone(s.lines), scalar: s.scalar}
}

func (s Source) MarshalJSON() ([]byte, error) {
	if s.scalar {
		return json.Marshal(s.Text())
	}
	if s.lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.lines)
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = SourceText(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*s = SourceLines(lines...)
	return nil
}
