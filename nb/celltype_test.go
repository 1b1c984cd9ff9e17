package nb

import (
	"testing"
)

func TestCellTypeText(t *testing.T) {
	for _, ct := range CellTypes() {
		d, err := ct.MarshalText()
		if err != nil {
			t.Fatalf("%s: MarshalText() error = %v", ct, err)
		}
		var back CellType
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("%s: UnmarshalText() error = %v", ct, err)
		}
		if back != ct {
			t.Errorf("round trip %s -> %s", ct, back)
		}
	}
	var ct CellType
	if err := ct.UnmarshalText([]byte("mystery")); err == nil {
		t.Errorf("UnmarshalText(mystery) succeeded, want error")
	}
}

func TestOutputTypeText(t *testing.T) {
	for _, ot := range []OutputType{StreamOutput, DisplayDataOutput, ExecuteResultOutput, ErrorOutput} {
		d, err := ot.MarshalText()
		if err != nil {
			t.Fatalf("%s: MarshalText() error = %v", ot, err)
		}
		var back OutputType
		if err := back.UnmarshalText(d); err != nil {
			t.Fatalf("%s: UnmarshalText() error = %v", ot, err)
		}
		if back != ot {
			t.Errorf("round trip %s -> %s", ot, back)
		}
	}
	var ot OutputType
	if err := ot.UnmarshalText([]byte("pyout")); err == nil {
		t.Errorf("UnmarshalText(pyout) succeeded, want error")
	}
}
