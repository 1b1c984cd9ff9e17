package affirm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nbmend/nbmend/nb"
)

func mdCell(text string) nb.Cell {
	return nb.Cell{Type: nb.MarkdownCell, Source: nb.SourceText(text)}
}

func codeCell(src string, count int) nb.Cell {
	c := nb.Cell{Type: nb.CodeCell, Source: nb.SourceText(src), Outputs: []nb.Output{}}
	if count > 0 {
		c.ExecutionCount = &count
	}
	return c
}

func notebook(cells ...nb.Cell) *nb.Notebook {
	n := &nb.Notebook{NBFormat: 4, NBFormatMinor: 5, Cells: cells}
	if cells == nil {
		n.Cells = []nb.Cell{}
	}
	return n
}

func TestEnv(t *testing.T) {
	n := notebook(
		mdCell("# title"),
		codeCell("a", 1),
		codeCell("b", 0),
		nb.Cell{Type: nb.RawCell, Source: nb.SourceText("raw")},
	)
	env := Env(n)
	if got := len(env["cells"].([]nb.Cell)); got != 4 {
		t.Errorf("cells = %d, want 4", got)
	}
	if got := len(env["code_cells"].([]nb.Cell)); got != 2 {
		t.Errorf("code_cells = %d, want 2", got)
	}
	if got := len(env["markdown_cells"].([]nb.Cell)); got != 1 {
		t.Errorf("markdown_cells = %d, want 1", got)
	}
	if got := len(env["raw_cells"].([]nb.Cell)); got != 1 {
		t.Errorf("raw_cells = %d, want 1", got)
	}
	if got := env["execution_counts"].([]int); len(got) != 1 || got[0] != 1 {
		t.Errorf("execution_counts = %v, want [1]", got)
	}
}

func TestEval(t *testing.T) {
	n := notebook(mdCell("# title"), codeCell("a", 1), codeCell("b", 2))
	env := Env(n)
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"cell count", "len(cells) == 3", true},
		{"code cell count", "len(code_cells) == 2", true},
		{"sequential execution", "execution_counts == seq(len(execution_counts))", true},
		{"first cell markdown", `cells[0].Type.String() == "markdown"`, true},
		{"false check", "len(cells) > 100", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.src, env)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	env := Env(notebook())
	if _, err := Eval("len(", env); err == nil {
		t.Errorf("Eval of unparseable source succeeded")
	}
	if _, err := Eval("len(cells)", env); err == nil || !strings.Contains(err.Error(), "boolean") {
		t.Errorf("Eval of non-boolean result error = %v", err)
	}
}

func TestRecipes(t *testing.T) {
	seq := notebook(mdCell("# t"), codeCell("a", 1), codeCell("b", 2))
	shuffled := notebook(codeCell("a", 2), codeCell("b", 1))
	tagged := notebook(codeCell("a", 1))
	tagged.Cells[0].Metadata.Set("tags", []any{"x"})

	tests := []struct {
		name   string
		recipe string
		n      *nb.Notebook
		want   bool
	}{
		{"seq-exec pass", "seq-exec", seq, true},
		{"seq-exec fail", "seq-exec", shuffled, false},
		{"seq-increase pass", "seq-increase", seq, true},
		{"seq-increase fail", "seq-increase", shuffled, false},
		{"has-tags pass", "has-tags", tagged, true},
		{"has-tags fail", "has-tags", seq, false},
		{"has-tags-code pass", "has-tags-code", tagged, true},
		{"max-cells pass", "max-cells", seq, true},
		{"startswith-md pass", "startswith-md", seq, true},
		{"startswith-md fail", "startswith-md", shuffled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Recipes[tt.recipe]
			if !ok {
				t.Fatalf("recipe %q missing", tt.recipe)
			}
			got, err := Eval(r.Src, Env(tt.n))
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", r.Src, err)
			}
			if got != tt.want {
				t.Errorf("recipe %s = %v, want %v", tt.recipe, got, tt.want)
			}
		})
	}
}

func TestEnsure(t *testing.T) {
	n := notebook(mdCell("# t"), codeCell("a", 1))
	d, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "a.ipynb")
	if err := os.WriteFile(path, d, 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err := Ensure(path, []string{"startswith-md", "len(cells) == 2"})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if !ok {
		t.Errorf("Ensure() = false, want true")
	}

	ok, err = Ensure(path, []string{"startswith-md", "len(cells) == 99"})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if ok {
		t.Errorf("Ensure() = true with a failing check")
	}

	if _, err := Ensure(filepath.Join(t.TempDir(), "missing.ipynb"), []string{"max-cells"}); err == nil {
		t.Errorf("Ensure() of a missing file succeeded")
	}
}
