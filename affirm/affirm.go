// Package affirm checks notebooks against user expressions, evaluated
// in a sandboxed expression language.
package affirm

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"

	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/nb"
)

// Env builds the evaluation environment for a notebook: the notebook
// itself, its cells filtered by type, the executed code cells and
// their execution counts, plus the seq and sorted integer helpers.
func Env(n *nb.Notebook) map[string]any {
	code := []nb.Cell{}
	md := []nb.Cell{}
	raw := []nb.Cell{}
	exec := []nb.Cell{}
	counts := []int{}
	for _, c := range n.Cells {
		switch c.Type {
		case nb.CodeCell:
			code = append(code, c)
			if c.ExecutionCount != nil {
				exec = append(exec, c)
				counts = append(counts, *c.ExecutionCount)
			}
		case nb.MarkdownCell:
			md = append(md, c)
		case nb.RawCell:
			raw = append(raw, c)
		}
	}
	return map[string]any{
		"nb":               n,
		"cells":            n.Cells,
		"code_cells":       code,
		"markdown_cells":   md,
		"raw_cells":        raw,
		"exec_cells":       exec,
		"execution_counts": counts,
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i + 1
			}
			return s
		},
		"sorted": func(xs []int) []int {
			s := slices.Clone(xs)
			slices.Sort(s)
			return s
		},
	}
}

// Eval compiles and runs one boolean expression in env.
func Eval(src string, env map[string]any) (bool, error) {
	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return false, fmt.Errorf("compiling %q: %w", src, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q evaluated to %T, expected a boolean", src, out)
	}
	return ok, nil
}

// Ensure evaluates each expression, a recipe name or literal source,
// against the notebook at path and reports whether all of them passed.
func Ensure(path string, exprs []string) (bool, error) {
	n, err := nb.ReadFile(path)
	if err != nil {
		return false, err
	}
	env := Env(n)
	failed := 0
	for _, src := range exprs {
		if r, ok := Recipes[src]; ok {
			src = r.Src
		}
		ok, err := Eval(src, env)
		if err != nil {
			return false, err
		}
		if !ok {
			failed++
			logging.Debugf("%s failed %q", path, src)
		}
	}
	logging.Infof("%s failed %d of %d checks", path, failed, len(exprs))
	return failed == 0, nil
}
