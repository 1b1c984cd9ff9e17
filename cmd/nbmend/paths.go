package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// expandPaths resolves each argument to notebook files: files are taken
// as given, directories are walked recursively, and anything else is
// tried as a glob. Hidden directories are skipped; duplicates are kept
// once, in first-seen order.
func expandPaths(args []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, arg := range args {
		st, err := os.Stat(arg)
		switch {
		case err == nil && st.IsDir():
			werr := filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if strings.HasPrefix(d.Name(), ".") && p != arg {
						return fs.SkipDir
					}
					return nil
				}
				if filepath.Ext(p) == ".ipynb" {
					add(p)
				}
				return nil
			})
			if werr != nil {
				return nil, werr
			}
		case err == nil:
			if filepath.Ext(arg) != ".ipynb" {
				return nil, fmt.Errorf("expected a notebook file, a directory or a glob, got %q", arg)
			}
			add(arg)
		default:
			matches, gerr := filepath.Glob(arg)
			if gerr != nil {
				return nil, fmt.Errorf("bad glob %q: %w", arg, gerr)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no notebooks found at %q", arg)
			}
			for _, m := range matches {
				if filepath.Ext(m) == ".ipynb" {
					add(m)
				}
			}
		}
	}
	return out, nil
}
