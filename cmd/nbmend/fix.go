package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/nbmend/nbmend/config"
	"github.com/nbmend/nbmend/conflicts"
	"github.com/nbmend/nbmend/gitutils"
	"github.com/nbmend/nbmend/libdiff"
	"github.com/nbmend/nbmend/logging"
)

func fix(cfg *FixConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fix.Parse(cc, args)
	if err != nil {
		cfg.Fix.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.CellsHead && cfg.CellsLast {
		return fmt.Errorf("%w: -cells-first and -cells-last are mutually exclusive", cli.ErrUsage)
	}
	if cfg.Interactive {
		return fmt.Errorf("interactive resolution is not implemented")
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fileCfg, err := config.Discover(wd)
	if err != nil {
		return err
	}
	logging.SetVerbose(cfg.Verbose || fileCfg.Verbose)

	opts := fixOptions(cfg, fileCfg)

	r, root, err := gitutils.Repo(wd)
	if err != nil {
		return err
	}
	files, err := gitutils.ConflictFiles(r, root)
	if err != nil {
		return err
	}
	files = notebookConflicts(files, root, args)
	if len(files) == 0 {
		logging.Infof("no notebook conflicts to fix")
		return nil
	}

	done := 0
	results := conflicts.MergeAll(files, opts, func() {
		done++
		logging.Debugf("fixed %d of %d conflicts", done, len(files))
	})
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logging.Errorf("fixed %d of %d notebook conflicts (%d failed)",
			len(results)-failed, len(results), failed)
		return cli.ExitCodeErr(1)
	}
	logging.Infof("fixed %d notebook conflicts", len(results))
	return nil
}

// fixOptions layers the command line over the configuration file over
// the defaults.
func fixOptions(cfg *FixConfig, fileCfg *config.Config) conflicts.Options {
	opts := conflicts.Options{
		MetaFirst:  true,
		IgnoreNone: !cfg.Literal,
		Verbose:    cfg.Verbose || fileCfg.Verbose,
	}
	if fileCfg.Fix.MetadataFirst != nil {
		opts.MetaFirst = *fileCfg.Fix.MetadataFirst
	}
	if cfg.MetaLast {
		opts.MetaFirst = false
	}
	opts.CellsFirst = fileCfg.Fix.CellsFirst
	if cfg.CellsHead {
		opts.CellsFirst = libdiff.KeepCells(true)
	}
	if cfg.CellsLast {
		opts.CellsFirst = libdiff.KeepCells(false)
	}
	opts.IgnoreFields = fileCfg.Fix.IgnoreFields
	if len(cfg.IgnoreFields) > 0 {
		opts.IgnoreFields = cfg.IgnoreFields
	}
	return opts
}

// notebookConflicts keeps the conflicted notebook files, restricted to
// the given path or glob arguments when there are any.
func notebookConflicts(files []conflicts.ConflictFile, root string, args []string) []conflicts.ConflictFile {
	kept := files[:0]
	for _, f := range files {
		if filepath.Ext(f.Filename) != ".ipynb" {
			continue
		}
		if len(args) > 0 && !matchesArg(f.Filename, root, args) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func matchesArg(filename, root string, args []string) bool {
	rel, err := filepath.Rel(root, filename)
	if err != nil {
		rel = filename
	}
	rel = filepath.ToSlash(rel)
	for _, arg := range args {
		arg = filepath.ToSlash(filepath.Clean(arg))
		if rel == arg || strings.HasPrefix(rel, arg+"/") {
			return true
		}
		if ok, _ := filepath.Match(arg, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(arg, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
