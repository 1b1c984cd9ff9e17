package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/nbmend/nbmend/config"
	"github.com/nbmend/nbmend/logging"
	"github.com/nbmend/nbmend/metadata"
)

func meta(cfg *MetaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Meta.Parse(cc, args)
	if err != nil {
		cfg.Meta.Usage(cc, err)
		return cli.ExitCodeErr(1)
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

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no notebooks found at %v", args)
	}

	prefix, suffix := cfg.Prefix, cfg.Suffix
	if prefix == "" && suffix == "" {
		prefix, suffix = fileCfg.Meta.Prefix, fileCfg.Meta.Suffix
	}
	if prefix == "" && suffix == "" && !cfg.Check && !cfg.Yes {
		return fmt.Errorf("%d files will be overwritten; pass -y to confirm, or -prefix/-suffix to write copies",
			len(paths))
	}
	writePaths := make([]string, 0, len(paths))
	for _, p := range paths {
		writePaths = append(writePaths, metadata.WritePath(p, prefix, suffix))
	}

	opts := metaOptions(cfg, fileCfg)
	done := 0
	checks, err := metadata.ClearAll(paths, writePaths, opts, func() {
		done++
		logging.Debugf("processed %d of %d notebooks", done, len(paths))
	})
	if err != nil {
		return err
	}
	dirty := 0
	for _, clean := range checks {
		if !clean {
			dirty++
		}
	}
	if cfg.Check {
		if dirty == 0 {
			logging.Infof("no unwanted metadata in %d notebooks", len(checks))
			return nil
		}
		logging.Errorf("found unwanted metadata in %d of %d notebooks", dirty, len(checks))
		return cli.ExitCodeErr(1)
	}
	logging.Infof("removed metadata from %d of %d notebooks", dirty, len(checks))
	return nil
}

func metaOptions(cfg *MetaConfig, fileCfg *config.Config) metadata.Options {
	opts := metadata.Options{
		NotebookMetaKeep:    fileCfg.Meta.NotebookMetaKeep,
		CellMetaKeep:        fileCfg.Meta.CellMetaKeep,
		ClearExecutionCount: !cfg.KeepExec && !fileCfg.Meta.KeepExecution,
		ClearOutputs:        cfg.RmOuts || fileCfg.Meta.RemoveOutputs,
		Check:               cfg.Check,
		Verbose:             cfg.Verbose || fileCfg.Verbose,
	}
	if len(cfg.NotebookMetaKeep) > 0 {
		opts.NotebookMetaKeep = cfg.NotebookMetaKeep
	}
	if len(cfg.CellMetaKeep) > 0 {
		opts.CellMetaKeep = cfg.CellMetaKeep
	}
	if !cfg.KeepID {
		opts.ClearCellFields = []string{"id"}
	}
	return opts
}
