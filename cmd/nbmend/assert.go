package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/nbmend/nbmend/affirm"
	"github.com/nbmend/nbmend/config"
	"github.com/nbmend/nbmend/logging"
)

func assert(cfg *AssertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Assert.Parse(cc, args)
	if err != nil {
		cfg.Assert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.List {
		names := make([]string, 0, len(affirm.Recipes))
		for name := range affirm.Recipes {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(cc.Out, "%-16s %s\n", name, affirm.Recipes[name].Description)
		}
		return nil
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

	exprs := cfg.Exprs
	if len(exprs) == 0 {
		exprs = append(exprs, fileCfg.Assert.Exprs...)
		exprs = append(exprs, fileCfg.Assert.Recipes...)
	}
	if len(exprs) == 0 {
		return fmt.Errorf("%w: pass at least one -e expression or -r recipe", cli.ErrUsage)
	}

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

	failed := 0
	for _, p := range paths {
		ok, err := affirm.Ensure(p, exprs)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		logging.Errorf("%d of %d notebooks failed the checks", failed, len(paths))
		return cli.ExitCodeErr(1)
	}
	logging.Infof("all checks passed for %d notebooks", len(paths))
	return nil
}
