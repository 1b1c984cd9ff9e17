package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "nbmend").
		WithSynopsis("nbmend [opts] command [opts] [paths]").
		WithDescription(
			"nbmend eases collaboration on Jupyter notebooks: it resolves git " +
				"merge conflicts structurally, strips volatile metadata that " +
				"causes them, and checks notebooks against quality assertions.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nbmendMain(cfg, cc, args)
		}).
		WithSubs(
			FixCommand(cfg),
			MetaCommand(cfg),
			AssertCommand(cfg))
}

func nbmendMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Version {
		fmt.Fprintf(cc.Out, "nbmend version %s\n", version)
		return nil
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func FixCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FixConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "ignore",
		Description: "cell field to strip before comparing, repeatable",
		Type:        cli.NamedFuncOpt(cfg.ignoreOpt, "(field)"),
	})
	return cli.NewCommandAt(&cfg.Fix, "fix").
		WithAliases("f").
		WithSynopsis("fix [opts] [paths]").
		WithDescription(
			"fix resolves the git merge conflicts of the notebooks under the " +
				"given paths (default: every conflicted notebook in the " +
				"repository) and overwrites the conflicted files in place.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fix(cfg, cc, args)
		})
}

func MetaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "nb-keep",
			Description: "notebook metadata field to keep, repeatable",
			Type:        cli.NamedFuncOpt(cfg.nbKeepOpt, "(field)"),
		},
		&cli.Opt{
			Name:        "cell-keep",
			Description: "cell metadata field to keep, repeatable",
			Type:        cli.NamedFuncOpt(cfg.cellKeepOpt, "(field)"),
		})
	return cli.NewCommandAt(&cfg.Meta, "meta").
		WithAliases("m").
		WithSynopsis("meta [opts] [paths]").
		WithDescription(
			"meta removes volatile metadata, execution counts and optionally " +
				"outputs from the notebooks under the given paths " +
				"(default: the working directory).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return meta(cfg, cc, args)
		})
}

func AssertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AssertConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "e",
			Aliases:     []string{"expr"},
			Description: "boolean expression to check, repeatable",
			Type:        cli.NamedFuncOpt(cfg.exprOpt, "(expr)"),
		},
		&cli.Opt{
			Name:        "r",
			Aliases:     []string{"recipe"},
			Description: "builtin recipe to check, repeatable",
			Type:        cli.NamedFuncOpt(cfg.recipeOpt, "(name)"),
		})
	return cli.NewCommandAt(&cfg.Assert, "assert").
		WithAliases("a").
		WithSynopsis("assert [opts] [paths]").
		WithDescription(
			"assert checks the notebooks under the given paths against " +
				"boolean expressions over their contents, failing when any " +
				"check fails for any notebook.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return assert(cfg, cc, args)
		})
}
