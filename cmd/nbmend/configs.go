package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/nbmend/nbmend/affirm"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log processed files'"`
	Version bool `cli:"name=version desc='print version and exit'"`

	Main *cli.Command
}

type FixConfig struct {
	*MainConfig

	MetaLast    bool `cli:"name=metadata-last desc='prefer the last revision for notebook metadata'"`
	CellsHead   bool `cli:"name=cells-first desc='keep only the cells of the first revision'"`
	CellsLast   bool `cli:"name=cells-last desc='keep only the cells of the last revision'"`
	Literal     bool `cli:"name=literal desc='keep the preferred side verbatim, even when absent'"`
	Interactive bool `cli:"name=i aliases=interactive desc='interactively resolve the conflicts'"`

	IgnoreFields []string

	Fix *cli.Command
}

func (cfg *FixConfig) ignoreOpt(cc *cli.Context, a string) (any, error) {
	cfg.IgnoreFields = append(cfg.IgnoreFields, a)
	return a, nil
}

type MetaConfig struct {
	*MainConfig

	Prefix   string `cli:"name=prefix desc='prefix for written filenames'"`
	Suffix   string `cli:"name=suffix desc='suffix for written filenames'"`
	RmOuts   bool   `cli:"name=rm-outs desc='remove cell outputs'"`
	KeepExec bool   `cli:"name=keep-exec desc='keep the cell execution counts'"`
	KeepID   bool   `cli:"name=keep-id desc='keep the cell ids'"`
	Check    bool   `cli:"name=check desc='report unwanted metadata without writing files'"`
	Yes      bool   `cli:"name=y aliases=yes desc='confirm overwrite of files'"`

	NotebookMetaKeep []string
	CellMetaKeep     []string

	Meta *cli.Command
}

func (cfg *MetaConfig) nbKeepOpt(cc *cli.Context, a string) (any, error) {
	cfg.NotebookMetaKeep = append(cfg.NotebookMetaKeep, a)
	return a, nil
}

func (cfg *MetaConfig) cellKeepOpt(cc *cli.Context, a string) (any, error) {
	cfg.CellMetaKeep = append(cfg.CellMetaKeep, a)
	return a, nil
}

type AssertConfig struct {
	*MainConfig

	List bool `cli:"name=l aliases=list desc='list the builtin recipes'"`

	Exprs []string

	Assert *cli.Command
}

func (cfg *AssertConfig) exprOpt(cc *cli.Context, a string) (any, error) {
	cfg.Exprs = append(cfg.Exprs, a)
	return a, nil
}

func (cfg *AssertConfig) recipeOpt(cc *cli.Context, a string) (any, error) {
	if _, ok := affirm.Recipes[a]; !ok {
		names := make([]string, 0, len(affirm.Recipes))
		for name := range affirm.Recipes {
			names = append(names, name)
		}
		slices.Sort(names)
		return nil, fmt.Errorf("%w: unknown recipe %q, expected one of %s",
			cli.ErrUsage, a, strings.Join(names, ", "))
	}
	cfg.Exprs = append(cfg.Exprs, a)
	return a, nil
}
