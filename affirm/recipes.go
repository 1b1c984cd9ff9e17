package affirm

// Recipe pairs a reusable check expression with its description.
type Recipe struct {
	Src         string
	Description string
}

// Recipes are the built-in checks, selectable by name.
var Recipes = map[string]Recipe{
	"seq-exec": {
		Src: "execution_counts == seq(len(execution_counts))",
		Description: "Assert that the code cells were executed sequentially," +
			" as after 'restart kernel and run all cells'.",
	},
	"seq-increase": {
		Src:         "execution_counts == sorted(execution_counts)",
		Description: "Assert that the code cells were executed in increasing order.",
	},
	"has-tags": {
		Src:         `any(cells, {.Metadata.Has("tags")})`,
		Description: "Assert that there is at least one cell with tags.",
	},
	"has-tags-code": {
		Src:         `any(code_cells, {.Metadata.Has("tags")})`,
		Description: "Assert that there is at least one code cell with tags.",
	},
	"max-cells": {
		Src:         "len(cells) < 128",
		Description: "Assert that there are less than 128 cells in the notebook.",
	},
	"startswith-md": {
		Src:         `len(cells) > 0 && cells[0].Type.String() == "markdown"`,
		Description: "Assert that the first cell in the notebook is a markdown cell.",
	},
}
