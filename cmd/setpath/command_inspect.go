package main

import (
	"fmt"
	"io"
	"os"

	"github.com/monolite/setpath/inspect"
)

// InspectCmd represents the inspect command
type InspectCmd struct {
	File    string `arg:"" optional:"" help:"JavaScript file (default: stdin)" type:"path"`
	Format  string `short:"f" help:"Output format" default:"json" enum:"json,yaml,csv"`
	Scopes  bool   `help:"Include the scope table"`
	Rewrite bool   `help:"Rewrite set accessors before dumping"`
}

// Run executes the inspect command
func (cmd *InspectCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx, false, "")
	if err != nil {
		return err
	}

	var in io.Reader = ctx.stdin()
	name := "<stdin>"
	if cmd.File != "" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		in = f
		name = cmd.File
	}

	res, err := inspect.Inspect(in, inspect.InspectOptions{
		Filename:  name,
		Scopes:    cmd.Scopes,
		Rewrite:   cmd.Rewrite,
		Transform: config.TransformOptions(),
	})
	if err != nil {
		return err
	}

	data, err := inspect.Marshal(res, cmd.Format)
	if err != nil {
		return err
	}

	_, err = ctx.stdout().Write(data)
	return err
}
