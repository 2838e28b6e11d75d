package main

// CheckCmd represents the check command
type CheckCmd struct {
	Paths         []string `arg:"" optional:"" help:"Input files or directories (default: stdin)" type:"path"`
	Lenient       bool     `help:"Report invalid accessors as warnings"`
	Report        string   `help:"Report format: text, json or checkstyle (default from config)"`
	StdinFilename string   `help:"File name used for stdin input" default:"<stdin>"`
}

// Run executes the check command. It runs the full pipeline in memory and
// fails when any accessor is invalid.
func (cmd *CheckCmd) Run(ctx *Context) error {
	transform := &TransformCmd{
		Paths:         cmd.Paths,
		Lenient:       cmd.Lenient,
		Report:        cmd.Report,
		StdinFilename: cmd.StdinFilename,
		validateOnly:  true,
	}
	return transform.Run(ctx)
}
