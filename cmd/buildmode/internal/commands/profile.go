package commands

import "fmt"

// ProfileCmd prints the profile resolved from the invocation.
type ProfileCmd struct {
	Args []string `arg:"" optional:"" help:"Extra arguments, only inspected for the production substring."`
}

func (c *ProfileCmd) Run(globals *Globals) error {
	_, err := fmt.Fprintln(globals.Stdout, globals.Profile())
	return err
}
