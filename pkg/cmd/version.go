package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type VersionOptions struct {
	*GlobalOptions
}

func NewVersionOptions(global *GlobalOptions) *VersionOptions {
	return &VersionOptions{GlobalOptions: global}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	return cmd
}

func (o *VersionOptions) Run() error {
	fmt.Fprintf(o.Stdout, "spellhook version %s\n", o.Version)

	return nil
}
