package cmd

import (
	"context"
	"os"

	"github.com/hashcracky/spellhook/pkg/hook"
	"github.com/hashcracky/spellhook/pkg/prompt"
	"github.com/spf13/cobra"
)

type InstallOptions struct {
	*GlobalOptions

	HooksDir string
	Binary   string
	Force    bool
}

func NewInstallOptions(global *GlobalOptions) *InstallOptions {
	return &InstallOptions{GlobalOptions: global}
}

func NewInstallCmd(o *InstallOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install spellhook as the commit-msg hook of the current repository",
		RunE:  func(c *cobra.Command, _ []string) error { return o.Run(c.Context()) },
	}
	cmd.Flags().StringVar(&o.HooksDir, "hooks-dir", "", "Hooks directory (default: asked from git)")
	cmd.Flags().StringVar(&o.Binary, "binary", "", "Command run by the hook (default: path of this executable)")
	cmd.Flags().BoolVarP(&o.Force, "force", "f", false, "Replace an existing commit-msg hook")
	return cmd
}

func (o *InstallOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	binary := o.Binary
	if binary == "" {
		if exe, err := os.Executable(); err == nil {
			binary = exe
		}
	}

	path, err := hook.Install(ctx, hook.InstallOptions{
		HooksDir: o.HooksDir,
		Binary:   binary,
		Force:    o.Force,
	})
	if err != nil {
		return err
	}

	prompt.NewPrinter(o.Stdout).Linef(prompt.TagOK, "Installed commit-msg hook at %s", path)

	return nil
}
