package cli

import (
	"context"
	"fmt"

	"github.com/jakoblorz/cargo-ws/internal/tui"
	"github.com/spf13/cobra"
)

const cargoEnv = "CARGO"

// ExecCommand runs cargo with the synthesized arguments.
type ExecCommand struct {
	env       *Env
	overrides overrideFlags
	quiet     bool
}

// NewExecCommand creates the exec command
func NewExecCommand(env *Env) *cobra.Command {
	cmd := &ExecCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "exec <action> [-- extra args...]",
		Short: "Run cargo for an action",
		Long: `Run cargo with the arguments "cargo-ws args" would print.

cargo runs in the directory of the package it is given (the -p override or
the selected package) in a multi-package workspace, otherwise in the
workspace root. The cargo binary is taken from $CARGO when
set.`,
		Example: `  # Run the selected binary with the selected profile
  cargo-ws exec run --selected

  # Test one package in release mode
  cargo-ws exec test -p core --release`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cmd.overrides.register(cobraCmd)
	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "Do not print the task label before running")

	return cobraCmd
}

// Run executes the exec command
func (c *ExecCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	inv, err := synthesize(cmd, ws, &c.overrides, args)
	if err != nil {
		return err
	}

	if !c.quiet {
		text, err := renderLabel(ws, inv)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.env.Stderr, tui.TitleStyle.Render("▶ "+text))
	}

	cargo := c.env.cargo()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir := ws.PackageDirectory(inv.request.Package)
	s.Logger().Debug("running cargo", "dir", dir, "args", inv.args)

	if err := c.env.Executor.Execute(ctx, dir, cargo, inv.args, c.env.Stdout, c.env.Stderr); err != nil {
		return fmt.Errorf("cargo %s failed: %w", inv.action, err)
	}
	return nil
}
