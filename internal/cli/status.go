package cli

import (
	"fmt"

	"github.com/jakoblorz/cargo-ws/internal/status"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
	"github.com/spf13/cobra"
)

// StatusCommand prints the current selection the way a status bar shows it.
type StatusCommand struct {
	env   *Env
	plain bool
}

// NewStatusCommand creates the status command
func NewStatusCommand(env *Env) *cobra.Command {
	cmd := &StatusCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current selection",
		Long: `Show the selected profile, package, targets, features and platform.

Unset roles show what cargo will use instead. The package role is hidden in
a single-package project.`,
		RunE: cmd.Run,
	}
	cobraCmd.Flags().BoolVar(&cmd.plain, "plain", false, "Print without styling")

	return cobraCmd
}

// Run executes the status command
func (c *StatusCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	_, err = fmt.Fprintln(c.env.Stdout, renderStatus(ws, c.plain))
	return err
}

func renderStatus(ws *workspace.Workspace, plain bool) string {
	view := status.View{
		Selection:    ws.Selection().Snapshot(),
		MultiPackage: ws.IsMultiPackage(),
	}
	if plain {
		return status.Plain(view)
	}
	return status.Line(view)
}
