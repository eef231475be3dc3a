package cli

import (
	"fmt"

	"github.com/jakoblorz/cargo-ws/internal/tui/pick"
	"github.com/spf13/cobra"
)

// PickCommand edits the selection interactively.
type PickCommand struct {
	env *Env
}

// NewPickCommand creates the pick command
func NewPickCommand(env *Env) *cobra.Command {
	cmd := &PickCommand{env: env}

	return &cobra.Command{
		Use:   "pick",
		Short: "Choose package, profile, targets and features interactively",
		Long: `Walk through the selection with interactive prompts and persist the result.

Aborting with ctrl+c or esc leaves the saved selection untouched.`,
		RunE: cmd.Run,
	}
}

// Run executes the pick command
func (c *PickCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	choices, err := pick.NewFlow(ws, s.Profiles()).Run()
	if err != nil {
		return err
	}
	if choices == nil {
		fmt.Fprintln(c.env.Stdout, "Aborted")
		return nil
	}

	if err := s.Save(ws); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	_, err = fmt.Fprint(c.env.Stdout, pick.RenderSummary(ws))
	return err
}
