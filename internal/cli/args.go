package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/invocation"
	"github.com/jakoblorz/cargo-ws/internal/label"
	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
	"github.com/spf13/cobra"
)

// ArgsCommand prints the cargo arguments for an action.
type ArgsCommand struct {
	env       *Env
	overrides overrideFlags
	format    string
	label     bool
}

// NewArgsCommand creates the args command
func NewArgsCommand(env *Env) *cobra.Command {
	cmd := &ArgsCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "args <action> [-- extra args...]",
		Short: "Print the cargo arguments for an action",
		Long: `Print the arguments cargo-ws would pass to cargo for the given action.

The persisted selection supplies package, profile, features and platform.
Flags override them for this invocation only. Arguments after -- are
appended verbatim.`,
		Example: `  # Build everything with the selected profile
  cargo-ws args build

  # Run the selected run target, forwarding arguments to the binary
  cargo-ws args run --selected -- -- --port 8080

  # JSON array for editor integrations
  cargo-ws args test --name integration_test --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cmd.overrides.register(cobraCmd)
	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")
	cobraCmd.Flags().BoolVar(&cmd.label, "label", false, "Print the task label instead of the arguments")

	return cobraCmd
}

// Run executes the args command
func (c *ArgsCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	inv, err := synthesize(cmd, ws, &c.overrides, args)
	if err != nil {
		return err
	}

	out := c.env.Stdout

	if c.label {
		text, err := renderLabel(ws, inv)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text)
		return err
	}

	switch c.format {
	case "json":
		data, err := json.Marshal(inv.args)
		if err != nil {
			return fmt.Errorf("failed to marshal arguments: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text", "":
		_, err = fmt.Fprintln(out, strings.Join(inv.args, " "))
		return err
	default:
		return fmt.Errorf("unknown format: %s (must be text or json)", c.format)
	}
}

// synthesized is one resolved invocation.
type synthesized struct {
	action  models.Action
	request invocation.Request
	args    []string
}

func synthesize(cmd *cobra.Command, ws *workspace.Workspace, flags *overrideFlags, args []string) (*synthesized, error) {
	action, extra, err := parseActionArg(args)
	if err != nil {
		return nil, err
	}

	target, err := flags.target()
	if err != nil {
		return nil, err
	}

	overrides, err := flags.overrides(cmd, ws, extra)
	if err != nil {
		return nil, err
	}

	req := ws.Request(action, target, overrides)
	return &synthesized{
		action:  action,
		request: req,
		args:    invocation.Arguments(req),
	}, nil
}

func renderLabel(ws *workspace.Workspace, inv *synthesized) (string, error) {
	renderer, err := label.New(ws.Settings().LabelTemplate)
	if err != nil {
		return "", err
	}

	var target string
	if inv.request.Target != nil {
		target = inv.request.Target.Name
	}

	return renderer.Render(label.Data{
		Action:  inv.action.String(),
		Args:    inv.args,
		Package: inv.request.Package,
		Target:  target,
		Profile: inv.request.Profile.Name(),
		Root:    ws.Root(),
	})
}
