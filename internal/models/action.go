package models

import "fmt"

// Action is the cargo subcommand an invocation runs.
type Action string

const (
	ActionBuild Action = "build"
	ActionRun   Action = "run"
	ActionTest  Action = "test"
	ActionBench Action = "bench"
	ActionClean Action = "clean"
	ActionCheck Action = "check"
	ActionDoc   Action = "doc"
)

// Actions lists every action in display order.
var Actions = []Action{ActionBuild, ActionRun, ActionTest, ActionBench, ActionClean, ActionCheck, ActionDoc}

// IsValid checks if the action is one cargo-ws knows how to synthesize
func (a Action) IsValid() bool {
	switch a {
	case ActionBuild, ActionRun, ActionTest, ActionBench, ActionClean, ActionCheck, ActionDoc:
		return true
	default:
		return false
	}
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action: %s (must be build, run, test, bench, clean, check, or doc)", s)
	}
	return a, nil
}
