package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/jakoblorz/cargo-ws/internal/discovery"
	"github.com/jakoblorz/cargo-ws/internal/filesystem"
	"github.com/jakoblorz/cargo-ws/internal/logging"
	"github.com/jakoblorz/cargo-ws/internal/session"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
	"github.com/spf13/cobra"
)

const (
	rootFlag     = "root"
	logLevelFlag = "log-level"
)

// Executor runs the synthesized cargo invocation.
type Executor interface {
	Execute(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error
}

// OSExecutor runs commands with os/exec, inheriting stdin.
type OSExecutor struct{}

func (OSExecutor) Execute(ctx context.Context, dir, name string, args []string, stdout, stderr io.Writer) error {
	execCmd := exec.CommandContext(ctx, name, args...)
	execCmd.Dir = dir
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = stdout
	execCmd.Stderr = stderr
	return execCmd.Run()
}

// Env is what commands need from the outside world.
type Env struct {
	FS       filesystem.FileSystem
	Runner   discovery.Runner
	Executor Executor
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
}

// NewOSEnv wires the real filesystem, cargo and terminal.
func NewOSEnv() *Env {
	return &Env{
		FS:       filesystem.NewOSFileSystem(),
		Runner:   discovery.NewOSRunner(),
		Executor: OSExecutor{},
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
	}
}

func (e *Env) logger(cmd *cobra.Command) hclog.Logger {
	level, _ := cmd.Flags().GetString(logLevelFlag)
	return logging.New("cargo-ws", level, e.Stderr)
}

// open locates the project root, opens it in a new session and returns both.
// Callers close the session when done.
func (e *Env) open(cmd *cobra.Command) (*session.Session, *workspace.Workspace, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := e.logger(cmd)

	start, _ := cmd.Flags().GetString(rootFlag)
	if start == "" {
		cwd, err := e.FS.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		start = cwd
	}

	root, err := workspace.NewCargoLocator(e.Runner, e.FS, logger).Locate(ctx, start)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate cargo project from %s: %w", start, err)
	}

	runner := e.Runner
	cargo := e.cargo()
	s := session.New(e.FS,
		session.WithLogger(logger),
		session.WithGetenv(e.Getenv),
		session.WithDiscoverer(func(fs filesystem.FileSystem, logger hclog.Logger) discovery.Discoverer {
			return discovery.NewDefault(
				discovery.NewMetadataDiscoverer(runner).WithCargo(cargo),
				discovery.NewScanDiscoverer(fs),
				logger,
			)
		}),
	)

	ws, err := s.Open(ctx, root)
	if err != nil {
		s.CloseAll()
		return nil, nil, fmt.Errorf("failed to open workspace %s: %w", root, err)
	}
	return s, ws, nil
}

// cargo returns $CARGO, or "cargo" when it is unset.
func (e *Env) cargo() string {
	if e.Getenv != nil {
		if v := e.Getenv(cargoEnv); v != "" {
			return v
		}
	}
	return "cargo"
}
