package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jakoblorz/cargo-ws/internal/models"
	"github.com/jakoblorz/cargo-ws/internal/profile"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
	"github.com/spf13/cobra"
)

// PackageInfo is one package in `cargo-ws packages --format json`.
type PackageInfo struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Features []string `json:"features,omitempty"`
	Selected bool     `json:"selected"`
}

// TargetInfo is one target in `cargo-ws targets --format json`.
type TargetInfo struct {
	Package string   `json:"package"`
	Name    string   `json:"name"`
	Kinds   []string `json:"kinds"`
	SrcPath string   `json:"srcPath"`
	Actions []string `json:"actions"`
}

// ProfileInfo is one profile in `cargo-ws profiles --format json`.
type ProfileInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Custom      bool   `json:"custom"`
	Selected    bool   `json:"selected"`
}

// PackagesCommand lists the workspace packages.
type PackagesCommand struct {
	env    *Env
	format string
}

// NewPackagesCommand creates the packages command
func NewPackagesCommand(env *Env) *cobra.Command {
	cmd := &PackagesCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "packages",
		Short: "List workspace packages",
		Long:  `List the packages of the workspace in manifest order. The selected package is marked with *.`,
		RunE:  cmd.Run,
	}
	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the packages command
func (c *PackagesCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	infos := packageInfos(ws)

	if c.format == "json" {
		return writeJSON(c.env.Stdout, infos)
	}
	if err := checkTextFormat(c.format); err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(c.env.Stdout, "%s %s\t%s\n", marker(info.Selected), info.Name, info.Path)
	}
	return nil
}

func packageInfos(ws *workspace.Workspace) []PackageInfo {
	selected := ws.Selection().Package()
	m := ws.Manifest()

	infos := make([]PackageInfo, 0)
	for _, name := range ws.Packages() {
		info := PackageInfo{Name: name, Selected: name == selected, Path: "."}
		if m != nil {
			if pm, ok := m.Package(name); ok {
				info.Features = pm.Package.Features
				if rel, err := filepath.Rel(ws.Root(), pm.Package.RootPath); err == nil {
					info.Path = rel
				}
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// TargetsCommand lists discovered targets.
type TargetsCommand struct {
	env    *Env
	pkg    string
	action string
	format string
}

// NewTargetsCommand creates the targets command
func NewTargetsCommand(env *Env) *cobra.Command {
	cmd := &TargetsCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "targets",
		Short: "List discovered targets",
		Long: `List the targets of the workspace as package, kind and name.

Targets come from cargo metadata when cargo is available, otherwise from the
manifests and the conventional source layout.`,
		Example: `  # Everything runnable in the cli package
  cargo-ws targets -p cli --action run`,
		RunE: cmd.Run,
	}
	cobraCmd.Flags().StringVarP(&cmd.pkg, "package", "p", "", "Only list targets of this package")
	cobraCmd.Flags().StringVar(&cmd.action, "action", "", "Only list targets that support this action")
	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the targets command
func (c *TargetsCommand) Run(cmd *cobra.Command, args []string) error {
	var action models.Action
	if c.action != "" {
		a, err := models.ParseAction(c.action)
		if err != nil {
			return err
		}
		action = a
	}

	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	targets := ws.Targets()
	if c.pkg != "" {
		if !ws.HasPackage(c.pkg) {
			return fmt.Errorf("unknown package: %s", c.pkg)
		}
		targets = ws.TargetsForPackage(c.pkg)
	}

	infos := make([]TargetInfo, 0, len(targets))
	for _, t := range targets {
		if action != "" && !t.Supports(action) {
			continue
		}
		infos = append(infos, targetInfo(ws.Root(), t))
	}

	if c.format == "json" {
		return writeJSON(c.env.Stdout, infos)
	}
	if err := checkTextFormat(c.format); err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(c.env.Stdout, "%s\t%s\t%s\n", info.Package, info.Kinds[0], info.Name)
	}
	return nil
}

func targetInfo(root string, t *models.Target) TargetInfo {
	info := TargetInfo{
		Package: t.PackageName,
		Name:    t.Name,
		SrcPath: t.SrcPath,
	}
	if rel, err := filepath.Rel(root, t.SrcPath); err == nil {
		info.SrcPath = rel
	}
	for _, k := range t.Kinds {
		info.Kinds = append(info.Kinds, k.String())
	}
	if len(info.Kinds) == 0 {
		info.Kinds = []string{"?"}
	}
	for _, a := range t.SupportedActions() {
		info.Actions = append(info.Actions, a.String())
	}
	return info
}

// ProfilesCommand lists the available build profiles.
type ProfilesCommand struct {
	env    *Env
	format string
}

// NewProfilesCommand creates the profiles command
func NewProfilesCommand(env *Env) *cobra.Command {
	cmd := &ProfilesCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List build profiles",
		Long:  `List the well-known profiles followed by the custom profiles declared by the workspace.`,
		RunE:  cmd.Run,
	}
	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the profiles command
func (c *ProfilesCommand) Run(cmd *cobra.Command, args []string) error {
	s, ws, err := c.env.open(cmd)
	if err != nil {
		return err
	}
	defer s.CloseAll()

	current := ws.Selection().Profile()

	var infos []ProfileInfo
	for _, p := range s.Profiles() {
		infos = append(infos, ProfileInfo{
			Name:        p.Name(),
			DisplayName: profile.DisplayName(p),
			Description: profile.Description(p),
			Custom:      p.IsCustom(),
			Selected:    p == current,
		})
	}

	if c.format == "json" {
		return writeJSON(c.env.Stdout, infos)
	}
	if err := checkTextFormat(c.format); err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(c.env.Stdout, "%s %s\t%s\n", marker(info.Selected), info.Name, info.Description)
	}
	return nil
}

func marker(selected bool) string {
	if selected {
		return "*"
	}
	return " "
}

func checkTextFormat(format string) error {
	if format == "text" || format == "" {
		return nil
	}
	return fmt.Errorf("unknown format: %s (must be text or json)", format)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
