package manifest

import (
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// cargoToml is the subset of Cargo.toml cargo-ws reads.
type cargoToml struct {
	Package      *packageSection                   `toml:"package"`
	Workspace    *workspaceSection                 `toml:"workspace"`
	Profile      map[string]map[string]interface{} `toml:"profile"`
	Features     map[string][]string               `toml:"features"`
	Dependencies map[string]interface{}            `toml:"dependencies"`
	Lib          *targetSection                    `toml:"lib"`
	Bin          []targetSection                   `toml:"bin"`
	Example      []targetSection                   `toml:"example"`
	Test         []targetSection                   `toml:"test"`
	Bench        []targetSection                   `toml:"bench"`
}

type packageSection struct {
	Name         string      `toml:"name"`
	Version      interface{} `toml:"version"`
	Edition      interface{} `toml:"edition"`
	AutoBins     *bool       `toml:"autobins"`
	AutoExamples *bool       `toml:"autoexamples"`
	AutoTests    *bool       `toml:"autotests"`
	AutoBenches  *bool       `toml:"autobenches"`
}

type workspaceSection struct {
	Members        []string               `toml:"members"`
	Exclude        []string               `toml:"exclude"`
	DefaultMembers []string               `toml:"default-members"`
	Package        map[string]interface{} `toml:"package"`
}

type targetSection struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// cargoConfig is the subset of .cargo/config.toml cargo-ws reads.
type cargoConfig struct {
	Profile map[string]map[string]interface{} `toml:"profile"`
	Build   *struct {
		Target interface{} `toml:"target"`
	} `toml:"build"`
}

func decode(data []byte, v interface{}) error {
	return toml.Unmarshal(data, v)
}

// profileOrder returns the profile names of a [profile.*] map in the order
// their tables first appear in the document. Names only reachable through
// inline tables or dotted keys are appended in lexical order.
func profileOrder(data []byte, profiles map[string]map[string]interface{}) []string {
	seen := make(map[string]bool, len(profiles))
	var names []string

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		if expr.Kind != unstable.Table {
			continue
		}

		it := expr.Key()
		var parts []string
		for it.Next() {
			parts = append(parts, string(it.Node().Data))
		}
		if len(parts) < 2 || parts[0] != "profile" {
			continue
		}
		if _, ok := profiles[parts[1]]; ok && !seen[parts[1]] {
			seen[parts[1]] = true
			names = append(names, parts[1])
		}
	}

	var rest []string
	for name := range profiles {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}

// stringValue extracts a plain string from a TOML value, resolving
// `{ workspace = true }` against the [workspace.package] table.
func stringValue(v interface{}, key string, inherited map[string]interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}:
		if ws, ok := val["workspace"].(bool); ok && ws && inherited != nil {
			if s, ok := inherited[key].(string); ok {
				return s
			}
		}
	}
	return ""
}

// DeclaresWorkspace reports whether a Cargo.toml document has a [workspace]
// table, including the dotted [workspace.package] form.
func DeclaresWorkspace(data []byte) bool {
	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		if expr.Kind != unstable.Table {
			continue
		}
		it := expr.Key()
		if it.Next() && string(it.Node().Data) == "workspace" {
			return true
		}
	}
	return false
}
