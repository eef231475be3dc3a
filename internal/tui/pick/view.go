package pick

import (
	"strings"

	"github.com/jakoblorz/cargo-ws/internal/status"
	"github.com/jakoblorz/cargo-ws/internal/tui"
	"github.com/jakoblorz/cargo-ws/internal/workspace"
)

// RenderSummary renders the selection after a successful run.
func RenderSummary(ws *workspace.Workspace) string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render("✓ Selection updated"))
	b.WriteString("\n\n")
	b.WriteString(status.Line(status.View{
		Selection:    ws.Selection().Snapshot(),
		MultiPackage: ws.IsMultiPackage(),
	}))
	b.WriteString("\n")

	return b.String()
}
