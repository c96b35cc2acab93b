// Model-facing tool surface.
//
// Every operation returns plain text: failure modes surface as readable
// messages ("not found", "not activated"), never as faults the host has to
// catch. Nothing here is destructive beyond clearing in-memory state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/citizenadam/GhostGate/internal/registry"
	"github.com/citizenadam/GhostGate/internal/session"
)

// Tool names exposed to the model, also merged into the host's
// always-visible list at registration time.
const (
	ToolSearchCatalog = "ghostgate_search_tools"
	ToolActivate      = "ghostgate_activate_tool"
	ToolRun           = "ghostgate_run_tool"
	ToolPurge         = "ghostgate_purge_tools"
	ToolMetrics       = "ghostgate_metrics"
)

// EngineToolNames lists the model-facing operations in a fixed order.
func EngineToolNames() []string {
	return []string{ToolSearchCatalog, ToolActivate, ToolRun, ToolPurge, ToolMetrics}
}

// SearchCatalog matches catalog definitions against a free-text query.
func (e *Engine) SearchCatalog(query string) string {
	matches := registry.Search(e.Catalog(), query)
	if len(matches) == 0 {
		return fmt.Sprintf("no tools matching %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s matching %q:\n", countLabel(len(matches), "tool"), query)
	for _, def := range matches {
		desc := def.Description
		if desc == "" {
			desc = "(no description)"
		}
		fmt.Fprintf(&b, "  %s - %s\n", def.Name, desc)
	}
	b.WriteString("Activate one with " + ToolActivate + ".")
	return b.String()
}

// ActivateTool makes a named tool's schema visible to the model. The name
// must exist in a fresh catalog read.
func (e *Engine) ActivateTool(name string) string {
	catalog := e.Catalog()
	err := e.sess.Activate(name, catalog)
	if errors.Is(err, session.ErrToolNotFound) {
		return fmt.Sprintf("tool not found: %q is not in the registry (try %s first)", name, ToolSearchCatalog)
	}

	e.record("activate", map[string]any{"tool": name})
	def := catalog[name]
	return fmt.Sprintf("activated %q (schema ~%d tokens); it will be injected into the prompt", name, def.SchemaTokens())
}

// RunTool executes an action for a previously activated tool through the
// injected runner. Execution before activation is refused.
func (e *Engine) RunTool(ctx context.Context, name, args string) string {
	if err := e.sess.RequireActive(name); errors.Is(err, session.ErrNotActivated) {
		return fmt.Sprintf("tool not activated: %q (call %s first)", name, ToolActivate)
	}

	// The definition may have been deleted since activation; the runner
	// still gets the call, with whatever schema is currently on disk.
	def := e.Catalog()[name]

	if e.runner == nil {
		return fmt.Sprintf("tool %q acknowledged (host runner not wired)", name)
	}

	out, err := e.runner(ctx, def, args)
	if err != nil {
		return fmt.Sprintf("tool %q failed: %v", name, err)
	}
	return out
}

// PurgeTools deactivates everything at once.
func (e *Engine) PurgeTools() string {
	removed := e.sess.Purge()
	e.record("purge", map[string]any{"removed": removed})
	return fmt.Sprintf("purged %s; the prompt is back to baseline", countLabel(removed, "tool activation"))
}

// ReportMetrics renders the counters for the model.
func (e *Engine) ReportMetrics() string {
	return e.sess.RenderMetrics()
}
