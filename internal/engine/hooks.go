// Hook surface consumed by the host.
//
// The host delivers events for one session sequentially; none of these
// methods assume any ordering across sessions. Every method degrades to a
// no-op when the engine is disabled.
package engine

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/citizenadam/GhostGate/internal/config"
	"github.com/citizenadam/GhostGate/internal/prune"
)

// HostConfig is the slice of the host's configuration the engine mutates at
// registration time.
type HostConfig struct {
	// Commands maps reserved command names to their usage text.
	Commands map[string]string
	// AlwaysVisibleTools lists tool names the host keeps in the prompt
	// unconditionally.
	AlwaysVisibleTools []string
}

// commandUsage is registered with the host for the reserved namespace.
const commandUsage = "ghostgate <status|metrics|reset> - inspect or rewind the context-budget engine"

// PreCommand intercepts the reserved command namespace.
//
// Returns the rendered text and true when the command was handled and
// default processing should stop. Unrecognized subcommands pass through
// with no output.
func (e *Engine) PreCommand(name, args string) (string, bool) {
	cfg := e.sess.Config
	if !cfg.Enabled || !cfg.Commands.Enabled || name != config.CommandName {
		return "", false
	}

	sub := ""
	if fields := strings.Fields(args); len(fields) > 0 {
		sub = fields[0]
	}

	switch sub {
	case "", "status":
		catalog := e.Catalog()
		return e.sess.RenderStatus(len(catalog), e.RegistryPath()), true
	case "metrics":
		return e.sess.RenderMetrics(), true
	case "reset":
		e.sess.Reset()
		e.record("reset", nil)
		return "ghostgate: session state reset", true
	default:
		return "", false
	}
}

// PostToolInvocation observes one tool result.
//
// The interception counter always advances. Results longer than the
// large-result threshold additionally run through the pruning engine, and
// the pruned text replaces the original only when it is actually smaller.
func (e *Engine) PostToolInvocation(toolName, result string) string {
	cfg := e.sess.Config
	if !cfg.Enabled {
		return result
	}

	e.sess.RecordInterception()

	if !cfg.Pruning.Enabled || len(result) <= config.LargeResultThresholdBytes {
		return result
	}

	res := prune.Prune(result, prune.Config{
		MaxTokens: cfg.Pruning.MaxTokens,
		MinTokens: cfg.Pruning.MinTokens,
	})
	if len(res.Text) >= len(result) {
		return result
	}

	e.sess.RecordPrune(toolName, result, res.Text, res.TokensSaved)
	e.record("prune", map[string]any{
		"tool":           toolName,
		"original_bytes": len(result),
		"pruned_bytes":   len(res.Text),
		"tokens_saved":   res.TokensSaved,
	})
	log.Debug().
		Str("tool", toolName).
		Int("original_bytes", len(result)).
		Int("pruned_bytes", len(res.Text)).
		Int("tokens_saved", res.TokensSaved).
		Msg("engine: tool result pruned")
	return res.Text
}

// PromptConstruction appends one system-prompt fragment per active tool.
//
// Names whose definitions have disappeared from the catalog since
// activation are skipped, never errored on.
func (e *Engine) PromptConstruction(fragments []string) []string {
	cfg := e.sess.Config
	if !cfg.Enabled {
		return fragments
	}

	active := e.sess.ActiveTools()
	if len(active) == 0 {
		return fragments
	}

	catalog := e.Catalog()
	for _, name := range active {
		def, ok := catalog[name]
		if !ok {
			log.Debug().Str("tool", name).Msg("engine: active tool missing from catalog, skipping injection")
			continue
		}
		fragments = append(fragments, fmt.Sprintf("Activated tool %q:\n%s", name, def.Document()))
		e.sess.RecordSchemaInjected()
	}
	return fragments
}

// SessionCompaction appends one summary fragment carrying the active tools
// and the cumulative counters, so a compacted conversation keeps them.
func (e *Engine) SessionCompaction(fragments []string) []string {
	cfg := e.sess.Config
	if !cfg.Enabled {
		return fragments
	}

	active := e.sess.ActiveTools()
	names := "(none)"
	if len(active) > 0 {
		names = strings.Join(active, ", ")
	}

	m := e.sess.Metrics()
	summary := fmt.Sprintf(
		"ghostgate: active tools %s; tools_activated=%d schemas_injected=%d tool_calls_intercepted=%d context_prunes=%d",
		names, m.ToolsActivated, m.SchemasInjected, m.ToolCallsIntercepted, m.ContextPrunes)
	return append(fragments, summary)
}

// HostConfigMutation registers the reserved command and unions the engine's
// tool names into the host's always-visible list.
func (e *Engine) HostConfigMutation(hc *HostConfig) {
	if hc == nil || !e.sess.Config.Enabled {
		return
	}

	if hc.Commands == nil {
		hc.Commands = make(map[string]string)
	}
	hc.Commands[config.CommandName] = commandUsage

	seen := make(map[string]bool, len(hc.AlwaysVisibleTools))
	for _, name := range hc.AlwaysVisibleTools {
		seen[name] = true
	}
	for _, name := range EngineToolNames() {
		if !seen[name] {
			hc.AlwaysVisibleTools = append(hc.AlwaysVisibleTools, name)
			seen[name] = true
		}
	}
}
