package session

import (
	"fmt"
	"strings"
	"time"
)

// noneMarker renders in place of an empty active-tool list. Rendering must
// never produce an empty field.
const noneMarker = "(none)"

// RenderStatus composes the human-readable diagnostic snapshot: uptime,
// registry location, catalog size, active tools, and (when configured) the
// metrics block, as fixed-width aligned text.
func (s *Session) RenderStatus(catalogSize int, registryPath string) string {
	var b strings.Builder

	b.WriteString("ghostgate status\n")
	writeRow(&b, "uptime", formatDuration(s.Uptime()))
	writeRow(&b, "registry path", registryPath)
	writeRow(&b, "catalog entries", fmt.Sprintf("%d", catalogSize))

	active := s.ActiveTools()
	label := fmt.Sprintf("active tools (%d)", len(active))
	if len(active) == 0 {
		writeRow(&b, label, noneMarker)
	} else {
		writeRow(&b, label, strings.Join(active, ", "))
	}

	if s.Config.Metrics.Enabled && s.Config.Metrics.ShowInStatus {
		b.WriteString("\n")
		b.WriteString(s.RenderMetrics())
	}

	status := b.String()
	s.SetLastStatus(status)
	return status
}

// RenderMetrics renders the counters block on its own, for the metrics
// subcommand and the tail of the status snapshot.
func (s *Session) RenderMetrics() string {
	m := s.Metrics()

	var b strings.Builder
	b.WriteString("ghostgate metrics\n")
	writeRow(&b, "tools activated", fmt.Sprintf("%d", m.ToolsActivated))
	writeRow(&b, "schemas injected", fmt.Sprintf("%d", m.SchemasInjected))
	writeRow(&b, "tokens saved (est)", fmt.Sprintf("%d", m.EstimatedTokensSaved))
	writeRow(&b, "calls intercepted", fmt.Sprintf("%d", m.ToolCallsIntercepted))
	writeRow(&b, "context prunes", fmt.Sprintf("%d", m.ContextPrunes))
	writeRow(&b, "last reset", m.LastReset.Format(time.RFC3339))
	return b.String()
}

// writeRow emits one fixed-width aligned "label value" line.
func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-20s %s\n", label, value)
}

// formatDuration renders an uptime as a compact human string.
func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
