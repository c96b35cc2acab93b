package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenadam/GhostGate/internal/config"
	"github.com/citizenadam/GhostGate/internal/hostfs"
	"github.com/citizenadam/GhostGate/internal/registry"
)

func newDisabledEngine(t *testing.T) *Engine {
	t.Helper()
	fsys := hostfs.NewMemFS()
	fsys.SeedDir(workDir + "/.ghostgate")
	fsys.Seed(workDir+"/.ghostgate/settings.json", []byte(`{"enabled": false}`))
	return New(workDir, testEnv, fsys)
}

// =============================================================================
// PRE-COMMAND
// =============================================================================

func TestPreCommand_StatusHandled(t *testing.T) {
	e, _ := newTestEngine(t)

	out, handled := e.PreCommand(config.CommandName, "status")

	require.True(t, handled)
	assert.Contains(t, out, "ghostgate status")
	assert.Contains(t, out, "catalog entries")
}

func TestPreCommand_MetricsHandled(t *testing.T) {
	e, _ := newTestEngine(t)

	out, handled := e.PreCommand(config.CommandName, "metrics")

	require.True(t, handled)
	assert.Contains(t, out, "ghostgate metrics")
}

func TestPreCommand_ResetRewindsState(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ActivateTool(registry.SeedToolName)

	out, handled := e.PreCommand(config.CommandName, "reset")

	require.True(t, handled)
	assert.Contains(t, out, "reset")
	assert.Empty(t, e.Session().ActiveTools())
	assert.Equal(t, 0, e.Session().Metrics().ToolsActivated)
}

func TestPreCommand_UnrecognizedSubcommandPassesThrough(t *testing.T) {
	e, _ := newTestEngine(t)

	out, handled := e.PreCommand(config.CommandName, "frobnicate all")

	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestPreCommand_ForeignCommandIgnored(t *testing.T) {
	e, _ := newTestEngine(t)

	_, handled := e.PreCommand("compact", "status")

	assert.False(t, handled)
}

func TestPreCommand_DisabledCommands(t *testing.T) {
	fsys := hostfs.NewMemFS()
	fsys.SeedDir(workDir + "/.ghostgate")
	fsys.Seed(workDir+"/.ghostgate/settings.json", []byte(`{"commands": {"enabled": false}}`))
	e := New(workDir, testEnv, fsys)

	_, handled := e.PreCommand(config.CommandName, "status")

	assert.False(t, handled)
}

// =============================================================================
// POST-TOOL-INVOCATION
// =============================================================================

func TestPostToolInvocation_AlwaysCountsInterceptions(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PostToolInvocation("grep", "small result")
	e.PostToolInvocation("grep", "another small result")

	assert.Equal(t, 2, e.Session().Metrics().ToolCallsIntercepted)
}

func TestPostToolInvocation_SmallResultBypassesPruning(t *testing.T) {
	e, _ := newTestEngine(t)

	in := strings.Repeat("x   y\n\n\n\n", 50) // prunable texture, but under the threshold
	require.LessOrEqual(t, len(in), config.LargeResultThresholdBytes)

	out := e.PostToolInvocation("grep", in)

	assert.Equal(t, in, out)
	assert.Empty(t, e.Session().AuditTrail())
}

func TestPostToolInvocation_LargeResultPruned(t *testing.T) {
	e, _ := newTestEngine(t)

	in := strings.Repeat("log line with    extra   spacing\n\n\n\n", 200)
	require.Greater(t, len(in), config.LargeResultThresholdBytes)

	out := e.PostToolInvocation("grep", in)

	assert.Less(t, len(out), len(in))
	trail := e.Session().AuditTrail()
	require.Len(t, trail, 1)
	assert.Equal(t, "grep", trail[0].ToolName)
	assert.Greater(t, trail[0].TokensSaved, 0)
	assert.Greater(t, e.Session().Metrics().EstimatedTokensSaved, 0)
}

func TestPostToolInvocation_PruningDisabled(t *testing.T) {
	fsys := hostfs.NewMemFS()
	fsys.SeedDir(workDir + "/.ghostgate")
	fsys.Seed(workDir+"/.ghostgate/settings.json", []byte(`{"pruning": {"enabled": false}}`))
	e := New(workDir, testEnv, fsys)

	in := strings.Repeat("x    y\n\n\n\n", 500)
	out := e.PostToolInvocation("grep", in)

	assert.Equal(t, in, out)
	assert.Equal(t, 1, e.Session().Metrics().ToolCallsIntercepted,
		"interception counts even when pruning is off")
}

// =============================================================================
// PROMPT CONSTRUCTION
// =============================================================================

func TestPromptConstruction_NoActiveToolsUnchanged(t *testing.T) {
	e, _ := newTestEngine(t)

	fragments := e.PromptConstruction([]string{"existing"})

	assert.Equal(t, []string{"existing"}, fragments)
	assert.Equal(t, 0, e.Session().Metrics().SchemasInjected)
}

func TestPromptConstruction_SkipsDeletedDefinitions(t *testing.T) {
	e, fsys := newTestEngine(t)
	seedDefinition(fsys, e.RegistryPath(), "doomed", "will be deleted")
	e.ActivateTool("doomed")
	e.ActivateTool(registry.SeedToolName)

	// Simulate deletion by pointing the next catalog read at a registry
	// where the definition no longer parses.
	fsys.Seed(e.RegistryPath()+"/doomed.json", []byte("no longer json"))

	fragments := e.PromptConstruction(nil)

	require.Len(t, fragments, 1, "active-but-unavailable names are skipped, never errored on")
	assert.Contains(t, fragments[0], registry.SeedToolName)
}

func TestPromptConstruction_AppendsAfterExistingFragments(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ActivateTool(registry.SeedToolName)

	fragments := e.PromptConstruction([]string{"host preamble"})

	require.Len(t, fragments, 2)
	assert.Equal(t, "host preamble", fragments[0])
	assert.Contains(t, fragments[1], "parameters")
}

// =============================================================================
// SESSION COMPACTION
// =============================================================================

func TestSessionCompaction_SummarizesStateAndCounters(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ActivateTool(registry.SeedToolName)
	e.PostToolInvocation("grep", "result")

	fragments := e.SessionCompaction(nil)

	require.Len(t, fragments, 1)
	assert.Contains(t, fragments[0], registry.SeedToolName)
	assert.Contains(t, fragments[0], "tools_activated=1")
	assert.Contains(t, fragments[0], "tool_calls_intercepted=1")
	assert.Contains(t, fragments[0], "context_prunes=0")
}

func TestSessionCompaction_EmptySession(t *testing.T) {
	e, _ := newTestEngine(t)

	fragments := e.SessionCompaction(nil)

	require.Len(t, fragments, 1)
	assert.Contains(t, fragments[0], "(none)")
}

// =============================================================================
// HOST CONFIG MUTATION
// =============================================================================

func TestHostConfigMutation_RegistersCommandAndUnionsTools(t *testing.T) {
	e, _ := newTestEngine(t)
	hc := &HostConfig{
		AlwaysVisibleTools: []string{"host_native_tool", ToolActivate},
	}

	e.HostConfigMutation(hc)

	assert.Contains(t, hc.Commands, config.CommandName)
	assert.Contains(t, hc.AlwaysVisibleTools, "host_native_tool", "union, not replacement")
	for _, name := range EngineToolNames() {
		assert.Contains(t, hc.AlwaysVisibleTools, name)
	}
	// ToolActivate was already present and must not be duplicated.
	count := 0
	for _, name := range hc.AlwaysVisibleTools {
		if name == ToolActivate {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestHostConfigMutation_NilSafe(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.NotPanics(t, func() { e.HostConfigMutation(nil) })
}

// =============================================================================
// DISABLED ENGINE
// =============================================================================

func TestDisabledEngine_HooksAreNoOps(t *testing.T) {
	e := newDisabledEngine(t)

	_, handled := e.PreCommand(config.CommandName, "status")
	assert.False(t, handled)

	in := strings.Repeat("x", 5000)
	assert.Equal(t, in, e.PostToolInvocation("grep", in))
	assert.Equal(t, 0, e.Session().Metrics().ToolCallsIntercepted)

	assert.Nil(t, e.PromptConstruction(nil))
	assert.Nil(t, e.SessionCompaction(nil))

	hc := &HostConfig{}
	e.HostConfigMutation(hc)
	assert.Empty(t, hc.AlwaysVisibleTools)
}
