package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenadam/GhostGate/internal/hostfs"
	"github.com/citizenadam/GhostGate/internal/registry"
)

func TestRunTool_RefusedBeforeActivation(t *testing.T) {
	e, _ := newTestEngine(t)

	out := e.RunTool(context.Background(), registry.SeedToolName, "{}")

	assert.Contains(t, out, "tool not activated")
	assert.Contains(t, out, ToolActivate)
}

func TestRunTool_NilRunnerAcknowledges(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ActivateTool(registry.SeedToolName)

	out := e.RunTool(context.Background(), registry.SeedToolName, "{}")

	assert.Contains(t, out, "acknowledged")
}

func TestRunTool_InjectedRunner(t *testing.T) {
	fsys := hostfs.NewMemFS()
	fsys.SeedDir(workDir)

	var gotName, gotArgs string
	runner := func(ctx context.Context, def registry.Definition, args string) (string, error) {
		gotName, gotArgs = def.Name, args
		return "runner output", nil
	}
	e := New(workDir, testEnv, fsys, WithToolRunner(runner))
	e.ActivateTool(registry.SeedToolName)

	out := e.RunTool(context.Background(), registry.SeedToolName, `{"detail":"full"}`)

	assert.Equal(t, "runner output", out)
	assert.Equal(t, registry.SeedToolName, gotName)
	assert.Equal(t, `{"detail":"full"}`, gotArgs)
}

func TestRunTool_RunnerErrorSurfacesAsText(t *testing.T) {
	fsys := hostfs.NewMemFS()
	fsys.SeedDir(workDir)

	runner := func(ctx context.Context, def registry.Definition, args string) (string, error) {
		return "", errors.New("sandbox denied")
	}
	e := New(workDir, testEnv, fsys, WithToolRunner(runner))
	e.ActivateTool(registry.SeedToolName)

	out := e.RunTool(context.Background(), registry.SeedToolName, "{}")

	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "sandbox denied")
}

func TestPurgeTools_Empty(t *testing.T) {
	e, _ := newTestEngine(t)

	out := e.PurgeTools()

	assert.Contains(t, out, "purged 0 tool activations")
	assert.Equal(t, 1, e.Session().Metrics().ContextPrunes,
		"a purge counts even when nothing was active")
}

func TestReportMetrics(t *testing.T) {
	e, _ := newTestEngine(t)
	e.ActivateTool(registry.SeedToolName)

	out := e.ReportMetrics()

	require.NotEmpty(t, out)
	assert.Contains(t, out, "ghostgate metrics")
	assert.Contains(t, out, "1")
}
