package registry

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name string
}

func (s *stubTool) Definition() mcp.Tool {
	return mcp.NewTool(s.name, mcp.WithDescription("stub"))
}

func (s *stubTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("ok"), nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New(testLogger())
	reg.Register(&stubTool{name: "read_excel"})

	tool, ok := reg.Tool("read_excel")
	require.True(t, ok)
	assert.Equal(t, "read_excel", tool.Definition().Name)

	_, ok = reg.Tool("unknown")
	assert.False(t, ok)
}

func TestToolNamesSorted(t *testing.T) {
	reg := New(testLogger())
	reg.Register(&stubTool{name: "zeta"})
	reg.Register(&stubTool{name: "alpha"})
	reg.Register(&stubTool{name: "mid"})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.ToolNames())
}

func TestDisabledToolsSkipped(t *testing.T) {
	reg := New(testLogger(), WithDisabledTools("read_excel", " spaced "))
	reg.Register(&stubTool{name: "read_excel"})
	reg.Register(&stubTool{name: "spaced"})
	reg.Register(&stubTool{name: "kept"})

	_, ok := reg.Tool("read_excel")
	assert.False(t, ok)
	_, ok = reg.Tool("spaced")
	assert.False(t, ok)
	_, ok = reg.Tool("kept")
	assert.True(t, ok)
}

func TestDisabledFromEnv(t *testing.T) {
	t.Setenv("DISABLED_TOOLS", "read_excel, read_excel_by_sheet_name ,")

	names := DisabledFromEnv()
	assert.Equal(t, []string{"read_excel", "read_excel_by_sheet_name"}, names)
}

func TestDisabledFromEnv_Empty(t *testing.T) {
	t.Setenv("DISABLED_TOOLS", "")
	assert.Nil(t, DisabledFromEnv())
}

func TestSharedResources(t *testing.T) {
	logger := testLogger()
	reg := New(logger)

	assert.Same(t, logger, reg.Logger())
	require.NotNil(t, reg.Cache())

	reg.Cache().Store("key", "value")
	v, ok := reg.Cache().Load("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}
