package tools

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soypete/programs-mcp/pkg/metrics"
)

// mockTool is a simple Tool implementation for testing
type mockTool struct {
	name        string
	description string
	result      *Result
	err         error
}

func (m *mockTool) Name() string        { return m.name }
func (m *mockTool) Description() string { return m.description }
func (m *mockTool) Execute(ctx context.Context, args map[string]interface{}) (*Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return TextResult("mock output"), nil
}

// mockExtendedTool adds metadata to mockTool
type mockExtendedTool struct {
	mockTool
	metadata *ToolMetadata
}

func (m *mockExtendedTool) Metadata() *ToolMetadata {
	return m.metadata
}

func TestNewToolRegistry(t *testing.T) {
	r := NewToolRegistry(nil)
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.List())
}

func TestToolRegistry_Register(t *testing.T) {
	r := NewToolRegistry(nil)

	require.NoError(t, r.Register(&mockTool{name: "tool_a"}))
	assert.Equal(t, 1, r.Count())

	err := r.Register(&mockTool{name: "tool_a"})
	assert.EqualError(t, err, `tool "tool_a" already registered`)

	tool, ok := r.Get("tool_a")
	require.True(t, ok)
	assert.Equal(t, "tool_a", tool.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestToolRegistry_ListKeepsRegistrationOrder(t *testing.T) {
	r := NewToolRegistry(nil)
	names := []string{"zeta", "alpha", "mu", "beta"}
	for _, name := range names {
		require.NoError(t, r.Register(&mockTool{name: name}))
	}

	assert.Equal(t, names, r.ListNames())

	listed := r.List()
	require.Len(t, listed, len(names))
	for i, tool := range listed {
		assert.Equal(t, names[i], tool.Name())
	}
}

func TestToolRegistry_Execute(t *testing.T) {
	r := NewToolRegistry(nil)
	require.NoError(t, r.Register(&mockTool{name: "echo"}))
	require.NoError(t, r.Register(&mockTool{name: "broken", err: errors.New("boom")}))
	require.NoError(t, r.Register(&mockTool{name: "soft_fail", result: ErrorResult("Error doing thing: nope")}))

	before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo", "ok"))
	result, err := r.Execute(context.Background(), "echo", nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "mock output", result.Output)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("echo", "ok")))

	result, err = r.Execute(context.Background(), "broken", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Error: boom", result.Output)

	before = testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("soft_fail", "error"))
	result, err = r.Execute(context.Background(), "soft_fail", map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Error doing thing: nope", result.Output)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("soft_fail", "error")))

	_, err = r.Execute(context.Background(), "missing", nil)
	assert.EqualError(t, err, "tool not found: missing")
}

func TestToolRegistry_ConcurrentAccess(t *testing.T) {
	r := NewToolRegistry(nil)
	require.NoError(t, r.Register(&mockTool{name: "shared"}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := r.Execute(context.Background(), "shared", nil)
			assert.NoError(t, err)
			assert.True(t, result.Success)
			_ = r.ListNames()
		}()
	}
	wg.Wait()
}

func TestInputSchema(t *testing.T) {
	plain := &mockTool{name: "plain"}
	schema := InputSchema(plain)
	assert.Equal(t, "object", schema.Type)
	assert.Empty(t, schema.Properties)

	ext := &mockExtendedTool{
		mockTool: mockTool{name: "ext"},
		metadata: &ToolMetadata{
			Schema: ObjectSchema(map[string]*JSONSchema{
				"country": {Type: "string"},
			}, "country"),
		},
	}
	schema = InputSchema(ext)
	assert.Equal(t, []string{"country"}, schema.Required)
	assert.Contains(t, schema.Properties, "country")
}
