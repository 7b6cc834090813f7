package service

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/numerics/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	id       string
	category types.Category
	calls    []string
}

func (m *mockProvider) Definition() types.Service {
	category := m.category
	if category == "" {
		category = types.CategoryMath
	}
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "Arithmetic over mock numbers",
		Category:     category,
		Capabilities: []string{"arithmetic", "rounding"},
		Tools: []types.Tool{
			{ID: m.id + ".add", Name: "Add", Returns: "number"},
			{ID: m.id + ".median", Name: "Median", Returns: "number"},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	m.calls = append(m.calls, toolID)
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success", "params": len(params)},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test"}))

	_, ok := r.Get("test")
	assert.True(t, ok)

	t.Run("Duplicate ID", func(t *testing.T) {
		assert.Error(t, r.Register(&mockProvider{id: "test"}))
	})

	t.Run("Empty ID", func(t *testing.T) {
		assert.Error(t, r.Register(&mockProvider{}))
	})

	t.Run("Unregister", func(t *testing.T) {
		r.Unregister("test")
		_, ok := r.Get("test")
		assert.False(t, ok)
	})
}

func TestList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "beta"}))
	require.NoError(t, r.Register(&mockProvider{id: "alpha"}))
	require.NoError(t, r.Register(&mockProvider{id: "expr", category: types.CategoryExpression}))

	services := r.List(nil)
	require.Len(t, services, 3)
	assert.Equal(t, "alpha", services[0].ID)
	assert.Equal(t, "beta", services[1].ID)

	cat := types.CategoryMath
	assert.Len(t, r.List(&cat), 2)
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "math"}))
	require.NoError(t, r.Register(&mockProvider{id: "other", category: types.CategoryExpression}))

	t.Run("Capability match", func(t *testing.T) {
		results := r.Discover("I need arithmetic on math values", 5)
		require.NotEmpty(t, results)
		assert.Equal(t, "math", results[0].ID)
	})

	t.Run("Tool name match", func(t *testing.T) {
		results := r.Discover("what is the median", 1)
		require.Len(t, results, 1)
	})

	t.Run("No match", func(t *testing.T) {
		assert.Empty(t, r.Discover("zzz", 5))
	})
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}
	require.NoError(t, r.Register(p))

	ctx := context.Background()
	result, err := r.Execute(ctx, "test.add", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{"test.add"}, p.calls)

	t.Run("Invalid tool ID", func(t *testing.T) {
		result, err := r.Execute(ctx, "nodot", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidToolID)
		assert.False(t, result.Success)
	})

	t.Run("Unknown service", func(t *testing.T) {
		result, err := r.Execute(ctx, "missing.add", nil, nil)
		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.Contains(t, *result.Error, "service not found")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := r.Execute(cctx, "test.add", nil, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&mockProvider{id: "test1"}))
	require.NoError(t, r.Register(&mockProvider{id: "test2"}))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 4, stats["total_tools"])
	assert.Equal(t, map[string]int{"math": 2}, stats["categories"])
}
