package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/graph"
	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/manifest"
)

func buildGraph(t *testing.T, manifests ...*manifest.Plugin) *graph.Graph {
	t.Helper()
	g, issues := graph.Build(context.Background(), manifests)
	require.Empty(t, issues, "test graph must build cleanly")
	return g
}

func plugin(id string, priority int, deps ...string) *manifest.Plugin {
	p := &manifest.Plugin{ID: id, Priority: priority}
	for _, dep := range deps {
		p.Dependencies = append(p.Dependencies, manifest.Dependency{ID: dep})
	}
	return p
}

// indexOf returns the position of id in order, failing the test when absent.
func indexOf(t *testing.T, order []string, id string) int {
	t.Helper()
	for i, v := range order {
		if v == id {
			return i
		}
	}
	t.Fatalf("id %q not found in order %v", id, order)
	return -1
}

func TestOrderDependenciesFirst(t *testing.T) {
	g := buildGraph(t,
		plugin("app", 300, "lib", "core"),
		plugin("lib", 200, "core"),
		plugin("core", 100),
	)

	order, issues := Order(context.Background(), g)
	require.Empty(t, issues)
	require.Len(t, order, 3)

	// For every edge A -> B, B precedes A.
	assert.Less(t, indexOf(t, order, "core"), indexOf(t, order, "lib"))
	assert.Less(t, indexOf(t, order, "lib"), indexOf(t, order, "app"))
	assert.Less(t, indexOf(t, order, "core"), indexOf(t, order, "app"))
}

func TestOrderPriorityPrecedence(t *testing.T) {
	// Both eligible at once; the lower priority loads first even though it
	// appears later in the input list.
	g := buildGraph(t,
		plugin("expensive", 900),
		plugin("cheap", 100),
	)

	order, issues := Order(context.Background(), g)
	require.Empty(t, issues)
	assert.Equal(t, []string{"cheap", "expensive"}, order)
}

func TestOrderDeterministicTieBreak(t *testing.T) {
	g := buildGraph(t,
		plugin("zeta", 500),
		plugin("alpha", 500),
		plugin("mid", 500),
	)

	for range 10 {
		order, issues := Order(context.Background(), g)
		require.Empty(t, issues)
		assert.Equal(t, []string{"alpha", "mid", "zeta"}, order)
	}
}

func TestOrderPriorityNeverOverridesEdges(t *testing.T) {
	// high-priority-value dependency must still load before its
	// low-priority-value dependent.
	g := buildGraph(t,
		plugin("eager", 1, "slow"),
		plugin("slow", 9000),
	)

	order, issues := Order(context.Background(), g)
	require.Empty(t, issues)
	assert.Equal(t, []string{"slow", "eager"}, order)
}

func TestOrderUnsetPrioritySortsLast(t *testing.T) {
	g := buildGraph(t,
		plugin("undeclared", manifest.PriorityUnset),
		plugin("declared", 25000),
	)

	order, issues := Order(context.Background(), g)
	require.Empty(t, issues)
	assert.Equal(t, []string{"declared", "undeclared"}, order)
}

func TestOrderCycleDetection(t *testing.T) {
	t.Run("three-node cycle names all members", func(t *testing.T) {
		g := buildGraph(t,
			plugin("a", 1, "b"),
			plugin("b", 2, "c"),
			plugin("c", 3, "a"),
		)

		order, issues := Order(context.Background(), g)
		assert.Empty(t, order, "no partial order may be returned")
		require.Len(t, issues, 1)
		assert.Equal(t, issue.CircularDependency, issues[0].Kind)
		assert.Equal(t, []string{"a", "b", "c"}, issues[0].Plugins)
	})

	t.Run("acyclic remainder is not silently ordered", func(t *testing.T) {
		g := buildGraph(t,
			plugin("a", 1, "b"),
			plugin("b", 2, "a"),
			plugin("standalone", 3),
		)

		order, issues := Order(context.Background(), g)
		assert.Empty(t, order)
		require.Len(t, issues, 1)
		assert.Equal(t, []string{"a", "b"}, issues[0].Plugins)
	})

	t.Run("disjoint cycles become separate issues", func(t *testing.T) {
		g := buildGraph(t,
			plugin("a", 1, "b"),
			plugin("b", 2, "a"),
			plugin("x", 3, "y"),
			plugin("y", 4, "x"),
		)

		_, issues := Order(context.Background(), g)
		require.Len(t, issues, 2)
		assert.Equal(t, []string{"a", "b"}, issues[0].Plugins)
		assert.Equal(t, []string{"x", "y"}, issues[1].Plugins)
	})

	t.Run("self dependency is a single-node cycle", func(t *testing.T) {
		g := buildGraph(t,
			plugin("narcissus", 1, "narcissus"),
		)

		order, issues := Order(context.Background(), g)
		assert.Empty(t, order)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.CircularDependency, issues[0].Kind)
		assert.Equal(t, []string{"narcissus"}, issues[0].Plugins)
	})

	t.Run("node blocked by a cycle carries no issue of its own", func(t *testing.T) {
		g := buildGraph(t,
			plugin("a", 1, "b"),
			plugin("b", 2, "a"),
			plugin("victim", 3, "a"),
		)

		order, issues := Order(context.Background(), g)
		assert.Empty(t, order)
		require.Len(t, issues, 1)
		assert.Equal(t, []string{"a", "b"}, issues[0].Plugins)
	})
}

func TestOrderEmptyGraph(t *testing.T) {
	g := buildGraph(t)
	order, issues := Order(context.Background(), g)
	assert.Empty(t, order)
	assert.Empty(t, issues)
}
