package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/manifest"
	"github.com/vk/plugrid/internal/tier"
)

func testCatalog(t *testing.T) *tier.Catalog {
	t.Helper()
	c, err := tier.NewCatalog([]tier.Tier{
		{
			Name:  "Essential",
			Range: tier.Range{Low: 1, High: 9999},
			Categories: []tier.Category{
				{Name: "Core", Range: tier.Range{Low: 1, High: 4999}},
				{Name: "Plugin", Range: tier.Range{Low: 5000, High: 9999}},
			},
		},
		{Name: "GameGeneral", Range: tier.Range{Low: 10000, High: 19999}, DependsOn: []string{"Essential"}},
		{Name: "GameSpecific", Range: tier.Range{Low: 20000, High: 29999}, DependsOn: []string{"Essential", "GameGeneral"}},
	})
	require.NoError(t, err)
	return c
}

func check(t *testing.T, manifests ...*manifest.Plugin) []issue.Issue {
	t.Helper()
	return Check(context.Background(), manifests, testCatalog(t))
}

func TestRangeCheck(t *testing.T) {
	t.Run("boundary priorities land in the right tier", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "edge", Priority: 9999, Tier: "Essential"},
			&manifest.Plugin{ID: "next", Priority: 10000, Tier: "GameGeneral"},
		)
		assert.Empty(t, issues)
	})

	t.Run("priority 10000 fails a declared Essential tier", func(t *testing.T) {
		issues := check(t, &manifest.Plugin{ID: "liar", Priority: 10000, Tier: "Essential"})
		require.Len(t, issues, 1)
		assert.Equal(t, issue.PriorityOutOfRange, issues[0].Kind)
		assert.Equal(t, []string{"liar"}, issues[0].Plugins)
	})

	t.Run("priority outside every tier", func(t *testing.T) {
		issues := check(t, &manifest.Plugin{ID: "stray", Priority: 99999})
		require.Len(t, issues, 1)
		assert.Equal(t, issue.PriorityOutOfRange, issues[0].Kind)
	})

	t.Run("unknown declared tier", func(t *testing.T) {
		issues := check(t, &manifest.Plugin{ID: "confused", Priority: 100, Tier: "Imaginary"})
		require.Len(t, issues, 1)
		assert.Equal(t, issue.PriorityOutOfRange, issues[0].Kind)
	})

	t.Run("undeclared tier with valid priority is fine", func(t *testing.T) {
		issues := check(t, &manifest.Plugin{ID: "quiet", Priority: 15000})
		assert.Empty(t, issues)
	})
}

func TestDirectionalDependencyCheck(t *testing.T) {
	t.Run("downward dependency violates layering", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "general", Priority: 15100, Dependencies: []manifest.Dependency{{ID: "specific"}}},
			&manifest.Plugin{ID: "specific", Priority: 25100},
		)
		require.Len(t, issues, 1)
		i := issues[0]
		assert.Equal(t, issue.TierDependencyViolation, i.Kind)
		assert.Equal(t, []string{"general", "specific"}, i.Plugins)
		assert.Contains(t, i.Detail, "GameGeneral")
		assert.Contains(t, i.Detail, "GameSpecific")
	})

	t.Run("reversed direction is permitted", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "general", Priority: 15100},
			&manifest.Plugin{ID: "specific", Priority: 25100, Dependencies: []manifest.Dependency{{ID: "general"}}},
		)
		assert.Empty(t, issues)
	})

	t.Run("same-tier dependency is always permitted", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b"}}},
			&manifest.Plugin{ID: "b", Priority: 200},
		)
		assert.Empty(t, issues)
	})

	t.Run("optional edges are checked too", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "general", Priority: 15100, Dependencies: []manifest.Dependency{{ID: "specific", Optional: true}}},
			&manifest.Plugin{ID: "specific", Priority: 25100},
		)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.TierDependencyViolation, issues[0].Kind)
	})

	t.Run("all manifests are checked even after one fails", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "bad-one", Priority: 15100, Dependencies: []manifest.Dependency{{ID: "deep-one"}}},
			&manifest.Plugin{ID: "deep-one", Priority: 25100},
			&manifest.Plugin{ID: "bad-two", Priority: 15200, Dependencies: []manifest.Dependency{{ID: "deep-two"}}},
			&manifest.Plugin{ID: "deep-two", Priority: 25200},
		)
		assert.Len(t, issues, 2)
	})
}

func TestCategoryCheck(t *testing.T) {
	// The test catalog's Essential categories cover the whole tier range,
	// so build a gappy one here.
	c, err := tier.NewCatalog([]tier.Tier{
		{
			Name:       "Gappy",
			Range:      tier.Range{Low: 1, High: 100},
			Categories: []tier.Category{{Name: "Core", Range: tier.Range{Low: 1, High: 50}}},
		},
	})
	require.NoError(t, err)

	issues := Check(context.Background(), []*manifest.Plugin{
		{ID: "inside", Priority: 50},
		{ID: "between", Priority: 75},
	}, c)
	require.Len(t, issues, 1)
	assert.Equal(t, issue.PriorityOutOfRange, issues[0].Kind)
	assert.Equal(t, []string{"between"}, issues[0].Plugins)
}

func TestVersionConstraints(t *testing.T) {
	t.Run("satisfied constraint is silent", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b", Constraint: ">=1.2.0"}}},
			&manifest.Plugin{ID: "b", Priority: 200, Version: "1.4.0"},
		)
		assert.Empty(t, issues)
	})

	t.Run("unsatisfied constraint conflicts", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b", Constraint: ">=2.0.0"}}},
			&manifest.Plugin{ID: "b", Priority: 200, Version: "1.4.0"},
		)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.VersionConflict, issues[0].Kind)
		assert.Equal(t, []string{"a", "b"}, issues[0].Plugins)
	})

	t.Run("constraint against unversioned target conflicts", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b", Constraint: ">=1.0.0"}}},
			&manifest.Plugin{ID: "b", Priority: 200},
		)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.VersionConflict, issues[0].Kind)
		assert.Contains(t, issues[0].Detail, "declares no version")
	})

	t.Run("unparseable constraint conflicts", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b", Constraint: "not-a-range"}}},
			&manifest.Plugin{ID: "b", Priority: 200, Version: "1.0.0"},
		)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.VersionConflict, issues[0].Kind)
	})

	t.Run("no constraint means no check", func(t *testing.T) {
		issues := check(t,
			&manifest.Plugin{ID: "a", Priority: 100, Dependencies: []manifest.Dependency{{ID: "b"}}},
			&manifest.Plugin{ID: "b", Priority: 200, Version: "not-semver"},
		)
		assert.Empty(t, issues)
	})
}
