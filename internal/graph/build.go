package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/manifest"
)

// Build constructs the dependency graph for a manifest set.
//
// Duplicate identities are reported as DuplicateIdentity and every colliding
// manifest is excluded from the graph; the builder never picks a winner.
// A non-optional dependency whose target is absent (or excluded) yields one
// MissingHardDependency issue and the edge is dropped. Optional dependencies
// with an absent target are dropped silently.
//
// The returned graph covers the surviving manifests even when issues were
// found, so resolution can proceed over the well-formed remainder.
func Build(ctx context.Context, manifests []*manifest.Plugin) (*Graph, []issue.Issue) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building dependency graph...", "manifest_count", len(manifests))

	var issues []issue.Issue

	// First pass: find identity collisions.
	seen := make(map[string]int, len(manifests))
	for _, m := range manifests {
		seen[m.ID]++
	}
	excluded := make(map[string]bool)
	for id, count := range seen {
		if count > 1 {
			excluded[id] = true
		}
	}
	for _, id := range sortedKeys(excluded) {
		issues = append(issues, issue.New(issue.DuplicateIdentity,
			fmt.Sprintf("plugin id %q is declared by %d manifests", id, seen[id]), id))
	}

	// Second pass: nodes for every surviving manifest.
	g := newGraph()
	for _, m := range manifests {
		if excluded[m.ID] {
			continue
		}
		g.addNode(m.ID, m.Priority)
	}

	// Third pass: edges. A dependency on an excluded identity counts as
	// missing; the host should see the full blast radius of a collision.
	for _, m := range manifests {
		if excluded[m.ID] {
			continue
		}
		for _, dep := range m.Dependencies {
			if g.Contains(dep.ID) {
				g.addEdge(m.ID, dep.ID)
				continue
			}
			if dep.Optional {
				logger.Debug("Dropping optional dependency on absent plugin.",
					"plugin", m.ID, "target", dep.ID)
				continue
			}
			issues = append(issues, issue.New(issue.MissingHardDependency,
				fmt.Sprintf("plugin %q requires %q, which is not in the manifest set", m.ID, dep.ID),
				m.ID, dep.ID))
		}
	}

	issue.Sort(issues)
	logger.Debug("Dependency graph built.", "node_count", g.Len(), "issue_count", len(issues))
	return g, issues
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
