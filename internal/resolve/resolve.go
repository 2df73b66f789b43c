package resolve

import (
	"context"
	"errors"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/graph"
	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/manifest"
	"github.com/vk/plugrid/internal/tier"
	"github.com/vk/plugrid/internal/validate"
)

// Result is the complete outcome of one resolution run.
type Result struct {
	// Order is the dependency-safe load order, ascending by load position.
	// It is populated whenever no circular dependency exists, even when the
	// issue list is non-empty, so a host can choose to log and continue.
	// Empty when any cycle was found.
	Order []string
	// Issues is every finding from graph construction, ordering, and tier
	// validation, in deterministic order. Treating a non-empty list as
	// fatal is the host's policy decision, not this package's.
	Issues []issue.Issue
}

// HasCycle reports whether resolution was blocked by a circular dependency.
func (r *Result) HasCycle() bool {
	return issue.HasKind(r.Issues, issue.CircularDependency)
}

// Resolve is the core's single entry point: build the dependency graph,
// compute the load order, and validate the manifest set against the tier
// catalog. It never aborts on a data problem; every detectable issue is
// collected before returning. The error return fires only for precondition
// violations of the caller.
func Resolve(ctx context.Context, manifests []*manifest.Plugin, catalog *tier.Catalog) (*Result, error) {
	if catalog == nil {
		return nil, errors.New("resolve: tier catalog must not be nil")
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolution started.", "manifest_count", len(manifests))

	g, buildIssues := graph.Build(ctx, manifests)
	order, cycleIssues := Order(ctx, g)
	tierIssues := validate.Check(ctx, manifests, catalog)

	issues := make([]issue.Issue, 0, len(buildIssues)+len(cycleIssues)+len(tierIssues))
	issues = append(issues, buildIssues...)
	issues = append(issues, cycleIssues...)
	issues = append(issues, tierIssues...)
	issue.Sort(issues)

	logger.Info("Resolution finished.",
		"ordered", len(order), "issues", len(issues), "cycles", len(cycleIssues) > 0)
	return &Result{Order: order, Issues: issues}, nil
}
