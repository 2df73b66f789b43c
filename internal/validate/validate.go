package validate

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/manifest"
	"github.com/vk/plugrid/internal/tier"
)

// Check runs every tier and version check over the whole manifest set and
// returns the accumulated findings. It is purely diagnostic: no manifest is
// mutated or dropped, and one plugin's failure never stops the checks for
// the others. Cycle detection is not repeated here; the resolver's cycle
// issues are merged into the final report by the caller.
func Check(ctx context.Context, manifests []*manifest.Plugin, catalog *tier.Catalog) []issue.Issue {
	logger := ctxlog.FromContext(ctx)

	// First manifest wins for dependency-target lookups; duplicate
	// identities are already reported by the graph builder.
	byID := make(map[string]*manifest.Plugin, len(manifests))
	for _, m := range manifests {
		if _, ok := byID[m.ID]; !ok {
			byID[m.ID] = m
		}
	}

	var issues []issue.Issue
	for _, m := range manifests {
		issues = append(issues, checkRange(m, catalog)...)
		issues = append(issues, checkDependencies(m, byID, catalog)...)
		issues = append(issues, checkVersions(m, byID)...)
	}

	issue.Sort(issues)
	logger.Debug("Tier validation finished.", "manifests", len(manifests), "issues", len(issues))
	return issues
}

// checkRange verifies that the manifest's priority lands inside a tier (and
// inside one of the tier's categories, when the tier defines any), and that
// a declared target tier name agrees with the tier implied by the number.
func checkRange(m *manifest.Plugin, catalog *tier.Catalog) []issue.Issue {
	var issues []issue.Issue

	implied := catalog.TierFor(m.Priority)
	if implied == nil {
		issues = append(issues, issue.New(issue.PriorityOutOfRange,
			fmt.Sprintf("plugin %q priority %d falls outside every tier range", m.ID, m.Priority), m.ID))
	} else if len(implied.Categories) > 0 && implied.CategoryFor(m.Priority) == nil {
		issues = append(issues, issue.New(issue.PriorityOutOfRange,
			fmt.Sprintf("plugin %q priority %d is inside tier %q but outside every category sub-range",
				m.ID, m.Priority, implied.Name), m.ID))
	}

	if m.Tier != "" {
		declared := catalog.ByName(m.Tier)
		switch {
		case declared == nil:
			issues = append(issues, issue.New(issue.PriorityOutOfRange,
				fmt.Sprintf("plugin %q declares unknown tier %q", m.ID, m.Tier), m.ID))
		case implied != nil && declared.Name != implied.Name:
			issues = append(issues, issue.New(issue.PriorityOutOfRange,
				fmt.Sprintf("plugin %q declares tier %q but priority %d places it in tier %q",
					m.ID, m.Tier, m.Priority, implied.Name), m.ID))
		}
	}

	return issues
}

// checkDependencies verifies every dependency edge whose target is present
// against the catalog's permitted-direction rules. Edges whose endpoints
// have no resolvable tier are skipped; the range check already reports them.
func checkDependencies(m *manifest.Plugin, byID map[string]*manifest.Plugin, catalog *tier.Catalog) []issue.Issue {
	sourceTier := catalog.TierFor(m.Priority)
	if sourceTier == nil {
		return nil
	}

	var issues []issue.Issue
	for _, dep := range m.Dependencies {
		target, ok := byID[dep.ID]
		if !ok {
			continue
		}
		targetTier := catalog.TierFor(target.Priority)
		if targetTier == nil {
			continue
		}
		if !sourceTier.Allows(targetTier.Name) {
			issues = append(issues, issue.New(issue.TierDependencyViolation,
				fmt.Sprintf("plugin %q (tier %q) may not depend on plugin %q (tier %q)",
					m.ID, sourceTier.Name, target.ID, targetTier.Name),
				m.ID, target.ID))
		}
	}
	return issues
}

// checkVersions verifies declared semver constraints against the target's
// declared version.
func checkVersions(m *manifest.Plugin, byID map[string]*manifest.Plugin) []issue.Issue {
	var issues []issue.Issue
	for _, dep := range m.Dependencies {
		if dep.Constraint == "" {
			continue
		}
		target, ok := byID[dep.ID]
		if !ok {
			continue
		}

		constraint, err := semver.NewConstraint(dep.Constraint)
		if err != nil {
			issues = append(issues, issue.New(issue.VersionConflict,
				fmt.Sprintf("plugin %q declares unparseable constraint %q on %q", m.ID, dep.Constraint, dep.ID),
				m.ID, dep.ID))
			continue
		}
		if target.Version == "" {
			issues = append(issues, issue.New(issue.VersionConflict,
				fmt.Sprintf("plugin %q requires %q %s, but %q declares no version",
					m.ID, dep.ID, dep.Constraint, dep.ID),
				m.ID, dep.ID))
			continue
		}
		version, err := semver.NewVersion(target.Version)
		if err != nil {
			issues = append(issues, issue.New(issue.VersionConflict,
				fmt.Sprintf("plugin %q declares unparseable version %q", dep.ID, target.Version),
				m.ID, dep.ID))
			continue
		}
		if !constraint.Check(version) {
			issues = append(issues, issue.New(issue.VersionConflict,
				fmt.Sprintf("plugin %q requires %q %s, but %q is version %s",
					m.ID, dep.ID, dep.Constraint, dep.ID, target.Version),
				m.ID, dep.ID))
		}
	}
	return issues
}
