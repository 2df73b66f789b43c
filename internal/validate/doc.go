// Package validate checks a manifest set against the tier catalog: priority
// range membership, declared-tier agreement, directional dependency rules,
// and semantic version constraints. It reports findings and decides nothing;
// whether an issue is fatal belongs to the host.
package validate
