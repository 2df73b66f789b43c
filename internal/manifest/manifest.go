package manifest

import "math"

// PriorityUnset is the sentinel for a manifest that declares no priority.
// It is a very large positive value so undeclared plugins sort after every
// explicitly prioritized sibling at the same dependency level.
const PriorityUnset = math.MaxInt32

// Plugin is the format-agnostic declaration of a single plugin. Instances
// are immutable inputs for the duration of one resolution run; nothing in
// the core mutates them.
type Plugin struct {
	// ID is the unique identity token of the plugin.
	ID string
	// Priority places the plugin inside a tier range and breaks ties among
	// simultaneously eligible plugins during ordering. PriorityUnset when
	// the manifest declares none.
	Priority int
	// Version is an optional semantic version string.
	Version string
	// Tier is the optionally declared target tier name. When set, it must
	// agree with the tier implied by Priority.
	Tier string
	// Dependencies lists the plugins this one must load after, in
	// declaration order.
	Dependencies []Dependency
	// Source records where the manifest was loaded from (file path or
	// registry URL). Diagnostic only.
	Source string
}

// Dependency is one declared dependency edge.
type Dependency struct {
	// ID is the identity of the target plugin.
	ID string
	// Optional dependencies impose an ordering constraint only when the
	// target is present; a missing target is not an error.
	Optional bool
	// Constraint is an optional semantic version range the target's
	// Version must satisfy.
	Constraint string
}
