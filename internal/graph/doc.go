// Package graph turns a set of plugin manifests into a directed dependency
// graph keyed by plugin identity. It validates raw references (duplicate
// identities, missing hard-dependency targets) and leaves ordering and tier
// policy to the resolve and validate packages.
package graph
