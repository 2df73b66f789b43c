package graph

import (
	"sort"
)

// Graph is the directed "depends-on" relation over plugin identities. One
// resolution call owns a Graph exclusively from build to completion, so no
// locking is involved; callers must not share a Graph across goroutines.
type Graph struct {
	nodes map[string]*node
}

// node is a single vertex. It is un-exported to enforce interaction via the
// public API (string identities), not direct struct manipulation.
type node struct {
	id       string
	priority int
	// deps holds the nodes this node depends on (they must load first).
	deps map[string]*node
	// dependents holds the nodes that depend on this node.
	dependents map[string]*node
}

func newGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

func (g *Graph) addNode(id string, priority int) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		priority:   priority,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// addEdge records that fromID depends on toID. Both nodes must exist; the
// builder guarantees that before calling. Self-edges are recorded as-is and
// surface later as single-node cycles.
func (g *Graph) addEdge(fromID, toID string) {
	fromNode := g.nodes[fromID]
	toNode := g.nodes[toID]
	fromNode.deps[toID] = toNode
	toNode.dependents[fromID] = fromNode
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDs returns every plugin identity in the graph in ascending order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Contains reports whether the identity is a node in the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Priority returns the declared priority of the given node. Unknown
// identities panic; callers iterate identities obtained from the graph.
func (g *Graph) Priority(id string) int {
	return g.nodes[id].priority
}

// Dependencies returns the identities the given node depends on, ascending.
func (g *Graph) Dependencies(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	deps := make([]string, 0, len(n.deps))
	for depID := range n.deps {
		deps = append(deps, depID)
	}
	sort.Strings(deps)
	return deps
}

// Dependents returns the identities that depend on the given node, ascending.
func (g *Graph) Dependents(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	dependents := make([]string, 0, len(n.dependents))
	for depID := range n.dependents {
		dependents = append(dependents, depID)
	}
	sort.Strings(dependents)
	return dependents
}
