package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/plugrid/internal/graph"
	"github.com/vk/plugrid/internal/issue"
)

// findCycles partitions the unemitted remainder of a blocked graph into
// strongly connected components, following dependency edges restricted to
// unemitted nodes. Every component that actually contains a cycle (more than
// one member, or a single member with a self-edge) becomes one
// CircularDependency issue naming all of its members. Unemitted nodes that
// are merely downstream of a cycle form trivial components and carry no
// issue of their own.
func findCycles(g *graph.Graph, unemitted map[string]bool) []issue.Issue {
	t := &tarjan{
		g:         g,
		unemitted: unemitted,
		index:     make(map[string]int, len(unemitted)),
		lowlink:   make(map[string]int, len(unemitted)),
		onStack:   make(map[string]bool, len(unemitted)),
	}

	for _, id := range g.IDs() {
		if unemitted[id] {
			if _, visited := t.index[id]; !visited {
				t.strongConnect(id)
			}
		}
	}

	var issues []issue.Issue
	for _, component := range t.components {
		if len(component) == 1 && !hasSelfEdge(g, component[0]) {
			continue
		}
		issues = append(issues, issue.New(issue.CircularDependency,
			fmt.Sprintf("plugins form a dependency cycle: %s", strings.Join(component, " -> ")),
			component...))
	}
	issue.Sort(issues)
	return issues
}

func hasSelfEdge(g *graph.Graph, id string) bool {
	for _, dep := range g.Dependencies(id) {
		if dep == id {
			return true
		}
	}
	return false
}

// tarjan holds the state of Tarjan's strongly-connected-components search
// over the unemitted subgraph. Node visitation follows the graph's sorted
// accessors, so component discovery order is deterministic.
type tarjan struct {
	g          *graph.Graph
	unemitted  map[string]bool
	counter    int
	index      map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	components [][]string
}

func (t *tarjan) strongConnect(id string) {
	t.index[id] = t.counter
	t.lowlink[id] = t.counter
	t.counter++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, dep := range t.g.Dependencies(id) {
		if !t.unemitted[dep] {
			continue
		}
		if _, visited := t.index[dep]; !visited {
			t.strongConnect(dep)
			if t.lowlink[dep] < t.lowlink[id] {
				t.lowlink[id] = t.lowlink[dep]
			}
		} else if t.onStack[dep] {
			if t.index[dep] < t.lowlink[id] {
				t.lowlink[id] = t.index[dep]
			}
		}
	}

	if t.lowlink[id] == t.index[id] {
		var component []string
		for {
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[top] = false
			component = append(component, top)
			if top == id {
				break
			}
		}
		// Members are collected in stack order; sort for stable reporting.
		sort.Strings(component)
		t.components = append(t.components, component)
	}
}
