package resolve

import (
	"container/heap"
	"context"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/graph"
	"github.com/vk/plugrid/internal/issue"
)

// readyItem is one entry in the ready set: a node whose dependencies have
// all been emitted.
type readyItem struct {
	id       string
	priority int
}

// readyQueue is a min-heap ordered by (priority, identity). Dependency edges
// are the authority on order; priority only disambiguates nodes that are
// eligible at the same time, and identity makes the final tie fully
// deterministic.
type readyQueue []readyItem

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(a, b int) bool {
	if q[a].priority != q[b].priority {
		return q[a].priority < q[b].priority
	}
	return q[a].id < q[b].id
}

func (q readyQueue) Swap(a, b int) { q[a], q[b] = q[b], q[a] }

func (q *readyQueue) Push(x any) { *q = append(*q, x.(readyItem)) }

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Order computes the total load order of the graph: for every edge A -> B
// (A depends on B), B precedes A in the output. When the graph contains
// cycles no order is returned; instead the unemitted remainder is partitioned
// into cycles and reported, one CircularDependency issue per cycle.
func Order(ctx context.Context, g *graph.Graph) ([]string, []issue.Issue) {
	logger := ctxlog.FromContext(ctx)

	indegree := make(map[string]int, g.Len())
	ready := &readyQueue{}
	for _, id := range g.IDs() {
		deps := g.Dependencies(id)
		indegree[id] = len(deps)
		if len(deps) == 0 {
			*ready = append(*ready, readyItem{id: id, priority: g.Priority(id)})
		}
	}
	heap.Init(ready)

	order := make([]string, 0, g.Len())
	emitted := make(map[string]bool, g.Len())
	for ready.Len() > 0 {
		item := heap.Pop(ready).(readyItem)
		order = append(order, item.id)
		emitted[item.id] = true
		for _, dependent := range g.Dependents(item.id) {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				heap.Push(ready, readyItem{id: dependent, priority: g.Priority(dependent)})
			}
		}
	}

	if len(order) == g.Len() {
		logger.Debug("Topological resolution complete.", "order_length", len(order))
		return order, nil
	}

	// The ready set drained early: everything unemitted is blocked by at
	// least one cycle.
	unemitted := make(map[string]bool, g.Len()-len(order))
	for _, id := range g.IDs() {
		if !emitted[id] {
			unemitted[id] = true
		}
	}
	issues := findCycles(g, unemitted)
	logger.Debug("Topological resolution blocked by cycles.",
		"unemitted", len(unemitted), "cycles", len(issues))
	return nil, issues
}
