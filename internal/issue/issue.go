package issue

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a validation finding. Every expected data problem maps to
// exactly one kind; infrastructure failures (unreadable files, bad HCL) are
// ordinary errors and never appear here.
type Kind string

const (
	DuplicateIdentity       Kind = "DuplicateIdentity"
	MissingHardDependency   Kind = "MissingHardDependency"
	CircularDependency      Kind = "CircularDependency"
	PriorityOutOfRange      Kind = "PriorityOutOfRange"
	TierDependencyViolation Kind = "TierDependencyViolation"
	VersionConflict         Kind = "VersionConflict"
)

// kindOrder fixes the relative position of each kind in a sorted report.
var kindOrder = map[Kind]int{
	DuplicateIdentity:       0,
	MissingHardDependency:   1,
	CircularDependency:      2,
	PriorityOutOfRange:      3,
	TierDependencyViolation: 4,
	VersionConflict:         5,
}

// Issue is one validation finding. Plugins lists every offending identity in
// ascending order; Detail is a human-readable explanation.
type Issue struct {
	Kind    Kind
	Plugins []string
	Detail  string
}

// New builds an Issue with its plugin list sorted.
func New(kind Kind, detail string, plugins ...string) Issue {
	sorted := append([]string(nil), plugins...)
	sort.Strings(sorted)
	return Issue{Kind: kind, Plugins: sorted, Detail: detail}
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s]: %s", i.Kind, strings.Join(i.Plugins, ", "), i.Detail)
}

// Sort orders issues deterministically: by kind, then by plugin list, then
// by detail. Repeated runs over identical input must render byte-identical
// reports.
func Sort(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		ia, ib := issues[a], issues[b]
		if ia.Kind != ib.Kind {
			return kindOrder[ia.Kind] < kindOrder[ib.Kind]
		}
		la := strings.Join(ia.Plugins, "\x00")
		lb := strings.Join(ib.Plugins, "\x00")
		if la != lb {
			return la < lb
		}
		return ia.Detail < ib.Detail
	})
}

// HasKind reports whether any issue in the list carries the given kind.
func HasKind(issues []Issue, kind Kind) bool {
	for _, i := range issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}
