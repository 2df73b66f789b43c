package tier

import (
	"fmt"
	"sort"
)

// Range is an inclusive priority interval.
type Range struct {
	Low  int
	High int
}

// Contains reports whether priority falls inside the interval.
func (r Range) Contains(priority int) bool {
	return priority >= r.Low && priority <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Low, r.High)
}

// Category is a named sub-range inside a tier, distinguishing contract-only
// declarations ("Core") from concrete implementations ("Plugin").
type Category struct {
	Name  string
	Range Range
}

// Tier is one architectural layer: a named priority band plus the set of
// other tiers its plugins are permitted to depend on.
type Tier struct {
	Name       string
	Range      Range
	Categories []Category
	// DependsOn lists the names of the other tiers this tier's plugins may
	// depend on. Edges within the same tier are always permitted.
	DependsOn []string
}

// Allows reports whether plugins in this tier may depend on plugins in the
// target tier.
func (t *Tier) Allows(target string) bool {
	if target == t.Name {
		return true
	}
	for _, name := range t.DependsOn {
		if name == target {
			return true
		}
	}
	return false
}

// CategoryFor returns the category whose sub-range contains priority, or nil
// when the priority sits in the tier range but outside every category.
func (t *Tier) CategoryFor(priority int) *Category {
	for i := range t.Categories {
		if t.Categories[i].Range.Contains(priority) {
			return &t.Categories[i]
		}
	}
	return nil
}

// Catalog is the full, immutable tier configuration for a process. It is
// loaded once and shared read-only by every resolution run.
type Catalog struct {
	tiers  []Tier
	byName map[string]*Tier
}

// NewCatalog validates the given definitions and assembles a catalog. The
// catalog itself must be coherent before any manifest is judged against it:
// tier ranges must not overlap, dependency rules must reference known tiers,
// and categories must sit inside their tier's range.
func NewCatalog(tiers []Tier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier catalog must define at least one tier")
	}

	c := &Catalog{
		tiers:  append([]Tier(nil), tiers...),
		byName: make(map[string]*Tier, len(tiers)),
	}

	// Keep catalog order stable regardless of declaration order.
	sort.SliceStable(c.tiers, func(a, b int) bool {
		return c.tiers[a].Range.Low < c.tiers[b].Range.Low
	})

	for i := range c.tiers {
		t := &c.tiers[i]
		if t.Name == "" {
			return nil, fmt.Errorf("tier with range %s has an empty name", t.Range)
		}
		if t.Range.Low > t.Range.High {
			return nil, fmt.Errorf("tier %q has an inverted range %s", t.Name, t.Range)
		}
		if _, exists := c.byName[t.Name]; exists {
			return nil, fmt.Errorf("tier %q is defined more than once", t.Name)
		}
		c.byName[t.Name] = t

		for _, cat := range t.Categories {
			if cat.Range.Low > cat.Range.High {
				return nil, fmt.Errorf("category %q of tier %q has an inverted range %s", cat.Name, t.Name, cat.Range)
			}
			if cat.Range.Low < t.Range.Low || cat.Range.High > t.Range.High {
				return nil, fmt.Errorf("category %q range %s escapes tier %q range %s", cat.Name, cat.Range, t.Name, t.Range)
			}
		}
	}

	// Overlap check over the sorted tiers.
	for i := 1; i < len(c.tiers); i++ {
		prev, cur := c.tiers[i-1], c.tiers[i]
		if cur.Range.Low <= prev.Range.High {
			return nil, fmt.Errorf("tier %q range %s overlaps tier %q range %s", cur.Name, cur.Range, prev.Name, prev.Range)
		}
	}

	// Dependency rules must point at tiers that exist.
	for _, t := range c.tiers {
		for _, target := range t.DependsOn {
			if _, ok := c.byName[target]; !ok {
				return nil, fmt.Errorf("tier %q permits dependencies on unknown tier %q", t.Name, target)
			}
		}
	}

	return c, nil
}

// Tiers returns the tier definitions in ascending range order.
func (c *Catalog) Tiers() []Tier {
	return c.tiers
}

// ByName returns the tier with the given name, or nil.
func (c *Catalog) ByName(name string) *Tier {
	return c.byName[name]
}

// TierFor returns the tier whose range contains the given priority, or nil
// when no tier claims it. Ranges are non-overlapping, so at most one tier
// matches.
func (c *Catalog) TierFor(priority int) *Tier {
	for i := range c.tiers {
		if c.tiers[i].Range.Contains(priority) {
			return &c.tiers[i]
		}
	}
	return nil
}
