package achievements

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/cosmath/internal/curriculum"
)

// Table is a validated, read-only set of achievement definitions.
type Table struct {
	defs []Definition
	byID map[string]int
}

// NewTable validates defs against the catalog and builds a table. The input
// is copied.
func NewTable(defs []Definition, catalog *curriculum.Catalog) (*Table, error) {
	if err := validateDefinitions(defs, catalog); err != nil {
		return nil, err
	}
	t := &Table{
		defs: make([]Definition, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		d.ExclusiveTo = slices.Clone(d.ExclusiveTo)
		t.defs[i] = d
		t.byID[d.ID] = i
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the built-in achievements bound to the built-in
// curriculum.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(seedDefinitions(), curriculum.Default())
		if err != nil {
			panic(fmt.Sprintf("built-in achievements: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// TableFor returns the built-in achievements that make sense for catalog:
// lesson-exclusive definitions are kept only when every lesson they list
// exists in it.
func TableFor(catalog *curriculum.Catalog) (*Table, error) {
	var defs []Definition
	for _, d := range seedDefinitions() {
		keep := true
		for _, id := range d.ExclusiveTo {
			if !catalog.Has(id) {
				keep = false
				break
			}
		}
		if keep {
			defs = append(defs, d)
		}
	}
	return NewTable(defs, catalog)
}

// Validate checks the built-in table against the built-in curriculum.
func Validate() error {
	return validateDefinitions(seedDefinitions(), curriculum.Default())
}

// All returns the definitions in table order.
func (t *Table) All() []Definition {
	out := make([]Definition, len(t.defs))
	for i, d := range t.defs {
		d.ExclusiveTo = slices.Clone(d.ExclusiveTo)
		out[i] = d
	}
	return out
}

// Get returns the definition with the given ID.
func (t *Table) Get(id string) (Definition, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Definition{}, false
	}
	d := t.defs[i]
	d.ExclusiveTo = slices.Clone(d.ExclusiveTo)
	return d, true
}

// BonusXP sums the XP rewards of the given achievement IDs. Unknown IDs
// contribute nothing.
func (t *Table) BonusXP(ids []string) int {
	total := 0
	for _, id := range ids {
		if i, ok := t.byID[id]; ok {
			total += t.defs[i].XPReward
		}
	}
	return total
}

// Len returns the number of definitions.
func (t *Table) Len() int { return len(t.defs) }

func validateDefinitions(defs []Definition, catalog *curriculum.Catalog) error {
	var errs []string
	seen := make(map[string]bool, len(defs))

	for _, d := range defs {
		if d.ID == "" {
			errs = append(errs, fmt.Sprintf("achievement %q has an empty ID", d.Name))
			continue
		}
		if seen[d.ID] {
			errs = append(errs, fmt.Sprintf("duplicate achievement ID: %q", d.ID))
		}
		seen[d.ID] = true

		if d.XPReward < 0 {
			errs = append(errs, fmt.Sprintf("achievement %q: XPReward must be >= 0, got %d", d.ID, d.XPReward))
		}
		if !d.Predicate.known() {
			errs = append(errs, fmt.Sprintf("achievement %q has unknown predicate %q", d.ID, d.Predicate))
		}
		if d.Global() {
			if d.RequiresAll {
				errs = append(errs, fmt.Sprintf("achievement %q: RequiresAll needs ExclusiveTo lessons", d.ID))
			}
			if d.Predicate == PredicateNone {
				errs = append(errs, fmt.Sprintf("global achievement %q has no predicate", d.ID))
			}
			continue
		}
		if len(d.ExclusiveTo) == 0 {
			errs = append(errs, fmt.Sprintf("achievement %q has an empty ExclusiveTo list", d.ID))
		}
		if d.Predicate != PredicateNone {
			errs = append(errs, fmt.Sprintf("achievement %q: predicates apply only to global achievements", d.ID))
		}
		for _, lessonID := range d.ExclusiveTo {
			if catalog != nil && !catalog.Has(lessonID) {
				errs = append(errs, fmt.Sprintf("achievement %q references nonexistent lesson %q", d.ID, lessonID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("achievement table validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
