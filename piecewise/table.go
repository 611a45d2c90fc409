// seehuhn.de/go/colormap - classify raster samples and build colour maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package piecewise

import (
	"slices"
	"sort"

	"seehuhn.de/go/colormap/interval"
)

// Table is a piecewise defined function of one variable.
//
// A table is built once by [NewTable] and is read-only afterwards.
// All methods are safe for concurrent use.
type Table struct {
	name string

	// elements holds the ordinary elements, sorted by domain.
	elements []Element

	// noData holds the no-data elements, in the order given.
	noData []Element

	def    float64
	hasDef bool
}

// NewTable validates the given elements and combines them into a table.
//
// The domains of ordinary elements must not overlap.  No-data elements
// (see [NewNoData]) may coincide with the domain of an ordinary element but
// not with each other.  A table consisting of a single no-data element is
// valid.
func NewTable(name string, elements ...Element) (*Table, error) {
	if len(elements) == 0 {
		return nil, newBadDomainError(name, "no elements")
	}

	t := &Table{name: name}
	for _, e := range elements {
		switch {
		case e.kind == 0:
			return nil, newBadDomainError(name, "uninitialised element")
		case e.domain.IsEmpty():
			return nil, newBadDomainError(e.name, "empty domain %s", e.domain)
		case e.noData:
			if !e.domain.IsPoint() {
				return nil, newBadDomainError(e.name, "no-data domain %s is not a single value", e.domain)
			}
			t.noData = append(t.noData, e)
		default:
			if e.domain.IsNaN() {
				return nil, newBadDomainError(e.name, "NaN is only allowed for no-data elements")
			}
			t.elements = append(t.elements, e)
		}
	}

	sort.SliceStable(t.elements, func(i, j int) bool {
		return t.elements[i].domain.Less(t.elements[j].domain)
	})

	// After sorting, it suffices to compare neighbours: an element which
	// is disjoint from its successor ends before every later element starts.
	for i := 1; i < len(t.elements); i++ {
		a, b := t.elements[i-1], t.elements[i]
		if a.domain.Overlaps(b.domain) {
			return nil, newBadDomainError(b.name, "domain %s overlaps %s of %q",
				b.domain, a.domain, a.name)
		}
	}
	for i := range t.noData {
		for j := range i {
			a, b := t.noData[j], t.noData[i]
			if a.domain.Overlaps(b.domain) {
				return nil, newBadDomainError(b.name, "duplicate no-data value %s (also used by %q)",
					b.domain, a.name)
			}
		}
	}

	return t, nil
}

// WithDefault returns a copy of t which maps values not covered by any
// element to def.  The receiver is not modified.
func (t *Table) WithDefault(def float64) *Table {
	res := *t
	res.def = def
	res.hasDef = true
	return &res
}

// Name returns the name of the table.
func (t *Table) Name() string { return t.name }

// Default returns the output for values not covered by any element.
// The second return value is false if no default has been set.
func (t *Table) Default() (float64, bool) {
	return t.def, t.hasDef
}

// Len returns the number of elements, including no-data elements.
func (t *Table) Len() int {
	return len(t.elements) + len(t.noData)
}

// Element returns the i-th element, in the order used by [Table.Elements].
func (t *Table) Element(i int) Element {
	if i < len(t.elements) {
		return t.elements[i]
	}
	return t.noData[i-len(t.elements)]
}

// Elements returns a copy of the elements of the table.
// Ordinary elements come first, sorted by domain, followed by the
// no-data elements.
func (t *Table) Elements() []Element {
	return slices.Concat(t.elements, t.noData)
}

// Domain returns the smallest interval which contains the domains of all
// ordinary elements.  The second return value is false if the table only
// contains no-data elements.
func (t *Table) Domain() (interval.Interval, bool) {
	if len(t.elements) == 0 {
		return interval.Interval{}, false
	}
	first := t.elements[0].domain
	last := t.elements[len(t.elements)-1].domain
	hull, err := interval.New(first.Lower(), first.LowerInclusive(), last.Upper(), last.UpperInclusive())
	if err != nil {
		panic(err) // sorted, non-overlapping elements
	}
	return hull, true
}

// Lookup returns the index of the element which is responsible for x.
// If no element covers x but the table has a default value, -1 is
// returned.  Otherwise, an [*OutsideDomainError] is returned.
func (t *Table) Lookup(x float64) (int, error) {
	if i := t.search(x); i >= 0 {
		return i, nil
	}
	if t.hasDef {
		return -1, nil
	}
	return 0, &OutsideDomainError{Name: t.name, Value: x}
}

// Classify evaluates the table at x.
//
// No-data elements are checked first.  Otherwise, the ordinary element
// whose domain contains x is applied.  If there is no such element, the
// default value is returned if one was set using [Table.WithDefault].
// In all other cases, an [*OutsideDomainError] is returned.
func (t *Table) Classify(x float64) (float64, error) {
	i := t.search(x)
	if i >= 0 {
		return t.Element(i).apply(x), nil
	}
	if t.hasDef {
		return t.def, nil
	}
	return 0, &OutsideDomainError{Name: t.name, Value: x}
}

func (t *Table) search(x float64) int {
	for i := range t.noData {
		if t.noData[i].domain.Contains(x) {
			return len(t.elements) + i
		}
	}

	// Upper bounds are increasing, so this finds the first element which
	// does not lie completely below x.
	i := sort.Search(len(t.elements), func(i int) bool {
		return !t.elements[i].domain.Above(x)
	})
	if i < len(t.elements) && t.elements[i].domain.Contains(x) {
		return i
	}
	return -1
}
