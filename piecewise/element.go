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
	"fmt"
	"math"

	"seehuhn.de/go/colormap/interval"
)

// Kind identifies the transform of an [Element].
type Kind uint8

// These are the supported kinds of transform.
const (
	Constant Kind = iota + 1
	Linear
	Passthrough
	Custom
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case Passthrough:
		return "passthrough"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Element maps the values of one domain interval to output values.
//
// Elements are values and are never modified after construction.
// Use the New* functions to create elements; the zero Element is invalid.
type Element struct {
	name   string
	domain interval.Interval
	kind   Kind
	noData bool

	// Constant
	value float64

	// Linear
	scale, offset float64
	outRange      interval.Interval

	// Custom
	fn, inv func(float64) float64
}

func checkDomain(name string, domain interval.Interval) error {
	if domain.IsEmpty() {
		return newBadDomainError(name, "empty domain %s", domain)
	}
	return nil
}

// NewConstant returns an element which maps every value in domain to
// value.
func NewConstant(name string, domain interval.Interval, value float64) (Element, error) {
	if err := checkDomain(name, domain); err != nil {
		return Element{}, err
	}
	return Element{
		name:   name,
		domain: domain,
		kind:   Constant,
		value:  value,
	}, nil
}

// NewLinear returns an element which maps domain linearly onto the output
// values between y0 and y1.  The lower bound of the domain is mapped to y0,
// the upper bound to y1.  y1 < y0 gives a decreasing map.
//
// The domain must be bounded and must contain more than one value.
func NewLinear(name string, domain interval.Interval, y0, y1 float64) (Element, error) {
	if err := checkDomain(name, domain); err != nil {
		return Element{}, err
	}
	if !domain.IsBounded() {
		return Element{}, newBadDomainError(name, "linear map needs a bounded domain, got %s", domain)
	}
	if domain.IsPoint() {
		return Element{}, newBadDomainError(name, "linear map needs a non-degenerate domain, got %s", domain)
	}
	if !isFinite(y0) || !isFinite(y1) {
		return Element{}, newBadDomainError(name, "invalid output range [%g, %g]", y0, y1)
	}

	x0, x1 := domain.Lower(), domain.Upper()
	scale := (y1 - y0) / (x1 - x0)
	offset := y0 - scale*x0

	var out interval.Interval
	var err error
	switch {
	case scale > 0:
		out, err = interval.New(y0, domain.LowerInclusive(), y1, domain.UpperInclusive())
	case scale < 0:
		out, err = interval.New(y1, domain.UpperInclusive(), y0, domain.LowerInclusive())
	default:
		out = interval.Point(y0)
	}
	if err != nil {
		return Element{}, newBadDomainError(name, "%v", err)
	}

	return Element{
		name:     name,
		domain:   domain,
		kind:     Linear,
		scale:    scale,
		offset:   offset,
		outRange: out,
	}, nil
}

// NewPassthrough returns an element which returns values in domain
// unchanged.
func NewPassthrough(name string, domain interval.Interval) (Element, error) {
	if err := checkDomain(name, domain); err != nil {
		return Element{}, err
	}
	return Element{
		name:   name,
		domain: domain,
		kind:   Passthrough,
	}, nil
}

// NewCustom returns an element which applies fn to values in domain.
// If inv is not nil, it must be the inverse of fn and is used by
// [Element.Inverse].
func NewCustom(name string, domain interval.Interval, fn, inv func(float64) float64) (Element, error) {
	if err := checkDomain(name, domain); err != nil {
		return Element{}, err
	}
	if fn == nil {
		return Element{}, newBadDomainError(name, "missing transform function")
	}
	return Element{
		name:   name,
		domain: domain,
		kind:   Custom,
		fn:     fn,
		inv:    inv,
	}, nil
}

// NewNoData returns a "no data" element which maps the single value x to
// output.  x may be NaN, but not infinite: an element for ±Inf has an
// empty domain and is rejected by [NewTable].
//
// In a [Table], no-data elements are checked before all other elements.
func NewNoData(name string, x, output float64) Element {
	return Element{
		name:   name,
		domain: interval.Point(x),
		kind:   Constant,
		noData: true,
		value:  output,
	}
}

// Name returns the name of the element.
func (e Element) Name() string { return e.name }

// Domain returns the input values covered by the element.
func (e Element) Domain() interval.Interval { return e.domain }

// Kind returns the kind of transform.
func (e Element) Kind() Kind { return e.kind }

// IsNoData reports whether e was created by [NewNoData].
func (e Element) IsNoData() bool { return e.noData }

// Value returns the output of a [Constant] element.
func (e Element) Value() float64 { return e.value }

// Scale returns the slope of a [Linear] element.
func (e Element) Scale() float64 { return e.scale }

// Offset returns the intercept of a [Linear] element.
func (e Element) Offset() float64 { return e.offset }

// OutputRange returns the set of values the element can produce, or
// false if this is not known (for [Passthrough] this is the domain).
func (e Element) OutputRange() (interval.Interval, bool) {
	switch e.kind {
	case Constant:
		return interval.Point(e.value), true
	case Linear:
		return e.outRange, true
	case Passthrough:
		return e.domain, true
	default:
		return interval.Interval{}, false
	}
}

// Classify applies the element's transform to x.
// If x is outside the domain, an [*OutsideDomainError] is returned.
func (e Element) Classify(x float64) (float64, error) {
	if e.kind == 0 {
		return 0, newBadDomainError(e.name, "uninitialised element")
	}
	if !e.domain.Contains(x) {
		return 0, &OutsideDomainError{Name: e.name, Value: x}
	}
	return e.apply(x), nil
}

// apply evaluates the transform without checking the domain.
func (e Element) apply(x float64) float64 {
	switch e.kind {
	case Constant:
		return e.value
	case Linear:
		// Clamping keeps rounding errors from leaving the output range,
		// so that the inverse element accepts every output.
		return e.outRange.Clamp(e.scale*x + e.offset)
	case Passthrough:
		return x
	case Custom:
		return e.fn(x)
	default:
		panic("unreachable")
	}
}

// Inverse returns the element which undoes the transform of e.
// Constant elements, linear elements with zero slope and custom elements
// without an inverse function return [ErrNotInvertible].
func (e Element) Inverse() (Element, error) {
	switch e.kind {
	case Linear:
		if e.scale == 0 {
			return Element{}, ErrNotInvertible
		}
		return Element{
			name:     e.name,
			domain:   e.outRange,
			kind:     Linear,
			scale:    1 / e.scale,
			offset:   -e.offset / e.scale,
			outRange: e.domain,
		}, nil
	case Passthrough:
		return e, nil
	case Custom:
		if e.inv == nil {
			return Element{}, ErrNotInvertible
		}
		res := e
		res.domain = interval.All()
		res.fn, res.inv = e.inv, e.fn
		return res, nil
	default:
		return Element{}, ErrNotInvertible
	}
}

func (e Element) String() string {
	var tf string
	switch e.kind {
	case Constant:
		tf = fmt.Sprintf("%g", e.value)
	case Linear:
		tf = fmt.Sprintf("%g*x%+g", e.scale, e.offset)
	case Passthrough:
		tf = "x"
	default:
		tf = e.kind.String()
	}
	if e.noData {
		tf += " (no data)"
	}
	return fmt.Sprintf("%q: %s -> %s", e.name, e.domain, tf)
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
