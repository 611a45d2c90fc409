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

// Package interval implements immutable ranges of float64 values.
//
// Each end of an [Interval] is either inclusive (closed) or exclusive
// (open).  Infinite bounds are always exclusive: an interval like
// [0, +Inf) contains every finite number x >= 0 but not +Inf itself.
//
// The degenerate interval returned by [NaN] is used as the domain of
// "no data" classes.  It contains NaN and nothing else.
package interval

import (
	"fmt"
	"math"
	"strconv"
)

// Interval is a range of float64 values.
// The zero value is the empty interval (0, 0).
type Interval struct {
	lower, upper   float64
	lowerInclusive bool
	upperInclusive bool
}

// Error is returned when the bounds of an interval are invalid.
type Error struct {
	Lower, Upper float64
	Message      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid interval [%g, %g]: %s", e.Lower, e.Upper, e.Message)
}

// New returns the interval between lower and upper.
// The flags specify whether each bound is part of the interval.
// Infinite bounds are made exclusive.
func New(lower float64, lowerInclusive bool, upper float64, upperInclusive bool) (Interval, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return Interval{}, &Error{lower, upper, "NaN bound"}
	}
	if lower > upper {
		return Interval{}, &Error{lower, upper, "lower bound exceeds upper bound"}
	}
	if math.IsInf(lower, 0) {
		lowerInclusive = false
	}
	if math.IsInf(upper, 0) {
		upperInclusive = false
	}
	return Interval{
		lower:          lower,
		upper:          upper,
		lowerInclusive: lowerInclusive,
		upperInclusive: upperInclusive,
	}, nil
}

func must(i Interval, err error) Interval {
	if err != nil {
		panic(err)
	}
	return i
}

// Closed returns [a, b].  It panics if a > b or if a bound is NaN.
func Closed(a, b float64) Interval {
	return must(New(a, true, b, true))
}

// ClosedOpen returns [a, b).  It panics if a > b or if a bound is NaN.
func ClosedOpen(a, b float64) Interval {
	return must(New(a, true, b, false))
}

// OpenClosed returns (a, b].  It panics if a > b or if a bound is NaN.
func OpenClosed(a, b float64) Interval {
	return must(New(a, false, b, true))
}

// Open returns (a, b).  It panics if a > b or if a bound is NaN.
func Open(a, b float64) Interval {
	return must(New(a, false, b, false))
}

// AtLeast returns [a, +Inf).
func AtLeast(a float64) Interval {
	return must(New(a, true, math.Inf(1), false))
}

// GreaterThan returns (a, +Inf).
func GreaterThan(a float64) Interval {
	return must(New(a, false, math.Inf(1), false))
}

// AtMost returns (-Inf, b].
func AtMost(b float64) Interval {
	return must(New(math.Inf(-1), false, b, true))
}

// LessThan returns (-Inf, b).
func LessThan(b float64) Interval {
	return must(New(math.Inf(-1), false, b, false))
}

// All returns (-Inf, +Inf).
func All() Interval {
	return Interval{lower: math.Inf(-1), upper: math.Inf(1)}
}

// Point returns the interval [x, x] which contains only x.
// If x is NaN, the result is the same as [NaN].  Infinite values are never
// members of an interval, so for x = ±Inf the result is empty.
func Point(x float64) Interval {
	if math.IsNaN(x) {
		return NaN()
	}
	if math.IsInf(x, 0) {
		return Interval{lower: x, upper: x}
	}
	return Interval{lower: x, upper: x, lowerInclusive: true, upperInclusive: true}
}

// NaN returns the interval which contains NaN and nothing else.
func NaN() Interval {
	nan := math.NaN()
	return Interval{lower: nan, upper: nan, lowerInclusive: true, upperInclusive: true}
}

// Lower returns the lower bound.
func (i Interval) Lower() float64 { return i.lower }

// Upper returns the upper bound.
func (i Interval) Upper() float64 { return i.upper }

// LowerInclusive reports whether the lower bound belongs to the interval.
func (i Interval) LowerInclusive() bool { return i.lowerInclusive }

// UpperInclusive reports whether the upper bound belongs to the interval.
func (i Interval) UpperInclusive() bool { return i.upperInclusive }

// IsNaN reports whether i is the "no data" interval returned by [NaN].
func (i Interval) IsNaN() bool {
	return math.IsNaN(i.lower)
}

// IsPoint reports whether i contains exactly one value.
func (i Interval) IsPoint() bool {
	return i.IsNaN() || i.lower == i.upper && i.lowerInclusive && i.upperInclusive
}

// IsEmpty reports whether i contains no values at all.
func (i Interval) IsEmpty() bool {
	if i.IsNaN() {
		return false
	}
	return i.lower == i.upper && !(i.lowerInclusive && i.upperInclusive)
}

// IsBounded reports whether both bounds are finite.
func (i Interval) IsBounded() bool {
	return !math.IsInf(i.lower, 0) && !math.IsInf(i.upper, 0) && !i.IsNaN()
}

// Width returns upper - lower.
func (i Interval) Width() float64 {
	return i.upper - i.lower
}

// Contains reports whether x lies in the interval.
// NaN is only contained in the interval returned by [NaN].
func (i Interval) Contains(x float64) bool {
	if math.IsNaN(x) || i.IsNaN() {
		return math.IsNaN(x) == i.IsNaN()
	}
	if x < i.lower || x == i.lower && !i.lowerInclusive {
		return false
	}
	if x > i.upper || x == i.upper && !i.upperInclusive {
		return false
	}
	return true
}

// Overlaps reports whether i and o have at least one value in common.
func (i Interval) Overlaps(o Interval) bool {
	if i.IsNaN() || o.IsNaN() {
		return i.IsNaN() && o.IsNaN()
	}
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return !i.endsBefore(o) && !o.endsBefore(i)
}

// endsBefore reports whether every value of i is smaller than every value
// of o.
func (i Interval) endsBefore(o Interval) bool {
	if i.upper < o.lower {
		return true
	}
	return i.upper == o.lower && !(i.upperInclusive && o.lowerInclusive)
}

// Less orders intervals by their lower bound.  For equal lower bounds, the
// interval which includes the bound comes first.  The NaN interval sorts
// after all other intervals.
func (i Interval) Less(o Interval) bool {
	if i.IsNaN() || o.IsNaN() {
		return !i.IsNaN() && o.IsNaN()
	}
	if i.lower != o.lower {
		return i.lower < o.lower
	}
	return i.lowerInclusive && !o.lowerInclusive
}

// Below reports whether x is smaller than every value in the interval.
// This is false for NaN.
func (i Interval) Below(x float64) bool {
	if math.IsNaN(x) || i.IsNaN() {
		return false
	}
	return x < i.lower || x == i.lower && !i.lowerInclusive
}

// Above reports whether x is larger than every value in the interval.
// This is false for NaN.
func (i Interval) Above(x float64) bool {
	if math.IsNaN(x) || i.IsNaN() {
		return false
	}
	return x > i.upper || x == i.upper && !i.upperInclusive
}

// Clamp returns the value of i which is closest to x.
// For open bounds the bound itself is returned.
func (i Interval) Clamp(x float64) float64 {
	if x < i.lower {
		return i.lower
	}
	if x > i.upper {
		return i.upper
	}
	return x
}

func (i Interval) String() string {
	if i.IsNaN() {
		return "[NaN]"
	}
	open, close := "(", ")"
	if i.lowerInclusive {
		open = "["
	}
	if i.upperInclusive {
		close = "]"
	}
	return open + format(i.lower) + ", " + format(i.upper) + close
}

func format(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
