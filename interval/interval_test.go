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

package interval

import (
	"errors"
	"math"
	"testing"
)

func TestContains(t *testing.T) {
	inf := math.Inf(1)
	nan := math.NaN()

	type testCase struct {
		iv   Interval
		x    float64
		want bool
	}
	testCases := []testCase{
		{Closed(0, 1), 0, true},
		{Closed(0, 1), 1, true},
		{Closed(0, 1), 0.5, true},
		{Closed(0, 1), -0.1, false},
		{Closed(0, 1), 1.1, false},
		{ClosedOpen(0, 1), 1, false},
		{ClosedOpen(0, 1), 0, true},
		{OpenClosed(0, 1), 0, false},
		{OpenClosed(0, 1), 1, true},
		{Open(0, 1), 0, false},
		{Open(0, 1), 1, false},

		{AtLeast(0), 1e300, true},
		{AtLeast(0), inf, false},
		{AtMost(0), -inf, false},
		{AtMost(0), 0, true},
		{All(), inf, false},
		{All(), -inf, false},
		{All(), 0, true},

		{Point(3), 3, true},
		{Point(3), 3.0000001, false},

		{All(), nan, false},
		{Closed(0, 1), nan, false},
		{NaN(), nan, true},
		{NaN(), 0, false},
		{Point(nan), nan, true},
	}
	for _, tc := range testCases {
		got := tc.iv.Contains(tc.x)
		if got != tc.want {
			t.Errorf("%s.Contains(%g) = %t, want %t", tc.iv, tc.x, got, tc.want)
		}
	}
}

func TestInfiniteBoundsAreExclusive(t *testing.T) {
	iv, err := New(math.Inf(-1), true, math.Inf(1), true)
	if err != nil {
		t.Fatal(err)
	}
	if iv.LowerInclusive() || iv.UpperInclusive() {
		t.Errorf("infinite bounds kept inclusive flags: %s", iv)
	}
	if iv.IsBounded() {
		t.Error("unbounded interval reported as bounded")
	}
	if got := iv.String(); got != "(-Inf, +Inf)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewErrors(t *testing.T) {
	testCases := []struct {
		lo, hi float64
	}{
		{1, 0},
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), math.Inf(-1)},
	}
	for _, tc := range testCases {
		_, err := New(tc.lo, true, tc.hi, true)
		var ivErr *Error
		if !errors.As(err, &ivErr) {
			t.Errorf("New(%g, %g): expected *Error, got %v", tc.lo, tc.hi, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		a, b Interval
		want bool
	}{
		{Closed(0, 1), Closed(1, 2), true},
		{ClosedOpen(0, 1), Closed(1, 2), false},
		{Closed(0, 1), OpenClosed(1, 2), false},
		{Closed(0, 2), Closed(1, 3), true},
		{Closed(0, 3), Closed(1, 2), true},
		{Closed(0, 1), Closed(2, 3), false},
		{LessThan(0), AtLeast(0), false},
		{AtMost(0), AtLeast(0), true},
		{All(), Point(5), true},
		{Point(5), Point(5), true},
		{Point(5), Point(6), false},
		{NaN(), NaN(), true},
		{NaN(), All(), false},
		{ClosedOpen(1, 1), Closed(0, 2), false},
	}
	for _, tc := range testCases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s.Overlaps(%s) = %t, want %t", tc.a, tc.b, got, tc.want)
		}
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s.Overlaps(%s) = %t, want %t", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestShape(t *testing.T) {
	if !Point(1).IsPoint() || !NaN().IsPoint() {
		t.Error("points not recognised")
	}
	if Closed(1, 2).IsPoint() {
		t.Error("[1, 2] reported as point")
	}
	if !ClosedOpen(1, 1).IsEmpty() || !Open(1, 1).IsEmpty() {
		t.Error("empty intervals not recognised")
	}
	if Point(1).IsEmpty() || NaN().IsEmpty() {
		t.Error("points reported as empty")
	}
	for _, inf := range []float64{math.Inf(1), math.Inf(-1)} {
		p := Point(inf)
		if p.IsPoint() || !p.IsEmpty() || p.Contains(inf) {
			t.Errorf("Point(%g) = %s is not empty", inf, p)
		}
	}
	if w := ClosedOpen(2, 5).Width(); w != 3 {
		t.Errorf("Width() = %g, want 3", w)
	}
}

func TestLess(t *testing.T) {
	ordered := []Interval{
		LessThan(0),
		Closed(0, 1),
		OpenClosed(0, 1),
		ClosedOpen(1, 2),
		AtLeast(2),
		NaN(),
	}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Less(ordered[j])
			if want := i < j; got != want {
				t.Errorf("%s.Less(%s) = %t, want %t", ordered[i], ordered[j], got, want)
			}
		}
	}
}

func TestBelowAbove(t *testing.T) {
	iv := OpenClosed(0, 1)
	if !iv.Below(0) || iv.Below(0.5) {
		t.Error("Below() wrong for (0, 1]")
	}
	if iv.Above(1) || !iv.Above(1.5) {
		t.Error("Above() wrong for (0, 1]")
	}
	if iv.Below(math.NaN()) || iv.Above(math.NaN()) {
		t.Error("NaN reported as outside by ordering")
	}
}
