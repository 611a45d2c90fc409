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

package render

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/colormap"
	"seehuhn.de/go/colormap/interval"
	"seehuhn.de/go/colormap/piecewise"
)

func testTable(t *testing.T) *piecewise.Table {
	t.Helper()
	low, err := piecewise.NewConstant("low", interval.ClosedOpen(0, 10), 1)
	if err != nil {
		t.Fatal(err)
	}
	high, err := piecewise.NewLinear("high", interval.Closed(10, 20), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	nd := piecewise.NewNoData("missing", math.NaN(), 0)
	table, err := piecewise.NewTable("test", low, high, nd)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestRemap(t *testing.T) {
	table := testTable(t)
	g := &Grid{
		Width:   3,
		Height:  2,
		Samples: []float64{0, 5, 10, 15, 20, math.NaN()},
	}
	out, err := Remap(g, table.Classify)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1, 2, 2.5, 3, 0}
	if d := cmp.Diff(want, out.Samples); d != "" {
		t.Errorf("remapped samples (-want +got):\n%s", d)
	}
	if !math.IsNaN(g.Samples[5]) {
		t.Error("input grid modified")
	}
}

func TestRemapCustom(t *testing.T) {
	exp, err := piecewise.NewCustom("exp", interval.All(), math.Exp, math.Log)
	if err != nil {
		t.Fatal(err)
	}
	inv, err := exp.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	table, err := piecewise.NewTable("log", inv, piecewise.NewNoData("missing", -1, math.NaN()))
	if err != nil {
		t.Fatal(err)
	}

	g := &Grid{Width: 4, Height: 1, Samples: []float64{1, math.E, 100, -1}}
	out, err := Remap(g, table.Classify)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 1, 2 * math.Ln10, math.NaN()}
	opts := []cmp.Option{cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateNaNs()}
	if d := cmp.Diff(want, out.Samples, opts...); d != "" {
		t.Errorf("remapped samples (-want +got):\n%s", d)
	}
}

func TestRemapError(t *testing.T) {
	table := testTable(t)
	g := NewGrid(2, 2)
	g.Set(1, 1, 99)

	_, err := Remap(g, table.Classify)
	var sampleErr *SampleError
	if !errors.As(err, &sampleErr) {
		t.Fatalf("expected SampleError, got %v", err)
	}
	if sampleErr.X != 1 || sampleErr.Y != 1 || sampleErr.Value != 99 {
		t.Errorf("wrong error location %+v", sampleErr)
	}
	if !errors.Is(err, &piecewise.OutsideDomainError{}) {
		t.Errorf("expected OutsideDomainError, got %v", err)
	}
}

func TestRemapFirstError(t *testing.T) {
	table := testTable(t)
	g := NewGrid(4, 64)
	for y := 10; y < g.Height; y += 3 {
		g.Set(y%g.Width, y, -5)
	}
	for range 20 {
		_, err := Remap(g, table.Classify)
		var sampleErr *SampleError
		if !errors.As(err, &sampleErr) {
			t.Fatalf("expected SampleError, got %v", err)
		}
		if sampleErr.Y != 10 || sampleErr.X != 2 {
			t.Fatalf("error reported at (%d, %d), want (2, 10)", sampleErr.X, sampleErr.Y)
		}
	}
}

func TestBadGrid(t *testing.T) {
	g := &Grid{Width: 2, Height: 2, Samples: []float64{1, 2, 3}}
	if _, err := Remap(g, func(x float64) (float64, error) { return x, nil }); err == nil {
		t.Error("short sample slice accepted")
	}
}

func TestRamp(t *testing.T) {
	g := Ramp(5, 2, 0, 1)
	want := []float64{0, 0.25, 0.5, 0.75, 1, 0, 0.25, 0.5, 0.75, 1}
	if d := cmp.Diff(want, g.Samples); d != "" {
		t.Errorf("ramp (-want +got):\n%s", d)
	}
	if g.At(4, 1) != 1 {
		t.Errorf("At(4, 1) = %g", g.At(4, 1))
	}
}

func testColorMap(t *testing.T) *colormap.ColorMap {
	t.Helper()
	b := &colormap.Builder{NoData: []float64{-1}}
	b.AddEntry(colormap.Number(0), colormap.Text("red"), colormap.Value{}, "")
	b.AddEntry(colormap.Number(1), colormap.Text("blue"), colormap.Value{}, "")
	cm, err := b.Build(colormap.Discrete)
	if err != nil {
		t.Fatal(err)
	}
	return cm
}

func TestColorize(t *testing.T) {
	cm := testColorMap(t)
	g := &Grid{Width: 3, Height: 1, Samples: []float64{0, 1, -1}}
	img, err := Colorize(g, cm.Color)
	if err != nil {
		t.Fatal(err)
	}
	want := []color.NRGBA{
		{255, 0, 0, 255},
		{0, 0, 255, 255},
		{},
	}
	for x, c := range want {
		if got := img.NRGBAAt(x, 0); got != c {
			t.Errorf("pixel %d = %v, want %v", x, got, c)
		}
	}

	g.Samples[1] = 0.5
	if _, err := Colorize(g, cm.Color); err == nil {
		t.Error("unmapped sample accepted")
	}
}

func TestPaletted(t *testing.T) {
	cm := testColorMap(t)
	g := &Grid{Width: 3, Height: 1, Samples: []float64{1, 0, -1}}
	img, err := Paletted(g, cm.Index, cm.Palette())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]uint8{1, 0, 2}, img.Pix); d != "" {
		t.Errorf("indices (-want +got):\n%s", d)
	}
	if len(img.Palette) != 3 {
		t.Errorf("palette has %d colours", len(img.Palette))
	}

	big := make([]color.NRGBA, 257)
	_, err = Paletted(g, cm.Index, big)
	if !errors.Is(err, ErrPaletteTooLarge) {
		t.Errorf("expected ErrPaletteTooLarge, got %v", err)
	}

	_, err = Paletted(g, func(float64) (int, error) { return 5, nil }, cm.Palette())
	if err == nil {
		t.Error("out of range index accepted")
	}
}
