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

package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/colormap"
	"seehuhn.de/go/colormap/expr"
)

const elevation = `
name: elevation
type: ramp
nodata: [-9999, .nan]
palette-size: 256
env:
  top: 2000
entries:
  - {quantity: 0, color: "#0000ff", label: sea level}
  - {quantity: "${top / 2}", color: green, opacity: 0.5}
  - {quantity: "${top}", color: white}
`

func TestLoad(t *testing.T) {
	d, err := Load(strings.NewReader(elevation))
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "elevation" || d.PaletteSize != 256 || len(d.Entries) != 3 {
		t.Errorf("unexpected definition %+v", d)
	}
	if len(d.NoData) != 2 || d.NoData[0] != -9999 || !math.IsNaN(d.NoData[1]) {
		t.Errorf("wrong nodata values %v", d.NoData)
	}
	if !d.Entries[1].Quantity.IsExpr() {
		t.Error("quantity expression not recognised")
	}
	if d.Entries[0].Opacity.IsSet() {
		t.Error("unexpected opacity for entry 0")
	}
	if got := d.Entries[1].Opacity.String(); got != "0.5" {
		t.Errorf("opacity = %q", got)
	}
}

func TestBuild(t *testing.T) {
	d, err := Load(strings.NewReader(elevation))
	if err != nil {
		t.Fatal(err)
	}
	cm, err := d.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cm.Mode() != colormap.Ramp {
		t.Errorf("mode = %s", cm.Mode())
	}

	type testCase struct {
		x    float64
		want color.NRGBA
	}
	testCases := []testCase{
		{0, color.NRGBA{0, 0, 255, 255}},
		{1000, color.NRGBA{0, 128, 0, 128}},
		{2000, color.NRGBA{255, 255, 255, 255}},
		{-9999, color.NRGBA{}},
		{math.NaN(), color.NRGBA{}},
	}
	for _, tc := range testCases {
		got, err := cm.Color(tc.x)
		if err != nil {
			t.Errorf("Color(%g): %v", tc.x, err)
		} else if got != tc.want {
			t.Errorf("Color(%g) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestEnvOverride(t *testing.T) {
	d, err := Load(strings.NewReader(elevation))
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Builder(expr.Env{"top": 4000})
	if err != nil {
		t.Fatal(err)
	}
	q, err := b.ResolveQuantity(b.Entries()[2].Quantity)
	if err != nil {
		t.Fatal(err)
	}
	if q != 4000 {
		t.Errorf("top quantity = %g, want 4000", q)
	}
	if d.Env["top"] != 2000 {
		t.Errorf("definition env modified: %v", d.Env)
	}
}

func TestGradient(t *testing.T) {
	src := `
gradient:
  colors: ["#0000ff", "#00ffff", "#ffff00", "#ff0000"]
  min: 10
  max: 100
default: black
`
	d, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Builder(nil)
	if err != nil {
		t.Fatal(err)
	}
	entries := b.Entries()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	if d := cmp.Diff([]string{"10", "40", "70", "100"}, labels); d != "" {
		t.Errorf("labels (-want +got):\n%s", d)
	}
	if b.Default == nil || *b.Default != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("default = %v", b.Default)
	}

	cm, err := d.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := cm.Table().Len(); n != 6 {
		t.Errorf("got %d elements, want 6", n)
	}
	c, err := cm.Color(40)
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{0, 255, 255, 255}) {
		t.Errorf("Color(40) = %v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []string{
		"",
		"entries: []",
		"type: spiral\nentries: [{quantity: 1, color: red}]",
		"colour: red\nentries: [{quantity: 1, color: red}]",
		"entries: [{quantity: 1, color: red}]\ngradient: {colors: [red, blue], min: 0, max: 1}",
		"type: values\ngradient: {colors: [red, blue], min: 0, max: 1}",
		"palette-size: -1\nentries: [{quantity: 1, color: red}]",
		"entries: [{quantity: [1, 2], color: red}]",
	}
	for _, src := range testCases {
		if _, err := Load(strings.NewReader(src)); err == nil {
			t.Errorf("Load(%q) succeeded", src)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	src := `
type: discrete
entries:
  - {quantity: 1, color: red}
  - {quantity: "${2 - 1}", color: blue}
`
	d, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.Build(nil)
	if !errors.Is(err, &colormap.AmbiguousBoundaryError{}) {
		t.Errorf("expected AmbiguousBoundaryError, got %v", err)
	}

	d.Default = "nocolour"
	if _, err := d.Builder(nil); err == nil {
		t.Error("invalid default colour accepted")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	err := os.WriteFile(path, []byte("type: values\nentries: [{quantity: 3, color: red}]\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != path {
		t.Errorf("name = %q, want %q", d.Name, path)
	}
	cm, err := d.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	v, err := cm.Classify(3)
	if err != nil || v != 3 {
		t.Errorf("Classify(3) = %g, %v", v, err)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
