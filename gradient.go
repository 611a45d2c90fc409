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

package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"seehuhn.de/go/colormap/internal/float"
)

// Gradient is a list of colours which are spread evenly over a range of
// sample values.
type Gradient struct {
	Colors []color.NRGBA
}

// ParseGradient reads a list of colours separated by ';' or ','.
// Colours use the syntax of [ParseColor], for example
// "#0000ff;#00ffff;#ffff00;#ff0000".
func ParseGradient(list string) (*Gradient, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ';' || r == ','
	})
	g := &Gradient{}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		c, err := ParseColor(f)
		if err != nil {
			return nil, fmt.Errorf("gradient %q: %w", list, err)
		}
		g.Colors = append(g.Colors, c)
	}
	if len(g.Colors) < 2 {
		return nil, fmt.Errorf("gradient %q: need at least two colours", list)
	}
	return g, nil
}

// Stops returns the colour stops of the gradient, evenly spaced from min
// to max.  Passing the stops to a [Builder] and building a [Ramp] gives a
// colour map which is transparent outside [min, max].
func (g *Gradient) Stops(min, max float64) ([]Entry, error) {
	n := len(g.Colors)
	if n < 2 {
		return nil, errors.New("gradient needs at least two colours")
	}
	if !(min < max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("invalid gradient range [%g, %g]", min, max)
	}

	stops := make([]Entry, 0, n)
	step := (max - min) / float64(n-1)
	for i, c := range g.Colors {
		q := min + float64(i)*step
		if i == n-1 {
			q = max
		}
		stops = append(stops, Entry{
			Quantity: Number(q),
			Color:    Text(FormatColor(c)),
			Label:    float.Format(q, 6),
		})
	}
	return stops, nil
}

// Entries returns colour map entries for a ramp from min to max, in the
// form used by SLD colour maps.
//
// For N colours, N+2 entries are returned.  Entries 1 to N are the colour
// stops returned by [Gradient.Stops].  Entry 0 and entry N+1 are fully
// transparent and lie just outside the range, so that values outside
// [min, max] are not painted by renderers which do not pad the ramp
// themselves.
func (g *Gradient) Entries(min, max float64) ([]Entry, error) {
	stops, err := g.Stops(min, max)
	if err != nil {
		return nil, err
	}
	n := len(g.Colors)

	entries := make([]Entry, 0, n+2)
	entries = append(entries, Entry{
		Quantity: Number(math.Nextafter(min, math.Inf(-1))),
		Color:    Text(FormatColor(g.Colors[0])),
		Opacity:  Number(0),
	})
	entries = append(entries, stops...)
	entries = append(entries, Entry{
		Quantity: Number(math.Nextafter(max, math.Inf(1))),
		Color:    Text(FormatColor(g.Colors[n-1])),
		Opacity:  Number(0),
	})
	return entries, nil
}

// ColorMap adds the colour stops for the range [min, max] to b and builds
// a [Ramp] colour map.  The ramp supplies the transparent padding, so for
// N colours the table has N+2 elements.
func (g *Gradient) ColorMap(min, max float64, b *Builder) (*ColorMap, error) {
	stops, err := g.Stops(min, max)
	if err != nil {
		return nil, err
	}
	for _, e := range stops {
		b.Add(e)
	}
	return b.Build(Ramp)
}
