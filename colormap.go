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
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/colormap/piecewise"
)

// ColorMap assigns colours to sample values.
//
// A ColorMap is immutable and safe for concurrent use.
type ColorMap struct {
	mode    Mode
	table   *piecewise.Table
	palette []color.NRGBA
	labels  []string

	// palette indices for no data and the default colour, or -1
	noDataSlot  int
	defaultSlot int
}

// Mode returns the mode the colour map was built with.
func (cm *ColorMap) Mode() Mode {
	return cm.mode
}

// Table returns the classification table of the colour map.
func (cm *ColorMap) Table() *piecewise.Table {
	return cm.table
}

// Palette returns a copy of the colours used by the map.
// For [Ramp] maps, entry 0 and entry N+1 are the transparent padding
// colours below and above the N stops.  If no-data values or a default
// colour were configured, they use the last entries.
func (cm *ColorMap) Palette() []color.NRGBA {
	return slices.Clone(cm.palette)
}

// Labels returns the labels of the entries, sorted by quantity.
func (cm *ColorMap) Labels() []string {
	return slices.Clone(cm.labels)
}

// Classify evaluates the classification table at x.
// The result is a palette coordinate, except for [Values] maps, where
// it is the category code.
func (cm *ColorMap) Classify(x float64) (float64, error) {
	return cm.table.Classify(x)
}

// Color returns the colour for the sample value x.
func (cm *ColorMap) Color(x float64) (color.NRGBA, error) {
	idx, err := cm.table.Lookup(x)
	if err != nil {
		return color.NRGBA{}, err
	}
	if idx < 0 {
		return cm.palette[cm.defaultSlot], nil
	}
	el := cm.table.Element(idx)
	if el.IsNoData() {
		return cm.palette[cm.noDataSlot], nil
	}
	if cm.mode == Values {
		return cm.palette[idx], nil
	}
	v, err := el.Classify(x)
	if err != nil {
		return color.NRGBA{}, err
	}
	return cm.at(v), nil
}

// Index returns the palette index for the sample value x.  Within ramp
// segments, the nearest palette entry is used.
func (cm *ColorMap) Index(x float64) (int, error) {
	idx, err := cm.table.Lookup(x)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		return cm.defaultSlot, nil
	}
	el := cm.table.Element(idx)
	if el.IsNoData() {
		return cm.noDataSlot, nil
	}
	if cm.mode == Values {
		return idx, nil
	}
	v, err := el.Classify(x)
	if err != nil {
		return 0, err
	}
	return int(math.Round(v)), nil
}

// ElementColors returns the colours at the lower and upper end of the
// domain of table element i.
func (cm *ColorMap) ElementColors(i int) (lo, hi color.NRGBA) {
	el := cm.table.Element(i)
	switch {
	case el.IsNoData():
		c := cm.palette[cm.noDataSlot]
		return c, c
	case cm.mode == Values:
		return cm.palette[i], cm.palette[i]
	}
	out, _ := el.OutputRange()
	return cm.at(out.Lower()), cm.at(out.Upper())
}

// at returns the colour for palette coordinate v, interpolating between
// neighbouring palette entries.
func (cm *ColorMap) at(v float64) color.NRGBA {
	last := float64(len(cm.palette) - 1)
	if v <= 0 {
		return cm.palette[0]
	} else if v >= last {
		return cm.palette[len(cm.palette)-1]
	}
	i := math.Floor(v)
	t := v - i
	if t == 0 {
		return cm.palette[int(i)]
	}
	return lerp(cm.palette[int(i)], cm.palette[int(i)+1], t)
}
