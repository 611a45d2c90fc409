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

// Package colormap builds colour maps for raster data.
//
// A colour map is assembled from a list of entries, each consisting of a
// quantity, a colour, an opacity and a label, as found in the ColorMap
// element of an SLD RasterSymbolizer.  Any of the quantity, colour and
// opacity can be given as an expression like ${env('max', 100) / 2}; these
// are evaluated once, by [Builder.Build].
//
// The resulting [ColorMap] is backed by a [piecewise.Table], which assigns
// every sample value to exactly one element.  Depending on the [Mode], the
// output of the table is a palette coordinate ([Ramp], [Discrete],
// [Intervals]) or a category code ([Values]).
//
// [Gradient] generates evenly spaced ramp entries from a list of colours.
package colormap
