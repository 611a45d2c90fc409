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

// Package piecewise implements one-dimensional classification functions
// which are defined piece by piece over disjoint sub-domains.
//
// An [Element] binds a domain (an [interval.Interval]) to one of a small,
// fixed set of transforms:
//
//   - [Constant]: every input maps to the same output value
//   - [Linear]: the domain is mapped linearly onto an output range
//   - [Passthrough]: inputs are returned unchanged
//   - [Custom]: a caller-supplied function
//
// A [Table] combines elements into a single function.  Tables are validated
// when they are constructed and are immutable afterwards, so that one table
// can be shared between goroutines without locking.
//
// "No data" elements have a single-point (or NaN) domain and take priority
// over ordinary elements: if a sensor's no-data value happens to fall inside
// the range of an ordinary class, the no-data element still wins.
package piecewise
