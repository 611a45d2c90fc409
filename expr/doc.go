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

// Package expr evaluates the small expression language used for dynamic
// colour map entries.
//
// An expression is either written on its own, like
//
//	6.0 + 4.0
//
// or embedded in text using ${...}, like
//
//	${env('scale', 1) * 100}
//	#${env('color', 'ff0000')}
//
// If the source consists of a single ${...} block, the value of the
// expression keeps its type.  Otherwise, all parts are concatenated to a
// string.
//
// The language has numbers, strings ('...' or "..."), the booleans true and
// false, the arithmetic operators + - * / %, the comparisons
// = == != <> < <= > >=, the logical operators and, or, not, and function
// calls.  Bare identifiers are looked up in the evaluation environment.
// See [Functions] for the list of functions.
//
// Expressions are compiled into bytecode for a small stack machine.
// A compiled [Program] does not change and can be evaluated concurrently.
package expr
