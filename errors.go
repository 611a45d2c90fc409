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
)

// ErrNoEntries is returned by [Builder.Build] if no entries were added.
var ErrNoEntries = errors.New("colormap: no entries")

// EntryError is returned when a field of an entry cannot be resolved.
type EntryError struct {
	Index int
	Field string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("colormap entry %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// AmbiguousBoundaryError is returned when two entries resolve to the same
// quantity.
type AmbiguousBoundaryError struct {
	Quantity      float64
	First, Second int
}

func (e *AmbiguousBoundaryError) Error() string {
	return fmt.Sprintf("colormap entries %d and %d have the same quantity %g",
		e.First, e.Second, e.Quantity)
}

func (e *AmbiguousBoundaryError) Is(target error) bool {
	_, ok := target.(*AmbiguousBoundaryError)
	return ok
}

// PaletteOverflowError is returned when a colour map needs more palette
// entries than are available.
type PaletteOverflowError struct {
	Need, Capacity int
}

func (e *PaletteOverflowError) Error() string {
	return fmt.Sprintf("colormap needs %d palette entries, only %d available",
		e.Need, e.Capacity)
}

func (e *PaletteOverflowError) Is(target error) bool {
	_, ok := target.(*PaletteOverflowError)
	return ok
}
