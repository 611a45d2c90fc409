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

package expr

import (
	"fmt"
	"strings"
)

// Error is returned when an expression cannot be compiled or evaluated.
type Error struct {
	Src string

	// Pos is the byte offset in Src where the problem was detected,
	// or -1 if no position is known.
	Pos int

	Msg string
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("expression %q: %s", e.Src, e.Msg)
	}
	return fmt.Sprintf("expression %q: offset %d: %s", e.Src, e.Pos, e.Msg)
}

func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

func newError(src string, pos int, format string, args ...any) *Error {
	return &Error{
		Src: src,
		Pos: pos,
		Msg: fmt.Sprintf(format, args...),
	}
}

// IsTemplate reports whether s contains an embedded ${...} expression.
func IsTemplate(s string) bool {
	return strings.Contains(s, "${")
}
