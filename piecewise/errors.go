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

package piecewise

import (
	"errors"
	"fmt"
)

// BadDomainError is returned when an element or a table is constructed
// with an invalid domain.  This includes empty or unbounded domains for
// linear elements and overlapping elements in a table.
type BadDomainError struct {
	Element string
	Message string
}

func (e *BadDomainError) Error() string {
	if e.Element == "" {
		return "bad domain: " + e.Message
	}
	return fmt.Sprintf("bad domain for %q: %s", e.Element, e.Message)
}

func (e *BadDomainError) Is(target error) bool {
	_, ok := target.(*BadDomainError)
	return ok
}

func newBadDomainError(element, format string, args ...any) *BadDomainError {
	return &BadDomainError{
		Element: element,
		Message: fmt.Sprintf(format, args...),
	}
}

// OutsideDomainError is returned when a value is classified which is not
// covered by an element (or a table without a default value).
type OutsideDomainError struct {
	// Name is the name of the element or table.
	Name  string
	Value float64
}

func (e *OutsideDomainError) Error() string {
	return fmt.Sprintf("value %g outside the domain of %q", e.Value, e.Name)
}

func (e *OutsideDomainError) Is(target error) bool {
	_, ok := target.(*OutsideDomainError)
	return ok
}

// ErrNotInvertible is returned by [Element.Inverse] for transforms which
// map more than one input to the same output.
var ErrNotInvertible = fmt.Errorf("piecewise: transform not invertible: %w", errors.ErrUnsupported)
