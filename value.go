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
	"strings"

	"seehuhn.de/go/colormap/expr"
	"seehuhn.de/go/colormap/internal/float"
)

type valueKind uint8

const (
	kindUnset valueKind = iota
	kindNumber
	kindText
	kindColor
	kindExpr
)

// Value is a field of a colour map entry.  It holds either a literal or an
// expression which is evaluated when the colour map is built.
// The zero Value is unset.
type Value struct {
	kind valueKind
	num  float64
	text string
	col  color.NRGBA
}

// Number returns a literal number.
func Number(x float64) Value {
	return Value{kind: kindNumber, num: x}
}

// Text returns a literal string, for example "#ff0000" or "12.5".
// The string is not checked for ${...} expressions.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Color returns a literal colour.
func Color(c color.Color) Value {
	return Value{kind: kindColor, col: color.NRGBAModel.Convert(c).(color.NRGBA)}
}

// Expr returns an expression, in the syntax of package [expr].
func Expr(src string) Value {
	return Value{kind: kindExpr, text: src}
}

// Parse returns an expression if s contains ${...}, and a literal string
// otherwise.
func Parse(s string) Value {
	if expr.IsTemplate(s) {
		return Expr(s)
	}
	return Text(s)
}

// IsSet reports whether v has been given a value.
func (v Value) IsSet() bool {
	return v.kind != kindUnset
}

// IsExpr reports whether v is an expression.
func (v Value) IsExpr() bool {
	return v.kind == kindExpr
}

func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return float.Format(v.num, -1)
	case kindColor:
		return FormatColor(v.col)
	default:
		return v.text
	}
}

// literal converts a value which is not an expression to an [expr.Value].
func (v Value) literal() expr.Value {
	switch v.kind {
	case kindNumber:
		return expr.NumberValue(v.num)
	case kindColor:
		return expr.StringValue(FormatColor(v.col))
	default:
		return expr.StringValue(strings.TrimSpace(v.text))
	}
}

// Entry is one entry of a colour map.
type Entry struct {
	Quantity Value
	Color    Value

	// Opacity is a number between 0 and 1.  If unset, 1 is used.
	Opacity Value

	Label string
}
