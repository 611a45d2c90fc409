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
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// Kind identifies the type of a [Value].
type Kind uint8

// These are the kinds of values an expression can produce.
const (
	KindNumber Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is the result of evaluating an expression.
// The zero Value is the number 0.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// NumberValue returns a numeric value.
func NumberValue(x float64) Value { return Value{kind: KindNumber, num: x} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the type of v.
func (v Value) Kind() Kind { return v.kind }

var errNotNumber = errors.New("not a number")

// Float converts v to a number.  Strings are parsed, booleans give 0 or 1.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.num, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	default:
		x, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", v.str, errNotNumber)
		}
		return x, nil
	}
}

// Text converts v to a string.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Truth converts v to a boolean.  Numbers are true if they are non-zero,
// strings must be "true" or "false".
func (v Value) Truth() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num), nil
	default:
		b, err := strconv.ParseBool(strings.TrimSpace(v.str))
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean", v.str)
		}
		return b, nil
	}
}

func (v Value) String() string {
	if v.kind == KindString {
		return strconv.Quote(v.str)
	}
	return v.Text()
}

// Env holds the variables available to an expression, both as bare
// identifiers and through the env() function.
// Values may be of type float64, float32, int, int64, uint64, uint8,
// string, bool or Value.
type Env map[string]any

// Lookup returns the value of the variable name.
func (env Env) Lookup(name string) (Value, bool, error) {
	raw, ok := env[name]
	if !ok {
		return Value{}, false, nil
	}
	switch x := raw.(type) {
	case Value:
		return x, true, nil
	case float64:
		return NumberValue(x), true, nil
	case float32:
		return NumberValue(float64(x)), true, nil
	case int:
		return NumberValue(float64(x)), true, nil
	case int64:
		return NumberValue(float64(x)), true, nil
	case uint64:
		return NumberValue(float64(x)), true, nil
	case uint8:
		return NumberValue(float64(x)), true, nil
	case string:
		return StringValue(x), true, nil
	case bool:
		return BoolValue(x), true, nil
	default:
		return Value{}, true, fmt.Errorf("variable %q has unsupported type %T", name, raw)
	}
}

// Names returns the variable names in env, in sorted order.
func (env Env) Names() []string {
	names := maps.Keys(env)
	slices.Sort(names)
	return names
}
