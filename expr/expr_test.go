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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEval(t *testing.T) {
	env := Env{
		"scale":  2.5,
		"count":  4,
		"color":  "00ff00",
		"on":     true,
		"ten":    "10",
		"weight": NumberValue(0.25),
	}

	type testCase struct {
		src  string
		want Value
	}
	testCases := []testCase{
		{"6.0+4.0", NumberValue(10)},
		{"${6.0+4.0}", NumberValue(10)},
		{"  ${ 6.0 + 4.0 }  ", NumberValue(10)},
		{"1 + 2 * 3", NumberValue(7)},
		{"(1 + 2) * 3", NumberValue(9)},
		{"-2 * -3", NumberValue(6)},
		{"7 % 4", NumberValue(3)},
		{"1 / 4", NumberValue(0.25)},
		{"1e3 + .5", NumberValue(1000.5)},
		{"scale * count", NumberValue(10)},
		{"env('scale')", NumberValue(2.5)},
		{"env('missing', 42)", NumberValue(42)},
		{"env('ten') + 1", NumberValue(11)},
		{"weight", NumberValue(0.25)},
		{"'#' + color", StringValue("#00ff00")},
		{"#${color}", StringValue("#00ff00")},
		{"#${env('color')}ff", StringValue("#00ff00ff")},
		{"${1+1} and ${2+2}", StringValue("2 and 4")},
		{"'it''s'", StringValue("it's")},
		{`"a" + "b"`, StringValue("ab")},
		{"1 < 2", BoolValue(true)},
		{"2 <= 1", BoolValue(false)},
		{"ten = 10", BoolValue(true)},
		{"'a' <> 'b'", BoolValue(true)},
		{"not on", BoolValue(false)},
		{"on and 1 > 2", BoolValue(false)},
		{"1 > 2 or on", BoolValue(true)},
		{"false and missing", BoolValue(false)},
		{"true or missing", BoolValue(true)},
		{"if_then_else(on, 'yes', missing)", StringValue("yes")},
		{"if_then_else(count > 10, 1, 2)", NumberValue(2)},
		{"max(1, 5, 3)", NumberValue(5)},
		{"min(4, -1)", NumberValue(-1)},
		{"pow(2, 10)", NumberValue(1024)},
		{"sqrt(16) + abs(-1) + floor(1.7) + ceil(1.2)", NumberValue(8)},
		{"round(2.5)", NumberValue(3)},
		{"strToUpperCase('abc')", StringValue("ABC")},
		{"concat('a', 1, true)", StringValue("a1true")},
	}
	for _, tc := range testCases {
		got, err := Eval(tc.src, env)
		if err != nil {
			t.Errorf("%q: %v", tc.src, err)
			continue
		}
		if d := cmp.Diff(tc.want, got, cmp.AllowUnexported(Value{})); d != "" {
			t.Errorf("%q: unexpected value (-want +got):\n%s", tc.src, d)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	testCases := []string{
		"",
		"${}",
		"1 +",
		"(1 + 2",
		"1 2",
		"'open",
		"${1 + 2",
		"foo(1)",
		"pow(1)",
		"if_then_else(true, 1)",
		"1 # 2",
		"max(1,)",
	}
	for _, src := range testCases {
		_, err := Compile(src)
		if !errors.Is(err, &Error{}) {
			t.Errorf("%q: expected *Error, got %v", src, err)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	env := Env{"name": "abc", "bad": []int{1}}
	testCases := []string{
		"missing",
		"env('missing')",
		"name * 2",
		"-name",
		"bad",
		"not name",
	}
	for _, src := range testCases {
		_, err := Eval(src, env)
		var exprErr *Error
		if !errors.As(err, &exprErr) {
			t.Errorf("%q: expected *Error, got %v", src, err)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Compile("#${1 + }")
	var exprErr *Error
	if !errors.As(err, &exprErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if exprErr.Pos != 7 {
		t.Errorf("error at offset %d, want 7", exprErr.Pos)
	}
}

func TestUndefinedListsNames(t *testing.T) {
	_, err := Eval("zz", Env{"b": 1, "a": 2})
	want := `expression "zz": offset 0: undefined variable "zz" (known: a, b)`
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}
}

func TestValueConversions(t *testing.T) {
	x, err := StringValue(" 12.5 ").Float()
	if err != nil || x != 12.5 {
		t.Errorf("Float() = %g, %v", x, err)
	}
	if _, err := StringValue("red").Float(); err == nil {
		t.Error("non-numeric string converted")
	}
	if s := NumberValue(10).Text(); s != "10" {
		t.Errorf("Text() = %q", s)
	}
	if b, err := NumberValue(math.NaN()).Truth(); err != nil || b {
		t.Errorf("Truth(NaN) = %t, %v", b, err)
	}
}

func TestProgramReuse(t *testing.T) {
	p := MustCompile("${env('x', 0) * 2}")
	for _, x := range []float64{1, 2, 3} {
		v, err := p.Eval(Env{"x": x})
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := v.Float(); got != 2*x {
			t.Errorf("x=%g: got %g", x, got)
		}
	}
	if p.Source() != "${env('x', 0) * 2}" {
		t.Errorf("Source() = %q", p.Source())
	}
}

func TestFunctions(t *testing.T) {
	names := Functions()
	for _, want := range []string{"env", "if_then_else", "max"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("function %q not listed", want)
		}
	}
}

func TestEnvNames(t *testing.T) {
	env := Env{"zeta": 1, "alpha": "a", "mid": true}
	if d := cmp.Diff([]string{"alpha", "mid", "zeta"}, env.Names()); d != "" {
		t.Errorf("names (-want +got):\n%s", d)
	}
	if names := Env(nil).Names(); len(names) != 0 {
		t.Errorf("nil env has names %v", names)
	}
}
