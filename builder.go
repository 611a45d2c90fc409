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
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/colormap/expr"
	"seehuhn.de/go/colormap/internal/float"
	"seehuhn.de/go/colormap/interval"
	"seehuhn.de/go/colormap/piecewise"
)

// Mode selects how the entries of a colour map are turned into a
// classification table.
type Mode int

const (
	// Ramp interpolates colours linearly between consecutive quantities.
	// Values below the first and above the last quantity are transparent.
	Ramp Mode = iota + 1

	// Discrete maps each quantity, and nothing else, to its colour.
	Discrete

	// Values maps each quantity to itself, as a category code.
	Values

	// Intervals uses the colour of entry i for values from quantity i-1
	// (inclusive) up to quantity i (exclusive).  Entry 0 covers everything
	// below the first quantity.
	Intervals
)

func (m Mode) String() string {
	switch m {
	case Ramp:
		return "ramp"
	case Discrete:
		return "discrete"
	case Values:
		return "values"
	case Intervals:
		return "intervals"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts the name of a mode, as returned by [Mode.String],
// back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ramp", "":
		return Ramp, nil
	case "discrete":
		return Discrete, nil
	case "values":
		return Values, nil
	case "intervals":
		return Intervals, nil
	default:
		return 0, fmt.Errorf("unknown colour map type %q", s)
	}
}

// Builder collects colour map entries.
//
// A Builder is used by a single goroutine and is discarded after
// [Builder.Build] has been called.
type Builder struct {
	// Name is used as the name of the classification table.
	Name string

	// Env holds the variables for expressions.
	Env expr.Env

	// NoData lists sample values which mark missing data.  These are shown
	// transparent, even if they lie inside the range of an entry.
	// NaN is allowed here.
	NoData []float64

	// PaletteSize, if positive, is the number of palette entries available
	// to the output image, for example 256 for 8-bit paletted images.
	PaletteSize int

	// Default, if not nil, is used for values which are not covered by any
	// entry.  Otherwise, such values cause an error.
	Default *color.NRGBA

	// Logger, if not nil, receives debug messages.
	Logger *slog.Logger

	entries []Entry
}

// Add appends an entry.  The entry is not checked until the colour map is
// built.
func (b *Builder) Add(e Entry) {
	b.entries = append(b.entries, e)
}

// AddEntry appends an entry with the given fields.
func (b *Builder) AddEntry(quantity, col, opacity Value, label string) {
	b.Add(Entry{Quantity: quantity, Color: col, Opacity: opacity, Label: label})
}

// Entries returns the entries added so far.
func (b *Builder) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// resolve evaluates v if it is an expression.
func (b *Builder) resolve(v Value) (expr.Value, error) {
	if !v.IsExpr() {
		return v.literal(), nil
	}
	p, err := expr.Compile(v.text)
	if err != nil {
		return expr.Value{}, err
	}
	res, err := p.Eval(b.Env)
	if err != nil {
		return expr.Value{}, err
	}
	b.logger().LogAttrs(context.Background(), slog.LevelDebug, "resolved expression",
		slog.String("src", v.text), slog.String("value", res.String()))
	return res, nil
}

// ResolveQuantity returns the numeric value of a quantity.
func (b *Builder) ResolveQuantity(v Value) (float64, error) {
	if !v.IsSet() {
		return 0, errors.New("missing quantity")
	}
	res, err := b.resolve(v)
	if err != nil {
		return 0, err
	}
	x, err := res.Float()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("quantity %g is not a finite number", x)
	}
	return x, nil
}

// ResolveOpacity returns the numeric value of an opacity.
// Unset values give 1.
func (b *Builder) ResolveOpacity(v Value) (float64, error) {
	if !v.IsSet() {
		return 1, nil
	}
	res, err := b.resolve(v)
	if err != nil {
		return 0, err
	}
	x, err := res.Float()
	if err != nil {
		return 0, err
	}
	if !(x >= 0 && x <= 1) {
		return 0, fmt.Errorf("opacity %g not in [0, 1]", x)
	}
	return x, nil
}

// ResolveColor returns the colour described by v.
func (b *Builder) ResolveColor(v Value) (color.NRGBA, error) {
	switch v.kind {
	case kindUnset:
		return color.NRGBA{}, errors.New("missing colour")
	case kindColor:
		return v.col, nil
	}
	res, err := b.resolve(v)
	if err != nil {
		return color.NRGBA{}, err
	}
	return ParseColor(res.Text())
}

// stop is a resolved entry.
type stop struct {
	index int // position in the list of entries
	q     float64
	col   color.NRGBA
	label string
}

func (b *Builder) resolveAll() ([]stop, error) {
	stops := make([]stop, len(b.entries))
	for i, e := range b.entries {
		q, err := b.ResolveQuantity(e.Quantity)
		if err != nil {
			return nil, &EntryError{Index: i, Field: "quantity", Err: err}
		}
		col, err := b.ResolveColor(e.Color)
		if err != nil {
			return nil, &EntryError{Index: i, Field: "color", Err: err}
		}
		opacity, err := b.ResolveOpacity(e.Opacity)
		if err != nil {
			return nil, &EntryError{Index: i, Field: "opacity", Err: err}
		}
		stops[i] = stop{
			index: i,
			q:     q,
			col:   withOpacity(col, opacity),
			label: norm.NFC.String(e.Label),
		}
	}

	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].q < stops[j].q
	})
	for i := 1; i < len(stops); i++ {
		if stops[i].q == stops[i-1].q {
			first, second := stops[i-1].index, stops[i].index
			if first > second {
				first, second = second, first
			}
			return nil, &AmbiguousBoundaryError{Quantity: stops[i].q, First: first, Second: second}
		}
	}
	return stops, nil
}

// Build resolves all entries and constructs the colour map.
func (b *Builder) Build(mode Mode) (*ColorMap, error) {
	switch mode {
	case Ramp, Discrete, Values, Intervals:
	default:
		return nil, fmt.Errorf("colormap: invalid mode %d", int(mode))
	}
	if len(b.entries) == 0 {
		return nil, ErrNoEntries
	}

	stops, err := b.resolveAll()
	if err != nil {
		return nil, err
	}

	cm := &ColorMap{
		mode:        mode,
		noDataSlot:  -1,
		defaultSlot: -1,
	}
	for _, s := range stops {
		cm.labels = append(cm.labels, s.label)
	}

	// palette layout: [pad below] stops... [pad above] [no data] [default]
	n := len(stops)
	if mode == Ramp {
		cm.palette = append(cm.palette, transparent(stops[0].col))
	}
	for _, s := range stops {
		cm.palette = append(cm.palette, s.col)
	}
	if mode == Ramp {
		cm.palette = append(cm.palette, transparent(stops[n-1].col))
	}
	if len(b.NoData) > 0 {
		cm.noDataSlot = len(cm.palette)
		cm.palette = append(cm.palette, color.NRGBA{})
	}
	if b.Default != nil {
		cm.defaultSlot = len(cm.palette)
		cm.palette = append(cm.palette, *b.Default)
	}

	// Check the palette size before any output index is handed out.
	if b.PaletteSize > 0 && len(cm.palette) > b.PaletteSize {
		return nil, &PaletteOverflowError{Need: len(cm.palette), Capacity: b.PaletteSize}
	}

	var elems []piecewise.Element
	switch mode {
	case Ramp:
		elems, err = rampElements(stops)
	case Discrete, Values:
		elems, err = pointElements(stops, mode)
	case Intervals:
		elems, err = intervalElements(stops)
	}
	if err != nil {
		return nil, err
	}
	for i, x := range b.NoData {
		out := float64(cm.noDataSlot)
		if mode == Values {
			out = x
		}
		elems = append(elems, piecewise.NewNoData(fmt.Sprintf("no data %d", i), x, out))
	}

	table, err := piecewise.NewTable(b.Name, elems...)
	if err != nil {
		return nil, err
	}
	if cm.defaultSlot >= 0 {
		table = table.WithDefault(float64(cm.defaultSlot))
	}
	cm.table = table

	b.logger().LogAttrs(context.Background(), slog.LevelDebug, "colour map built",
		slog.String("name", b.Name),
		slog.String("mode", mode.String()),
		slog.Int("entries", n),
		slog.Int("elements", table.Len()),
		slog.Int("palette", len(cm.palette)))

	return cm, nil
}

func transparent(c color.NRGBA) color.NRGBA {
	c.A = 0
	return c
}

func stopName(s stop) string {
	if s.label != "" {
		return s.label
	}
	return float.Format(s.q, 6)
}

// rampElements returns N+2 elements for N stops.  Palette coordinate 0 is
// the padding below the first stop, stop i has coordinate i+1, and N+1 is
// the padding above the last stop.
func rampElements(stops []stop) ([]piecewise.Element, error) {
	n := len(stops)
	elems := make([]piecewise.Element, 0, n+2)

	first, last := stops[0], stops[n-1]
	below, err := piecewise.NewConstant("below "+stopName(first), interval.LessThan(first.q), 0)
	if err != nil {
		return nil, err
	}
	elems = append(elems, below)

	for i := range n - 1 {
		lo, hi := stops[i], stops[i+1]
		dom, err := interval.New(lo.q, true, hi.q, false)
		if err != nil {
			return nil, err
		}
		seg, err := piecewise.NewLinear(stopName(lo), dom, float64(i+1), float64(i+2))
		if err != nil {
			return nil, err
		}
		elems = append(elems, seg)
	}

	top, err := piecewise.NewConstant(stopName(last), interval.Point(last.q), float64(n))
	if err != nil {
		return nil, err
	}
	above, err := piecewise.NewConstant("above "+stopName(last), interval.GreaterThan(last.q), float64(n+1))
	if err != nil {
		return nil, err
	}
	return append(elems, top, above), nil
}

func pointElements(stops []stop, mode Mode) ([]piecewise.Element, error) {
	elems := make([]piecewise.Element, 0, len(stops))
	for i, s := range stops {
		out := float64(i)
		if mode == Values {
			out = s.q
		}
		e, err := piecewise.NewConstant(stopName(s), interval.Point(s.q), out)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func intervalElements(stops []stop) ([]piecewise.Element, error) {
	elems := make([]piecewise.Element, 0, len(stops))
	lower := math.Inf(-1)
	for i, s := range stops {
		dom, err := interval.New(lower, true, s.q, false)
		if err != nil {
			return nil, err
		}
		e, err := piecewise.NewConstant(stopName(s), dom, float64(i))
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		lower = s.q
	}
	return elems, nil
}
