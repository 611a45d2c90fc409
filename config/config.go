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

// Package config reads colour map definitions from YAML files.
//
// A definition either lists the entries of the colour map explicitly:
//
//	name: elevation
//	type: ramp
//	nodata: [-9999, .nan]
//	env:
//	  top: 2000
//	entries:
//	  - {quantity: 0, color: "#0000ff", label: sea level}
//	  - {quantity: "${top}", color: white}
//
// or describes a gradient, which is expanded into a ramp:
//
//	gradient:
//	  colors: ["#0000ff", "#00ffff", "#ffff00", "#ff0000"]
//	  min: 10
//	  max: 100
//
// Hexadecimal colours must be quoted, since YAML treats an unquoted '#'
// after white space as the start of a comment.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"seehuhn.de/go/colormap"
	"seehuhn.de/go/colormap/expr"
)

// Definition is the content of a colour map definition file.
type Definition struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	NoData      []float64      `yaml:"nodata,flow"`
	PaletteSize int            `yaml:"palette-size"`
	Default     string         `yaml:"default"`
	Env         map[string]any `yaml:"env"`
	Entries     []Entry        `yaml:"entries"`
	Gradient    *Gradient      `yaml:"gradient"`
}

// Entry describes one entry of a colour map.
type Entry struct {
	Quantity Scalar `yaml:"quantity"`
	Color    Scalar `yaml:"color"`
	Opacity  Scalar `yaml:"opacity"`
	Label    string `yaml:"label"`
}

// Gradient describes evenly spaced colours between two quantities.
type Gradient struct {
	Colors []string `yaml:"colors,flow"`
	Min    float64  `yaml:"min"`
	Max    float64  `yaml:"max"`
}

// Scalar is a YAML number or string, converted to a colormap.Value.
// Strings of the form "${...}" become expressions.
type Scalar struct {
	colormap.Value
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *Scalar) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	err := unmarshal(&raw)
	if err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		s.Value = colormap.Value{}
	case int:
		s.Value = colormap.Number(float64(x))
	case int64:
		s.Value = colormap.Number(float64(x))
	case uint64:
		s.Value = colormap.Number(float64(x))
	case float64:
		s.Value = colormap.Number(x)
	case string:
		s.Value = colormap.Parse(x)
	default:
		return fmt.Errorf("unexpected value %v of type %T", raw, raw)
	}
	return nil
}

// Load reads a definition from r.  Unknown keys are an error.
func Load(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)

	d := &Definition{}
	err := dec.Decode(d)
	if err == io.EOF {
		return nil, errors.New("config: empty definition")
	} else if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	err = d.check()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// LoadFile reads a definition from the named file.
func LoadFile(path string) (*Definition, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	d, err := Load(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = path
	}
	return d, nil
}

func (d *Definition) check() error {
	mode, err := d.Mode()
	if err != nil {
		return err
	}
	switch {
	case d.Gradient != nil && len(d.Entries) > 0:
		return errors.New("config: both entries and gradient given")
	case d.Gradient == nil && len(d.Entries) == 0:
		return errors.New("config: no entries")
	case d.Gradient != nil && mode != colormap.Ramp:
		return fmt.Errorf("config: gradient requires type ramp, not %s", mode)
	case d.PaletteSize < 0:
		return fmt.Errorf("config: invalid palette size %d", d.PaletteSize)
	}
	return nil
}

// Mode returns the colour map type given in the definition.
func (d *Definition) Mode() (colormap.Mode, error) {
	mode, err := colormap.ParseMode(d.Type)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return mode, nil
}

// Builder returns a colour map builder holding the entries of the
// definition.  Variables in env take precedence over the ones given in the
// definition file.
func (d *Definition) Builder(env expr.Env) (*colormap.Builder, error) {
	b := &colormap.Builder{
		Name:        d.Name,
		Env:         make(expr.Env, len(d.Env)+len(env)),
		NoData:      d.NoData,
		PaletteSize: d.PaletteSize,
	}
	maps.Copy(b.Env, d.Env)
	maps.Copy(b.Env, env)

	if d.Default != "" {
		c, err := colormap.ParseColor(d.Default)
		if err != nil {
			return nil, fmt.Errorf("config: default: %w", err)
		}
		b.Default = &c
	}

	if d.Gradient != nil {
		g, err := colormap.ParseGradient(strings.Join(d.Gradient.Colors, ";"))
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		stops, err := g.Stops(d.Gradient.Min, d.Gradient.Max)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		for _, e := range stops {
			b.Add(e)
		}
		return b, nil
	}

	for _, e := range d.Entries {
		b.AddEntry(e.Quantity.Value, e.Color.Value, e.Opacity.Value, e.Label)
	}
	return b, nil
}

// Build constructs the colour map described by the definition.
func (d *Definition) Build(env expr.Env) (*colormap.ColorMap, error) {
	mode, err := d.Mode()
	if err != nil {
		return nil, err
	}
	b, err := d.Builder(env)
	if err != nil {
		return nil, err
	}
	return b.Build(mode)
}
