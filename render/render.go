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

// Package render applies classification functions to grids of samples.
//
// The functions in this package take the per-sample operation as an
// argument, so that any classification table or colour map can be used
// without registering it anywhere.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Grid is a rectangular array of samples, stored row by row.
type Grid struct {
	Width, Height int
	Samples       []float64
}

// NewGrid allocates a grid of the given size, filled with zeros.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:   width,
		Height:  height,
		Samples: make([]float64, width*height),
	}
}

// Ramp returns a grid where every row runs linearly from lo in the first
// column to hi in the last column.
func Ramp(width, height int, lo, hi float64) *Grid {
	g := NewGrid(width, height)
	for x := range width {
		v := lo
		if width > 1 {
			v = lo + (hi-lo)*float64(x)/float64(width-1)
		}
		if x == width-1 {
			v = hi
		}
		for y := range height {
			g.Samples[y*width+x] = v
		}
	}
	return g
}

// At returns the sample at column x and row y.
func (g *Grid) At(x, y int) float64 {
	return g.Samples[y*g.Width+x]
}

// Set changes the sample at column x and row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Samples[y*g.Width+x] = v
}

func (g *Grid) check() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("render: invalid grid size %dx%d", g.Width, g.Height)
	}
	if len(g.Samples) != g.Width*g.Height {
		return fmt.Errorf("render: %dx%d grid has %d samples",
			g.Width, g.Height, len(g.Samples))
	}
	return nil
}

// SampleError reports a sample which could not be processed.
type SampleError struct {
	X, Y  int
	Value float64
	Err   error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %g at (%d, %d): %v", e.Value, e.X, e.Y, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

// ErrPaletteTooLarge is returned by [Paletted] for palettes with more than
// 256 colours.
var ErrPaletteTooLarge = errors.New("render: palette has more than 256 colours")

// rows calls fn for every row of g.  Rows are processed concurrently.
// Once a row has failed, rows further down are skipped.  The returned
// error is the one from the first failing row.
func rows(g *Grid, fn func(y int, row []float64) error) error {
	err := g.check()
	if err != nil {
		return err
	}

	errs := make([]error, g.Height)
	var firstBad atomic.Int64
	firstBad.Store(int64(g.Height))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := range g.Height {
		if int64(y) > firstBad.Load() {
			break
		}
		row := g.Samples[y*g.Width : (y+1)*g.Width]
		eg.Go(func() error {
			if int64(y) > firstBad.Load() {
				return nil
			}
			err := fn(y, row)
			if err == nil {
				return nil
			}
			errs[y] = err
			for {
				cur := firstBad.Load()
				if int64(y) >= cur || firstBad.CompareAndSwap(cur, int64(y)) {
					break
				}
			}
			return nil
		})
	}
	eg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Remap applies f to every sample of g and returns the results as a new
// grid.  For a classification table, pass its Classify method.
func Remap(g *Grid, f func(float64) (float64, error)) (*Grid, error) {
	out := NewGrid(g.Width, g.Height)
	err := rows(g, func(y int, row []float64) error {
		dst := out.Samples[y*g.Width:]
		for x, v := range row {
			w, err := f(v)
			if err != nil {
				return &SampleError{X: x, Y: y, Value: v, Err: err}
			}
			dst[x] = w
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Colorize converts g into an image, using f to map samples to colours.
// Row 0 of the grid becomes the top row of the image.
func Colorize(g *Grid, f func(float64) (color.NRGBA, error)) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, max(g.Width, 0), max(g.Height, 0)))
	err := rows(g, func(y int, row []float64) error {
		pix := img.Pix[y*img.Stride:]
		for x, v := range row {
			c, err := f(v)
			if err != nil {
				return &SampleError{X: x, Y: y, Value: v, Err: err}
			}
			pix[4*x] = c.R
			pix[4*x+1] = c.G
			pix[4*x+2] = c.B
			pix[4*x+3] = c.A
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Paletted converts g into a paletted image.  The function index maps
// samples to positions in palette.
func Paletted(g *Grid, index func(float64) (int, error), palette []color.NRGBA) (*image.Paletted, error) {
	if len(palette) > 256 {
		return nil, ErrPaletteTooLarge
	}
	pal := make(color.Palette, len(palette))
	for i, c := range palette {
		pal[i] = c
	}

	img := image.NewPaletted(image.Rect(0, 0, max(g.Width, 0), max(g.Height, 0)), pal)
	err := rows(g, func(y int, row []float64) error {
		pix := img.Pix[y*img.Stride:]
		for x, v := range row {
			i, err := index(v)
			if err != nil {
				return &SampleError{X: x, Y: y, Value: v, Err: err}
			}
			if i < 0 || i >= len(palette) {
				err = fmt.Errorf("palette index %d out of range", i)
				return &SampleError{X: x, Y: y, Value: v, Err: err}
			}
			pix[x] = uint8(i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}
