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

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"
	"golang.org/x/term"

	"seehuhn.de/go/colormap"
	"seehuhn.de/go/colormap/config"
	"seehuhn.de/go/colormap/expr"
	"seehuhn.de/go/colormap/internal/float"
	"seehuhn.de/go/colormap/render"
)

func main() {
	env := envFlag{}
	defFile := flag.String("f", "", "colour map definition (YAML)")
	flag.Var(env, "env", "set expression variable `name=value` (repeatable)")
	verbose := flag.Bool("v", false, "show debug messages")
	outFile := flag.String("o", "", "write a legend image (.png or .tif)")
	width := flag.Int("width", 256, "legend width in pixels")
	height := flag.Int("height", 16, "legend height in pixels")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] -f map.yaml [value ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *defFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	def, err := config.LoadFile(*defFile)
	check(logger, err)
	mode, err := def.Mode()
	check(logger, err)
	b, err := def.Builder(expr.Env(env))
	check(logger, err)
	b.Logger = logger
	for _, name := range b.Env.Names() {
		logger.Debug("variable", "name", name, "value", b.Env[name])
	}

	cm, err := b.Build(mode)
	check(logger, err)

	l := &lister{w: os.Stdout, cm: cm, color: term.IsTerminal(int(os.Stdout.Fd()))}
	if flag.NArg() == 0 {
		l.table()
	}
	for _, arg := range flag.Args() {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			logger.Error("invalid sample", "arg", arg, "err", err)
			os.Exit(1)
		}
		l.sample(x)
	}

	if *outFile != "" {
		err = writeLegend(*outFile, cm, *width, *height)
		check(logger, err)
		logger.Info("legend written", "file", *outFile)
	}
}

// envFlag collects -env name=value arguments.  Values which look like
// numbers are stored as numbers.
type envFlag expr.Env

func (e envFlag) String() string {
	var parts []string
	for _, name := range expr.Env(e).Names() {
		parts = append(parts, fmt.Sprintf("%s=%v", name, e[name]))
	}
	return strings.Join(parts, ",")
}

func (e envFlag) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return errors.New("expected name=value")
	}
	if x, err := strconv.ParseFloat(val, 64); err == nil {
		e[name] = x
	} else {
		e[name] = val
	}
	return nil
}

type lister struct {
	w     io.Writer
	cm    *colormap.ColorMap
	color bool
}

func (l *lister) table() {
	table := l.cm.Table()
	name := table.Name()
	if name == "" {
		name = "colour map"
	}
	fmt.Fprintf(l.w, "%s (%s, %d elements)\n", name, l.cm.Mode(), table.Len())
	for i := range table.Len() {
		el := table.Element(i)
		lo, hi := l.cm.ElementColors(i)
		fmt.Fprintf(l.w, "%3d %s %-20s %s",
			i, l.swatch(lo, hi), el.Domain(), el.Name())
		if el.IsNoData() {
			fmt.Fprint(l.w, " (no data)")
		}
		fmt.Fprintln(l.w)
	}
	if v, ok := table.Default(); ok {
		fmt.Fprintf(l.w, "default: %s\n", float.Format(v, -1))
	}
}

func (l *lister) sample(x float64) {
	v, err := l.cm.Classify(x)
	if err != nil {
		fmt.Fprintf(l.w, "%s: %v\n", float.Format(x, -1), err)
		return
	}
	c, err := l.cm.Color(x)
	if err != nil {
		fmt.Fprintf(l.w, "%s: %v\n", float.Format(x, -1), err)
		return
	}
	fmt.Fprintf(l.w, "%s -> %s %s %s\n",
		float.Format(x, -1), float.Format(v, 4), l.swatch(c, c), colormap.FormatColor(c))
}

// swatch shows two colours as coloured blocks, if the output is a
// terminal.  Otherwise, the hexadecimal colour values are shown.
func (l *lister) swatch(lo, hi color.NRGBA) string {
	if !l.color {
		if lo == hi {
			return fmt.Sprintf("%-19s", colormap.FormatColor(lo))
		}
		return fmt.Sprintf("%-9s %-9s", colormap.FormatColor(lo), colormap.FormatColor(hi))
	}
	block := func(c color.NRGBA) string {
		if c.A == 0 {
			return "  "
		}
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
	}
	return block(lo) + block(hi)
}

// writeLegend renders the range of the colour map into an image file.
func writeLegend(fname string, cm *colormap.ColorMap, width, height int) error {
	dom, ok := cm.Table().Domain()
	if !ok {
		return errors.New("colour map has no range to show")
	}
	lo, hi := dom.Lower(), dom.Upper()
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = finiteRange(cm)
	}
	g := render.Ramp(width, height, lo, hi)
	img, err := render.Colorize(g, func(x float64) (color.NRGBA, error) {
		c, err := cm.Color(x)
		if err != nil {
			return color.NRGBA{}, nil
		}
		return c, nil
	})
	if err != nil {
		return err
	}
	return writeImage(fname, img)
}

// finiteRange returns the smallest and largest finite bound among the
// elements of the colour map.
func finiteRange(cm *colormap.ColorMap) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, el := range cm.Table().Elements() {
		if el.IsNoData() {
			continue
		}
		for _, x := range []float64{el.Domain().Lower(), el.Domain().Upper()} {
			if !math.IsInf(x, 0) {
				lo = min(lo, x)
				hi = max(hi, x)
			}
		}
	}
	if lo > hi {
		return 0, 1
	} else if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func writeImage(fname string, img image.Image) error {
	out, err := os.Create(fname)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(fname)) {
	case ".tif", ".tiff":
		err = tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(out, img)
	}
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func check(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
