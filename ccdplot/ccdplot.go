/*
 * ccdplot.go, part of goccd
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package ccdplot draws configuration coordinate diagrams: the sampled
//potential energy surfaces as points, the fitted harmonic models as
//curves.
package ccdplot

import (
	"fmt"
	"image/color"

	ccd "github.com/rmera/goccd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Diagram is a CC diagram in the making. Zero or more surfaces (as
//scatters) and curves (as lines) can be added before saving it. It
//fullfills ccd.Plotter, so it can be handed directly to the options of
//ccd.HarmonicFit to have the fitted model drawn on it.
type Diagram struct {
	p      *plot.Plot
	points int //how many scatters and lines added so far, for the styles
	lines  int
}

//NewDiagram returns an empty CC diagram with the given title and the
//conventional axes: Q in amu^1/2 A and energy in eV.
func NewDiagram(title string) *Diagram {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Q (amu^1/2 A)"
	p.Y.Label.Text = "Energy (eV)"
	p.Add(plotter.NewGrid())
	return &Diagram{p: p}
}

//AddPES adds the points of a sampled potential energy surface to the
//diagram, as a scatter. Successive surfaces get different colors and
//glyphs.
func (D *Diagram) AddPES(Q, energy []float64) error {
	pts, err := xys(Q, energy)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = seriesColor(D.points)
	s.GlyphStyle.Shape = seriesShape(D.points)
	s.GlyphStyle.Radius = vg.Points(3)
	D.points++
	D.p.Add(s)
	return nil
}

//AddXY draws the curve given by the x and y slices as a line, typically a
//fitted harmonic model sampled over the range of its data. Successive
//curves get different colors, paired with the scatter colors.
func (D *Diagram) AddXY(x, y []float64) error {
	pts, err := xys(x, y)
	if err != nil {
		return err
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.LineStyle.Color = seriesColor(D.lines)
	l.LineStyle.Width = vg.Points(1.5)
	D.lines++
	D.p.Add(l)
	return nil
}

//Save writes the diagram, in png format, to plotname. The extension is
//added here, so it must not be included in plotname.
func (D *Diagram) Save(plotname string) error {
	filename := fmt.Sprintf("%s.png", plotname)
	return D.p.Save(14*vg.Centimeter, 10*vg.Centimeter, filename)
}

/*CC draws and saves, in png format, the full CC diagram for a pair of
  electronic states: the two sampled surfaces, plus, if given, the fitted
  model of each, sampled over 1000 points spanning the whole Q range of the
  data. The extension must not be included in plotname. Returns an error or
  nil*/
func CC(plotname, title string, gQ, gE, eQ, eE []float64, fits ...*ccd.Fit) error {
	if gQ == nil || eQ == nil {
		return fmt.Errorf("Given nil data")
	}
	D := NewDiagram(title)
	if err := D.AddPES(gQ, gE); err != nil {
		return err
	}
	if err := D.AddPES(eQ, eE); err != nil {
		return err
	}
	min := floats.Min(gQ)
	if m := floats.Min(eQ); m < min {
		min = m
	}
	max := floats.Max(gQ)
	if m := floats.Max(eQ); m > max {
		max = m
	}
	for _, fit := range fits {
		if fit == nil {
			continue
		}
		q := make([]float64, 1000)
		floats.Span(q, min, max)
		e := make([]float64, len(q))
		for i, v := range q {
			e[i] = fit.Eval(v)
		}
		if err := D.AddXY(q, e); err != nil {
			return err
		}
	}
	return D.Save(plotname)
}

//xys puts a pair of slices into the plotter's XY form, checking that they
//match.
func xys(x, y []float64) (plotter.XYs, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("Given nil data")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("Mismatched data: %d x values, %d y values", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

//A colorblind-safe cycle for the successive series of a diagram.
var seriesColors = []color.RGBA{
	{R: 0, G: 90, B: 181, A: 255},
	{R: 220, G: 50, B: 32, A: 255},
	{R: 0, G: 158, B: 115, A: 255},
	{R: 230, G: 159, B: 0, A: 255},
}

func seriesColor(n int) color.RGBA {
	return seriesColors[n%len(seriesColors)]
}

func seriesShape(n int) draw.GlyphDrawer {
	switch n % 4 {
	case 0:
		return draw.CircleGlyph{}
	case 1:
		return draw.PyramidGlyph{}
	case 2:
		return draw.SquareGlyph{}
	default:
		return draw.CrossGlyph{}
	}
}
