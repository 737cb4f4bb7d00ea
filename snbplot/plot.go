/*
 * plot.go, part of gosnb.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package snbplot draws the displacements produced by bond distortions, to check
// at a glance how far from the defect a distortion reaches.
package snbplot

import (
	"fmt"
	"strconv"
	"strings"

	snb "github.com/rmera/gosnb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Size of the plots, in inches.
const (
	Width  = 5
	Height = 4
)

// DisplacementData returns, for the distortion label in set, one point per atom:
// its distance to the defect site in the unperturbed supercell (X) and how much
// it moved with respect to it (Y).
func DisplacementData(set *snb.DistortionRecordSet, label string) (plotter.XYs, error) {
	res, ok := set.Distortions[label]
	if !ok {
		return nil, fmt.Errorf("no distortion %q in record set %s", label, set.ID)
	}
	S, err := set.UnperturbedDefect.Structure()
	if err != nil {
		return nil, err
	}
	site, err := set.UnperturbedDefect.Site()
	if err != nil {
		return nil, err
	}
	dist, err := snb.SiteDistances(S, site)
	if err != nil {
		return nil, err
	}
	if res.DistortedStructure.Len() != S.Len() {
		return nil, fmt.Errorf("distortion %q has %d atoms, the supercell %d", label, res.DistortedStructure.Len(), S.Len())
	}
	disp := res.DistortedStructure.Displacements(S)
	pts := make(plotter.XYs, len(dist))
	for i := range pts {
		pts[i].X = dist[i]
		pts[i].Y = disp[i]
	}
	return pts, nil
}

// Magnitude returns the distortion magnitude from a label made by snb.Label.
func Magnitude(label string) (float64, error) {
	p, ok := strings.CutSuffix(label, "%_Bond_Distortion")
	if !ok {
		return 0, fmt.Errorf("%q is not a bond distortion label", label)
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a bond distortion label: %w", label, err)
	}
	return v / 100, nil
}

// DisplacementPlot returns a scatter plot of displacement against distance to the
// defect for each of the labels given (all the labels in set, if none).
func DisplacementPlot(set *snb.DistortionRecordSet, title string, labels ...string) (*plot.Plot, error) {
	if len(labels) == 0 {
		labels = set.Labels
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Distance to defect (Å)"
	p.Y.Label.Text = "Displacement (Å)"
	p.X.Min = 0
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	for i, l := range labels {
		pts, err := DisplacementData(set, l)
		if err != nil {
			return nil, err
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(s)
		p.Legend.Add(strings.TrimSuffix(l, "_Bond_Distortion"), s)
	}
	p.Legend.Top = true
	return p, nil
}

// SummaryPlot returns a plot of the largest displacement of any atom against the
// distortion magnitude, in percent, for all the distortions in set.
func SummaryPlot(set *snb.DistortionRecordSet, title string) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, len(set.Labels))
	for _, l := range set.Labels {
		m, err := Magnitude(l)
		if err != nil {
			return nil, err
		}
		disp, err := DisplacementData(set, l)
		if err != nil {
			return nil, err
		}
		ys := make([]float64, len(disp))
		for i, d := range disp {
			ys[i] = d.Y
		}
		pts = append(pts, plotter.XY{X: m * 100, Y: floats.Max(ys)})
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bond distortion (%)"
	p.Y.Label.Text = "Largest displacement (Å)"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, pts); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes p to filename. The format is given by the extension
// (png, svg, pdf, eps...).
func Save(p *plot.Plot, filename string) error {
	return p.Save(Width*vg.Inch, Height*vg.Inch, filename)
}

// PlotRecordSet writes the displacement and summary plots of set to
// prefix+"_displacements.png" and prefix+"_summary.png".
func PlotRecordSet(set *snb.DistortionRecordSet, prefix string) error {
	name := set.UnperturbedDefect.Name
	p, err := DisplacementPlot(set, name)
	if err != nil {
		return err
	}
	if err := Save(p, prefix+"_displacements.png"); err != nil {
		return err
	}
	p, err = SummaryPlot(set, name)
	if err != nil {
		return err
	}
	return Save(p, prefix+"_summary.png")
}
