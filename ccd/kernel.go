// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ccd implements the pairwise continuous-collision-detection
// kernels and the conservative-rescaling / zero-TOI-retry strategy
// wrapper built around them.
package ccd

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ccdbarrier/geo"
)

// PairKind mirrors constraint.PairKind; duplicated here (rather than
// imported) to keep the numerical kernel package free of a dependency on
// the constraint data model — ccd only ever sees raw point lists.
type PairKind int

const (
	VertexVertex PairKind = iota
	VertexEdge
	EdgeEdge
	VertexFace
)

// feature resolves the closest-feature distance for the given kind over
// the point list pts (length 2, 3, or 4, matching VertexVertex/
// VertexEdge/EdgeEdge|VertexFace respectively).
func feature(kind PairKind, pts [][]float64) *geo.Feature {
	switch kind {
	case VertexVertex:
		return geo.PointPoint(pts[0], pts[1])
	case VertexEdge:
		return geo.PointEdge(pts[0], pts[1], pts[2])
	case EdgeEdge:
		return geo.EdgeEdge(pts[0], pts[1], pts[2], pts[3])
	case VertexFace:
		return geo.PointTriangle(pts[0], pts[1], pts[2], pts[3])
	}
	chk.Panic("ccd: unknown pair kind %v", kind)
	return nil
}

func lerpPoints(p0, p1 [][]float64, t float64) [][]float64 {
	pts := make([][]float64, len(p0))
	for k := range p0 {
		dim := len(p0[k])
		p := make([]float64, dim)
		for j := 0; j < dim; j++ {
			p[j] = (1-t)*p0[k][j] + t*p1[k][j]
		}
		pts[k] = p
	}
	return pts
}

// speedBound returns the sum of displacement magnitudes of the points
// involved, a Lipschitz constant for how fast their closest-feature
// separation can decrease over the unit time interval (exact for a purely
// linear trajectory).
func speedBound(p0, p1 [][]float64) float64 {
	var sum float64
	for k := range p0 {
		var s2 float64
		for j := range p0[k] {
			d := p1[k][j] - p0[k][j]
			s2 += d * d
		}
		sum += math.Sqrt(s2)
	}
	return sum
}

// Kernel runs the conservative-advancement CCD root search (a
// conservative-interval / tight-inclusion method) for a single primitive
// pair. p0/p1 give the point positions at t=0 and t=1 respectively (same
// ordering, length matching kind). For a known PairKind it does not
// panic: precondition checks belong to the caller (the public API
// boundary); Kernel itself always returns a boolean and, on false, an
// unspecified toi. An unknown PairKind panics via chk.Panic.
func Kernel(kind PairKind, p0, p1 [][]float64, minDistance, tolerance, tmax float64, maxIterations int, noZeroTOI bool) (impacting bool, toi float64) {
	bound := speedBound(p0, p1)
	t := 0.0
	nudge := tolerance
	if nudge <= 0 {
		nudge = 1e-12
	}
	for it := 0; it < maxIterations; it++ {
		pts := lerpPoints(p0, p1, t)
		d := math.Sqrt(feature(kind, pts).Dist2())
		gap := d - minDistance
		if gap <= tolerance {
			if t == 0 && noZeroTOI {
				t += nudge
				if t > tmax {
					return false, 0
				}
				continue
			}
			return true, math.Min(t, tmax)
		}
		if bound <= 1e-300 {
			return false, 0 // no relative motion, never reaches min_distance
		}
		dt := gap / bound
		tNext := t + dt
		if tNext > tmax {
			return false, 0
		}
		t = tNext
	}
	// max_iterations exhausted: report the best conservative bound found,
	// which still satisfies toi <= true TOI.
	if t == 0 && noZeroTOI {
		return false, 0
	}
	return true, math.Min(t, tmax)
}
