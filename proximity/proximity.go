// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proximity implements the minimum-distance and self-intersection
// queries.
package proximity

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
)

// MinimumDistance returns the minimum squared distance over all
// constraints, or +Inf for an empty set. The reduction
// uses the same blocked ranges as the earliest-TOI reduction
// (toi.Reduce), but each worker keeps a private minimum, appended to a
// mutex-guarded slice and merged serially, rather than a shared pruning
// tmax.
func MinimumDistance(m *mesh.Mesh, constraints []*constraint.Constraint, v [][]float64) float64 {
	if len(constraints) == 0 {
		return math.Inf(1)
	}

	nWorkers := runtime.NumCPU()
	if nWorkers < 1 {
		nWorkers = 1
	}
	chunkSize := (len(constraints) + 4*nWorkers - 1) / (4 * nWorkers)
	if chunkSize < 1 {
		chunkSize = 1
	}

	partials := make([]float64, 0, len(constraints)/chunkSize+1)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for start := 0; start < len(constraints); start += chunkSize {
		end := start + chunkSize
		if end > len(constraints) {
			end = len(constraints)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			local := math.Inf(1)
			for _, c := range constraints[lo:hi] {
				d := c.Dist2(m, v)
				if d < local {
					local = d
				}
			}
			mu.Lock()
			partials = append(partials, local)
			mu.Unlock()
		}(start, end)
	}
	wg.Wait()

	best := math.Inf(1)
	for _, p := range partials {
		if p < best {
			best = p
		}
	}
	return best
}

// HasIntersections reports whether the mesh configuration v contains any
// self-intersection: it builds a conservative-inflated broad phase at
// radius 0.01*diag(bbox(v)) directly over edges (2D) or
// edges-against-faces (3D) — not through the constraint Candidate broad
// phase, whose VV/VE/EE/VF variants don't include an edge-face pairing —
// then narrow-phases the surviving pairs with an exact predicate,
// returning true on the first hit. Empty topology (no edges, no faces)
// returns false.
func HasIntersections(m *mesh.Mesh, v [][]float64) bool {
	if len(m.E) == 0 && len(m.F) == 0 {
		return false
	}
	half := 0.005 * mesh.BBoxDiagonal(v)

	if m.Dim == 2 {
		boxes := make([]bbox2, len(m.E))
		for k, e := range m.E {
			boxes[k] = edgeBox2(v[e[0]], v[e[1]], half)
		}
		for i := 0; i < len(m.E); i++ {
			for j := i + 1; j < len(m.E); j++ {
				if sharesVertex2(m.E[i], m.E[j]) {
					continue
				}
				if !boxes[i].overlap(boxes[j]) {
					continue
				}
				e1, e2 := m.E[i], m.E[j]
				if segmentsIntersect2D(v[e1[0]], v[e1[1]], v[e2[0]], v[e2[1]]) {
					return true
				}
			}
		}
		return false
	}

	eBoxes := make([]bbox3, len(m.E))
	for k, e := range m.E {
		eBoxes[k] = edgeBox3(v[e[0]], v[e[1]], half)
	}
	fBoxes := make([]bbox3, len(m.F))
	for k, f := range m.F {
		fBoxes[k] = faceBox3(v[f[0]], v[f[1]], v[f[2]], half)
	}
	for i, e := range m.E {
		for k, f := range m.F {
			if sharesVertexEF(e, f) {
				continue
			}
			if !eBoxes[i].overlap(fBoxes[k]) {
				continue
			}
			if segmentTriangleIntersect3D(v[e[0]], v[e[1]], v[f[0]], v[f[1]], v[f[2]]) {
				return true
			}
		}
	}
	return false
}

func sharesVertex2(e1, e2 [2]int) bool {
	return e1[0] == e2[0] || e1[0] == e2[1] || e1[1] == e2[0] || e1[1] == e2[1]
}

func sharesVertexEF(e [2]int, f [3]int) bool {
	for _, a := range e {
		for _, b := range f {
			if a == b {
				return true
			}
		}
	}
	return false
}

type bbox2 struct{ loX, loY, hiX, hiY float64 }

func edgeBox2(a, b []float64, inflate float64) bbox2 {
	return bbox2{
		loX: math.Min(a[0], b[0]) - inflate,
		loY: math.Min(a[1], b[1]) - inflate,
		hiX: math.Max(a[0], b[0]) + inflate,
		hiY: math.Max(a[1], b[1]) + inflate,
	}
}

func (o bbox2) overlap(p bbox2) bool {
	return o.hiX >= p.loX && p.hiX >= o.loX && o.hiY >= p.loY && p.hiY >= o.loY
}

type bbox3 struct{ lo, hi [3]float64 }

func edgeBox3(a, b []float64, inflate float64) bbox3 {
	var box bbox3
	for j := 0; j < 3; j++ {
		box.lo[j] = math.Min(a[j], b[j]) - inflate
		box.hi[j] = math.Max(a[j], b[j]) + inflate
	}
	return box
}

func faceBox3(a, b, c []float64, inflate float64) bbox3 {
	var box bbox3
	for j := 0; j < 3; j++ {
		lo := math.Min(a[j], math.Min(b[j], c[j]))
		hi := math.Max(a[j], math.Max(b[j], c[j]))
		box.lo[j] = lo - inflate
		box.hi[j] = hi + inflate
	}
	return box
}

func (o bbox3) overlap(p bbox3) bool {
	for j := 0; j < 3; j++ {
		if o.hi[j] < p.lo[j] || p.hi[j] < o.lo[j] {
			return false
		}
	}
	return true
}

// orient2D returns twice the signed area of triangle (a,b,c); its sign
// gives the turn direction, the classic predicate behind segment-segment
// intersection (Ericson §5.1.9 / O'Rourke "Computational Geometry in C").
func orient2D(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p []float64) bool {
	minX, maxX := math.Min(a[0], b[0]), math.Max(a[0], b[0])
	minY, maxY := math.Min(a[1], b[1]), math.Max(a[1], b[1])
	return p[0] >= minX-1e-12 && p[0] <= maxX+1e-12 && p[1] >= minY-1e-12 && p[1] <= maxY+1e-12
}

// segmentsIntersect2D is the standard orientation-based exact
// segment-segment intersection test, including collinear overlap.
func segmentsIntersect2D(p1, p2, p3, p4 []float64) bool {
	d1 := orient2D(p3, p4, p1)
	d2 := orient2D(p3, p4, p2)
	d3 := orient2D(p1, p2, p3)
	d4 := orient2D(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func sub3(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// segmentTriangleIntersect3D is the Möller-Trumbore ray-triangle test
// restricted to the segment's parameter range [0,1]. Dot and cross products
// go through gosl/utl.Dot3d/Cross3d, matching the teacher's own
// ele/solid/beam.go vector-algebra idiom for fixed 3-vectors.
func segmentTriangleIntersect3D(s0, s1, a, b, c []float64) bool {
	const eps = 1e-12
	edge1 := sub3(b, a)
	edge2 := sub3(c, a)
	dir := sub3(s1, s0)
	h := make([]float64, 3)
	utl.Cross3d(h, dir, edge2) // h := dir cross edge2
	det := utl.Dot3d(edge1, h)
	if math.Abs(det) < eps {
		return false
	}
	invDet := 1 / det
	s := sub3(s0, a)
	u := utl.Dot3d(s, h) * invDet
	if u < -eps || u > 1+eps {
		return false
	}
	q := make([]float64, 3)
	utl.Cross3d(q, s, edge1) // q := s cross edge1
	vv := utl.Dot3d(dir, q) * invDet
	if vv < -eps || u+vv > 1+eps {
		return false
	}
	t := utl.Dot3d(edge2, q) * invDet
	return t >= -eps && t <= 1+eps
}
