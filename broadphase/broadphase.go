// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package broadphase names the broad-phase candidate-generation methods
// the core consumes, an external-collaborator interface: hash grid, BVH,
// sweep-and-prune and the GPU pipeline are named but not implemented
// here. BruteForce is the one method actually provided, a reference
// all-pairs-under-inflation-radius scan used by the public API and by
// tests when no production broad phase is wired in.
package broadphase

import (
	"github.com/cpmech/ccdbarrier/constraint"
	"github.com/cpmech/ccdbarrier/mesh"
)

// Method enumerates the broad-phase strategies the core's public API
// accepts as a tag. Only BruteForce has an implementation in this
// module; the others are external collaborators.
type Method int

const (
	BruteForce Method = iota
	HashGrid
	SpatialHash
	BVH
	SweepAndPrune
	SweepAndTiniestQueueGPU
)

func (m Method) String() string {
	switch m {
	case BruteForce:
		return "brute-force"
	case HashGrid:
		return "hash-grid"
	case SpatialHash:
		return "spatial-hash"
	case BVH:
		return "bvh"
	case SweepAndPrune:
		return "sweep-and-prune"
	case SweepAndTiniestQueueGPU:
		return "sweep-and-tiniest-queue-gpu"
	}
	return "unknown"
}

// bbox is an axis-aligned box in up to 3 dimensions.
type bbox struct {
	lo, hi []float64
}

func pointBox(p []float64, inflate float64) bbox {
	lo := make([]float64, len(p))
	hi := make([]float64, len(p))
	for j, x := range p {
		lo[j] = x - inflate
		hi[j] = x + inflate
	}
	return bbox{lo: lo, hi: hi}
}

func unionBox(a, b bbox) bbox {
	lo := make([]float64, len(a.lo))
	hi := make([]float64, len(a.hi))
	for j := range a.lo {
		lo[j] = min(a.lo[j], b.lo[j])
		hi[j] = max(a.hi[j], b.hi[j])
	}
	return bbox{lo: lo, hi: hi}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func overlap(a, b bbox) bool {
	for j := range a.lo {
		if a.hi[j] < b.lo[j] || b.hi[j] < a.lo[j] {
			return false
		}
	}
	return true
}

// Candidates runs the brute-force broad phase: every vertex-vertex,
// vertex-edge, edge-edge and vertex-face pair whose
// inflated bounding boxes (by radius/2 each side, so the pair test is
// overlap at combined radius) overlap under vertex table v is returned.
// Trivial self-pairs (an edge against its own endpoint, a face against
// one of its own vertices) are skipped.
func Candidates(m *mesh.Mesh, v [][]float64, radius float64) []constraint.Candidate {
	vBoxes := vertexBoxes(m.NumVerts(), v, nil, radius/2)
	return candidatesFromBoxes(m, vBoxes)
}

// SweptCandidates runs the same brute-force broad phase as Candidates,
// but over the swept bounding box each vertex traces between v0 and v1
// (inflated by margin/2 each side): the box needed so that a CCD kernel
// given the surviving candidates never misses a pair that is far apart
// at t=0 but converges within the step. The earliest-TOI reduction needs
// this; a static self-intersection query does not, and uses Candidates
// against a single snapshot instead.
func SweptCandidates(m *mesh.Mesh, v0, v1 [][]float64, margin float64) []constraint.Candidate {
	vBoxes := vertexBoxes(m.NumVerts(), v0, v1, margin/2)
	return candidatesFromBoxes(m, vBoxes)
}

func vertexBoxes(n int, v0, v1 [][]float64, half float64) []bbox {
	vBoxes := make([]bbox, n)
	for i := 0; i < n; i++ {
		box := pointBox(v0[i], half)
		if v1 != nil {
			box = unionBox(box, pointBox(v1[i], half))
		}
		vBoxes[i] = box
	}
	return vBoxes
}

func candidatesFromBoxes(m *mesh.Mesh, vBoxes []bbox) []constraint.Candidate {
	n := len(vBoxes)

	eBoxes := make([]bbox, len(m.E))
	for k, e := range m.E {
		eBoxes[k] = unionBox(vBoxes[e[0]], vBoxes[e[1]])
	}

	fBoxes := make([]bbox, len(m.F))
	for k, f := range m.F {
		box := unionBox(vBoxes[f[0]], vBoxes[f[1]])
		fBoxes[k] = unionBox(box, vBoxes[f[2]])
	}

	var out []constraint.Candidate

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlap(vBoxes[i], vBoxes[j]) {
				out = append(out, constraint.VV(i, j))
			}
		}
	}

	for i := 0; i < n; i++ {
		for k, e := range m.E {
			if i == e[0] || i == e[1] {
				continue
			}
			if overlap(vBoxes[i], eBoxes[k]) {
				out = append(out, constraint.VE(i, k))
			}
		}
	}

	for k1 := 0; k1 < len(m.E); k1++ {
		for k2 := k1 + 1; k2 < len(m.E); k2++ {
			if sharesVertex2(m.E[k1], m.E[k2]) {
				continue
			}
			if overlap(eBoxes[k1], eBoxes[k2]) {
				out = append(out, constraint.EE(k1, k2))
			}
		}
	}

	for i := 0; i < n; i++ {
		for k, f := range m.F {
			if i == f[0] || i == f[1] || i == f[2] {
				continue
			}
			if overlap(vBoxes[i], fBoxes[k]) {
				out = append(out, constraint.VF(i, k))
			}
		}
	}

	return out
}

func sharesVertex2(e1, e2 [2]int) bool {
	return e1[0] == e2[0] || e1[0] == e2[1] || e1[1] == e2[0] || e1[1] == e2[1]
}
