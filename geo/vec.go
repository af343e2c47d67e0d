// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo implements the squared-distance primitives (point-point,
// point-edge, point-triangle, edge-edge) and their analytic gradients and
// local Hessians that the constraint and proximity packages build on.
//
// Distance formulas and their symbolic derivatives are sometimes treated
// as an external collaborator's job elsewhere; no such collaborator ships
// with this module, so geo implements them directly, grounded on the
// closest-feature decomposition standard in collision-detection
// literature (Ericson, "Real-Time Collision Detection"). sub/dot stay
// dimension-generic over dim in {2,3} (mustSameDim below), so they cannot
// route through gosl/utl's Dot3d/Cross3d, which assume a fixed 3-vector;
// that idiom is used instead where a computation is always 3D, e.g.
// proximity's edge-triangle intersection test.
package geo

import "github.com/cpmech/gosl/chk"

const tiny = 1e-14

func sub(a, b []float64) []float64 {
	r := make([]float64, len(a))
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// mustSameDim panics unless all given vectors share the same length (2 or 3).
func mustSameDim(vs ...[]float64) int {
	if len(vs) == 0 {
		chk.Panic("geo: need at least one vector")
	}
	dim := len(vs[0])
	if dim != 2 && dim != 3 {
		chk.Panic("geo: dim must be 2 or 3; got %d", dim)
	}
	for _, v := range vs[1:] {
		if len(v) != dim {
			chk.Panic("geo: all vectors must share dim=%d", dim)
		}
	}
	return dim
}
