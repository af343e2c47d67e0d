// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly implements the local-to-global scatter: mapping a
// constraint's local dense gradient/Hessian into the global dof
// vector and sparse matrix, grounded on the Umap index-mapping idiom used
// throughout gofem's ele/* element implementations
// (AddToKb(Kb *la.Triplet, ...), e.g. ele/solid/beam.go, elastrod.go).
package assembly

import "math"

// ProjectToPSD clamps the eigenvalues of the symmetric matrix h to be
// non-negative, in place, via cyclic Jacobi eigenvalue rotations. Local
// constraint Hessians here are at most 12x12 (vertex-face / edge-edge in
// 3D), small enough that a classic Jacobi sweep converges in a handful of
// iterations without needing a full LAPACK-style symmetric eigensolver.
func ProjectToPSD(h [][]float64) {
	n := len(h)
	if n == 0 {
		return
	}
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), h[i]...)
	}
	v := identity(n)

	const maxSweeps = 100
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := offDiagNorm(a)
		if off < 1e-13 {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(a[p][q]) < 1e-300 {
					continue
				}
				jacobiRotate(a, v, p, q)
			}
		}
	}

	// eigenvalues are now on the diagonal of a; clamp negatives to zero
	for i := 0; i < n; i++ {
		if a[i][i] < 0 {
			a[i][i] = 0
		}
	}

	// reconstruct h = V * diag(a) * V^T
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var s float64
			for k := 0; k < n; k++ {
				s += v[i][k] * a[k][k] * v[j][k]
			}
			h[i][j] = s
		}
	}
}

func identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

func offDiagNorm(a [][]float64) float64 {
	n := len(a)
	var s float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s += a[i][j] * a[i][j]
		}
	}
	return math.Sqrt(2 * s)
}

// jacobiRotate zeroes a[p][q] (and a[q][p]) via a Givens rotation, updating
// a in place and accumulating the rotation into v.
func jacobiRotate(a, v [][]float64, p, q int) {
	n := len(a)
	app, aqq, apq := a[p][p], a[q][q], a[p][q]
	theta := (aqq - app) / (2 * apq)
	t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(1+theta*theta))
	if theta == 0 {
		t = 1
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	a[p][p] = app - t*apq
	a[q][q] = aqq + t*apq
	a[p][q] = 0
	a[q][p] = 0
	for i := 0; i < n; i++ {
		if i != p && i != q {
			aip, aiq := a[i][p], a[i][q]
			a[i][p] = c*aip - s*aiq
			a[p][i] = a[i][p]
			a[i][q] = s*aip + c*aiq
			a[q][i] = a[i][q]
		}
	}
	for i := 0; i < n; i++ {
		vip, viq := v[i][p], v[i][q]
		v[i][p] = c*vip - s*viq
		v[i][q] = s*vip + c*viq
	}
}
