// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

// PointPoint returns the point-point Feature for p and q.
func PointPoint(p, q []float64) *Feature {
	mustSameDim(p, q)
	return newFeature([][]float64{p, q}, []float64{1, -1})
}

// PointEdge returns the point-edge Feature for point p against segment a-b,
// clamping the projection parameter to [0,1] (so the feature degenerates to
// a point-point distance against whichever endpoint is closer once outside
// the segment).
func PointEdge(p, a, b []float64) *Feature {
	mustSameDim(p, a, b)
	e := sub(b, a)
	denom := dot(e, e)
	var t float64
	if denom > tiny {
		t = clamp01(dot(sub(p, a), e) / denom)
	}
	return newFeature([][]float64{p, a, b}, []float64{1, -(1 - t), -t})
}

// PointTriangle returns the point-triangle Feature for point p against
// triangle a-b-c, using Ericson's closest-point-on-triangle decomposition
// (Real-Time Collision Detection, §5.1.5) to resolve and clamp the
// barycentric coordinates to the triangle (including its edges and
// vertices).
func PointTriangle(p, a, b, c []float64) *Feature {
	mustSameDim(p, a, b, c)
	wa, wb, wc := closestBarycentric(p, a, b, c)
	return newFeature([][]float64{p, a, b, c}, []float64{1, -wa, -wb, -wc})
}

// EdgeEdge returns the edge-edge Feature for segment a-b against segment
// c-d, using the closest-point-between-segments decomposition (Real-Time
// Collision Detection, §5.1.9).
func EdgeEdge(a, b, c, d []float64) *Feature {
	mustSameDim(a, b, c, d)
	s, t := closestSegmentParams(a, b, c, d)
	return newFeature([][]float64{a, b, c, d}, []float64{1 - s, s, -(1 - t), -t})
}

// closestBarycentric returns the barycentric coordinates (wa,wb,wc) of the
// point on triangle a-b-c closest to p, clamped to the triangle's closed
// region (vertices, edges, and interior).
func closestBarycentric(p, a, b, c []float64) (wa, wb, wc float64) {
	ab := sub(b, a)
	ac := sub(c, a)
	ap := sub(p, a)
	d1 := dot(ab, ap)
	d2 := dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return 1, 0, 0 // vertex a
	}
	bp := sub(p, b)
	d3 := dot(ab, bp)
	d4 := dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return 0, 1, 0 // vertex b
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return 1 - v, v, 0 // edge a-b
	}
	cp := sub(p, c)
	d5 := dot(ab, cp)
	d6 := dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return 0, 0, 1 // vertex c
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return 1 - w, 0, w // edge a-c
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return 0, 1 - w, w // edge b-c
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return 1 - v - w, v, w // interior
}

// closestSegmentParams returns the parameters (s,t) in [0,1]^2 of the
// closest points on segment a-b and segment c-d, respectively.
func closestSegmentParams(a, b, c, d []float64) (s, t float64) {
	d1 := sub(b, a)
	d2 := sub(d, c)
	r := sub(a, c)
	A := dot(d1, d1)
	E := dot(d2, d2)
	F := dot(d2, r)

	if A <= tiny && E <= tiny {
		return 0, 0
	}
	if A <= tiny {
		return 0, clamp01(F / E)
	}
	C := dot(d1, r)
	if E <= tiny {
		return clamp01(-C / A), 0
	}
	B := dot(d1, d2)
	denom := A*E - B*B
	if denom > tiny {
		s = clamp01((B*F - C*E) / denom)
	}
	t = (B*s + F) / E
	if t < 0 {
		t = 0
		s = clamp01(-C / A)
	} else if t > 1 {
		t = 1
		s = clamp01((B - C) / A)
	}
	return s, t
}
