// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package broadphase

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ccdbarrier/mesh"
)

func Test_broadphase_vv_close_pair(tst *testing.T) {
	chk.PrintTitle("broadphase_vv_close_pair. two close vertices produce a VV candidate")
	v := [][]float64{{0, 0, 0}, {0.001, 0, 0}, {100, 100, 100}}
	m := mesh.New(v, nil, nil)
	cands := Candidates(m, v, 1.0)
	found := false
	for _, c := range cands {
		if c.I == 0 && c.J == 1 {
			found = true
		}
	}
	if !found {
		tst.Fatal("expected a VV(0,1) candidate among close vertices")
	}
	for _, c := range cands {
		if c.I == 2 || c.J == 2 {
			tst.Fatal("distant vertex 2 must not appear in any candidate")
		}
	}
}

func Test_broadphase_vf_skips_own_vertex(tst *testing.T) {
	chk.PrintTitle("broadphase_vf_skips_own_vertex. a face never candidates against its own vertex")
	v := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	f := [][3]int{{0, 1, 2}}
	m := mesh.New(v, nil, f)
	cands := Candidates(m, v, 5.0)
	for _, c := range cands {
		if c.Kind.String() == "vertex-face" && c.F == 0 && (c.I == 0 || c.I == 1 || c.I == 2) {
			tst.Fatal("face's own vertex must not generate a VertexFace candidate")
		}
	}
}

func Test_broadphase_ee_skips_shared_vertex(tst *testing.T) {
	chk.PrintTitle("broadphase_ee_skips_shared_vertex. adjacent edges are not candidated")
	v := [][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	e := [][2]int{{0, 1}, {1, 2}}
	m := mesh.New(v, e, nil)
	cands := Candidates(m, v, 5.0)
	for _, c := range cands {
		if c.Kind.String() == "edge-edge" {
			tst.Fatal("adjacent edges sharing vertex 1 must not produce an EE candidate")
		}
	}
}
