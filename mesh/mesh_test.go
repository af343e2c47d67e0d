// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mesh_basic01(tst *testing.T) {
	chk.PrintTitle("mesh_basic01. valid 3D mesh with one edge and one face")
	v := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	e := [][2]int{{0, 1}}
	f := [][3]int{{0, 1, 2}}
	m := New(v, e, f)
	if m.NumVerts() != 3 {
		tst.Fatalf("expected 3 vertices, got %d", m.NumVerts())
	}
	if m.NumDofs() != 9 {
		tst.Fatalf("expected 9 dofs, got %d", m.NumDofs())
	}
	if m.Dim != 3 {
		tst.Fatalf("expected dim=3, got %d", m.Dim)
	}
}

func Test_mesh_bbox_diagonal(tst *testing.T) {
	chk.PrintTitle("mesh_bbox_diagonal. unit cube corners give diagonal sqrt(3)")
	v := [][]float64{{0, 0, 0}, {1, 1, 1}}
	chk.Float64(tst, "diag", 1e-15, BBoxDiagonal(v), 1.7320508075688772)
}

func Test_mesh_bbox_diagonal_empty(tst *testing.T) {
	chk.PrintTitle("mesh_bbox_diagonal_empty. empty vertex table has zero diagonal")
	chk.Float64(tst, "diag", 1e-15, BBoxDiagonal(nil), 0)
}

func Test_mesh_bad_dim_panics(tst *testing.T) {
	chk.PrintTitle("mesh_bad_dim_panics. 1D vertices are rejected")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected a panic for an invalid dimension")
		}
	}()
	New([][]float64{{0}, {1}}, nil, nil)
}

func Test_mesh_out_of_range_edge_panics(tst *testing.T) {
	chk.PrintTitle("mesh_out_of_range_edge_panics. edge index beyond vertex count is rejected")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected a panic for an out-of-range edge index")
		}
	}()
	v := [][]float64{{0, 0, 0}, {1, 0, 0}}
	New(v, [][2]int{{0, 5}}, nil)
}

func Test_mesh_duplicate_face_vertex_panics(tst *testing.T) {
	chk.PrintTitle("mesh_duplicate_face_vertex_panics. degenerate triangle is rejected")
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected a panic for a degenerate face")
		}
	}()
	v := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	New(v, nil, [][3]int{{0, 0, 1}})
}

func Test_mesh_must_match(tst *testing.T) {
	chk.PrintTitle("mesh_must_match. mismatched V0/V1 vertex counts panic")
	m := New([][]float64{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected a panic for a mismatched vertex count")
		}
	}()
	m.MustMatch([][]float64{{0, 0, 0}, {1, 0, 0}}, [][]float64{{0, 0, 0}})
}
