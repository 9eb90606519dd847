// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wfn

// MaxPrimType is the largest primitive-type code supported; the table below
// covers Cartesian s, p, d, f, g and h shells in the standard wfn/wfx ordering
const MaxPrimType = 56

// prTy maps primitive-type codes (1..56) to angular exponent triples (l,m,n).
// Codes 1..20 follow the AIMPAC wfn assignments; 21..56 follow the wfx
// standard ordering for g and h shells. The table must not be reordered:
// wavefunction files store these codes verbatim.
var prTy = [MaxPrimType + 1][3]int{
	{0, 0, 0}, // 0: unused

	// s
	{0, 0, 0},

	// p
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},

	// d
	{2, 0, 0}, {0, 2, 0}, {0, 0, 2},
	{1, 1, 0}, {1, 0, 1}, {0, 1, 1},

	// f
	{3, 0, 0}, {0, 3, 0}, {0, 0, 3},
	{2, 1, 0}, {2, 0, 1}, {0, 2, 1},
	{1, 2, 0}, {1, 0, 2}, {0, 1, 2},
	{1, 1, 1},

	// g
	{0, 0, 4}, {0, 1, 3}, {0, 2, 2}, {0, 3, 1}, {0, 4, 0},
	{1, 0, 3}, {1, 1, 2}, {1, 2, 1}, {1, 3, 0},
	{2, 0, 2}, {2, 1, 1}, {2, 2, 0},
	{3, 0, 1}, {3, 1, 0},
	{4, 0, 0},

	// h
	{0, 0, 5}, {0, 1, 4}, {0, 2, 3}, {0, 3, 2}, {0, 4, 1}, {0, 5, 0},
	{1, 0, 4}, {1, 1, 3}, {1, 2, 2}, {1, 3, 1}, {1, 4, 0},
	{2, 0, 3}, {2, 1, 2}, {2, 2, 1}, {2, 3, 0},
	{3, 0, 2}, {3, 1, 1}, {3, 2, 0},
	{4, 0, 1}, {4, 1, 0},
	{5, 0, 0},
}

// AngExp returns the angular exponent triple (l,m,n) of a primitive-type code
func AngExp(ptype int) (l, m, n int) {
	return prTy[ptype][0], prTy[ptype][1], prTy[ptype][2]
}
