// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

// NIHV is the number of probe directions: the origin, the 12 vertices of a
// regular icosahedron and the three coordinate axes
const NIHV = 16

// icosahedron vertex constants; v5 and v8 are the two coordinates of a unit
// icosahedron vertex (v5² + v8² = 1, v5/v8 = golden ratio)
const (
	v0 = 0.0
	v5 = 0.850650808352039932
	v8 = 0.525731112119133606
)

// IHV holds the probe directions used to place seed points on a shell around
// a center: row 0 is the origin (the center itself), rows 1..12 are the unit
// vertices of a regular icosahedron and rows 13..15 the coordinate axes
var IHV = [NIHV][3]float64{
	{v0, v0, v0},
	{-v8, v0, v5},
	{v8, v0, v5},
	{-v8, v0, -v5},
	{v8, v0, -v5},
	{v0, v5, v8},
	{v0, v5, -v8},
	{v0, -v5, v8},
	{v0, -v5, -v8},
	{v5, v8, v0},
	{-v5, v8, v0},
	{v5, -v8, v0},
	{-v5, -v8, v0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}
