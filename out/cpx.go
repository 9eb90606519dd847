// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out persists critical-point networks: the plain-text .cpx format
// and the auxiliary coordinate files consumed by plotting collaborators
package out

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/alvarovm/denstoolkit/cpn"
	"github.com/cpmech/gosl/io"
)

// Magic is the .cpx header line
const Magic = "#CPXv1"

// InputError describes a malformed input file, naming the offending file and
// byte offset
type InputError struct {
	File   string
	Offset int
	Msg    string
}

// Error returns the diagnostic
func (e *InputError) Error() string {
	return io.Sf("%s: byte %d: %s", e.File, e.Offset, e.Msg)
}

// Data carries the serializable tables of a network
type Data struct {
	ACPs, BCPs, RCPs, CCPs []cpn.CritPt
	AtBCP                  [][2]int
	BGPs                   [][][]float64 // nil entries allowed (no path)
}

// FromNetwork copies the network tables into a serializable Data
func FromNetwork(nw *cpn.Network) (o *Data) {
	o = new(Data)
	o.ACPs, o.BCPs, o.RCPs, o.CCPs = nw.ACPs, nw.BCPs, nw.RCPs, nw.CCPs
	o.AtBCP = nw.AtBCP
	o.BGPs = nw.BGPs
	return
}

// nBGP counts the bond paths present
func (o *Data) nBGP() (n int) {
	for _, p := range o.BGPs {
		if len(p) > 0 {
			n++
		}
	}
	return
}

// WriteCPX writes the network tables to fnam in the .cpx format. A
// write-then-read of the produced file reconstructs positions, labels, BCP
// attractor pairs and bond paths exactly; field values are not stored and
// signatures are restored from the block each record lives in
func WriteCPX(fnam string, o *Data) {
	var b bytes.Buffer
	io.Ff(&b, "%s\n", Magic)
	io.Ff(&b, "%d %d %d %d %d\n", len(o.ACPs), len(o.BCPs), len(o.RCPs), len(o.CCPs), o.nBGP())
	for i, cp := range o.ACPs {
		io.Ff(&b, "%d %s %.16e %.16e %.16e\n", i, lblOrDash(cp.Lbl), cp.X[0], cp.X[1], cp.X[2])
	}
	for i, cp := range o.BCPs {
		io.Ff(&b, "%d %s %.16e %.16e %.16e %d %d\n", i, lblOrDash(cp.Lbl), cp.X[0], cp.X[1], cp.X[2],
			o.AtBCP[i][0], o.AtBCP[i][1])
	}
	for i, cp := range o.RCPs {
		io.Ff(&b, "%d %s %.16e %.16e %.16e\n", i, lblOrDash(cp.Lbl), cp.X[0], cp.X[1], cp.X[2])
	}
	for i, cp := range o.CCPs {
		io.Ff(&b, "%d %s %.16e %.16e %.16e\n", i, lblOrDash(cp.Lbl), cp.X[0], cp.X[1], cp.X[2])
	}
	for i, path := range o.BGPs {
		if len(path) == 0 {
			continue
		}
		io.Ff(&b, "%d %d", i, len(path))
		for _, p := range path {
			io.Ff(&b, " %.16e %.16e %.16e", p[0], p[1], p[2])
		}
		io.Ff(&b, "\n")
	}
	io.WriteFileV(fnam, &b)
}

// lblOrDash keeps empty labels round-trippable
func lblOrDash(l string) string {
	if l == "" {
		return "-"
	}
	return l
}

func dashToLbl(l string) string {
	if l == "-" {
		return ""
	}
	return l
}

// lineScanner walks a byte slice line by line, remembering the byte offset
// of the current line
type lineScanner struct {
	data []byte
	pos  int

	Line   string
	Offset int
}

func (o *lineScanner) next() bool {
	o.Offset = o.pos
	if o.pos >= len(o.data) {
		return false
	}
	end := o.pos
	for end < len(o.data) && o.data[end] != '\n' {
		end++
	}
	o.Line = string(o.data[o.pos:end])
	o.pos = end + 1
	return true
}

// ReadCPX reads a .cpx file and reconstructs the network tables.
// Malformed content yields an InputError naming the byte offset
func ReadCPX(fnam string) (o *Data, err error) {
	raw, err := io.ReadFile(fnam)
	if err != nil {
		return nil, &InputError{File: fnam, Offset: 0, Msg: "cannot read file"}
	}
	sc := &lineScanner{data: raw}
	fail := func(msg string) (*Data, error) {
		return nil, &InputError{File: fnam, Offset: sc.Offset, Msg: msg}
	}
	if !sc.next() || strings.TrimSpace(sc.Line) != Magic {
		return fail(io.Sf("missing %s header", Magic))
	}
	if !sc.next() {
		return fail("missing block counts")
	}
	counts := strings.Fields(sc.Line)
	if len(counts) != 5 {
		return fail("expected 5 block counts")
	}
	var nn [5]int
	for i, c := range counts {
		nn[i], err = strconv.Atoi(c)
		if err != nil || nn[i] < 0 {
			return fail(io.Sf("bad block count %q", c))
		}
	}
	o = new(Data)
	readCP := func(withAt bool) (cp cpn.CritPt, at [2]int, e error) {
		if !sc.next() {
			e = &InputError{File: fnam, Offset: sc.Offset, Msg: "unexpected end of file in CP block"}
			return
		}
		f := strings.Fields(sc.Line)
		want := 5
		if withAt {
			want = 7
		}
		if len(f) != want {
			e = &InputError{File: fnam, Offset: sc.Offset, Msg: io.Sf("expected %d fields, got %d", want, len(f))}
			return
		}
		cp.Lbl = dashToLbl(f[1])
		cp.X = make([]float64, 3)
		for k := 0; k < 3; k++ {
			cp.X[k], e = strconv.ParseFloat(f[2+k], 64)
			if e != nil {
				e = &InputError{File: fnam, Offset: sc.Offset, Msg: io.Sf("bad coordinate %q", f[2+k])}
				return
			}
		}
		if withAt {
			for k := 0; k < 2; k++ {
				at[k], e = strconv.Atoi(f[5+k])
				if e != nil {
					e = &InputError{File: fnam, Offset: sc.Offset, Msg: io.Sf("bad ACP index %q", f[5+k])}
					return
				}
			}
		}
		return
	}
	for i := 0; i < nn[0]; i++ {
		cp, _, e := readCP(false)
		if e != nil {
			return nil, e
		}
		cp.Sig = cpn.ACP.Signature()
		o.ACPs = append(o.ACPs, cp)
	}
	for i := 0; i < nn[1]; i++ {
		cp, at, e := readCP(true)
		if e != nil {
			return nil, e
		}
		cp.Sig = cpn.BCP.Signature()
		o.BCPs = append(o.BCPs, cp)
		o.AtBCP = append(o.AtBCP, at)
	}
	for i := 0; i < nn[2]; i++ {
		cp, _, e := readCP(false)
		if e != nil {
			return nil, e
		}
		cp.Sig = cpn.RCP.Signature()
		o.RCPs = append(o.RCPs, cp)
	}
	for i := 0; i < nn[3]; i++ {
		cp, _, e := readCP(false)
		if e != nil {
			return nil, e
		}
		cp.Sig = cpn.CCP.Signature()
		o.CCPs = append(o.CCPs, cp)
	}
	o.BGPs = make([][][]float64, nn[1])
	for i := 0; i < nn[4]; i++ {
		if !sc.next() {
			return fail("unexpected end of file in bond-path block")
		}
		f := strings.Fields(sc.Line)
		if len(f) < 2 {
			return fail("bond-path record too short")
		}
		bi, e := strconv.Atoi(f[0])
		if e != nil || bi < 0 || bi >= nn[1] {
			return fail(io.Sf("bad BCP index %q", f[0]))
		}
		np, e := strconv.Atoi(f[1])
		if e != nil || np < 0 || len(f) != 2+3*np {
			return fail(io.Sf("bond-path record for BCP %d has wrong point count", bi))
		}
		path := make([][]float64, np)
		for p := 0; p < np; p++ {
			path[p] = make([]float64, 3)
			for k := 0; k < 3; k++ {
				path[p][k], e = strconv.ParseFloat(f[2+3*p+k], 64)
				if e != nil {
					return fail(io.Sf("bad bond-path coordinate %q", f[2+3*p+k]))
				}
			}
		}
		o.BGPs[bi] = path
	}
	return
}
