// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp reads the recognized run options from a JSON file
package inp

import (
	"encoding/json"

	"github.com/alvarovm/denstoolkit/cpn"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Options holds the recognized configuration of a critical-point run.
// Zero values mean "keep the built-in default"
type Options struct {
	MaxIterationsACP int     `json:"maxIterationsACP"`
	MaxIterationsBCP int     `json:"maxIterationsBCP"`
	MaxIterationsRCP int     `json:"maxIterationsRCP"`
	MaxIterationsCCP int     `json:"maxIterationsCCP"`
	ExtendedSearch   bool    `json:"extendedSearch"`
	DrawNuclei       bool    `json:"drawNuclei"`
	DrawBonds        bool    `json:"drawBonds"`
	DrawBGPs         bool    `json:"drawBGPs"`
	TubeStyleBGP     bool    `json:"tubeStyleBGP"`
	BondPathStep     float64 `json:"bondPathStep"`
}

// ReadOptions reads an options JSON file; unknown keys are ignored
func ReadOptions(path string) (o *Options, err error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read options file %q", path)
	}
	o = new(Options)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal options file %q: %v", path, err)
	}
	return
}

// Apply copies the set options onto a network
func (o *Options) Apply(nw *cpn.Network) {
	if o.MaxIterationsACP > 0 {
		nw.MaxIt[cpn.ACP] = o.MaxIterationsACP
	}
	if o.MaxIterationsBCP > 0 {
		nw.MaxIt[cpn.BCP] = o.MaxIterationsBCP
	}
	if o.MaxIterationsRCP > 0 {
		nw.MaxIt[cpn.RCP] = o.MaxIterationsRCP
	}
	if o.MaxIterationsCCP > 0 {
		nw.MaxIt[cpn.CCP] = o.MaxIterationsCCP
	}
	nw.ExtSearch = o.ExtendedSearch
	nw.DrawNuc = o.DrawNuclei
	nw.DrawBnd = o.DrawBonds
	nw.DrawBGPs = o.DrawBGPs
	nw.TubeBGP = o.TubeStyleBGP
	if o.BondPathStep > 0 {
		nw.BondPathStep = o.BondPathStep
	}
}
