// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alvarovm/denstoolkit/cpn"
	"github.com/alvarovm/denstoolkit/wfn"
	"github.com/cpmech/gosl/chk"
)

func Test_opts01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opts01. read options and apply to a network")

	content := `{
		"maxIterationsBCP" : 120,
		"extendedSearch"   : true,
		"drawBGPs"         : true,
		"tubeStyleBGP"     : true,
		"bondPathStep"     : 0.05,
		"someFutureOption" : "ignored"
	}`
	fnam := filepath.Join(tst.TempDir(), "opts.json")
	if err := os.WriteFile(fnam, []byte(content), 0644); err != nil {
		tst.Errorf("cannot write options file: %v\n", err)
		return
	}

	o, err := ReadOptions(fnam)
	if err != nil {
		tst.Errorf("read failed: %v\n", err)
		return
	}
	chk.IntAssert(o.MaxIterationsBCP, 120)
	chk.IntAssert(o.MaxIterationsACP, 0)

	nw := cpn.NewNetwork(wfn.NewTestH2())
	o.Apply(nw)
	chk.IntAssert(nw.MaxIt[cpn.BCP], 120)
	chk.IntAssert(nw.MaxIt[cpn.ACP], cpn.DefMaxItACP)
	chk.Scalar(tst, "bondPathStep", 1e-15, nw.BondPathStep, 0.05)
	if !nw.ExtSearch || !nw.DrawBGPs || !nw.TubeBGP {
		tst.Errorf("boolean options not applied\n")
		return
	}
}

func Test_opts02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opts02. missing and malformed option files")

	if _, err := ReadOptions("/no/such/file.json"); err == nil {
		tst.Errorf("missing file should fail\n")
		return
	}
	fnam := filepath.Join(tst.TempDir(), "bad.json")
	if err := os.WriteFile(fnam, []byte("{ not json"), 0644); err != nil {
		tst.Errorf("cannot write options file: %v\n", err)
		return
	}
	if _, err := ReadOptions(fnam); err == nil {
		tst.Errorf("malformed file should fail\n")
	}
}
