package cell

import (
	"testing"

	"github.com/maseology/goHydro/hru"
	"github.com/stretchr/testify/assert"
)

func TestRoofRunoff(t *testing.T) {
	r := Roof{Ret: hru.Res{Cap: 0.}, Area: 100., Feff: 1.}
	ae, eff, noneff := r.Update(10., 0.)
	assert.Zero(t, ae)
	assert.Equal(t, 10., eff)
	assert.Zero(t, noneff)
}

func TestRoofRetentionAndSplit(t *testing.T) {
	r := Roof{Ret: hru.Res{Cap: 2.}, Area: 100., Feff: .8}
	ae, eff, noneff := r.Update(10., 1.)

	// 2mm retained, 8mm excess split 80/20, 1mm evaporated from retention
	assert.Equal(t, 1., ae)
	assert.InDelta(t, 6.4, eff, 1e-12)
	assert.InDelta(t, 1.6, noneff, 1e-12)
	assert.InDelta(t, 1., r.Ret.Sto, 1e-12)

	// mass closes over the step
	assert.InDelta(t, 10., ae+eff+noneff+r.Ret.Sto, 1e-12)
}

func TestRoofEvaporationBounded(t *testing.T) {
	r := Roof{Ret: hru.Res{Cap: 5.}, Area: 100., Feff: 1.}
	ae, _, _ := r.Update(1., 3.)
	assert.Equal(t, 1., ae) // cannot evaporate more than held
	assert.Zero(t, r.Ret.Sto)
}

func TestRainTankSupplyBounded(t *testing.T) {
	tk := RainTank{Tank: hru.Res{Cap: 5.}, Feff: 1.}
	sup, toStorm, toPav := tk.Update(3., 4.)
	assert.Equal(t, 3., sup)
	assert.Zero(t, toStorm)
	assert.Zero(t, toPav)
	assert.Zero(t, tk.Tank.Sto)
}

func TestRainTankOverflow(t *testing.T) {
	tk := RainTank{Tank: hru.Res{Sto: 4., Cap: 5.}, Feff: .75}
	sup, toStorm, toPav := tk.Update(3., 0.)
	assert.Zero(t, sup)
	assert.InDelta(t, 1.5, toStorm, 1e-12)
	assert.InDelta(t, .5, toPav, 1e-12)
	assert.Equal(t, 5., tk.Tank.Sto)
}

func TestRainTankFirstFlush(t *testing.T) {
	tk := RainTank{Tank: hru.Res{Cap: 10.}, FirstFlush: 1., Feff: 1.}
	sup, toStorm, toPav := tk.Update(3., 0.)
	assert.Zero(t, sup)
	assert.Equal(t, 1., toStorm)
	assert.Zero(t, toPav)
	assert.Equal(t, 2., tk.Tank.Sto)
}

func TestRainTankDisabledPassesThrough(t *testing.T) {
	tk := RainTank{Tank: hru.Res{Cap: 0.}, Feff: .6}
	sup, toStorm, toPav := tk.Update(2., 5.)
	assert.Zero(t, sup)
	assert.InDelta(t, 1.2, toStorm, 1e-12)
	assert.InDelta(t, .8, toPav, 1e-12)
}

func TestPavementInfiltrationBounded(t *testing.T) {
	pv := Pavement{Det: hru.Res{Cap: 1.}, Area: 200., Feff: 1., Fc: 4., Dt: 1.}
	ae, finf, eff, noneff := pv.Update(10., 0., 0.)
	assert.Zero(t, ae)
	assert.Equal(t, 4., finf) // capacity-limited
	assert.Equal(t, 5., eff)
	assert.Zero(t, noneff)
	assert.Equal(t, 1., pv.Det.Sto)
	assert.InDelta(t, 10., ae+finf+eff+noneff+pv.Det.Sto, 1e-12)
}

func TestPavementInfiltrationSupplyLimited(t *testing.T) {
	pv := Pavement{Det: hru.Res{Cap: 0.}, Area: 200., Feff: 1., Fc: 100., Dt: 1.}
	_, finf, eff, _ := pv.Update(3., 0., 0.)
	assert.Equal(t, 3., finf) // no more than the excess
	assert.Zero(t, eff)
}

func TestPerviousPartition(t *testing.T) {
	// held water short of total demand: the time factor prorates both draws
	pv := Pervious{Det: hru.Res{Cap: 20.}, Area: 500., Fc: 6., Dt: 1.}
	ae, finf, over := pv.Update(4., 2., 0., 100.)
	// avail=4, demand=ep+fc=8, tf=.5
	assert.InDelta(t, 1., ae, 1e-12)
	assert.InDelta(t, 3., finf, 1e-12)
	assert.Zero(t, over)
	assert.InDelta(t, 0., pv.Det.Sto, 1e-12)
}

func TestPerviousOverflowAndMass(t *testing.T) {
	pv := Pervious{Det: hru.Res{Sto: 2., Cap: 5.}, Area: 500., Fc: 2., Dt: 1.}
	p, ep, run := 10., 1., 3.
	ae, finf, over := pv.Update(p, ep, run, 100.)
	// avail=15 covers the full demand of 3; 12 remains against a 5mm capacity
	assert.Equal(t, 1., ae)
	assert.Equal(t, 2., finf)
	assert.InDelta(t, 7., over, 1e-12)
	assert.Equal(t, 5., pv.Det.Sto)
	assert.InDelta(t, 2.+p+run, ae+finf+over+pv.Det.Sto, 1e-12)
}

func TestPerviousInfiltrationBoundedBySpace(t *testing.T) {
	pv := Pervious{Det: hru.Res{Cap: 50.}, Area: 500., Fc: 100., Dt: 1.}
	_, finf, _ := pv.Update(30., 0., 0., 4.)
	assert.Equal(t, 4., finf)
}
