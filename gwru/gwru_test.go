package gwru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testVadose() Vadose {
	return Vadose{
		Sto: 250., ThetaSat: 450., ThetaFC: 300., ThetaWP: 100.,
		ThetaLo: 150., ThetaHi: 225., ThetaEq: 250.,
		Ksat: 50., Capmax: 2., Dt: 1.,
	}
}

func TestVadoseSpace(t *testing.T) {
	v := testVadose()
	assert.Equal(t, 50., v.Space())
	v.Sto = 100.
	assert.Equal(t, 200., v.Space())
	v.Sto = 400.
	assert.Equal(t, 50., v.Space()) // conductivity keeps accepting above equilibrium
}

func TestVadosePercolation(t *testing.T) {
	v := testVadose()
	_, perc, caprise := v.Update(30., 0., 100.)
	assert.Equal(t, 30., perc) // everything above equilibrium drains
	assert.Zero(t, caprise)
	assert.Equal(t, 250., v.Sto)

	v.Sto = 250.
	_, perc, _ = v.Update(80., 0., 100.)
	assert.Equal(t, 50., perc) // conductivity-limited
	assert.Equal(t, 280., v.Sto)
}

func TestVadosePercolationMonotonic(t *testing.T) {
	last := -1.
	for _, finf := range []float64{0., 10., 20., 40., 80., 160.} {
		v := testVadose()
		_, perc, _ := v.Update(finf, 3., 100.)
		assert.GreaterOrEqual(t, perc, last)
		last = perc
	}
}

func TestVadoseCapillaryRise(t *testing.T) {
	v := testVadose()
	v.Sto = 200.
	_, perc, caprise := v.Update(0., 0., 100.)
	assert.Zero(t, perc)
	assert.Equal(t, 2., caprise) // Capmax-limited
	assert.Equal(t, 202., v.Sto)

	v.Sto = 249.5
	_, _, caprise = v.Update(0., 0., 100.)
	assert.InDelta(t, .5, caprise, 1e-12) // deficit-limited

	v.Sto = 200.
	_, _, caprise = v.Update(0., 0., .25)
	assert.Equal(t, .25, caprise) // groundwater-limited
}

func TestVadoseTranspiration(t *testing.T) {
	v := testVadose()
	v.Sto = 250. // between threshold and field capacity: no reduction
	ta, _, _ := v.Update(0., 3., 0.)
	assert.Equal(t, 3., ta)

	v = testVadose()
	v.Sto = 50. // below wilting: no transpiration
	ta, _, _ = v.Update(0., 3., 0.)
	assert.Zero(t, ta)

	v = testVadose()
	v.Sto = 125. // between wilting and threshold: ramped
	ta, _, _ = v.Update(0., .5, 0.) // low demand, threshold at ThetaLo
	assert.InDelta(t, .25, ta, 1e-12)
}

func TestVadoseMassClosure(t *testing.T) {
	for _, finf := range []float64{0., 5., 40., 120.} {
		for _, ep := range []float64{0., 2., 6.} {
			v := testVadose()
			v.Sto = 230.
			sto0 := v.Sto
			ta, perc, caprise := v.Update(finf, ep, 100.)
			assert.InDelta(t, finf+caprise-ta-perc, v.Sto-sto0, 1e-9)
		}
	}
}

func TestGroundwaterSeeding(t *testing.T) {
	g := NewGroundwater(5., 30., .2, 1000., .002, 0., 0., 1.)
	assert.Equal(t, 5000., g.Sto)
	assert.Equal(t, 5., g.Level())

	g = NewGroundwater(30., 30., .2, 1000., .002, 0., 0., 1.)
	assert.Zero(t, g.Sto)
	assert.Equal(t, 30., g.Level())
}

func TestGroundwaterBaseflowMonotonic(t *testing.T) {
	last := -1.
	for _, sto := range []float64{0., 100., 1000., 5000., 20000.} {
		g := NewGroundwater(30., 30., .2, 1000., .002, .0005, .05, 1.)
		g.Sto = sto
		base, _, _ := g.Update(0.)
		assert.GreaterOrEqual(t, base, last)
		last = base
	}
}

func TestGroundwaterOutflowCapped(t *testing.T) {
	g := NewGroundwater(30., 30., .2, 1000., .9, .9, 1000., 1.)
	g.Sto = 10.
	base, seep, pipe := g.Update(5.)
	assert.InDelta(t, 15., base+seep+pipe, 1e-9) // joint outflow drains, never overdraws
	assert.InDelta(t, 0., g.Sto, 1e-9)
}

func TestGroundwaterWithdraw(t *testing.T) {
	g := NewGroundwater(5., 30., .2, 1000., 0., 0., 0., 1.)
	assert.Equal(t, 100., g.Withdraw(100.))
	assert.Equal(t, 4900., g.Withdraw(1e9)) // bounded by storage
	assert.Zero(t, g.Sto)
}

func TestGroundwaterMassClosure(t *testing.T) {
	g := NewGroundwater(10., 30., .2, 1000., .01, .002, .1, 1.)
	for j := 0; j < 50; j++ {
		sto0 := g.Sto
		base, seep, pipe := g.Update(7.5)
		assert.InDelta(t, 7.5-base-seep-pipe, g.Sto-sto0, 1e-9)
	}
}
