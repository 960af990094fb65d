package urbanwater

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ricardo8r/urbanWater/forcing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformForcing(nt, nc int, p, ep float64) *forcing.Forcing {
	ts := make([]time.Time, nt)
	ps, es := make([]float64, nt), make([]float64, nt)
	for j := 0; j < nt; j++ {
		ts[j] = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, j)
		ps[j], es[j] = p, ep
	}
	return &forcing.Forcing{T: ts, P: [][]float64{ps}, Ep: [][]float64{es}, XR: make([]int, nc)}
}

// roofOnlyPar keeps only a roof draining the sewer; everything else inert.
func roofOnlyPar(roofArea float64) CellPar {
	return CellPar{
		RoofArea: roofArea, RoofFeff: 1., TankFeff: 1., PavFeff: 1.,
		Sy: .2, Dmax: 10., Gwl0: 10.,
	}
}

// testDomain is a seven-cell domain: two three-cell branches joining at an
// outlet cell, mixed components throughout.
func testDomain(t *testing.T) (*Structure, *Parameter, *forcing.Forcing) {
	t.Helper()
	cids := []int{1, 2, 3, 4, 5, 6, 7}
	down := map[int]int{1: 2, 2: 3, 3: 7, 4: 5, 5: 6, 6: 7, 7: -1}
	area := make(map[int]float64, len(cids))
	for _, c := range cids {
		area[c] = 1000.
	}
	strc, err := NewStructure(cids, down, nil, area)
	require.NoError(t, err)

	par := Parameter{Cells: make([]CellPar, len(cids)), Dt: 1.}
	for i := range par.Cells {
		c := DefaultCellPar()
		switch i % 3 {
		case 0:
			c.TankCap, c.TankFF = 5., .2
		case 1:
			c.SwsCap, c.SwsFF = 20., .5
			c.Reuse = ReuseSpec{Source: ReuseStormwater, Cap: .4}
			c.FswWw = .1
		case 2:
			c.WwsCap = 15.
		}
		par.Cells[i] = c
	}

	nt := 30
	ts := make([]time.Time, nt)
	ps, es := make([]float64, nt), make([]float64, nt)
	for j := 0; j < nt; j++ {
		ts[j] = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, j)
		ps[j] = float64((j * 7) % 13)
		es[j] = 2. + float64(j%5)*.5
	}
	frc := &forcing.Forcing{T: ts, P: [][]float64{ps}, Ep: [][]float64{es}, XR: make([]int, len(cids))}
	return strc, &par, frc
}

func TestSingleCellRoofDischarge(t *testing.T) {
	strc, err := NewStructure([]int{1}, map[int]int{1: -1}, nil, map[int]float64{1: 100.})
	require.NoError(t, err)
	par := &Parameter{Cells: []CellPar{roofOnlyPar(100.)}, Dt: 1.}

	ev, err := Initialize(nil, strc, par, uniformForcing(1, 1, 10., 0.))
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	// 10mm on 100m² of roof
	assert.InDelta(t, 1., res.Hyd[0], 1e-9)
	assert.InDelta(t, 10., res.GlobalDepth(QPrecip)[0], 1e-9)
	assert.Zero(t, res.WwHyd[0])
}

func TestTwoCellSameStepRouting(t *testing.T) {
	strc, err := NewStructure([]int{1, 2}, map[int]int{1: 2, 2: -1}, nil, map[int]float64{1: 100., 2: 100.})
	require.NoError(t, err)
	par := &Parameter{Cells: []CellPar{roofOnlyPar(100.), roofOnlyPar(0.)}, Dt: 1.}

	ev, err := Initialize(nil, strc, par, uniformForcing(1, 2, 10., 0.))
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	// the upstream cell's discharge passes through within the step
	assert.InDelta(t, 1., res.Q[QStormIn][1][0], 1e-9)
	assert.InDelta(t, 1., res.Q[QStormOut][1][0], 1e-9)
	assert.InDelta(t, 1., res.Hyd[0], 1e-9)
}

func TestDelayedEdgeRouting(t *testing.T) {
	strc, err := NewStructure([]int{1, 2}, map[int]int{1: 2, 2: 1}, map[int]bool{1: true}, map[int]float64{1: 100., 2: 100.})
	require.NoError(t, err)
	par := &Parameter{Cells: []CellPar{roofOnlyPar(100.), roofOnlyPar(0.)}, Dt: 1.}

	frc := uniformForcing(2, 2, 0., 0.)
	frc.P[0][0] = 10.
	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	// the delayed reach holds its outflow one step
	assert.Zero(t, res.Q[QStormIn][1][0])
	assert.InDelta(t, 1., res.Q[QStormIn][1][1], 1e-9)
	assert.InDelta(t, 1., res.Q[QStormIn][0][1], 1e-9)
}

func TestDeterminism(t *testing.T) {
	run := func() *Results {
		strc, par, frc := testDomain(t)
		ev, err := Initialize(nil, strc, par, frc)
		require.NoError(t, err)
		res, err := ev.Run()
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	require.Equal(t, a.Hyd, b.Hyd)
	require.Equal(t, a.WwHyd, b.WwHyd)
	require.Equal(t, a.Glb, b.Glb)
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(parallel bool) *Results {
		strc, par, frc := testDomain(t)
		ev, err := Initialize(&Config{StepDays: 1., Parallel: parallel}, strc, par, frc)
		require.NoError(t, err)
		res, err := ev.Run()
		require.NoError(t, err)
		return res
	}
	ser, con := run(false), run(true)
	require.Equal(t, ser.Hyd, con.Hyd)
	require.Equal(t, ser.WwHyd, con.WwHyd)
	require.Equal(t, ser.Q, con.Q)
}

func TestMassClosure(t *testing.T) {
	strc, par, frc := testDomain(t)
	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	sto0 := 0.
	for i := range par.Cells {
		cs := newCellState(&par.Cells[i], strc.Area[i], par.Dt)
		sto0 += cs.Storage()
	}
	for j := 0; j < res.Committed; j++ {
		assert.Less(t, math.Abs(res.Glb[QWbal][j]), 1e-6)
		in := res.Glb[QPrecip][j] + res.Glb[QGrey][j]
		out := res.Glb[QAet][j] + res.Glb[QSeep][j] + res.Glb[QTankSup][j] +
			res.Glb[QReuse][j] + res.Hyd[j] + res.WwHyd[j]
		assert.InDelta(t, in-out, res.Glb[QSto][j]-sto0, 1e-6, "step %d", j)
		sto0 = res.Glb[QSto][j]
	}
}

func TestTankSupplyAndImport(t *testing.T) {
	strc, err := NewStructure([]int{1}, map[int]int{1: -1}, nil, map[int]float64{1: 300.})
	require.NoError(t, err)
	c := roofOnlyPar(300.)
	c.TankCap = 5.
	c.IndoorUse = 4.
	par := &Parameter{Cells: []CellPar{c}, Dt: 1.}

	ev, err := Initialize(nil, strc, par, uniformForcing(1, 1, 10., 0.))
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	// 3m³ harvested against a 4m³ demand: the shortfall is imported
	assert.InDelta(t, 3., res.Q[QTankSup][0][0], 1e-9)
	assert.InDelta(t, 1., res.Q[QImport][0][0], 1e-9)
	assert.Zero(t, res.Hyd[0])
}

func TestReuseBounded(t *testing.T) {
	strc, err := NewStructure([]int{1}, map[int]int{1: -1}, nil, map[int]float64{1: 100.})
	require.NoError(t, err)
	c := roofOnlyPar(100.)
	c.SwsCap = 10.
	c.IndoorUse = 2.
	c.Reuse = ReuseSpec{Source: ReuseStormwater, Cap: .5}
	par := &Parameter{Cells: []CellPar{c}, Dt: 1.}

	ev, err := Initialize(nil, strc, par, uniformForcing(1, 1, 10., 0.))
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	// 1m³ held in the store; the device draws its .5m³ capacity
	assert.InDelta(t, .5, res.Q[QReuse][0][0], 1e-9)
	assert.InDelta(t, 1.5, res.Q[QImport][0][0], 1e-9)
	assert.Zero(t, res.Hyd[0])
}

func TestInputDataErrorRollsBack(t *testing.T) {
	strc, err := NewStructure([]int{1}, map[int]int{1: -1}, nil, map[int]float64{1: 100.})
	require.NoError(t, err)
	par := &Parameter{Cells: []CellPar{roofOnlyPar(100.)}, Dt: 1.}
	frc := uniformForcing(3, 1, 10., 0.)

	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	frc.P[0][1] = math.NaN() // corrupt after validation

	res, err := ev.Run()
	require.Error(t, err)
	var ierr *InputDataError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 1, ierr.Cell)
	assert.Equal(t, 1, ierr.Step)

	// the first step stays committed, the failed one leaves no trace
	assert.Equal(t, 1, res.Committed)
	assert.InDelta(t, 1., res.Hyd[0], 1e-9)
	assert.Equal(t, 1, ev.Step())
}

func TestComponentStateErrorRollsBack(t *testing.T) {
	strc, par, frc := testDomain(t)
	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	require.NoError(t, ev.doStep(0))
	ev.sta[2].Gw.Sto = math.NaN() // corrupt a committed component state

	res, err := ev.Run()
	require.Error(t, err)
	var serr *ComponentStateError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 3, serr.Cell)
	assert.Equal(t, 1, serr.Step)

	// the failed step leaves no trace in the record
	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 1, ev.Step())
}

func TestInitializeRejectsBadSetup(t *testing.T) {
	strc, err := NewStructure([]int{1}, map[int]int{1: -1}, nil, map[int]float64{1: 100.})
	require.NoError(t, err)

	c := roofOnlyPar(100.)
	c.RoofFeff = .5 // spill with no pervious surface to land on
	_, err = Initialize(nil, strc, &Parameter{Cells: []CellPar{c}, Dt: 1.}, uniformForcing(1, 1, 0., 0.))
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))

	frc := uniformForcing(1, 1, 0., 0.)
	frc.P[0][0] = -1.
	_, err = Initialize(nil, strc, &Parameter{Cells: []CellPar{roofOnlyPar(100.)}, Dt: 1.}, frc)
	var ierr *InputDataError
	require.True(t, errors.As(err, &ierr))
}

func TestCheckpointResume(t *testing.T) {
	full := func() *Results {
		strc, par, frc := testDomain(t)
		ev, err := Initialize(nil, strc, par, frc)
		require.NoError(t, err)
		res, err := ev.Run()
		require.NoError(t, err)
		return res
	}()

	strc, par, frc := testDomain(t)
	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	for j := 0; j < 15; j++ {
		require.NoError(t, ev.doStep(j))
	}
	fp := filepath.Join(t.TempDir(), "chk.gob")
	require.NoError(t, ev.SaveCheckpoint(fp))

	strc2, par2, frc2 := testDomain(t)
	ev2, err := Initialize(nil, strc2, par2, frc2)
	require.NoError(t, err)
	require.NoError(t, ev2.ResumeCheckpoint(fp))
	assert.Equal(t, 15, ev2.Step())
	res, err := ev2.Run()
	require.NoError(t, err)

	require.Equal(t, full.Hyd, res.Hyd)
	require.Equal(t, full.WwHyd, res.WwHyd)
	require.Equal(t, full.Glb, res.Glb)
}

func TestRunCheckpointsOnSchedule(t *testing.T) {
	strc, par, frc := testDomain(t)
	fp := filepath.Join(t.TempDir(), "chk.gob")
	ev, err := Initialize(&Config{StepDays: 1., ChkptFile: fp, ChkptEvery: 10}, strc, par, frc)
	require.NoError(t, err)
	_, err = ev.Run()
	require.NoError(t, err)
	_, err = os.Stat(fp)
	require.NoError(t, err)
}

func TestCellSeries(t *testing.T) {
	strc, par, frc := testDomain(t)
	ev, err := Initialize(nil, strc, par, frc)
	require.NoError(t, err)
	res, err := ev.Run()
	require.NoError(t, err)

	m, err := res.CellSeries(7)
	require.NoError(t, err)
	assert.Len(t, m["stormout"], res.Committed)
	assert.Equal(t, res.Hyd, m["stormout"]) // cell 7 is the outlet

	_, err = res.CellSeries(99)
	require.Error(t, err)
}
