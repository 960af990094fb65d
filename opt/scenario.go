package opt

import (
	"math"

	"github.com/maseology/mmaths"
	"github.com/ricardo8r/urbanWater"
	"github.com/ricardo8r/urbanWater/forcing"
)

// SampleTankScenarios sweeps domain-wide rain tank sizing (capacity up to
// capmax [m³] and first flush up to ffmax [m³/timestep]) over n Latin
// hypercube samples, returning each scenario's total potable import over the
// record [m³]. Sample space and scores land under outdir.
func SampleTankScenarios(strc *urbanwater.Structure, par *urbanwater.Parameter, frc *forcing.Forcing, capmax, ffmax float64, n, nwrkrs int, outdir string) []float64 {

	gen := func(u []float64) float64 {
		p := *par
		p.Cells = make([]urbanwater.CellPar, len(par.Cells))
		copy(p.Cells, par.Cells)
		tcap := mmaths.LinearTransform(0., capmax, u[0])
		tff := mmaths.LinearTransform(0., ffmax, u[1])
		for i := range p.Cells {
			c := &p.Cells[i]
			if c.RoofArea > 0. {
				c.TankCap = tcap
				c.TankFF = tff
			}
		}

		ev, err := urbanwater.Initialize(nil, strc, &p, frc)
		if err != nil {
			return math.MaxFloat64
		}
		res, err := ev.Run()
		if err != nil {
			return math.MaxFloat64
		}
		imp := 0.
		for j := 0; j < res.Committed; j++ {
			imp += res.Glb[urbanwater.QImport][j]
		}
		return imp
	}

	return Sample(gen, n, 2, nwrkrs, outdir)
}
