package opt

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/ricardo8r/urbanWater"
	"github.com/ricardo8r/urbanWater/forcing"
)

const ndim = 5

// CalibrateDomain fits five domain-wide scalers (roof retention, pavement
// and pervious infiltration capacities, root-zone conductivity and the
// baseflow recession) to an observed outlet hydrograph [m³/timestep],
// maximizing Kling-Gupta efficiency. Returns the fitted parameterization
// and its score.
func CalibrateDomain(strc *urbanwater.Structure, par *urbanwater.Parameter, frc *forcing.Forcing, obs []float64) (*urbanwater.Parameter, float64, error) {
	if len(obs) != len(frc.T) {
		return nil, 0., fmt.Errorf("CalibrateDomain: %d observations for %d timesteps", len(obs), len(frc.T))
	}

	apply := func(u []float64) *urbanwater.Parameter {
		p := *par
		p.Cells = make([]urbanwater.CellPar, len(par.Cells))
		copy(p.Cells, par.Cells)
		froof := mmaths.LinearTransform(.2, 5., u[0])
		fpav := mmaths.LogLinearTransform(.1, 10., u[1])
		fprv := mmaths.LogLinearTransform(.1, 10., u[2])
		fksat := mmaths.LogLinearTransform(.1, 10., u[3])
		krec := mmaths.LogLinearTransform(1e-4, .1, u[4])
		for i := range p.Cells {
			c := &p.Cells[i]
			c.RoofSto *= froof
			c.PavFc *= fpav
			c.PrvFc *= fprv
			c.Ksat *= fksat
			c.Krec = krec
		}
		return &p
	}

	gen := func(u []float64) float64 {
		ev, err := urbanwater.Initialize(nil, strc, apply(u), frc)
		if err != nil {
			return -math.MaxFloat64
		}
		res, err := ev.Run()
		if err != nil {
			return -math.MaxFloat64
		}
		return objfunc.KGE(obs, res.Hyd)
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	fmt.Println(" optimizing..")
	uFinal, ofFinal := glbopt.SCE(runtime.GOMAXPROCS(0), ndim, rng, gen, false)

	pFinal := apply(uFinal)
	fmt.Printf("\nfinal KGE: %.3f  u: %v\n", ofFinal, uFinal)
	return pFinal, ofFinal, nil
}

// Skill scores a simulated series against observations.
func Skill(obs, sim []float64) (kge, nse, bias float64) {
	return objfunc.KGE(obs, sim), objfunc.NSE(obs, sim), objfunc.Bias(obs, sim)
}
