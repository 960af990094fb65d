package urbanwater

import (
	"github.com/maseology/goHydro/hru"
	"github.com/ricardo8r/urbanWater/cell"
	"github.com/ricardo8r/urbanWater/forcing"
	"github.com/ricardo8r/urbanWater/gwru"
)

// CellState is the component stack state of one cell: roof, rain tank,
// pavement, pervious surface, root zone, groundwater and the two sewer
// stores.
type CellState struct {
	Roof cell.Roof
	Tank cell.RainTank
	Pav  cell.Pavement
	Prv  cell.Pervious
	Vz   gwru.Vadose
	Gw   gwru.Groundwater
	Sw   hru.Res // local stormwater store [m³]
	Ww   hru.Res // cluster wastewater store [m³]
}

// Storage returns the total water held by the cell [m³].
func (cs *CellState) Storage() float64 {
	d := cs.Roof.Ret.Sto*cs.Roof.Area + cs.Pav.Det.Sto*cs.Pav.Area + (cs.Prv.Det.Sto+cs.Vz.Sto)*cs.Prv.Area
	return d*mmToM + cs.Tank.Tank.Sto + cs.Gw.Sto + cs.Sw.Sto + cs.Ww.Sto
}

func newCellState(p *CellPar, carea, dt float64) CellState {
	return CellState{
		Roof: cell.Roof{Ret: hru.Res{Cap: p.RoofSto}, Area: p.RoofArea, Feff: p.RoofFeff},
		Tank: cell.RainTank{Tank: hru.Res{Cap: p.TankCap}, FirstFlush: p.TankFF, Feff: p.TankFeff},
		Pav:  cell.Pavement{Det: hru.Res{Cap: p.PavSto}, Area: p.PavArea, Feff: p.PavFeff, Fc: p.PavFc, Dt: dt},
		Prv:  cell.Pervious{Det: hru.Res{Cap: p.PrvSto}, Area: p.PrvArea, Fc: p.PrvFc, Dt: dt},
		Vz: gwru.Vadose{
			Sto: p.ThetaEq, ThetaSat: p.ThetaSat, ThetaFC: p.ThetaFC, ThetaWP: p.ThetaWP,
			ThetaLo: p.ThetaLo, ThetaHi: p.ThetaHi, ThetaEq: p.ThetaEq,
			Ksat: p.Ksat, Capmax: p.Capmax, Dt: dt,
		},
		Gw: gwru.NewGroundwater(p.Gwl0, p.Dmax, p.Sy, carea, p.Krec, p.Kpipe, p.Qseep, dt),
		Sw: hru.Res{Cap: p.SwsCap},
		Ww: hru.Res{Cap: p.WwsCap},
	}
}

// Evaluator advances the model domain through the forcing record, one
// all-or-nothing timestep at a time.
type Evaluator struct {
	strc  *Structure
	par   *Parameter
	frc   *forcing.Forcing
	cfg   *Config
	sta   []CellState
	swLag []float64 // next-step sewer inflows held by delayed reaches [m³]
	wwLag []float64
	res   *Results
	j     int // next step to commit
}

// Initialize validates the setup and readies an evaluator at step zero.
func Initialize(cfg *Config, strc *Structure, par *Parameter, frc *forcing.Forcing) (*Evaluator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if err := par.Check(strc); err != nil {
		return nil, err
	}
	if err := frc.Check(strc.Nc); err != nil {
		return nil, &InputDataError{Cell: -1, Step: -1, Msg: err.Error()}
	}
	sta := make([]CellState, strc.Nc)
	for i := range sta {
		sta[i] = newCellState(&par.Cells[i], strc.Area[i], par.Dt)
	}
	return &Evaluator{
		strc:  strc,
		par:   par,
		frc:   frc,
		cfg:   cfg,
		sta:   sta,
		swLag: make([]float64, strc.Nc),
		wwLag: make([]float64, strc.Nc),
		res:   newResults(strc, frc.T),
	}, nil
}

// Step reports the next step to be evaluated.
func (ev *Evaluator) Step() int { return ev.j }

// Results returns the committed record so far.
func (ev *Evaluator) Results() *Results { return ev.res }

// State returns a copy of cell i's component stack.
func (ev *Evaluator) State(i int) CellState { return ev.sta[i] }
