package urbanwater

import (
	"encoding/gob"
	"fmt"
	"os"
)

// reuse device source selectors
const (
	ReuseNone       = ""
	ReuseTank       = "tank"
	ReuseStormwater = "stormwater"
	ReuseWastewater = "wastewater"
)

// ReuseSpec configures a cell's alternative water device: a bounded redirect
// of a held source toward residual demand.
type ReuseSpec struct {
	Source string  // "tank", "stormwater" or "wastewater"; empty disables
	Cap    float64 // redirect capacity [m³/timestep]
}

// CellPar is the parameter block of one cell.
type CellPar struct {
	RoofArea, PavArea, PrvArea float64 // component plan areas [m²]

	RoofSto  float64 // roof retention capacity [mm]
	RoofFeff float64 // gutter fraction of roof excess [-]

	TankCap  float64 // collective rain tank capacity [m³]; zero disables
	TankFF   float64 // tank first flush [m³/timestep]
	TankFeff float64 // sewer fraction of tank bypass/overflow [-]

	PavSto  float64 // pavement depression storage [mm]
	PavFc   float64 // pavement infiltration capacity [mm/d]
	PavFeff float64 // sewer fraction of pavement excess [-]

	PrvSto float64 // pervious interception capacity [mm]
	PrvFc  float64 // pervious infiltration capacity [mm/d]

	ThetaSat float64 // root-zone saturation [mm]
	ThetaFC  float64 // field capacity [mm]
	ThetaWP  float64 // permanent wilting point [mm]
	ThetaLo  float64 // transpiration reduction onset, low demand [mm]
	ThetaHi  float64 // transpiration reduction onset, high demand [mm]
	ThetaEq  float64 // equilibrium moisture [mm]
	Ksat     float64 // root-zone saturated conductivity [mm/d]
	Capmax   float64 // maximum capillary rise [mm/d]

	Gwl0  float64 // initial water-table depth [m below surface]
	Dmax  float64 // depth at which groundwater storage empties [m]
	Sy    float64 // storage coefficient [-]
	Krec  float64 // baseflow recession coefficient [1/d]
	Kpipe float64 // sewer-pipe infiltration coefficient [1/d]
	Qseep float64 // deep seepage [mm/d]

	SwsCap float64 // local stormwater store capacity [m³]; zero is a direct reach
	SwsFF  float64 // stormwater store first flush [m³/timestep]
	WwsCap float64 // cluster wastewater store capacity [m³]; zero is a direct reach
	FswWw  float64 // stormwater share diverted to the wastewater system [-]

	IndoorUse float64 // indoor water use [m³/d]
	FirrEp    float64 // irrigation demand per unit evaporative demand [m³/mm]
	Fgrey     float64 // demand fraction returning as greywater [-]
	Reuse     ReuseSpec
}

// Parameter is the full model parameterization.
type Parameter struct {
	Cells []CellPar
	Dt    float64 // timestep length [d]
}

// DefaultCellPar returns a plausible mixed residential cell.
func DefaultCellPar() CellPar {
	return CellPar{
		RoofArea: 200., PavArea: 300., PrvArea: 500.,
		RoofSto: 1.5, RoofFeff: .8,
		TankCap: 0., TankFF: 0., TankFeff: 1.,
		PavSto: 1.5, PavFc: 10., PavFeff: .9,
		PrvSto: 5., PrvFc: 150.,
		ThetaSat: 450., ThetaFC: 300., ThetaWP: 100., ThetaLo: 150., ThetaHi: 225., ThetaEq: 250.,
		Ksat: 50., Capmax: 2.,
		Gwl0: 5., Dmax: 30., Sy: .2, Krec: .002, Kpipe: .0005, Qseep: .05,
		SwsCap: 0., SwsFF: 0., WwsCap: 0., FswWw: 0.,
		IndoorUse: .55, FirrEp: 0., Fgrey: .6,
	}
}

func checkFrac(cid int, name string, v float64) error {
	if v < 0. || v > 1. {
		return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: fmt.Sprintf("%s = %g outside [0,1]", name, v)}
	}
	return nil
}

func checkPos(cid int, name string, v float64) error {
	if v < 0. {
		return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: fmt.Sprintf("%s = %g negative", name, v)}
	}
	return nil
}

// Check validates the parameterization against the domain structure.
// Non-effective runoff needs a pervious surface to land on and tank spill a
// pavement, so cells lacking those surfaces must route all excess to the
// sewer.
func (par *Parameter) Check(strc *Structure) error {
	if par.Dt <= 0. {
		return &ConfigurationError{Field: "Dt", Msg: fmt.Sprintf("timestep length %g", par.Dt)}
	}
	if len(par.Cells) != strc.Nc {
		return &ConfigurationError{Field: "Cells", Msg: fmt.Sprintf("%d parameter blocks for %d cells", len(par.Cells), strc.Nc)}
	}
	for i := range par.Cells {
		p, cid := &par.Cells[i], strc.Cids[i]
		for _, c := range []struct {
			n string
			v float64
		}{
			{"RoofArea", p.RoofArea}, {"PavArea", p.PavArea}, {"PrvArea", p.PrvArea},
			{"RoofSto", p.RoofSto}, {"TankCap", p.TankCap}, {"TankFF", p.TankFF},
			{"PavSto", p.PavSto}, {"PavFc", p.PavFc}, {"PrvSto", p.PrvSto}, {"PrvFc", p.PrvFc},
			{"Ksat", p.Ksat}, {"Capmax", p.Capmax}, {"Krec", p.Krec}, {"Kpipe", p.Kpipe}, {"Qseep", p.Qseep},
			{"SwsCap", p.SwsCap}, {"SwsFF", p.SwsFF}, {"WwsCap", p.WwsCap},
			{"IndoorUse", p.IndoorUse}, {"FirrEp", p.FirrEp}, {"Reuse.Cap", p.Reuse.Cap},
		} {
			if err := checkPos(cid, c.n, c.v); err != nil {
				return err
			}
		}
		for _, c := range []struct {
			n string
			v float64
		}{
			{"RoofFeff", p.RoofFeff}, {"TankFeff", p.TankFeff}, {"PavFeff", p.PavFeff},
			{"FswWw", p.FswWw}, {"Fgrey", p.Fgrey}, {"Sy", p.Sy},
		} {
			if err := checkFrac(cid, c.n, c.v); err != nil {
				return err
			}
		}
		if !(p.ThetaWP <= p.ThetaLo && p.ThetaLo <= p.ThetaFC && p.ThetaFC <= p.ThetaSat) ||
			!(p.ThetaWP <= p.ThetaHi && p.ThetaHi <= p.ThetaFC) ||
			p.ThetaEq < p.ThetaWP || p.ThetaEq > p.ThetaSat || p.ThetaWP < 0. {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "root-zone moisture thresholds out of order"}
		}
		if p.Gwl0 < 0. || p.Gwl0 > p.Dmax {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: fmt.Sprintf("initial water table %gm outside [0,%g]", p.Gwl0, p.Dmax)}
		}
		if strc.Area[i] > 0. && p.Sy <= 0. {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "storage coefficient must be positive"}
		}
		if p.PrvArea == 0. {
			if p.RoofArea > 0. && p.RoofFeff != 1. {
				return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "no pervious surface to receive roof spill; RoofFeff must be 1"}
			}
			if p.PavArea > 0. && p.PavFeff != 1. {
				return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "no pervious surface to receive pavement spill; PavFeff must be 1"}
			}
		}
		if p.PavArea == 0. && p.RoofArea > 0. && p.TankFeff != 1. {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "no pavement to receive tank spill; TankFeff must be 1"}
		}
		switch p.Reuse.Source {
		case ReuseNone, ReuseTank, ReuseStormwater, ReuseWastewater:
		default:
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: fmt.Sprintf("unknown reuse source %q", p.Reuse.Source)}
		}
		if p.Reuse.Source == ReuseStormwater && p.SwsCap == 0. {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "stormwater reuse needs a local store (SwsCap > 0)"}
		}
		if p.Reuse.Source == ReuseWastewater && p.WwsCap == 0. {
			return &ConfigurationError{Field: fmt.Sprintf("cell %d", cid), Msg: "wastewater reuse needs a cluster store (WwsCap > 0)"}
		}
	}
	return nil
}

// SaveGob Parameter to gob
func (par *Parameter) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Parameter.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(par); err != nil {
		return fmt.Errorf(" Parameter.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobParameter loads
func LoadGobParameter(fp string) (*Parameter, error) {
	var par Parameter
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&par); err != nil {
		return nil, err
	}
	f.Close()
	return &par, nil
}
