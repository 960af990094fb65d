package urbanwater

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"
)

// recorded per-cell quantities, all volumes [m³/timestep] except storage and
// the closure residual
const (
	QPrecip   = iota // on-cell precipitation
	QAet             // evaporation plus transpiration, all surfaces
	QRoofEff         // gutter flow into the tank (or sewer)
	QTankSup         // rain tank draw toward demand
	QTankOver        // tank first flush, bypass and overflow
	QInfilt          // infiltration below pavement and pervious surfaces
	QPerc            // percolation to groundwater
	QCaprise         // capillary rise from groundwater
	QBaseflow        // groundwater discharge to the stormwater network
	QPipeInf         // groundwater infiltration into wastewater pipes
	QSeep            // deep seepage leaving the domain
	QStormIn         // stormwater inflow from upstream cells
	QStormOut        // stormwater discharge to the downstream cell or outlet
	QWwIn            // wastewater inflow from upstream cells
	QWwOut           // wastewater discharge to the downstream cell or outlet
	QReuse           // alternative water device redirect
	QGrey            // greywater return to the wastewater system
	QImport          // potable import covering residual demand
	QDemand          // total demand requested
	QSto             // end-of-step cell storage [m³]
	QWbal            // closure residual [m³]
	NQ
)

// QNames label the recorded quantities, ordered as their indices.
var QNames = [NQ]string{
	"precip", "aet", "roofeff", "tanksupply", "tankover", "infiltration",
	"percolation", "caprise", "baseflow", "pipeinf", "seepage", "stormin",
	"stormout", "wwin", "wwout", "reuse", "grey", "import", "demand", "storage", "wbal",
}

type cellRec struct{ q [NQ]float64 }

// Results accumulates committed per-cell fluxes, domain totals and the
// outlet hydrographs. Volumes in m³.
type Results struct {
	T         []time.Time
	Cids      []int
	Q         [][][]float64 // [quantity][cell][step]
	Glb       [][]float64   // [quantity][step] domain totals
	Hyd       []float64     // stormwater discharge at the domain outlet [m³/timestep]
	WwHyd     []float64     // wastewater discharge at the domain outlet [m³/timestep]
	TotalArea float64       // [m²]
	Committed int
	outlet    []bool
}

func newResults(strc *Structure, t []time.Time) *Results {
	nt := len(t)
	q := make([][][]float64, NQ)
	glb := make([][]float64, NQ)
	for k := 0; k < NQ; k++ {
		q[k] = make([][]float64, strc.Nc)
		for i := 0; i < strc.Nc; i++ {
			q[k][i] = make([]float64, nt)
		}
		glb[k] = make([]float64, nt)
	}
	outlet := make([]bool, strc.Nc)
	for _, i := range strc.Outlets() {
		outlet[i] = true
	}
	return &Results{
		T:         t,
		Cids:      strc.Cids,
		Q:         q,
		Glb:       glb,
		Hyd:       make([]float64, nt),
		WwHyd:     make([]float64, nt),
		TotalArea: strc.TotalArea(),
		outlet:    outlet,
	}
}

func (r *Results) commit(j int, recs []cellRec) {
	for k := 0; k < NQ; k++ {
		g := 0.
		for i := range recs {
			v := recs[i].q[k]
			r.Q[k][i][j] = v
			g += v
		}
		r.Glb[k][j] = g
	}
	for i := range recs {
		if r.outlet[i] {
			r.Hyd[j] += recs[i].q[QStormOut]
			r.WwHyd[j] += recs[i].q[QWwOut]
		}
	}
	r.Committed = j + 1
}

// CellSeries returns the committed record of one cell, keyed by quantity
// name.
func (r *Results) CellSeries(cid int) (map[string][]float64, error) {
	for i, c := range r.Cids {
		if c == cid {
			o := make(map[string][]float64, NQ)
			for k := 0; k < NQ; k++ {
				o[QNames[k]] = r.Q[k][i][:r.Committed]
			}
			return o, nil
		}
	}
	return nil, fmt.Errorf("unknown cell ID %d", cid)
}

// GlobalDepth returns the committed domain total of quantity k normalized to
// depth over the domain area [mm/timestep].
func (r *Results) GlobalDepth(k int) []float64 {
	o := make([]float64, r.Committed)
	if r.TotalArea == 0. {
		return o
	}
	for j := 0; j < r.Committed; j++ {
		o[j] = r.Glb[k][j] / r.TotalArea / mmToM
	}
	return o
}

// SaveGob Results to gob
func (r *Results) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Results.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf(" Results.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobResults loads
func LoadGobResults(fp string) (*Results, error) {
	var res Results
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&res); err != nil {
		return nil, err
	}
	f.Close()
	return &res, nil
}
