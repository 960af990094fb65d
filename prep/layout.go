package prep

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maseology/mmio"
	"github.com/ricardo8r/urbanWater"
	"gopkg.in/yaml.v3"
)

// CellDef is one row of the domain layout table.
type CellDef struct {
	Cid, Down, Lu int // cell ID, downstream cell ID (-1 at the outlet), land-use class
	Area          float64
	Delay         bool // hold sewer outflow to the next timestep
}

// LandUse is a parameter template applied to every cell of a class. Froof
// and Fpav partition the cell area; the remainder is pervious. Par carries
// the class parameterization with its areas overwritten per cell.
type LandUse struct {
	Froof float64            `yaml:"froof"`
	Fpav  float64            `yaml:"fpav"`
	Par   urbanwater.CellPar `yaml:"par"`
}

// LoadLayout reads a layout csv of the form cid,downid,luid,area,delay with
// a header line.
func LoadLayout(csvfp string) ([]CellDef, error) {
	if _, ok := mmio.FileExists(csvfp); !ok {
		return nil, fmt.Errorf("prep.LoadLayout: file %s does not exist", csvfp)
	}
	f, err := os.Open(csvfp)
	if err != nil {
		return nil, fmt.Errorf("prep.LoadLayout: %v", err)
	}
	defer f.Close()

	var defs []CellDef
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		if len(rec) < 5 {
			return nil, fmt.Errorf("prep.LoadLayout: short record %v", rec)
		}
		cid, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("prep.LoadLayout: %v", err)
		}
		dn, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("prep.LoadLayout: %v", err)
		}
		lu, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("prep.LoadLayout: %v", err)
		}
		area, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("prep.LoadLayout: %v", err)
		}
		dly, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("prep.LoadLayout: %v", err)
		}
		defs = append(defs, CellDef{Cid: cid, Down: dn, Lu: lu, Area: area, Delay: dly != 0})
	}
	return defs, nil
}

// LoadLandUse reads a yaml land-use table keyed by class ID.
func LoadLandUse(fp string) (map[int]LandUse, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("prep.LoadLandUse: %v", err)
	}
	lu := make(map[int]LandUse)
	if err := yaml.Unmarshal(b, &lu); err != nil {
		return nil, fmt.Errorf("prep.LoadLandUse: %v", err)
	}
	for k, v := range lu {
		if v.Froof < 0. || v.Fpav < 0. || v.Froof+v.Fpav > 1. {
			return nil, fmt.Errorf("prep.LoadLandUse: class %d area fractions invalid (froof %g, fpav %g)", k, v.Froof, v.Fpav)
		}
	}
	return lu, nil
}

// BuildDomain assembles the model structure and parameterization from a
// layout table and land-use classes.
func BuildDomain(defs []CellDef, lutab map[int]LandUse, dt float64) (*urbanwater.Structure, *urbanwater.Parameter, error) {
	cids := make([]int, len(defs))
	down := make(map[int]int, len(defs))
	delay := make(map[int]bool, len(defs))
	area := make(map[int]float64, len(defs))
	for i, d := range defs {
		cids[i] = d.Cid
		down[d.Cid] = d.Down
		delay[d.Cid] = d.Delay
		area[d.Cid] = d.Area
	}
	strc, err := urbanwater.NewStructure(cids, down, delay, area)
	if err != nil {
		return nil, nil, err
	}

	par := urbanwater.Parameter{Cells: make([]urbanwater.CellPar, len(defs)), Dt: dt}
	for i, d := range defs {
		t, ok := lutab[d.Lu]
		if !ok {
			return nil, nil, fmt.Errorf("prep.BuildDomain: cell %d references unknown land-use class %d", d.Cid, d.Lu)
		}
		c := t.Par
		c.RoofArea = t.Froof * d.Area
		c.PavArea = t.Fpav * d.Area
		c.PrvArea = (1. - t.Froof - t.Fpav) * d.Area
		par.Cells[i] = c
	}
	if err := par.Check(strc); err != nil {
		return nil, nil, err
	}
	return strc, &par, nil
}
