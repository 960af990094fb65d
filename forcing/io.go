package forcing

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/maseology/mmio"
)

const dtfmt = "2006-01-02"

// LoadCsv reads a single-zone climate record of the form
// date,precipitation,evaporation[,demand] with a header line. All cells in
// the cross-reference are assigned zone 0.
func LoadCsv(csvfp string, nc int) (*Forcing, error) {
	if _, ok := mmio.FileExists(csvfp); !ok {
		return nil, fmt.Errorf("forcing.LoadCsv: file %s does not exist", csvfp)
	}
	f, err := os.Open(csvfp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadCsv: %v", err)
	}
	defer f.Close()

	var dts []time.Time
	var p, ep, dem []float64
	for rec := range mmio.LoadCSV(io.Reader(f), 1) {
		if len(rec) < 3 {
			return nil, fmt.Errorf("forcing.LoadCsv: short record %v", rec)
		}
		dt, err := time.Parse(dtfmt, rec[0])
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadCsv: %v", err)
		}
		pv, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadCsv: %v", err)
		}
		ev, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("forcing.LoadCsv: %v", err)
		}
		dts = append(dts, dt)
		p = append(p, pv)
		ep = append(ep, ev)
		if len(rec) > 3 {
			dv, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				return nil, fmt.Errorf("forcing.LoadCsv: %v", err)
			}
			dem = append(dem, dv)
		}
	}
	frc := Forcing{T: dts, P: [][]float64{p}, Ep: [][]float64{ep}, XR: make([]int, nc)}
	if dem != nil {
		frc.Dem = [][]float64{dem}
	}
	return &frc, nil
}

// SaveGob caches the record to a binary blob.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("forcing.SaveGob: %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf("forcing.SaveGob: %v", err)
	}
	return nil
}

// LoadGob recovers a cached record.
func LoadGob(fp string) (*Forcing, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.LoadGob: %v", err)
	}
	defer f.Close()
	var frc Forcing
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, fmt.Errorf("forcing.LoadGob: %v", err)
	}
	return &frc, nil
}
