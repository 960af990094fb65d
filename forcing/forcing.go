package forcing

import (
	"fmt"
	"math"
	"time"
)

// Forcing holds the timeseries driving a simulation. P and Ep are grouped by
// meteorological zone; XR maps cell array index to zone. Dem optionally
// carries externally specified water demand [m³/timestep] by zone; when nil,
// demand is derived from the parameterization.
type Forcing struct {
	T   []time.Time
	P   [][]float64 // precipitation [mm/timestep]
	Ep  [][]float64 // potential evaporation [mm/timestep]
	Dem [][]float64 // external demand [m³/timestep], optional
	XR  []int       // cell array index to zone
}

// Check verifies the record is complete and aligned for nc cells.
func (frc *Forcing) Check(nc int) error {
	nt := len(frc.T)
	if nt == 0 {
		return fmt.Errorf("empty timeseries record")
	}
	if len(frc.P) != len(frc.Ep) {
		return fmt.Errorf("precipitation and evaporation zone counts differ: %d != %d", len(frc.P), len(frc.Ep))
	}
	if len(frc.XR) < nc {
		return fmt.Errorf("zone cross-reference covers %d of %d cells", len(frc.XR), nc)
	}
	for z := range frc.P {
		if len(frc.P[z]) != nt || len(frc.Ep[z]) != nt {
			return fmt.Errorf("zone %d record length misaligned with timeseries", z)
		}
		for j := range frc.P[z] {
			if math.IsNaN(frc.P[z][j]) || math.IsNaN(frc.Ep[z][j]) || frc.P[z][j] < 0. || frc.Ep[z][j] < 0. {
				return fmt.Errorf("zone %d holds an invalid value at %v", z, frc.T[j])
			}
		}
	}
	if frc.Dem != nil {
		for z := range frc.Dem {
			if len(frc.Dem[z]) != nt {
				return fmt.Errorf("demand zone %d record length misaligned with timeseries", z)
			}
		}
	}
	for i := 0; i < nc; i++ {
		if frc.XR[i] < 0 || frc.XR[i] >= len(frc.P) {
			return fmt.Errorf("cell %d references undefined zone %d", i, frc.XR[i])
		}
	}
	return nil
}

// Window returns the array index range [i0,i1) spanning dtb to dte inclusive.
func (frc *Forcing) Window(dtb, dte time.Time) (i0, i1 int, err error) {
	i0, i1 = -1, -1
	for j, t := range frc.T {
		if i0 < 0 && !t.Before(dtb) {
			i0 = j
		}
		if !t.After(dte) {
			i1 = j + 1
		}
	}
	if i0 < 0 || i1 <= i0 {
		return 0, 0, fmt.Errorf("window %v to %v not covered by record %v to %v", dtb, dte, frc.T[0], frc.T[len(frc.T)-1])
	}
	return i0, i1, nil
}

// Trim reduces the record to the array index range [i0,i1).
func (frc *Forcing) Trim(i0, i1 int) {
	frc.T = frc.T[i0:i1]
	for z := range frc.P {
		frc.P[z] = frc.P[z][i0:i1]
		frc.Ep[z] = frc.Ep[z][i0:i1]
	}
	for z := range frc.Dem {
		frc.Dem[z] = frc.Dem[z][i0:i1]
	}
}
