package cell

import "github.com/maseology/goHydro/hru"

// Roof interception and runoff partitioning. Depths in mm over the roof plan
// area. Excess splits into effective runoff collected by the gutter system
// (routed to the rain tank where one exists, otherwise to the stormwater
// sewer) and non-effective runoff spilled onto adjacent pervious surfaces.
type Roof struct {
	Ret  hru.Res // short-term surface retention [mm]
	Area float64 // plan area [m²]
	Feff float64 // fraction of excess draining the gutter [-]
}

// Update advances one timestep given precipitation and potential evaporation
// [mm], returning evaporation, effective (gutter) runoff and non-effective
// runoff [mm].
func (r *Roof) Update(p, ep float64) (ae, eff, noneff float64) {
	ex := r.Ret.Overflow(p)
	ae = ep + r.Ret.Overflow(-ep)
	if ae < 0. {
		ae = 0.
	}
	eff = r.Feff * ex
	noneff = ex - eff
	return
}
