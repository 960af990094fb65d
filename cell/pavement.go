package cell

import "github.com/maseology/goHydro/hru"

// Pavement depression storage and runoff partitioning. Depths in mm over the
// paved area. A bounded infiltration capacity passes water to the subsurface;
// remaining excess splits into effective runoff (stormwater sewer) and
// non-effective runoff (adjacent pervious surfaces).
type Pavement struct {
	Det  hru.Res // depression storage [mm]
	Area float64 // paved area [m²]
	Feff float64 // fraction of excess draining the stormwater sewer [-]
	Fc   float64 // infiltration capacity [mm/d]
	Dt   float64 // timestep length [d]
}

// Update takes precipitation, potential evaporation and rain tank spill
// routed onto the pavement [mm], returning evaporation, infiltration and the
// effective/non-effective runoff split [mm].
func (pv *Pavement) Update(p, ep, run float64) (ae, finf, eff, noneff float64) {
	ex := pv.Det.Overflow(p + run)
	ae = ep + pv.Det.Overflow(-ep)
	if ae < 0. {
		ae = 0.
	}
	finf = pv.Fc * pv.Dt
	if finf > ex {
		finf = ex
	}
	ex -= finf
	eff = pv.Feff * ex
	noneff = ex - eff
	return
}
