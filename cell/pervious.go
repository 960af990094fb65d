package cell

import "github.com/maseology/goHydro/hru"

// Pervious surface interception. Depths in mm over the pervious area.
// Held water partitions between evaporation and infiltration to the root
// zone by their relative demand over the timestep; excess above the
// interception capacity spills to the stormwater sewer.
type Pervious struct {
	Det  hru.Res // interception storage [mm]
	Area float64 // pervious area [m²]
	Fc   float64 // infiltration capacity [mm/d]
	Dt   float64 // timestep length [d]
}

// Update takes precipitation, potential evaporation, upslope non-effective
// runoff and the root-zone space available to receive infiltration [mm],
// returning evaporation, infiltration and overflow [mm].
func (pv *Pervious) Update(p, ep, run, space float64) (ae, finf, over float64) {
	avail := pv.Det.Sto + p + run
	fc := pv.Fc * pv.Dt
	if fc > space {
		fc = space
	}
	if d := ep + fc; d > 0. {
		tf := avail / d
		if tf > 1. {
			tf = 1.
		}
		ae, finf = tf*ep, tf*fc
	}
	pv.Det.Sto = 0.
	over = pv.Det.Overflow(avail - ae - finf)
	return
}
