package cell

import (
	"math"

	"github.com/maseology/goHydro/hru"
)

// RainTank is the collective rain tank storage of a cell. Volumes in m³.
// A first-flush volume is diverted to the sewer ahead of storage; bypass and
// overflow split between the stormwater sewer and adjacent pavement.
type RainTank struct {
	Tank       hru.Res
	FirstFlush float64 // diversion preceding storage [m³/timestep]
	Feff       float64 // fraction of bypass/overflow to the stormwater sewer [-]
}

// Update receives gutter inflow and a demand draw request [m³], returning the
// demand actually supplied (bounded by storage) and the bypass/overflow split
// between the stormwater sewer and pavement [m³].
func (t *RainTank) Update(inflow, demand float64) (supply, toStorm, toPav float64) {
	if t.Tank.Cap == 0. {
		toStorm = t.Feff * inflow
		toPav = inflow - toStorm
		return
	}
	ff := math.Min(inflow, t.FirstFlush)
	over := ff + t.Tank.Overflow(inflow-ff)
	supply = demand + t.Tank.Overflow(-demand)
	if supply < 0. {
		supply = 0.
	}
	toStorm = t.Feff * over
	toPav = over - toStorm
	return
}
