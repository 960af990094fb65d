package gwru

// Groundwater is the cell's saturated-zone linear reservoir. Volumes in m³.
// The water-table level is reported as depth below surface, derived from
// storage through the storage coefficient.
type Groundwater struct {
	Sto   float64 // saturated-zone storage [m³]
	Area  float64 // cell area [m²]
	Sy    float64 // storage coefficient [-]
	Dmax  float64 // depth below surface at which storage empties [m]
	Krec  float64 // baseflow recession coefficient [1/d]
	Kpipe float64 // sewer-pipe infiltration coefficient [1/d]
	Qseep float64 // downward seepage to the deep system [mm/d]
	Dt    float64 // timestep length [d]
}

// NewGroundwater seeds storage from an initial water-table depth below
// surface [m].
func NewGroundwater(level0, dmax, sy, area, krec, kpipe, qseep, dt float64) Groundwater {
	sto := (dmax - level0) * sy * area
	if sto < 0. {
		sto = 0.
	}
	return Groundwater{Sto: sto, Area: area, Sy: sy, Dmax: dmax, Krec: krec, Kpipe: kpipe, Qseep: qseep, Dt: dt}
}

// Level returns the water-table depth below surface [m].
func (g *Groundwater) Level() float64 {
	if g.Area == 0. || g.Sy == 0. {
		return g.Dmax
	}
	return g.Dmax - g.Sto/(g.Sy*g.Area)
}

// Update receives recharge [m³], returning baseflow to the stormwater
// network, downward seepage and sewer-pipe infiltration [m³]. Outflows are
// scaled back jointly so their sum never exceeds storage; baseflow never
// decreases with added storage.
func (g *Groundwater) Update(rech float64) (base, seep, pipe float64) {
	g.Sto += rech
	base = g.Krec * g.Dt * g.Sto
	pipe = g.Kpipe * g.Dt * g.Sto
	seep = g.Qseep * g.Dt * g.Area / 1000.
	if tot := base + seep + pipe; tot > g.Sto {
		f := g.Sto / tot
		base *= f
		seep *= f
		pipe *= f
	}
	g.Sto -= base + seep + pipe
	if g.Sto < 0. { // round-off
		g.Sto = 0.
	}
	return
}

// Withdraw draws up to v [m³] from storage, returning the volume taken.
func (g *Groundwater) Withdraw(v float64) float64 {
	if v > g.Sto {
		v = g.Sto
	}
	g.Sto -= v
	return v
}
