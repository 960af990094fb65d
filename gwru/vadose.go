package gwru

// evaporative demand bracketing the transpiration-reduction onset [mm/d]
const (
	epLow  = 1.
	epHigh = 5.
)

// Vadose is the root-zone moisture accounting unit underlying the pervious
// surface. Depths in mm over the pervious area.
type Vadose struct {
	Sto      float64 // root-zone moisture [mm]
	ThetaSat float64 // complete saturation [mm]
	ThetaFC  float64 // field capacity [mm]
	ThetaWP  float64 // permanent wilting point [mm]
	ThetaLo  float64 // reduction onset under low evaporative demand [mm]
	ThetaHi  float64 // reduction onset under high evaporative demand [mm]
	ThetaEq  float64 // equilibrium moisture [mm]
	Ksat     float64 // saturated conductivity [mm/d]
	Capmax   float64 // maximum capillary rise [mm/d]
	Dt       float64 // timestep length [d]
}

// Space returns the room currently available to receive infiltration [mm].
func (v *Vadose) Space() float64 {
	s := v.ThetaEq - v.Sto
	if s < 0. {
		s = 0.
	}
	return s + v.Ksat*v.Dt
}

// Update receives infiltration and evaporative demand [mm], returning
// transpiration, percolation to groundwater and capillary rise drawn from
// groundwater, the latter bounded by capAvail [mm]. Moisture above
// equilibrium percolates at a rate bounded by the saturated conductivity;
// moisture below equilibrium draws capillary rise. Percolation never
// decreases with added moisture.
func (v *Vadose) Update(finf, ep, capAvail float64) (ta, perc, caprise float64) {
	m := v.Sto + finf
	ta = v.reduction(m, v.threshold(ep)) * ep
	m -= ta
	if m < 0. {
		ta += m
		m = 0.
	}
	if m > v.ThetaEq {
		perc = m - v.ThetaEq
		if x := v.Ksat * v.Dt; perc > x {
			perc = x
		}
		m -= perc
	} else {
		caprise = v.ThetaEq - m
		if x := v.Capmax * v.Dt; caprise > x {
			caprise = x
		}
		if caprise > capAvail {
			caprise = capAvail
		}
		m += caprise
	}
	v.Sto = m
	return
}

// threshold interpolates the moisture level at which transpiration begins to
// reduce, between its low- and high-demand values.
func (v *Vadose) threshold(ep float64) float64 {
	switch {
	case ep <= epLow:
		return v.ThetaLo
	case ep >= epHigh:
		return v.ThetaHi
	default:
		return v.ThetaLo + (ep-epLow)/(epHigh-epLow)*(v.ThetaHi-v.ThetaLo)
	}
}

// reduction returns the transpiration factor on [0,1]: zero beyond
// saturation and below wilting, unity between the reduction threshold and
// field capacity, ramped elsewhere.
func (v *Vadose) reduction(m, thresh float64) float64 {
	switch {
	case m >= v.ThetaSat:
		return 0.
	case m > v.ThetaFC:
		return 1. - (m-v.ThetaFC)/(v.ThetaSat-v.ThetaFC)
	case m >= thresh:
		return 1.
	case m > v.ThetaWP:
		return (m - v.ThetaWP) / (thresh - v.ThetaWP)
	default:
		return 0.
	}
}
