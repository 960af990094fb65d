package urbanwater

import (
	"fmt"
	"math"
)

// updateCell advances cell i through step j given its scheduled sewer
// inflows [m³], returning the step's flux record. The component stack is
// evaluated top-down: roof, rain tank, pavement, pervious surface, root
// zone, groundwater, then the sewer reaches and the demand ledger. The cell
// water balance must close before the record is accepted.
func (ev *Evaluator) updateCell(i, j int, swIn, wwIn float64) (cellRec, error) {
	var rec cellRec
	p, st := &ev.par.Cells[i], &ev.sta[i]
	xr := ev.frc.XR[i]
	pm, em := ev.frc.P[xr][j], ev.frc.Ep[xr][j]
	if math.IsNaN(pm) || math.IsNaN(em) || pm < 0. || em < 0. {
		return rec, &InputDataError{Cell: ev.strc.Cids[i], Step: j, Msg: fmt.Sprintf("precipitation %g, evaporative demand %g", pm, em)}
	}
	sto0 := st.Storage()

	// demand ledger [m³]; externally specified demand is consumptive
	demInd := p.IndoorUse * ev.par.Dt
	dem := demInd + p.FirrEp*em
	if ev.frc.Dem != nil {
		dem += ev.frc.Dem[xr][j]
	}
	rec.q[QDemand] = dem

	// roof and rain tank
	var aeR, veff, vnon float64
	if p.RoofArea > 0. {
		var eff, non float64
		aeR, eff, non = st.Roof.Update(pm, em)
		veff = eff * p.RoofArea * mmToM
		vnon = non * p.RoofArea * mmToM
	}
	sup, vtkStorm, vtkPav := st.Tank.Update(veff, dem)
	dem -= sup

	// pavement
	var aeP, fiP, effP, nonP float64
	if p.PavArea > 0. {
		aeP, fiP, effP, nonP = st.Pav.Update(pm, em, vtkPav/p.PavArea/mmToM)
	} else {
		vtkStorm += vtkPav
		vtkPav = 0.
	}

	// pervious surface and root zone
	var aeG, fiG, overG, ta, perc, capr float64
	if p.PrvArea > 0. {
		run := (vnon + nonP*p.PavArea*mmToM) / p.PrvArea / mmToM
		aeG, fiG, overG = st.Prv.Update(pm, em, run, st.Vz.Space())
		capAvail := st.Gw.Sto / p.PrvArea / mmToM
		ta, perc, capr = st.Vz.Update(fiG, em, capAvail)
		st.Gw.Withdraw(capr * p.PrvArea * mmToM)
	}

	// groundwater
	base, seep, pipe := st.Gw.Update((perc*p.PrvArea + fiP*p.PavArea) * mmToM)

	// stormwater reach
	swin := vtkStorm + (effP*p.PavArea+overG*p.PrvArea)*mmToM + base + swIn
	div := p.FswWw * swin
	swin -= div
	swOut := swin
	if st.Sw.Cap > 0. {
		ff := math.Min(swin, p.SwsFF)
		swOut = ff + st.Sw.Overflow(swin-ff)
	}

	// alternative water device
	var reuse float64
	switch p.Reuse.Source {
	case ReuseTank:
		reuse = math.Min(math.Min(st.Tank.Tank.Sto, p.Reuse.Cap), dem)
		st.Tank.Tank.Sto -= reuse
	case ReuseStormwater:
		reuse = math.Min(math.Min(st.Sw.Sto, p.Reuse.Cap), dem)
		st.Sw.Sto -= reuse
	case ReuseWastewater:
		reuse = math.Min(math.Min(st.Ww.Sto, p.Reuse.Cap), dem)
		st.Ww.Sto -= reuse
	}
	dem -= reuse

	// wastewater reach
	grey := p.Fgrey * demInd
	wwin := div + pipe + grey + wwIn
	wwOut := wwin
	if st.Ww.Cap > 0. {
		wwOut = st.Ww.Overflow(wwin)
	}

	sto1 := st.Storage()
	aet := (aeR*p.RoofArea + aeP*p.PavArea + (aeG+ta)*p.PrvArea) * mmToM
	win := pm*(p.RoofArea+p.PavArea+p.PrvArea)*mmToM + swIn + wwIn + grey
	wout := aet + sup + reuse + swOut + wwOut + seep
	wbal := win - wout - (sto1 - sto0)

	rec.q[QPrecip] = pm * (p.RoofArea + p.PavArea + p.PrvArea) * mmToM
	rec.q[QAet] = aet
	rec.q[QRoofEff] = veff
	rec.q[QTankSup] = sup
	rec.q[QTankOver] = vtkStorm + vtkPav
	rec.q[QInfilt] = (fiP*p.PavArea + fiG*p.PrvArea) * mmToM
	rec.q[QPerc] = perc * p.PrvArea * mmToM
	rec.q[QCaprise] = capr * p.PrvArea * mmToM
	rec.q[QBaseflow] = base
	rec.q[QPipeInf] = pipe
	rec.q[QSeep] = seep
	rec.q[QStormIn] = swIn
	rec.q[QStormOut] = swOut
	rec.q[QWwIn] = wwIn
	rec.q[QWwOut] = wwOut
	rec.q[QReuse] = reuse
	rec.q[QGrey] = grey
	rec.q[QImport] = dem
	rec.q[QSto] = sto1
	rec.q[QWbal] = wbal

	cid := ev.strc.Cids[i]
	for k, v := range rec.q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rec, &ComponentStateError{Cell: cid, Step: j, Component: "cell", Quantity: QNames[k], Value: v}
		}
		if v < 0. && k != QWbal {
			if v < -nearzero {
				return rec, &ComponentStateError{Cell: cid, Step: j, Component: "cell", Quantity: QNames[k], Value: v}
			}
			rec.q[k] = 0. // round-off
		}
	}
	limit := nearzero * math.Max(1., sto0+win)
	if limit > fatalzero {
		limit = fatalzero
	}
	if math.Abs(wbal) > limit {
		return rec, &ComponentStateError{Cell: cid, Step: j, Component: "cell", Quantity: "wbal", Value: wbal}
	}
	return rec, nil
}
