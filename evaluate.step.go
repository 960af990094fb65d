package urbanwater

import "golang.org/x/sync/errgroup"

// doStep advances the full domain through step j, committing all-or-nothing:
// any error restores the pre-step component states and leaves the record
// untouched. Rounds evaluate in order; members of a round are independent
// and may run concurrently. Lateral sewer transfers merge at the round
// barrier, so every consumer sees its upstream inflow complete, and delayed
// reaches hold their outflow for the next step.
func (ev *Evaluator) doStep(j int) error {
	nc := ev.strc.Nc
	snap := make([]CellState, nc)
	copy(snap, ev.sta)

	swIn, wwIn := make([]float64, nc), make([]float64, nc)
	copy(swIn, ev.swLag)
	copy(wwIn, ev.wwLag)
	swLag, wwLag := make([]float64, nc), make([]float64, nc)

	recs := make([]cellRec, nc)
	for _, inner := range ev.strc.Outer {
		if ev.cfg.Parallel && len(inner) > 1 {
			var g errgroup.Group
			for _, k := range inner {
				g.Go(func() error {
					r, err := ev.updateCell(k, j, swIn[k], wwIn[k])
					if err != nil {
						return err
					}
					recs[k] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				ev.sta = snap
				return err
			}
		} else {
			for _, k := range inner {
				r, err := ev.updateCell(k, j, swIn[k], wwIn[k])
				if err != nil {
					ev.sta = snap
					return err
				}
				recs[k] = r
			}
		}
		for _, k := range inner {
			d := ev.strc.Ds[k]
			switch {
			case d == -1: // discharges at the domain outlet
			case ev.strc.Delay[k]:
				swLag[d] += recs[k].q[QStormOut]
				wwLag[d] += recs[k].q[QWwOut]
			default:
				swIn[d] += recs[k].q[QStormOut]
				wwIn[d] += recs[k].q[QWwOut]
			}
		}
	}

	ev.swLag, ev.wwLag = swLag, wwLag
	ev.res.commit(j, recs)
	ev.j = j + 1
	return nil
}
