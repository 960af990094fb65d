package urbanwater

import (
	"fmt"
	"sync"

	"github.com/maseology/mmio"
)

var gwg sync.WaitGroup

// DeleteMonitors deletes monitor output from a previous model run and
// readies the output folder.
func DeleteMonitors(mdldir string) {
	mmio.MakeDir(mdldir)
	mmio.DeleteAllInDirectory(mdldir, ".mon")
}

// WaitMonitors waits for all writes to complete
func WaitMonitors() {
	gwg.Wait()
}

type monitor struct {
	v []float64
	c int
}

func (m *monitor) print(mdir string) {
	defer gwg.Done()
	mmio.WriteFloats(fmt.Sprintf("%s%d.mon", mdir, m.c), m.v)
}

// WriteMonitors spawns binary writes of stormwater discharge at the given
// monitor cells; call WaitMonitors before exiting.
func (r *Results) WriteMonitors(mdir string, cids []int) error {
	for _, c := range cids {
		found := false
		for i, cc := range r.Cids {
			if cc == c {
				m := monitor{v: r.Q[QStormOut][i][:r.Committed], c: c}
				gwg.Add(1)
				go m.print(mdir)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown monitor cell ID %d", c)
		}
	}
	return nil
}
