package urbanwater

import (
	"encoding/gob"
	"fmt"
	"os"
)

type checkpoint struct {
	Step         int
	Sta          []CellState
	SwLag, WwLag []float64
	Res          *Results
}

// SaveCheckpoint writes the last committed state to fp. The write lands in a
// temporary file first so an interrupted save never clobbers the previous
// checkpoint.
func (ev *Evaluator) SaveCheckpoint(fp string) error {
	tmp := fp + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf(" Evaluator.SaveCheckpoint %v", err)
	}
	chk := checkpoint{Step: ev.j, Sta: ev.sta, SwLag: ev.swLag, WwLag: ev.wwLag, Res: ev.res}
	if err := gob.NewEncoder(f).Encode(chk); err != nil {
		f.Close()
		return fmt.Errorf(" Evaluator.SaveCheckpoint %v", err)
	}
	f.Close()
	return os.Rename(tmp, fp)
}

// ResumeCheckpoint restores component states and the committed record from
// fp, positioning the evaluator at the next uncommitted step.
func (ev *Evaluator) ResumeCheckpoint(fp string) error {
	f, err := os.Open(fp)
	if err != nil {
		return fmt.Errorf(" Evaluator.ResumeCheckpoint %v", err)
	}
	var chk checkpoint
	if err := gob.NewDecoder(f).Decode(&chk); err != nil {
		f.Close()
		return fmt.Errorf(" Evaluator.ResumeCheckpoint %v", err)
	}
	f.Close()
	if len(chk.Sta) != ev.strc.Nc || chk.Res == nil || len(chk.Res.Cids) != ev.strc.Nc {
		return &ConfigurationError{Field: "checkpoint", Msg: fmt.Sprintf("%s does not match the %d-cell domain", fp, ev.strc.Nc)}
	}

	outlet := make([]bool, ev.strc.Nc)
	for _, i := range ev.strc.Outlets() {
		outlet[i] = true
	}
	chk.Res.outlet = outlet

	ev.sta = chk.Sta
	ev.swLag, ev.wwLag = chk.SwLag, chk.WwLag
	ev.res = chk.Res
	ev.j = chk.Step
	return nil
}
