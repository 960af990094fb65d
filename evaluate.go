package urbanwater

import (
	"fmt"

	"github.com/gosuri/uiprogress"
)

// Run advances the evaluator from its next step to the end of the forcing
// record, checkpointing as configured. Results committed ahead of a failed
// step remain available alongside the returned error.
func (ev *Evaluator) Run() (*Results, error) {
	nt := len(ev.frc.T)
	for j := ev.j; j < nt; j++ {
		if err := ev.doStep(j); err != nil {
			return ev.res, err
		}
		if ev.cfg.ChkptEvery > 0 && len(ev.cfg.ChkptFile) > 0 && ev.j%ev.cfg.ChkptEvery == 0 {
			if err := ev.SaveCheckpoint(ev.cfg.ChkptFile); err != nil {
				return ev.res, err
			}
		}
	}
	return ev.res, nil
}

// RunWithProgress is Run with a console progress bar.
func (ev *Evaluator) RunWithProgress() (*Results, error) {
	nt := len(ev.frc.T)

	uiprogress.Start()
	timestep := make(chan string)
	bar := uiprogress.AddBar(nt - ev.j).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-timestep
	})

	for j := ev.j; j < nt; j++ {
		timestep <- fmt.Sprint(ev.frc.T[j])
		if err := ev.doStep(j); err != nil {
			close(timestep)
			uiprogress.Stop()
			return ev.res, err
		}
		if ev.cfg.ChkptEvery > 0 && len(ev.cfg.ChkptFile) > 0 && ev.j%ev.cfg.ChkptEvery == 0 {
			if err := ev.SaveCheckpoint(ev.cfg.ChkptFile); err != nil {
				close(timestep)
				uiprogress.Stop()
				return ev.res, err
			}
		}
		bar.Incr()
	}
	close(timestep)
	uiprogress.Stop()

	return ev.res, nil
}
