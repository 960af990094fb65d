package opt

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Sample draws n Latin hypercube samples over the p-dimensional unit
// hypercube, scoring each with gen across nwrkrs workers. The sample space
// and scores land beside outdir under a date-stamped batch prefix.
func Sample(gen func(u []float64) float64, n, p, nwrkrs int, outdir string) []float64 {

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, p, false)

	outdirbatch := outdir + time.Now().Format("060102150405") // batch number = date
	func() { // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < p; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(outdirbatch+".samplespace.csv", lns)
	}()

	of := make([]float64, n)
	var wg sync.WaitGroup
	sem := make(chan struct{}, nwrkrs)
	for k := 0; k < n; k++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int) {
			defer wg.Done()
			ut := make([]float64, p)
			for j := 0; j < p; j++ {
				ut[j] = sp.U[j][k]
			}
			of[k] = gen(ut)
			<-sem
		}(k)
	}
	wg.Wait()

	func() { // save scores
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprintf("%d,%f", k, of[k])
		}
		mmio.WriteLines(outdirbatch+".scores.csv", lns)
	}()

	return of
}
