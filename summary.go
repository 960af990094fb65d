package urbanwater

import (
	"fmt"

	"github.com/maseology/mmio"
)

// PrintSummary prints domain-average annual fluxes over the committed
// record.
func (r *Results) PrintSummary(dtDays float64) {
	n := r.Committed
	if n == 0 || r.TotalArea == 0. || dtDays <= 0. {
		return
	}
	f := 365.24 / dtDays / float64(n) / r.TotalArea / mmToM // [m³/timestep] to [mm/yr]
	sum := func(v []float64) float64 {
		s := 0.
		for j := 0; j < n; j++ {
			s += v[j]
		}
		return s * f
	}
	fmt.Printf("\n %s cells, %s timesteps, %.2f km²\n",
		mmio.Thousands(int64(len(r.Cids))), mmio.Thousands(int64(n)), r.TotalArea/1000./1000.)
	fmt.Printf("  precipitation:      %8.1f mm/yr\n", sum(r.Glb[QPrecip]))
	fmt.Printf("  evapotranspiration: %8.1f mm/yr\n", sum(r.Glb[QAet]))
	fmt.Printf("  stormwater yield:   %8.1f mm/yr\n", sum(r.Hyd))
	fmt.Printf("  wastewater yield:   %8.1f mm/yr\n", sum(r.WwHyd))
	fmt.Printf("  deep seepage:       %8.1f mm/yr\n", sum(r.Glb[QSeep]))
	fmt.Printf("  demand:             %8.1f mm/yr\n", sum(r.Glb[QDemand]))
	fmt.Printf("  tank supply:        %8.1f mm/yr\n", sum(r.Glb[QTankSup]))
	fmt.Printf("  reuse supply:       %8.1f mm/yr\n", sum(r.Glb[QReuse]))
	fmt.Printf("  potable import:     %8.1f mm/yr\n", sum(r.Glb[QImport]))
}
