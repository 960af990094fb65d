package urbanwater

import (
	"strings"

	"github.com/maseology/mmio"
)

// WriteOutput saves the committed record under dir: domain totals and the
// outlet hydrographs as csv, the full record as gob.
func (r *Results) WriteOutput(dir string) error {
	mmio.MakeDir(dir)
	n := r.Committed
	dts := r.T[:n]

	glb := make([][]float64, NQ)
	for k := 0; k < NQ; k++ {
		glb[k] = r.Glb[k][:n]
	}
	mmio.WriteCsvDateFloats(dir+"glb.csv", "date,"+strings.Join(QNames[:], ","), dts, glb...)
	mmio.WriteCsvDateFloats(dir+"hyd.csv", "date,storm,wastewater", dts, r.Hyd[:n], r.WwHyd[:n])
	return r.SaveGob(dir + "results.gob")
}

// WriteCell saves one cell's full record to a csv.
func (r *Results) WriteCell(fp string, cid int) error {
	m, err := r.CellSeries(cid)
	if err != nil {
		return err
	}
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("date," + strings.Join(QNames[:], ",")); err != nil {
		return err
	}
	for j := 0; j < r.Committed; j++ {
		row := make([]interface{}, 0, NQ+1)
		row = append(row, r.T[j].Format("2006-01-02"))
		for k := 0; k < NQ; k++ {
			row = append(row, m[QNames[k]][j])
		}
		csvw.WriteLine(row...)
	}
	return nil
}
