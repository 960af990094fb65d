package prep

import (
	"fmt"

	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/grid"
)

// GridCells reads a grid definition and returns layout rows for its active
// cells: uniform areas from the cell width, topology left to the outlet.
func GridCells(gdefFP string, lu int) ([]CellDef, error) {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf("prep.GridCells: %v", err)
	}
	if len(gd.Sactives) <= 0 {
		return nil, fmt.Errorf("prep.GridCells: grid definition requires active cells")
	}
	defs := make([]CellDef, len(gd.Sactives))
	for k, cid := range gd.Sactives {
		defs[k] = CellDef{Cid: cid, Down: -1, Lu: lu, Area: gd.Cwidth * gd.Cwidth}
	}
	return defs, nil
}

// CellLatLons converts active-cell centroids of a grid definition to
// latitude-longitude, given its UTM zone.
func CellLatLons(gdefFP string, zone int) (map[int][2]float64, error) {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, fmt.Errorf("prep.CellLatLons: %v", err)
	}
	out := make(map[int][2]float64, len(gd.Sactives))
	for _, cid := range gd.Sactives {
		xy := gd.Coord[cid]
		lat, lon, err := UTM.ToLatLon(xy.X, xy.Y, zone, "", true)
		if err != nil {
			return nil, fmt.Errorf("prep.CellLatLons: %v -- (x,y)=(%f, %f); cid: %d", err, xy.X, xy.Y, cid)
		}
		out[cid] = [2]float64{lat, lon}
	}
	return out, nil
}
