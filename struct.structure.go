package urbanwater

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"

	"github.com/maseology/mmaths/slice"
)

// Structure holds the static topology of the model domain.
type Structure struct {
	Cids  []int     // cell IDs
	Ds    []int     // downstream cell array index; -1 discharges at the domain outlet
	Ups   [][]int   // upstream cell array indices
	Outer [][]int   // evaluation rounds; rounds are ordered upstream-down, members are mutually independent
	Delay []bool    // outflow held to the next timestep (declared loop breaks)
	Area  []float64 // cell areas [m²]
	Nc    int
}

// NewStructure builds the static routing order from per-cell downstream IDs.
// Cells absent from down (or mapped to an unknown ID) discharge at the domain
// outlet. Cells named in delay hold their sewer outflow to the next timestep,
// which removes their downstream edge from the ordering; any cycle not broken
// this way returns a TopologyError.
func NewStructure(cids []int, down map[int]int, delay map[int]bool, area map[int]float64) (*Structure, error) {
	nc := len(cids)
	mx := make(map[int]int, nc)
	for i, c := range cids {
		if _, ok := mx[c]; ok {
			return nil, &ConfigurationError{Field: "cells", Msg: fmt.Sprintf("duplicate cell ID %d", c)}
		}
		mx[c] = i
	}

	s := Structure{
		Cids:  cids,
		Ds:    make([]int, nc),
		Ups:   make([][]int, nc),
		Delay: make([]bool, nc),
		Area:  make([]float64, nc),
		Nc:    nc,
	}
	for i, c := range cids {
		s.Area[i] = area[c]
		s.Delay[i] = delay[c]
		s.Ds[i] = -1
		if d, ok := down[c]; ok {
			if j, ok := mx[d]; ok {
				s.Ds[i] = j
				s.Ups[j] = append(s.Ups[j], i)
			}
		}
	}
	if err := s.buildComputationalOrder(); err != nil {
		return nil, err
	}
	return &s, nil
}

// buildComputationalOrder layers the routing graph into concurrent-safe
// evaluation rounds: every cell lands one round past its furthest
// (non-delayed) upstream contributor.
func (s *Structure) buildComputationalOrder() error {
	nin := make([]int, s.Nc)
	for i, d := range s.Ds {
		if d > -1 && !s.Delay[i] {
			nin[d]++
		}
	}

	lvl, q, nproc := make([]int, s.Nc), make([]int, 0, s.Nc), 0
	for i := 0; i < s.Nc; i++ {
		if nin[i] == 0 {
			q = append(q, i)
		}
	}
	for len(q) > 0 {
		i := q[0]
		q = q[1:]
		nproc++
		if d := s.Ds[i]; d > -1 && !s.Delay[i] {
			if l := lvl[i] + 1; l > lvl[d] {
				lvl[d] = l
			}
			if nin[d]--; nin[d] == 0 {
				q = append(q, d)
			}
		}
	}
	if nproc < s.Nc {
		var cyc []int
		for i := 0; i < s.Nc; i++ {
			if nin[i] > 0 {
				cyc = append(cyc, s.Cids[i])
			}
		}
		return &TopologyError{Cycle: cyc}
	}

	cnt := make(map[int]int, s.Nc)
	for i, l := range lvl {
		cnt[i] = l
	}
	mord, lord := slice.InvertMap(cnt)
	ord := make([][]int, len(lord))
	for i, k := range lord {
		cpy := make([]int, len(mord[k]))
		copy(cpy, mord[k])
		sort.Ints(cpy) // fixed merge order keeps summation bit-reproducible
		ord[i] = cpy
	}
	s.Outer = ord
	return nil
}

// Outlets returns the array indices of cells discharging at the domain outlet.
func (s *Structure) Outlets() []int {
	var o []int
	for i, d := range s.Ds {
		if d == -1 {
			o = append(o, i)
		}
	}
	return o
}

// TotalArea returns the domain area [m²].
func (s *Structure) TotalArea() float64 {
	a := 0.
	for _, v := range s.Area {
		a += v
	}
	return a
}

// SaveGob Structure to gob
func (s *Structure) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Structure.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf(" Structure.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobStructure loads
func LoadGobStructure(fp string) (*Structure, error) {
	var strc Structure
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&strc); err != nil {
		return nil, err
	}
	f.Close()
	return &strc, nil
}
