package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/maseology/mmio"
	"github.com/ricardo8r/urbanWater"
	"github.com/ricardo8r/urbanWater/forcing"
	"github.com/ricardo8r/urbanWater/prep"
)

func main() {

	cfgfp := "config.yml"
	if len(os.Args) > 1 {
		cfgfp = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	cfg, err := urbanwater.LoadConfig(cfgfp)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// load data
	var defs []prep.CellDef
	if strings.EqualFold(filepath.Ext(cfg.LayoutFile), ".gdef") {
		defs, err = prep.GridCells(cfg.LayoutFile, 1) // raster domains carry one land-use class
	} else {
		defs, err = prep.LoadLayout(cfg.LayoutFile)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	lutab, err := prep.LoadLandUse(mmio.RemoveExtension(cfg.LayoutFile) + ".lu.yml")
	if err != nil {
		log.Fatalf("%v", err)
	}
	strc, par, err := prep.BuildDomain(defs, lutab, cfg.StepDays)
	if err != nil {
		log.Fatalf("%v", err)
	}
	frc, err := forcing.LoadCsv(cfg.ClimateFile, strc.Nc)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if dtb, dte, ok := cfg.Window(); ok {
		i0, i1, err := frc.Window(dtb, dte)
		if err != nil {
			log.Fatalf("%v", err)
		}
		frc.Trim(i0, i1)
	}
	tt.Print("Domain load complete\n")

	ev, err := urbanwater.Initialize(cfg, strc, par, frc)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(cfg.ChkptFile) > 0 {
		if _, ok := mmio.FileExists(cfg.ChkptFile); ok {
			if err := ev.ResumeCheckpoint(cfg.ChkptFile); err != nil {
				log.Fatalf("%v", err)
			}
			fmt.Printf(" resuming from step %d\n", ev.Step())
		}
	}

	// run model
	res, err := ev.RunWithProgress()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(cfg.OutDir) > 0 {
		urbanwater.DeleteMonitors(cfg.OutDir)
		if err := res.WriteOutput(cfg.OutDir); err != nil {
			log.Fatalf("%v", err)
		}
		if len(cfg.Monitors) > 0 {
			if err := res.WriteMonitors(cfg.OutDir, cfg.Monitors); err != nil {
				log.Fatalf("%v", err)
			}
			urbanwater.WaitMonitors()
		}
	}
	res.PrintSummary(cfg.StepDays)
}
