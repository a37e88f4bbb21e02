package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	olsenranderson "github.com/psu-inversion/olsen-randerson"
	"github.com/psu-inversion/olsen-randerson/calib"
	"github.com/psu-inversion/olsen-randerson/forcing"
)

func main() {

	controlFP := "downscale.inst"
	if len(os.Args) > 1 {
		controlFP = os.Args[1]
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete")

	// control file
	var frcFP, neeDir, outPrfx, taCol, radCol, obsFP string
	var lat, q10, t0 float64
	var nsmpl int
	func() {
		ins := mmio.NewInstruct(controlFP)
		frcFP = ins.Param["frcfp"][0]
		neeDir = ins.Param["needir"][0]
		outPrfx = ins.Param["outprfx"][0]
		taCol, radCol = "AirTemperature", "GlobalRadiation"
		if c, ok := ins.Param["tacol"]; ok {
			taCol = c[0]
		}
		if c, ok := ins.Param["radcol"]; ok {
			radCol = c[0]
		}
		if o, ok := ins.Param["obsfp"]; ok {
			obsFP = o[0] // observed sub-daily NEE; triggers parameter calibration
		}
		if n, ok := ins.Param["nsmpl"]; ok { // Latin-hypercube sensitivity sweep
			var err error
			if nsmpl, err = strconv.Atoi(n[0]); err != nil {
				log.Fatalf("downscale: bad nsmpl in %s: %v", controlFP, err)
			}
		}
		lat = -999.
		if l, ok := ins.Param["lat"]; ok {
			var err error
			if lat, err = strconv.ParseFloat(l[0], 64); err != nil {
				log.Fatalf("downscale: bad lat in %s: %v", controlFP, err)
			}
		}
	}()

	// load forcings
	frc := func() *forcing.Forcing {
		switch mmio.GetExtension(frcFP) {
		case ".gob":
			frc, err := forcing.LoadGobForcing(frcFP)
			if err != nil {
				log.Fatalf("downscale: %v", err)
			}
			return frc
		case ".met":
			frc, err := forcing.LoadMET(frcFP, taCol, radCol, true)
			if err != nil {
				log.Fatalf("downscale: %v", err)
			}
			return frc
		default:
			log.Fatalf("downscale: unknown forcing type: %s", frcFP)
			return nil
		}
	}()
	if lat > -900. { // no radiation record; synthesize a clear-sky curve
		spar := forcing.SyntheticPAR(frc.T, lat)
		for i := range frc.Rad {
			frc.Rad[i] = spar
		}
	}
	frc.CheckAndPrint()
	tt.Print("forcing load complete\n")

	ti, err := olsenranderson.NewTimeIndex(frc.T)
	if err != nil {
		log.Fatalf("downscale: %v", err)
	}

	// response parameters: reference defaults, or fitted to an observed
	// sub-daily NEE record at the first station
	q10, t0 = olsenranderson.Q10, olsenranderson.T0
	fgpp := olsenranderson.NEPToGPPFactor
	if len(obsFP) > 0 {
		obs, err := forcing.LoadObsNEE(obsFP, frc.T)
		if err != nil {
			log.Fatalf("downscale: %v", err)
		}
		mf := forcing.MonthlyMeanNEE(frc.T, obs) // the observations' own monthly budget
		if nsmpl > 0 {
			calib.SampleResponse(ti, frc.Ta[0], frc.Rad[0], obs, mf, nsmpl, outPrfx+"sample.csv")
			tt.Print("parameter sweep complete\n")
		}
		q10, t0, fgpp, _ = calib.Fit(ti, frc.Ta[0], frc.Rad[0], obs, mf)
		tt.Print("calibration complete\n")
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(frc.Nam)).AppendCompleted().PrependElapsed()
	station := make(chan string)
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-station
	})
	for i, nam := range frc.Nam {
		station <- nam
		mf, err := forcing.LoadMonthlyNEE(neeDir + nam + ".csv")
		if err != nil {
			log.Fatalf("downscale %s: %v", nam, err)
		}

		d, err := olsenranderson.NewDownscaler(ti, frc.Ta[i], frc.Rad[i], q10, t0)
		if err != nil {
			log.Fatalf("downscale %s: %v", nam, err)
		}
		respM, gppM := make(olsenranderson.MonthlyFlux, len(mf)), make(olsenranderson.MonthlyFlux, len(mf))
		for k, v := range mf {
			gppM[k] = -fgpp * v
			respM[k] = gppM[k] + v
		}
		_, _, nee, err := d.DownscaleComponents(respM, gppM)
		if err != nil {
			log.Fatalf("downscale %s: %v", nam, err)
		}

		mmio.WriteCsvDateFloats(outPrfx+nam+".nee.csv", "date,nee", frc.T, nee)
		if err := forcing.WriteFloats(outPrfx+nam+".nee.bin", nee); err != nil {
			log.Fatalf("downscale %s: %v", nam, err)
		}
		bar.Incr()
	}
	close(station)
	uiprogress.Stop()
}
