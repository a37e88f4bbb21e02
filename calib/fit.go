// Package calib fits the downscaling response parameters (q10, t0 and the
// net-flux-to-GPP factor) to observed sub-daily NEE, e.g. gap-filled
// eddy-covariance records, using the monthly budget of the observations
// themselves as the flux being redistributed.
package calib

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	olsenranderson "github.com/psu-inversion/olsen-randerson"
)

// Fit calibrates against obs with SCE, minimizing 1-KGE. Returns the
// fitted parameters and the final KGE.
func Fit(ti *olsenranderson.TimeIndex, tC, rad, obs []float64, neeMonthly olsenranderson.MonthlyFlux) (q10, t0, fgpp, kge float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	gen := func(u []float64) float64 {
		q10, t0, fgpp := Par3(u)
		sim, err := downscale(ti, tC, rad, neeMonthly, q10, t0, fgpp)
		if err != nil {
			return math.MaxFloat64
		}
		return 1. - objfunc.KGE(obs, sim)
	}

	fmt.Println(" optimizing..")
	uFinal, ofFinal := glbopt.SCE(runtime.GOMAXPROCS(0), nDim, rng, gen, true)
	q10, t0, fgpp = Par3(uFinal)
	kge = 1. - ofFinal
	fmt.Printf("  KGE: %.3f  q10: %.3f  t0: %.1f  fgpp: %.2f\n", kge, q10, t0, fgpp)
	return
}

// downscale runs the component-form downscaler with a free GPP factor:
// GPP_m = -fgpp*NEE_m, Resp_m = GPP_m + NEE_m.
func downscale(ti *olsenranderson.TimeIndex, tC, rad []float64, neeMonthly olsenranderson.MonthlyFlux, q10, t0, fgpp float64) ([]float64, error) {
	d, err := olsenranderson.NewDownscaler(ti, tC, rad, q10, t0)
	if err != nil {
		return nil, err
	}
	respM, gppM := make(olsenranderson.MonthlyFlux, len(neeMonthly)), make(olsenranderson.MonthlyFlux, len(neeMonthly))
	for k, v := range neeMonthly {
		gppM[k] = -fgpp * v
		respM[k] = gppM[k] + v
	}
	_, _, nee, err := d.DownscaleComponents(respM, gppM)
	return nee, err
}
