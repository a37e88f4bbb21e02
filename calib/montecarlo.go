package calib

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	olsenranderson "github.com/psu-inversion/olsen-randerson"
)

// SampleResponse sweeps the response-parameter space with a Latin
// hypercube, writing one KGE per sample to fp (parameter sensitivity check
// ahead of a full Fit).
func SampleResponse(ti *olsenranderson.TimeIndex, tC, rad, obs []float64, neeMonthly olsenranderson.MonthlyFlux, nsmpl int, fp string) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, nsmpl, nDim, false)

	t, err := mmio.NewTXTwriter(fp)
	if err != nil {
		log.Fatalf("SampleResponse %s save error: %v", fp, err)
	}
	defer t.Close()
	t.WriteLine(fmt.Sprintf("sample(of %d),kge,q10,t0,fgpp", nsmpl))
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, nDim)
		for j := 0; j < nDim; j++ {
			ut[j] = sp.U[j][k]
		}
		q10, t0, fgpp := Par3(ut)
		kge := math.NaN()
		if sim, err := downscale(ti, tC, rad, neeMonthly, q10, t0, fgpp); err == nil {
			kge = objfunc.KGE(obs, sim)
		}
		t.WriteLine(fmt.Sprintf("%d,%f,%f,%f,%f", k, kge, q10, t0, fgpp))
		fmt.Print(".")
	}
	fmt.Println()
}
