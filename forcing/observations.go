package forcing

import (
	"fmt"
	"math"
	"time"

	"github.com/maseology/mmio"
	olsenranderson "github.com/psu-inversion/olsen-randerson"
)

// LoadObsNEE reads a date,value csv of observed sub-daily NEE (e.g. a
// gap-filled eddy-covariance record) and aligns it to dts, NaN where no
// observation exists.
func LoadObsNEE(fp string, dts []time.Time) ([]float64, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return nil, fmt.Errorf(" forcing.LoadObsNEE: %v", err)
	}
	o, cc := make([]float64, len(dts)), 0
	for i, t := range dts {
		if v, ok := c[t.Unix()]; ok {
			o[i] = v
			cc++
		} else {
			o[i] = math.NaN()
		}
	}
	fmt.Printf(" > observed NEE: %d of %d timesteps\n", cc, len(dts))
	return o, nil
}

// MonthlyMeanNEE aggregates a sub-daily NEE record to monthly mean flux,
// the budget form the downscaler redistributes. Used to calibrate the
// response parameters against the observations' own monthly budget.
func MonthlyMeanNEE(dts []time.Time, nee []float64) olsenranderson.MonthlyFlux {
	ts := make(mmio.TimeSeries, len(dts))
	for i, t := range dts {
		ts[t] = nee[i]
	}
	sums, cnts := mmio.MonthlySumCount(ts)
	dn, dx := mmio.MinMaxTimeseries(ts)
	mf := make(olsenranderson.MonthlyFlux)
	for y := mmio.Yr(dn.Year()); y <= mmio.Yr(dx.Year()); y++ {
		for m := mmio.Mo(1); m <= 12; m++ {
			if s, ok := sums[y][m]; ok {
				mf[time.Date(int(y), time.Month(m), 1, 0, 0, 0, 0, dn.Location())] = s / cnts[y][m]
			}
		}
	}
	return mf
}
