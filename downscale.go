package olsenranderson

import "fmt"

// Downscaler holds a time index and its two aligned weighting series, ready
// to distribute any number of monthly flux sets. Stateless after
// construction; safe for concurrent use by independent callers.
type Downscaler struct {
	TI     *TimeIndex
	Wr, Wg []float64 // [dateID] respiration and light weights
}

// NewDownscaler derives the weighting series from the covariates. tC [°C]
// and rad [W/m²] must align with ti.
func NewDownscaler(ti *TimeIndex, tC, rad []float64, q10, t0 float64) (*Downscaler, error) {
	if len(tC) != ti.Nt() || len(rad) != ti.Nt() {
		return nil, fmt.Errorf(" olsenranderson.NewDownscaler: %w: %d timesteps, %d temperatures, %d radiation values", ErrAlignment, ti.Nt(), len(tC), len(rad))
	}
	wr, err := RespScaling(tC, q10, t0)
	if err != nil {
		return nil, err
	}
	return &Downscaler{TI: ti, Wr: wr, Wg: GPPScaling(rad)}, nil
}

// DownscaleResp distributes monthly mean respiration over the temperature
// response. Per-month sample-means of the output equal the monthly inputs.
func (d *Downscaler) DownscaleResp(respMonthly MonthlyFlux) ([]float64, error) {
	return d.downscale(d.Wr, respMonthly, false)
}

// DownscaleGPP distributes monthly mean GPP over the light response. A month
// whose radiation weights are identically zero (polar night) yields a flat
// zero GPP contribution for that month rather than an error; conservation
// holds for every other month.
func (d *Downscaler) DownscaleGPP(gppMonthly MonthlyFlux) ([]float64, error) {
	return d.downscale(d.Wg, gppMonthly, true)
}

// DownscaleComponents distributes both components and returns resp, gpp and
// net = resp − gpp, all aligned to the time index.
func (d *Downscaler) DownscaleComponents(respMonthly, gppMonthly MonthlyFlux) (resp, gpp, nee []float64, err error) {
	if resp, err = d.DownscaleResp(respMonthly); err != nil {
		return nil, nil, nil, err
	}
	if gpp, err = d.DownscaleGPP(gppMonthly); err != nil {
		return nil, nil, nil, err
	}
	nee = make([]float64, len(resp))
	for i := range nee {
		nee[i] = resp[i] - gpp[i]
	}
	return resp, gpp, nee, nil
}

// DownscaleNEE splits monthly net flux into components per the reference:
// GPP_m = −NEPToGPPFactor·NEE_m, Resp_m = GPP_m + NEE_m, then recombines the
// downscaled components. For every complete calendar month the sample-mean
// of the output equals the input monthly NEE (to rounding), except months
// caught by the DownscaleGPP polar-night fallback.
func (d *Downscaler) DownscaleNEE(neeMonthly MonthlyFlux) ([]float64, error) {
	respM, gppM := make(MonthlyFlux, len(neeMonthly)), make(MonthlyFlux, len(neeMonthly))
	for k, v := range neeMonthly {
		gppM[k] = -NEPToGPPFactor * v
		respM[k] = gppM[k] + v
	}
	_, _, nee, err := d.DownscaleComponents(respM, gppM)
	return nee, err
}

// downscale normalizes w to unit sample-mean within every month span and
// scales by that month's flux. A NaN weight poisons its month's mean,
// making the whole month NaN (missing-value propagation). A zero mean can
// only arise from an all-zero weight series; zeroFlat maps that to a flat
// zero month, otherwise it is a degenerate-normalization error. Never emits
// ±Inf.
func (d *Downscaler) downscale(w []float64, mf MonthlyFlux, zeroFlat bool) ([]float64, error) {
	if err := d.TI.checkCoverage(mf); err != nil {
		return nil, err
	}
	out := make([]float64, d.TI.Nt())
	for _, s := range d.TI.spans {
		sw := 0.
		for i := s.i0; i < s.i1; i++ {
			sw += w[i]
		}
		wbar := sw / float64(s.i1-s.i0)
		if wbar == 0. {
			if zeroFlat {
				continue // flat zero month
			}
			return nil, fmt.Errorf(" olsenranderson: %w: weight sample-mean is zero for %04d-%02d", ErrDegenerate, s.yr, s.mo)
		}
		fm := mf[s.date(d.TI.T[s.i0].Location())]
		for i := s.i0; i < s.i1; i++ {
			out[i] = fm * w[i] / wbar
		}
	}
	return out, nil
}
