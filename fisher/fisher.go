// Package fisher implements the Fisher et al. (2016, Biogeosciences,
// doi:10.5194/bg-13-4271-2016) modification of the Olsen-Randerson
// downscaling, which replaces calendar-month normalization with a rolling
// window to avoid discontinuities at month change.
//
// This is the weaker-guarantee path, kept deliberately faithful to the
// reference including its documented gaps:
//   - the rolling window TRAILS the given time (it is not centered on it);
//   - net flux conservation over any window or month is NOT guaranteed;
//   - output is NaN outside the coverage of the given monthly flux
//     timestamps, so the first and last periods are incomplete (callers are
//     advised to pad one period on each end);
//   - a window with zero total radiation yields NaN, not an error.
//
// Callers needing the conservation invariant must use the parent package.
package fisher

import (
	"fmt"
	"math"
	"time"

	or "github.com/psu-inversion/olsen-randerson"
)

// Window is the span of the trailing mean applied to the weight series.
const Window = 30 * 24 * time.Hour

// Downscale redistributes monthly net flux to the resolution of dts. The
// monthly values nee are anchored at fluxDts (typically month centers) and
// linearly time-interpolated to dts; tC [°C] and rad [W/m²] align with dts.
// Sign convention: NEE positive = release; output = resp − gpp.
func Downscale(dts []time.Time, tC, rad []float64, fluxDts []time.Time, nee []float64, q10, t0 float64) ([]float64, error) {
	gppM, respM := make([]float64, len(nee)), make([]float64, len(nee))
	for i, v := range nee {
		gppM[i] = -or.NEPToGPPFactor * v
		respM[i] = gppM[i] + v
	}
	gpp, err := DownscaleGPP(dts, rad, fluxDts, gppM)
	if err != nil {
		return nil, err
	}
	resp, err := DownscaleResp(dts, tC, fluxDts, respM, q10, t0)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(dts))
	for i := range out {
		out[i] = resp[i] - gpp[i]
	}
	return out, nil
}

// DownscaleGPP redistributes GPP given at fluxDts over the light response,
// scaled against a trailing Window mean rather than a monthly mean.
func DownscaleGPP(dts []time.Time, rad []float64, fluxDts []time.Time, gpp []float64) ([]float64, error) {
	if err := check(dts, rad, fluxDts, gpp); err != nil {
		return nil, fmt.Errorf(" fisher.DownscaleGPP:%w", err)
	}
	return redistribute(dts, or.GPPScaling(rad), fluxDts, gpp), nil
}

// DownscaleResp redistributes respiration given at fluxDts over the Q10
// response, scaled against a trailing Window mean.
func DownscaleResp(dts []time.Time, tC []float64, fluxDts []time.Time, resp []float64, q10, t0 float64) ([]float64, error) {
	if err := check(dts, tC, fluxDts, resp); err != nil {
		return nil, fmt.Errorf(" fisher.DownscaleResp:%w", err)
	}
	w, err := or.RespScaling(tC, q10, t0)
	if err != nil {
		return nil, err
	}
	return redistribute(dts, w, fluxDts, resp), nil
}

func check(dts []time.Time, cov []float64, fluxDts []time.Time, flux []float64) error {
	if len(cov) != len(dts) {
		return fmt.Errorf(" %w: %d timesteps, %d covariate values", or.ErrAlignment, len(dts), len(cov))
	}
	if len(flux) != len(fluxDts) {
		return fmt.Errorf(" %w: %d flux timestamps, %d flux values", or.ErrAlignment, len(fluxDts), len(flux))
	}
	if len(fluxDts) < 2 {
		return fmt.Errorf(" %w: need at least 2 flux periods to interpolate", or.ErrAlignment)
	}
	for i := 1; i < len(dts); i++ {
		if !dts[i].After(dts[i-1]) {
			return fmt.Errorf(" %w: timestamps not strictly increasing at position %d", or.ErrAlignment, i)
		}
	}
	for i := 1; i < len(fluxDts); i++ {
		if !fluxDts[i].After(fluxDts[i-1]) {
			return fmt.Errorf(" %w: flux timestamps not strictly increasing at position %d", or.ErrAlignment, i)
		}
	}
	return nil
}

// redistribute computes base_i/wbar_i * w_i where base is the flux
// interpolated to dts and wbar the trailing-window mean of w. Zero wbar
// (all-dark window on the light response) yields NaN.
func redistribute(dts []time.Time, w []float64, fluxDts []time.Time, flux []float64) []float64 {
	wbar := trailingMean(dts, w)
	base := interpTime(fluxDts, flux, dts)
	out := make([]float64, len(dts))
	for i := range out {
		if wbar[i] == 0. {
			out[i] = math.NaN()
			continue
		}
		out[i] = base[i] / wbar[i] * w[i]
	}
	return out
}

// trailingMean averages w over the window (t-Window, t] for every t in dts.
// The window is never centered, matching the reference. A NaN sample makes
// every window containing it NaN.
func trailingMean(dts []time.Time, w []float64) []float64 {
	out := make([]float64, len(w))
	j := 0 // first index inside the current window
	for i := range dts {
		open := dts[i].Add(-Window)
		for !dts[j].After(open) {
			j++
		}
		s := 0.
		for k := j; k <= i; k++ {
			s += w[k]
		}
		out[i] = s / float64(i-j+1)
	}
	return out
}

// interpTime linearly interpolates (xDts, x) onto dts. Targets before the
// first or after the last knot are NaN (incomplete edge periods).
func interpTime(xDts []time.Time, x []float64, dts []time.Time) []float64 {
	out := make([]float64, len(dts))
	j := 0
	for i, t := range dts {
		if t.Before(xDts[0]) || t.After(xDts[len(xDts)-1]) {
			out[i] = math.NaN()
			continue
		}
		for j+1 < len(xDts)-1 && !xDts[j+1].After(t) {
			j++
		}
		// xDts[j] <= t <= xDts[j+1]
		f := float64(t.Sub(xDts[j])) / float64(xDts[j+1].Sub(xDts[j]))
		out[i] = x[j] + f*(x[j+1]-x[j])
	}
	return out
}
