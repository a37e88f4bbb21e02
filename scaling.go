package olsenranderson

import (
	"fmt"
	"math"
)

// RespScaling converts air temperature [°C] to a dimensionless respiration
// weighting series: w_i = q10^((T_i-t0)/10). Output is strictly positive and
// monotone increasing in temperature; NaN temperatures propagate as NaN.
func RespScaling(tC []float64, q10, t0 float64) ([]float64, error) {
	if q10 <= 1. {
		return nil, fmt.Errorf(" olsenranderson.RespScaling: %w: q10 = %f (must exceed 1)", ErrParam, q10)
	}
	w := make([]float64, len(tC))
	for i, t := range tC {
		w[i] = math.Pow(q10, (t-t0)/10.)
	}
	return w, nil
}

// GPPScaling converts downwelling shortwave radiation [W/m²] to a
// photosynthesis weighting series by a linear light response: w_i = rad_i,
// clamped to zero where rad_i <= 0 (no photosynthesis at night; negative
// readings treated as dark). NaN radiation propagates as NaN.
func GPPScaling(rad []float64) []float64 {
	w := make([]float64, len(rad))
	for i, r := range rad {
		if r > 0. || math.IsNaN(r) {
			w[i] = r
		}
	}
	return w
}
