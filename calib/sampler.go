package calib

import "github.com/maseology/mmaths"

const nDim = 3

// Par3 maps a unit-hypercube sample to the response parameters.
func Par3(u []float64) (q10, t0, fgpp float64) {
	q10 = mmaths.LinearTransform(1.05, 3.5, u[0]) // respiration sensitivity -- NOTE must exceed 1
	t0 = mmaths.LinearTransform(-5., 25., u[1])   // baseline temperature [°C]
	fgpp = mmaths.LinearTransform(1.05, 4., u[2]) // monthly GPP magnitude per unit net flux
	return
}
