// Package olsenranderson redistributes monthly-mean carbon surface flux to
// sub-daily (typically 3-hourly) resolution following Olsen and Randerson
// (2004, JGR-Atmospheres, doi:10.1029/2003JD003968). A monthly net ecosystem
// exchange (NEE) budget is split into respiration and gross primary
// productivity (GPP) components, each component is distributed over the month
// using a temperature (Q10) and a radiation (linear light) response, and the
// components are recombined such that the sample-mean of the output over any
// complete calendar month reproduces the input monthly mean.
//
// Units: temperature [°C], downwelling radiation [W/m²] (any fixed scale;
// normalization cancels it), flux in whatever units the monthly aggregates
// carry. No unit conversion is performed.
//
// Sign convention: NEE positive indicates carbon release to the atmosphere;
// downscaled net flux = respiration − GPP.
package olsenranderson

import "errors"

// Reference-implementation defaults.
const (
	// Q10 is the factor by which respiration increases for a ten degree
	// rise in temperature.
	Q10 = 1.5
	// T0 is the baseline temperature [°C]; best kept near the centre of
	// the temperature range.
	T0 = 10.
	// NEPToGPPFactor estimates monthly GPP magnitude from monthly net flux.
	NEPToGPPFactor = 2.
)

var (
	// ErrAlignment indicates input series/aggregates that cannot be matched
	// to a consistent time index.
	ErrAlignment = errors.New("time index alignment")
	// ErrDegenerate indicates a month whose weighting series has zero
	// sample-mean, leaving the normalization undefined.
	ErrDegenerate = errors.New("degenerate weight normalization")
	// ErrParam indicates an invalid response-function parameter.
	ErrParam = errors.New("invalid parameter")
)
