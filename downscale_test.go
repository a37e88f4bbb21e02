package olsenranderson

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dielRad returns a sinusoidal daytime-only radiation curve [W/m²] with
// daylight between 06:00 and 18:00.
func dielRad(dts []time.Time, peak float64) []float64 {
	rad := make([]float64, len(dts))
	for i, t := range dts {
		h := float64(t.Hour()) + float64(t.Minute())/60.
		if h > 6. && h < 18. {
			rad[i] = peak * math.Sin(math.Pi*(h-6.)/12.)
		}
	}
	return rad
}

func meanOver(v []float64, i0, i1 int) float64 {
	s := 0.
	for i := i0; i < i1; i++ {
		s += v[i]
	}
	return s / float64(i1-i0)
}

// The reference scenario: one 30-day month at 3-hour resolution (240
// samples), constant temperature, sinusoidal daytime-only radiation,
// monthly mean respiration 5.0 and GPP 8.0 (net −3.0, uptake).
func TestDownscaleComponentsReference(t *testing.T) {
	dts := dateRange(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	require.Len(t, dts, 240)
	ti, err := NewTimeIndex(dts)
	require.NoError(t, err)

	tC := make([]float64, len(dts))
	for i := range tC {
		tC[i] = 17.5
	}
	d, err := NewDownscaler(ti, tC, dielRad(dts, 600.), Q10, T0)
	require.NoError(t, err)

	jun := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	resp, gpp, nee, err := d.DownscaleComponents(
		MonthlyFlux{jun: 5.}, MonthlyFlux{jun: 8.})
	require.NoError(t, err)
	require.Len(t, nee, 240)

	assert.InDelta(t, -3., meanOver(nee, 0, 240), 1e-9, "monthly mean conserved")
	assert.InDelta(t, 5., meanOver(resp, 0, 240), 1e-9)
	assert.InDelta(t, 8., meanOver(gpp, 0, 240), 1e-9)

	for i, dt := range dts {
		h := dt.Hour()
		assert.InDelta(t, 5., resp[i], 1e-12, "constant temperature gives flat respiration")
		if h < 9 || h >= 18 {
			assert.Zero(t, gpp[i], "no photosynthesis at night (hour %d)", h)
		} else {
			assert.Greater(t, gpp[i], 0.)
		}
	}
}

func TestDownscaleNEEConservation(t *testing.T) {
	dts := dateRange(time.Date(2014, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	ti, err := NewTimeIndex(dts)
	require.NoError(t, err)

	// synthetic seasonal cycle with diel structure
	tC, rad := make([]float64, len(dts)), dielRad(dts, 450.)
	for i, dt := range dts {
		doy := float64(dt.YearDay())
		tC[i] = 8. - 14.*math.Cos(2.*math.Pi*doy/365.) - 4.*math.Cos(2.*math.Pi*float64(dt.Hour())/24.)
	}
	d, err := NewDownscaler(ti, tC, rad, Q10, T0)
	require.NoError(t, err)

	mf := MonthlyFlux{}
	for i, m := range ti.Months() {
		mf[m] = []float64{2.3, 1.1, -0.4, 3.7}[i]
	}
	nee, err := d.DownscaleNEE(mf)
	require.NoError(t, err)
	require.Len(t, nee, ti.Nt())

	for _, s := range ti.spans {
		nm := mf[s.date(time.UTC)]
		assert.InEpsilon(t, nm, meanOver(nee, s.i0, s.i1), 1e-9,
			"month %04d-%02d mean", s.yr, s.mo)
	}
}

func TestDownscalePolarNight(t *testing.T) {
	// December at 78°N: no daylight all month
	dts := dateRange(time.Date(2014, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	ti, err := NewTimeIndex(dts)
	require.NoError(t, err)

	tC, rad := make([]float64, len(dts)), dielRad(dts, 40.)
	for i, dt := range dts {
		tC[i] = -22.
		if dt.Month() == time.December {
			rad[i] = 0.
		}
	}
	d, err := NewDownscaler(ti, tC, rad, Q10, T0)
	require.NoError(t, err)

	dec := time.Date(2014, 12, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	gpp, err := d.DownscaleGPP(MonthlyFlux{dec: 0.3, jan: 0.8})
	require.NoError(t, err)
	for i := range gpp {
		require.False(t, math.IsNaN(gpp[i]) || math.IsInf(gpp[i], 0))
	}
	for i := ti.spans[0].i0; i < ti.spans[0].i1; i++ {
		assert.Zero(t, gpp[i], "dark month GPP is flat zero")
	}
	assert.InDelta(t, 0.8, meanOver(gpp, ti.spans[1].i0, ti.spans[1].i1), 1e-9,
		"lit month still conserves")

	// the respiration path has no zero-mean fallback
	resp, err := d.DownscaleResp(MonthlyFlux{dec: 1.2, jan: 1.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.2, meanOver(resp, ti.spans[0].i0, ti.spans[0].i1), 1e-9)
}

func TestDownscaleNaNPropagation(t *testing.T) {
	dts := dateRange(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 8, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	ti, _ := NewTimeIndex(dts)

	tC := make([]float64, len(dts))
	for i := range tC {
		tC[i] = 15.
	}
	tC[10] = math.NaN() // one bad June reading
	d, err := NewDownscaler(ti, tC, dielRad(dts, 500.), Q10, T0)
	require.NoError(t, err)

	jun := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC)
	resp, err := d.DownscaleResp(MonthlyFlux{jun: 4., jul: 6.})
	require.NoError(t, err)

	for i := ti.spans[0].i0; i < ti.spans[0].i1; i++ {
		assert.True(t, math.IsNaN(resp[i]), "NaN covariate poisons its month")
	}
	assert.InDelta(t, 6., meanOver(resp, ti.spans[1].i0, ti.spans[1].i1), 1e-9,
		"other months unaffected")
}

func TestDownscaleAlignmentErrors(t *testing.T) {
	dts := dateRange(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	ti, _ := NewTimeIndex(dts)
	flat := make([]float64, len(dts))

	_, err := NewDownscaler(ti, flat[:10], flat, Q10, T0)
	require.ErrorIs(t, err, ErrAlignment)
	_, err = NewDownscaler(ti, flat, flat[:10], Q10, T0)
	require.ErrorIs(t, err, ErrAlignment)

	tC := make([]float64, len(dts))
	for i := range tC {
		tC[i] = 12.
	}
	d, err := NewDownscaler(ti, tC, dielRad(dts, 500.), Q10, T0)
	require.NoError(t, err)

	// month in index missing from aggregates
	_, err = d.DownscaleNEE(MonthlyFlux{})
	require.ErrorIs(t, err, ErrAlignment)

	// month in aggregates missing from index
	jun := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	sep := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = d.DownscaleNEE(MonthlyFlux{jun: -1., sep: -2.})
	require.ErrorIs(t, err, ErrAlignment)
}

// A zero weight mean cannot arise through NewDownscaler on the respiration
// path (Q10 weights are strictly positive), but a caller assembling weights
// directly must get the degenerate-normalization error, never an Inf leak.
func TestDownscaleRespDegenerate(t *testing.T) {
	dts := dateRange(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), 3*time.Hour)
	ti, _ := NewTimeIndex(dts)
	d := &Downscaler{TI: ti, Wr: make([]float64, ti.Nt()), Wg: make([]float64, ti.Nt())}
	jun := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := d.DownscaleResp(MonthlyFlux{jun: 5.})
	require.ErrorIs(t, err, ErrDegenerate)
}

func TestDownscaleEmptyIndex(t *testing.T) {
	ti, err := NewTimeIndex(nil)
	require.NoError(t, err)
	d, err := NewDownscaler(ti, nil, nil, Q10, T0)
	require.NoError(t, err)
	nee, err := d.DownscaleNEE(MonthlyFlux{})
	require.NoError(t, err)
	assert.Empty(t, nee)
}
