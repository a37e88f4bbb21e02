package forcing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticPAR(t *testing.T) {
	var dts []time.Time
	for h := 0; h < 24; h += 3 {
		dts = append(dts, time.Date(2015, 6, 21, h, 0, 0, 0, time.UTC))
	}
	rad := SyntheticPAR(dts, 43.6)
	require.Len(t, rad, len(dts))

	assert.Zero(t, rad[0], "midnight")
	assert.Zero(t, rad[1], "03:00")
	assert.Greater(t, rad[4], 0., "noon")
	for i, r := range rad {
		assert.GreaterOrEqual(t, r, 0., "index %d", i)
		assert.LessOrEqual(t, r, rad[4], "noon is the peak")
	}
}

func TestGobRoundTrip(t *testing.T) {
	frc := &Forcing{
		T: []time.Time{
			time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2015, 6, 1, 3, 0, 0, 0, time.UTC),
		},
		Ta:          [][]float64{{12.3, 14.1}},
		Rad:         [][]float64{{0., 85.}},
		Nam:         []string{"teststn"},
		IntervalSec: 10800.,
	}
	fp := filepath.Join(t.TempDir(), "frc.gob")
	require.NoError(t, frc.SaveGob(fp))
	got, err := LoadGobForcing(fp)
	require.NoError(t, err)
	assert.Equal(t, frc.Nam, got.Nam)
	assert.Equal(t, frc.Ta, got.Ta)
	assert.Equal(t, frc.Rad, got.Rad)
	assert.Equal(t, frc.IntervalSec, got.IntervalSec)
	require.Len(t, got.T, 2)
	assert.True(t, frc.T[0].Equal(got.T[0]))
}
