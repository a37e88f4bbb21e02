package forcing

import (
	"fmt"
	"math"
	"time"

	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/solirrad"
)

// SyntheticPAR builds a relative clear-sky radiation curve for a site with
// no radiation record: a half-sine through the daylight hours, peaking at
// solar noon, scaled by the day's potential solar irradiation. Units are
// arbitrary; the downscaler's normalization cancels them.
func SyntheticPAR(dts []time.Time, latDeg float64) []float64 {
	si := solirrad.New(latDeg, 0., 0.)
	rad := make([]float64, len(dts))
	for i, t := range dts {
		doy := t.YearDay()
		dl := si.DaylightHours(doy)
		if dl <= 0. {
			continue // polar night
		}
		hs := float64(t.Hour()) + float64(t.Minute())/60. - (12. - dl/2.) // hours past sunrise
		if hs > 0. && hs < dl {
			rad[i] = si.PSIdaily(doy) * math.Sin(math.Pi*hs/dl)
		}
	}
	return rad
}

// SyntheticPARutm is SyntheticPAR for sites given in projected coordinates.
func SyntheticPARutm(dts []time.Time, x, y float64, utmzone int) ([]float64, error) {
	latitude, _, err := UTM.ToLatLon(x, y, utmzone, "", true)
	if err != nil {
		return nil, fmt.Errorf(" forcing.SyntheticPARutm: %v", err)
	}
	return SyntheticPAR(dts, latitude), nil
}
