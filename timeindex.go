package olsenranderson

import (
	"fmt"
	"time"
)

// TimeIndex is an ordered set of sub-daily timestamps partitioned into
// contiguous calendar-month spans. It defines the alignment for every
// per-timestep series passed to or returned by the downscaler.
type TimeIndex struct {
	T     []time.Time // [dateID]
	spans []monthSpan
}

// monthSpan is the half-open index range [i0,i1) of one calendar month.
type monthSpan struct {
	yr     int
	mo     time.Month
	i0, i1 int
}

// NewTimeIndex builds the per-month partition of dts. Timestamps must be
// strictly increasing; spacing may be uneven.
func NewTimeIndex(dts []time.Time) (*TimeIndex, error) {
	for i := 1; i < len(dts); i++ {
		if !dts[i].After(dts[i-1]) {
			return nil, fmt.Errorf(" olsenranderson.NewTimeIndex: %w: timestamps not strictly increasing at position %d (%v)", ErrAlignment, i, dts[i])
		}
	}
	ti := TimeIndex{T: dts}
	for i, t := range dts {
		n := len(ti.spans)
		if n == 0 || ti.spans[n-1].yr != t.Year() || ti.spans[n-1].mo != t.Month() {
			ti.spans = append(ti.spans, monthSpan{yr: t.Year(), mo: t.Month(), i0: i})
			n++
		}
		ti.spans[n-1].i1 = i + 1
	}
	return &ti, nil
}

// Nt returns the number of timesteps.
func (ti *TimeIndex) Nt() int { return len(ti.T) }

// Months returns the first-of-month date of every calendar month present,
// in order. These are the keys a MonthlyFlux must cover.
func (ti *TimeIndex) Months() []time.Time {
	ms := make([]time.Time, len(ti.spans))
	for i, s := range ti.spans {
		ms[i] = s.date(ti.T[s.i0].Location())
	}
	return ms
}

func (s *monthSpan) date(loc *time.Location) time.Time {
	return time.Date(s.yr, s.mo, 1, 0, 0, 0, 0, loc)
}

// MonthlyFlux holds one scalar flux per calendar month, keyed by the first
// of the month at midnight in the time index's location (see MonthDate).
type MonthlyFlux map[time.Time]float64

// MonthDate normalizes t to its MonthlyFlux key.
func MonthDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// checkCoverage verifies that mf holds exactly one value per calendar month
// of the index: a month present in the aggregates with no timestamps, or
// vice versa, is an alignment error.
func (ti *TimeIndex) checkCoverage(mf MonthlyFlux) error {
	for _, s := range ti.spans {
		if _, ok := mf[s.date(ti.T[s.i0].Location())]; !ok {
			return fmt.Errorf(" olsenranderson: %w: no monthly flux given for %04d-%02d", ErrAlignment, s.yr, s.mo)
		}
	}
	if len(mf) != len(ti.spans) {
		return fmt.Errorf(" olsenranderson: %w: %d monthly fluxes given, %d months in index", ErrAlignment, len(mf), len(ti.spans))
	}
	return nil
}
