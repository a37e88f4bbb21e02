package forcing

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/maseology/goHydro/met"
	"github.com/maseology/mmio"
	olsenranderson "github.com/psu-inversion/olsen-randerson"
)

func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	f.Close()
	return nil
}

func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	f.Close()
	return &frc, nil
}

// LoadMET imports one station from a .met hydromet file, pulling the named
// temperature and radiation columns (e.g. "AirTemperature",
// "GlobalRadiation") from the file's water-budget data codes.
func LoadMET(fp, taCol, radCol string, print bool) (*Forcing, error) {
	hdr, dat, err := met.ReadMET(fp, print)
	if err != nil {
		return nil, fmt.Errorf(" forcing.LoadMET: %v", err)
	}
	x := hdr.WBDCxr()
	for _, c := range []string{taCol, radCol} {
		if _, ok := x[c]; !ok {
			return nil, fmt.Errorf(" forcing.LoadMET: column %s not found in %s", c, fp)
		}
	}
	dts, ta := dat.Get(0, x[taCol])
	_, rad := dat.Get(0, x[radCol])
	_, _, intvl := hdr.BeginEndInterval()
	return &Forcing{
		T:           dts,
		Ta:          [][]float64{ta},
		Rad:         [][]float64{rad},
		Nam:         []string{mmio.FileName(fp, false)},
		IntervalSec: float64(intvl),
	}, nil
}

// LoadMonthlyNEE reads a date,value csv of monthly net flux (one row per
// month, dated any day within it) into MonthlyFlux keys.
func LoadMonthlyNEE(fp string) (olsenranderson.MonthlyFlux, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return nil, fmt.Errorf(" forcing.LoadMonthlyNEE: %v", err)
	}
	mf := make(olsenranderson.MonthlyFlux, len(c))
	for dt, v := range c {
		mf[olsenranderson.MonthDate(time.Unix(dt, 0).UTC())] = v
	}
	return mf, nil
}

// WriteFloats saves f as little-endian float32, the compact binary form
// consumed downstream.
func WriteFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf(" forcing.WriteFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf(" forcing.WriteFloats failed: %v", err)
	}
	return nil
}
