package forcing

import (
	"fmt"
	"time"
)

// Forcing holds the station covariate series driving the downscaling.
type Forcing struct {
	T           []time.Time // [dateID]
	Ta, Rad     [][]float64 // [staID][dateID] air temperature [°C], downwelling shortwave [W/m²]
	Nam         []string    // [staID] station names
	IntervalSec float64
}

func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	nt := len(frc.T)
	fmt.Printf(" %v to %v (%d timesteps)\n", frc.T[0], frc.T[nt-1], nt)
	nsta := len(frc.Ta)
	fmt.Printf(" timestep interval: %ds, %d stations\n", int64(frc.IntervalSec), nsta)

	for i := 0; i < nsta; i++ {
		st, sr := 0., 0.
		for j := range frc.T {
			st += frc.Ta[i][j]
			sr += frc.Rad[i][j]
		}
		fmt.Printf(" %s: mean Ta: %.2f °C   mean rad: %.1f W/m²\n", frc.Nam[i], st/float64(nt), sr/float64(nt))
	}
}
