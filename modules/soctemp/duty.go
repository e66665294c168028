package soctemp

import "math"

const (
	// FloorC is the temperature at or below which the fan is off.
	FloorC = 40.0

	// CeilingC is the temperature at or above which the fan runs at full speed.
	// It matches the default soft throttling limit of the Pi 3B+.
	CeilingC = 60.0

	// DutyPerDegree maps the [FloorC, CeilingC) span onto [0, 255].
	DutyPerDegree = 12.75

	// DutyOff stops the fan.
	DutyOff uint8 = 0

	// DutyFull runs the fan at full speed.
	DutyFull uint8 = 255
)

// DutyCycle maps a temperature in °C to an 8-bit duty cycle with a linear
// ramp between FloorC and CeilingC, rounded up.
//
//	temp, _ := soctemp.MeasureTemperature()
//	dc := soctemp.DutyCycle(temp)
//
// NaN returns DutyFull: an unknown temperature runs the fan at full speed.
func DutyCycle(celsius float64) uint8 {
	switch {
	case math.IsNaN(celsius):
		return DutyFull
	case celsius <= FloorC:
		return DutyOff
	case celsius >= CeilingC:
		return DutyFull
	}
	return uint8(math.Ceil((celsius - FloorC) * DutyPerDegree))
}

// DutyPercent converts an 8-bit duty cycle into a 0-100 percentage.
func DutyPercent(dc uint8) float64 {
	return float64(dc) * 100 / float64(DutyFull)
}
