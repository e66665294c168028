package soctemp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDutyCycle(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want uint8
	}{
		{name: "cold", temp: 20, want: 0},
		{name: "negative", temp: -15, want: 0},
		{name: "floor", temp: 40, want: 0},
		{name: "just above floor", temp: 40.01, want: 1},
		{name: "one degree", temp: 41, want: 13},
		{name: "midpoint", temp: 50, want: 128},
		{name: "just below ceiling", temp: 59.9, want: 254},
		{name: "ceiling", temp: 60, want: 255},
		{name: "hot", temp: 85, want: 255},
		{name: "+inf", temp: math.Inf(1), want: 255},
		{name: "-inf", temp: math.Inf(-1), want: 0},
		{name: "nan", temp: math.NaN(), want: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DutyCycle(tt.temp))
		})
	}
}

func TestDutyCycle_Clamped(t *testing.T) {
	for temp := -40.0; temp <= FloorC; temp += 0.25 {
		require.Equal(t, DutyOff, DutyCycle(temp), "temp %v", temp)
	}
	for temp := CeilingC; temp <= 150; temp += 0.25 {
		require.Equal(t, DutyFull, DutyCycle(temp), "temp %v", temp)
	}
}

func TestDutyCycle_Monotonic(t *testing.T) {
	prev := DutyCycle(FloorC)
	for i := 1; i <= 2000; i++ {
		temp := FloorC + float64(i)*0.01
		dc := DutyCycle(temp)
		require.GreaterOrEqual(t, dc, prev, "temp %v", temp)
		prev = dc
	}
}

func TestDutyPercent(t *testing.T) {
	require.Equal(t, 0.0, DutyPercent(DutyOff))
	require.Equal(t, 100.0, DutyPercent(DutyFull))
	require.InDelta(t, 50.2, DutyPercent(128), 0.01)
}
