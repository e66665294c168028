package soctemp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/oblq/socfan/internal/exec"
)

// Measuring temperature.
//
// Linux-based temperature readings on the Raspberry Pi SoCs can be
// inaccurate, vcgencmd talks to the GPU firmware directly and returns an
// accurate, instantaneous value:
//
//	vcgencmd measure_temp
//	temp=42.8'C
const (
	tool    = "vcgencmd"
	toolArg = "measure_temp"
)

var runFn = exec.Output

// LaunchError is returned when the measuring tool could not be started,
// e.g. because it is not installed or not executable.
type LaunchError struct {
	Name string
	Args []string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("soctemp: launch %s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Reading is a single temperature measurement.
type Reading struct {
	// Celsius is the measured temperature, 0 when the output could not be parsed.
	Celsius float64 `json:"celsius" yaml:"celsius"`

	// Valid is false when Celsius is the 0 fallback instead of a parsed value.
	Valid bool `json:"valid" yaml:"valid"`

	// Raw is the tool stdout, lossily decoded and trimmed.
	Raw string `json:"raw" yaml:"raw"`
}

// MeasureTemperature returns the current SoC temperature in °C.
//
// Malformed or missing tool output is not an error: it yields 0, which is
// indistinguishable from a real 0 °C reading. Use Measure to tell them apart.
// The only error returned is a *LaunchError.
func MeasureTemperature() (float64, error) {
	r, err := Measure()
	if err != nil {
		return 0, err
	}
	return r.Celsius, nil
}

// Measure runs the measuring tool once and parses its output.
// Stderr and the exit status of the tool are ignored.
func Measure() (Reading, error) {
	out, err := runFn(tool, toolArg)
	if err != nil {
		launchErr := &LaunchError{Name: tool, Args: []string{toolArg}, Err: err}
		var startErr *exec.StartError
		if errors.As(err, &startErr) {
			launchErr.Err = startErr.Err
		}
		return Reading{}, launchErr
	}
	return ParseReading(out), nil
}

// ParseTemperature extracts the temperature from the tool output,
// returning 0 if it can't.
func ParseTemperature(out []byte) float64 {
	return ParseReading(out).Celsius
}

// ParseReading extracts the temperature from output shaped like
// "temp=42.8'C": the value is what follows the last '=' up to the first '\''.
func ParseReading(out []byte) Reading {
	raw := strings.ToValidUTF8(string(out), "\uFFFD")

	segments := strings.Split(raw, "=")
	value := segments[len(segments)-1]
	value = strings.SplitN(value, "'", 2)[0]
	value = strings.TrimSpace(value)

	r := Reading{Raw: strings.TrimSpace(raw)}
	celsius, ok := parseCelsius(value)
	if !ok {
		return r
	}
	r.Celsius = celsius
	r.Valid = true
	return r
}

// parseCelsius parses a decimal float. Values too large to represent
// become ±Inf, hex notation is rejected.
func parseCelsius(s string) (float64, bool) {
	digits := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(digits, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
