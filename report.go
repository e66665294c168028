package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/oblq/socfan/modules/soctemp"
	"gopkg.in/yaml.v3"
)

// noFallback disables the fallback duty-cycle.
const noFallback = -1

type report struct {
	Sensor      string  `json:"sensor,omitempty" yaml:"sensor,omitempty"`
	Celsius     float64 `json:"celsius" yaml:"celsius"`
	Valid       bool    `json:"valid" yaml:"valid"`
	DutyCycle   uint8   `json:"duty_cycle" yaml:"duty_cycle"`
	DutyPercent float64 `json:"duty_percent" yaml:"duty_percent"`
	Fallback    bool    `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// MarshalJSON writes a NaN or infinite temperature as null and marks the
// report invalid, JSON has no encoding for them.
func (rep report) MarshalJSON() ([]byte, error) {
	type plain report
	out := struct {
		plain
		Celsius *float64 `json:"celsius"`
	}{plain: plain(rep)}
	if math.IsNaN(rep.Celsius) || math.IsInf(rep.Celsius, 0) {
		out.Valid = false
	} else {
		out.Celsius = &rep.Celsius
	}
	return json.Marshal(out)
}

func newReport(sensor string, r soctemp.Reading) report {
	dc := soctemp.DutyCycle(r.Celsius)
	return report{
		Sensor:      sensor,
		Celsius:     r.Celsius,
		Valid:       r.Valid,
		DutyCycle:   dc,
		DutyPercent: math.Round(soctemp.DutyPercent(dc)*10) / 10,
	}
}

func fallbackReport(sensor string, dc uint8) report {
	return report{
		Sensor:      sensor,
		DutyCycle:   dc,
		DutyPercent: math.Round(soctemp.DutyPercent(dc)*10) / 10,
		Fallback:    true,
	}
}

// measure reads the sensor once, logging readings that fell back to 0°C.
func (a *app) measure() (soctemp.Reading, error) {
	r, err := a.sensor.Measure()
	if err != nil {
		return r, err
	}
	if !r.Valid {
		a.log.Warn("unparsable temperature output, using 0°C",
			"sensor", a.sensor.Name(), "output", r.Raw)
	} else {
		a.log.Debug("temperature measured", "sensor", a.sensor.Name(), "celsius", r.Celsius)
	}
	return r, nil
}

// print writes rep in the configured encoding, text is used for the text one.
func (a *app) print(rep report, text string) error {
	switch a.opts.Output {
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		return json.NewEncoder(a.stdout).Encode(rep)
	default:
		_, err := fmt.Fprintln(a.stdout, text)
		return err
	}
}

type measureCommand struct {
	app *app
}

func (c *measureCommand) Execute(_ []string) error {
	r, err := c.app.measure()
	if err != nil {
		return err
	}
	rep := newReport(c.app.sensor.Name(), r)
	return c.app.print(rep, formatCelsius(r.Celsius))
}

type dutyCommand struct {
	app *app

	Args struct {
		Celsius float64 `positional-arg-name:"celsius" description:"Temperature in °C"`
	} `positional-args:"yes" required:"yes"`
}

func (c *dutyCommand) Execute(_ []string) error {
	rep := newReport("", soctemp.Reading{Celsius: c.Args.Celsius, Valid: true})
	return c.app.print(rep, strconv.Itoa(int(rep.DutyCycle)))
}

type reportCommand struct {
	app *app

	Fallback int `long:"fallback" default:"-1" description:"Duty-cycle (0-255) to print instead of failing when the sensor can't be run"`
}

func (c *reportCommand) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if c.Fallback < noFallback || c.Fallback > int(soctemp.DutyFull) {
		return fmt.Errorf("fallback duty-cycle must be in 0-255, got %d", c.Fallback)
	}

	var rep report
	r, err := c.app.measure()
	switch {
	case err == nil:
		rep = newReport(c.app.sensor.Name(), r)
	case c.Fallback != noFallback:
		c.app.log.Error("measure failed, using fallback duty-cycle",
			"sensor", c.app.sensor.Name(), "fallback", c.Fallback, "err", err)
		rep = fallbackReport(c.app.sensor.Name(), uint8(c.Fallback))
	default:
		return err
	}

	return c.app.print(rep, rep.String())
}

func (rep report) String() string {
	if rep.Fallback {
		return fmt.Sprintf("%s fallback | duty %d (%.1f%%)", rep.Sensor, rep.DutyCycle, rep.DutyPercent)
	}
	temp := formatCelsius(rep.Celsius) + "°C"
	if !rep.Valid {
		temp += "?"
	}
	return fmt.Sprintf("%s %s | duty %d (%.1f%%)", rep.Sensor, temp, rep.DutyCycle, rep.DutyPercent)
}

func formatCelsius(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
