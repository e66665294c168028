package main

import "github.com/oblq/socfan/modules/soctemp"

// tempSensor is a source of SoC temperature readings.
type tempSensor interface {
	Name() string
	Measure() (soctemp.Reading, error)
}

// vcgencmd reads the temperature from the VideoCore firmware.
type vcgencmd struct{}

func (vcgencmd) Name() string {
	return "vcgencmd"
}

func (vcgencmd) Measure() (soctemp.Reading, error) {
	return soctemp.Measure()
}
