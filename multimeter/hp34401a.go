// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package multimeter provides drivers for digital multimeters.
package multimeter

import (
	"strings"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// Mode is a measurement function of the meter.
type Mode string

// Measurement functions supported by the 34401A.
const (
	ModeVoltageDC   Mode = "VOLT:DC"
	ModeVoltageAC   Mode = "VOLT:AC"
	ModeCurrentDC   Mode = "CURR:DC"
	ModeCurrentAC   Mode = "CURR:AC"
	ModeResistance  Mode = "RES"
	ModeFourWireRes Mode = "FRES"
	ModeFrequency   Mode = "FREQ"
	ModePeriod      Mode = "PER"
	ModeDiode       Mode = "DIOD"
	ModeContinuity  Mode = "CONT"
)

var validModes = map[Mode]bool{
	ModeVoltageDC:   true,
	ModeVoltageAC:   true,
	ModeCurrentDC:   true,
	ModeCurrentAC:   true,
	ModeResistance:  true,
	ModeFourWireRes: true,
	ModeFrequency:   true,
	ModePeriod:      true,
	ModeDiode:       true,
	ModeContinuity:  true,
}

// TriggerSource selects what initiates a reading.
type TriggerSource string

// Valid trigger sources.
const (
	TriggerImmediate TriggerSource = "IMM"
	TriggerBus       TriggerSource = "BUS"
	TriggerExternal  TriggerSource = "EXT"
)

// HP34401A controls a Hewlett-Packard 34401A 6.5-digit multimeter.
type HP34401A struct {
	res *equipment.Resource
}

// NewHP34401A returns a driver for the meter reachable through the given
// resource.
func NewHP34401A(res *equipment.Resource) (*HP34401A, error) {
	if err := res.CheckIdentity("34401A"); err != nil {
		return nil, err
	}
	return &HP34401A{res: res}, nil
}

// SetMode configures the meter for the given measurement function with auto
// range and default resolution. An unknown mode is a ConfigurationError and
// nothing is sent to the meter.
func (d *HP34401A) SetMode(mode Mode) error {
	if !validModes[mode] {
		return &equipment.ConfigurationError{
			Param:  "mode",
			Reason: string(mode) + " is not a valid measurement function",
		}
	}
	return d.res.Command("CONF:%s", mode)
}

// Mode returns the measurement function the meter is configured for.
func (d *HP34401A) Mode() (Mode, error) {
	s, err := query.String(d.res, "FUNC?")
	if err != nil {
		return "", err
	}
	mode := Mode(strings.Trim(s, `"`))
	if !validModes[mode] {
		return "", &equipment.ProtocolError{Cmd: "FUNC?", Reason: "unknown function " + s}
	}
	return mode, nil
}

// MeasureVoltage configures for DC voltage and returns one reading in
// volts.
func (d *HP34401A) MeasureVoltage() (float64, error) {
	return query.Float64(d.res, "MEAS:VOLT:DC?")
}

// MeasureVoltageRMS configures for AC voltage and returns one RMS reading
// in volts.
func (d *HP34401A) MeasureVoltageRMS() (float64, error) {
	return query.Float64(d.res, "MEAS:VOLT:AC?")
}

// MeasureCurrent configures for DC current and returns one reading in amps.
func (d *HP34401A) MeasureCurrent() (float64, error) {
	return query.Float64(d.res, "MEAS:CURR:DC?")
}

// MeasureResistance configures for two-wire resistance and returns one
// reading in ohms.
func (d *HP34401A) MeasureResistance() (float64, error) {
	return query.Float64(d.res, "MEAS:RES?")
}

// MeasureFrequency configures for frequency and returns one reading in
// hertz.
func (d *HP34401A) MeasureFrequency() (float64, error) {
	return query.Float64(d.res, "MEAS:FREQ?")
}

// Init arms the meter: it takes a reading on the next trigger and parks it
// in internal memory for Fetch.
func (d *HP34401A) Init() error { return d.res.Command("INITiate") }

// Fetch returns the reading parked by the last triggered measurement,
// without starting a new one.
func (d *HP34401A) Fetch() (float64, error) {
	return query.Float64(d.res, "FETC?")
}

// Trigger sends the bus trigger. The meter must be armed with Init and the
// trigger source set to TriggerBus.
func (d *HP34401A) Trigger() error { return d.res.Command("*TRG") }

// SetTriggerSource selects what initiates a reading.
func (d *HP34401A) SetTriggerSource(source TriggerSource) error {
	switch source {
	case TriggerImmediate, TriggerBus, TriggerExternal:
	default:
		return &equipment.ConfigurationError{
			Param:  "trigger source",
			Reason: string(source) + " is not a valid trigger source",
		}
	}
	return d.res.Command("TRIG:SOUR %s", source)
}

// TriggerSource returns the configured trigger source.
func (d *HP34401A) TriggerSource() (TriggerSource, error) {
	s, err := query.String(d.res, "TRIG:SOUR?")
	if err != nil {
		return "", err
	}
	return TriggerSource(s), nil
}

// SetSampleCount sets how many readings the meter takes per trigger.
func (d *HP34401A) SetSampleCount(count int) error {
	if count < 1 || count > 50000 {
		return &equipment.ConfigurationError{
			Param:  "sample count",
			Reason: "count outside valid range 1-50000",
		}
	}
	return d.res.Command("SAMP:COUN %d", count)
}

// SampleCount returns how many readings the meter takes per trigger.
func (d *HP34401A) SampleCount() (int, error) {
	return query.Int(d.res, "SAMP:COUN?")
}

// Error pops one entry from the meter's error queue.
func (d *HP34401A) Error() (string, error) {
	return query.String(d.res, "SYSTem:ERRor?")
}
