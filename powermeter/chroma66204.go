// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package powermeter provides drivers for AC/DC power analyzers.
package powermeter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// AllChannels selects every input of the meter in one query; the response is
// then a comma-separated list with one value per channel.
const AllChannels = 0

// Chroma66204 controls a Chroma 66204 four-input digital power meter.
type Chroma66204 struct {
	res *equipment.Resource
}

// NewChroma66204 returns a driver for the power meter reachable through the
// given resource. Energy readings are configured in joules rather than
// watt-hours.
func NewChroma66204(res *equipment.Resource) (*Chroma66204, error) {
	if err := res.CheckIdentity("66204"); err != nil {
		return nil, err
	}
	if err := res.Command("ENER:MODE JOULE"); err != nil {
		return nil, err
	}
	return &Chroma66204{res: res}, nil
}

// checkChannel validates a channel argument: 1 to 4, or AllChannels.
func checkChannel(channel int) error {
	if channel < 0 || channel > 4 {
		return &equipment.ConfigurationError{
			Param:  "channel",
			Reason: fmt.Sprintf("channel %d outside valid range 0-4", channel),
		}
	}
	return nil
}

// fetch queries a FETC subsystem measurement for the given channel(s) and
// parses the comma-separated response. A single channel yields one value;
// AllChannels yields one value per input.
func (d *Chroma66204) fetch(item string, channel int) ([]float64, error) {
	if err := checkChannel(channel); err != nil {
		return nil, err
	}
	cmd := fmt.Sprintf("FETC:%s? %d", item, channel)
	s, err := query.String(d.res, cmd)
	if err != nil {
		return nil, err
	}
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, &equipment.ProtocolError{
				Cmd:    cmd,
				Reason: "non-numeric value " + field,
			}
		}
		values[i] = v
	}
	return values, nil
}

// VoltageRMS returns the measured RMS voltage for the given channel(s) in
// volts.
func (d *Chroma66204) VoltageRMS(channel int) ([]float64, error) {
	return d.fetch("VOLT:RMS", channel)
}

// VoltageDC returns the measured DC voltage for the given channel(s) in
// volts.
func (d *Chroma66204) VoltageDC(channel int) ([]float64, error) {
	return d.fetch("VOLT:DC", channel)
}

// VoltagePeak returns the measured peak voltage for the given channel(s) in
// volts, positive or negative peak according to positive.
func (d *Chroma66204) VoltagePeak(channel int, positive bool) ([]float64, error) {
	sign := "-"
	if positive {
		sign = "+"
	}
	return d.fetch("VOLT:PEAK"+sign, channel)
}

// CurrentRMS returns the measured RMS current for the given channel(s) in
// amps.
func (d *Chroma66204) CurrentRMS(channel int) ([]float64, error) {
	return d.fetch("CURR:RMS", channel)
}

// CurrentDC returns the measured DC current for the given channel(s) in
// amps.
func (d *Chroma66204) CurrentDC(channel int) ([]float64, error) {
	return d.fetch("CURR:DC", channel)
}

// Power returns the measured real power for the given channel(s) in watts.
func (d *Chroma66204) Power(channel int) ([]float64, error) {
	return d.fetch("POW:REAL", channel)
}

// PowerFactor returns the measured power factor for the given channel(s).
func (d *Chroma66204) PowerFactor(channel int) ([]float64, error) {
	return d.fetch("POW:PFAC", channel)
}

// Frequency returns the measured line frequency for the given channel(s) in
// hertz.
func (d *Chroma66204) Frequency(channel int) ([]float64, error) {
	return d.fetch("FREQ", channel)
}

// Energy returns the accumulated energy for the given channel(s) in joules.
func (d *Chroma66204) Energy(channel int) ([]float64, error) {
	return d.fetch("ENER", channel)
}
