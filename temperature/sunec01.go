// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package temperature

import (
	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// SunEC01 controls a Sun Electronic Systems EC01 environmental chamber. The
// chamber speaks a terse ASCII dialect: a bare temperature followed by C sets
// the setpoint, C and T query the setpoint and the chamber thermocouple, and
// ON/OFF gate the conditioning system. It does not answer *IDN?.
type SunEC01 struct {
	res *equipment.Resource
}

// NewSunEC01 returns a driver for the chamber reachable through the given
// resource.
func NewSunEC01(res *equipment.Resource) *SunEC01 {
	return &SunEC01{res: res}
}

// SetTemperature updates the chamber temperature setpoint in degrees C.
func (d *SunEC01) SetTemperature(degrees float64) error {
	return d.res.Command("%.1fC", degrees)
}

// Temperature returns the chamber temperature setpoint in degrees C.
func (d *SunEC01) Temperature() (float64, error) {
	return query.Float64(d.res, "C")
}

// MeasureTemperature returns the temperature measured by the chamber's
// embedded thermocouple in degrees C.
func (d *SunEC01) MeasureTemperature() (float64, error) {
	return query.Float64(d.res, "T")
}

// SetMaxTemperature adjusts the upper temperature limit enforced by the
// chamber's control system, in degrees C.
func (d *SunEC01) SetMaxTemperature(degrees float64) error {
	return d.res.Command("%v UTL", degrees)
}

// SetState enables or disables the chamber's conditioning system.
func (d *SunEC01) SetState(on bool) error {
	if on {
		return d.res.Command("ON")
	}
	return d.res.Command("OFF")
}

// On enables the conditioning system, equivalent to SetState(true).
func (d *SunEC01) On() error { return d.SetState(true) }

// Off disables the conditioning system, equivalent to SetState(false).
func (d *SunEC01) Off() error { return d.SetState(false) }

var _ equipment.TemperatureController = (*SunEC01)(nil)
