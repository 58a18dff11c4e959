// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package source provides drivers for DC power supplies.
package source

import (
	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// HP6632A controls a Hewlett-Packard 6632A single-output DC supply.
type HP6632A struct {
	res *equipment.Resource
}

// NewHP6632A returns a driver for the supply reachable through the given
// resource. The instrument identification is verified before the driver is
// returned.
func NewHP6632A(res *equipment.Resource) (*HP6632A, error) {
	if err := res.CheckIdentity("6632A"); err != nil {
		return nil, err
	}
	return &HP6632A{res: res}, nil
}

// SetState enables or disables the supply's output relay.
func (d *HP6632A) SetState(on bool) error {
	return d.res.Command("OUTP:STAT %d", boolToInt(on))
}

// State reports whether the supply's output is enabled.
func (d *HP6632A) State() (bool, error) {
	return query.Bool(d.res, "OUTP:STAT?")
}

// On enables the output relay, equivalent to SetState(true).
func (d *HP6632A) On() error { return d.SetState(true) }

// Off disables the output relay, equivalent to SetState(false).
func (d *HP6632A) Off() error { return d.SetState(false) }

// Toggle reverses the current state of the output relay.
func (d *HP6632A) Toggle() error {
	on, err := d.State()
	if err != nil {
		return err
	}
	return d.SetState(!on)
}

// SetVoltage sets the output voltage setpoint in volts DC.
func (d *HP6632A) SetVoltage(volts float64) error {
	return d.res.Command("SOUR:VOLT:LEV %v", volts)
}

// Voltage returns the output voltage setpoint in volts DC.
func (d *HP6632A) Voltage() (float64, error) {
	return query.Float64(d.res, "SOUR:VOLT:LEV?")
}

// SetCurrent sets the current limit in amps DC.
func (d *HP6632A) SetCurrent(amps float64) error {
	return d.res.Command("SOUR:CURR:LEV %v", amps)
}

// Current returns the current limit setting in amps DC.
func (d *HP6632A) Current() (float64, error) {
	return query.Float64(d.res, "SOUR:CURR:LEV?")
}

// VoltageLimit returns the supply's output voltage limit in volts DC. The
// limit can only be changed with the potentiometer on the front panel.
func (d *HP6632A) VoltageLimit() (float64, error) {
	return query.Float64(d.res, "SOUR:VOLT:PROT?")
}

// SetOCP enables or disables over-current protection. With OCP active the
// output shuts off when the current limit is exceeded.
func (d *HP6632A) SetOCP(on bool) error {
	return d.res.Command("SOUR:CURR:PROT:STATE %d", boolToInt(on))
}

// OCP reports whether over-current protection is active.
func (d *HP6632A) OCP() (bool, error) {
	return query.Bool(d.res, "SOUR:CURR:PROT:STATE?")
}

// MeasureVoltage returns the measured output voltage in volts DC.
func (d *HP6632A) MeasureVoltage() (float64, error) {
	return query.Float64(d.res, "MEAS:VOLT?")
}

// MeasureCurrent returns the measured output current in amps DC.
func (d *HP6632A) MeasureCurrent() (float64, error) {
	return query.Float64(d.res, "MEAS:CURR?")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ equipment.VoltageSource = (*HP6632A)(nil)
