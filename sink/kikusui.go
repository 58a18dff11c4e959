// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package sink

import (
	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// KikusuiPLZ1004WH controls a Kikusui PLZ-1004WH single-input DC load.
type KikusuiPLZ1004WH struct {
	res *equipment.Resource
}

// NewKikusuiPLZ1004WH returns a driver for the load reachable through the
// given resource.
func NewKikusuiPLZ1004WH(res *equipment.Resource) (*KikusuiPLZ1004WH, error) {
	if err := res.CheckIdentity("PLZ1004WH"); err != nil {
		return nil, err
	}
	return &KikusuiPLZ1004WH{res: res}, nil
}

// SetState enables or disables the load input.
func (d *KikusuiPLZ1004WH) SetState(on bool) error {
	return d.res.Command("OUTP %d", boolToInt(on))
}

// State reports whether the load input is enabled.
func (d *KikusuiPLZ1004WH) State() (bool, error) {
	return query.Bool(d.res, "OUTP?")
}

// On enables the load input.
func (d *KikusuiPLZ1004WH) On() error { return d.SetState(true) }

// Off disables the load input.
func (d *KikusuiPLZ1004WH) Off() error { return d.SetState(false) }

// Toggle reverses the state of the load input.
func (d *KikusuiPLZ1004WH) Toggle() error {
	on, err := d.State()
	if err != nil {
		return err
	}
	return d.SetState(!on)
}

// SetMode configures the load's operating mode: CC, CR, CV, or CP,
// optionally with voltage regulation (CC+CV, CR+CV).
func (d *KikusuiPLZ1004WH) SetMode(mode Mode, withCV bool) error {
	switch mode {
	case ModeCC, ModeCR, ModeCP, ModeCV:
	default:
		return &equipment.ConfigurationError{
			Param:  "mode",
			Reason: string(mode) + " is not a valid mode for this load",
		}
	}
	if withCV && (mode == ModeCC || mode == ModeCR) {
		return d.res.Command("FUNC %sCV", mode)
	}
	return d.res.Command("FUNC %s", mode)
}

// Mode returns the load's operating mode.
func (d *KikusuiPLZ1004WH) Mode() (Mode, error) {
	s, err := query.String(d.res, "FUNC?")
	if err != nil {
		return "", err
	}
	return Mode(s), nil
}

// SetCurrent sets the constant-current setpoint in amps DC.
func (d *KikusuiPLZ1004WH) SetCurrent(amps float64) error {
	return d.res.Command("CURR %v", amps)
}

// Current returns the constant-current setpoint in amps DC.
func (d *KikusuiPLZ1004WH) Current() (float64, error) {
	return query.Float64(d.res, "CURR?")
}

// SetVoltage sets the constant-voltage setpoint in volts DC.
func (d *KikusuiPLZ1004WH) SetVoltage(volts float64) error {
	return d.res.Command("VOLT %v", volts)
}

// Voltage returns the constant-voltage setpoint in volts DC.
func (d *KikusuiPLZ1004WH) Voltage() (float64, error) {
	return query.Float64(d.res, "VOLT?")
}

// SetConductance sets the constant-resistance setpoint, expressed as a
// conductance in siemens.
func (d *KikusuiPLZ1004WH) SetConductance(siemens float64) error {
	return d.res.Command("COND %v", siemens)
}

// MeasureVoltage returns the measured voltage across the load in volts DC.
func (d *KikusuiPLZ1004WH) MeasureVoltage() (float64, error) {
	return query.Float64(d.res, "MEAS:VOLT?")
}

// MeasureCurrent returns the measured current through the load in amps DC.
func (d *KikusuiPLZ1004WH) MeasureCurrent() (float64, error) {
	return query.Float64(d.res, "MEAS:CURR?")
}

var _ equipment.CurrentSink = (*KikusuiPLZ1004WH)(nil)
