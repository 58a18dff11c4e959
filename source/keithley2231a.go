// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package source

import (
	"fmt"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// Keithley2231A controls one output channel of a Keithley 2231A triple-
// output DC supply. The driver binds to a channel at construction; open one
// driver per channel to control several outputs over the same resource's
// owner-serialized connection.
type Keithley2231A struct {
	res     *equipment.Resource
	channel int
}

// NewKeithley2231A returns a driver bound to the given output channel, 1 to
// 3, and locks the instrument front panel for remote control. An
// out-of-range channel fails with a ConfigurationError before anything is
// sent to the instrument.
func NewKeithley2231A(res *equipment.Resource, channel int) (*Keithley2231A, error) {
	if channel < 1 || channel > 3 {
		return nil, &equipment.ConfigurationError{
			Param:  "channel",
			Reason: fmt.Sprintf("channel %d outside valid range 1-3", channel),
		}
	}
	if err := res.CheckIdentity("2231A"); err != nil {
		return nil, err
	}
	d := Keithley2231A{res: res, channel: channel}
	if err := d.SetAccessRemote(true); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetAccessRemote locks (true) or releases (false) the instrument front
// panel for software control.
func (d *Keithley2231A) SetAccessRemote(remote bool) error {
	if remote {
		return d.res.Command("SYSTem:RWLock")
	}
	return d.res.Command("SYSTem:LOCal")
}

// selectChannel routes subsequent channel-scoped commands to this driver's
// output.
func (d *Keithley2231A) selectChannel() error {
	return d.res.Command("INST:NSEL %d", d.channel)
}

// Channel returns the output channel this driver is bound to.
func (d *Keithley2231A) Channel() int { return d.channel }

// SetState enables or disables the bound output channel.
func (d *Keithley2231A) SetState(on bool) error {
	if err := d.selectChannel(); err != nil {
		return err
	}
	return d.res.Command("CHAN:OUTP %d", boolToInt(on))
}

// State reports whether the bound output channel is enabled.
func (d *Keithley2231A) State() (bool, error) {
	if err := d.selectChannel(); err != nil {
		return false, err
	}
	s, err := query.String(d.res, "CHAN:OUTP?")
	if err != nil {
		return false, err
	}
	return s == "ON" || s == "1", nil
}

// On enables the bound output channel.
func (d *Keithley2231A) On() error { return d.SetState(true) }

// Off disables the bound output channel.
func (d *Keithley2231A) Off() error { return d.SetState(false) }

// Toggle reverses the state of the bound output channel.
func (d *Keithley2231A) Toggle() error {
	on, err := d.State()
	if err != nil {
		return err
	}
	return d.SetState(!on)
}

// SetVoltage sets the channel's voltage setpoint in volts DC.
func (d *Keithley2231A) SetVoltage(volts float64) error {
	if err := d.selectChannel(); err != nil {
		return err
	}
	return d.res.Command("SOUR:VOLT %v", volts)
}

// Voltage returns the channel's voltage setpoint in volts DC.
func (d *Keithley2231A) Voltage() (float64, error) {
	if err := d.selectChannel(); err != nil {
		return 0, err
	}
	return query.Float64(d.res, "SOUR:VOLT?")
}

// SetCurrent sets the channel's current limit in amps DC.
func (d *Keithley2231A) SetCurrent(amps float64) error {
	if err := d.selectChannel(); err != nil {
		return err
	}
	return d.res.Command("SOUR:CURR %v", amps)
}

// Current returns the channel's current limit in amps DC.
func (d *Keithley2231A) Current() (float64, error) {
	if err := d.selectChannel(); err != nil {
		return 0, err
	}
	return query.Float64(d.res, "SOUR:CURR?")
}

// MeasureVoltage returns the channel's measured output voltage in volts DC.
func (d *Keithley2231A) MeasureVoltage() (float64, error) {
	if err := d.selectChannel(); err != nil {
		return 0, err
	}
	return query.Float64(d.res, "MEAS:VOLT?")
}

// MeasureCurrent returns the channel's measured output current in amps DC.
func (d *Keithley2231A) MeasureCurrent() (float64, error) {
	if err := d.selectChannel(); err != nil {
		return 0, err
	}
	return query.Float64(d.res, "MEAS:CURR?")
}

var _ equipment.VoltageSource = (*Keithley2231A)(nil)
