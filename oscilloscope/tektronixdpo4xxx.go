// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package oscilloscope provides drivers for digital oscilloscopes.
package oscilloscope

import (
	"fmt"
	"strings"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// TriggerMode configures how the scope behaves with no trigger event.
type TriggerMode string

// Valid trigger modes.
const (
	TriggerAuto   TriggerMode = "AUTO"
	TriggerNormal TriggerMode = "NORM"
)

// TektronixDPO4xxx controls a Tektronix DPO4000-series oscilloscope. The
// four analog channels are numbered 1 to 4.
type TektronixDPO4xxx struct {
	res *equipment.Resource
}

// NewTektronixDPO4xxx returns a driver for the scope reachable through the
// given resource.
func NewTektronixDPO4xxx(res *equipment.Resource) (*TektronixDPO4xxx, error) {
	if err := res.CheckIdentity("DPO4"); err != nil {
		return nil, err
	}
	return &TektronixDPO4xxx{res: res}, nil
}

func checkChannel(channel int) error {
	if channel < 1 || channel > 4 {
		return &equipment.ConfigurationError{
			Param:  "channel",
			Reason: fmt.Sprintf("channel %d outside valid range 1-4", channel),
		}
	}
	return nil
}

// SelectChannel turns the display of the given channel on or off.
func (d *TektronixDPO4xxx) SelectChannel(channel int, on bool) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	state := "OFF"
	if on {
		state = "ON"
	}
	return d.res.Command("SEL:CH%d %s", channel, state)
}

// SetChannelScale sets the vertical scale of the given channel in volts per
// division.
func (d *TektronixDPO4xxx) SetChannelScale(channel int, voltsPerDiv float64) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	return d.res.Command("CH%d:SCA %v", channel, voltsPerDiv)
}

// ChannelScale returns the vertical scale of the given channel in volts per
// division.
func (d *TektronixDPO4xxx) ChannelScale(channel int) (float64, error) {
	if err := checkChannel(channel); err != nil {
		return 0, err
	}
	return query.Float64f(d.res, "CH%d:SCA?", channel)
}

// SetChannelOffset sets the vertical offset of the given channel in volts.
func (d *TektronixDPO4xxx) SetChannelOffset(channel int, volts float64) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	return d.res.Command("CH%d:OFFS %v", channel, volts)
}

// ChannelOffset returns the vertical offset of the given channel in volts.
func (d *TektronixDPO4xxx) ChannelOffset(channel int) (float64, error) {
	if err := checkChannel(channel); err != nil {
		return 0, err
	}
	return query.Float64f(d.res, "CH%d:OFFS?", channel)
}

// SetChannelLabel sets the on-screen label of the given channel.
func (d *TektronixDPO4xxx) SetChannelLabel(channel int, label string) error {
	if err := checkChannel(channel); err != nil {
		return err
	}
	return d.res.Command(`CH%d:LAB "%s"`, channel, label)
}

// ChannelLabel returns the on-screen label of the given channel.
func (d *TektronixDPO4xxx) ChannelLabel(channel int) (string, error) {
	if err := checkChannel(channel); err != nil {
		return "", err
	}
	s, err := query.Stringf(d.res, "CH%d:LAB?", channel)
	if err != nil {
		return "", err
	}
	return strings.Trim(s, `"`), nil
}

// SetTriggerLevel sets the A-trigger level in volts.
func (d *TektronixDPO4xxx) SetTriggerLevel(volts float64) error {
	return d.res.Command("TRIG:A:LEV %v", volts)
}

// TriggerLevel returns the A-trigger level in volts.
func (d *TektronixDPO4xxx) TriggerLevel() (float64, error) {
	return query.Float64(d.res, "TRIG:A:LEV?")
}

// SetTriggerMode sets the A-trigger mode.
func (d *TektronixDPO4xxx) SetTriggerMode(mode TriggerMode) error {
	if mode != TriggerAuto && mode != TriggerNormal {
		return &equipment.ConfigurationError{
			Param:  "trigger mode",
			Reason: string(mode) + " is not a valid trigger mode",
		}
	}
	return d.res.Command("TRIG:A:MOD %s", mode)
}

// TriggerRunStop presses the front-panel Run/Stop button.
func (d *TektronixDPO4xxx) TriggerRunStop() error {
	return d.res.Command("FPANEL:PRESS RUnstop")
}

// TriggerSingle presses the front-panel Single button, arming one
// acquisition.
func (d *TektronixDPO4xxx) TriggerSingle() error {
	return d.res.Command("FPANEL:PRESS SING")
}

// TriggerForce forces a trigger event.
func (d *TektronixDPO4xxx) TriggerForce() error {
	return d.res.Command("TRIG FORC")
}

// Measurement returns the current value of the given on-screen measurement
// slot, 1 to 8.
func (d *TektronixDPO4xxx) Measurement(slot int) (float64, error) {
	if slot < 1 || slot > 8 {
		return 0, &equipment.ConfigurationError{
			Param:  "measurement slot",
			Reason: fmt.Sprintf("slot %d outside valid range 1-8", slot),
		}
	}
	return query.Float64f(d.res, "MEASU:MEAS%d:VAL?", slot)
}
