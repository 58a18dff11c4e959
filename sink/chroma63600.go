// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package sink provides drivers for DC electronic loads.
package sink

import (
	"fmt"
	"strings"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// Mode is an operating mode of a Chroma 63600 load module.
type Mode string

// Operating modes supported by the 63600 family.
const (
	ModeCC   Mode = "CC"
	ModeCR   Mode = "CR"
	ModeCV   Mode = "CV"
	ModeCP   Mode = "CP"
	ModeCZ   Mode = "CZ"
	ModeCCD  Mode = "CCD"
	ModeCCFS Mode = "CCFS"
	ModeTIM  Mode = "TIM"
	ModeSWD  Mode = "SWD"
)

// validRanges are the range suffixes accepted by the MODE command.
var validRanges = map[string]bool{"L": true, "M": true, "H": true}

// Chroma63600 controls a Chroma 63600-series DC load mainframe.
//
// The mainframe is assumed to carry the higher-power 636xx load modules,
// which occupy two software addresses each but respond only on the first,
// odd, address. Channel arguments are the physical bay positions, 1 to 5;
// the driver reindexes them to software addresses so callers can work in
// physical positions.
type Chroma63600 struct {
	res *equipment.Resource
}

// NewChroma63600 returns a driver for the load mainframe reachable through
// the given resource.
func NewChroma63600(res *equipment.Resource) (*Chroma63600, error) {
	if err := res.CheckIdentity("636"); err != nil {
		return nil, err
	}
	return &Chroma63600{res: res}, nil
}

// channelIndex converts a physical bay position to the software address
// the mainframe expects.
func channelIndex(channel int) (int, error) {
	if channel < 1 || channel > 5 {
		return 0, &equipment.ConfigurationError{
			Param:  "channel",
			Reason: fmt.Sprintf("channel %d outside valid range 1-5", channel),
		}
	}
	return 2*channel - 1, nil
}

// SetState enables or disables the load input of the selected channel.
func (d *Chroma63600) SetState(on bool) error {
	return d.res.Command("LOAD %d", boolToInt(on))
}

// State reports whether the load input of the selected channel is enabled.
func (d *Chroma63600) State() (bool, error) {
	s, err := query.String(d.res, "LOAD?")
	if err != nil {
		return false, err
	}
	return s == "ON", nil
}

// On enables the load input, equivalent to SetState(true).
func (d *Chroma63600) On() error { return d.SetState(true) }

// Off disables the load input, equivalent to SetState(false).
func (d *Chroma63600) Off() error { return d.SetState(false) }

// Toggle reverses the state of the load input.
func (d *Chroma63600) Toggle() error {
	on, err := d.State()
	if err != nil {
		return err
	}
	return d.SetState(!on)
}

// SetChannel selects the channel, by physical bay position, that subsequent
// channel-scoped commands apply to.
func (d *Chroma63600) SetChannel(channel int) error {
	idx, err := channelIndex(channel)
	if err != nil {
		return err
	}
	return d.res.Command("CHAN %d", idx)
}

// Channel returns the physical bay position of the selected channel.
func (d *Chroma63600) Channel() (int, error) {
	idx, err := query.Int(d.res, "CHAN?")
	if err != nil {
		return 0, err
	}
	return (idx + 1) / 2, nil
}

// SetMode configures the selected channel's operating mode and range. The
// range suffix is L, M, or H; modes without ranges (TIM, SWD) take an empty
// suffix.
func (d *Chroma63600) SetMode(mode Mode, rng string) error {
	rng = strings.ToUpper(rng)
	if rng != "" && !validRanges[rng] {
		return &equipment.ConfigurationError{
			Param:  "range",
			Reason: rng + " is not a valid range, expected L, M, or H",
		}
	}
	return d.res.Command("MODE %s%s", mode, rng)
}

// Mode returns the selected channel's operating mode and range.
func (d *Chroma63600) Mode() (Mode, string, error) {
	s, err := query.String(d.res, "MODE?")
	if err != nil {
		return "", "", err
	}
	for _, m := range []Mode{ModeCCFS, ModeCCD, ModeSWD, ModeTIM, ModeCC, ModeCR, ModeCV, ModeCP, ModeCZ} {
		if strings.HasPrefix(s, string(m)) {
			return m, strings.TrimPrefix(s, string(m)), nil
		}
	}
	return "", "", &equipment.ProtocolError{Cmd: "MODE?", Reason: "unknown mode " + s}
}

// SetCurrent sets the static current for both levels of the selected
// channel, in amps DC.
func (d *Chroma63600) SetCurrent(amps float64) error {
	if err := d.res.Command("CURR:STAT:L1 %v", amps); err != nil {
		return err
	}
	return d.res.Command("CURR:STAT:L2 %v", amps)
}

// SetCurrentLevel sets the static current for one level, 1 or 2, of the
// selected channel, in amps DC.
func (d *Chroma63600) SetCurrentLevel(level int, amps float64) error {
	if level != 1 && level != 2 {
		return &equipment.ConfigurationError{
			Param:  "level",
			Reason: fmt.Sprintf("level %d outside valid range 1-2", level),
		}
	}
	return d.res.Command("CURR:STAT:L%d %v", level, amps)
}

// Current returns the level 1 static current of the selected channel in
// amps DC.
func (d *Chroma63600) Current() (float64, error) {
	return query.Float64(d.res, "CURR:STAT:L1?")
}

// SetResistance sets the static resistance for both levels of the selected
// channel, in ohms.
func (d *Chroma63600) SetResistance(ohms float64) error {
	if err := d.res.Command("RES:STAT:L1 %v", ohms); err != nil {
		return err
	}
	return d.res.Command("RES:STAT:L2 %v", ohms)
}

// MeasureVoltage returns the measured voltage across the load in volts DC.
func (d *Chroma63600) MeasureVoltage() (float64, error) {
	return query.Float64(d.res, "MEAS:VOLT?")
}

// MeasureCurrent returns the measured current through the load in amps DC.
func (d *Chroma63600) MeasureCurrent() (float64, error) {
	return query.Float64(d.res, "MEAS:CURR?")
}

// MeasurePower returns the measured power dissipated by the load in watts.
func (d *Chroma63600) MeasurePower() (float64, error) {
	return query.Float64(d.res, "MEAS:POW?")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ equipment.CurrentSink = (*Chroma63600)(nil)
