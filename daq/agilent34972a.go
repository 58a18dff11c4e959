// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package daq provides drivers for multi-channel data acquisition units.
package daq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benchrig/equipment"
	"github.com/gotmc/query"
)

// Mode is a measurement function a DAQ channel can be configured for.
type Mode string

// Measurement functions supported by the 34972A multiplexer cards.
const (
	ModeVoltage    Mode = "VOLT"
	ModeCurrent    Mode = "CURR"
	ModeResistance Mode = "RES"
	ModeFrequency  Mode = "FREQ"
	ModePeriod     Mode = "PER"
	ModeDiode      Mode = "DIOD"
	ModeContinuity Mode = "CONT"
)

// TriggerSource selects what initiates a scan sweep.
type TriggerSource string

// Valid trigger sources.
const (
	TriggerImmediate TriggerSource = "IMMediate"
	TriggerBus       TriggerSource = "BUS"
	TriggerExternal  TriggerSource = "EXTernal"
	TriggerTimer     TriggerSource = "TIMer"
)

// Agilent34972A controls an Agilent 34972A data acquisition/switch unit.
// Channels are addressed as scc: slot 1 to 3 in the hundreds digit, card
// channel 1 to 22 below, e.g. 101 or 213.
type Agilent34972A struct {
	res *equipment.Resource
}

// NewAgilent34972A returns a driver for the DAQ reachable through the given
// resource.
func NewAgilent34972A(res *equipment.Resource) (*Agilent34972A, error) {
	if err := res.CheckIdentity("34972A"); err != nil {
		return nil, err
	}
	return &Agilent34972A{res: res}, nil
}

// checkChannels validates a channel list against the slot/channel layout of
// the mainframe, before anything is sent to the instrument.
func checkChannels(channels []int) error {
	if len(channels) == 0 {
		return &equipment.ConfigurationError{
			Param:  "channels",
			Reason: "empty channel list",
		}
	}
	for _, ch := range channels {
		slot, card := ch/100, ch%100
		if slot < 1 || slot > 3 || card < 1 || card > 22 {
			return &equipment.ConfigurationError{
				Param:  "channel",
				Reason: fmt.Sprintf("channel %d is not a valid slot/channel address", ch),
			}
		}
	}
	return nil
}

// channelList renders a channel list in the instrument's (@101,102) syntax.
func channelList(channels []int) string {
	fields := make([]string, len(channels))
	for i, ch := range channels {
		fields[i] = strconv.Itoa(ch)
	}
	return "(@" + strings.Join(fields, ",") + ")"
}

// parseChannelList decodes the instrument's (@101,102) channel list syntax.
// An empty scan list reads back as "(@)".
func parseChannelList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	channels := make([]int, len(fields))
	for i, field := range fields {
		ch, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, &equipment.ProtocolError{
				Cmd:    "ROUT:SCAN?",
				Reason: "non-numeric channel " + field,
			}
		}
		channels[i] = ch
	}
	return channels, nil
}

// ConfigureChannels sets the measurement function for the given channels,
// with auto range and default resolution.
func (d *Agilent34972A) ConfigureChannels(mode Mode, channels ...int) error {
	if err := checkChannels(channels); err != nil {
		return err
	}
	return d.res.Command("CONF:%s %s", mode, channelList(channels))
}

// SetScanList defines the set of channels swept by each scan.
func (d *Agilent34972A) SetScanList(channels ...int) error {
	if err := checkChannels(channels); err != nil {
		return err
	}
	return d.res.Command("ROUT:SCAN %s", channelList(channels))
}

// ScanList returns the channels swept by each scan, in sweep order.
func (d *Agilent34972A) ScanList() ([]int, error) {
	s, err := query.String(d.res, "ROUT:SCAN?")
	if err != nil {
		return nil, err
	}
	return parseChannelList(s)
}

// Read triggers a scan sweep and returns one reading per scan-list channel,
// decoded from the instrument's comma-separated response, in sweep order.
func (d *Agilent34972A) Read() ([]float64, error) {
	s, err := query.String(d.res, "READ?")
	if err != nil {
		return nil, err
	}
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, &equipment.ProtocolError{
				Cmd:    "READ?",
				Reason: "non-numeric reading " + field,
			}
		}
		values[i] = v
	}
	return values, nil
}

// SetTriggerSource selects what initiates a scan sweep.
func (d *Agilent34972A) SetTriggerSource(source TriggerSource) error {
	switch source {
	case TriggerImmediate, TriggerBus, TriggerExternal, TriggerTimer:
	default:
		return &equipment.ConfigurationError{
			Param:  "trigger source",
			Reason: string(source) + " is not a valid trigger source",
		}
	}
	return d.res.Command("TRIG:SOUR %s", source)
}

// SetTriggerCount sets how many sweeps run per trigger.
func (d *Agilent34972A) SetTriggerCount(count int) error {
	if count < 1 {
		return &equipment.ConfigurationError{
			Param:  "trigger count",
			Reason: "count must be positive",
		}
	}
	return d.res.Command("TRIG:COUN %d", count)
}

// SetTriggerInterval sets the delay, in seconds, between sweeps when the
// trigger source is TriggerTimer. The whole scan list is measured each
// sweep, then the interval elapses before the next sweep.
func (d *Agilent34972A) SetTriggerInterval(seconds float64) error {
	return d.res.Command("TRIG:TIM %v", seconds)
}

// Errors drains the instrument's error queue, returning one "code,message"
// entry per error in order of occurrence. An empty queue returns nil.
func (d *Agilent34972A) Errors() ([]string, error) {
	var errs []string
	for {
		s, err := query.String(d.res, "SYSTem:ERRor?")
		if err != nil {
			return errs, err
		}
		code := strings.SplitN(s, ",", 2)[0]
		if n, err := strconv.Atoi(strings.TrimSpace(code)); err == nil && n == 0 {
			return errs, nil
		}
		errs = append(errs, s)
	}
}
