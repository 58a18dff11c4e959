// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package source_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/equiptest"
	"github.com/benchrig/equipment/source"
)

// scpiResponder answers ?-suffixed commands from a map of command to reply.
func scpiResponder(idn string, replies map[string]string) func([]byte) []byte {
	return func(written []byte) []byte {
		cmd := strings.TrimRight(string(written), "\n")
		if cmd == "*IDN?" {
			return []byte(idn + "\n")
		}
		if reply, ok := replies[cmd]; ok {
			return []byte(reply + "\n")
		}
		return nil
	}
}

func newTestResource(t *testing.T, respond func([]byte) []byte) (*equipment.Resource, *equiptest.Transport) {
	t.Helper()
	tr := &equiptest.Transport{Respond: respond}
	res, err := equipment.NewResource(tr)
	if err != nil {
		t.Fatalf("NewResource() = %v", err)
	}
	return res, tr
}

func TestHP6632AIdentity(t *testing.T) {
	res, _ := newTestResource(t, scpiResponder("FLUKE,45,0,1.0", nil))
	_, err := source.NewHP6632A(res)
	var ierr *equipment.IdentityError
	if !errors.As(err, &ierr) {
		t.Fatalf("NewHP6632A() with wrong instrument = %v, want IdentityError", err)
	}
}

func TestHP6632ACommands(t *testing.T) {
	replies := map[string]string{
		"OUTP:STAT?": "1",
		"MEAS:VOLT?": "11.997",
		"MEAS:CURR?": "0.254",
	}
	res, tr := newTestResource(t, scpiResponder("HEWLETT-PACKARD,6632A,0,A.02.03", replies))
	d, err := source.NewHP6632A(res)
	if err != nil {
		t.Fatalf("NewHP6632A() = %v", err)
	}

	if err := d.SetVoltage(12.0); err != nil {
		t.Fatalf("SetVoltage() = %v", err)
	}
	if err := d.SetCurrent(0.5); err != nil {
		t.Fatalf("SetCurrent() = %v", err)
	}
	if err := d.On(); err != nil {
		t.Fatalf("On() = %v", err)
	}

	want := []string{
		"*IDN?\n",
		"SOUR:VOLT:LEV 12\n",
		"SOUR:CURR:LEV 0.5\n",
		"OUTP:STAT 1\n",
	}
	writes := tr.Writes()
	if len(writes) != len(want) {
		t.Fatalf("got %d writes, want %d", len(writes), len(want))
	}
	for i, w := range want {
		if got := string(writes[i]); got != w {
			t.Errorf("write %d = %q, want %q", i, got, w)
		}
	}

	on, err := d.State()
	if err != nil {
		t.Fatalf("State() = %v", err)
	}
	if !on {
		t.Error("State() = false, want true")
	}
	v, err := d.MeasureVoltage()
	if err != nil {
		t.Fatalf("MeasureVoltage() = %v", err)
	}
	if v != 11.997 {
		t.Errorf("MeasureVoltage() = %v, want 11.997", v)
	}
	i, err := d.MeasureCurrent()
	if err != nil {
		t.Fatalf("MeasureCurrent() = %v", err)
	}
	if i != 0.254 {
		t.Errorf("MeasureCurrent() = %v, want 0.254", i)
	}
}

func TestKeithley2231AChannelValidation(t *testing.T) {
	for _, channel := range []int{-1, 0, 4} {
		res, tr := newTestResource(t, scpiResponder("Keithley Instruments, 2231A-30-3, 9103456, 1.04", nil))
		_, err := source.NewKeithley2231A(res, channel)
		var cerr *equipment.ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("NewKeithley2231A(channel=%d) = %v, want ConfigurationError", channel, err)
		}
		if got := len(tr.Writes()); got != 0 {
			t.Errorf("channel %d: got %d writes before validation, want 0", channel, got)
		}
	}
}

func TestKeithley2231AChannelScoping(t *testing.T) {
	res, tr := newTestResource(t, scpiResponder("Keithley Instruments, 2231A-30-3, 9103456, 1.04", nil))
	d, err := source.NewKeithley2231A(res, 2)
	if err != nil {
		t.Fatalf("NewKeithley2231A() = %v", err)
	}
	if d.Channel() != 2 {
		t.Errorf("Channel() = %d, want 2", d.Channel())
	}

	if err := d.SetVoltage(3.3); err != nil {
		t.Fatalf("SetVoltage() = %v", err)
	}

	want := []string{
		"*IDN?\n",
		"SYSTem:RWLock\n",
		"INST:NSEL 2\n",
		"SOUR:VOLT 3.3\n",
	}
	writes := tr.Writes()
	if len(writes) != len(want) {
		t.Fatalf("got %d writes, want %d", len(writes), len(want))
	}
	for i, w := range want {
		if got := string(writes[i]); got != w {
			t.Errorf("write %d = %q, want %q", i, got, w)
		}
	}
}
