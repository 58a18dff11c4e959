// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package powermeter_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/equiptest"
	"github.com/benchrig/equipment/powermeter"
)

func newTestMeter(t *testing.T, replies map[string]string) (*powermeter.Chroma66204, *equiptest.Transport) {
	t.Helper()
	tr := &equiptest.Transport{Respond: func(written []byte) []byte {
		cmd := strings.TrimRight(string(written), "\n")
		if cmd == "*IDN?" {
			return []byte("Chroma ATE,66204,001234,1.30\n")
		}
		if reply, ok := replies[cmd]; ok {
			return []byte(reply + "\n")
		}
		return nil
	}}
	res, err := equipment.NewResource(tr)
	if err != nil {
		t.Fatalf("NewResource() = %v", err)
	}
	d, err := powermeter.NewChroma66204(res)
	if err != nil {
		t.Fatalf("NewChroma66204() = %v", err)
	}
	return d, tr
}

func TestNewConfiguresJoules(t *testing.T) {
	_, tr := newTestMeter(t, nil)
	writes := tr.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes at construction, want 2", len(writes))
	}
	if got, want := string(writes[1]), "ENER:MODE JOULE\n"; got != want {
		t.Errorf("write 1 = %q, want %q", got, want)
	}
}

func TestFetchSingleChannel(t *testing.T) {
	d, _ := newTestMeter(t, map[string]string{
		"FETC:POW:REAL? 2": "150.25",
	})
	got, err := d.Power(2)
	if err != nil {
		t.Fatalf("Power(2) = %v", err)
	}
	if !reflect.DeepEqual(got, []float64{150.25}) {
		t.Errorf("Power(2) = %v, want [150.25]", got)
	}
}

func TestFetchAllChannels(t *testing.T) {
	d, _ := newTestMeter(t, map[string]string{
		"FETC:VOLT:RMS? 0": "230.1,229.8,0.0,0.0",
	})
	got, err := d.VoltageRMS(powermeter.AllChannels)
	if err != nil {
		t.Fatalf("VoltageRMS(AllChannels) = %v", err)
	}
	want := []float64{230.1, 229.8, 0.0, 0.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VoltageRMS(AllChannels) = %v, want %v", got, want)
	}
}

func TestFetchInvalidChannel(t *testing.T) {
	for _, channel := range []int{-1, 5} {
		d, tr := newTestMeter(t, nil)
		before := len(tr.Writes())
		_, err := d.Power(channel)
		var cerr *equipment.ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("Power(%d) = %v, want ConfigurationError", channel, err)
		}
		if got := len(tr.Writes()); got != before {
			t.Errorf("Power(%d): got %d extra writes for rejected channel", channel, got-before)
		}
	}
}

func TestFetchNonNumericResponse(t *testing.T) {
	d, _ := newTestMeter(t, map[string]string{
		"FETC:FREQ? 1": "50.0,garbage",
	})
	_, err := d.Frequency(1)
	var perr *equipment.ProtocolError
	if !errors.As(err, &perr) {
		t.Errorf("Frequency() with corrupt response = %v, want ProtocolError", err)
	}
}

func TestVoltagePeakSign(t *testing.T) {
	d, tr := newTestMeter(t, map[string]string{
		"FETC:VOLT:PEAK+? 1": "325.2",
		"FETC:VOLT:PEAK-? 1": "-324.9",
	})

	pos, err := d.VoltagePeak(1, true)
	if err != nil {
		t.Fatalf("VoltagePeak(1, true) = %v", err)
	}
	if pos[0] != 325.2 {
		t.Errorf("VoltagePeak(1, true) = %v, want [325.2]", pos)
	}
	neg, err := d.VoltagePeak(1, false)
	if err != nil {
		t.Fatalf("VoltagePeak(1, false) = %v", err)
	}
	if neg[0] != -324.9 {
		t.Errorf("VoltagePeak(1, false) = %v, want [-324.9]", neg)
	}

	writes := tr.Writes()
	if got, want := string(writes[2]), "FETC:VOLT:PEAK+? 1\n"; got != want {
		t.Errorf("write 2 = %q, want %q", got, want)
	}
}
