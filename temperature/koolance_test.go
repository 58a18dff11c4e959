// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package temperature_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/equiptest"
	"github.com/benchrig/equipment/register"
	"github.com/benchrig/equipment/temperature"
)

var dataRequest = []byte{0xCF, 0x01, 0x08}

// chillerFrame builds a 51-byte device frame with a known set of readings:
// liquid 21.5, external 25.0, ambient 22.0, fan 1200 rpm, pump 3000 rpm,
// flow 12.3, liquid setpoint 10.0, units Celsius.
func chillerFrame() []byte {
	f := make([]byte, 51)
	f[0], f[1] = 0xCF, 0x01
	put := func(offset, n int) {
		f[offset] = byte(n >> 8)
		f[offset+1] = byte(n)
	}
	put(2, 2215)  // mon_liq_temp: (2215 - 2000) / 10 = 21.5
	put(4, 2250)  // mon_ext_temp
	put(6, 2220)  // mon_amb_temp
	put(8, 1200)  // mon_fan_rpm
	put(10, 3000) // mon_pump_rpm
	put(12, 123)  // mon_flow_meter: 12.3
	put(14, 510)  // usr_temp_sp_liq: 10.0
	put(16, 3000) // usr_pump_sp
	put(44, 1)    // units: Celsius
	register.SetChecksum(f)
	return f
}

// newTestChiller wires a chiller driver to an emulated device that answers
// data requests with the given frame.
func newTestChiller(t *testing.T, frame []byte) (*temperature.KoolanceEXC900, *equiptest.Transport) {
	t.Helper()
	tr := &equiptest.Transport{Respond: func(written []byte) []byte {
		if bytes.Equal(written, dataRequest) {
			return frame
		}
		return nil
	}}
	res, err := equipment.NewResource(tr)
	if err != nil {
		t.Fatalf("NewResource() = %v", err)
	}
	return temperature.NewKoolanceEXC900(res), tr
}

func TestKoolanceSettings(t *testing.T) {
	d, _ := newTestChiller(t, chillerFrame())

	settings, err := d.Settings()
	if err != nil {
		t.Fatalf("Settings() = %v", err)
	}

	want := map[string]float64{
		"mon_liq_temp":    21.5,
		"mon_ext_temp":    25.0,
		"mon_amb_temp":    22.0,
		"mon_fan_rpm":     1200,
		"mon_pump_rpm":    3000,
		"mon_flow_meter":  12.3,
		"usr_temp_sp_liq": 10.0,
		"usr_pump_sp":     3000,
		"usr_flow_sp":     0,
		"units":           1,
	}
	for name, v := range want {
		if got := settings[name]; got != v {
			t.Errorf("Settings()[%q] = %v, want %v", name, got, v)
		}
	}
	// The shared setpoint field decodes under every bias; only the liquid
	// configuration yields a positive value for this frame.
	if got := settings["usr_temp_sp_ext"]; got != -490 {
		t.Errorf("Settings()[usr_temp_sp_ext] = %v, want -490", got)
	}
}

func TestKoolanceTemperature(t *testing.T) {
	d, _ := newTestChiller(t, chillerFrame())

	got, err := d.Temperature()
	if err != nil {
		t.Fatalf("Temperature() = %v", err)
	}
	if got != 10.0 {
		t.Errorf("Temperature() = %v, want 10.0", got)
	}

	liq, err := d.MeasureTemperature()
	if err != nil {
		t.Fatalf("MeasureTemperature() = %v", err)
	}
	if liq != 21.5 {
		t.Errorf("MeasureTemperature() = %v, want 21.5", liq)
	}
}

func TestKoolanceMeasureSensor(t *testing.T) {
	d, _ := newTestChiller(t, chillerFrame())

	testCases := []struct {
		sensor  temperature.Sensor
		want    float64
		wantErr bool
	}{
		{sensor: temperature.SensorLiquid, want: 21.5},
		{sensor: temperature.SensorExternal, want: 25.0},
		{sensor: temperature.SensorAmbient, want: 22.0},
		{sensor: temperature.Sensor("bogus"), wantErr: true},
	}
	for _, tc := range testCases {
		got, err := d.MeasureSensor(tc.sensor)
		if (err != nil) != tc.wantErr {
			t.Fatalf("MeasureSensor(%q): failed = %t (%v), want %t", tc.sensor, err != nil, err, tc.wantErr)
		}
		if err != nil {
			var cerr *equipment.ConfigurationError
			if !errors.As(err, &cerr) {
				t.Errorf("MeasureSensor(%q): error %v is not a ConfigurationError", tc.sensor, err)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("MeasureSensor(%q) = %v, want %v", tc.sensor, got, tc.want)
		}
	}
}

func TestKoolanceUpdateSettings(t *testing.T) {
	base := chillerFrame()
	d, tr := newTestChiller(t, base)

	if err := d.SetTemperature(15.0); err != nil {
		t.Fatalf("SetTemperature() = %v", err)
	}

	writes := tr.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want data request plus frame write", len(writes))
	}
	if !bytes.Equal(writes[0], dataRequest) {
		t.Errorf("first write = % X, want data request", writes[0])
	}

	want := make([]byte, len(base))
	copy(want, base)
	want[0], want[1] = 0xCF, 0x04
	for i := 2; i < 14; i++ {
		want[i] = 0
	}
	want[14], want[15] = 0x02, 0x03 // 15.0 + bias 500 = 515
	register.SetChecksum(want)

	if !bytes.Equal(writes[1], want) {
		t.Errorf("frame write:\n got % X\nwant % X", writes[1], want)
	}
}

func TestKoolanceUpdateSettingsInvalidName(t *testing.T) {
	d, tr := newTestChiller(t, chillerFrame())

	err := d.UpdateSettings(map[string]float64{"usr_temp_sp_liq": 15, "bogus": 1})
	var cerr *equipment.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("UpdateSettings() = %v, want ConfigurationError", err)
	}
	if got := len(tr.Writes()); got != 0 {
		t.Errorf("got %d writes for rejected update, want 0", got)
	}
}

func TestKoolanceWriteInvalidatesCache(t *testing.T) {
	d, tr := newTestChiller(t, chillerFrame())

	requests := func() int {
		n := 0
		for _, w := range tr.Writes() {
			if bytes.Equal(w, dataRequest) {
				n++
			}
		}
		return n
	}

	// Two reads inside the staleness window share one fetch.
	if _, err := d.Settings(); err != nil {
		t.Fatalf("Settings() = %v", err)
	}
	if _, err := d.Temperature(); err != nil {
		t.Fatalf("Temperature() = %v", err)
	}
	if got := requests(); got != 1 {
		t.Fatalf("got %d data requests after two reads, want 1", got)
	}

	// A write invalidates the cached frame, so the next read refetches.
	if err := d.SetUnits("F"); err != nil {
		t.Fatalf("SetUnits() = %v", err)
	}
	if _, err := d.Settings(); err != nil {
		t.Fatalf("Settings() = %v", err)
	}
	if got := requests(); got != 2 {
		t.Errorf("got %d data requests after write, want 2", got)
	}
}

func TestKoolanceSetSensorTemperature(t *testing.T) {
	testCases := []struct {
		desc       string
		sensor     temperature.SensorConfig
		useAmbient bool
		wantField  int
		wantErr    bool
	}{
		{
			desc:      "Liquid setpoint",
			sensor:    temperature.Liquid,
			wantField: 510, // 10.0 + bias 500
		},
		{
			desc:      "External setpoint",
			sensor:    temperature.External,
			wantField: 1010,
		},
		{
			desc:       "Liquid setpoint relative to ambient",
			sensor:     temperature.Liquid,
			useAmbient: true,
			wantField:  1510,
		},
		{
			desc:       "External setpoint relative to ambient",
			sensor:     temperature.External,
			useAmbient: true,
			wantField:  2010,
		},
		{
			desc:    "Unknown sensor configuration",
			sensor:  temperature.SensorConfig("amb"),
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		d, tr := newTestChiller(t, chillerFrame())
		err := d.SetSensorTemperature(10.0, tc.sensor, tc.useAmbient)
		if (err != nil) != tc.wantErr {
			t.Fatalf("Test %q: failed = %t (%v), want %t", tc.desc, err != nil, err, tc.wantErr)
		}
		if err != nil {
			if got := len(tr.Writes()); got != 0 {
				t.Errorf("Test %q: got %d writes for rejected setpoint, want 0", tc.desc, got)
			}
			continue
		}
		writes := tr.Writes()
		frame := writes[len(writes)-1]
		got := int(frame[14])<<8 | int(frame[15])
		if got != tc.wantField {
			t.Errorf("Test %q: setpoint field = %d, want %d", tc.desc, got, tc.wantField)
		}
	}
}

func TestKoolanceUnits(t *testing.T) {
	frame := chillerFrame()
	d, _ := newTestChiller(t, frame)

	unit, err := d.Units()
	if err != nil {
		t.Fatalf("Units() = %v", err)
	}
	if unit != "C" {
		t.Errorf("Units() = %q, want C", unit)
	}

	if err := d.SetUnits("K"); err == nil {
		t.Error("SetUnits(K) = nil, want ConfigurationError")
	}
}
