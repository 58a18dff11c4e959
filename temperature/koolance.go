// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package temperature provides drivers for chillers and thermal chambers.
package temperature

import (
	"time"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/register"
)

// SensorConfig selects which temperature sensor a chiller setpoint applies
// to. The sensor configurations are mutually exclusive: their registers share
// one field in the device frame, distinguished only by bias, so exactly one
// is written per update.
type SensorConfig string

// Valid sensor configurations for a setpoint.
const (
	Liquid   SensorConfig = "liq"
	External SensorConfig = "ext"
)

// Sensor names a measurement channel on the chiller.
type Sensor string

// Valid measurement sensors.
const (
	SensorLiquid   Sensor = "liq"
	SensorExternal Sensor = "ext"
	SensorAmbient  Sensor = "amb"
)

// exc900FrameLen is the fixed length of every frame exchanged with the
// device, checksum byte included.
const exc900FrameLen = 51

// exc900DataRequest asks the device for a full data frame.
var exc900DataRequest = []byte{0xCF, 0x01, 0x08}

// exc900Registers maps setting names to their frame layout. The four
// usr_temp_sp registers all describe the same two-byte field at offset 14;
// the bias encodes which sensor configuration the setpoint applies to.
var exc900Registers = map[string]register.Register{
	// monitoring data
	"mon_liq_temp":   {Offset: 2, NBytes: 2, M: 10, R: 0, B: 2000},
	"mon_ext_temp":   {Offset: 4, NBytes: 2, M: 10, R: 0, B: 2000},
	"mon_amb_temp":   {Offset: 6, NBytes: 2, M: 10, R: 0, B: 2000},
	"mon_fan_rpm":    {Offset: 8, NBytes: 2, M: 1, R: 0, B: 0},
	"mon_pump_rpm":   {Offset: 10, NBytes: 2, M: 1, R: 0, B: 0},
	"mon_flow_meter": {Offset: 12, NBytes: 2, M: 1, R: 1, B: 0},
	// user mode settings
	"usr_temp_sp_liq":     {Offset: 14, NBytes: 2, M: 1, R: 0, B: 500},
	"usr_temp_sp_ext":     {Offset: 14, NBytes: 2, M: 1, R: 0, B: 1000},
	"usr_temp_sp_liq_amb": {Offset: 14, NBytes: 2, M: 1, R: 0, B: 1500},
	"usr_temp_sp_ext_amb": {Offset: 14, NBytes: 2, M: 1, R: 0, B: 2000},
	"usr_pump_sp":         {Offset: 16, NBytes: 2, M: 1, R: 0, B: 0},
	"usr_flow_sp":         {Offset: 18, NBytes: 2, M: 1, R: 0, B: 0},
	// units
	"units": {Offset: 44, NBytes: 2, M: 1, R: 0, B: 0},
}

// KoolanceEXC900 controls a Koolance EXC900 recirculating chiller. The
// device speaks a fixed-length binary frame protocol over its serial link;
// settings and monitoring data share one 51-byte frame. Because the serial
// exchange is slow, reads go through a cache with a short staleness window,
// and any write invalidates the cache.
type KoolanceEXC900 struct {
	res   *equipment.Resource
	cache *register.Cache
}

// KoolanceOption applies an option to a KoolanceEXC900.
type KoolanceOption func(*KoolanceEXC900)

// WithMaxFrameAge sets the staleness window for cached device frames. The
// default is one second.
func WithMaxFrameAge(maxAge time.Duration) KoolanceOption {
	return func(d *KoolanceEXC900) { d.cache = register.NewCache(maxAge) }
}

// NewKoolanceEXC900 returns a driver for the chiller reachable through the
// given resource.
func NewKoolanceEXC900(res *equipment.Resource, opts ...KoolanceOption) *KoolanceEXC900 {
	d := KoolanceEXC900{
		res:   res,
		cache: register.NewCache(register.DefaultMaxAge),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return &d
}

// readFrame returns the current device frame, fetching a fresh one only when
// the cached copy is stale. Callers must not mutate the returned slice.
func (d *KoolanceEXC900) readFrame() ([]byte, error) {
	return d.cache.Frame(func() ([]byte, error) {
		if err := d.res.WriteRaw(exc900DataRequest); err != nil {
			return nil, err
		}
		return d.res.ReadBytes(exc900FrameLen)
	})
}

// Settings reads the device frame and decodes every known register into a
// name to value map.
func (d *KoolanceEXC900) Settings() (map[string]float64, error) {
	frame, err := d.readFrame()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(exc900Registers))
	for name, reg := range exc900Registers {
		v, err := reg.Unpack(frame)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// UpdateSettings writes the given settings to the device, leaving all other
// parameters unchanged. Updating several parameters in one call costs a
// single frame write. All names are validated before any bytes move on the
// transport; the outgoing frame is fully constructed in memory, so a write
// is all-or-nothing.
func (d *KoolanceEXC900) UpdateSettings(settings map[string]float64) error {
	for name := range settings {
		if _, ok := exc900Registers[name]; !ok {
			return &equipment.ConfigurationError{
				Param:  "setting",
				Reason: name + " is not a valid setting name",
			}
		}
	}

	current, err := d.readFrame()
	if err != nil {
		return err
	}
	frame := make([]byte, len(current))
	copy(frame, current)

	for name, value := range settings {
		if err := exc900Registers[name].Pack(frame, value); err != nil {
			return err
		}
	}

	// Configure the command bytes for a write and zero the read-only span.
	frame[0], frame[1] = 0xCF, 0x04
	for i := 2; i < 14; i++ {
		frame[i] = 0
	}
	register.SetChecksum(frame)

	d.cache.Invalidate()
	return d.res.WriteRaw(frame)
}

// SetTemperature sets the liquid temperature setpoint. Use
// SetSensorTemperature to target a different sensor configuration.
func (d *KoolanceEXC900) SetTemperature(degrees float64) error {
	return d.SetSensorTemperature(degrees, Liquid, false)
}

// SetSensorTemperature sets the temperature setpoint for the given sensor
// configuration, optionally relative to the ambient sensor.
func (d *KoolanceEXC900) SetSensorTemperature(degrees float64, sensor SensorConfig, useAmbient bool) error {
	if sensor != Liquid && sensor != External {
		return &equipment.ConfigurationError{
			Param:  "sensor config",
			Reason: string(sensor) + " is not a valid option",
		}
	}
	name := "usr_temp_sp_" + string(sensor)
	if useAmbient {
		name += "_amb"
	}
	return d.UpdateSettings(map[string]float64{name: degrees})
}

// Temperature returns the active temperature setpoint. The device keeps one
// setpoint field shared between the four sensor configurations; the first
// configuration decoding to a positive value is the active one.
func (d *KoolanceEXC900) Temperature() (float64, error) {
	settings, err := d.Settings()
	if err != nil {
		return 0, err
	}
	for _, config := range []string{"liq", "ext", "liq_amb", "ext_amb"} {
		if v := settings["usr_temp_sp_"+config]; v > 0.0 {
			return v, nil
		}
	}
	return 0, &equipment.ProtocolError{
		Cmd:    "data read",
		Reason: "no active temperature setpoint",
	}
}

// MeasureTemperature returns the measured liquid temperature.
func (d *KoolanceEXC900) MeasureTemperature() (float64, error) {
	return d.MeasureSensor(SensorLiquid)
}

// MeasureSensor returns the measured temperature from the given sensor.
func (d *KoolanceEXC900) MeasureSensor(sensor Sensor) (float64, error) {
	switch sensor {
	case SensorLiquid, SensorExternal, SensorAmbient:
	default:
		return 0, &equipment.ConfigurationError{
			Param:  "sensor",
			Reason: string(sensor) + " is not a valid option",
		}
	}
	settings, err := d.Settings()
	if err != nil {
		return 0, err
	}
	return settings["mon_"+string(sensor)+"_temp"], nil
}

// Units returns the temperature unit the device is using, "C" or "F".
func (d *KoolanceEXC900) Units() (string, error) {
	settings, err := d.Settings()
	if err != nil {
		return "", err
	}
	if settings["units"] == 1 {
		return "C", nil
	}
	return "F", nil
}

// SetUnits sets the temperature unit used by the device, "C" or "F".
func (d *KoolanceEXC900) SetUnits(unit string) error {
	switch unit {
	case "C":
		return d.UpdateSettings(map[string]float64{"units": 1})
	case "F":
		return d.UpdateSettings(map[string]float64{"units": 2})
	default:
		return &equipment.ConfigurationError{
			Param:  "unit",
			Reason: unit + " is not a valid option",
		}
	}
}

var _ equipment.TemperatureController = (*KoolanceEXC900)(nil)
