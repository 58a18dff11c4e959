// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package equipment

// Switch is the contract shared by any instrument with a single output or
// control loop that can be enabled and disabled: supply relays, load inputs,
// chamber conditioning.
type Switch interface {
	SetState(on bool) error
	State() (bool, error)
	On() error
	Off() error
	Toggle() error
}

// VoltageSource is a power supply output: a settable voltage with a current
// limit, plus readback of what the instrument actually delivers.
type VoltageSource interface {
	Switch
	SetVoltage(volts float64) error
	Voltage() (float64, error)
	SetCurrent(amps float64) error
	Current() (float64, error)
	MeasureVoltage() (float64, error)
	MeasureCurrent() (float64, error)
}

// CurrentSink is an electronic load input.
type CurrentSink interface {
	Switch
	SetCurrent(amps float64) error
	Current() (float64, error)
	MeasureVoltage() (float64, error)
	MeasureCurrent() (float64, error)
}

// TemperatureController is a chiller or thermal chamber control loop.
type TemperatureController interface {
	SetTemperature(degrees float64) error
	Temperature() (float64, error)
	MeasureTemperature() (float64, error)
}
