// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package bench

import (
	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/daq"
	"github.com/benchrig/equipment/multimeter"
	"github.com/benchrig/equipment/oscilloscope"
	"github.com/benchrig/equipment/powermeter"
	"github.com/benchrig/equipment/sink"
	"github.com/benchrig/equipment/source"
	"github.com/benchrig/equipment/temperature"
)

// Driver builds a device on an open resource.
type Driver func(*equipment.Resource, DeviceConfig) (any, error)

// Drivers maps the driver names accepted in a bench config to their
// constructors.
var Drivers = map[string]Driver{
	"source.hp6632a": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return source.NewHP6632A(res)
	},
	"source.keithley2231a": func(res *equipment.Resource, dc DeviceConfig) (any, error) {
		channel := dc.Channel
		if channel == 0 {
			channel = 1
		}
		return source.NewKeithley2231A(res, channel)
	},
	"sink.chroma63600": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return sink.NewChroma63600(res)
	},
	"sink.kikusuiplz1004wh": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return sink.NewKikusuiPLZ1004WH(res)
	},
	"multimeter.hp34401a": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return multimeter.NewHP34401A(res)
	},
	"powermeter.chroma66204": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return powermeter.NewChroma66204(res)
	},
	"daq.agilent34972a": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return daq.NewAgilent34972A(res)
	},
	"oscilloscope.tektronixdpo4xxx": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return oscilloscope.NewTektronixDPO4xxx(res)
	},
	"temperature.koolanceexc900": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return temperature.NewKoolanceEXC900(res), nil
	},
	"temperature.sunec01": func(res *equipment.Resource, _ DeviceConfig) (any, error) {
		return temperature.NewSunEC01(res), nil
	},
}
