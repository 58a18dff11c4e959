// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package bench connects a whole set of instruments from one configuration
// file. A bench config names each device, its driver, and its transport
// address, so test scripts can reconnect the same setup, or an equivalent
// setup in another lab, without touching code.
package bench

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/benchrig/equipment"
	"github.com/benchrig/equipment/driver/tcpip"
	"github.com/benchrig/equipment/driver/vcp"
)

// Config is a parsed bench configuration.
type Config struct {
	Devices map[string]DeviceConfig `yaml:"devices"`
}

// DeviceConfig describes one instrument on the bench.
type DeviceConfig struct {
	// Driver selects the driver, e.g. "source.hp6632a". See Drivers.
	Driver string `yaml:"driver"`

	// Transport is "serial" or "tcp".
	Transport string `yaml:"transport"`

	// Address is the serial port name or host:port, depending on Transport.
	Address string `yaml:"address"`

	// Baud is the serial baud rate. Defaults to 9600.
	Baud int `yaml:"baud,omitempty"`

	// Timeout is the transport read timeout. Defaults to one second.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Channel is the bound output channel, for drivers that take one.
	Channel int `yaml:"channel,omitempty"`
}

// Load reads and parses a bench configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading bench config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing bench config: %w", err)
	}
	return &cfg, nil
}

// Mask removes every device not named in keep, so a script can connect to
// the subset of the bench it actually uses.
func (c *Config) Mask(keep ...string) {
	kept := make(map[string]bool, len(keep))
	for _, name := range keep {
		kept[name] = true
	}
	for name := range c.Devices {
		if !kept[name] {
			delete(c.Devices, name)
		}
	}
}

// Opener opens the transport for one device. Tests substitute an Opener to
// connect a bench against emulated instruments.
type Opener func(DeviceConfig) (equipment.Transport, error)

// defaultOpener opens real serial or TCP transports.
func defaultOpener(dc DeviceConfig) (equipment.Transport, error) {
	timeout := dc.Timeout
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	switch dc.Transport {
	case "serial":
		baud := dc.Baud
		if baud == 0 {
			baud = 9600
		}
		return vcp.Open(dc.Address, baud)
	case "tcp":
		return tcpip.Dial(dc.Address, timeout)
	default:
		return nil, &equipment.ConfigurationError{
			Param:  "transport",
			Reason: dc.Transport + " is not a valid transport kind",
		}
	}
}

// ConnectOption applies an option to Connect.
type ConnectOption func(*connector)

// WithOpener substitutes the function used to open device transports.
func WithOpener(open Opener) ConnectOption {
	return func(c *connector) { c.open = open }
}

type connector struct {
	open Opener
}

// Bench is a connected set of instruments.
type Bench struct {
	devices   map[string]any
	resources map[string]*equipment.Resource
}

// Connect opens every device in the configuration. On any failure it closes
// the devices already opened and returns the failure, so a partially
// connected bench is never handed back.
func Connect(cfg *Config, opts ...ConnectOption) (*Bench, error) {
	c := connector{open: defaultOpener}
	for _, opt := range opts {
		opt(&c)
	}

	b := Bench{
		devices:   make(map[string]any, len(cfg.Devices)),
		resources: make(map[string]*equipment.Resource, len(cfg.Devices)),
	}
	for name, dc := range cfg.Devices {
		build, ok := Drivers[dc.Driver]
		if !ok {
			b.Close()
			return nil, &equipment.ConfigurationError{
				Param:  "driver",
				Reason: dc.Driver + " is not a known driver for device " + name,
			}
		}

		transport, err := c.open(dc)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("error opening transport for %s: %w", name, err)
		}
		timeout := dc.Timeout
		if timeout <= 0 {
			timeout = 1 * time.Second
		}
		res, err := equipment.NewResource(transport, equipment.WithTimeout(timeout))
		if err != nil {
			transport.Close()
			b.Close()
			return nil, fmt.Errorf("error wrapping transport for %s: %w", name, err)
		}
		b.resources[name] = res

		dev, err := build(res, dc)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("error connecting %s: %w", name, err)
		}
		b.devices[name] = dev
	}
	return &b, nil
}

// Device returns the named device, which the caller type-asserts to the
// driver type or capability interface it needs.
func (b *Bench) Device(name string) (any, bool) {
	dev, ok := b.devices[name]
	return dev, ok
}

// Resource returns the raw resource behind the named device, for ad-hoc
// commands the driver does not wrap.
func (b *Bench) Resource(name string) (*equipment.Resource, bool) {
	res, ok := b.resources[name]
	return res, ok
}

// Names returns the names of all connected devices.
func (b *Bench) Names() []string {
	names := make([]string, 0, len(b.devices))
	for name := range b.devices {
		names = append(names, name)
	}
	return names
}

// Source returns the named device as a voltage source.
func (b *Bench) Source(name string) (equipment.VoltageSource, error) {
	dev, ok := b.devices[name]
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not on the bench"}
	}
	src, ok := dev.(equipment.VoltageSource)
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not a voltage source"}
	}
	return src, nil
}

// Sink returns the named device as an electronic load.
func (b *Bench) Sink(name string) (equipment.CurrentSink, error) {
	dev, ok := b.devices[name]
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not on the bench"}
	}
	sink, ok := dev.(equipment.CurrentSink)
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not an electronic load"}
	}
	return sink, nil
}

// TemperatureController returns the named device as a temperature
// controller.
func (b *Bench) TemperatureController(name string) (equipment.TemperatureController, error) {
	dev, ok := b.devices[name]
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not on the bench"}
	}
	tc, ok := dev.(equipment.TemperatureController)
	if !ok {
		return nil, &equipment.ConfigurationError{Param: "device", Reason: name + " is not a temperature controller"}
	}
	return tc, nil
}

// Close closes every connected device, continuing past failures and
// returning them combined.
func (b *Bench) Close() error {
	var err error
	for _, res := range b.resources {
		err = multierr.Append(err, res.Close())
	}
	return err
}
