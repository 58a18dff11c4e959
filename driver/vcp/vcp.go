// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package vcp provides a serial Virtual COM Port transport for instruments
// attached over RS-232 or USB-serial bridges.
package vcp

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"go.uber.org/multierr"
)

// Port is a serial transport. It satisfies equipment.Transport and
// equipment.Flusher.
type Port struct {
	port serial.Port
}

// PortOption applies an option to the serial mode used to open a Port.
type PortOption func(*serial.Mode)

// WithParity sets the parity bit mode. The default is no parity.
func WithParity(parity serial.Parity) PortOption {
	return func(m *serial.Mode) { m.Parity = parity }
}

// WithDataBits sets the number of data bits per character. The default is 8.
func WithDataBits(bits int) PortOption {
	return func(m *serial.Mode) { m.DataBits = bits }
}

// WithStopBits sets the number of stop bits. The default is one.
func WithStopBits(stopBits serial.StopBits) PortOption {
	return func(m *serial.Mode) { m.StopBits = stopBits }
}

// Open opens the named serial port, e.g. /dev/ttyUSB0 or COM5, at the given
// baud rate. The default framing is 8N1; use the options to change it.
func Open(name string, baud int, opts ...PortOption) (*Port, error) {
	mode := serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	for _, opt := range opts {
		opt(&mode)
	}
	port, err := serial.Open(name, &mode)
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %s: %w", name, err)
	}
	return &Port{port: port}, nil
}

// Read reads from the serial port into the given byte slice.
func (p *Port) Read(b []byte) (n int, err error) {
	return p.port.Read(b)
}

// Write writes the given data to the serial port.
func (p *Port) Write(b []byte) (n int, err error) {
	return p.port.Write(b)
}

// SetReadTimeout sets the maximum time a Read waits for data.
func (p *Port) SetReadTimeout(timeout time.Duration) error {
	return p.port.SetReadTimeout(timeout)
}

// Flush discards the port's input and output buffers.
func (p *Port) Flush() error {
	return multierr.Combine(
		p.port.ResetInputBuffer(),
		p.port.ResetOutputBuffer(),
	)
}

// Close closes the serial port.
func (p *Port) Close() error {
	return p.port.Close()
}
