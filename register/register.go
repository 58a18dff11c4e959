// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package register implements the fixed-point register codec used by
// instruments that exchange fixed-length binary frames instead of ASCII
// commands. A Register describes where one named parameter lives inside a
// frame and how its integer field maps to an engineering value through an
// affine transform defined by a multiplier, a decimal-scale exponent, and a
// bias.
package register

import (
	"math"

	"github.com/benchrig/equipment"
)

// Register describes the layout and scaling of one parameter inside a binary
// frame. Registers are immutable; each device model defines its register map
// once as a static table.
type Register struct {
	// Offset is the position of the field's first byte within the frame.
	Offset int

	// NBytes is the width of the field in bytes. Fields are stored
	// big-endian and unsigned.
	NBytes int

	// M, R, and B define the affine fixed-point transform between the
	// engineering value v and the stored integer n:
	//
	//	n = round((M*v + B) * 10^R)
	//	v = (1/M) * (n * 10^-R - B)
	M int
	R int
	B int
}

// Encode converts an engineering value to the integer stored in the field.
// Rounding is ordinary round-half-away-from-zero (math.Round), so repeated
// re-encoding of a decoded value is deterministic.
func (reg Register) Encode(value float64) int {
	return int(math.Round((float64(reg.M)*value + float64(reg.B)) * math.Pow10(reg.R)))
}

// Decode converts a stored integer back to its engineering value. Decode is
// the exact algebraic inverse of Encode when no rounding loss occurs; for
// registers with R = 0 the round trip is exact to one engineering unit.
func (reg Register) Decode(n int) float64 {
	return (float64(n)*math.Pow10(-reg.R) - float64(reg.B)) / float64(reg.M)
}

// maxValue is the largest unsigned integer representable in the field width.
func (reg Register) maxValue() int {
	return 1<<(8*reg.NBytes) - 1
}

// Pack encodes value into the register's field within frame, big-endian. It
// returns a ConfigurationError, before any mutation, when the field does not
// fit in the frame or the encoded integer exceeds the field width.
func (reg Register) Pack(frame []byte, value float64) error {
	if reg.Offset < 0 || reg.Offset+reg.NBytes > len(frame) {
		return &equipment.ConfigurationError{
			Param:  "register offset",
			Reason: "field lies outside the frame",
		}
	}
	n := reg.Encode(value)
	if n < 0 || n > reg.maxValue() {
		return &equipment.ConfigurationError{
			Param:  "register value",
			Reason: "encoded value exceeds the field width",
		}
	}
	for i := reg.NBytes - 1; i >= 0; i-- {
		frame[reg.Offset+i] = byte(n)
		n >>= 8
	}
	return nil
}

// Unpack decodes the register's field from frame. It returns a
// ConfigurationError when the field does not fit in the frame.
func (reg Register) Unpack(frame []byte) (float64, error) {
	if reg.Offset < 0 || reg.Offset+reg.NBytes > len(frame) {
		return 0, &equipment.ConfigurationError{
			Param:  "register offset",
			Reason: "field lies outside the frame",
		}
	}
	n := 0
	for _, b := range frame[reg.Offset : reg.Offset+reg.NBytes] {
		n = n<<8 | int(b)
	}
	return reg.Decode(n), nil
}
