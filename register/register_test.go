// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package register

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/benchrig/equipment"
)

func TestEncodeDecode(t *testing.T) {
	testCases := []struct {
		desc  string
		reg   Register
		value float64
		n     int
	}{
		{
			desc:  "Biased setpoint field",
			reg:   Register{Offset: 14, NBytes: 2, M: 1, R: 0, B: 500},
			value: 10.0,
			n:     510,
		},
		{
			desc:  "Tenth-degree temperature field",
			reg:   Register{Offset: 2, NBytes: 2, M: 10, R: 0, B: 2000},
			value: 21.5,
			n:     2215,
		},
		{
			desc:  "Decimal-scaled flow field",
			reg:   Register{Offset: 12, NBytes: 2, M: 1, R: 1, B: 0},
			value: 12.3,
			n:     123,
		},
		{
			desc:  "Unbiased unscaled field",
			reg:   Register{Offset: 8, NBytes: 2, M: 1, R: 0, B: 0},
			value: 1200,
			n:     1200,
		},
	}

	for _, tc := range testCases {
		if got := tc.reg.Encode(tc.value); got != tc.n {
			t.Errorf("Test %q: Encode(%v) = %d, want %d", tc.desc, tc.value, got, tc.n)
		}
		if got := tc.reg.Decode(tc.n); math.Abs(got-tc.value) > 1e-9 {
			t.Errorf("Test %q: Decode(%d) = %v, want %v", tc.desc, tc.n, got, tc.value)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := Register{Offset: 2, NBytes: 2, M: 10, R: 0, B: 2000}
	for _, v := range []float64{-200.0, -0.1, 0, 0.1, 21.5, 99.9, 4353.5} {
		got := reg.Decode(reg.Encode(v))
		if math.Abs(got-v) > 1e-9 {
			t.Errorf("Decode(Encode(%v)) = %v", v, got)
		}
	}
}

func TestPackUnpack(t *testing.T) {
	reg := Register{Offset: 14, NBytes: 2, M: 1, R: 0, B: 500}
	frame := make([]byte, 51)

	if err := reg.Pack(frame, 10.0); err != nil {
		t.Fatalf("Pack() = %v", err)
	}
	// 510 big-endian.
	if frame[14] != 0x01 || frame[15] != 0xFE {
		t.Errorf("Pack(10.0) wrote % X, want 01 FE", frame[14:16])
	}

	got, err := reg.Unpack(frame)
	if err != nil {
		t.Fatalf("Unpack() = %v", err)
	}
	if got != 10.0 {
		t.Errorf("Unpack() = %v, want 10.0", got)
	}
}

func TestPackErrors(t *testing.T) {
	testCases := []struct {
		desc  string
		reg   Register
		value float64
	}{
		{
			desc:  "Field past the end of the frame",
			reg:   Register{Offset: 50, NBytes: 2, M: 1, R: 0, B: 0},
			value: 1,
		},
		{
			desc:  "Negative offset",
			reg:   Register{Offset: -1, NBytes: 2, M: 1, R: 0, B: 0},
			value: 1,
		},
		{
			desc:  "Encoded value exceeds the field width",
			reg:   Register{Offset: 0, NBytes: 1, M: 1, R: 0, B: 0},
			value: 256,
		},
		{
			desc:  "Encoded value is negative",
			reg:   Register{Offset: 0, NBytes: 2, M: 1, R: 0, B: 0},
			value: -1,
		},
	}

	for _, tc := range testCases {
		frame := make([]byte, 51)
		err := tc.reg.Pack(frame, tc.value)
		var cerr *equipment.ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("Test %q: Pack() = %v, want ConfigurationError", tc.desc, err)
		}
		if !bytes.Equal(frame, make([]byte, 51)) {
			t.Errorf("Test %q: frame mutated by failed Pack", tc.desc)
		}
	}
}

func TestUnpackOutsideFrame(t *testing.T) {
	reg := Register{Offset: 50, NBytes: 2, M: 1, R: 0, B: 0}
	_, err := reg.Unpack(make([]byte, 51))
	var cerr *equipment.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("Unpack() = %v, want ConfigurationError", err)
	}
}

func TestChecksum(t *testing.T) {
	testCases := []struct {
		desc  string
		frame func() []byte
		want  byte
	}{
		{
			desc: "Write header only",
			frame: func() []byte {
				f := make([]byte, 51)
				f[0], f[1] = 0xCF, 0x04
				return f
			},
			want: 11, // (0xCF + 0x04) % 100
		},
		{
			desc: "All bytes set",
			frame: func() []byte {
				f := bytes.Repeat([]byte{0xFF}, 51)
				return f
			},
			want: 50, // 50 * 255 % 100
		},
		{
			desc:  "Empty payload",
			frame: func() []byte { return make([]byte, 51) },
			want:  0,
		},
	}

	for _, tc := range testCases {
		frame := tc.frame()
		if got := Checksum(frame); got != tc.want {
			t.Errorf("Test %q: Checksum() = %d, want %d", tc.desc, got, tc.want)
		}
		SetChecksum(frame)
		if frame[50] != tc.want {
			t.Errorf("Test %q: SetChecksum() wrote %d, want %d", tc.desc, frame[50], tc.want)
		}
	}
}

func TestChecksumIgnoresChecksumByte(t *testing.T) {
	frame := make([]byte, 51)
	frame[0] = 0xCF
	frame[50] = 0x63
	if got, want := Checksum(frame), byte(0xCF%100); got != want {
		t.Errorf("Checksum() = %d, want %d", got, want)
	}
}
