// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package register

// Checksum computes the frame checksum: the sum of every byte except the
// final checksum byte itself, modulo 100 decimal. The result is always in
// [0, 99].
func Checksum(frame []byte) byte {
	sum := 0
	for _, b := range frame[:len(frame)-1] {
		sum += int(b)
	}
	return byte(sum % 100)
}

// SetChecksum writes the checksum of frame into its last byte. Frames read
// back from the device are not checksum-validated; the checksum is only
// computed for frames about to be written.
func SetChecksum(frame []byte) {
	frame[len(frame)-1] = Checksum(frame)
}
