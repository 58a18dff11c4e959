// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package equipment

import (
	"io"
	"time"
)

// Transport is the byte-level link to one instrument. A Transport can be a
// Virtual COM Port (VCP), a USB-TMC adapter exposed as a serial port, or a
// TCP/IP instrument socket. Read blocks until data arrives or the configured
// read timeout elapses.
type Transport interface {
	io.ReadWriteCloser

	// SetReadTimeout sets the maximum time a Read waits for data before
	// returning an error.
	SetReadTimeout(timeout time.Duration) error
}

// Flusher is implemented by transports that can discard the contents of
// their input and output buffers, e.g. serial ports.
type Flusher interface {
	Flush() error
}
