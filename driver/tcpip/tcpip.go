// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package tcpip provides a TCP socket transport for instruments that expose
// a raw SCPI socket, commonly on port 5025.
package tcpip

import (
	"fmt"
	"net"
	"time"
)

// Conn is a TCP socket transport. It satisfies equipment.Transport.
type Conn struct {
	conn        net.Conn
	readTimeout time.Duration
}

// Dial connects to the instrument at the given host:port address. The dial
// timeout also becomes the initial read timeout.
func Dial(address string, timeout time.Duration) (*Conn, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", address, err)
	}
	return &Conn{conn: conn, readTimeout: timeout}, nil
}

// Read reads from the socket into the given byte slice. The read deadline is
// re-armed on every call so that each read gets the full timeout.
func (c *Conn) Read(b []byte) (n int, err error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.conn.Read(b)
}

// Write writes the given data to the socket.
func (c *Conn) Write(b []byte) (n int, err error) {
	return c.conn.Write(b)
}

// SetReadTimeout sets the maximum time a Read waits for data.
func (c *Conn) SetReadTimeout(timeout time.Duration) error {
	c.readTimeout = timeout
	return nil
}

// Close closes the socket.
func (c *Conn) Close() error {
	return c.conn.Close()
}
