// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package equipment provides the shared resource layer for bench and lab
// test instruments that speak an ASCII, SCPI-style command language over a
// message-based transport. Per-model drivers live in the subpackages (source,
// sink, multimeter, powermeter, daq, oscilloscope, temperature) and delegate
// to a Resource for command framing, response handling, and lifecycle.
package equipment

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"time"
)

// Resource models one open channel to an instrument. It owns its Transport
// exclusively: the transport's lifetime is bounded by the Resource's
// lifetime, and a Resource must not be shared between concurrent owners.
// All operations are synchronous and execute in strict call order.
type Resource struct {
	transport Transport
	rd        *bufio.Reader
	term      byte
	timeout   time.Duration
	debug     bool // if true, log commands and responses. Set via WithDebug().
	closed    bool
	idn       string
	idnKnown  bool
}

// Option applies a configuration option to a Resource.
type Option func(*Resource)

// WithTimeout sets the read timeout applied to the transport at
// construction. The default is one second.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resource) { r.timeout = timeout }
}

// WithTermination sets the termination byte appended to outgoing commands and
// expected at the end of responses. The default is a line feed.
func WithTermination(term byte) Option {
	return func(r *Resource) { r.term = term }
}

// WithDebug causes commands and responses to be logged.
func WithDebug() Option { return func(r *Resource) { r.debug = true } }

// NewResource creates a Resource around the given transport. The transport
// must already be open; the Resource assumes ownership and closes it when the
// Resource is closed.
func NewResource(transport Transport, opts ...Option) (*Resource, error) {
	r := Resource{
		transport: transport,
		term:      '\n',
		timeout:   1 * time.Second,
	}

	for _, opt := range opts {
		opt(&r)
	}

	if err := transport.SetReadTimeout(r.timeout); err != nil {
		return nil, &TransportError{Op: "set timeout", Err: err}
	}
	r.rd = bufio.NewReader(transport)

	return &r, nil
}

// Command formats according to a format specifier if provided and sends an
// ASCII command to the instrument with no reply expected. All leading and
// trailing whitespace is removed before the termination byte is appended.
func (r *Resource) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	cmd = fmt.Sprintf("%s%c", strings.TrimSpace(cmd), r.term)
	if r.debug {
		log.Printf("cmd %q", cmd)
	}
	if r.closed {
		return &TransportError{Op: "write", Err: ErrClosed}
	}
	if _, err := r.transport.Write([]byte(cmd)); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// Query sends a command to the instrument and blocks until a full response is
// received or the read timeout elapses. Trailing termination characters are
// stripped from the response. An empty response is a ProtocolError, since
// Query is only used where a value is expected.
func (r *Resource) Query(cmd string) (string, error) {
	if err := r.Command(cmd); err != nil {
		return "", err
	}
	s, err := r.rd.ReadString(r.term)
	if err != nil {
		return "", &TransportError{Op: "query", Err: err}
	}
	if r.debug {
		log.Printf("query %q response %q", cmd, s)
	}
	s = strings.TrimRight(s, "\r\n \t\x00")
	if s == "" {
		return "", &ProtocolError{Cmd: cmd, Reason: "empty response"}
	}
	return s, nil
}

// WriteRaw writes the given bytes to the instrument verbatim, with no
// trimming and no termination byte. It is used by drivers that speak a
// binary, framed protocol.
func (r *Resource) WriteRaw(p []byte) error {
	if r.closed {
		return &TransportError{Op: "write raw", Err: ErrClosed}
	}
	if _, err := r.transport.Write(p); err != nil {
		return &TransportError{Op: "write raw", Err: err}
	}
	return nil
}

// ReadBytes reads exactly n bytes from the instrument, blocking until they
// arrive or the read timeout elapses.
func (r *Resource) ReadBytes(n int) ([]byte, error) {
	if r.closed {
		return nil, &TransportError{Op: "read", Err: ErrClosed}
	}
	p := make([]byte, n)
	for read := 0; read < n; {
		k, err := r.rd.Read(p[read:])
		read += k
		if err != nil {
			return nil, &TransportError{Op: "read", Err: err}
		}
	}
	return p, nil
}

// IDN returns the instrument's identification string. The *IDN? query, an
// IEEE 488.2 common command, is issued exactly once per Resource lifetime;
// subsequent calls return the cached string without touching the instrument.
// Drivers read it repeatedly for model validation at construction time.
func (r *Resource) IDN() (string, error) {
	if r.idnKnown {
		return r.idn, nil
	}
	s, err := r.Query("*IDN?")
	if err != nil {
		return "", err
	}
	r.idn = s
	r.idnKnown = true
	return s, nil
}

// CheckIdentity queries the instrument identification and verifies that it
// contains the given model signature, comparing case-insensitively. A
// mismatch is an IdentityError; driver constructors call this and abort on
// failure.
func (r *Resource) CheckIdentity(want string) error {
	idn, err := r.IDN()
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(idn), strings.ToLower(want)) {
		return &IdentityError{Want: want, Got: idn}
	}
	return nil
}

// Reset executes a device reset by sending the *RST common command.
func (r *Resource) Reset() error { return r.Command("*RST") }

// ClearStatus clears the instrument status byte, emptying the error queue
// and all event registers, by sending the *CLS common command.
func (r *Resource) ClearStatus() error { return r.Command("*CLS") }

// Clear discards the transport's input and output buffers, if the transport
// supports it. Transports that cannot flush treat Clear as a no-op.
func (r *Resource) Clear() error {
	if r.closed {
		return &TransportError{Op: "clear", Err: ErrClosed}
	}
	f, ok := r.transport.(Flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return &TransportError{Op: "clear", Err: err}
	}
	r.rd.Reset(r.transport)
	return nil
}

// Close releases the transport. Close is idempotent: the first call tears
// down the transport, later calls return nil without touching it. It is safe
// to call during teardown even if the Resource was never fully initialized.
func (r *Resource) Close() error {
	if r.closed || r.transport == nil {
		return nil
	}
	r.closed = true
	if err := r.transport.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}
