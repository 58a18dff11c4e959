// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package equiptest provides an in-memory Transport that emulates an
// instrument for driver tests. A Respond callback maps each write to the
// bytes the fake instrument sends back; every write is recorded for
// inspection.
package equiptest

import (
	"bytes"
	"errors"
	"time"
)

// ErrNoData is returned by Read when the emulated instrument has nothing
// queued, standing in for a transport read timeout.
var ErrNoData = errors.New("equiptest: read timeout, no data queued")

// Transport is an in-memory equipment.Transport.
type Transport struct {
	// Respond, if set, is called once per write with the written bytes and
	// returns the bytes the instrument replies with. A nil return queues
	// nothing.
	Respond func(written []byte) []byte

	writes  [][]byte
	pending bytes.Buffer
	closed  int
}

// Write records the written bytes and queues the emulated response.
func (t *Transport) Write(p []byte) (n int, err error) {
	w := make([]byte, len(p))
	copy(w, p)
	t.writes = append(t.writes, w)
	if t.Respond != nil {
		if resp := t.Respond(w); resp != nil {
			t.pending.Write(resp)
		}
	}
	return len(p), nil
}

// Read drains queued response bytes, or fails with ErrNoData when the queue
// is empty.
func (t *Transport) Read(p []byte) (n int, err error) {
	if t.pending.Len() == 0 {
		return 0, ErrNoData
	}
	return t.pending.Read(p)
}

// SetReadTimeout is a no-op; the emulated instrument replies immediately.
func (t *Transport) SetReadTimeout(timeout time.Duration) error { return nil }

// Close counts teardown calls so tests can assert idempotency.
func (t *Transport) Close() error {
	t.closed++
	return nil
}

// Writes returns every write issued to the transport, in order.
func (t *Transport) Writes() [][]byte { return t.writes }

// CloseCount reports how many times Close has been called.
func (t *Transport) CloseCount() int { return t.closed }
