// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package register

import "time"

// DefaultMaxAge is the staleness window used by NewCache.
const DefaultMaxAge = 1 * time.Second

// Cache holds the most recently fetched frame from a slow, serial-framed
// device so that repeated reads within the staleness window reuse the last
// fetch instead of re-querying the instrument. A Cache is single-threaded by
// the same ownership contract as its Resource; there is no locking.
type Cache struct {
	maxAge  time.Duration
	now     func() time.Time
	frame   []byte
	fetched time.Time
	valid   bool
}

// NewCache returns an empty Cache with the given staleness window. A zero or
// negative maxAge falls back to DefaultMaxAge.
func NewCache(maxAge time.Duration) *Cache {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Cache{maxAge: maxAge, now: time.Now}
}

// Frame returns the cached frame when its age is within the staleness
// window. Otherwise it calls fetch, stores the result with the current
// timestamp, and returns it. Callers must not mutate the returned slice;
// copy it first.
func (c *Cache) Frame(fetch func() ([]byte, error)) ([]byte, error) {
	if c.valid && c.now().Sub(c.fetched) <= c.maxAge {
		return c.frame, nil
	}
	frame, err := fetch()
	if err != nil {
		return nil, err
	}
	c.frame = frame
	c.fetched = c.now()
	c.valid = true
	return c.frame, nil
}

// Invalidate clears the cached frame unconditionally. Drivers call it
// immediately before any write that could change device state, since the
// frame on the device is about to differ from the cached copy.
func (c *Cache) Invalidate() {
	c.frame = nil
	c.valid = false
}
