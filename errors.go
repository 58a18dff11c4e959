// Copyright (c) 2021–2026 The equipment developers. All rights reserved.
// Project site: https://github.com/benchrig/equipment
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package equipment

import (
	"errors"
	"fmt"
)

// ErrClosed is returned, wrapped in a TransportError, for any operation on a
// Resource after Close has been called.
var ErrClosed = errors.New("connection closed")

// TransportError indicates that the underlying link failed, timed out, or was
// closed. It is not recoverable at this layer and propagates to the caller;
// no operation is retried automatically.
type TransportError struct {
	Op  string // the operation that failed, e.g. "query"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError indicates that a response was received but did not match the
// expected grammar: an empty reply where a value was expected, a non-numeric
// token, or an enum value the driver does not know.
type ProtocolError struct {
	Cmd    string // the command whose response could not be parsed
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error for %q: %s", e.Cmd, e.Reason)
}

// ConfigurationError indicates that the caller supplied an out-of-range or
// unsupported parameter. It is always raised before any bytes are sent to the
// instrument, so a failed call is never partially applied.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// IdentityError indicates that the identification string returned by the
// instrument did not match the model signature a driver expects. Driver
// construction aborts and no partial state is retained.
type IdentityError struct {
	Want string
	Got  string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("instrument identity %q does not match %q", e.Got, e.Want)
}
