// controlcmd
// Copyright 2026 The EIE3360 ControlCommand Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testing

import (
	"io"
	"time"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/internal/syncutil"
)

// LinkTransport adapts any io.ReadWriter (a VirtualController, optionally
// wrapped in a JitteryConnection) into a controlcmd.Transport so Sender and
// Receiver can be tested end to end without hardware.
type LinkTransport struct {
	mu      syncutil.Mutex
	link    io.ReadWriter
	timeout time.Duration
	closed  bool
}

// NewLinkTransport wraps link as a Transport.
func NewLinkTransport(link io.ReadWriter) *LinkTransport {
	return &LinkTransport{
		link:    link,
		timeout: 100 * time.Millisecond,
	}
}

// Read implements controlcmd.Transport.
func (t *LinkTransport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, controlcmd.NewTransportClosedError("Read", "link")
	}
	return t.link.Read(p) //nolint:wrapcheck // Pass-through wrapper
}

// Write implements controlcmd.Transport.
func (t *LinkTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, controlcmd.NewTransportClosedError("Write", "link")
	}
	return t.link.Write(p) //nolint:wrapcheck // Pass-through wrapper
}

// SetTimeout implements controlcmd.Transport.
func (t *LinkTransport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	t.timeout = timeout
	t.mu.Unlock()
	return nil
}

// Close implements controlcmd.Transport.
func (t *LinkTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

// IsConnected implements controlcmd.Transport.
func (t *LinkTransport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.closed
}

// Type implements controlcmd.Transport.
func (*LinkTransport) Type() controlcmd.TransportType {
	return controlcmd.TransportMock
}

// Ensure LinkTransport implements controlcmd.Transport
var _ controlcmd.Transport = (*LinkTransport)(nil)
