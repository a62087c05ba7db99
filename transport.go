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

package controlcmd

import (
	"time"

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/internal/syncutil"
)

// Transport supplies raw byte chunks from the controller link and accepts
// raw byte sequences toward it. This can be implemented by UART or I2C
// backends. The core imposes no requirement on chunk boundaries: Read may
// return any split of a frame, including a single byte per call.
type Transport interface {
	// Write sends raw bytes to the controller and returns the count written.
	Write(p []byte) (int, error)

	// Read fills p with up to len(p) received bytes. A return of (0, nil)
	// means the read timeout elapsed with no data, which is not an error.
	Read(p []byte) (int, error)

	// SetTimeout sets the read timeout for the transport.
	SetTimeout(timeout time.Duration) error

	// Close closes the transport connection.
	Close() error

	// IsConnected returns true if the transport is connected.
	IsConnected() bool

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportMock represents a mock transport for testing.
	TransportMock TransportType = "mock"
)

// MockTransport provides a mock implementation of Transport for testing.
// Reads are served from queued chunks; an exhausted queue behaves like a
// read timeout. Writes are recorded and can be failed on demand.
type MockTransport struct {
	mu         syncutil.Mutex
	reads      [][]byte
	written    []byte
	writeErrs  []error
	readErr    error
	timeout    time.Duration
	connected  bool
	readCalls  int
	writeCalls int
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		connected: true,
		timeout:   time.Second,
	}
}

// Read implements Transport. It pops at most one queued chunk per call so
// tests can exercise arbitrary fragmentation.
func (m *MockTransport) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readCalls++

	if !m.connected {
		return 0, NewTransportClosedError("Read", "mock")
	}
	if m.readErr != nil {
		err := m.readErr
		return 0, err
	}
	if len(m.reads) == 0 {
		return 0, nil // simulate timeout
	}

	chunk := m.reads[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		m.reads[0] = chunk[n:]
	} else {
		m.reads = m.reads[1:]
	}
	return n, nil
}

// Write implements Transport
func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCalls++

	if !m.connected {
		return 0, NewTransportClosedError("Write", "mock")
	}
	if len(m.writeErrs) > 0 {
		err := m.writeErrs[0]
		m.writeErrs = m.writeErrs[1:]
		if err != nil {
			return 0, err
		}
	}

	m.written = append(m.written, p...)
	return len(p), nil
}

// SetTimeout implements Transport
func (m *MockTransport) SetTimeout(timeout time.Duration) error {
	m.mu.Lock()
	m.timeout = timeout
	m.mu.Unlock()
	return nil
}

// Close implements Transport
func (m *MockTransport) Close() error {
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	return nil
}

// IsConnected implements Transport
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	connected := m.connected
	m.mu.Unlock()
	return connected
}

// Type implements Transport
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Test helper methods

// QueueRead queues a chunk to be returned by a subsequent Read call
func (m *MockTransport) QueueRead(chunk []byte) {
	m.mu.Lock()
	c := make([]byte, len(chunk))
	copy(c, chunk)
	m.reads = append(m.reads, c)
	m.mu.Unlock()
}

// SetReadError configures an error to be returned by every Read call
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// FailWrites queues errors to be returned by the next Write calls, in order.
// A nil entry lets that write succeed.
func (m *MockTransport) FailWrites(errs ...error) {
	m.mu.Lock()
	m.writeErrs = append(m.writeErrs, errs...)
	m.mu.Unlock()
}

// Written returns a copy of all bytes written so far
func (m *MockTransport) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.written))
	copy(out, m.written)
	return out
}

// ReadCalls returns how many times Read was called
func (m *MockTransport) ReadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCalls
}

// WriteCalls returns how many times Write was called
func (m *MockTransport) WriteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCalls
}

// Reset clears recorded writes, queued reads and injected errors
func (m *MockTransport) Reset() {
	m.mu.Lock()
	m.reads = nil
	m.written = nil
	m.writeErrs = nil
	m.readErr = nil
	m.connected = true
	m.readCalls = 0
	m.writeCalls = 0
	m.mu.Unlock()
}

// Ensure MockTransport implements Transport
var _ Transport = (*MockTransport)(nil)
