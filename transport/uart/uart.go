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

// Package uart implements the controlcmd.Transport interface over a serial
// port. The STM32 side of the link expects 115200 baud 8N1 by default.
package uart

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/internal/syncutil"
	"go.bug.st/serial"
)

// DefaultBaudRate matches the firmware's UART configuration.
const DefaultBaudRate = 115200

// Transport implements the controlcmd.Transport interface for UART
// communication.
type Transport struct {
	port     serial.Port
	portName string
	mu       syncutil.Mutex
}

// Option configures the serial mode before the port is opened.
type Option func(*serial.Mode)

// WithBaudRate overrides the default baud rate.
func WithBaudRate(baud int) Option {
	return func(m *serial.Mode) {
		m.BaudRate = baud
	}
}

// defaultReadTimeout returns the platform read timeout. Windows serial
// drivers need a larger value for stable timeout behavior.
func defaultReadTimeout() time.Duration {
	if runtime.GOOS == "windows" {
		return 100 * time.Millisecond
	}
	return 50 * time.Millisecond
}

// New opens a serial port as a control-frame transport.
func New(portName string, opts ...Option) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	for _, opt := range opts {
		opt(mode)
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(defaultReadTimeout()); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set UART read timeout: %w", err)
	}

	return &Transport{
		port:     port,
		portName: portName,
	}, nil
}

// NewWithPort wraps an already-open serial port. Used by tests with a mock
// port and by applications that need custom port setup.
func NewWithPort(port serial.Port, portName string) *Transport {
	return &Transport{
		port:     port,
		portName: portName,
	}
}

// Write sends raw bytes down the link and drains the OS buffer so short
// frames are not left sitting in the kernel.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return 0, controlcmd.NewTransportClosedError("Write", t.portName)
	}

	n, err := t.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("UART write failed: %w", err)
	}
	if n != len(p) {
		return n, controlcmd.NewTransportWriteError("Write", t.portName)
	}

	if err := t.drainWithRetry("write"); err != nil {
		return n, err
	}
	return n, nil
}

// Read fills p with whatever the port delivers before its read timeout.
// A timeout surfaces as (0, nil), per the Transport contract.
func (t *Transport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return 0, controlcmd.NewTransportClosedError("Read", t.portName)
	}

	n, err := t.port.Read(p)
	if err != nil {
		return n, fmt.Errorf("UART read failed: %w", err)
	}
	return n, nil
}

// SetTimeout sets the read timeout for the transport
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return controlcmd.NewTransportClosedError("SetTimeout", t.portName)
	}
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return fmt.Errorf("UART set timeout failed: %w", err)
	}
	return nil
}

// Close closes the transport connection
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("UART close failed: %w", err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() controlcmd.TransportType {
	return controlcmd.TransportUART
}

// isInterruptedSystemCall checks if an error is caused by an interrupted system call
func isInterruptedSystemCall(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "interrupted system call") ||
		strings.Contains(errStr, "eintr")
}

// drainWithRetry performs port drain with retry logic for interrupted system calls
func (t *Transport) drainWithRetry(operation string) error {
	const maxRetries = 3
	baseDelay := 2 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := t.port.Drain()
		if err == nil {
			return nil
		}

		if isInterruptedSystemCall(err) {
			if attempt < maxRetries-1 {
				delay := baseDelay * time.Duration(1<<attempt) // 2ms, 4ms, 8ms
				time.Sleep(delay)
				continue
			}
		}

		return fmt.Errorf("UART %s drain failed: %w", operation, err)
	}

	return fmt.Errorf("UART %s drain failed after %d retries", operation, maxRetries)
}

// Ensure Transport implements controlcmd.Transport
var _ controlcmd.Transport = (*Transport)(nil)
