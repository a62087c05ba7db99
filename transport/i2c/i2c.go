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

// Package i2c implements the controlcmd.Transport interface for controllers
// wired to an I2C bus instead of a UART.
//
// The controller firmware exposes a byte FIFO as an I2C slave: writes push
// raw frame bytes into its receive FIFO, and every master read returns a
// count byte followed by that many valid FIFO bytes (zero when the FIFO is
// empty). This keeps the byte-stream semantics of the serial link on a bus
// where reads are always master-initiated.
package i2c

import (
	"fmt"
	"strings"
	"time"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/internal/syncutil"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// DefaultAddr is the controller's 7-bit I2C slave address.
	DefaultAddr = 0x2C

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz
)

// Transport implements the controlcmd.Transport interface for I2C
// communication.
type Transport struct {
	dev     *i2c.Dev
	bus     i2c.BusCloser // Held so Close() can release the OS file descriptor
	busName string
	mu      syncutil.Mutex
	timeout time.Duration
}

// parseI2CPath extracts the bus path from a composite path.
// Accepts "/dev/i2c-1:0x2C" or a bare "/dev/i2c-1".
func parseI2CPath(path string) (bus string, addr uint16) {
	bus, addrPart, ok := strings.Cut(path, ":")
	addr = DefaultAddr
	if ok {
		var parsed uint16
		if _, err := fmt.Sscanf(addrPart, "0x%X", &parsed); err == nil && parsed != 0 {
			addr = parsed
		}
	}
	return bus, addr
}

// New opens an I2C bus as a control-frame transport.
func New(busName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	busPath, addr := parseI2CPath(busName)
	bus, err := i2creg.Open(busPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	dev := &i2c.Dev{Addr: addr, Bus: bus}

	// Best effort; continue with the bus default speed on error.
	_ = bus.SetSpeed(maxClockFreq)

	return &Transport{
		dev:     dev,
		bus:     bus,
		busName: busName,
		timeout: 100 * time.Millisecond,
	}, nil
}

// Write pushes raw bytes into the controller's receive FIFO.
func (t *Transport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return 0, controlcmd.NewTransportClosedError("Write", t.busName)
	}
	if err := t.dev.Tx(p, nil); err != nil {
		return 0, fmt.Errorf("I2C write failed: %w", err)
	}
	return len(p), nil
}

// Read polls the controller's transmit FIFO once. The count-prefixed read
// contract means an idle controller returns (0, nil), matching the timeout
// semantics of the serial transport.
func (t *Transport) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dev == nil {
		return 0, controlcmd.NewTransportClosedError("Read", t.busName)
	}

	raw := make([]byte, 1+len(p))
	if err := t.dev.Tx(nil, raw); err != nil {
		return 0, fmt.Errorf("I2C read failed: %w", err)
	}

	count := int(raw[0])
	if count > len(p) {
		count = len(p)
	}
	copy(p, raw[1:1+count])
	return count, nil
}

// SetTimeout records the polling timeout. I2C reads never block on the bus,
// so this only paces how callers should poll.
func (t *Transport) SetTimeout(timeout time.Duration) error {
	t.mu.Lock()
	t.timeout = timeout
	t.mu.Unlock()
	return nil
}

// Close releases the I2C bus
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bus == nil {
		return nil
	}
	err := t.bus.Close()
	t.bus = nil
	t.dev = nil
	if err != nil {
		return fmt.Errorf("I2C close failed: %w", err)
	}
	return nil
}

// IsConnected returns true if the transport is connected
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dev != nil
}

// Type returns the transport type
func (*Transport) Type() controlcmd.TransportType {
	return controlcmd.TransportI2C
}

// Ensure Transport implements controlcmd.Transport
var _ controlcmd.Transport = (*Transport)(nil)
