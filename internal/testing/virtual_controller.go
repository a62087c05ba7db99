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

// Package testing provides test utilities including a wire-level simulator
// of the embedded controller end of the link.
//
// VirtualController implements io.ReadWriter: bytes the host writes are
// recorded for inspection, and frames (or arbitrary garbage) queued on the
// controller can be read back by the host exactly as a serial port would
// deliver them. Combined with JitteryConnection it reproduces the
// fragmentation and latency of real USB-UART bridges.
package testing

import (
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/internal/syncutil"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
)

// VirtualController simulates the embedded end of the control-frame link.
type VirtualController struct {
	mu      syncutil.Mutex
	pending []byte // bytes queued for the host to read
	written []byte // raw bytes the host wrote to us
}

// NewVirtualController creates an idle controller with nothing to send.
func NewVirtualController() *VirtualController {
	return &VirtualController{}
}

// QueueFrame encodes one control frame and queues it for the host to read.
// dir carries the direction flags in its low two bits.
func (v *VirtualController) QueueFrame(m1, m2, s1, s2 uint16, dir byte) {
	frame := make([]byte, wire.FrameLength)
	wire.PutFrame(frame, m1, m2, s1, s2, dir&(wire.DirMotor1|wire.DirMotor2))
	v.QueueBytes(frame)
}

// QueueBytes queues raw bytes for the host to read. Used to inject garbage,
// partial frames and stray sentinels around valid frames.
func (v *VirtualController) QueueBytes(b []byte) {
	v.mu.Lock()
	v.pending = append(v.pending, b...)
	v.mu.Unlock()
}

// Read implements io.Reader. An empty queue reads as (0, nil), matching the
// timeout behavior of a serial port with a read deadline.
func (v *VirtualController) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.pending) == 0 {
		return 0, nil
	}
	n := copy(p, v.pending)
	v.pending = v.pending[n:]
	return n, nil
}

// Write implements io.Writer, recording everything the host sends.
func (v *VirtualController) Write(p []byte) (int, error) {
	v.mu.Lock()
	v.written = append(v.written, p...)
	v.mu.Unlock()
	return len(p), nil
}

// Written returns a copy of all bytes the host has written so far.
func (v *VirtualController) Written() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]byte, len(v.written))
	copy(out, v.written)
	return out
}

// PendingBytes returns how many queued bytes the host has not read yet.
func (v *VirtualController) PendingBytes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}
