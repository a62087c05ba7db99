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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUntilDeadline runs the receiver with a short deadline and returns every
// command delivered to the callback. The deadline is the normal way these
// tests stop: the mock transport reads as timed out once its queue drains.
func runUntilDeadline(t *testing.T, r *Receiver, d time.Duration) []Command {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	var got []Command
	err := r.Run(ctx, func(cmd Command) {
		got = append(got, cmd)
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	return got
}

func TestReceiverDeliversFramesInOrder(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	for i := 1; i <= 3; i++ {
		m.QueueRead(mustFrame(t, i*100, i*200, i*300, i*400, i%2, 1))
	}

	r := NewReceiver(m)
	got := runUntilDeadline(t, r, 50*time.Millisecond)

	require.Len(t, got, 3)
	for i, cmd := range got {
		assert.Equal(t, uint16((i+1)*100), cmd.Motor1, "frame %d", i)
	}
}

func TestReceiverReassemblesFragmentedFrames(t *testing.T) {
	t.Parallel()

	first := mustFrame(t, 1000, 1500, 2000, 2500, 0, 1)
	second := mustFrame(t, 10, 20, 30, 40, 1, 0)
	stream := append(append([]byte{}, first...), second...)

	m := NewMockTransport()
	// Queue the two frames as awkwardly split chunks.
	m.QueueRead(stream[:3])
	m.QueueRead(stream[3:12])
	m.QueueRead(stream[12:])

	r := NewReceiver(m)
	got := runUntilDeadline(t, r, 50*time.Millisecond)

	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].Frame())
	assert.Equal(t, second, got[1].Frame())
}

func TestReceiverSkipsGarbageAroundFrames(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 1, 1)

	m := NewMockTransport()
	m.QueueRead([]byte{0xDE, 0xAD, 0x0D, 0x01})
	m.QueueRead(frame)
	m.QueueRead([]byte{0xBE, 0xEF})

	r := NewReceiver(m)
	got := runUntilDeadline(t, r, 50*time.Millisecond)

	require.Len(t, got, 1)
	assert.Equal(t, frame, got[0].Frame())
}

func TestReceiverScannerOptionsApply(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	r := NewReceiver(m, WithMaxBuffer(4096))
	assert.Equal(t, 4096, r.scanner.maxBuffer)
}

func TestReceiverStopsOnFatalError(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	m.SetReadError(NewTransportClosedError("Read", "mock"))

	r := NewReceiver(m)
	err := r.Run(context.Background(), func(Command) {
		t.Fatal("no commands expected")
	})
	require.ErrorIs(t, err, ErrTransportClosed)
}

func TestReceiverToleratesTransientErrorsUpToLimit(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	m.SetReadError(NewTransportReadError("Read", "mock"))

	r := NewReceiver(m)
	err := r.Run(context.Background(), func(Command) {
		t.Fatal("no commands expected")
	})

	require.ErrorIs(t, err, ErrTransportRead)
	assert.Equal(t, maxConsecutiveReadErrors+1, m.ReadCalls())
}

func TestReceiverCancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewReceiver(NewMockTransport())
	err := r.Run(ctx, func(Command) {
		t.Fatal("no commands expected")
	})
	require.ErrorIs(t, err, context.Canceled)
}
