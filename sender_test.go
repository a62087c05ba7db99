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

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderSendWritesExactFrame(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	s := NewSender(m)
	cmd := Command{Motor1: 1000, Motor2: 1500, Servo1: 2000, Servo2: 2500, Dir2: true}

	require.NoError(t, s.Send(context.Background(), cmd))

	assert.Equal(t, cmd.Frame(), m.Written())
	assert.Equal(t, 1, m.WriteCalls())
}

func TestSenderRetriesTransientWriteFailure(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	m.FailWrites(NewTransportWriteError("Write", "mock"))

	s := NewSender(m, WithRetryConfig(fastRetryConfig(3)))
	cmd := Command{Motor1: 1}

	require.NoError(t, s.Send(context.Background(), cmd))
	assert.Equal(t, 2, m.WriteCalls(), "one failure, one successful retry")
	assert.Equal(t, cmd.Frame(), m.Written())
}

func TestSenderGivesUpAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	m.FailWrites(
		NewTransportWriteError("Write", "mock"),
		NewTransportWriteError("Write", "mock"),
		NewTransportWriteError("Write", "mock"),
	)

	s := NewSender(m, WithRetryConfig(fastRetryConfig(3)))
	err := s.Send(context.Background(), Command{Motor1: 1})

	require.ErrorIs(t, err, ErrTransportWrite)
	assert.Equal(t, 3, m.WriteCalls())
	assert.Empty(t, m.Written())
}

func TestSenderStopsOnClosedTransport(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	require.NoError(t, m.Close())

	s := NewSender(m, WithRetryConfig(fastRetryConfig(3)))
	err := s.Send(context.Background(), Command{Motor1: 1})

	require.ErrorIs(t, err, ErrTransportClosed)
	assert.Equal(t, 1, m.WriteCalls(), "permanent errors must not be retried")
}

func TestSenderSendLoopRepeatsUntilCancelled(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	s := NewSender(m)
	cmd := Command{Motor1: 1000, Servo1: 2000}

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	err := s.SendLoop(ctx, cmd, 10*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	written := m.Written()
	require.NotEmpty(t, written)
	require.Zero(t, len(written)%wire.FrameLength, "only whole frames on the wire")

	frames := len(written) / wire.FrameLength
	assert.GreaterOrEqual(t, frames, 2, "immediate send plus at least one tick")
	for i := range frames {
		chunk := written[i*wire.FrameLength : (i+1)*wire.FrameLength]
		assert.Equal(t, cmd.Frame(), chunk, "frame %d", i)
	}
}

func TestSenderSendLoopPropagatesSendError(t *testing.T) {
	t.Parallel()

	m := NewMockTransport()
	require.NoError(t, m.Close())

	s := NewSender(m, WithRetryConfig(fastRetryConfig(1)))
	err := s.SendLoop(context.Background(), Command{}, time.Millisecond)
	require.ErrorIs(t, err, ErrTransportClosed)
}
