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
	"fmt"
	"time"

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
)

// Sender writes control frames to a Transport. One-shot and continuous
// sending are distinct methods rather than a mode switch, so an invalid mode
// is unrepresentable; the sendless hex rendering lives on Command.Hex.
//
// Sender is not safe for concurrent use on the same instance.
type Sender struct {
	transport Transport
	retry     *RetryConfig
}

// SenderOption configures a Sender.
type SenderOption func(*Sender)

// WithRetryConfig overrides the retry behavior for transient write failures.
func WithRetryConfig(config *RetryConfig) SenderOption {
	return func(s *Sender) {
		s.retry = config
	}
}

// NewSender creates a Sender on top of the given transport.
func NewSender(transport Transport, opts ...SenderOption) *Sender {
	s := &Sender{
		transport: transport,
		retry:     DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send encodes cmd and writes the single resulting frame, retrying
// transient write failures per the retry configuration.
func (s *Sender) Send(ctx context.Context, cmd Command) error {
	frame := cmd.Frame()

	err := RetryWithConfig(ctx, s.retry, func() error {
		n, err := s.transport.Write(frame)
		if err != nil {
			if IsRetryable(err) || IsFatal(err) {
				return err
			}
			return fmt.Errorf("write frame: %w", err)
		}
		if n != wire.FrameLength {
			return NewTransportWriteError("Send", "")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("send %s: %w", cmd, err)
	}

	Debugf("sent %d bytes -> %s", wire.FrameLength, cmd.Hex())
	return nil
}

// SendLoop sends cmd immediately and then again every interval until the
// context is cancelled. It returns the context's error on cancellation, or
// the first send error encountered.
func (s *Sender) SendLoop(ctx context.Context, cmd Command, interval time.Duration) error {
	if err := s.Send(ctx, cmd); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Send(ctx, cmd); err != nil {
				return err
			}
		}
	}
}
