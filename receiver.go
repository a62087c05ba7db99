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
)

// readChunkSize is how many bytes each transport read requests. Frames are
// 11 bytes; 64 keeps up with a saturated 115200 baud link comfortably.
const readChunkSize = 64

// maxConsecutiveReadErrors bounds how many read errors in a row the receive
// loop tolerates before giving up on the link.
const maxConsecutiveReadErrors = 10

// Receiver pumps bytes from a Transport through a Scanner and hands every
// decoded command to a callback, in the order the closing footer of each
// frame is recognized on the stream.
//
// Receiver is not safe for concurrent use on the same instance.
type Receiver struct {
	transport Transport
	scanner   *Scanner
}

// NewReceiver creates a Receiver. Scanner options (such as WithMaxBuffer)
// apply to the internal stream scanner.
func NewReceiver(transport Transport, opts ...ScannerOption) *Receiver {
	return &Receiver{
		transport: transport,
		scanner:   NewScanner(opts...),
	}
}

// Run reads from the transport until the context is cancelled or the link
// fails, invoking fn once per decoded command. Timed-out reads (zero bytes)
// simply continue, so cancellation latency is bounded by the transport's
// read timeout. Transient read errors are tolerated up to a small limit;
// fatal transport errors and codec-level scanner errors end the loop.
func (r *Receiver) Run(ctx context.Context, fn func(Command)) error {
	buf := make([]byte, readChunkSize)
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.transport.Read(buf)
		if err != nil {
			if IsFatal(err) {
				return fmt.Errorf("receive: %w", err)
			}
			errorCount++
			if errorCount <= 3 {
				Debugf("receive read error #%d: %v", errorCount, err)
			}
			if errorCount > maxConsecutiveReadErrors {
				return fmt.Errorf("too many read errors (%d), last: %w", errorCount, err)
			}
			continue
		}
		errorCount = 0

		if n == 0 {
			// Read timeout; loop back so cancellation stays responsive.
			continue
		}

		cmds, err := r.scanner.Feed(buf[:n])
		if err != nil {
			// Codec and scanner disagree about the frame layout. Not
			// recoverable by reading more bytes.
			return fmt.Errorf("receive: %w", err)
		}
		for _, cmd := range cmds {
			fn(cmd)
		}
	}
}
