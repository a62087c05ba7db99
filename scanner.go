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
	"bytes"
	"fmt"

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
)

// DefaultMaxBuffer is the default flood-guard ceiling: if the accumulation
// buffer grows past this size without a header byte in sight, the whole
// buffer is dropped.
const DefaultMaxBuffer = 2048

// Scanner recovers discrete control frames from an arbitrary byte stream.
// It accumulates received chunks in an internal buffer, resynchronizes after
// misaligned or corrupted bytes, and never grows memory without bound.
//
// Because the wire format has no length prefix or checksum, payload bytes
// that coincidentally equal the sentinels in the right positions can produce
// a false frame boundary. The scanner guarantees bounded memory, monotonic
// progress and in-order emission, but zero false-frame acceptance is not
// achievable under this format; that is a documented protocol weakness, not
// a scanner bug.
//
// Scanner is NOT safe for concurrent use. Callers with concurrent producers
// must serialize calls to Feed.
type Scanner struct {
	buf       []byte
	maxBuffer int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithMaxBuffer overrides the flood-guard ceiling. Values below one frame
// length are ignored.
func WithMaxBuffer(limit int) ScannerOption {
	return func(s *Scanner) {
		if limit >= wire.FrameLength {
			s.maxBuffer = limit
		}
	}
}

// NewScanner creates a Scanner with an empty accumulation buffer.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{maxBuffer: DefaultMaxBuffer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffered returns the number of bytes currently held in the accumulation
// buffer. Useful for tests and diagnostics.
func (s *Scanner) Buffered() int {
	return len(s.buf)
}

// Reset drops all accumulated bytes.
func (s *Scanner) Reset() {
	s.buf = s.buf[:0]
}

// Feed appends chunk to the accumulation buffer and extracts every complete
// frame now available, in the order their footer bytes appear in the stream.
// Chunk boundaries are irrelevant: a frame may arrive a single byte per call.
//
// Malformed or misaligned bytes are silently discarded; there is no addressee
// to report framing errors to on a delimiter-only protocol. The returned
// error is non-nil only if a length/header/footer-valid candidate fails to
// decode, which cannot happen unless the codec and scanner disagree about the
// frame layout - it is surfaced rather than swallowed to make codec bugs
// distinguishable from stream-level noise.
func (s *Scanner) Feed(chunk []byte) ([]Command, error) {
	s.buf = append(s.buf, chunk...)

	var cmds []Command
	for {
		idx := bytes.IndexByte(s.buf, wire.Header)
		if idx < 0 {
			// No header anywhere. Drop everything if the garbage has
			// grown past the flood guard, otherwise keep waiting.
			if len(s.buf) > s.maxBuffer {
				s.buf = s.buf[:0]
			}
			return cmds, nil
		}

		// Bytes before the first header can never start a frame.
		if idx > 0 {
			s.buf = append(s.buf[:0], s.buf[idx:]...)
			idx = 0
		}

		if len(s.buf) < wire.FrameLength {
			// The header may be genuine and the frame merely incomplete;
			// wait for more data.
			return cmds, nil
		}

		candidate := s.buf[:wire.FrameLength]
		if candidate[wire.FrameLength-1] != wire.Footer {
			// False header: a stray 0x0D inside unrelated data or a
			// previous payload. Discard through it and rescan, which
			// guarantees forward progress.
			s.buf = append(s.buf[:0], s.buf[1:]...)
			continue
		}

		cmd, err := Decode(candidate)
		if err != nil {
			return cmds, fmt.Errorf("scanner produced undecodable candidate: %w", err)
		}
		cmds = append(cmds, cmd)
		s.buf = append(s.buf[:0], s.buf[wire.FrameLength:]...)
	}
}
