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

// Package controlcmd implements the fixed-format control frame protocol used
// between a host and an embedded motor controller over a byte-oriented link.
//
// The core is a pure frame codec (Encode/Decode) and a stateful stream
// scanner (Scanner) that recovers discrete frames from an arbitrarily
// fragmented and possibly corrupted byte stream. Sender and Receiver wrap a
// Transport with the send and listen loops most applications need.
package controlcmd

import (
	"encoding/hex"
	"fmt"

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
)

// Command is the semantic content of one control frame: four 16-bit
// magnitudes and two direction flags. All six fields always travel together;
// there is no such thing as a partial frame.
type Command struct {
	Motor1 uint16
	Motor2 uint16
	Servo1 uint16
	Servo2 uint16
	// Dir1 and Dir2 are the motor direction flags: false = backward,
	// true = forward.
	Dir1 bool
	Dir2 bool
}

// Frame encodes the command into a complete 11-byte frame. It cannot fail:
// the typed fields make out-of-range values unrepresentable.
func (c Command) Frame() []byte {
	frame := make([]byte, wire.FrameLength)
	var dir byte
	if c.Dir1 {
		dir |= wire.DirMotor1
	}
	if c.Dir2 {
		dir |= wire.DirMotor2
	}
	wire.PutFrame(frame, c.Motor1, c.Motor2, c.Servo1, c.Servo2, dir)
	return frame
}

// Hex returns the lowercase hex string of the encoded frame without touching
// any transport. This replaces the original tooling's "hex" mode.
func (c Command) Hex() string {
	return hex.EncodeToString(c.Frame())
}

func (c Command) String() string {
	return fmt.Sprintf("m1=%d m2=%d s1=%d s2=%d dir1=%t dir2=%t",
		c.Motor1, c.Motor2, c.Servo1, c.Servo2, c.Dir1, c.Dir2)
}

// Encode builds a complete frame from untyped inputs. The four magnitudes
// must each be in 0..65535 or the whole call fails with ErrValueOutOfRange;
// no partial frame is returned. Only bit 0 of each direction input is
// meaningful - any wider value is masked down, never rejected.
func Encode(m1, m2, s1, s2, dir1, dir2 int) ([]byte, error) {
	for _, v := range []int{m1, m2, s1, s2} {
		if v < 0 || v > 0xFFFF {
			return nil, fmt.Errorf("encode magnitude %d: %w", v, ErrValueOutOfRange)
		}
	}

	cmd := Command{
		Motor1: uint16(m1),
		Motor2: uint16(m2),
		Servo1: uint16(s1),
		Servo2: uint16(s2),
		Dir1:   dir1&0x1 != 0,
		Dir2:   dir2&0x1 != 0,
	}
	return cmd.Frame(), nil
}

// Decode unpacks one complete frame into its command values. It fails with
// ErrBadLength unless the input is exactly one frame long, ErrBadHeader
// unless the first byte is the header sentinel, and ErrBadFooter unless the
// last byte is the footer sentinel. The format carries no checksum, so no
// further validation is possible.
func Decode(frame []byte) (Command, error) {
	if len(frame) != wire.FrameLength {
		return Command{}, fmt.Errorf("decode %d bytes: %w", len(frame), ErrBadLength)
	}
	if frame[0] != wire.Header {
		return Command{}, fmt.Errorf("decode first byte 0x%02X: %w", frame[0], ErrBadHeader)
	}
	if frame[wire.FrameLength-1] != wire.Footer {
		return Command{}, fmt.Errorf("decode last byte 0x%02X: %w",
			frame[wire.FrameLength-1], ErrBadFooter)
	}

	m1, m2, s1, s2, dir := wire.Values(frame)
	return Command{
		Motor1: m1,
		Motor2: m2,
		Servo1: s1,
		Servo2: s2,
		Dir1:   dir&wire.DirMotor1 != 0,
		Dir2:   dir&wire.DirMotor2 != 0,
	}, nil
}
