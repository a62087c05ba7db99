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

// Package wire defines the control-frame wire layout shared by the codec,
// the stream scanner and the transports.
//
// A frame is exactly 11 bytes: a single header byte, a 9-byte payload and a
// single footer byte. The payload carries four big-endian uint16 magnitudes
// (motor1, motor2, servo1, servo2) followed by one direction byte. The format
// has no length prefix and no checksum; framing relies entirely on the
// sentinel bytes plus the fixed payload size, and both ends of the link must
// agree on this layout bit for bit.
package wire

import "encoding/binary"

// Frame sentinels - these mark frame boundaries on the byte stream
const (
	Header byte = 0x0D // Frame header byte (CR)
	Footer byte = 0x20 // Frame footer byte (space)
)

// Frame geometry
const (
	PayloadLength = 9                      // Four uint16 magnitudes + direction byte
	FrameLength   = 1 + PayloadLength + 1 // Header + payload + footer
)

// Payload field offsets within a complete frame
const (
	OffMotor1    = 1 // Big-endian uint16
	OffMotor2    = 3 // Big-endian uint16
	OffServo1    = 5 // Big-endian uint16
	OffServo2    = 7 // Big-endian uint16
	OffDirection = 9 // Direction flag byte
)

// Direction flag bits in the payload's final byte. Bits 2-7 are unused and
// always zero on the wire.
const (
	DirMotor1 byte = 1 << 0 // 0 = backward, 1 = forward
	DirMotor2 byte = 1 << 1 // 0 = backward, 1 = forward
)

// PutFrame writes a complete frame into dst, which must be at least
// FrameLength bytes long. Only the low two bits of dir are meaningful; the
// caller is expected to have masked the rest.
func PutFrame(dst []byte, m1, m2, s1, s2 uint16, dir byte) {
	_ = dst[FrameLength-1] // bounds check hint
	dst[0] = Header
	binary.BigEndian.PutUint16(dst[OffMotor1:], m1)
	binary.BigEndian.PutUint16(dst[OffMotor2:], m2)
	binary.BigEndian.PutUint16(dst[OffServo1:], s1)
	binary.BigEndian.PutUint16(dst[OffServo2:], s2)
	dst[OffDirection] = dir
	dst[FrameLength-1] = Footer
}

// Values unpacks the payload of a complete frame. The frame must be at least
// FrameLength bytes; sentinel validation is the caller's responsibility.
func Values(frame []byte) (m1, m2, s1, s2 uint16, dir byte) {
	_ = frame[FrameLength-1]
	m1 = binary.BigEndian.Uint16(frame[OffMotor1:])
	m2 = binary.BigEndian.Uint16(frame[OffMotor2:])
	s1 = binary.BigEndian.Uint16(frame[OffServo1:])
	s2 = binary.BigEndian.Uint16(frame[OffServo2:])
	dir = frame[OffDirection]
	return m1, m2, s1, s2, dir
}
