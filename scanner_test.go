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
	"testing"

	"github.com/ckwckw02/EIE3360-2526-ControlCommand/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll runs chunk through a scanner and fails the test on a codec-level
// scanner error, which no well-formed stream should produce.
func feedAll(t *testing.T, s *Scanner, chunk []byte) []Command {
	t.Helper()
	cmds, err := s.Feed(chunk)
	require.NoError(t, err)
	return cmds
}

func mustFrame(t *testing.T, m1, m2, s1, s2, dir1, dir2 int) []byte {
	t.Helper()
	frame, err := Encode(m1, m2, s1, s2, dir1, dir2)
	require.NoError(t, err)
	return frame
}

func TestScannerSingleFrame(t *testing.T) {
	t.Parallel()

	s := NewScanner()
	cmds := feedAll(t, s, mustFrame(t, 1000, 1500, 2000, 2500, 0, 1))

	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Motor1: 1000, Motor2: 1500, Servo1: 2000, Servo2: 2500, Dir2: true}, cmds[0])
	assert.Zero(t, s.Buffered())
}

func TestScannerMultipleFramesOneChunk(t *testing.T) {
	t.Parallel()

	var stream []byte
	for i := range 5 {
		stream = append(stream, mustFrame(t, 100*i, 200*i, 300*i, 400*i, i%2, 1)...)
	}

	s := NewScanner()
	cmds := feedAll(t, s, stream)

	require.Len(t, cmds, 5)
	for i, cmd := range cmds {
		assert.Equal(t, uint16(100*i), cmd.Motor1, "frame %d out of order", i)
		assert.Equal(t, uint16(400*i), cmd.Servo2, "frame %d out of order", i)
	}
}

// A frame delivered one byte per Feed must decode identically to the same
// frame delivered whole: chunk boundaries carry no meaning.
func TestScannerByteAtATime(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 1, 1)
	s := NewScanner()

	var got []Command
	for i, b := range frame {
		cmds := feedAll(t, s, []byte{b})
		if i < len(frame)-1 {
			assert.Empty(t, cmds, "emitted before footer at byte %d", i)
		}
		got = append(got, cmds...)
	}

	require.Len(t, got, 1)
	assert.Equal(t, frame, got[0].Frame())
	assert.Zero(t, s.Buffered())
}

// Split-feed equivalence over a longer stream: any fragmentation of the same
// bytes yields the same command sequence.
func TestScannerSplitFeedEquivalence(t *testing.T) {
	t.Parallel()

	var stream []byte
	var want []Command
	for i := 1; i <= 8; i++ {
		frame := mustFrame(t, i*1000, i*2000, i*3000, i*4000, i%2, (i+1)%2)
		cmd, err := Decode(frame)
		require.NoError(t, err)
		stream = append(stream, frame...)
		want = append(want, cmd)
	}

	splits := []int{1, 2, 3, 7, 11, 13, len(stream)}
	for _, size := range splits {
		s := NewScanner()
		var got []Command
		for off := 0; off < len(stream); off += size {
			end := min(off+size, len(stream))
			got = append(got, feedAll(t, s, stream[off:end])...)
		}
		assert.Equal(t, want, got, "chunk size %d", size)
		assert.Zero(t, s.Buffered(), "chunk size %d", size)
	}
}

func TestScannerSkipsLeadingGarbage(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 1, 0)
	stream := append([]byte{0x00, 0xFF, 0x42, 0x99}, frame...)

	s := NewScanner()
	cmds := feedAll(t, s, stream)

	require.Len(t, cmds, 1)
	assert.Equal(t, frame, cmds[0].Frame())
}

// A stray header byte ahead of a real frame forms a candidate with a bad
// footer. The scanner must discard through it and still find the real frame.
func TestScannerFalseHeaderResync(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 0, 0)
	stream := append([]byte{wire.Header, 0x01, 0x02}, frame...)

	s := NewScanner()
	cmds := feedAll(t, s, stream)

	require.Len(t, cmds, 1)
	assert.Equal(t, frame, cmds[0].Frame())
	assert.Zero(t, s.Buffered())
}

func TestScannerGarbageBetweenFrames(t *testing.T) {
	t.Parallel()

	first := mustFrame(t, 1, 2, 3, 4, 0, 0)
	second := mustFrame(t, 5, 6, 7, 8, 1, 1)
	stream := append([]byte{}, first...)
	stream = append(stream, 0xDE, 0xAD, wire.Header, 0xBE, 0xEF)
	stream = append(stream, second...)

	s := NewScanner()
	cmds := feedAll(t, s, stream)

	require.Len(t, cmds, 2)
	assert.Equal(t, first, cmds[0].Frame())
	assert.Equal(t, second, cmds[1].Frame())
}

// Payload bytes that equal the header sentinel must not break extraction of
// the frame they sit inside, nor of the frames after it.
func TestScannerSentinelValuedPayload(t *testing.T) {
	t.Parallel()

	tricky := mustFrame(t, 0x0D0D, 0x0D20, 0x200D, 0x2020, 1, 0)
	plain := mustFrame(t, 1000, 1500, 2000, 2500, 0, 1)
	stream := append(append([]byte{}, tricky...), plain...)

	s := NewScanner()
	cmds := feedAll(t, s, stream)

	require.Len(t, cmds, 2)
	assert.Equal(t, tricky, cmds[0].Frame())
	assert.Equal(t, plain, cmds[1].Frame())
}

func TestScannerIncompleteFrameWaits(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 1, 1)

	s := NewScanner()
	cmds := feedAll(t, s, frame[:6])
	assert.Empty(t, cmds)
	assert.Equal(t, 6, s.Buffered())

	cmds = feedAll(t, s, frame[6:])
	require.Len(t, cmds, 1)
	assert.Equal(t, frame, cmds[0].Frame())
}

// Headerless flood: once the buffer exceeds the ceiling with no header in
// sight, everything is dropped, and a frame arriving afterwards still decodes.
func TestScannerFloodGuard(t *testing.T) {
	t.Parallel()

	s := NewScanner()

	flood := bytes.Repeat([]byte{0xAA}, DefaultMaxBuffer+1)
	cmds := feedAll(t, s, flood)
	assert.Empty(t, cmds)
	assert.Zero(t, s.Buffered(), "flood should have cleared the buffer")

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 0, 1)
	cmds = feedAll(t, s, frame)
	require.Len(t, cmds, 1)
	assert.Equal(t, frame, cmds[0].Frame())
}

func TestScannerFloodGuardBoundary(t *testing.T) {
	t.Parallel()

	s := NewScanner()

	// Exactly at the ceiling is kept; one more byte clears it.
	cmds := feedAll(t, s, bytes.Repeat([]byte{0xAA}, DefaultMaxBuffer))
	assert.Empty(t, cmds)
	assert.Equal(t, DefaultMaxBuffer, s.Buffered())

	cmds = feedAll(t, s, []byte{0xAA})
	assert.Empty(t, cmds)
	assert.Zero(t, s.Buffered())
}

func TestScannerWithMaxBuffer(t *testing.T) {
	t.Parallel()

	s := NewScanner(WithMaxBuffer(wire.FrameLength))
	cmds := feedAll(t, s, bytes.Repeat([]byte{0x55}, wire.FrameLength+1))
	assert.Empty(t, cmds)
	assert.Zero(t, s.Buffered())

	// A limit below one frame length is ignored; the default still applies.
	s = NewScanner(WithMaxBuffer(4))
	cmds = feedAll(t, s, bytes.Repeat([]byte{0x55}, 100))
	assert.Empty(t, cmds)
	assert.Equal(t, 100, s.Buffered())
}

func TestScannerReset(t *testing.T) {
	t.Parallel()

	frame := mustFrame(t, 1000, 1500, 2000, 2500, 1, 0)

	s := NewScanner()
	feedAll(t, s, frame[:8])
	require.Equal(t, 8, s.Buffered())

	s.Reset()
	assert.Zero(t, s.Buffered())

	// The tail of the old frame is now garbage; a fresh frame still decodes.
	cmds := feedAll(t, s, append(append([]byte{}, frame[8:]...), frame...))
	require.Len(t, cmds, 1)
	assert.Equal(t, frame, cmds[0].Frame())
}

// FuzzScannerFeed throws arbitrary bytes at the scanner in two chunks and
// checks the structural guarantees: no panic, no codec-level error, bounded
// buffering, and every emitted command re-encodes to a sentinel-valid frame.
//
// Run with: go test -fuzz=FuzzScannerFeed -fuzztime=30s .
func FuzzScannerFeed(f *testing.F) {
	valid, _ := Encode(1000, 1500, 2000, 2500, 0, 1)
	f.Add(valid, []byte{})
	f.Add(valid[:5], valid[5:])
	f.Add([]byte{wire.Header, 0x01}, valid)
	f.Add(bytes.Repeat([]byte{0xAA}, 64), valid)
	f.Add([]byte{}, bytes.Repeat([]byte{wire.Header}, 32))

	f.Fuzz(func(t *testing.T, first, second []byte) {
		s := NewScanner()
		for _, chunk := range [][]byte{first, second} {
			cmds, err := s.Feed(chunk)
			if err != nil {
				t.Fatalf("scanner error on well-typed input: %v", err)
			}
			for _, cmd := range cmds {
				frame := cmd.Frame()
				if frame[0] != wire.Header || frame[wire.FrameLength-1] != wire.Footer {
					t.Fatalf("emitted command re-encodes without sentinels: % X", frame)
				}
			}
			if s.Buffered() > DefaultMaxBuffer {
				t.Fatalf("buffer grew past the flood guard: %d", s.Buffered())
			}
		}
	})
}
