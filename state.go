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

// State caches the last control values so callers can update only some
// fields between sends. It is an explicit object owned by the caller - never
// process-wide state - and is not synchronized; share it across goroutines
// only with external locking.
type State struct {
	cmd Command
}

// Override adjusts a single field of a pending command update.
type Override func(*Command)

// Motor1 overrides the motor1 magnitude.
func Motor1(v uint16) Override { return func(c *Command) { c.Motor1 = v } }

// Motor2 overrides the motor2 magnitude.
func Motor2(v uint16) Override { return func(c *Command) { c.Motor2 = v } }

// Servo1 overrides the servo1 magnitude.
func Servo1(v uint16) Override { return func(c *Command) { c.Servo1 = v } }

// Servo2 overrides the servo2 magnitude.
func Servo2(v uint16) Override { return func(c *Command) { c.Servo2 = v } }

// Directions overrides both direction flags: false = backward, true = forward.
func Directions(dir1, dir2 bool) Override {
	return func(c *Command) {
		c.Dir1 = dir1
		c.Dir2 = dir2
	}
}

// NewState creates a State seeded with the given command values.
func NewState(initial Command) *State {
	return &State{cmd: initial}
}

// Update applies the overrides to the cached values and returns the
// resulting command. Fields without an override keep their last value.
func (s *State) Update(overrides ...Override) Command {
	for _, override := range overrides {
		override(&s.cmd)
	}
	return s.cmd
}

// Command returns the current cached values.
func (s *State) Command() Command {
	return s.cmd
}
