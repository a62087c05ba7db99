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

// Package detection resolves which serial port the control link lives on.
//
// Port naming is configuration, not protocol: the result is resolved once,
// before transport construction, and passed in explicitly. Resolution
// precedence is an explicit value, then the CONTROLCMD_PORT environment
// variable, then enumeration of plausible USB-serial ports, then a per-OS
// default matching the lab wiring.
package detection

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"go.bug.st/serial"
)

// EnvPort is the environment variable consulted when no explicit port is given.
const EnvPort = "CONTROLCMD_PORT"

// Per-OS defaults for the lab bench wiring.
var defaultPorts = map[string]string{
	"windows": "COM15",
	"linux":   "/dev/ttyUSB0",
}

// DeviceInfo describes a candidate serial port.
type DeviceInfo struct {
	// Connection path (e.g. "/dev/ttyUSB0", "COM15")
	Path string
	// Short device name (e.g. "ttyUSB0")
	Name string
}

// String returns a human-readable representation of the device
func (d DeviceInfo) String() string {
	return fmt.Sprintf("serial device at %s", d.Path)
}

// ResolvePort picks the port to open. An empty explicit value falls through
// to the environment, then enumeration, then the per-OS default. It fails
// with controlcmd.ErrPortNotFound only on a platform with no default and no
// enumerable ports.
func ResolvePort(explicit string) (string, error) {
	return resolvePort(explicit, os.Getenv(EnvPort), ListPorts, runtime.GOOS)
}

// resolvePort is the testable core of ResolvePort with enumeration and OS
// injected.
func resolvePort(explicit, env string, enumerate func() ([]DeviceInfo, error), goos string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env != "" {
		controlcmd.Debugf("using port from environment: %s", env)
		return env, nil
	}

	if devices, err := enumerate(); err == nil && len(devices) > 0 {
		controlcmd.Debugf("auto-detected port: %s", devices[0].Path)
		return devices[0].Path, nil
	}

	if def, ok := defaultPorts[goos]; ok {
		return def, nil
	}
	return "", fmt.Errorf("no default port for OS %s: %w", goos, controlcmd.ErrPortNotFound)
}

// ListPorts enumerates serial ports that plausibly carry the control link:
// USB-serial adapters that pass a basic terminal probe.
func ListPorts() ([]DeviceInfo, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial port enumeration failed: %w", err)
	}

	var devices []DeviceInfo
	for _, path := range ports {
		if !likelyControlPort(path) {
			continue
		}
		if !probePort(path) {
			continue
		}
		devices = append(devices, DeviceInfo{
			Path: path,
			Name: baseName(path),
		})
	}
	return devices, nil
}

// likelyControlPort filters out ports that are never USB-serial adapters,
// like on-board consoles and modem control devices.
func likelyControlPort(path string) bool {
	name := baseName(path)
	switch {
	case strings.HasPrefix(name, "ttyUSB"),
		strings.HasPrefix(name, "ttyACM"),
		strings.HasPrefix(name, "COM"),
		strings.HasPrefix(name, "cu.usbserial"),
		strings.HasPrefix(name, "cu.usbmodem"):
		return true
	default:
		return false
	}
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
