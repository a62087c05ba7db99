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

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/transport/uart"
)

// Config is the optional TOML configuration for the transmitter demo.
// Flags override values loaded from the file.
type Config struct {
	Port       string `toml:"port"`
	BaudRate   int    `toml:"baud_rate"`
	IntervalMs int    `toml:"interval_ms"`
}

func defaultConfig() *Config {
	return &Config{
		BaudRate:   uart.DefaultBaudRate,
		IntervalMs: 1000,
	}
}

// loadConfig returns defaults when path is empty, otherwise the decoded file
// layered over the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = uart.DefaultBaudRate
	}
	if cfg.IntervalMs <= 0 {
		cfg.IntervalMs = 1000
	}
	return cfg, nil
}
