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
	"os"
	"path/filepath"
	"testing"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Port)
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, controlcmd.DefaultMaxBuffer, cfg.MaxBuffer)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "/dev/ttyUSB1"
baud_rate = 57600
max_buffer = 8192
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB1", cfg.Port)
	assert.Equal(t, 57600, cfg.BaudRate)
	assert.Equal(t, 8192, cfg.MaxBuffer)
}

func TestLoadConfigNonPositiveMaxBuffer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`max_buffer = 0`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, controlcmd.DefaultMaxBuffer, cfg.MaxBuffer)
}
