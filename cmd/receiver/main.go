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

// Command receiver listens on the control link and prints every decoded
// frame until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/detection"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/transport/uart"
)

// Package-level flag variables
var (
	flagConfig    string
	flagPort      string
	flagBaud      int
	flagMaxBuffer int
	flagDebug     bool
)

func init() {
	flag.StringVar(&flagConfig, "config", "", "Optional TOML config file")
	flag.StringVar(&flagPort, "port", "", "Serial port (auto-detect if empty)")
	flag.IntVar(&flagBaud, "baud", 0, "Baud rate (default from config)")
	flag.IntVar(&flagMaxBuffer, "maxbuffer", 0, "Scanner flood-guard ceiling in bytes")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if flagDebug {
		controlcmd.SetDebugEnabled(true)
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	explicit := flagPort
	if explicit == "" {
		explicit = cfg.Port
	}
	port, err := detection.ResolvePort(explicit)
	if err != nil {
		return err
	}

	baud := flagBaud
	if baud <= 0 {
		baud = cfg.BaudRate
	}
	maxBuffer := flagMaxBuffer
	if maxBuffer <= 0 {
		maxBuffer = cfg.MaxBuffer
	}

	fmt.Printf("listening on %s @ %d\n", port, baud)
	transport, err := uart.New(port, uart.WithBaudRate(baud))
	if err != nil {
		return err
	}
	defer func() { _ = transport.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	receiver := controlcmd.NewReceiver(transport, controlcmd.WithMaxBuffer(maxBuffer))
	err = receiver.Run(ctx, func(cmd controlcmd.Command) {
		fmt.Printf("received raw: %s\n", cmd.Hex())
		fmt.Printf("%s\n", cmd)
	})
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nreceiver stopped")
		return nil
	}
	return err
}
