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

// Command transmitter sends control frames to the embedded controller.
//
// By default it sends a single frame and exits. With -loop it re-sends the
// frame at a fixed interval until interrupted, and with -hex it prints the
// encoded frame without opening any port.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	controlcmd "github.com/ckwckw02/EIE3360-2526-ControlCommand"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/detection"
	"github.com/ckwckw02/EIE3360-2526-ControlCommand/transport/uart"
)

// Package-level flag variables
var (
	flagConfig   string
	flagPort     string
	flagBaud     int
	flagM1       int
	flagM2       int
	flagS1       int
	flagS2       int
	flagDir1     int
	flagDir2     int
	flagLoop     bool
	flagHex      bool
	flagInterval time.Duration
	flagDebug    bool
)

func init() {
	flag.StringVar(&flagConfig, "config", "", "Optional TOML config file")
	flag.StringVar(&flagPort, "port", "", "Serial port (auto-detect if empty)")
	flag.IntVar(&flagBaud, "baud", 0, "Baud rate (default from config)")
	flag.IntVar(&flagM1, "m1", 1000, "Motor 1 magnitude (0..65535)")
	flag.IntVar(&flagM2, "m2", 1500, "Motor 2 magnitude (0..65535)")
	flag.IntVar(&flagS1, "s1", 2000, "Servo 1 magnitude (0..65535)")
	flag.IntVar(&flagS2, "s2", 2500, "Servo 2 magnitude (0..65535)")
	flag.IntVar(&flagDir1, "dir1", 1, "Motor 1 direction (0=backward, 1=forward)")
	flag.IntVar(&flagDir2, "dir2", 1, "Motor 2 direction (0=backward, 1=forward)")
	flag.BoolVar(&flagLoop, "loop", false, "Send continuously until interrupted")
	flag.BoolVar(&flagHex, "hex", false, "Print the encoded frame as hex and exit")
	flag.DurationVar(&flagInterval, "interval", 0, "Interval between sends in loop mode")
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

	frame, err := controlcmd.Encode(flagM1, flagM2, flagS1, flagS2, flagDir1, flagDir2)
	if err != nil {
		return err
	}
	cmd, err := controlcmd.Decode(frame)
	if err != nil {
		return err
	}

	if flagHex {
		fmt.Println(cmd.Hex())
		return nil
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

	fmt.Printf("opening serial port %s @ %d\n", port, baud)
	transport, err := uart.New(port, uart.WithBaudRate(baud))
	if err != nil {
		return err
	}
	defer func() { _ = transport.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := controlcmd.NewSender(transport)

	if !flagLoop {
		if err := sender.Send(ctx, cmd); err != nil {
			return err
		}
		fmt.Printf("sent %s -> %s\n", cmd, cmd.Hex())
		return nil
	}

	interval := flagInterval
	if interval <= 0 {
		interval = time.Duration(cfg.IntervalMs) * time.Millisecond
	}

	fmt.Printf("sending %s every %s, Ctrl-C to stop\n", cmd, interval)
	err = sender.SendLoop(ctx, cmd, interval)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nsend loop stopped")
		return nil
	}
	return err
}
