// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vers filters, sorts and bumps semantic versions.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/containerd/errdefs"
	"github.com/fatih/color"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("vers: ")
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes vers and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global, args, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("vers: %v", err))
		return 2
	}
	p, err := loadPrefs(global.Config)
	if err != nil {
		fmt.Fprintln(stderr, color.RedString("vers: %v", err))
		return 1
	}
	if global.NoColor || p.NoColor {
		color.NoColor = true
	}

	t := newTool(p, stdin, stdout)
	cfg := cmdline.Config{Name: "vers", Stdout: stdout}
	if global.Trace {
		cfg.Printer = log.Printf
	}
	t.app = cmdline.New(cfg).Bind(t)

	if err := t.app.ParseAndRun(args); err != nil {
		fmt.Fprintln(stderr, color.RedString("vers: %v", err))
		if errdefs.IsInvalidArgument(err) {
			fmt.Fprintln(stderr, "Try 'vers --help' for more information.")
			return 2
		}
		return 1
	}
	return 0
}
