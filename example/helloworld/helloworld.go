// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

func main() {
	greeting := "Hello"
	count := 0
	interval := 2 * time.Second

	app := cmdline.New(cmdline.Config{Name: "helloworld"})
	app.Option(cmdline.Option{Short: 'h', Long: "help", Usage: "Show this help"}, func() (bool, error) {
		return false, app.PrintUsage("Greets the world, or whoever is named on the command line.", "")
	})
	app.Option(cmdline.Option{Short: 'g', Long: "greeting", Usage: "Greeting to use", ArgName: "word"}, func(g string) {
		greeting = g
	})
	app.Option(cmdline.Option{Short: 'n', Long: "count", Usage: "Stop after this many greetings (0 greets forever)", ArgName: "n"}, func(n int) error {
		if n < 0 {
			return fmt.Errorf("count must not be negative")
		}
		count = n
		return nil
	})
	app.Option(cmdline.Option{Short: 'i', Long: "interval", Usage: "Pause between greetings", ArgName: "duration"}, func(d time.Duration) {
		interval = d
	})
	app.Main(func(names []string) {
		if len(names) == 0 {
			names = []string{"World"}
		}
		for i := 0; count == 0 || i < count; i++ {
			for _, name := range names {
				fmt.Printf("%s, %s!\n", greeting, name)
			}
			if count == 0 || i < count-1 {
				time.Sleep(interval)
			}
		}
	})

	if err := app.ParseAndRun(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
