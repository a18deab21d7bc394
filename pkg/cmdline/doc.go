// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline turns plain Go functions into a command-line option
// parser and dispatcher.
//
// Each option is a handler function plus an Option describing its names and
// usage text. The handler's signature decides what the option accepts:
//
//	func()            // no argument, e.g. --verbose
//	func(T)           // one value; called once per value
//	func([]T)         // every value at once
//	func(...T)        // same as []T
//	func([]any)       // every value, converted to Option.ArgumentType
//
// Handlers may return nothing, a bool, an error, or (bool, error). Returning
// false keeps the entry point from running, which is how --help and
// --version style options end the program early. The remaining handlers are
// still invoked.
//
// The entry point takes the positional arguments, either as a slice (called
// once) or as a single value (called once per argument), and returns
// nothing or an error.
//
// # Explicit registration
//
//	app := cmdline.New(cmdline.Config{Name: "greet"})
//	app.Option(cmdline.Option{Short: 'n', Long: "name", Usage: "Who to greet"}, func(n string) { name = n })
//	app.Option(cmdline.Option{Short: 'V', Long: "version", Usage: "Print the version"}, func() bool {
//		fmt.Println("greet 1.0")
//		return false
//	})
//	app.Main(func(args []string) error { ... })
//	if err := app.ParseAndRun(os.Args[1:]); err != nil {
//		log.Fatal(err)
//	}
//
// # Method discovery
//
// A type implementing Annotated lists which of its methods are option
// handlers and which is the entry point; Application.Bind registers them.
//
// # Supported element types
//
// Conversion is delegated to a convert.Registry, convert.Builtin() by
// default: strings, bools, all integer and float sizes, time.Duration,
// time.Time, url.URL, semver versions and constraints, UUIDs, OCI digests,
// pointers to any of these, named types over a basic kind, and any type
// implementing encoding.TextUnmarshaler.
package cmdline
