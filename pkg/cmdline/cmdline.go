// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"io"
	"os"
	"reflect"
	"runtime"
	"strings"

	"github.com/yeetrun/cmdline/pkg/convert"
)

// Config configures an Application. The zero value is usable.
type Config struct {
	// Name is the program name shown in usage text. Defaults to the base
	// name of os.Args[0].
	Name string
	// Converters resolves element types. Defaults to convert.Builtin().
	Converters *convert.Registry
	// Printer, if set, receives a trace of schema building and dispatch.
	Printer func(format string, args ...any)
	// Stdout receives usage text. Defaults to os.Stdout.
	Stdout io.Writer
}

// registration is a handler as declared, before validation.
type registration struct {
	name    string
	fn      reflect.Value
	option  *Option // nil for the entry point
	err     error   // deferred registration failure
	isEntry bool
}

// Application collects option handlers and an entry point, and runs them
// against a command line.
type Application struct {
	cfg  Config
	regs []registration
}

// New returns an Application configured by cfg.
func New(cfg Config) *Application {
	if cfg.Name == "" && len(os.Args) > 0 {
		cfg.Name = baseName(os.Args[0])
	}
	if cfg.Converters == nil {
		cfg.Converters = convert.Builtin()
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	return &Application{cfg: cfg}
}

// Name returns the program name used in usage text.
func (a *Application) Name() string {
	return a.cfg.Name
}

// Option registers handler as the handler for opt. Problems with the
// handler are reported when the schema is built.
func (a *Application) Option(opt Option, handler any) *Application {
	a.regs = append(a.regs, a.newRegistration(handlerName(handler), handler, &opt))
	return a
}

// Main registers handler as the entry point. It is called with the
// positional arguments left after option parsing.
func (a *Application) Main(handler any) *Application {
	reg := a.newRegistration(handlerName(handler), handler, nil)
	reg.isEntry = true
	a.regs = append(a.regs, reg)
	return a
}

func (a *Application) newRegistration(name string, handler any, opt *Option) registration {
	reg := registration{name: name, option: opt}
	if handler == nil {
		reg.err = &SignatureError{Handler: name, Reason: "handler is nil"}
		return reg
	}
	reg.fn = reflect.ValueOf(handler)
	return reg
}

func (a *Application) logf(format string, args ...any) {
	if a.cfg.Printer != nil {
		a.cfg.Printer(format, args...)
	}
}

// handlerName returns a readable name for a function value: the method or
// function name without its package path.
func handlerName(handler any) string {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<invalid>"
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "<unknown>"
	}
	name := fn.Name()
	// Method values are suffixed with "-fm".
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
