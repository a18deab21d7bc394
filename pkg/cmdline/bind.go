// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"reflect"
)

// Annotation marks a method of a bound target as an option handler or as
// the entry point.
type Annotation struct {
	Method string
	Option Option
	Main   bool
}

// OptionMethod annotates method as the handler for opt.
func OptionMethod(method string, opt Option) Annotation {
	return Annotation{Method: method, Option: opt}
}

// MainMethod annotates method as the entry point.
func MainMethod(method string) Annotation {
	return Annotation{Method: method, Main: true}
}

// Annotated is implemented by types whose methods handle the command line.
//
//	type app struct{ verbose bool }
//
//	func (a *app) CommandLine() []cmdline.Annotation {
//		return []cmdline.Annotation{
//			cmdline.OptionMethod("Verbose", cmdline.Option{Short: 'v', Usage: "Verbose output"}),
//			cmdline.MainMethod("Run"),
//		}
//	}
type Annotated interface {
	CommandLine() []Annotation
}

// Bind registers the annotated methods of target, in annotation order.
// Methods without an annotation are ignored.
func (a *Application) Bind(target Annotated) *Application {
	v := reflect.ValueOf(target)
	for _, ann := range target.CommandLine() {
		m := v.MethodByName(ann.Method)
		var reg registration
		if !m.IsValid() {
			reg = registration{
				name: ann.Method,
				err:  fmt.Errorf("%T has no exported method %s", target, ann.Method),
			}
		} else if ann.Main {
			reg = a.newRegistration(ann.Method, m.Interface(), nil)
		} else {
			opt := ann.Option
			reg = a.newRegistration(ann.Method, m.Interface(), &opt)
		}
		reg.isEntry = ann.Main
		a.regs = append(a.regs, reg)
	}
	return a
}
