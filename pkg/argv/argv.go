// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv splits a raw argument vector into recognized options and
// positional arguments, given the shape of every option.
//
// Supported syntax:
//   - Long options: --name, --name=value, --name value, -name
//   - Short options: -x, -x=value, -xvalue, -x value
//   - Clusters of argument-less short options: -abc
//   - "--" ends option parsing; "-" is a positional argument
//   - Negative numbers are values, not options, unless they name a short option
//
// Options may appear anywhere among the positional arguments. Repeated
// occurrences of an option accumulate their values.
package argv

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unlimited as Spec.MaxArgs removes the cap on values per occurrence.
const Unlimited = -1

// Spec describes one option. At least one of Short and Long must be set.
type Spec struct {
	Short rune
	Long  string
	// HasArg reports whether the option takes values at all.
	HasArg bool
	// MaxArgs caps the values accepted by a single occurrence. Values
	// below 1 other than Unlimited are treated as 1.
	MaxArgs int
	// Separator splits one token into several values, as long as the
	// occurrence has room for them. Zero disables splitting.
	Separator rune
	// OptionalArg lets the option appear without any value.
	OptionalArg bool
	Required    bool
}

// Key returns the name the option is reported under in a Result: the long
// name if set, the short name otherwise.
func (s Spec) Key() string {
	if s.Long != "" {
		return s.Long
	}
	return string(s.Short)
}

// Display returns the option as a user would type it.
func (s Spec) Display() string {
	if s.Long != "" {
		return "--" + s.Long
	}
	return "-" + string(s.Short)
}

func (s Spec) maxArgs() int {
	if s.MaxArgs == Unlimited {
		return Unlimited
	}
	if s.MaxArgs < 1 {
		return 1
	}
	return s.MaxArgs
}

// Result is the outcome of Parse.
type Result struct {
	present map[string]bool
	values  map[string][]string
	// Args contains the positional arguments in their original order.
	Args []string
}

// Has reports whether the option with the given key appeared.
func (r *Result) Has(key string) bool {
	return r.present[key]
}

// Values returns the values of every occurrence of the option, in order.
func (r *Result) Values(key string) []string {
	return r.values[key]
}

// UnknownOptionError is returned when an undeclared option is encountered.
type UnknownOptionError struct {
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option: %s", e.Option)
}

// MissingArgumentError is returned when an option that requires a value
// appears without one.
type MissingArgumentError struct {
	Option string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument for option: %s", e.Option)
}

// UnexpectedArgumentError is returned when a value is attached with "=" to
// an option that takes none.
type UnexpectedArgumentError struct {
	Option string
	Value  string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("option %s does not take an argument (got %q)", e.Option, e.Value)
}

// MissingOptionError is returned when required options are absent.
type MissingOptionError struct {
	Options []string
}

func (e *MissingOptionError) Error() string {
	if len(e.Options) == 1 {
		return fmt.Sprintf("missing required option: %s", e.Options[0])
	}
	return fmt.Sprintf("missing required options: %s", strings.Join(e.Options, ", "))
}

// DuplicateOptionError is returned when two specs share a name.
type DuplicateOptionError struct {
	Option string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %s declared more than once", e.Option)
}

// occurrence is a single appearance of an option on the command line.
type occurrence struct {
	spec   *Spec
	values []string
}

func (o *occurrence) acceptsArg() bool {
	if !o.spec.HasArg {
		return false
	}
	limit := o.spec.maxArgs()
	return limit == Unlimited || len(o.values) < limit
}

// add appends value, splitting on the separator while there is room for
// more than one further value.
func (o *occurrence) add(value string) {
	limit := o.spec.maxArgs()
	if sep := o.spec.Separator; sep != 0 {
		for limit == Unlimited || len(o.values) < limit-1 {
			idx := strings.IndexRune(value, sep)
			if idx < 0 {
				break
			}
			o.values = append(o.values, value[:idx])
			value = value[idx+utf8.RuneLen(sep):]
		}
	}
	o.values = append(o.values, value)
}

type parser struct {
	specs   []Spec
	short   map[rune]*Spec
	long    map[string]*Spec
	result  *Result
	current *occurrence
}

// Parse tokenizes args against specs. Args should not include the binary
// name (os.Args[1:]).
func Parse(specs []Spec, args []string) (*Result, error) {
	p := &parser{
		specs: specs,
		short: make(map[rune]*Spec),
		long:  make(map[string]*Spec),
		result: &Result{
			present: make(map[string]bool),
			values:  make(map[string][]string),
			Args:    []string{},
		},
	}
	for i := range specs {
		s := &specs[i]
		if s.Short != 0 {
			if _, dup := p.short[s.Short]; dup {
				return nil, &DuplicateOptionError{Option: "-" + string(s.Short)}
			}
			p.short[s.Short] = s
		}
		if s.Long != "" {
			if _, dup := p.long[s.Long]; dup {
				return nil, &DuplicateOptionError{Option: "--" + s.Long}
			}
			p.long[s.Long] = s
		}
	}
	// Results are keyed by name, so a one letter long name must not
	// belong to a different option than the same short name.
	for r, s := range p.short {
		if other, ok := p.long[string(r)]; ok && other != s {
			return nil, &DuplicateOptionError{Option: "-" + string(r)}
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// Handle "--" separator
		if arg == "--" {
			if err := p.finish(); err != nil {
				return nil, err
			}
			p.result.Args = append(p.result.Args, args[i+1:]...)
			break
		}

		if p.isOption(arg) {
			if err := p.finish(); err != nil {
				return nil, err
			}
			var err error
			if strings.HasPrefix(arg, "--") {
				err = p.handleLong(arg[2:])
			} else {
				err = p.handleShort(arg[1:])
			}
			if err != nil {
				return nil, err
			}
			continue
		}

		// Non-option tokens feed the current option until it is full.
		if p.current != nil && p.current.acceptsArg() {
			p.current.add(arg)
			continue
		}
		if err := p.finish(); err != nil {
			return nil, err
		}
		p.result.Args = append(p.result.Args, arg)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}

	var missing []string
	for _, s := range specs {
		if s.Required && !p.result.present[s.Key()] {
			missing = append(missing, s.Display())
		}
	}
	if len(missing) > 0 {
		return nil, &MissingOptionError{Options: missing}
	}
	return p.result, nil
}

// isOption reports whether arg should be treated as an option rather than
// a value.
func (p *parser) isOption(arg string) bool {
	if arg == "-" || !strings.HasPrefix(arg, "-") {
		return false
	}
	if strings.HasPrefix(arg, "--") {
		return true
	}
	if isNumeric(arg) {
		r, _ := utf8.DecodeRuneInString(arg[1:])
		_, known := p.short[r]
		return known
	}
	return true
}

// finish closes the current occurrence, checking it received a value if
// it needed one.
func (p *parser) finish() error {
	occ := p.current
	p.current = nil
	if occ == nil {
		return nil
	}
	if occ.spec.HasArg && !occ.spec.OptionalArg && len(occ.values) == 0 {
		return &MissingArgumentError{Option: occ.spec.Display()}
	}
	key := occ.spec.Key()
	p.result.present[key] = true
	if occ.spec.HasArg {
		p.result.values[key] = append(p.result.values[key], occ.values...)
	}
	return nil
}

func (p *parser) start(s *Spec) {
	p.current = &occurrence{spec: s}
}

// handleLong handles "name" or "name=value" after a "--" or a single "-".
func (p *parser) handleLong(token string) error {
	name, value, hasValue := strings.Cut(token, "=")
	s, ok := p.long[name]
	if !ok {
		return &UnknownOptionError{Option: "--" + name}
	}
	p.start(s)
	if !hasValue {
		return nil
	}
	if !s.HasArg {
		return &UnexpectedArgumentError{Option: "--" + name, Value: value}
	}
	p.current.add(value)
	return nil
}

// handleShort handles everything after a single "-".
func (p *parser) handleShort(token string) error {
	// A single dash may also introduce a long option.
	if name, _, _ := strings.Cut(token, "="); utf8.RuneCountInString(name) > 1 {
		if _, ok := p.long[name]; ok {
			return p.handleLong(token)
		}
	}

	for token != "" {
		r, size := utf8.DecodeRuneInString(token)
		token = token[size:]
		s, ok := p.short[r]
		if !ok {
			return &UnknownOptionError{Option: "-" + string(r)}
		}
		p.start(s)

		if strings.HasPrefix(token, "=") {
			if !s.HasArg {
				return &UnexpectedArgumentError{Option: "-" + string(r), Value: token[1:]}
			}
			p.current.add(token[1:])
			return nil
		}
		if s.HasArg {
			// The rest of the cluster, if any, is the value.
			if token != "" {
				p.current.add(token)
			}
			return nil
		}
		if token != "" {
			if err := p.finish(); err != nil {
				return err
			}
		}
	}
	return nil
}

// isNumeric reports whether s is a decimal number with an optional sign,
// such as "-10" or "+3.5".
func isNumeric(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
