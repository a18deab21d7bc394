// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/containerd/errdefs"
	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

var version = "dev"

const (
	usageHeader = "Filters and sorts semantic versions given as arguments or on standard input."
	usageFooter = "Preferences are read from ~/.config/vers/vers.toml. VERS_FORMAT overrides the output format."
)

var prerelease = color.New(color.FgYellow)

// tool holds the state collected by the option handlers for a single run.
type tool struct {
	app *cmdline.Application
	in  io.Reader
	out io.Writer

	constraints []*semver.Constraints
	excluded    []*semver.Version
	increment   string
	pre         string
	format      string
	sorted      bool
	latest      bool
}

func newTool(p prefs, in io.Reader, out io.Writer) *tool {
	return &tool{
		in:     in,
		out:    out,
		format: p.Format,
		sorted: p.Sort,
	}
}

func (t *tool) CommandLine() []cmdline.Annotation {
	return []cmdline.Annotation{
		cmdline.OptionMethod("Help", cmdline.Option{Short: 'h', Long: "help", Usage: "Show this help and exit"}),
		cmdline.OptionMethod("Version", cmdline.Option{Short: 'V', Long: "version", Usage: "Print the vers version and exit"}),
		cmdline.OptionMethod("Constraint", cmdline.Option{
			Short:   'c',
			Long:    "constraint",
			ArgName: "range",
			Usage:   "Keep versions matching the range, e.g. \">= 1.2, < 2\". May be repeated; every range must match",
		}),
		cmdline.OptionMethod("Exclude", cmdline.Option{
			Short:        'x',
			Long:         "exclude",
			ArgName:      "version",
			Usage:        "Drop these versions (comma separated). Takes every argument after it, so give it last or follow it with --",
			ArgumentType: reflect.TypeFor[*semver.Version](),
			MaxArgs:      cmdline.Unlimited,
		}),
		cmdline.OptionMethod("Increment", cmdline.Option{
			Short:   'i',
			Long:    "increment",
			ArgName: "part",
			Usage:   "Bump the major, minor or patch number of every version printed",
		}),
		cmdline.OptionMethod("Pre", cmdline.Option{ArgName: "tag", Usage: "Set the prerelease tag of every version printed"}),
		cmdline.OptionMethod("Sort", cmdline.Option{Short: 's', Long: "sort", Usage: "Print in ascending order"}),
		cmdline.OptionMethod("Latest", cmdline.Option{Short: 'l', Long: "latest", Usage: "Print only the highest version"}),
		cmdline.OptionMethod("Format", cmdline.Option{Short: 'o', Long: "format", ArgName: "fmt", Usage: "Output format: text, json or yaml"}),
		cmdline.MainMethod("Run"),
	}
}

func (t *tool) Help() (bool, error) {
	return false, t.app.PrintUsage(usageHeader, usageFooter)
}

func (t *tool) Version() bool {
	fmt.Fprintf(t.out, "vers %s\n", version)
	return false
}

func (t *tool) Constraint(c *semver.Constraints) {
	t.constraints = append(t.constraints, c)
}

func (t *tool) Exclude(versions []any) {
	for _, v := range versions {
		t.excluded = append(t.excluded, v.(*semver.Version))
	}
}

func (t *tool) Increment(part string) error {
	switch part {
	case "major", "minor", "patch":
		t.increment = part
		return nil
	}
	return fmt.Errorf("%w: unknown version part %q, want major, minor or patch", errdefs.ErrInvalidArgument, part)
}

func (t *tool) Pre(tag string) {
	t.pre = tag
}

func (t *tool) Sort() {
	t.sorted = true
}

func (t *tool) Latest() {
	t.latest = true
}

func (t *tool) Format(f string) error {
	if !slices.Contains(formats, f) {
		return fmt.Errorf("%w: unknown format %q, want one of %v", errdefs.ErrInvalidArgument, f, formats)
	}
	t.format = f
	return nil
}

var errNoVersions = errors.New("no versions given")

// Run prints the versions that pass the filters, ordered and bumped as
// requested.
func (t *tool) Run(versions []*semver.Version) error {
	if len(versions) == 0 {
		var err error
		if versions, err = t.readVersions(); err != nil {
			return err
		}
	}
	if len(versions) == 0 {
		return fmt.Errorf("%w: %w", errdefs.ErrInvalidArgument, errNoVersions)
	}

	var kept []*semver.Version
	for _, v := range versions {
		if t.keep(v) {
			kept = append(kept, v)
		}
	}
	if t.sorted || t.latest {
		sort.Sort(semver.Collection(kept))
	}
	if t.latest && len(kept) > 0 {
		kept = kept[len(kept)-1:]
	}
	for i, v := range kept {
		bumped, err := t.bump(v)
		if err != nil {
			return err
		}
		kept[i] = bumped
	}
	return t.write(kept)
}

func (t *tool) keep(v *semver.Version) bool {
	for _, ex := range t.excluded {
		if v.Equal(ex) {
			return false
		}
	}
	for _, c := range t.constraints {
		if !c.Check(v) {
			return false
		}
	}
	return true
}

func (t *tool) bump(v *semver.Version) (*semver.Version, error) {
	var next semver.Version
	switch t.increment {
	case "major":
		next = v.IncMajor()
	case "minor":
		next = v.IncMinor()
	case "patch":
		next = v.IncPatch()
	default:
		next = *v
	}
	if t.pre != "" {
		var err error
		if next, err = next.SetPrerelease(t.pre); err != nil {
			return nil, fmt.Errorf("%w: prerelease %q: %v", errdefs.ErrInvalidArgument, t.pre, err)
		}
	}
	return &next, nil
}

// readVersions reads whitespace separated versions from the input unless it
// is a terminal.
func (t *tool) readVersions() ([]*semver.Version, error) {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}
	var versions []*semver.Version
	sc := bufio.NewScanner(t.in)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := semver.NewVersion(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: %q on standard input: %v", errdefs.ErrInvalidArgument, sc.Text(), err)
		}
		versions = append(versions, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read versions: %w", err)
	}
	return versions, nil
}

type record struct {
	Version    string `json:"version" yaml:"version"`
	Major      uint64 `json:"major" yaml:"major"`
	Minor      uint64 `json:"minor" yaml:"minor"`
	Patch      uint64 `json:"patch" yaml:"patch"`
	Prerelease string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	Metadata   string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (t *tool) write(versions []*semver.Version) error {
	switch t.format {
	case "json":
		enc := json.NewEncoder(t.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records(versions))
	case "yaml":
		enc := yaml.NewEncoder(t.out)
		enc.SetIndent(2)
		if err := enc.Encode(records(versions)); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, v := range versions {
		if v.Prerelease() != "" {
			prerelease.Fprintln(t.out, v.Original())
			continue
		}
		fmt.Fprintln(t.out, v.Original())
	}
	return nil
}

func records(versions []*semver.Version) []record {
	out := make([]record, 0, len(versions))
	for _, v := range versions {
		out = append(out, record{
			Version:    v.Original(),
			Major:      v.Major(),
			Minor:      v.Minor(),
			Patch:      v.Patch(),
			Prerelease: v.Prerelease(),
			Metadata:   v.Metadata(),
		})
	}
	return out
}
