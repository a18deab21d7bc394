// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestWriteUsage(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	app := New(Config{Name: "greet", Stdout: &buf}).
		Option(Option{Short: 'h', Long: "help", Usage: "Show this help"}, func() bool { return false }).
		Option(Option{Short: 'o', Long: "output", Usage: "Write the greeting to a file instead of standard output", ArgName: "file"}, func(string) {}).
		Option(Option{Long: "level", Usage: "Loudness", OptionalArg: true}, func(*int) {}).
		Option(Option{Short: 'n', Usage: "Name", Required: true}, func(string) {}).
		Main(func([]string) {})

	if err := app.PrintUsage("Greets people.", "Report bugs to the issue tracker."); err != nil {
		t.Fatalf("PrintUsage() error = %v", err)
	}

	want := strings.Join([]string{
		"usage: greet [-h] [-o <file>] [--level [<arg>]] -n <arg> [args...]",
		"Greets people.",
		" -h,--help           Show this help",
		" -o,--output <file>  Write the greeting to a file instead of standard",
		"                     output",
		"    --level [<arg>]  Loudness",
		" -n <arg>            Name",
		"Report bugs to the issue tracker.",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteUsageWrapsSynopsis(t *testing.T) {
	color.NoColor = true

	s := &Schema{}
	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		s.Options = append(s.Options, &Descriptor{Long: name, Usage: name})
	}
	var buf bytes.Buffer
	if err := s.WriteUsage(&buf, "app", "", "", 40); err != nil {
		t.Fatalf("WriteUsage() error = %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"usage: app [--alpha] [--bravo]",
		"           [--charlie] [--delta]",
		"           [--echo]",
	}
	if diff := cmp.Diff(want, lines[:3]); diff != "" {
		t.Errorf("synopsis mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintUsageWithoutEntryPoint(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	app := New(Config{Name: "tool", Stdout: &buf}).
		Option(Option{Short: 'v', Usage: "Verbose"}, func() {})
	if err := app.PrintUsage("", ""); err != nil {
		t.Fatalf("PrintUsage() error = %v", err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "usage: tool [-v]\n") {
		t.Errorf("usage = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"short", 20, []string{"short"}},
		{"a verylongword b", 5, []string{"a", "verylongword", "b"}},
		{"first\n\nsecond", 20, []string{"first", "", "second"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, wrapText(tt.text, tt.width)); diff != "" {
			t.Errorf("wrapText(%q, %d) mismatch (-want +got):\n%s", tt.text, tt.width, diff)
		}
	}
}
