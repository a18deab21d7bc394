// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	defaultUsageWidth = 74
	minDescWidth      = 20
)

var (
	usageHeading = color.New(color.Bold)
	usageOption  = color.New(color.FgCyan)
)

// PrintUsage writes a help page for the application to Config.Stdout. The
// header is printed after the usage line, the footer after the options.
func (a *Application) PrintUsage(header, footer string) error {
	s, err := a.build(false)
	if err != nil {
		return err
	}
	return s.WriteUsage(a.cfg.Stdout, a.cfg.Name, header, footer, terminalWidth(a.cfg.Stdout))
}

// WriteUsage renders a help page for the schema. Options are listed in
// declaration order. A width of zero or less selects the default of 74
// columns.
func (s *Schema) WriteUsage(w io.Writer, appName, header, footer string, width int) error {
	if width <= 0 {
		width = defaultUsageWidth
	}
	bw := bufio.NewWriter(w)

	prefix := "usage: " + appName
	parts := make([]string, 0, len(s.Options)+1)
	for _, d := range s.Options {
		parts = append(parts, usageToken(d))
	}
	if s.Main != nil {
		parts = append(parts, "[args...]")
	}
	for i, line := range wrapWords(parts, width-len(prefix)-1) {
		if i == 0 {
			bw.WriteString(usageHeading.Sprint("usage:") + " " + appName)
		} else {
			bw.WriteString(strings.Repeat(" ", len(prefix)))
		}
		if line != "" {
			bw.WriteString(" " + line)
		}
		bw.WriteString("\n")
	}

	writeParagraphs(bw, header, width)

	names := make([]string, len(s.Options))
	nameWidth := 0
	for i, d := range s.Options {
		names[i] = optionNames(d)
		nameWidth = max(nameWidth, len(names[i]))
	}
	descWidth := max(width-nameWidth-3, minDescWidth)
	for i, d := range s.Options {
		lines := wrapText(d.Usage, descWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		bw.WriteString(" " + usageOption.Sprint(names[i]))
		bw.WriteString(strings.Repeat(" ", nameWidth-len(names[i])+2))
		bw.WriteString(lines[0] + "\n")
		for _, l := range lines[1:] {
			bw.WriteString(strings.Repeat(" ", nameWidth+3) + l + "\n")
		}
	}

	writeParagraphs(bw, footer, width)
	return bw.Flush()
}

// usageToken renders d for the synopsis line, e.g. "[-o <file>]".
func usageToken(d *Descriptor) string {
	var b strings.Builder
	if d.Short != 0 {
		b.WriteString("-" + string(d.Short))
	} else {
		b.WriteString("--" + d.Long)
	}
	if d.TakesArgument() {
		if d.OptionalArg {
			b.WriteString(" [<" + d.ArgName + ">]")
		} else {
			b.WriteString(" <" + d.ArgName + ">")
		}
	}
	if d.Required {
		return b.String()
	}
	return "[" + b.String() + "]"
}

// optionNames renders the left column of an option row, e.g.
// "-o,--output <file>".
func optionNames(d *Descriptor) string {
	var b strings.Builder
	switch {
	case d.Short != 0 && d.Long != "":
		b.WriteString("-" + string(d.Short) + ",--" + d.Long)
	case d.Short != 0:
		b.WriteString("-" + string(d.Short))
	default:
		b.WriteString("   --" + d.Long)
	}
	if d.TakesArgument() {
		if d.OptionalArg {
			b.WriteString(" [<" + d.ArgName + ">]")
		} else {
			b.WriteString(" <" + d.ArgName + ">")
		}
	}
	return b.String()
}

func writeParagraphs(w *bufio.Writer, text string, width int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, l := range wrapText(text, width) {
		w.WriteString(l + "\n")
	}
}

// wrapText wraps text at word boundaries, keeping explicit line breaks.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapWords(words, width)...)
	}
	return lines
}

// wrapWords joins words into lines of at most width columns. A word longer
// than width gets a line of its own.
func wrapWords(words []string, width int) []string {
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	for _, word := range words {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	return append(lines, cur.String())
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultUsageWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultUsageWidth
	}
	return width
}
