// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/shayne/yargs"
)

const defaultFormat = "text"

var formats = []string{"text", "json", "yaml"}

type prefs struct {
	Format  string `toml:"format,omitempty"`
	Sort    bool   `toml:"sort,omitempty"`
	NoColor bool   `toml:"no_color,omitempty"`
}

type globalFlagsParsed struct {
	Config  string `flag:"config" help:"Read preferences from this file"`
	NoColor bool   `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
	Trace   bool   `flag:"trace" help:"Log how the command line is dispatched"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func defaultPrefsFile() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "vers", "vers.toml")
}

// loadPrefs reads the preferences file and applies environment overrides.
// A missing file is only an error when it was named explicitly.
func loadPrefs(path string) (prefs, error) {
	explicit := path != ""
	if !explicit {
		path = defaultPrefsFile()
	}

	var p prefs
	md, err := toml.DecodeFile(path, &p)
	switch {
	case err == nil:
		for _, key := range md.Undecoded() {
			log.Printf("%s: unknown preference %q", path, key.String())
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return prefs{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	if format := os.Getenv("VERS_FORMAT"); format != "" {
		p.Format = format
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		p.NoColor = true
	}
	if p.Format == "" {
		p.Format = defaultFormat
	}
	if !slices.Contains(formats, p.Format) {
		return prefs{}, fmt.Errorf("invalid format %q in preferences, want one of %v", p.Format, formats)
	}
	return p, nil
}
