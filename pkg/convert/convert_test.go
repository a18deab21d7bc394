// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"errors"
	"net/netip"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
)

type level int

func TestBuiltinConversions(t *testing.T) {
	reg := Builtin()
	tests := []struct {
		name  string
		typ   reflect.Type
		token string
		want  any
	}{
		{"string", reflect.TypeFor[string](), "hello", "hello"},
		{"bool", reflect.TypeFor[bool](), "true", true},
		{"int", reflect.TypeFor[int](), "-42", -42},
		{"int8", reflect.TypeFor[int8](), "127", int8(127)},
		{"uint16", reflect.TypeFor[uint16](), "8080", uint16(8080)},
		{"float64", reflect.TypeFor[float64](), "3.5", 3.5},
		{"duration", reflect.TypeFor[time.Duration](), "1m30s", 90 * time.Second},
		{"time", reflect.TypeFor[time.Time](), "2025-01-02T03:04:05Z", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"port", reflect.TypeFor[Port](), "443", Port(443)},
		{"named int", reflect.TypeFor[level](), "3", level(3)},
		{"uuid", reflect.TypeFor[uuid.UUID](), "6ba7b810-9dad-11d1-80b4-00c04fd430c8", uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
		{"digest", reflect.TypeFor[digest.Digest](), "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest.Digest("sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")},
		{"text unmarshaler", reflect.TypeFor[netip.Addr](), "10.0.0.1", netip.MustParseAddr("10.0.0.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := reg.Lookup(tt.typ)
			if !ok {
				t.Fatalf("Lookup(%v) found no converter", tt.typ)
			}
			v, err := c.Convert(tt.token)
			if err != nil {
				t.Fatalf("Convert(%q) error = %v", tt.token, err)
			}
			if v.Type() != tt.typ {
				t.Errorf("Convert(%q) type = %v, want %v", tt.token, v.Type(), tt.typ)
			}
			if got := v.Interface(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Convert(%q) = %#v, want %#v", tt.token, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	reg := Builtin()
	tests := []struct {
		typ   reflect.Type
		token string
	}{
		{reflect.TypeFor[int](), "42"},
		{reflect.TypeFor[int64](), "-9000"},
		{reflect.TypeFor[uint](), "7"},
		{reflect.TypeFor[bool](), "false"},
		{reflect.TypeFor[float64](), "0.25"},
		{reflect.TypeFor[time.Duration](), "2h0m0s"},
		{reflect.TypeFor[*int](), "42"},
		{reflect.TypeFor[level](), "5"},
		{reflect.TypeFor[*semver.Version](), "1.2.3-rc.1"},
		{reflect.TypeFor[netip.Addr](), "192.168.1.1"},
	}
	for _, tt := range tests {
		c, ok := reg.Lookup(tt.typ)
		if !ok {
			t.Fatalf("Lookup(%v) found no converter", tt.typ)
		}
		v, err := c.Convert(tt.token)
		if err != nil {
			t.Fatalf("Convert(%q) to %v error = %v", tt.token, tt.typ, err)
		}
		if got := c.Format(v); got != tt.token {
			t.Errorf("Format(Convert(%q)) for %v = %q", tt.token, tt.typ, got)
		}
	}
}

func TestPointerConversion(t *testing.T) {
	c, ok := Builtin().Lookup(reflect.TypeFor[*int]())
	if !ok {
		t.Fatal("Lookup(*int) found no converter")
	}
	v, err := c.Convert("12")
	if err != nil {
		t.Fatalf("Convert error = %v", err)
	}
	p := v.Interface().(*int)
	if p == nil || *p != 12 {
		t.Fatalf("Convert(\"12\") = %v, want pointer to 12", p)
	}
}

func TestURLConversion(t *testing.T) {
	reg := Builtin()
	for _, typ := range []reflect.Type{reflect.TypeFor[url.URL](), reflect.TypeFor[*url.URL]()} {
		c, ok := reg.Lookup(typ)
		if !ok {
			t.Fatalf("Lookup(%v) found no converter", typ)
		}
		v, err := c.Convert("https://example.com/path")
		if err != nil {
			t.Fatalf("Convert error = %v", err)
		}
		if got := c.Format(v); got != "https://example.com/path" {
			t.Errorf("Format = %q", got)
		}
	}
}

func TestSemverConstraint(t *testing.T) {
	c, ok := Builtin().Lookup(reflect.TypeFor[*semver.Constraints]())
	if !ok {
		t.Fatal("Lookup(*semver.Constraints) found no converter")
	}
	v, err := c.Convert(">= 1.2, < 2")
	if err != nil {
		t.Fatalf("Convert error = %v", err)
	}
	cons := v.Interface().(*semver.Constraints)
	if !cons.Check(semver.MustParse("1.5.0")) {
		t.Error("constraint should accept 1.5.0")
	}
	if cons.Check(semver.MustParse("2.0.0")) {
		t.Error("constraint should reject 2.0.0")
	}
}

func TestConversionErrors(t *testing.T) {
	reg := Builtin()
	tests := []struct {
		typ     reflect.Type
		token   string
		wantMsg string
	}{
		{reflect.TypeFor[int](), "abc", `invalid int value "abc"`},
		{reflect.TypeFor[int8](), "300", `int value "300" out of range`},
		{reflect.TypeFor[uint](), "-1", `invalid uint value "-1"`},
		{reflect.TypeFor[bool](), "maybe", `invalid bool value "maybe"`},
		{reflect.TypeFor[Port](), "70000", "port must be between 0 and 65535"},
		{reflect.TypeFor[time.Duration](), "soon", `invalid duration "soon"`},
	}
	for _, tt := range tests {
		c, ok := reg.Lookup(tt.typ)
		if !ok {
			t.Fatalf("Lookup(%v) found no converter", tt.typ)
		}
		_, err := c.Convert(tt.token)
		if err == nil {
			t.Fatalf("Convert(%q) to %v: expected error", tt.token, tt.typ)
		}
		var convErr *Error
		if !errors.As(err, &convErr) {
			t.Fatalf("Convert(%q) error type = %T, want *Error", tt.token, err)
		}
		if convErr.Token != tt.token || convErr.Type != tt.typ {
			t.Errorf("Error = {%q, %v}, want {%q, %v}", convErr.Token, convErr.Type, tt.token, tt.typ)
		}
		if !strings.Contains(err.Error(), tt.wantMsg) {
			t.Errorf("Convert(%q) error = %q, want it to contain %q", tt.token, err, tt.wantMsg)
		}
	}
}

func TestLookupUnsupported(t *testing.T) {
	reg := Builtin()
	for _, typ := range []reflect.Type{
		reflect.TypeFor[any](),
		reflect.TypeFor[struct{ X int }](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[chan int](),
		nil,
	} {
		if _, ok := reg.Lookup(typ); ok {
			t.Errorf("Lookup(%v) found a converter, want none", typ)
		}
	}
}

func TestRegisterOverrides(t *testing.T) {
	reg := New()
	if _, ok := reg.Lookup(reflect.TypeFor[string]()); ok {
		t.Fatal("empty registry should not convert strings")
	}
	Register[string](reg, func(s string) (string, error) { return strings.ToUpper(s), nil }, nil)
	c, ok := reg.Lookup(reflect.TypeFor[string]())
	if !ok {
		t.Fatal("Lookup(string) found no converter after Register")
	}
	v, err := c.Convert("shout")
	if err != nil {
		t.Fatalf("Convert error = %v", err)
	}
	if v.String() != "SHOUT" {
		t.Errorf("Convert = %q, want %q", v.String(), "SHOUT")
	}
}
