// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package convert

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
)

// Port is a uint16 for IP ports. It gets its own converter so that out of
// range values produce a readable message.
type Port uint16

// kindTypes maps a kind to the builtin type used for named types of that kind.
var kindTypes = map[reflect.Kind]reflect.Type{
	reflect.String:  reflect.TypeFor[string](),
	reflect.Bool:    reflect.TypeFor[bool](),
	reflect.Int:     reflect.TypeFor[int](),
	reflect.Int8:    reflect.TypeFor[int8](),
	reflect.Int16:   reflect.TypeFor[int16](),
	reflect.Int32:   reflect.TypeFor[int32](),
	reflect.Int64:   reflect.TypeFor[int64](),
	reflect.Uint:    reflect.TypeFor[uint](),
	reflect.Uint8:   reflect.TypeFor[uint8](),
	reflect.Uint16:  reflect.TypeFor[uint16](),
	reflect.Uint32:  reflect.TypeFor[uint32](),
	reflect.Uint64:  reflect.TypeFor[uint64](),
	reflect.Float32: reflect.TypeFor[float32](),
	reflect.Float64: reflect.TypeFor[float64](),
}

// Builtin returns a new registry holding converters for the basic kinds,
// time.Duration, time.Time (RFC 3339), url.URL, Port, semver versions and
// constraints, UUIDs and OCI digests.
func Builtin() *Registry {
	r := New()
	Register[string](r, func(s string) (string, error) { return s, nil }, nil)
	Register(r, parseBool, strconv.FormatBool)

	registerInt[int](r)
	registerInt[int8](r)
	registerInt[int16](r)
	registerInt[int32](r)
	registerInt[int64](r)
	registerUint[uint](r)
	registerUint[uint8](r)
	registerUint[uint16](r)
	registerUint[uint32](r)
	registerUint[uint64](r)
	registerFloat[float32](r)
	registerFloat[float64](r)

	Register(r, parseDuration, time.Duration.String)
	Register(r, parseTime, func(t time.Time) string { return t.Format(time.RFC3339) })
	Register(r, parseURL, func(u url.URL) string { return u.String() })
	Register(r, parsePortValue, func(p Port) string { return strconv.FormatUint(uint64(p), 10) })

	Register(r, semver.NewVersion, func(v *semver.Version) string { return v.Original() })
	Register(r, semver.NewConstraint, func(c *semver.Constraints) string { return c.String() })
	Register(r, uuid.Parse, uuid.UUID.String)
	Register(r, digest.Parse, digest.Digest.String)
	return r
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q", value)
	}
	return b, nil
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

func registerInt[T signed](r *Registry) {
	bits := reflect.TypeFor[T]().Bits()
	Register(r, func(value string) (T, error) {
		i, err := strconv.ParseInt(value, 10, bits)
		if err != nil {
			return 0, numError("int", value, err)
		}
		return T(i), nil
	}, func(v T) string { return strconv.FormatInt(int64(v), 10) })
}

func registerUint[T unsigned](r *Registry) {
	bits := reflect.TypeFor[T]().Bits()
	Register(r, func(value string) (T, error) {
		u, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return 0, numError("uint", value, err)
		}
		return T(u), nil
	}, func(v T) string { return strconv.FormatUint(uint64(v), 10) })
}

func registerFloat[T float](r *Registry) {
	bits := reflect.TypeFor[T]().Bits()
	Register(r, func(value string) (T, error) {
		f, err := strconv.ParseFloat(value, bits)
		if err != nil {
			return 0, numError("float", value, err)
		}
		return T(f), nil
	}, func(v T) string { return strconv.FormatFloat(float64(v), 'g', -1, bits) })
}

func numError(kind, value string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return fmt.Errorf("%s value %q out of range", kind, value)
	}
	return fmt.Errorf("invalid %s value %q", kind, value)
}

func parseDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return d, nil
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC 3339): %w", value, err)
	}
	return t, nil
}

func parseURL(value string) (url.URL, error) {
	u, err := url.Parse(value)
	if err != nil {
		return url.URL{}, fmt.Errorf("invalid URL %q: %w", value, err)
	}
	return *u, nil
}

// parsePortValue parses a port value from string with user-friendly error messages.
func parsePortValue(value string) (Port, error) {
	portVal, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("port must be between 0 and 65535, got %q", value)
		}
		return 0, fmt.Errorf("invalid port value %q", value)
	}
	return Port(portVal), nil
}
