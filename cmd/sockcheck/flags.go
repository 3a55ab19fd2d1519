// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/sockprim/socket"
)

// familyFlag selects the address families to exercise.
type familyFlag struct {
	name     string
	families []socket.Family
	allowAll bool
}

var _ pflag.Value = (*familyFlag)(nil)

var familyNames = map[string][]socket.Family{
	"inet":  {socket.Inet},
	"inet6": {socket.Inet6},
	"all":   {socket.Inet, socket.Inet6},
}

func newFamilyFlag(def string, allowAll bool) *familyFlag {
	f := &familyFlag{allowAll: allowAll}
	if err := f.Set(def); err != nil {
		panic(err)
	}
	return f
}

func (f *familyFlag) String() string { return f.name }

func (f *familyFlag) Set(s string) error {
	s = strings.ToLower(s)
	fs, ok := familyNames[s]
	if !ok || (s == "all" && !f.allowAll) {
		if f.allowAll {
			return fmt.Errorf("invalid family %q: must be inet, inet6, or all", s)
		}
		return fmt.Errorf("invalid family %q: must be inet or inet6", s)
	}
	f.name, f.families = s, fs
	return nil
}

func (f *familyFlag) Type() string { return "family" }

// typeFlag selects a socket type.
type typeFlag struct {
	name string
	typ  socket.Type
}

var _ pflag.Value = (*typeFlag)(nil)

var typeNames = map[string]socket.Type{
	"stream": socket.Stream,
	"dgram":  socket.Datagram,
}

func (t *typeFlag) String() string { return t.name }

func (t *typeFlag) Set(s string) error {
	s = strings.ToLower(s)
	typ, ok := typeNames[s]
	if !ok {
		return fmt.Errorf("invalid socket type %q: must be stream or dgram", s)
	}
	t.name, t.typ = s, typ
	return nil
}

func (t *typeFlag) Type() string { return "type" }
