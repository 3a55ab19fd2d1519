// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sockettest_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/sockprim/socket"
	"golang.org/x/sockprim/sockettest"
)

func TestCheckNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range sockettest.Checks() {
		if c.Name == "" || c.Run == nil {
			t.Errorf("incomplete check %+v", c)
		}
		if strings.ContainsAny(c.Name, " /") {
			t.Errorf("check name %q is not usable as a subtest name", c.Name)
		}
		if seen[c.Name] {
			t.Errorf("duplicate check %q", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestResult(t *testing.T) {
	for _, tt := range []struct {
		err             error
		skipped, failed bool
	}{
		{nil, false, false},
		{fmt.Errorf("%w: no ipv6", sockettest.ErrSkip), true, false},
		{errors.New("got 1; want 2"), false, true},
	} {
		r := sockettest.Result{Err: tt.err}
		if r.Skipped() != tt.skipped || r.Failed() != tt.failed {
			t.Errorf("%v: got skipped=%v failed=%v; want %v, %v", tt.err, r.Skipped(), r.Failed(), tt.skipped, tt.failed)
		}
	}
}

func TestRunMatch(t *testing.T) {
	rs := sockettest.Run(socket.Inet, func(name string) bool { return name == "close-twice" })
	if len(rs) != 1 || rs[0].Check != "close-twice" || rs[0].Family != socket.Inet {
		t.Fatalf("got %+v", rs)
	}
	if rs[0].Failed() {
		t.Fatal(rs[0].Err)
	}
}

func TestLoopbackUnknownFamily(t *testing.T) {
	if _, err := sockettest.Loopback(socket.Unix); !errors.Is(err, sockettest.ErrSkip) {
		t.Errorf("got %v; want %v", err, sockettest.ErrSkip)
	}
}
