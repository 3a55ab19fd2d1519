// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"errors"
	"math"
	"net"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLingerEncoding(t *testing.T) {
	for _, tt := range []struct {
		in   OptDuration
		want sysLinger
	}{
		{OptDuration{}, sysLinger{}},
		{DurationOf(0), sysLinger{Onoff: 1}},
		{DurationOf(999 * time.Millisecond), sysLinger{Onoff: 1}},
		{DurationOf(3500 * time.Millisecond), sysLinger{Onoff: 1, Linger: 3}},
		{DurationOf(math.MaxInt64), sysLinger{Onoff: 1, Linger: maxLingerSeconds}},
	} {
		got, err := lingerToSys(tt.in)
		if err != nil {
			t.Fatalf("%v: %v", tt.in, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%v (-want +got):\n%s", tt.in, diff)
		}
	}
	if _, err := lingerToSys(DurationOf(-time.Second)); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("got %v; want os.ErrInvalid", err)
	}
	if d := lingerFromSys(sysLinger{Onoff: 1, Linger: 3}); d != DurationOf(3*time.Second) {
		t.Errorf("got %v; want 3s", d)
	}
	if d := lingerFromSys(sysLinger{Linger: 3}); d != (OptDuration{}) {
		t.Errorf("got %v; want none", d)
	}
}

func TestTimeoutEncoding(t *testing.T) {
	for _, d := range []time.Duration{time.Millisecond, 1500 * time.Millisecond, 3 * time.Second, time.Hour} {
		v, err := timeoutToSys(DurationOf(d))
		if err != nil {
			t.Fatal(err)
		}
		if got := timeoutFromSys(v); got != DurationOf(d) {
			t.Errorf("got %v; want %v", got, d)
		}
	}
	v, err := timeoutToSys(OptDuration{})
	if err != nil {
		t.Fatal(err)
	}
	if got := timeoutFromSys(v); got != (OptDuration{}) {
		t.Errorf("got %v; want none", got)
	}
	if _, err := timeoutToSys(DurationOf(0)); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("got %v; want os.ErrInvalid", err)
	}
}

func TestOptionTableComplete(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "windows":
	default:
		t.Skipf("not supported on %s", runtime.GOOS)
	}
	for i, o := range sockOpts {
		switch i {
		case ssoKeepalive, ssoKeepaliveIdle, ssoKeepaliveInterval:
			continue
		}
		if o.name < 1 || o.typ == 0 {
			t.Errorf("option %d has no binding: %+v", i, o)
		}
	}
}

func TestClosedSocket(t *testing.T) {
	s := &Socket{fd: invalidSocket}
	s.closed.Store(true)
	if _, err := s.TTL(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("got %v; want net.ErrClosed", err)
	}
	if err := s.SetReadTimeout(DurationOf(time.Second)); !errors.Is(err, net.ErrClosed) {
		t.Errorf("got %v; want net.ErrClosed", err)
	}
	if _, err := s.Keepalive(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("got %v; want net.ErrClosed", err)
	}
	if _, err := s.Recv(make([]byte, 1), 0); !errors.Is(err, net.ErrClosed) {
		t.Errorf("got %v; want net.ErrClosed", err)
	}
	if err := s.Close(); !errors.Is(err, net.ErrClosed) {
		t.Errorf("got %v; want net.ErrClosed", err)
	}
}
