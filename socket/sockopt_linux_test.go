// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"testing"
	"time"
)

func TestGetsockoptSizeMismatch(t *testing.T) {
	s, err := Open(Inet, Datagram, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("getsockopt did not panic")
		}
	}()
	getsockopt[int64](s, &sockOpts[ssoReuseAddress])
}

func TestKeepaliveWholeSeconds(t *testing.T) {
	s, err := Open(Inet, Stream, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.SetKeepalive(DurationOf(1500 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	idle, err := getInt(s, &sockOpts[ssoKeepaliveIdle])
	if err != nil {
		t.Fatal(err)
	}
	if idle != 2 {
		t.Errorf("got idle %ds; want 2s", idle)
	}
	if d, err := s.Keepalive(); err != nil || d != DurationOf(2*time.Second) {
		t.Errorf("got %v, %v; want 2s", d, err)
	}
}
