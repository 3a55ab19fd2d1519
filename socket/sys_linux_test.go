// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"errors"
	"net/netip"
	"runtime"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// A signal delivered while a receive with SO_RCVTIMEO is blocked makes
// the kernel return EINTR. The call must come back to the caller then,
// never be reissued with a fresh timeout window.
func TestRecvTimeoutWithSignals(t *testing.T) {
	s, err := Open(Inet, Datagram, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.Bind(AddrFromAddrPort(netip.MustParseAddrPort("127.0.0.1:0"))); err != nil {
		t.Fatal(err)
	}
	const timeout = 200 * time.Millisecond
	if err := s.SetReadTimeout(DurationOf(timeout)); err != nil {
		t.Fatal(err)
	}

	type result struct {
		err     error
		elapsed time.Duration
	}
	tids := make(chan int, 1)
	done := make(chan result, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		tids <- unix.Gettid()
		start := time.Now()
		_, err := s.Recv(make([]byte, 16), 0)
		done <- result{err, time.Since(start)}
	}()
	tid := <-tids

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(10 * timeout)
	for {
		select {
		case r := <-done:
			if r.elapsed > 3*timeout {
				t.Errorf("Recv returned after %v; timeout is %v", r.elapsed, timeout)
			}
			if !errors.Is(r.err, unix.EINTR) && !errors.Is(r.err, unix.EAGAIN) {
				t.Errorf("got %v; want EINTR or EAGAIN", r.err)
			}
			return
		case <-tick.C:
			if err := unix.Tgkill(unix.Getpid(), tid, unix.SIGURG); err != nil {
				t.Fatalf("tgkill failed: %v", err)
			}
		case <-deadline:
			t.Fatalf("Recv still blocked after %v; timeout is %v", 10*timeout, timeout)
		}
	}
}
