// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sockettest provides the behavioral checks every backend of
// package socket must pass.
//
// Each Check exercises one property of the socket layer on real
// sockets bound to the loopback interface. A check returns nil on
// success, an error wrapping ErrSkip when the host cannot run it, or
// any other error on failure.
package sockettest

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"golang.org/x/net/nettest"
	"golang.org/x/sockprim/socket"
)

// ErrSkip is wrapped by the errors of checks the host cannot run.
var ErrSkip = errors.New("skipped")

func skipf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, args...))
}

// A Check is a named property of the socket layer.
type Check struct {
	Name string
	Run  func(f socket.Family) error
}

// Checks returns the full suite.
func Checks() []Check {
	return []Check{
		{"close-twice", checkCloseTwice},
		{"nil-address", checkNilAddress},
		{"bind-local-addr", checkBindLocalAddr},
		{"peer-addr-unconnected", checkPeerAddrUnconnected},
		{"accept-peer-addr", checkAcceptPeerAddr},
		{"nonblocking-accept", checkNonblockingAccept},
		{"duplicate", checkDuplicate},
		{"take-error", checkTakeError},
		{"stream-send-recv", checkStreamSendRecv},
		{"datagram-sendto-recvfrom", checkDatagramSendToRecvFrom},
		{"peek", checkPeek},
		{"vectored", checkVectored},
		{"truncation", checkTruncation},
		{"shutdown-read", checkShutdownRead},
		{"shutdown-write", checkShutdownWrite},
		{"read-timeout-expires", checkReadTimeoutExpires},
		{"timeouts", checkTimeouts},
		{"linger", checkLinger},
		{"keepalive", checkKeepalive},
		{"bool-options", checkBoolOptions},
		{"hop-limits", checkHopLimits},
		{"buffer-sizes", checkBufferSizes},
		{"multicast-interface", checkMulticastInterface},
		{"multicast-membership", checkMulticastMembership},
	}
}

// A Result is the outcome of running one check.
type Result struct {
	Check   string
	Family  socket.Family
	Err     error
	Elapsed time.Duration
}

// Skipped reports whether the check was skipped.
func (r Result) Skipped() bool { return errors.Is(r.Err, ErrSkip) }

// Failed reports whether the check failed.
func (r Result) Failed() bool { return r.Err != nil && !r.Skipped() }

// Run runs the checks accepted by match against family f, in order, and
// returns their results. A nil match accepts every check.
func Run(f socket.Family, match func(name string) bool) []Result {
	var rs []Result
	for _, c := range Checks() {
		if match != nil && !match(c.Name) {
			continue
		}
		start := time.Now()
		err := c.Run(f)
		rs = append(rs, Result{Check: c.Name, Family: f, Err: err, Elapsed: time.Since(start)})
	}
	return rs
}

// Loopback returns the loopback address of f, or an error wrapping
// ErrSkip if the host has no usable stack for f.
func Loopback(f socket.Family) (netip.Addr, error) {
	switch f {
	case socket.Inet:
		if !nettest.SupportsIPv4() {
			return netip.Addr{}, skipf("ipv4 is not supported")
		}
		return netip.AddrFrom4([4]byte{127, 0, 0, 1}), nil
	case socket.Inet6:
		if !nettest.SupportsIPv6() {
			return netip.Addr{}, skipf("ipv6 is not supported")
		}
		return netip.IPv6Loopback(), nil
	}
	return netip.Addr{}, skipf("family %v is not covered", f)
}

func open(f socket.Family, t socket.Type) (*socket.Socket, error) {
	if _, err := Loopback(f); err != nil {
		return nil, err
	}
	s, err := socket.Open(f, t, 0)
	if errors.Is(err, errors.ErrUnsupported) {
		return nil, skipf("%v", err)
	}
	return s, err
}

// bound returns a socket bound to an ephemeral port on the loopback
// address, and that address. Receives time out so that a failing check
// cannot hang.
func bound(f socket.Family, t socket.Type) (*socket.Socket, *socket.Addr, error) {
	s, err := open(f, t)
	if err != nil {
		return nil, nil, err
	}
	ip, _ := Loopback(f)
	if err := s.Bind(socket.AddrFromAddrPort(netip.AddrPortFrom(ip, 0))); err != nil {
		s.Close()
		return nil, nil, err
	}
	if err := s.SetReadTimeout(socket.DurationOf(5 * time.Second)); err != nil {
		s.Close()
		return nil, nil, err
	}
	a, err := s.LocalAddr()
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, a, nil
}

// A streamPair is a connected pair of stream sockets and the listener
// that produced them.
type streamPair struct {
	ln, client, server *socket.Socket
	accepted           *socket.Addr // peer address reported by Accept
}

func newStreamPair(f socket.Family) (*streamPair, error) {
	p := &streamPair{}
	ln, la, err := bound(f, socket.Stream)
	if err != nil {
		return nil, err
	}
	p.ln = ln
	if err := ln.Listen(1); err != nil {
		p.Close()
		return nil, err
	}
	if p.client, err = open(f, socket.Stream); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.client.SetReadTimeout(socket.DurationOf(5 * time.Second)); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.client.Connect(la); err != nil {
		p.Close()
		return nil, err
	}
	if p.server, p.accepted, err = ln.Accept(); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.server.SetReadTimeout(socket.DurationOf(5 * time.Second)); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *streamPair) Close() {
	p.server.Close()
	p.client.Close()
	p.ln.Close()
}

// recvFull reads exactly n bytes from a stream socket.
func recvFull(s *socket.Socket, n int) ([]byte, error) {
	b := make([]byte, n)
	for off := 0; off < n; {
		m, err := s.Recv(b[off:], 0)
		if err != nil {
			return b[:off], err
		}
		if m == 0 {
			return b[:off], fmt.Errorf("unexpected end of stream after %d bytes", off)
		}
		off += m
	}
	return b, nil
}
