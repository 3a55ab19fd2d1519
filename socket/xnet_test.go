// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket_test

import (
	"errors"
	"net"
	"testing"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/net/nettest"
	"golang.org/x/sockprim/socket"
)

// The tests below share one socket between package net and this
// package and check that both agree on option values.

func sharedSocket(t *testing.T, network, address string) (net.PacketConn, *socket.Socket) {
	t.Helper()
	if !nettest.TestableNetwork(network) {
		t.Skipf("%s is not testable", network)
	}
	c, err := net.ListenPacket(network, address)
	if err != nil {
		t.Fatal(err)
	}
	s, err := socket.FromSyscallConn(c.(*net.UDPConn))
	if err != nil {
		c.Close()
		if errors.Is(err, errors.ErrUnsupported) {
			t.Skip(err)
		}
		t.Fatal(err)
	}
	t.Cleanup(func() {
		s.Close()
		c.Close()
	})
	return c, s
}

func TestIPv4OptionsAgree(t *testing.T) {
	c, s := sharedSocket(t, "udp4", "127.0.0.1:0")
	p := ipv4.NewPacketConn(c)

	if err := s.SetTTL(33); err != nil {
		t.Fatal(err)
	}
	if ttl, err := p.TTL(); err != nil || ttl != 33 {
		t.Errorf("ipv4: got ttl %d, %v; want 33", ttl, err)
	}
	if err := p.SetTTL(21); err != nil {
		t.Fatal(err)
	}
	if ttl, err := s.TTL(); err != nil || ttl != 21 {
		t.Errorf("socket: got ttl %d, %v; want 21", ttl, err)
	}

	if err := s.SetMulticastTTLV4(7); err != nil {
		t.Fatal(err)
	}
	if ttl, err := p.MulticastTTL(); err != nil || ttl != 7 {
		t.Errorf("ipv4: got multicast ttl %d, %v; want 7", ttl, err)
	}

	if err := s.SetMulticastLoopV4(false); err != nil {
		t.Fatal(err)
	}
	if on, err := p.MulticastLoopback(); err != nil || on {
		t.Errorf("ipv4: got multicast loopback %v, %v; want false", on, err)
	}
	if err := p.SetMulticastLoopback(true); err != nil {
		t.Fatal(err)
	}
	if on, err := s.MulticastLoopV4(); err != nil || !on {
		t.Errorf("socket: got multicast loopback %v, %v; want true", on, err)
	}
}

func TestIPv6OptionsAgree(t *testing.T) {
	if !nettest.SupportsIPv6() {
		t.Skip("ipv6 is not supported")
	}
	c, s := sharedSocket(t, "udp6", "[::1]:0")
	p := ipv6.NewPacketConn(c)

	if err := s.SetUnicastHopsV6(33); err != nil {
		t.Fatal(err)
	}
	if hops, err := p.HopLimit(); err != nil || hops != 33 {
		t.Errorf("ipv6: got hop limit %d, %v; want 33", hops, err)
	}
	if err := p.SetMulticastHopLimit(9); err != nil {
		t.Fatal(err)
	}
	if hops, err := s.MulticastHopsV6(); err != nil || hops != 9 {
		t.Errorf("socket: got multicast hops %d, %v; want 9", hops, err)
	}

	if err := s.SetMulticastLoopV6(false); err != nil {
		t.Fatal(err)
	}
	if on, err := p.MulticastLoopback(); err != nil || on {
		t.Errorf("ipv6: got multicast loopback %v, %v; want false", on, err)
	}
}
