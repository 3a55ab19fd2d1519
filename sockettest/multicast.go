// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sockettest

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"

	"golang.org/x/net/nettest"
	"golang.org/x/sockprim/socket"
)

var (
	groupV4 = netip.MustParseAddr("224.0.0.254")
	groupV6 = netip.MustParseAddr("ff02::114")
)

func checkMulticastInterface(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	if f == socket.Inet {
		ip, _ := Loopback(f)
		if err := s.SetMulticastIfV4(ip); err != nil {
			return err
		}
		got, err := s.MulticastIfV4()
		if err != nil || got != ip {
			return fmt.Errorf("got %v, %v; want %v", got, err, ip)
		}
		if err := s.SetMulticastIfV4(netip.IPv6Loopback()); !errors.Is(err, os.ErrInvalid) {
			return fmt.Errorf("ipv6 interface address: got %v; want %v", err, os.ErrInvalid)
		}
		return nil
	}
	ifi, err := nettest.LoopbackInterface()
	if err != nil {
		return skipf("no loopback interface: %v", err)
	}
	if err := s.SetMulticastIfV6(uint32(ifi.Index)); err != nil {
		return err
	}
	got, err := s.MulticastIfV6()
	if err != nil || got != uint32(ifi.Index) {
		return fmt.Errorf("got %d, %v; want %d", got, err, ifi.Index)
	}
	return nil
}

// multicastInterface returns an interface able to join groups of
// family f.
func multicastInterface(f socket.Family) (*net.Interface, error) {
	network := "ip4"
	if f == socket.Inet6 {
		network = "ip6"
	}
	ifi, err := nettest.RoutedInterface(network, net.FlagUp|net.FlagMulticast)
	if err != nil {
		return nil, skipf("no multicast interface for %s: %v", network, err)
	}
	return ifi, nil
}

func interfaceAddrV4(ifi *net.Interface) (netip.Addr, error) {
	addrs, err := ifi.Addrs()
	if err != nil {
		return netip.Addr{}, err
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if ip, ok := netip.AddrFromSlice(ipn.IP.To4()); ok {
			return ip, nil
		}
	}
	return netip.Addr{}, skipf("%s has no ipv4 address", ifi.Name)
}

func checkMulticastMembership(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	ifi, err := multicastInterface(f)
	if err != nil {
		return err
	}
	if f == socket.Inet {
		ip, err := interfaceAddrV4(ifi)
		if err != nil {
			return err
		}
		if err := s.JoinMulticastV4(groupV4, ip); err != nil {
			return fmt.Errorf("join %v on %v: %v", groupV4, ip, err)
		}
		if err := s.LeaveMulticastV4(groupV4, ip); err != nil {
			return fmt.Errorf("leave %v on %v: %v", groupV4, ip, err)
		}
		if err := s.JoinMulticastV4(groupV6, ip); !errors.Is(err, os.ErrInvalid) {
			return fmt.Errorf("join ipv6 group: got %v; want %v", err, os.ErrInvalid)
		}
		return nil
	}
	if err := s.JoinMulticastV6(groupV6, uint32(ifi.Index)); err != nil {
		return fmt.Errorf("join %v on %s: %v", groupV6, ifi.Name, err)
	}
	if err := s.LeaveMulticastV6(groupV6, uint32(ifi.Index)); err != nil {
		return fmt.Errorf("leave %v on %s: %v", groupV6, ifi.Name, err)
	}
	if err := s.JoinMulticastV6(groupV4, uint32(ifi.Index)); !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("join ipv4 group: got %v; want %v", err, os.ErrInvalid)
	}
	return nil
}
