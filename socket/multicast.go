// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"fmt"
	"net/netip"
	"os"
)

var (
	errInvalidGroupV4 = fmt.Errorf("invalid IPv4 multicast group: %w", os.ErrInvalid)
	errInvalidGroupV6 = fmt.Errorf("invalid IPv6 multicast group: %w", os.ErrInvalid)
	errInvalidIfV4    = fmt.Errorf("invalid IPv4 interface address: %w", os.ErrInvalid)
)

// JoinMulticastV4 joins the IPv4 multicast group on the interface
// identified by its address. The unspecified address lets the host pick
// the interface.
func (s *Socket) JoinMulticastV4(group, iface netip.Addr) error {
	mreq, err := newIPMreq(group, iface)
	if err != nil {
		return err
	}
	return setsockopt(s, &sockOpts[ssoJoinGroupV4], mreq)
}

// LeaveMulticastV4 leaves a group joined by JoinMulticastV4.
func (s *Socket) LeaveMulticastV4(group, iface netip.Addr) error {
	mreq, err := newIPMreq(group, iface)
	if err != nil {
		return err
	}
	return setsockopt(s, &sockOpts[ssoLeaveGroupV4], mreq)
}

// JoinMulticastV6 joins the IPv6 multicast group on the interface with
// index ifindex. Index 0 lets the host pick the interface.
func (s *Socket) JoinMulticastV6(group netip.Addr, ifindex uint32) error {
	mreq, err := newIPv6Mreq(group, ifindex)
	if err != nil {
		return err
	}
	return setsockopt(s, &sockOpts[ssoJoinGroupV6], mreq)
}

// LeaveMulticastV6 leaves a group joined by JoinMulticastV6.
func (s *Socket) LeaveMulticastV6(group netip.Addr, ifindex uint32) error {
	mreq, err := newIPv6Mreq(group, ifindex)
	if err != nil {
		return err
	}
	return setsockopt(s, &sockOpts[ssoLeaveGroupV6], mreq)
}

func newIPMreq(group, iface netip.Addr) (sysIPMreq, error) {
	group, iface = group.Unmap(), iface.Unmap()
	if !group.Is4() {
		return sysIPMreq{}, errInvalidGroupV4
	}
	if !iface.Is4() {
		return sysIPMreq{}, errInvalidIfV4
	}
	return sysIPMreq{Multiaddr: toInAddr(group), Interface: toInAddr(iface)}, nil
}

func newIPv6Mreq(group netip.Addr, ifindex uint32) (sysIPv6Mreq, error) {
	if !group.Is6() {
		return sysIPv6Mreq{}, errInvalidGroupV6
	}
	return sysIPv6Mreq{Multiaddr: toIn6Addr(group), Interface: ifindex}, nil
}

// MulticastTTLV4 returns the time-to-live of outgoing IPv4 multicast
// packets.
func (s *Socket) MulticastTTLV4() (int, error) { return getInt(s, &sockOpts[ssoMulticastTTLV4]) }

func (s *Socket) SetMulticastTTLV4(ttl int) error {
	return setInt(s, &sockOpts[ssoMulticastTTLV4], ttl)
}

// MulticastLoopV4 reports whether outgoing IPv4 multicast packets are
// looped back to local sockets.
func (s *Socket) MulticastLoopV4() (bool, error) {
	return getBool(s, &sockOpts[ssoMulticastLoopV4])
}

func (s *Socket) SetMulticastLoopV4(on bool) error {
	return setBool(s, &sockOpts[ssoMulticastLoopV4], on)
}

// MulticastIfV4 returns the address of the interface used for outgoing
// IPv4 multicast packets. The unspecified address means the host's
// default.
func (s *Socket) MulticastIfV4() (netip.Addr, error) {
	v, err := getsockopt[[4]byte](s, &sockOpts[ssoMulticastIfV4])
	if err != nil {
		return netip.Addr{}, err
	}
	return fromInAddr(v), nil
}

func (s *Socket) SetMulticastIfV4(iface netip.Addr) error {
	iface = iface.Unmap()
	if !iface.Is4() {
		return errInvalidIfV4
	}
	return setsockopt(s, &sockOpts[ssoMulticastIfV4], toInAddr(iface))
}

// MulticastHopsV6 returns the hop limit of outgoing IPv6 multicast
// packets.
func (s *Socket) MulticastHopsV6() (int, error) { return getInt(s, &sockOpts[ssoMulticastHopsV6]) }

func (s *Socket) SetMulticastHopsV6(hops int) error {
	return setInt(s, &sockOpts[ssoMulticastHopsV6], hops)
}

// MulticastLoopV6 reports whether outgoing IPv6 multicast packets are
// looped back to local sockets.
func (s *Socket) MulticastLoopV6() (bool, error) {
	return getBool(s, &sockOpts[ssoMulticastLoopV6])
}

func (s *Socket) SetMulticastLoopV6(on bool) error {
	return setBool(s, &sockOpts[ssoMulticastLoopV6], on)
}

// MulticastIfV6 returns the index of the interface used for outgoing
// IPv6 multicast packets. Index 0 means the host's default.
func (s *Socket) MulticastIfV6() (uint32, error) {
	return getsockopt[uint32](s, &sockOpts[ssoMulticastIfV6])
}

func (s *Socket) SetMulticastIfV6(ifindex uint32) error {
	return setsockopt(s, &sockOpts[ssoMulticastIfV6], ifindex)
}
