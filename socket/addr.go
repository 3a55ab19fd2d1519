// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strconv"
	"unsafe"
)

// sizeofSockaddrStorage is the size of struct sockaddr_storage on every
// supported host.
const sizeofSockaddrStorage = 128

// sockaddrStorage is aligned for any native socket address structure.
type sockaddrStorage [sizeofSockaddrStorage / 8]uint64

// An Addr represents a socket address in the host's native layout.
//
// Addr values are immutable once constructed. The zero value has
// length 0 and family Unspec.
type Addr struct {
	storage sockaddrStorage
	len     int32
}

// AddrFromAddrPort returns the native socket address of ap.
// IPv4-mapped IPv6 addresses are encoded as Inet6. The IPv6 zone, if
// any, becomes the scope ID: a numeric zone is used as is, otherwise it
// names a network interface. A zone naming no interface becomes scope 0,
// leaving the host to pick the interface; use ResolveAddrPort to reject
// it instead.
func AddrFromAddrPort(ap netip.AddrPort) *Addr {
	ip := ap.Addr()
	switch {
	case ip.Is4():
		var sa sysSockaddrInet4
		sa.Family = sysAF_INET
		putPort((*[2]byte)(unsafe.Pointer(&sa.Port)), ap.Port())
		sa.Addr = toInAddr(ip)
		return addrFromRaw(unsafe.Pointer(&sa), int32(unsafe.Sizeof(sa)))
	case ip.Is6():
		var sa sysSockaddrInet6
		sa.Family = sysAF_INET6
		putPort((*[2]byte)(unsafe.Pointer(&sa.Port)), ap.Port())
		sa.Addr = toIn6Addr(ip)
		sa.Scope_id = zoneToScope(ip.Zone())
		return addrFromRaw(unsafe.Pointer(&sa), int32(unsafe.Sizeof(sa)))
	}
	return &Addr{}
}

// ResolveAddrPort is like AddrFromAddrPort but returns an error wrapping
// os.ErrInvalid if ap holds no IP address or its zone names no network
// interface.
func ResolveAddrPort(ap netip.AddrPort) (*Addr, error) {
	ip := ap.Addr()
	if !ip.IsValid() {
		return nil, fmt.Errorf("invalid address %v: %w", ap, os.ErrInvalid)
	}
	if zone := ip.Zone(); zone != "" {
		if _, ok := lookupZone(zone); !ok {
			return nil, fmt.Errorf("unknown zone %q: %w", zone, os.ErrInvalid)
		}
	}
	return AddrFromAddrPort(ap), nil
}

// addrFromRaw copies the n-byte native address at p. It panics if n
// exceeds the storage of an Addr; that can only happen if the host
// reported a length it was not given room for.
func addrFromRaw(p unsafe.Pointer, n int32) *Addr {
	if n < 0 || n > sizeofSockaddrStorage {
		panic("socket: native address length " + strconv.Itoa(int(n)) + " out of range")
	}
	a := &Addr{len: n}
	if n > 0 {
		copy(a.bytes(), unsafe.Slice((*byte)(p), n))
	}
	return a
}

// sockaddr returns a read-only view of the native address and its
// length, suitable for passing to the host.
func (a *Addr) sockaddr() (unsafe.Pointer, int32) {
	return unsafe.Pointer(&a.storage), a.len
}

func (a *Addr) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&a.storage)), sizeofSockaddrStorage)
}

// Len returns the length of the native address in bytes.
func (a *Addr) Len() int {
	if a == nil {
		return 0
	}
	return int(a.len)
}

// Family returns the address family.
func (a *Addr) Family() Family {
	if a == nil || a.len < 2 {
		return Unspec
	}
	return Family(*(*uint16)(unsafe.Pointer(&a.storage)))
}

// IsIPv4 reports whether a is an Inet address.
func (a *Addr) IsIPv4() bool { return a.Family() == Inet }

// IsIPv6 reports whether a is an Inet6 address.
func (a *Addr) IsIPv6() bool { return a.Family() == Inet6 }

// AddrPort returns the IP address and port of an Inet or Inet6 address.
// The boolean is false for any other family.
func (a *Addr) AddrPort() (netip.AddrPort, bool) {
	switch a.Family() {
	case Inet:
		if a.len < int32(unsafe.Sizeof(sysSockaddrInet4{})) {
			return netip.AddrPort{}, false
		}
		sa := (*sysSockaddrInet4)(unsafe.Pointer(&a.storage))
		return netip.AddrPortFrom(fromInAddr(sa.Addr), getPort((*[2]byte)(unsafe.Pointer(&sa.Port)))), true
	case Inet6:
		if a.len < int32(unsafe.Sizeof(sysSockaddrInet6{})) {
			return netip.AddrPort{}, false
		}
		sa := (*sysSockaddrInet6)(unsafe.Pointer(&a.storage))
		ip := fromIn6Addr(sa.Addr)
		if sa.Scope_id != 0 {
			ip = ip.WithZone(strconv.FormatUint(uint64(sa.Scope_id), 10))
		}
		return netip.AddrPortFrom(ip, getPort((*[2]byte)(unsafe.Pointer(&sa.Port)))), true
	}
	return netip.AddrPort{}, false
}

func (a *Addr) String() string {
	if a == nil {
		return "<nil>"
	}
	if ap, ok := a.AddrPort(); ok {
		return ap.String()
	}
	return "<" + a.Family().String() + " len=" + strconv.Itoa(int(a.len)) + ">"
}

// The port of a native internet address is stored in network byte
// order regardless of the host.

func putPort(b *[2]byte, port uint16) { binary.BigEndian.PutUint16(b[:], port) }

func getPort(b *[2]byte) uint16 { return binary.BigEndian.Uint16(b[:]) }

// in_addr and in6_addr are byte arrays already in network byte order,
// so the conversions below never reorder bytes.

func toInAddr(ip netip.Addr) [4]byte { return ip.As4() }

func fromInAddr(b [4]byte) netip.Addr { return netip.AddrFrom4(b) }

func toIn6Addr(ip netip.Addr) [16]byte { return ip.As16() }

func fromIn6Addr(b [16]byte) netip.Addr { return netip.AddrFrom16(b) }

func zoneToScope(zone string) uint32 {
	id, _ := lookupZone(zone)
	return id
}

func lookupZone(zone string) (uint32, bool) {
	if zone == "" {
		return 0, true
	}
	if n, err := strconv.ParseUint(zone, 10, 32); err == nil {
		return uint32(n), true
	}
	if ifi, err := net.InterfaceByName(zone); err == nil {
		return uint32(ifi.Index), true
	}
	return 0, false
}
