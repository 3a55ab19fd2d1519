// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"errors"
	"net/netip"
	"os"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

var addrPortTests = []struct {
	in     string
	family Family
	len    int
}{
	{"127.0.0.1:80", Inet, int(unsafe.Sizeof(sysSockaddrInet4{}))},
	{"0.0.0.0:0", Inet, int(unsafe.Sizeof(sysSockaddrInet4{}))},
	{"255.255.255.255:65535", Inet, int(unsafe.Sizeof(sysSockaddrInet4{}))},
	{"[::1]:443", Inet6, int(unsafe.Sizeof(sysSockaddrInet6{}))},
	{"[::]:0", Inet6, int(unsafe.Sizeof(sysSockaddrInet6{}))},
	{"[::ffff:192.0.2.1]:53", Inet6, int(unsafe.Sizeof(sysSockaddrInet6{}))},
	{"[fe80::1%3]:8080", Inet6, int(unsafe.Sizeof(sysSockaddrInet6{}))},
	{"[2001:db8::dead:beef]:1", Inet6, int(unsafe.Sizeof(sysSockaddrInet6{}))},
}

func TestAddrFromAddrPort(t *testing.T) {
	for _, tt := range addrPortTests {
		want := netip.MustParseAddrPort(tt.in)
		a := AddrFromAddrPort(want)
		if a.Family() != tt.family {
			t.Errorf("%s: got family %v; want %v", tt.in, a.Family(), tt.family)
		}
		if a.Len() != tt.len {
			t.Errorf("%s: got len %d; want %d", tt.in, a.Len(), tt.len)
		}
		got, ok := a.AddrPort()
		if !ok || got != want {
			t.Errorf("%s: got %v, %v; want %v, true", tt.in, got, ok, want)
		}
		if a.String() != want.String() {
			t.Errorf("got %q; want %q", a.String(), want.String())
		}
	}
}

func TestAddrNetworkByteOrder(t *testing.T) {
	a := AddrFromAddrPort(netip.MustParseAddrPort("192.0.2.1:258"))
	sa := (*sysSockaddrInet4)(unsafe.Pointer(&a.storage))
	port := *(*[2]byte)(unsafe.Pointer(&sa.Port))
	if diff := cmp.Diff([2]byte{0x01, 0x02}, port); diff != "" {
		t.Errorf("port bytes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([4]byte{192, 0, 2, 1}, sa.Addr); diff != "" {
		t.Errorf("address bytes (-want +got):\n%s", diff)
	}

	a = AddrFromAddrPort(netip.MustParseAddrPort("[2001:db8::1]:258"))
	sa6 := (*sysSockaddrInet6)(unsafe.Pointer(&a.storage))
	want := [16]byte{0x20, 0x01, 0x0d, 0xb8, 15: 0x01}
	if diff := cmp.Diff(want, sa6.Addr); diff != "" {
		t.Errorf("address bytes (-want +got):\n%s", diff)
	}
}

func TestInAddrRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0.0", "127.0.0.1", "10.1.2.3", "224.0.0.251", "255.255.255.255"} {
		ip := netip.MustParseAddr(s)
		if got := fromInAddr(toInAddr(ip)); got != ip {
			t.Errorf("got %v; want %v", got, ip)
		}
	}
	for _, s := range []string{"::", "::1", "ff02::fb", "2001:db8::1", "::ffff:10.0.0.1"} {
		ip := netip.MustParseAddr(s)
		if got := fromIn6Addr(toIn6Addr(ip)); got != ip {
			t.Errorf("got %v; want %v", got, ip)
		}
	}
}

func TestAddrFromRaw(t *testing.T) {
	src := AddrFromAddrPort(netip.MustParseAddrPort("198.51.100.7:9"))
	p, n := src.sockaddr()
	a := addrFromRaw(p, n)
	if diff := cmp.Diff(src.bytes()[:n], a.bytes()[:a.len]); diff != "" {
		t.Errorf("copied bytes (-want +got):\n%s", diff)
	}
	for _, b := range a.bytes()[a.len:] {
		if b != 0 {
			t.Fatalf("bytes past the address length are not zero: % x", a.bytes())
		}
	}

	z := addrFromRaw(nil, 0)
	if z.Family() != Unspec || z.Len() != 0 {
		t.Errorf("got %v, %d; want unspec, 0", z.Family(), z.Len())
	}
	if _, ok := z.AddrPort(); ok {
		t.Error("empty address decoded as an internet address")
	}
}

func TestAddrFromRawTooLong(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("addrFromRaw did not panic")
		}
	}()
	var b [sizeofSockaddrStorage + 8]byte
	addrFromRaw(unsafe.Pointer(&b), int32(len(b)))
}

func TestAddrShortInternetAddress(t *testing.T) {
	a := AddrFromAddrPort(netip.MustParseAddrPort("[::1]:1"))
	short := addrFromRaw(unsafe.Pointer(&a.storage), 8)
	if short.Family() != Inet6 {
		t.Fatalf("got %v; want inet6", short.Family())
	}
	if _, ok := short.AddrPort(); ok {
		t.Error("truncated address decoded")
	}
}

func TestAddrInvalid(t *testing.T) {
	a := AddrFromAddrPort(netip.AddrPort{})
	if a.Family() != Unspec || a.Len() != 0 {
		t.Errorf("got %v, %d; want unspec, 0", a.Family(), a.Len())
	}
	var nilAddr *Addr
	if nilAddr.String() != "<nil>" || nilAddr.Family() != Unspec {
		t.Errorf("got %q, %v", nilAddr.String(), nilAddr.Family())
	}
}

func TestResolveAddrPort(t *testing.T) {
	for _, in := range []string{"127.0.0.1:80", "[fe80::1%3]:80", "[::1]:0"} {
		ap := netip.MustParseAddrPort(in)
		a, err := ResolveAddrPort(ap)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if got, _ := a.AddrPort(); got != ap {
			t.Errorf("%s: got %v", in, got)
		}
	}

	unknown := netip.MustParseAddrPort("[fe80::1%nosuchif0]:80")
	if _, err := ResolveAddrPort(unknown); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("unknown zone: got %v; want os.ErrInvalid", err)
	}
	if got, _ := AddrFromAddrPort(unknown).AddrPort(); got.Addr().Zone() != "" {
		t.Errorf("unknown zone: got %v; want scope 0", got)
	}
	if _, err := ResolveAddrPort(netip.AddrPort{}); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("invalid address: got %v; want os.ErrInvalid", err)
	}
}
