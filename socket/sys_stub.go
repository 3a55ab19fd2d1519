// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !windows

package socket

import (
	"math"
	"time"
	"unsafe"
)

type sysSocket = int

const invalidSocket sysSocket = -1

type sysSockaddrInet4 struct {
	Family uint16
	Port   uint16
	Addr   [4]byte /* in_addr */
	Zero   [8]uint8
}

type sysSockaddrInet6 struct {
	Family   uint16
	Port     uint16
	Flowinfo uint32
	Addr     [16]byte /* in6_addr */
	Scope_id uint32
}

type sysTimeout = uint32

type sysLinger struct {
	Onoff  int32
	Linger int32
}

type sysIPMreq struct {
	Multiaddr [4]byte /* in_addr */
	Interface [4]byte /* in_addr */
}

type sysIPv6Mreq struct {
	Multiaddr [16]byte /* in6_addr */
	Interface uint32
}

const (
	sysAF_UNSPEC = 0x0
	sysAF_UNIX   = 0x1
	sysAF_INET   = 0x2
	sysAF_INET6  = 0xa

	sysSOCK_STREAM    = 0x1
	sysSOCK_DGRAM     = 0x2
	sysSOCK_RAW       = 0x3
	sysSOCK_SEQPACKET = 0x5

	sysIPPROTO_ICMP   = 0x1
	sysIPPROTO_TCP    = 0x6
	sysIPPROTO_UDP    = 0x11
	sysIPPROTO_ICMPV6 = 0x3a

	sysMSG_OOB   = 0x1
	sysMSG_PEEK  = 0x2
	sysMSG_TRUNC = 0x20

	maxRW            = math.MaxInt32
	maxIovecs        = 1024
	maxLingerSeconds = math.MaxInt32
)

var sockOpts [ssoMax]sockOpt

func sysInit() error { return nil }

func sysOpen(family, typ, proto int) (sysSocket, error) { return invalidSocket, errOpNoSupport }

func sysBind(s sysSocket, a *Addr) error { return errOpNoSupport }

func sysConnect(s sysSocket, a *Addr) error { return errOpNoSupport }

func sysListen(s sysSocket, backlog int) error { return errOpNoSupport }

func sysAccept(s sysSocket) (sysSocket, *Addr, error) { return invalidSocket, nil, errOpNoSupport }

func sysGetsockname(s sysSocket) (*Addr, error) { return nil, errOpNoSupport }

func sysGetpeername(s sysSocket) (*Addr, error) { return nil, errOpNoSupport }

func sysDuplicate(s sysSocket) (sysSocket, error) { return invalidSocket, errOpNoSupport }

func sysSetNonblock(s sysSocket, on bool) error { return errOpNoSupport }

func sysShutdown(s sysSocket, how Shutdown) error { return errOpNoSupport }

func sysClose(s sysSocket) {}

func sysGetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l *uint32) error {
	return errOpNoSupport
}

func sysSetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l uint32) error {
	return errOpNoSupport
}

func sysRecv(s sysSocket, b []byte, flags int) (int, error) { return 0, errOpNoSupport }

func sysRecvFrom(s sysSocket, b []byte, flags int) (int, *Addr, error) {
	return 0, nil, errOpNoSupport
}

func sysSend(s sysSocket, b []byte, flags int) (int, error) { return 0, errOpNoSupport }

func sysSendTo(s sysSocket, b []byte, flags int, a *Addr) (int, error) {
	return 0, errOpNoSupport
}

func sysRecvmsg(s sysSocket, bufs [][]byte, flags int, from bool) (int, RecvFlags, *Addr, error) {
	return 0, 0, nil, errOpNoSupport
}

func sysSendmsg(s sysSocket, bufs [][]byte, flags int, a *Addr) (int, error) {
	return 0, errOpNoSupport
}

func timeoutToSys(d OptDuration) (uint32, error) { return durationToMillis(d) }

func timeoutFromSys(ms uint32) OptDuration { return millisToDuration(ms) }

func lingerToSys(d OptDuration) (sysLinger, error) {
	dur, ok := d.Get()
	if !ok {
		return sysLinger{}, nil
	}
	secs, err := durationToSeconds(dur, maxLingerSeconds)
	if err != nil {
		return sysLinger{}, err
	}
	return sysLinger{Onoff: 1, Linger: int32(secs)}, nil
}

func lingerFromSys(l sysLinger) OptDuration {
	if l.Onoff == 0 {
		return OptDuration{}
	}
	return DurationOf(time.Duration(l.Linger) * time.Second)
}

func sysKeepalive(s *Socket) (OptDuration, error) { return OptDuration{}, errOpNoSupport }

func sysSetKeepalive(s *Socket, d OptDuration) error { return errOpNoSupport }
