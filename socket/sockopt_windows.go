// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"math"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	sysSOL_SOCKET = 0xffff

	sysSO_REUSEADDR = 0x4
	sysSO_KEEPALIVE = 0x8
	sysSO_BROADCAST = 0x20
	sysSO_LINGER    = 0x80
	sysSO_OOBINLINE = 0x100
	sysSO_SNDBUF    = 0x1001
	sysSO_RCVBUF    = 0x1002
	sysSO_SNDTIMEO  = 0x1005
	sysSO_RCVTIMEO  = 0x1006
	sysSO_ERROR     = 0x1007
	sysSO_TYPE      = 0x1008

	sysTCP_NODELAY = 0x1

	sysIP_TTL             = 0x4
	sysIP_MULTICAST_IF    = 0x9
	sysIP_MULTICAST_TTL   = 0xa
	sysIP_MULTICAST_LOOP  = 0xb
	sysIP_ADD_MEMBERSHIP  = 0xc
	sysIP_DROP_MEMBERSHIP = 0xd

	sysIPV6_UNICAST_HOPS   = 0x4
	sysIPV6_MULTICAST_IF   = 0x9
	sysIPV6_MULTICAST_HOPS = 0xa
	sysIPV6_MULTICAST_LOOP = 0xb
	sysIPV6_JOIN_GROUP     = 0xc
	sysIPV6_LEAVE_GROUP    = 0xd
	sysIPV6_V6ONLY         = 0x1b

	sysSIO_KEEPALIVE_VALS = 0x98000004

	maxLingerSeconds = math.MaxUint16
)

// Winsock reports timeouts as a DWORD of milliseconds.
type sysTimeout = uint32

type sysLinger struct {
	Onoff  uint16
	Linger uint16
}

type sysIPMreq struct {
	Multiaddr [4]byte /* in_addr */
	Interface [4]byte /* in_addr */
}

type sysIPv6Mreq struct {
	Multiaddr [16]byte /* in6_addr */
	Interface uint32
}

type sysTCPKeepalive struct {
	OnOff    uint32
	Time     uint32
	Interval uint32
}

var sockOpts = [ssoMax]sockOpt{
	ssoTTL:             {sysIPPROTO_IP, sysIP_TTL, ssoTypeInt},
	ssoUnicastHopsV6:   {sysIPPROTO_IPV6, sysIPV6_UNICAST_HOPS, ssoTypeInt},
	ssoOnlyV6:          {sysIPPROTO_IPV6, sysIPV6_V6ONLY, ssoTypeInt},
	ssoReadTimeout:     {sysSOL_SOCKET, sysSO_RCVTIMEO, ssoTypeTimeout},
	ssoWriteTimeout:    {sysSOL_SOCKET, sysSO_SNDTIMEO, ssoTypeTimeout},
	ssoNoDelay:         {sysIPPROTO_TCP, sysTCP_NODELAY, ssoTypeByte},
	ssoBroadcast:       {sysSOL_SOCKET, sysSO_BROADCAST, ssoTypeInt},
	ssoReuseAddress:    {sysSOL_SOCKET, sysSO_REUSEADDR, ssoTypeInt},
	ssoRecvBuffer:      {sysSOL_SOCKET, sysSO_RCVBUF, ssoTypeInt},
	ssoSendBuffer:      {sysSOL_SOCKET, sysSO_SNDBUF, ssoTypeInt},
	ssoLinger:          {sysSOL_SOCKET, sysSO_LINGER, ssoTypeLinger},
	ssoOOBInline:       {sysSOL_SOCKET, sysSO_OOBINLINE, ssoTypeInt},
	ssoError:           {sysSOL_SOCKET, sysSO_ERROR, ssoTypeInt},
	ssoType:            {sysSOL_SOCKET, sysSO_TYPE, ssoTypeInt},
	ssoKeepalive:       {sysSOL_SOCKET, sysSO_KEEPALIVE, ssoTypeInt},
	ssoMulticastTTLV4:  {sysIPPROTO_IP, sysIP_MULTICAST_TTL, ssoTypeInt},
	ssoMulticastLoopV4: {sysIPPROTO_IP, sysIP_MULTICAST_LOOP, ssoTypeInt},
	ssoMulticastIfV4:   {sysIPPROTO_IP, sysIP_MULTICAST_IF, ssoTypeInAddr},
	ssoJoinGroupV4:     {sysIPPROTO_IP, sysIP_ADD_MEMBERSHIP, ssoTypeIPMreq},
	ssoLeaveGroupV4:    {sysIPPROTO_IP, sysIP_DROP_MEMBERSHIP, ssoTypeIPMreq},
	ssoMulticastHopsV6: {sysIPPROTO_IPV6, sysIPV6_MULTICAST_HOPS, ssoTypeInt},
	ssoMulticastLoopV6: {sysIPPROTO_IPV6, sysIPV6_MULTICAST_LOOP, ssoTypeInt},
	ssoMulticastIfV6:   {sysIPPROTO_IPV6, sysIPV6_MULTICAST_IF, ssoTypeInt},
	ssoJoinGroupV6:     {sysIPPROTO_IPV6, sysIPV6_JOIN_GROUP, ssoTypeIPv6Mreq},
	ssoLeaveGroupV6:    {sysIPPROTO_IPV6, sysIPV6_LEAVE_GROUP, ssoTypeIPv6Mreq},
}

func timeoutToSys(d OptDuration) (uint32, error) {
	return durationToMillis(d)
}

func timeoutFromSys(ms uint32) OptDuration {
	return millisToDuration(ms)
}

func lingerToSys(d OptDuration) (sysLinger, error) {
	dur, ok := d.Get()
	if !ok {
		return sysLinger{}, nil
	}
	secs, err := durationToSeconds(dur, maxLingerSeconds)
	if err != nil {
		return sysLinger{}, err
	}
	return sysLinger{Onoff: 1, Linger: uint16(secs)}, nil
}

func lingerFromSys(l sysLinger) OptDuration {
	if l.Onoff == 0 {
		return OptDuration{}
	}
	return DurationOf(time.Duration(l.Linger) * time.Second)
}

// Winsock sets the keepalive idle time and probe interval together, in
// milliseconds, through SIO_KEEPALIVE_VALS.

func sysKeepalive(s *Socket) (OptDuration, error) {
	var (
		ka sysTCPKeepalive
		n  uint32
	)
	if err := windows.WSAIoctl(s.fd, sysSIO_KEEPALIVE_VALS, nil, 0, (*byte)(unsafe.Pointer(&ka)), uint32(unsafe.Sizeof(ka)), &n, nil, 0); err != nil {
		return OptDuration{}, os.NewSyscallError("wsaioctl", err)
	}
	if ka.OnOff == 0 || ka.Interval == 0 {
		return OptDuration{}, nil
	}
	return millisToDuration(ka.Interval), nil
}

func sysSetKeepalive(s *Socket, d OptDuration) error {
	ms, err := durationToMillis(d)
	if err != nil {
		return err
	}
	ka := sysTCPKeepalive{Time: ms, Interval: ms}
	if _, ok := d.Get(); ok {
		ka.OnOff = 1
	}
	var n uint32
	return os.NewSyscallError("wsaioctl", windows.WSAIoctl(s.fd, sysSIO_KEEPALIVE_VALS, (*byte)(unsafe.Pointer(&ka)), uint32(unsafe.Sizeof(ka)), nil, 0, &n, nil, 0))
}
