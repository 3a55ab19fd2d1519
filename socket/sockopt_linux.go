// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"math"
	"time"

	"golang.org/x/sys/unix"
)

type (
	sysTimeout  = unix.Timeval
	sysLinger   = unix.Linger
	sysIPMreq   = unix.IPMreq
	sysIPv6Mreq = unix.IPv6Mreq
)

const (
	maxLingerSeconds = math.MaxInt32

	// maxKeepaliveSeconds is MAX_TCP_KEEPIDLE and MAX_TCP_KEEPINTVL.
	maxKeepaliveSeconds = 32767
)

var sockOpts = [ssoMax]sockOpt{
	ssoTTL:               {unix.IPPROTO_IP, unix.IP_TTL, ssoTypeInt},
	ssoUnicastHopsV6:     {unix.IPPROTO_IPV6, unix.IPV6_UNICAST_HOPS, ssoTypeInt},
	ssoOnlyV6:            {unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, ssoTypeInt},
	ssoReadTimeout:       {unix.SOL_SOCKET, unix.SO_RCVTIMEO, ssoTypeTimeout},
	ssoWriteTimeout:      {unix.SOL_SOCKET, unix.SO_SNDTIMEO, ssoTypeTimeout},
	ssoNoDelay:           {unix.IPPROTO_TCP, unix.TCP_NODELAY, ssoTypeInt},
	ssoBroadcast:         {unix.SOL_SOCKET, unix.SO_BROADCAST, ssoTypeInt},
	ssoReuseAddress:      {unix.SOL_SOCKET, unix.SO_REUSEADDR, ssoTypeInt},
	ssoRecvBuffer:        {unix.SOL_SOCKET, unix.SO_RCVBUF, ssoTypeInt},
	ssoSendBuffer:        {unix.SOL_SOCKET, unix.SO_SNDBUF, ssoTypeInt},
	ssoLinger:            {unix.SOL_SOCKET, unix.SO_LINGER, ssoTypeLinger},
	ssoOOBInline:         {unix.SOL_SOCKET, unix.SO_OOBINLINE, ssoTypeInt},
	ssoError:             {unix.SOL_SOCKET, unix.SO_ERROR, ssoTypeInt},
	ssoType:              {unix.SOL_SOCKET, unix.SO_TYPE, ssoTypeInt},
	ssoKeepalive:         {unix.SOL_SOCKET, unix.SO_KEEPALIVE, ssoTypeInt},
	ssoKeepaliveIdle:     {unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, ssoTypeInt},
	ssoKeepaliveInterval: {unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, ssoTypeInt},
	ssoMulticastTTLV4:    {unix.IPPROTO_IP, unix.IP_MULTICAST_TTL, ssoTypeInt},
	ssoMulticastLoopV4:   {unix.IPPROTO_IP, unix.IP_MULTICAST_LOOP, ssoTypeInt},
	ssoMulticastIfV4:     {unix.IPPROTO_IP, unix.IP_MULTICAST_IF, ssoTypeInAddr},
	ssoJoinGroupV4:       {unix.IPPROTO_IP, unix.IP_ADD_MEMBERSHIP, ssoTypeIPMreq},
	ssoLeaveGroupV4:      {unix.IPPROTO_IP, unix.IP_DROP_MEMBERSHIP, ssoTypeIPMreq},
	ssoMulticastHopsV6:   {unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_HOPS, ssoTypeInt},
	ssoMulticastLoopV6:   {unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_LOOP, ssoTypeInt},
	ssoMulticastIfV6:     {unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_IF, ssoTypeInt},
	ssoJoinGroupV6:       {unix.IPPROTO_IPV6, unix.IPV6_JOIN_GROUP, ssoTypeIPv6Mreq},
	ssoLeaveGroupV6:      {unix.IPPROTO_IPV6, unix.IPV6_LEAVE_GROUP, ssoTypeIPv6Mreq},
}

func timeoutToSys(d OptDuration) (unix.Timeval, error) {
	ms, err := durationToMillis(d)
	if err != nil {
		return unix.Timeval{}, err
	}
	return unix.NsecToTimeval(int64(ms) * int64(time.Millisecond)), nil
}

func timeoutFromSys(tv unix.Timeval) OptDuration {
	d := time.Duration(tv.Nano())
	if d <= 0 {
		return OptDuration{}
	}
	ms, _ := durationToMillis(DurationOf(d))
	return millisToDuration(ms)
}

func lingerToSys(d OptDuration) (unix.Linger, error) {
	dur, ok := d.Get()
	if !ok {
		return unix.Linger{}, nil
	}
	secs, err := durationToSeconds(dur, maxLingerSeconds)
	if err != nil {
		return unix.Linger{}, err
	}
	return unix.Linger{Onoff: 1, Linger: int32(secs)}, nil
}

func lingerFromSys(l unix.Linger) OptDuration {
	if l.Onoff == 0 {
		return OptDuration{}
	}
	return DurationOf(time.Duration(l.Linger) * time.Second)
}

// Linux keeps the keepalive idle time and probe interval as separate
// options in whole seconds.

func sysKeepalive(s *Socket) (OptDuration, error) {
	on, err := getBool(s, &sockOpts[ssoKeepalive])
	if err != nil || !on {
		return OptDuration{}, err
	}
	secs, err := getInt(s, &sockOpts[ssoKeepaliveInterval])
	if err != nil || secs == 0 {
		return OptDuration{}, err
	}
	return DurationOf(time.Duration(secs) * time.Second), nil
}

func sysSetKeepalive(s *Socket, d OptDuration) error {
	if _, ok := d.Get(); !ok {
		return setBool(s, &sockOpts[ssoKeepalive], false)
	}
	ms, err := durationToMillis(d)
	if err != nil {
		return err
	}
	secs := min((int64(ms)+999)/1000, maxKeepaliveSeconds)
	if err := setInt(s, &sockOpts[ssoKeepaliveIdle], int(secs)); err != nil {
		return err
	}
	if err := setInt(s, &sockOpts[ssoKeepaliveInterval], int(secs)); err != nil {
		return err
	}
	return setBool(s, &sockOpts[ssoKeepalive], true)
}
