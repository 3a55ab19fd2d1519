// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"fmt"
	"math"
	"net"
	"os"
	"unsafe"
)

var errBufferSize = fmt.Errorf("buffer size out of range: %w", os.ErrInvalid)

// Socket option codes. The per-OS sockOpts tables map each code to a
// level, a name and a payload type.
const (
	ssoTTL = iota
	ssoUnicastHopsV6
	ssoOnlyV6
	ssoReadTimeout
	ssoWriteTimeout
	ssoNoDelay
	ssoBroadcast
	ssoReuseAddress
	ssoRecvBuffer
	ssoSendBuffer
	ssoLinger
	ssoOOBInline
	ssoError
	ssoType
	ssoKeepalive
	ssoKeepaliveIdle
	ssoKeepaliveInterval
	ssoMulticastTTLV4
	ssoMulticastLoopV4
	ssoMulticastIfV4
	ssoJoinGroupV4
	ssoLeaveGroupV4
	ssoMulticastHopsV6
	ssoMulticastLoopV6
	ssoMulticastIfV6
	ssoJoinGroupV6
	ssoLeaveGroupV6
	ssoMax
)

// Socket option payload types.
const (
	ssoTypeInt = iota + 1
	ssoTypeByte
	ssoTypeInAddr
	ssoTypeIPMreq
	ssoTypeIPv6Mreq
	ssoTypeTimeout
	ssoTypeLinger
)

// A sockOpt represents a binding for socket option.
type sockOpt struct {
	level int // option level
	name  int // option name, must be equal or greater than 1
	typ   int // option payload type
}

// getsockopt reads an option whose payload is a T. The host must report
// exactly the size of T; anything else means the option table and the
// host disagree and getsockopt panics.
func getsockopt[T any](s *Socket, o *sockOpt) (T, error) {
	var v T
	if !s.ok() {
		return v, net.ErrClosed
	}
	if o.name < 1 {
		return v, errOpNoSupport
	}
	size := uint32(unsafe.Sizeof(v))
	l := size
	if err := sysGetsockopt(s.fd, o.level, o.name, unsafe.Pointer(&v), &l); err != nil {
		return v, os.NewSyscallError("getsockopt", err)
	}
	if l != size {
		panic(fmt.Sprintf("socket: getsockopt(%d, %d) returned %d bytes, want %d", o.level, o.name, l, size))
	}
	return v, nil
}

// setsockopt writes an option whose payload is a T.
func setsockopt[T any](s *Socket, o *sockOpt, v T) error {
	if !s.ok() {
		return net.ErrClosed
	}
	if o.name < 1 {
		return errOpNoSupport
	}
	return os.NewSyscallError("setsockopt", sysSetsockopt(s.fd, o.level, o.name, unsafe.Pointer(&v), uint32(unsafe.Sizeof(v))))
}

func getInt(s *Socket, o *sockOpt) (int, error) {
	v, err := getsockopt[int32](s, o)
	return int(v), err
}

func setInt(s *Socket, o *sockOpt, v int) error {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("option value %d out of range: %w", v, os.ErrInvalid)
	}
	return setsockopt(s, o, int32(v))
}

func getBool(s *Socket, o *sockOpt) (bool, error) {
	if o.typ == ssoTypeByte {
		v, err := getsockopt[byte](s, o)
		return v != 0, err
	}
	v, err := getsockopt[int32](s, o)
	return v != 0, err
}

func setBool(s *Socket, o *sockOpt, on bool) error {
	if o.typ == ssoTypeByte {
		return setsockopt(s, o, byte(boolint(on)))
	}
	return setsockopt(s, o, int32(boolint(on)))
}

// TTL returns the time-to-live field of outgoing IPv4 packets.
func (s *Socket) TTL() (int, error) { return getInt(s, &sockOpts[ssoTTL]) }

// SetTTL sets the time-to-live field of outgoing IPv4 packets.
func (s *Socket) SetTTL(ttl int) error { return setInt(s, &sockOpts[ssoTTL], ttl) }

// UnicastHopsV6 returns the hop limit of outgoing unicast IPv6 packets.
func (s *Socket) UnicastHopsV6() (int, error) { return getInt(s, &sockOpts[ssoUnicastHopsV6]) }

// SetUnicastHopsV6 sets the hop limit of outgoing unicast IPv6 packets.
func (s *Socket) SetUnicastHopsV6(hops int) error {
	return setInt(s, &sockOpts[ssoUnicastHopsV6], hops)
}

// OnlyV6 reports whether an Inet6 socket is restricted to IPv6
// communication.
func (s *Socket) OnlyV6() (bool, error) { return getBool(s, &sockOpts[ssoOnlyV6]) }

func (s *Socket) SetOnlyV6(on bool) error { return setBool(s, &sockOpts[ssoOnlyV6], on) }

// ReadTimeout returns the receive timeout. A disabled timeout means
// receives block indefinitely.
func (s *Socket) ReadTimeout() (OptDuration, error) {
	return getTimeout(s, &sockOpts[ssoReadTimeout])
}

// SetReadTimeout sets the receive timeout. Durations are rounded up to
// whole milliseconds; one that is zero after rounding is rejected.
func (s *Socket) SetReadTimeout(d OptDuration) error {
	return setTimeout(s, &sockOpts[ssoReadTimeout], d)
}

// WriteTimeout returns the send timeout.
func (s *Socket) WriteTimeout() (OptDuration, error) {
	return getTimeout(s, &sockOpts[ssoWriteTimeout])
}

// SetWriteTimeout sets the send timeout, with the same rules as
// SetReadTimeout.
func (s *Socket) SetWriteTimeout(d OptDuration) error {
	return setTimeout(s, &sockOpts[ssoWriteTimeout], d)
}

func getTimeout(s *Socket, o *sockOpt) (OptDuration, error) {
	v, err := getsockopt[sysTimeout](s, o)
	if err != nil {
		return OptDuration{}, err
	}
	return timeoutFromSys(v), nil
}

func setTimeout(s *Socket, o *sockOpt, d OptDuration) error {
	v, err := timeoutToSys(d)
	if err != nil {
		return err
	}
	return setsockopt(s, o, v)
}

// NoDelay reports whether Nagle's algorithm is disabled on a TCP
// socket.
func (s *Socket) NoDelay() (bool, error) { return getBool(s, &sockOpts[ssoNoDelay]) }

func (s *Socket) SetNoDelay(on bool) error { return setBool(s, &sockOpts[ssoNoDelay], on) }

// Broadcast reports whether sending to broadcast addresses is allowed.
func (s *Socket) Broadcast() (bool, error) { return getBool(s, &sockOpts[ssoBroadcast]) }

func (s *Socket) SetBroadcast(on bool) error { return setBool(s, &sockOpts[ssoBroadcast], on) }

// ReuseAddress reports whether SO_REUSEADDR is set.
func (s *Socket) ReuseAddress() (bool, error) { return getBool(s, &sockOpts[ssoReuseAddress]) }

func (s *Socket) SetReuseAddress(on bool) error {
	return setBool(s, &sockOpts[ssoReuseAddress], on)
}

// RecvBufferSize returns the size of the receive buffer as reported by
// the host, which may differ from the size last set.
func (s *Socket) RecvBufferSize() (int, error) { return getInt(s, &sockOpts[ssoRecvBuffer]) }

func (s *Socket) SetRecvBufferSize(size int) error {
	if size < 0 || size > math.MaxInt32 {
		return errBufferSize
	}
	return setInt(s, &sockOpts[ssoRecvBuffer], size)
}

// SendBufferSize returns the size of the send buffer as reported by the
// host.
func (s *Socket) SendBufferSize() (int, error) { return getInt(s, &sockOpts[ssoSendBuffer]) }

func (s *Socket) SetSendBufferSize(size int) error {
	if size < 0 || size > math.MaxInt32 {
		return errBufferSize
	}
	return setInt(s, &sockOpts[ssoSendBuffer], size)
}

// Linger returns the linger timeout applied by Close, in whole seconds.
func (s *Socket) Linger() (OptDuration, error) {
	v, err := getsockopt[sysLinger](s, &sockOpts[ssoLinger])
	if err != nil {
		return OptDuration{}, err
	}
	return lingerFromSys(v), nil
}

// SetLinger sets the linger timeout. The duration is truncated to whole
// seconds and saturated at the largest value the host can represent.
// DurationOf(0) makes Close reset the connection.
func (s *Socket) SetLinger(d OptDuration) error {
	v, err := lingerToSys(d)
	if err != nil {
		return err
	}
	return setsockopt(s, &sockOpts[ssoLinger], v)
}

// OutOfBandInline reports whether out-of-band data is placed in the
// normal data stream.
func (s *Socket) OutOfBandInline() (bool, error) { return getBool(s, &sockOpts[ssoOOBInline]) }

func (s *Socket) SetOutOfBandInline(on bool) error {
	return setBool(s, &sockOpts[ssoOOBInline], on)
}

// Keepalive returns the TCP keepalive interval, or a disabled
// OptDuration if keepalive is off. On Linux the value is in whole
// seconds.
func (s *Socket) Keepalive() (OptDuration, error) {
	if !s.ok() {
		return OptDuration{}, net.ErrClosed
	}
	return sysKeepalive(s)
}

// SetKeepalive enables TCP keepalive probes with d as both the idle time
// and the probe interval, or disables them. Linux keeps whole seconds:
// d is rounded up to the next second, so 1500ms reads back as 2s.
func (s *Socket) SetKeepalive(d OptDuration) error {
	if !s.ok() {
		return net.ErrClosed
	}
	return sysSetKeepalive(s, d)
}
