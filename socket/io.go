// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import "net"

// Send writes b to the connected peer and returns the number of bytes
// written.
func (s *Socket) Send(b []byte, flags MsgFlags) (int, error) {
	if !s.ok() {
		return 0, net.ErrClosed
	}
	return sysSend(s.fd, clamp(b), int(flags))
}

// SendTo writes b to the address a.
func (s *Socket) SendTo(b []byte, flags MsgFlags, a *Addr) (int, error) {
	if !s.ok() {
		return 0, net.ErrClosed
	}
	if a == nil {
		return 0, errNoAddr
	}
	return sysSendTo(s.fd, clamp(b), int(flags), a)
}

// Recv reads into b. It returns 0 and no error at end of stream or once
// the read side of s has been shut down.
func (s *Socket) Recv(b []byte, flags MsgFlags) (int, error) {
	if !s.ok() {
		return 0, net.ErrClosed
	}
	return sysRecv(s.fd, clamp(b), int(flags))
}

// RecvFrom is like Recv but also returns the sender's address.
func (s *Socket) RecvFrom(b []byte, flags MsgFlags) (int, *Addr, error) {
	if !s.ok() {
		return 0, nil, net.ErrClosed
	}
	return sysRecvFrom(s.fd, clamp(b), int(flags))
}

// Peek is like Recv but leaves the data queued.
func (s *Socket) Peek(b []byte) (int, error) {
	return s.Recv(b, MsgPeek)
}

// PeekFrom is like RecvFrom but leaves the data queued.
func (s *Socket) PeekFrom(b []byte) (int, *Addr, error) {
	return s.RecvFrom(b, MsgPeek)
}

// SendVectored writes the concatenation of bufs to the connected peer.
func (s *Socket) SendVectored(bufs [][]byte, flags MsgFlags) (int, error) {
	if !s.ok() {
		return 0, net.ErrClosed
	}
	return sysSendmsg(s.fd, clampBuffers(bufs), int(flags), nil)
}

// SendToVectored writes the concatenation of bufs to the address a.
func (s *Socket) SendToVectored(bufs [][]byte, flags MsgFlags, a *Addr) (int, error) {
	if !s.ok() {
		return 0, net.ErrClosed
	}
	if a == nil {
		return 0, errNoAddr
	}
	return sysSendmsg(s.fd, clampBuffers(bufs), int(flags), a)
}

// RecvVectored reads into bufs in order. A datagram larger than the
// combined buffers is reported through RecvFlags.IsTruncated rather
// than as an error.
func (s *Socket) RecvVectored(bufs [][]byte, flags MsgFlags) (int, RecvFlags, error) {
	if !s.ok() {
		return 0, 0, net.ErrClosed
	}
	n, rf, _, err := sysRecvmsg(s.fd, clampBuffers(bufs), int(flags), false)
	return n, rf, err
}

// RecvFromVectored is like RecvVectored but also returns the sender's
// address.
func (s *Socket) RecvFromVectored(bufs [][]byte, flags MsgFlags) (int, RecvFlags, *Addr, error) {
	if !s.ok() {
		return 0, 0, nil, net.ErrClosed
	}
	return sysRecvmsg(s.fd, clampBuffers(bufs), int(flags), true)
}

// clamp limits b to the largest transfer the host performs in one call.
func clamp(b []byte) []byte {
	if len(b) > maxRW {
		return b[:maxRW]
	}
	return b
}

func clampBuffers(bufs [][]byte) [][]byte {
	if len(bufs) > maxIovecs {
		return bufs[:maxIovecs]
	}
	return bufs
}
