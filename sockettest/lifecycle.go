// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sockettest

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sockprim/socket"
)

func checkCloseTwice(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("first close: %v", err)
	}
	if err := s.Close(); !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("second close: got %v; want %v", err, net.ErrClosed)
	}
	if _, err := s.LocalAddr(); !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("use after close: got %v; want %v", err, net.ErrClosed)
	}
	return nil
}

func checkNilAddress(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Bind(nil); !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("bind: got %v; want %v", err, os.ErrInvalid)
	}
	if _, err := s.SendTo([]byte("x"), 0, nil); !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("sendto: got %v; want %v", err, os.ErrInvalid)
	}
	return nil
}

func checkBindLocalAddr(f socket.Family) error {
	s, a, err := bound(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	if a.Family() != f {
		return fmt.Errorf("got family %v; want %v", a.Family(), f)
	}
	ap, ok := a.AddrPort()
	if !ok {
		return fmt.Errorf("local address %v is not an internet address", a)
	}
	ip, _ := Loopback(f)
	if ap.Addr() != ip || ap.Port() == 0 {
		return fmt.Errorf("got %v; want %v with an ephemeral port", ap, ip)
	}
	return nil
}

func checkPeerAddrUnconnected(f socket.Family) error {
	s, _, err := bound(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	_, err = s.PeerAddr()
	var serr *os.SyscallError
	if !errors.As(err, &serr) {
		return fmt.Errorf("got %v; want a system error", err)
	}
	return nil
}

func checkAcceptPeerAddr(f socket.Family) error {
	p, err := newStreamPair(f)
	if err != nil {
		return err
	}
	defer p.Close()
	cla, err := p.client.LocalAddr()
	if err != nil {
		return err
	}
	if p.accepted.String() != cla.String() {
		return fmt.Errorf("accept: got peer %v; want %v", p.accepted, cla)
	}
	spa, err := p.server.PeerAddr()
	if err != nil {
		return err
	}
	if spa.String() != cla.String() {
		return fmt.Errorf("server peer: got %v; want %v", spa, cla)
	}
	cpa, err := p.client.PeerAddr()
	if err != nil {
		return err
	}
	la, err := p.ln.LocalAddr()
	if err != nil {
		return err
	}
	if cpa.String() != la.String() {
		return fmt.Errorf("client peer: got %v; want %v", cpa, la)
	}
	return nil
}

func checkNonblockingAccept(f socket.Family) error {
	ln, _, err := bound(f, socket.Stream)
	if err != nil {
		return err
	}
	defer ln.Close()
	if err := ln.Listen(1); err != nil {
		return err
	}
	if err := ln.SetNonblocking(true); err != nil {
		return err
	}
	c, _, err := ln.Accept()
	if err == nil {
		c.Close()
		return errors.New("accept on an idle non-blocking listener succeeded")
	}
	var serr *os.SyscallError
	if !errors.As(err, &serr) {
		return fmt.Errorf("got %v; want a system error", err)
	}
	return ln.SetNonblocking(false)
}

func checkDuplicate(f socket.Family) error {
	p, err := newStreamPair(f)
	if err != nil {
		return err
	}
	defer p.Close()
	dup, err := p.client.Duplicate()
	if err != nil {
		return err
	}
	if err := p.client.SetNoDelay(true); err != nil {
		dup.Close()
		return err
	}
	on, err := dup.NoDelay()
	if err != nil || !on {
		dup.Close()
		return fmt.Errorf("option set on the original: got %v, %v through the duplicate", on, err)
	}
	if err := dup.Close(); err != nil {
		return err
	}
	msg := []byte("still open")
	if _, err := p.client.Send(msg, 0); err != nil {
		return fmt.Errorf("send after closing the duplicate: %v", err)
	}
	b, err := recvFull(p.server, len(msg))
	if err != nil {
		return err
	}
	if string(b) != string(msg) {
		return fmt.Errorf("got %q; want %q", b, msg)
	}
	return nil
}

func checkTakeError(f socket.Family) error {
	s, err := open(f, socket.Stream)
	if err != nil {
		return err
	}
	defer s.Close()
	soerr, err := s.TakeError()
	if err != nil {
		return err
	}
	if soerr != nil {
		return fmt.Errorf("fresh socket has pending error %v", soerr)
	}
	return nil
}
