// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sockettest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sockprim/socket"
)

func checkStreamSendRecv(f socket.Family) error {
	p, err := newStreamPair(f)
	if err != nil {
		return err
	}
	defer p.Close()
	msg := []byte("hello, world")
	if n, err := p.client.Write(msg); err != nil || n != len(msg) {
		return fmt.Errorf("write: got %d, %v; want %d, <nil>", n, err, len(msg))
	}
	b, err := recvFull(p.server, len(msg))
	if err != nil {
		return err
	}
	if !bytes.Equal(b, msg) {
		return fmt.Errorf("got %q; want %q", b, msg)
	}
	return nil
}

// datagramPair returns two bound datagram sockets.
func datagramPair(f socket.Family) (a, b *socket.Socket, aa, ba *socket.Addr, err error) {
	a, aa, err = bound(f, socket.Datagram)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	b, ba, err = bound(f, socket.Datagram)
	if err != nil {
		a.Close()
		return nil, nil, nil, nil, err
	}
	return a, b, aa, ba, nil
}

func checkDatagramSendToRecvFrom(f socket.Family) error {
	a, b, aa, ba, err := datagramPair(f)
	if err != nil {
		return err
	}
	defer a.Close()
	defer b.Close()
	msg := []byte("datagram")
	if n, err := a.SendTo(msg, 0, ba); err != nil || n != len(msg) {
		return fmt.Errorf("sendto: got %d, %v; want %d, <nil>", n, err, len(msg))
	}
	buf := make([]byte, 64)
	n, from, err := b.RecvFrom(buf, 0)
	if err != nil {
		return err
	}
	if !bytes.Equal(buf[:n], msg) {
		return fmt.Errorf("got %q; want %q", buf[:n], msg)
	}
	if from.String() != aa.String() {
		return fmt.Errorf("got sender %v; want %v", from, aa)
	}
	return nil
}

func checkPeek(f socket.Family) error {
	a, b, aa, ba, err := datagramPair(f)
	if err != nil {
		return err
	}
	defer a.Close()
	defer b.Close()
	msg := []byte("peek")
	if _, err := a.SendTo(msg, 0, ba); err != nil {
		return err
	}
	buf := make([]byte, 64)
	n, from, err := b.PeekFrom(buf)
	if err != nil {
		return fmt.Errorf("peekfrom: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) || from.String() != aa.String() {
		return fmt.Errorf("peekfrom: got %q from %v; want %q from %v", buf[:n], from, msg, aa)
	}
	n, err = b.Peek(buf)
	if err != nil || !bytes.Equal(buf[:n], msg) {
		return fmt.Errorf("peek: got %q, %v; want %q", buf[:n], err, msg)
	}
	n, err = b.Recv(buf, 0)
	if err != nil || !bytes.Equal(buf[:n], msg) {
		return fmt.Errorf("recv after peek: got %q, %v; want %q", buf[:n], err, msg)
	}
	return nil
}

func checkVectored(f socket.Family) error {
	a, b, aa, ba, err := datagramPair(f)
	if err != nil {
		return err
	}
	defer a.Close()
	defer b.Close()
	out := [][]byte{[]byte("ab"), []byte("cd"), []byte("ef")}
	if n, err := a.SendToVectored(out, 0, ba); err != nil || n != 6 {
		return fmt.Errorf("sendto: got %d, %v; want 6, <nil>", n, err)
	}
	in := [][]byte{make([]byte, 3), make([]byte, 3), make([]byte, 3)}
	n, rf, from, err := b.RecvFromVectored(in, 0)
	if err != nil {
		return err
	}
	if n != 6 || rf.IsTruncated() {
		return fmt.Errorf("got %d bytes, flags %v; want 6, []", n, rf)
	}
	if got := string(in[0]) + string(in[1]); got != "abcdef" {
		return fmt.Errorf("got %q; want %q", got, "abcdef")
	}
	if from.String() != aa.String() {
		return fmt.Errorf("got sender %v; want %v", from, aa)
	}

	if err := a.Connect(ba); err != nil {
		return err
	}
	if n, err := a.SendVectored(out[:2], 0); err != nil || n != 4 {
		return fmt.Errorf("send: got %d, %v; want 4, <nil>", n, err)
	}
	n, rf, err = b.RecvVectored(in, 0)
	if err != nil || n != 4 || rf.IsTruncated() {
		return fmt.Errorf("recv: got %d, %v, %v; want 4, [], <nil>", n, rf, err)
	}
	return nil
}

func checkTruncation(f socket.Family) error {
	a, b, aa, ba, err := datagramPair(f)
	if err != nil {
		return err
	}
	defer a.Close()
	defer b.Close()
	msg := []byte("0123456789abcdef")
	for i := 0; i < 2; i++ {
		if _, err := a.SendTo(msg, 0, ba); err != nil {
			return err
		}
	}
	in := [][]byte{make([]byte, 4), make([]byte, 4)}
	n, rf, from, err := b.RecvFromVectored(in, 0)
	if err != nil {
		return fmt.Errorf("recvfrom: %v", err)
	}
	if n != 8 || !rf.IsTruncated() {
		return fmt.Errorf("recvfrom: got %d bytes, flags %v; want 8, [truncated]", n, rf)
	}
	if got := string(in[0]) + string(in[1]); got != "01234567" {
		return fmt.Errorf("recvfrom: got %q; want %q", got, "01234567")
	}
	if from.String() != aa.String() {
		return fmt.Errorf("recvfrom: got sender %v; want %v", from, aa)
	}
	n, rf, err = b.RecvVectored(in, 0)
	if err != nil {
		return fmt.Errorf("recv: %v", err)
	}
	if n != 8 || !rf.IsTruncated() {
		return fmt.Errorf("recv: got %d bytes, flags %v; want 8, [truncated]", n, rf)
	}
	return nil
}

func checkShutdownRead(f socket.Family) error {
	p, err := newStreamPair(f)
	if err != nil {
		return err
	}
	defer p.Close()
	if err := p.client.Shutdown(socket.ShutdownRead); err != nil {
		return err
	}
	buf := make([]byte, 16)
	if n, err := p.client.Recv(buf, 0); n != 0 || err != nil {
		return fmt.Errorf("recv: got %d, %v; want 0, <nil>", n, err)
	}
	if n, err := p.client.Peek(buf); n != 0 || err != nil {
		return fmt.Errorf("peek: got %d, %v; want 0, <nil>", n, err)
	}
	if n, _, err := p.client.RecvFrom(buf, 0); n != 0 || err != nil {
		return fmt.Errorf("recvfrom: got %d, %v; want 0, <nil>", n, err)
	}
	if n, _, err := p.client.RecvVectored([][]byte{buf}, 0); n != 0 || err != nil {
		return fmt.Errorf("recv vectored: got %d, %v; want 0, <nil>", n, err)
	}
	if n, _, _, err := p.client.RecvFromVectored([][]byte{buf}, 0); n != 0 || err != nil {
		return fmt.Errorf("recvfrom vectored: got %d, %v; want 0, <nil>", n, err)
	}
	return nil
}

func checkShutdownWrite(f socket.Family) error {
	p, err := newStreamPair(f)
	if err != nil {
		return err
	}
	defer p.Close()
	if err := p.client.Shutdown(socket.ShutdownWrite); err != nil {
		return err
	}
	buf := make([]byte, 16)
	if n, err := p.server.Read(buf); n != 0 || err != io.EOF {
		return fmt.Errorf("read: got %d, %v; want 0, %v", n, err, io.EOF)
	}
	if _, err := p.client.Send([]byte("x"), 0); err == nil {
		return errors.New("send after shutting down the write side succeeded")
	}
	return nil
}

func checkReadTimeoutExpires(f socket.Family) error {
	s, _, err := bound(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	const d = 100 * time.Millisecond
	if err := s.SetReadTimeout(socket.DurationOf(d)); err != nil {
		return err
	}
	start := time.Now()
	_, _, err = s.RecvFrom(make([]byte, 1), 0)
	var serr *os.SyscallError
	if !errors.As(err, &serr) {
		return fmt.Errorf("got %v; want a system error", err)
	}
	if elapsed := time.Since(start); elapsed < d/2 {
		return fmt.Errorf("receive returned after %v; want at least %v", elapsed, d/2)
	}
	return nil
}
