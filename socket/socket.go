// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
)

// initSubsystem prepares the host's socket subsystem. It runs once per
// process, before the first socket is created.
var initSubsystem = sync.OnceValue(sysInit)

// A Socket represents an open socket descriptor.
//
// A Socket releases its descriptor exactly once, on Close. Sockets may
// be used from multiple goroutines; the package adds no
// synchronization around the underlying system calls.
type Socket struct {
	fd     sysSocket
	closed atomic.Bool
}

func newSocket(fd sysSocket) *Socket { return &Socket{fd: fd} }

func (s *Socket) ok() bool { return s != nil && !s.closed.Load() }

// Open creates a new socket. Inheritance of the descriptor by child
// processes is suppressed where the host supports doing so atomically.
func Open(family Family, typ Type, proto Protocol) (*Socket, error) {
	if err := initSubsystem(); err != nil {
		return nil, err
	}
	fd, err := sysOpen(int(family), int(typ), int(proto))
	if err != nil {
		return nil, err
	}
	return newSocket(fd), nil
}

// FromFD returns a Socket owning the descriptor fd. The caller must not
// use or close fd afterwards.
func FromFD(fd uintptr) *Socket { return newSocket(sysSocket(fd)) }

// FD returns the underlying descriptor. It remains owned by s. A nil
// Socket reports ^uintptr(0).
func (s *Socket) FD() uintptr {
	if s == nil {
		return ^uintptr(0)
	}
	return uintptr(s.fd)
}

// Release hands the underlying descriptor to the caller without closing
// it. s is unusable afterwards.
func (s *Socket) Release() (uintptr, error) {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return ^uintptr(0), net.ErrClosed
	}
	return uintptr(s.fd), nil
}

// Bind assigns the local address a to s.
func (s *Socket) Bind(a *Addr) error {
	if !s.ok() {
		return net.ErrClosed
	}
	if a == nil {
		return errNoAddr
	}
	return sysBind(s.fd, a)
}

// Connect connects s to the remote address a.
func (s *Socket) Connect(a *Addr) error {
	if !s.ok() {
		return net.ErrClosed
	}
	if a == nil {
		return errNoAddr
	}
	return sysConnect(s.fd, a)
}

// Listen marks s as accepting connections with the given backlog.
func (s *Socket) Listen(backlog int) error {
	if !s.ok() {
		return net.ErrClosed
	}
	return sysListen(s.fd, backlog)
}

// Accept waits for and returns the next connection on s along with
// the peer's address.
func (s *Socket) Accept() (*Socket, *Addr, error) {
	if !s.ok() {
		return nil, nil, net.ErrClosed
	}
	fd, a, err := sysAccept(s.fd)
	if err != nil {
		return nil, nil, err
	}
	return newSocket(fd), a, nil
}

// LocalAddr returns the address s is bound to.
func (s *Socket) LocalAddr() (*Addr, error) {
	if !s.ok() {
		return nil, net.ErrClosed
	}
	return sysGetsockname(s.fd)
}

// PeerAddr returns the address s is connected to.
func (s *Socket) PeerAddr() (*Addr, error) {
	if !s.ok() {
		return nil, net.ErrClosed
	}
	return sysGetpeername(s.fd)
}

// Duplicate returns a new Socket referring to the same underlying
// socket. The two descriptors are closed independently. The duplicate
// is not inherited by child processes.
func (s *Socket) Duplicate() (*Socket, error) {
	if !s.ok() {
		return nil, net.ErrClosed
	}
	fd, err := sysDuplicate(s.fd)
	if err != nil {
		return nil, err
	}
	return newSocket(fd), nil
}

// SetNonblocking sets or clears non-blocking mode.
func (s *Socket) SetNonblocking(on bool) error {
	if !s.ok() {
		return net.ErrClosed
	}
	return sysSetNonblock(s.fd, on)
}

// Shutdown shuts down the read side, write side or both sides of a
// connection.
func (s *Socket) Shutdown(how Shutdown) error {
	if !s.ok() {
		return net.ErrClosed
	}
	return sysShutdown(s.fd, how)
}

// Close releases the descriptor. Errors reported by the host while
// closing are discarded. Closing an already closed Socket returns
// net.ErrClosed without reaching the host.
func (s *Socket) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return net.ErrClosed
	}
	sysClose(s.fd)
	return nil
}

// TakeError returns and clears the pending error of s, if any.
func (s *Socket) TakeError() (error, error) {
	v, err := getsockopt[int32](s, &sockOpts[ssoError])
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, nil
	}
	return syscall.Errno(v), nil
}

// SocketType returns the type s was created with, as reported by the
// host.
func (s *Socket) SocketType() (Type, error) {
	v, err := getInt(s, &sockOpts[ssoType])
	return Type(v), err
}

// Read implements io.Reader over Recv. On a stream socket a zero byte
// result on a non-empty buffer is reported as io.EOF; on other types it
// is an empty datagram and is returned as is.
func (s *Socket) Read(b []byte) (int, error) {
	n, err := s.Recv(b, 0)
	if n == 0 && err == nil && len(b) > 0 {
		if t, terr := s.SocketType(); terr == nil && t == Stream {
			return 0, io.EOF
		}
	}
	return n, err
}

// Write implements io.Writer over Send. A short write is reported as
// io.ErrShortWrite.
func (s *Socket) Write(b []byte) (int, error) {
	n, err := s.Send(b, 0)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	return n, err
}

func (s *Socket) String() string {
	if s == nil {
		return "<nil>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "socket{fd: %d", s.fd)
	if s.closed.Load() {
		b.WriteString(", closed")
	}
	if a, err := s.LocalAddr(); err == nil && a.Len() > 0 {
		fmt.Fprintf(&b, ", local: %v", a)
	}
	if a, err := s.PeerAddr(); err == nil && a.Len() > 0 {
		fmt.Fprintf(&b, ", peer: %v", a)
	}
	b.WriteString("}")
	return b.String()
}
