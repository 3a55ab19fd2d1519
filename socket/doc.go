// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package socket implements a thin, portable layer over the host's
// socket system calls.
//
// The package presents one set of socket primitives on Linux and
// Windows. Both backends are structurally parallel: the same
// operations, the same socket option semantics and the same
// reinterpretation of the few OS results that differ between the two
// platforms. On other platforms every operation reports an unsupported
// error.
//
// The package does no buffering, retrying or event handling. Each
// operation maps onto one system call, or a short fixed sequence of
// them, on the caller's goroutine. A blocking socket blocks the calling
// goroutine; a non-blocking socket reports would-block conditions as
// ordinary errors.
//
// # Sockets
//
// A Socket owns exactly one descriptor and releases it exactly once:
//
//	s, err := socket.Open(socket.Inet, socket.Datagram, 0)
//	if err != nil {
//		// error handling
//	}
//	defer s.Close()
//
// Descriptors are created with inheritance by child processes
// suppressed where the platform supports doing so atomically.
// Duplicate returns an independent Socket referring to the same
// underlying socket.
//
// # Addresses
//
// An Addr holds a socket address in the host's native layout, large
// enough for any address family. Internet addresses convert to and
// from netip.AddrPort:
//
//	a := socket.AddrFromAddrPort(netip.MustParseAddrPort("127.0.0.1:8080"))
//	if err := s.Bind(a); err != nil {
//		// error handling
//	}
//
// # Durations
//
// Timeout, linger and keepalive options are carried as an OptDuration
// whose zero value means "disabled". A duration that rounds to zero
// milliseconds is rejected for timeouts since the host would
// interpret it as "disabled".
//
// # Receive semantics
//
// A receive on a socket whose read side has been shut down reports
// zero bytes and no error. The vectored receive operations report a
// datagram that did not fit the supplied buffers through
// RecvFlags.IsTruncated instead of an error.
//
// # Errors
//
// Failures reported by the host are returned as *os.SyscallError.
// Invalid arguments are reported with errors wrapping os.ErrInvalid.
// Operations on a closed Socket return net.ErrClosed.
package socket
