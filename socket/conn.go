// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import "syscall"

// FromSyscallConn returns a Socket holding a duplicate of the
// descriptor underlying c, such as a *net.TCPConn or *net.UDPConn.
//
// The returned Socket and c refer to the same socket: options set
// through one are visible through the other. Closing either leaves the
// other usable.
func FromSyscallConn(c syscall.Conn) (*Socket, error) {
	if err := initSubsystem(); err != nil {
		return nil, err
	}
	rc, err := c.SyscallConn()
	if err != nil {
		return nil, err
	}
	var (
		fd    sysSocket
		operr error
	)
	if err := rc.Control(func(s uintptr) {
		fd, operr = sysDuplicate(sysSocket(s))
	}); err != nil {
		return nil, err
	}
	if operr != nil {
		return nil, operr
	}
	return newSocket(fd), nil
}
