// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

type sysSocket = int

const invalidSocket sysSocket = -1

type (
	sysSockaddrInet4 = unix.RawSockaddrInet4
	sysSockaddrInet6 = unix.RawSockaddrInet6
)

const (
	sysAF_UNSPEC = unix.AF_UNSPEC
	sysAF_UNIX   = unix.AF_UNIX
	sysAF_INET   = unix.AF_INET
	sysAF_INET6  = unix.AF_INET6

	sysSOCK_STREAM    = unix.SOCK_STREAM
	sysSOCK_DGRAM     = unix.SOCK_DGRAM
	sysSOCK_RAW       = unix.SOCK_RAW
	sysSOCK_SEQPACKET = unix.SOCK_SEQPACKET

	sysIPPROTO_ICMP   = unix.IPPROTO_ICMP
	sysIPPROTO_TCP    = unix.IPPROTO_TCP
	sysIPPROTO_UDP    = unix.IPPROTO_UDP
	sysIPPROTO_ICMPV6 = unix.IPPROTO_ICMPV6

	sysMSG_OOB   = unix.MSG_OOB
	sysMSG_PEEK  = unix.MSG_PEEK
	sysMSG_TRUNC = unix.MSG_TRUNC
)

const (
	// maxRW is the largest transfer attempted in one call; Linux
	// silently limits a single read or write to just under 2GB.
	maxRW = 1 << 30

	// maxIovecs is UIO_MAXIOV.
	maxIovecs = 1024
)

func sysInit() error { return nil }

func errnoErr(e unix.Errno) error {
	if e == 0 {
		return nil
	}
	return e
}

func sysOpen(family, typ, proto int) (sysSocket, error) {
	s, err := unix.Socket(family, typ|unix.SOCK_CLOEXEC, proto)
	if err != nil {
		return invalidSocket, os.NewSyscallError("socket", err)
	}
	return s, nil
}

func sysBind(s sysSocket, a *Addr) error {
	p, n := a.sockaddr()
	_, _, e := unix.Syscall(unix.SYS_BIND, uintptr(s), uintptr(p), uintptr(n))
	return os.NewSyscallError("bind", errnoErr(e))
}

func sysConnect(s sysSocket, a *Addr) error {
	p, n := a.sockaddr()
	_, _, e := unix.Syscall(unix.SYS_CONNECT, uintptr(s), uintptr(p), uintptr(n))
	return os.NewSyscallError("connect", errnoErr(e))
}

func sysListen(s sysSocket, backlog int) error {
	return os.NewSyscallError("listen", unix.Listen(s, backlog))
}

func sysAccept(s sysSocket) (sysSocket, *Addr, error) {
	var rsa sockaddrStorage
	l := uint32(sizeofSockaddrStorage)
	r, _, e := unix.Syscall6(unix.SYS_ACCEPT4, uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)), unix.SOCK_CLOEXEC, 0, 0)
	if e != 0 {
		return invalidSocket, nil, os.NewSyscallError("accept4", e)
	}
	return sysSocket(r), addrFromRaw(unsafe.Pointer(&rsa), int32(l)), nil
}

func sysGetsockname(s sysSocket) (*Addr, error) {
	var rsa sockaddrStorage
	l := uint32(sizeofSockaddrStorage)
	_, _, e := unix.Syscall(unix.SYS_GETSOCKNAME, uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)))
	if e != 0 {
		return nil, os.NewSyscallError("getsockname", e)
	}
	return addrFromRaw(unsafe.Pointer(&rsa), int32(l)), nil
}

func sysGetpeername(s sysSocket) (*Addr, error) {
	var rsa sockaddrStorage
	l := uint32(sizeofSockaddrStorage)
	_, _, e := unix.Syscall(unix.SYS_GETPEERNAME, uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)))
	if e != 0 {
		return nil, os.NewSyscallError("getpeername", e)
	}
	return addrFromRaw(unsafe.Pointer(&rsa), int32(l)), nil
}

func sysDuplicate(s sysSocket) (sysSocket, error) {
	fd, err := unix.FcntlInt(uintptr(s), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return invalidSocket, os.NewSyscallError("fcntl", err)
	}
	return fd, nil
}

func sysSetNonblock(s sysSocket, on bool) error {
	return os.NewSyscallError("fcntl", unix.SetNonblock(s, on))
}

func sysShutdown(s sysSocket, how Shutdown) error {
	var h int
	switch how {
	case ShutdownRead:
		h = unix.SHUT_RD
	case ShutdownWrite:
		h = unix.SHUT_WR
	default:
		h = unix.SHUT_RDWR
	}
	return os.NewSyscallError("shutdown", unix.Shutdown(s, h))
}

func sysClose(s sysSocket) { unix.Close(s) }

func sysGetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l *uint32) error {
	_, _, e := unix.Syscall6(unix.SYS_GETSOCKOPT, uintptr(s), uintptr(level), uintptr(name), uintptr(v), uintptr(unsafe.Pointer(l)), 0)
	return errnoErr(e)
}

func sysSetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l uint32) error {
	_, _, e := unix.Syscall6(unix.SYS_SETSOCKOPT, uintptr(s), uintptr(level), uintptr(name), uintptr(v), uintptr(l), 0)
	return errnoErr(e)
}

func recvfrom(s sysSocket, b []byte, flags int, rsa *sockaddrStorage, l *uint32) (int, error) {
	var p unsafe.Pointer
	if len(b) > 0 {
		p = unsafe.Pointer(&b[0])
	}
	r, _, e := unix.Syscall6(unix.SYS_RECVFROM, uintptr(s), uintptr(p), uintptr(len(b)), uintptr(flags), uintptr(unsafe.Pointer(rsa)), uintptr(unsafe.Pointer(l)))
	if e != 0 {
		return 0, e
	}
	return int(r), nil
}

func sysRecv(s sysSocket, b []byte, flags int) (int, error) {
	n, err := recvfrom(s, b, flags, nil, nil)
	if err == unix.ESHUTDOWN {
		return 0, nil
	}
	if err != nil {
		return 0, os.NewSyscallError("recvfrom", err)
	}
	return n, nil
}

func sysRecvFrom(s sysSocket, b []byte, flags int) (int, *Addr, error) {
	var rsa sockaddrStorage
	l := uint32(sizeofSockaddrStorage)
	n, err := recvfrom(s, b, flags, &rsa, &l)
	if err == unix.ESHUTDOWN {
		return 0, &Addr{}, nil
	}
	if err != nil {
		return 0, nil, os.NewSyscallError("recvfrom", err)
	}
	return n, addrFromRaw(unsafe.Pointer(&rsa), int32(l)), nil
}

func sendto(s sysSocket, b []byte, flags int, to unsafe.Pointer, tolen int32) (int, error) {
	var p unsafe.Pointer
	if len(b) > 0 {
		p = unsafe.Pointer(&b[0])
	}
	r, _, e := unix.Syscall6(unix.SYS_SENDTO, uintptr(s), uintptr(p), uintptr(len(b)), uintptr(flags|unix.MSG_NOSIGNAL), uintptr(to), uintptr(tolen))
	if e != 0 {
		return 0, os.NewSyscallError("sendto", e)
	}
	return int(r), nil
}

func sysSend(s sysSocket, b []byte, flags int) (int, error) {
	return sendto(s, b, flags, nil, 0)
}

func sysSendTo(s sysSocket, b []byte, flags int, a *Addr) (int, error) {
	p, n := a.sockaddr()
	return sendto(s, b, flags, p, n)
}

func iovecs(bufs [][]byte) []unix.Iovec {
	iovs := make([]unix.Iovec, len(bufs))
	for i, b := range bufs {
		if len(b) == 0 {
			continue
		}
		iovs[i].Base = &b[0]
		iovs[i].SetLen(min(len(b), maxRW))
	}
	return iovs
}

// sysRecvmsg receives into bufs. The sender's address is decoded only if
// from is set.
func sysRecvmsg(s sysSocket, bufs [][]byte, flags int, from bool) (int, RecvFlags, *Addr, error) {
	var (
		rsa sockaddrStorage
		msg unix.Msghdr
	)
	if from {
		msg.Name = (*byte)(unsafe.Pointer(&rsa))
		msg.Namelen = sizeofSockaddrStorage
	}
	if iovs := iovecs(bufs); len(iovs) > 0 {
		msg.Iov = &iovs[0]
		msg.SetIovlen(len(iovs))
	}
	r, _, e := unix.Syscall(unix.SYS_RECVMSG, uintptr(s), uintptr(unsafe.Pointer(&msg)), uintptr(flags))
	if e == unix.ESHUTDOWN {
		return 0, 0, recvmsgAddr(from, nil, 0), nil
	}
	if e != 0 {
		return 0, 0, nil, os.NewSyscallError("recvmsg", e)
	}
	return int(r), RecvFlags(msg.Flags), recvmsgAddr(from, &rsa, msg.Namelen), nil
}

func recvmsgAddr(from bool, rsa *sockaddrStorage, l uint32) *Addr {
	if !from {
		return nil
	}
	if rsa == nil {
		return &Addr{}
	}
	return addrFromRaw(unsafe.Pointer(rsa), int32(l))
}

func sysSendmsg(s sysSocket, bufs [][]byte, flags int, a *Addr) (int, error) {
	var msg unix.Msghdr
	if a != nil {
		p, n := a.sockaddr()
		msg.Name = (*byte)(p)
		msg.Namelen = uint32(n)
	}
	if iovs := iovecs(bufs); len(iovs) > 0 {
		msg.Iov = &iovs[0]
		msg.SetIovlen(len(iovs))
	}
	r, _, e := unix.Syscall(unix.SYS_SENDMSG, uintptr(s), uintptr(unsafe.Pointer(&msg)), uintptr(flags|unix.MSG_NOSIGNAL))
	if e != 0 {
		return 0, os.NewSyscallError("sendmsg", e)
	}
	return int(r), nil
}
