// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"math"
	"net"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type sysSocket = windows.Handle

const invalidSocket = windows.InvalidHandle

type (
	sysSockaddrInet4 = windows.RawSockaddrInet4
	sysSockaddrInet6 = windows.RawSockaddrInet6
)

const (
	sysAF_UNSPEC = 0x0
	sysAF_UNIX   = 0x1
	sysAF_INET   = 0x2
	sysAF_INET6  = 0x17

	sysSOCK_STREAM    = 0x1
	sysSOCK_DGRAM     = 0x2
	sysSOCK_RAW       = 0x3
	sysSOCK_SEQPACKET = 0x5

	sysIPPROTO_IP     = 0x0
	sysIPPROTO_ICMP   = 0x1
	sysIPPROTO_TCP    = 0x6
	sysIPPROTO_UDP    = 0x11
	sysIPPROTO_IPV6   = 0x29
	sysIPPROTO_ICMPV6 = 0x3a

	sysMSG_OOB  = 0x1
	sysMSG_PEEK = 0x2

	// sysMSG_TRUNC is not a Winsock flag. It marks a receive that
	// failed with WSAEMSGSIZE.
	sysMSG_TRUNC = 0x1

	sysSD_RECEIVE = 0x0
	sysSD_SEND    = 0x1
	sysSD_BOTH    = 0x2

	sysFIONBIO = 0x8004667e

	sysWSA_FLAG_OVERLAPPED        = 0x1
	sysWSA_FLAG_NO_HANDLE_INHERIT = 0x80

	sysSOCKET_ERROR = ^uintptr(0)
)

const (
	sysWSAEMSGSIZE  syscall.Errno = 10040
	sysWSAESHUTDOWN syscall.Errno = 10058
)

const (
	maxRW     = math.MaxInt32
	maxIovecs = math.MaxInt32
)

var (
	modws2_32 = windows.NewLazySystemDLL("ws2_32.dll")

	procWSASocketW          = modws2_32.NewProc("WSASocketW")
	procWSADuplicateSocketW = modws2_32.NewProc("WSADuplicateSocketW")
	procbind                = modws2_32.NewProc("bind")
	procconnect             = modws2_32.NewProc("connect")
	procaccept              = modws2_32.NewProc("accept")
	procgetsockname         = modws2_32.NewProc("getsockname")
	procgetpeername         = modws2_32.NewProc("getpeername")
	procioctlsocket         = modws2_32.NewProc("ioctlsocket")
)

func sysInit() error {
	var d windows.WSAData
	return os.NewSyscallError("wsastartup", windows.WSAStartup(uint32(0x202), &d))
}

// wsaErr returns the error of a failed ws2_32 call, which reports
// failure through its return value.
func wsaErr(e syscall.Errno) error {
	if e != 0 {
		return e
	}
	return syscall.EINVAL
}

func sysOpen(family, typ, proto int) (sysSocket, error) {
	r, _, e := syscall.SyscallN(procWSASocketW.Addr(), uintptr(family), uintptr(typ), uintptr(proto), 0, 0, sysWSA_FLAG_OVERLAPPED|sysWSA_FLAG_NO_HANDLE_INHERIT)
	if sysSocket(r) == invalidSocket {
		return invalidSocket, os.NewSyscallError("wsasocket", wsaErr(e))
	}
	return sysSocket(r), nil
}

func sysBind(s sysSocket, a *Addr) error {
	p, n := a.sockaddr()
	r, _, e := syscall.SyscallN(procbind.Addr(), uintptr(s), uintptr(p), uintptr(n))
	if r == sysSOCKET_ERROR {
		return os.NewSyscallError("bind", wsaErr(e))
	}
	return nil
}

func sysConnect(s sysSocket, a *Addr) error {
	p, n := a.sockaddr()
	r, _, e := syscall.SyscallN(procconnect.Addr(), uintptr(s), uintptr(p), uintptr(n))
	if r == sysSOCKET_ERROR {
		return os.NewSyscallError("connect", wsaErr(e))
	}
	return nil
}

func sysListen(s sysSocket, backlog int) error {
	return os.NewSyscallError("listen", windows.Listen(s, backlog))
}

func sysAccept(s sysSocket) (sysSocket, *Addr, error) {
	var rsa sockaddrStorage
	l := int32(sizeofSockaddrStorage)
	r, _, e := syscall.SyscallN(procaccept.Addr(), uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)))
	if sysSocket(r) == invalidSocket {
		return invalidSocket, nil, os.NewSyscallError("accept", wsaErr(e))
	}
	return sysSocket(r), addrFromRaw(unsafe.Pointer(&rsa), l), nil
}

func sysGetsockname(s sysSocket) (*Addr, error) {
	var rsa sockaddrStorage
	l := int32(sizeofSockaddrStorage)
	r, _, e := syscall.SyscallN(procgetsockname.Addr(), uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)))
	if r == sysSOCKET_ERROR {
		return nil, os.NewSyscallError("getsockname", wsaErr(e))
	}
	return addrFromRaw(unsafe.Pointer(&rsa), l), nil
}

func sysGetpeername(s sysSocket) (*Addr, error) {
	var rsa sockaddrStorage
	l := int32(sizeofSockaddrStorage)
	r, _, e := syscall.SyscallN(procgetpeername.Addr(), uintptr(s), uintptr(unsafe.Pointer(&rsa)), uintptr(unsafe.Pointer(&l)))
	if r == sysSOCKET_ERROR {
		return nil, os.NewSyscallError("getpeername", wsaErr(e))
	}
	return addrFromRaw(unsafe.Pointer(&rsa), l), nil
}

func sysDuplicate(s sysSocket) (sysSocket, error) {
	var info windows.WSAProtocolInfo
	r, _, e := syscall.SyscallN(procWSADuplicateSocketW.Addr(), uintptr(s), uintptr(windows.GetCurrentProcessId()), uintptr(unsafe.Pointer(&info)))
	if r != 0 {
		return invalidSocket, os.NewSyscallError("wsaduplicatesocket", wsaErr(e))
	}
	r, _, e = syscall.SyscallN(procWSASocketW.Addr(), uintptr(info.AddressFamily), uintptr(info.SocketType), uintptr(info.Protocol), uintptr(unsafe.Pointer(&info)), 0, sysWSA_FLAG_OVERLAPPED|sysWSA_FLAG_NO_HANDLE_INHERIT)
	if sysSocket(r) == invalidSocket {
		return invalidSocket, os.NewSyscallError("wsasocket", wsaErr(e))
	}
	return sysSocket(r), nil
}

func sysSetNonblock(s sysSocket, on bool) error {
	v := uint32(boolint(on))
	r, _, e := syscall.SyscallN(procioctlsocket.Addr(), uintptr(s), sysFIONBIO, uintptr(unsafe.Pointer(&v)))
	if r == sysSOCKET_ERROR {
		return os.NewSyscallError("ioctlsocket", wsaErr(e))
	}
	return nil
}

func sysShutdown(s sysSocket, how Shutdown) error {
	var h int
	switch how {
	case ShutdownRead:
		h = sysSD_RECEIVE
	case ShutdownWrite:
		h = sysSD_SEND
	default:
		h = sysSD_BOTH
	}
	return os.NewSyscallError("shutdown", windows.Shutdown(s, h))
}

func sysClose(s sysSocket) { windows.Closesocket(s) }

// SetNoInherit prevents the descriptor from being inherited by child
// processes. Sockets created by this package are already
// non-inheritable; SetNoInherit is for descriptors adopted with FromFD.
func (s *Socket) SetNoInherit() error {
	if !s.ok() {
		return net.ErrClosed
	}
	return os.NewSyscallError("sethandleinformation", windows.SetHandleInformation(s.fd, windows.HANDLE_FLAG_INHERIT, 0))
}

func sysGetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l *uint32) error {
	n := int32(*l)
	err := windows.Getsockopt(s, int32(level), int32(name), (*byte)(v), &n)
	*l = uint32(n)
	return err
}

func sysSetsockopt(s sysSocket, level, name int, v unsafe.Pointer, l uint32) error {
	return windows.Setsockopt(s, int32(level), int32(name), (*byte)(v), int32(l))
}

func wsabuf(b []byte) windows.WSABuf {
	w := windows.WSABuf{Len: uint32(len(b))}
	if len(b) > 0 {
		w.Buf = &b[0]
	}
	return w
}

func wsabufs(bufs [][]byte) []windows.WSABuf {
	ws := make([]windows.WSABuf, len(bufs))
	for i, b := range bufs {
		ws[i] = wsabuf(clamp(b))
	}
	return ws
}

func firstBuf(ws []windows.WSABuf) *windows.WSABuf {
	if len(ws) == 0 {
		return nil
	}
	return &ws[0]
}

func sysRecv(s sysSocket, b []byte, flags int) (int, error) {
	w := wsabuf(b)
	var n uint32
	f := uint32(flags)
	err := windows.WSARecv(s, &w, 1, &n, &f, nil, nil)
	if err == sysWSAESHUTDOWN {
		return 0, nil
	}
	if err != nil {
		return 0, os.NewSyscallError("wsarecv", err)
	}
	return int(n), nil
}

func sysRecvFrom(s sysSocket, b []byte, flags int) (int, *Addr, error) {
	w := wsabuf(b)
	var (
		n   uint32
		rsa sockaddrStorage
	)
	f := uint32(flags)
	l := int32(sizeofSockaddrStorage)
	err := windows.WSARecvFrom(s, &w, 1, &n, &f, (*windows.RawSockaddrAny)(unsafe.Pointer(&rsa)), &l, nil, nil)
	if err == sysWSAESHUTDOWN {
		return 0, &Addr{}, nil
	}
	if err != nil {
		return 0, nil, os.NewSyscallError("wsarecvfrom", err)
	}
	return int(n), addrFromRaw(unsafe.Pointer(&rsa), l), nil
}

func sysSend(s sysSocket, b []byte, flags int) (int, error) {
	w := wsabuf(b)
	var n uint32
	if err := windows.WSASend(s, &w, 1, &n, uint32(flags), nil, nil); err != nil {
		return 0, os.NewSyscallError("wsasend", err)
	}
	return int(n), nil
}

func sysSendTo(s sysSocket, b []byte, flags int, a *Addr) (int, error) {
	w := wsabuf(b)
	var n uint32
	p, l := a.sockaddr()
	if err := windows.WSASendTo(s, &w, 1, &n, uint32(flags), (*windows.RawSockaddrAny)(p), l, nil, nil); err != nil {
		return 0, os.NewSyscallError("wsasendto", err)
	}
	return int(n), nil
}

// sysRecvmsg receives into bufs. The sender's address is decoded only if
// from is set.
func sysRecvmsg(s sysSocket, bufs [][]byte, flags int, from bool) (int, RecvFlags, *Addr, error) {
	ws := wsabufs(bufs)
	var (
		n   uint32
		rsa sockaddrStorage
		err error
	)
	f := uint32(flags)
	l := int32(sizeofSockaddrStorage)
	if from {
		err = windows.WSARecvFrom(s, firstBuf(ws), uint32(len(ws)), &n, &f, (*windows.RawSockaddrAny)(unsafe.Pointer(&rsa)), &l, nil, nil)
	} else {
		err = windows.WSARecv(s, firstBuf(ws), uint32(len(ws)), &n, &f, nil, nil)
	}
	var rf RecvFlags
	switch err {
	case nil:
	case sysWSAESHUTDOWN:
		n, l = 0, 0
	case sysWSAEMSGSIZE:
		rf |= sysMSG_TRUNC
	default:
		if from {
			return 0, 0, nil, os.NewSyscallError("wsarecvfrom", err)
		}
		return 0, 0, nil, os.NewSyscallError("wsarecv", err)
	}
	if !from {
		return int(n), rf, nil, nil
	}
	return int(n), rf, addrFromRaw(unsafe.Pointer(&rsa), l), nil
}

func sysSendmsg(s sysSocket, bufs [][]byte, flags int, a *Addr) (int, error) {
	ws := wsabufs(bufs)
	var n uint32
	if a == nil {
		if err := windows.WSASend(s, firstBuf(ws), uint32(len(ws)), &n, uint32(flags), nil, nil); err != nil {
			return 0, os.NewSyscallError("wsasend", err)
		}
		return int(n), nil
	}
	p, l := a.sockaddr()
	if err := windows.WSASendTo(s, firstBuf(ws), uint32(len(ws)), &n, uint32(flags), (*windows.RawSockaddrAny)(p), l, nil, nil); err != nil {
		return 0, os.NewSyscallError("wsasendto", err)
	}
	return int(n), nil
}
