// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	errOpNoSupport = fmt.Errorf("operation not supported: %w", errors.ErrUnsupported)
	errNoAddr      = fmt.Errorf("missing address: %w", os.ErrInvalid)
)

// A Family represents a socket address family.
type Family int

const (
	Unspec Family = sysAF_UNSPEC
	Unix   Family = sysAF_UNIX
	Inet   Family = sysAF_INET
	Inet6  Family = sysAF_INET6
)

func (f Family) String() string {
	switch f {
	case Unspec:
		return "unspec"
	case Unix:
		return "unix"
	case Inet:
		return "inet"
	case Inet6:
		return "inet6"
	}
	return "family(" + strconv.Itoa(int(f)) + ")"
}

// A Type represents a socket type.
type Type int

const (
	Stream    Type = sysSOCK_STREAM
	Datagram  Type = sysSOCK_DGRAM
	Raw       Type = sysSOCK_RAW
	SeqPacket Type = sysSOCK_SEQPACKET
)

func (t Type) String() string {
	switch t {
	case Stream:
		return "stream"
	case Datagram:
		return "dgram"
	case Raw:
		return "raw"
	case SeqPacket:
		return "seqpacket"
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// A Protocol represents a socket protocol. The zero value selects the
// default protocol of the family and type.
type Protocol int

const (
	ProtocolICMP   Protocol = sysIPPROTO_ICMP
	ProtocolTCP    Protocol = sysIPPROTO_TCP
	ProtocolUDP    Protocol = sysIPPROTO_UDP
	ProtocolICMPv6 Protocol = sysIPPROTO_ICMPV6
)

func (p Protocol) String() string {
	switch p {
	case 0:
		return "default"
	case ProtocolICMP:
		return "icmp"
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	case ProtocolICMPv6:
		return "icmpv6"
	}
	return "protocol(" + strconv.Itoa(int(p)) + ")"
}

// Shutdown selects which directions of a connection Socket.Shutdown
// disables.
type Shutdown int

const (
	ShutdownRead Shutdown = iota
	ShutdownWrite
	ShutdownBoth
)

func (h Shutdown) String() string {
	switch h {
	case ShutdownRead:
		return "read"
	case ShutdownWrite:
		return "write"
	case ShutdownBoth:
		return "both"
	}
	return "shutdown(" + strconv.Itoa(int(h)) + ")"
}

// MsgFlags are the flags passed to send and receive operations.
type MsgFlags int

const (
	MsgOOB  MsgFlags = sysMSG_OOB  // process out-of-band data
	MsgPeek MsgFlags = sysMSG_PEEK // peek at incoming message
)

// RecvFlags are the flags reported by the vectored receive operations.
type RecvFlags int

// IsTruncated reports whether a datagram was larger than the buffers
// supplied to receive it. The excess is discarded.
func (f RecvFlags) IsTruncated() bool { return f&sysMSG_TRUNC != 0 }

func (f RecvFlags) String() string {
	var fs []string
	if f.IsTruncated() {
		fs = append(fs, "truncated")
	}
	if rest := f &^ sysMSG_TRUNC; rest != 0 {
		fs = append(fs, "0x"+strconv.FormatInt(int64(rest), 16))
	}
	return "[" + strings.Join(fs, " ") + "]"
}

func boolint(b bool) int {
	if b {
		return 1
	}
	return 0
}
