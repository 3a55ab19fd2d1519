// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sockettest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sockprim/socket"
)

// durationOptionTests use durations Linux can represent exactly in
// jiffies and, for keepalive, in whole seconds.
var durationOptionTests = []time.Duration{1500 * time.Millisecond, 3 * time.Second, 5 * time.Minute}

func checkTimeouts(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, opt := range []struct {
		name string
		get  func() (socket.OptDuration, error)
		set  func(socket.OptDuration) error
	}{
		{"read timeout", s.ReadTimeout, s.SetReadTimeout},
		{"write timeout", s.WriteTimeout, s.SetWriteTimeout},
	} {
		if d, err := opt.get(); err != nil || d != (socket.OptDuration{}) {
			return fmt.Errorf("%s default: got %v, %v; want none", opt.name, d, err)
		}
		for _, d := range durationOptionTests {
			if err := opt.set(socket.DurationOf(d)); err != nil {
				return fmt.Errorf("%s %v: %v", opt.name, d, err)
			}
			got, err := opt.get()
			if err != nil || got != socket.DurationOf(d) {
				return fmt.Errorf("%s: got %v, %v; want %v", opt.name, got, err, d)
			}
		}
		if err := opt.set(socket.DurationOf(0)); !errors.Is(err, os.ErrInvalid) {
			return fmt.Errorf("%s 0: got %v; want %v", opt.name, err, os.ErrInvalid)
		}
		if err := opt.set(socket.OptDuration{}); err != nil {
			return err
		}
		if d, err := opt.get(); err != nil || d != (socket.OptDuration{}) {
			return fmt.Errorf("%s cleared: got %v, %v; want none", opt.name, d, err)
		}
	}
	return nil
}

func checkLinger(f socket.Family) error {
	s, err := open(f, socket.Stream)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, tt := range []struct {
		in, want socket.OptDuration
	}{
		{socket.DurationOf(3500 * time.Millisecond), socket.DurationOf(3 * time.Second)},
		{socket.DurationOf(0), socket.DurationOf(0)},
		{socket.OptDuration{}, socket.OptDuration{}},
	} {
		if err := s.SetLinger(tt.in); err != nil {
			return fmt.Errorf("set %v: %v", tt.in, err)
		}
		got, err := s.Linger()
		if err != nil || got != tt.want {
			return fmt.Errorf("set %v: got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	return nil
}

func checkKeepalive(f socket.Family) error {
	s, err := open(f, socket.Stream)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, d := range []time.Duration{3 * time.Second, 5 * time.Minute} {
		if err := s.SetKeepalive(socket.DurationOf(d)); err != nil {
			return fmt.Errorf("set %v: %v", d, err)
		}
		got, err := s.Keepalive()
		if err != nil || got != socket.DurationOf(d) {
			return fmt.Errorf("got %v, %v; want %v", got, err, d)
		}
	}
	if err := s.SetKeepalive(socket.DurationOf(0)); !errors.Is(err, os.ErrInvalid) {
		return fmt.Errorf("set 0: got %v; want %v", err, os.ErrInvalid)
	}
	if err := s.SetKeepalive(socket.OptDuration{}); err != nil {
		return err
	}
	if got, err := s.Keepalive(); err != nil || got != (socket.OptDuration{}) {
		return fmt.Errorf("disabled: got %v, %v; want none", got, err)
	}
	return nil
}

type boolOption struct {
	name   string
	typ    socket.Type
	family socket.Family // Unspec if the option applies to every family
	get    func(*socket.Socket) (bool, error)
	set    func(*socket.Socket, bool) error
}

var boolOptions = []boolOption{
	{"broadcast", socket.Datagram, socket.Inet, (*socket.Socket).Broadcast, (*socket.Socket).SetBroadcast},
	{"reuse address", socket.Stream, socket.Unspec, (*socket.Socket).ReuseAddress, (*socket.Socket).SetReuseAddress},
	{"no delay", socket.Stream, socket.Unspec, (*socket.Socket).NoDelay, (*socket.Socket).SetNoDelay},
	{"out-of-band inline", socket.Stream, socket.Unspec, (*socket.Socket).OutOfBandInline, (*socket.Socket).SetOutOfBandInline},
	{"only v6", socket.Datagram, socket.Inet6, (*socket.Socket).OnlyV6, (*socket.Socket).SetOnlyV6},
	{"multicast loop v4", socket.Datagram, socket.Inet, (*socket.Socket).MulticastLoopV4, (*socket.Socket).SetMulticastLoopV4},
	{"multicast loop v6", socket.Datagram, socket.Inet6, (*socket.Socket).MulticastLoopV6, (*socket.Socket).SetMulticastLoopV6},
}

func checkBoolOptions(f socket.Family) error {
	for _, opt := range boolOptions {
		if opt.family != socket.Unspec && opt.family != f {
			continue
		}
		if err := checkBoolOption(f, opt); err != nil {
			return fmt.Errorf("%s: %w", opt.name, err)
		}
	}
	return nil
}

func checkBoolOption(f socket.Family, opt boolOption) error {
	s, err := open(f, opt.typ)
	if err != nil {
		return err
	}
	defer s.Close()
	for _, on := range []bool{true, false, true} {
		if err := opt.set(s, on); err != nil {
			return err
		}
		got, err := opt.get(s)
		if err != nil {
			return err
		}
		if got != on {
			return fmt.Errorf("got %v; want %v", got, on)
		}
	}
	return nil
}

func checkHopLimits(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	type intOption struct {
		name string
		get  func() (int, error)
		set  func(int) error
	}
	var opts []intOption
	if f == socket.Inet {
		opts = []intOption{{"ttl", s.TTL, s.SetTTL}, {"multicast ttl", s.MulticastTTLV4, s.SetMulticastTTLV4}}
	} else {
		opts = []intOption{{"unicast hops", s.UnicastHopsV6, s.SetUnicastHopsV6}, {"multicast hops", s.MulticastHopsV6, s.SetMulticastHopsV6}}
	}
	for _, opt := range opts {
		for _, v := range []int{1, 42, 255} {
			if err := opt.set(v); err != nil {
				return fmt.Errorf("%s %d: %v", opt.name, v, err)
			}
			got, err := opt.get()
			if err != nil || got != v {
				return fmt.Errorf("%s: got %d, %v; want %d", opt.name, got, err, v)
			}
		}
	}
	return nil
}

func checkBufferSizes(f socket.Family) error {
	s, err := open(f, socket.Datagram)
	if err != nil {
		return err
	}
	defer s.Close()
	const size = 64 << 10
	for _, opt := range []struct {
		name string
		get  func() (int, error)
		set  func(int) error
	}{
		{"receive buffer", s.RecvBufferSize, s.SetRecvBufferSize},
		{"send buffer", s.SendBufferSize, s.SetSendBufferSize},
	} {
		if err := opt.set(size); err != nil {
			return fmt.Errorf("%s: %v", opt.name, err)
		}
		got, err := opt.get()
		if err != nil {
			return fmt.Errorf("%s: %v", opt.name, err)
		}
		// Some hosts double the requested size to account for
		// bookkeeping overhead.
		if got < size {
			return fmt.Errorf("%s: got %d; want at least %d", opt.name, got, size)
		}
		if err := opt.set(-1); !errors.Is(err, os.ErrInvalid) {
			return fmt.Errorf("%s -1: got %v; want %v", opt.name, err, os.ErrInvalid)
		}
	}
	return nil
}
