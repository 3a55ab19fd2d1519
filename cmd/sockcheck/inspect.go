// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sockprim/socket"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// An option is one row of the inspect report. Each getter is called on a
// fresh socket of the selected family and type.
type option struct {
	name    string
	typ     socket.Type   // 0 if the option applies to every type
	family  socket.Family // Unspec if the option applies to every family
	value   func(s *socket.Socket) (any, error)
	integer bool // formatted with digit grouping
}

func boolValue(get func(*socket.Socket) (bool, error)) func(*socket.Socket) (any, error) {
	return func(s *socket.Socket) (any, error) { return get(s) }
}

func intValue(get func(*socket.Socket) (int, error)) func(*socket.Socket) (any, error) {
	return func(s *socket.Socket) (any, error) { return get(s) }
}

func durationValue(get func(*socket.Socket) (socket.OptDuration, error)) func(*socket.Socket) (any, error) {
	return func(s *socket.Socket) (any, error) { return get(s) }
}

var options = []option{
	{name: "reuse-address", value: boolValue((*socket.Socket).ReuseAddress)},
	{name: "recv-buffer", value: intValue((*socket.Socket).RecvBufferSize), integer: true},
	{name: "send-buffer", value: intValue((*socket.Socket).SendBufferSize), integer: true},
	{name: "read-timeout", value: durationValue((*socket.Socket).ReadTimeout)},
	{name: "write-timeout", value: durationValue((*socket.Socket).WriteTimeout)},
	{name: "oob-inline", value: boolValue((*socket.Socket).OutOfBandInline)},
	{name: "linger", typ: socket.Stream, value: durationValue((*socket.Socket).Linger)},
	{name: "keepalive", typ: socket.Stream, value: durationValue((*socket.Socket).Keepalive)},
	{name: "no-delay", typ: socket.Stream, value: boolValue((*socket.Socket).NoDelay)},
	{name: "broadcast", typ: socket.Datagram, family: socket.Inet, value: boolValue((*socket.Socket).Broadcast)},
	{name: "ttl", family: socket.Inet, value: intValue((*socket.Socket).TTL), integer: true},
	{name: "multicast-ttl", typ: socket.Datagram, family: socket.Inet, value: intValue((*socket.Socket).MulticastTTLV4), integer: true},
	{name: "multicast-loop", typ: socket.Datagram, family: socket.Inet, value: boolValue((*socket.Socket).MulticastLoopV4)},
	{name: "multicast-if", typ: socket.Datagram, family: socket.Inet, value: func(s *socket.Socket) (any, error) { return s.MulticastIfV4() }},
	{name: "unicast-hops", family: socket.Inet6, value: intValue((*socket.Socket).UnicastHopsV6), integer: true},
	{name: "only-v6", family: socket.Inet6, value: boolValue((*socket.Socket).OnlyV6)},
	{name: "multicast-hops", typ: socket.Datagram, family: socket.Inet6, value: intValue((*socket.Socket).MulticastHopsV6), integer: true},
	{name: "multicast-loop", typ: socket.Datagram, family: socket.Inet6, value: boolValue((*socket.Socket).MulticastLoopV6)},
	{name: "multicast-if", typ: socket.Datagram, family: socket.Inet6, value: func(s *socket.Socket) (any, error) { return s.MulticastIfV6() }},
}

func newInspectCmd() *cobra.Command {
	family := newFamilyFlag("inet", false)
	typ := &typeFlag{}
	if err := typ.Set("stream"); err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the option values of a fresh socket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), family.families[0], typ.typ)
		},
	}
	cmd.Flags().Var(family, "family", "Address family: inet|inet6")
	cmd.Flags().Var(typ, "type", "Socket type: stream|dgram")
	return cmd
}

func inspect(w io.Writer, f socket.Family, t socket.Type) error {
	s, err := socket.Open(f, t, 0)
	if err != nil {
		return err
	}
	defer s.Close()

	p := message.NewPrinter(language.English)
	p.Fprintf(w, "%v %v socket\n", f, t)
	for _, o := range options {
		if (o.typ != 0 && o.typ != t) || (o.family != socket.Unspec && o.family != f) {
			continue
		}
		v, err := o.value(s)
		switch {
		case err != nil:
			p.Fprintf(w, "  %-16s error: %v\n", o.name, err)
		case o.integer:
			p.Fprintf(w, "  %-16s %d\n", o.name, v)
		default:
			p.Fprintf(w, "  %-16s %v\n", o.name, v)
		}
	}
	return nil
}
