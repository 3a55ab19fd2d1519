// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/sockprim/socket"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand_List(t *testing.T) {
	out, err := execute(t, "--list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"close-twice", "truncation", "multicast-membership"} {
		if !strings.Contains(out, name+"\n") {
			t.Errorf("expected %q in list output:\n%s", name, out)
		}
	}
}

func TestRootCommand_ListFiltered(t *testing.T) {
	out, err := execute(t, "--list", "--run", "^shutdown-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "shutdown-read\nshutdown-write\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRootCommand_RejectsBadPattern(t *testing.T) {
	_, err := execute(t, "--run", "(")
	if err == nil || !strings.Contains(err.Error(), "invalid --run pattern") {
		t.Errorf("expected pattern error, got %v", err)
	}
}

func TestRootCommand_RejectsBadFamily(t *testing.T) {
	_, err := execute(t, "--family", "ipx")
	if err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	if err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestRootCommand_RunsSelectedCheck(t *testing.T) {
	out, err := execute(t, "--family", "inet", "--run", "^close-twice$")
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 checks, 0 failed") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestInspectCommand(t *testing.T) {
	s, err := socket.Open(socket.Inet, socket.Datagram, 0)
	if errors.Is(err, errors.ErrUnsupported) {
		t.Skip("sockets not supported on this platform")
	}
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	out, err := execute(t, "inspect", "--family", "inet", "--type", "dgram")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "inet dgram socket\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	for _, name := range []string{"reuse-address", "broadcast", "ttl", "multicast-loop"} {
		if !strings.Contains(out, "  "+name+" ") {
			t.Errorf("expected option %q in output:\n%s", name, out)
		}
	}
	if strings.Contains(out, "no-delay") {
		t.Errorf("stream-only option reported for datagram socket:\n%s", out)
	}
}

func TestInspectCommand_RejectsAll(t *testing.T) {
	_, err := execute(t, "inspect", "--family", "all")
	if err == nil {
		t.Error("expected error for --family all")
	}
}

func TestFamilyFlag(t *testing.T) {
	tests := []struct {
		in       string
		allowAll bool
		want     []socket.Family
		wantErr  bool
	}{
		{"inet", false, []socket.Family{socket.Inet}, false},
		{"INET6", false, []socket.Family{socket.Inet6}, false},
		{"all", true, []socket.Family{socket.Inet, socket.Inet6}, false},
		{"all", false, nil, true},
		{"unix", true, nil, true},
	}
	for _, tt := range tests {
		f := &familyFlag{allowAll: tt.allowAll}
		err := f.Set(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if len(f.families) != len(tt.want) {
			t.Errorf("Set(%q) = %v, want %v", tt.in, f.families, tt.want)
			continue
		}
		for i := range tt.want {
			if f.families[i] != tt.want[i] {
				t.Errorf("Set(%q) = %v, want %v", tt.in, f.families, tt.want)
			}
		}
		if f.String() != strings.ToLower(tt.in) {
			t.Errorf("String() = %q, want %q", f.String(), strings.ToLower(tt.in))
		}
	}
}

func TestTypeFlag(t *testing.T) {
	var f typeFlag
	if err := f.Set("dgram"); err != nil {
		t.Fatal(err)
	}
	if f.typ != socket.Datagram || f.String() != "dgram" {
		t.Errorf("got %v %q", f.typ, f.String())
	}
	if err := f.Set("raw"); err == nil {
		t.Error("expected error for raw")
	}
}
