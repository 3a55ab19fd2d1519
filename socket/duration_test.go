// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"errors"
	"math"
	"os"
	"testing"
	"time"
)

var durationToMillisTests = []struct {
	in   OptDuration
	want uint32
	err  bool
}{
	{OptDuration{}, 0, false},
	{DurationOf(time.Nanosecond), 1, false},
	{DurationOf(999 * time.Microsecond), 1, false},
	{DurationOf(time.Millisecond), 1, false},
	{DurationOf(1500 * time.Microsecond), 2, false},
	{DurationOf(time.Second), 1000, false},
	{DurationOf(1500 * time.Millisecond), 1500, false},
	{DurationOf(math.MaxUint32 * time.Millisecond), math.MaxUint32, false},
	{DurationOf((math.MaxUint32 + 1) * time.Millisecond), math.MaxUint32, false},
	{DurationOf(math.MaxInt64), math.MaxUint32, false},

	{DurationOf(0), 0, true},
	{DurationOf(-time.Second), 0, true},
}

func TestDurationToMillis(t *testing.T) {
	for _, tt := range durationToMillisTests {
		got, err := durationToMillis(tt.in)
		if tt.err {
			if !errors.Is(err, os.ErrInvalid) {
				t.Errorf("%v: got %d, %v; want os.ErrInvalid", tt.in, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%v: got %d, %v; want %d, <nil>", tt.in, got, err, tt.want)
		}
	}
}

func TestMillisRoundTrip(t *testing.T) {
	for _, ms := range []uint32{0, 1, 2, 999, 1000, 1500, 86400000, math.MaxUint32} {
		ms2, err := durationToMillis(millisToDuration(ms))
		if err != nil || ms2 != ms {
			t.Errorf("%d: got %d, %v", ms, ms2, err)
		}
	}
	for _, d := range []time.Duration{time.Millisecond, 7 * time.Millisecond, time.Second, time.Hour} {
		ms, err := durationToMillis(DurationOf(d))
		if err != nil {
			t.Fatal(err)
		}
		if got, ok := millisToDuration(ms).Get(); !ok || got != d {
			t.Errorf("%v: got %v, %v", d, got, ok)
		}
	}
}

func TestDurationToSeconds(t *testing.T) {
	for _, tt := range []struct {
		in   time.Duration
		max  int64
		want int64
	}{
		{0, math.MaxInt32, 0},
		{999 * time.Millisecond, math.MaxInt32, 0},
		{3500 * time.Millisecond, math.MaxInt32, 3},
		{70000 * time.Second, math.MaxUint16, math.MaxUint16},
		{math.MaxInt64, math.MaxInt32, math.MaxInt32},
	} {
		got, err := durationToSeconds(tt.in, tt.max)
		if err != nil || got != tt.want {
			t.Errorf("%v: got %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	if _, err := durationToSeconds(-time.Second, math.MaxInt32); !errors.Is(err, os.ErrInvalid) {
		t.Errorf("got %v; want os.ErrInvalid", err)
	}
}

func TestOptDurationString(t *testing.T) {
	if s := (OptDuration{}).String(); s != "none" {
		t.Errorf("got %q", s)
	}
	if s := DurationOf(2 * time.Second).String(); s != "2s" {
		t.Errorf("got %q", s)
	}
}
