// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package socket

import (
	"fmt"
	"math"
	"os"
	"time"
)

var (
	errZeroDuration     = fmt.Errorf("cannot set a zero duration timeout: %w", os.ErrInvalid)
	errNegativeDuration = fmt.Errorf("negative duration: %w", os.ErrInvalid)
)

// An OptDuration is an optional duration used by the timeout, linger
// and keepalive options. The zero value means the option is disabled.
type OptDuration struct {
	d  time.Duration
	ok bool
}

// DurationOf returns an OptDuration holding d.
func DurationOf(d time.Duration) OptDuration { return OptDuration{d: d, ok: true} }

// Get returns the duration and whether one is set.
func (o OptDuration) Get() (time.Duration, bool) { return o.d, o.ok }

func (o OptDuration) String() string {
	if !o.ok {
		return "none"
	}
	return o.d.String()
}

// durationToMillis converts o to the millisecond count the host expects
// for a timeout. A missing duration is 0. A present duration is rounded
// up to the next whole millisecond and saturated at math.MaxUint32.
// Durations that round to 0 are rejected since the host would read them
// as "no timeout".
func durationToMillis(o OptDuration) (uint32, error) {
	d, ok := o.Get()
	if !ok {
		return 0, nil
	}
	if d < 0 {
		return 0, errNegativeDuration
	}
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	if ms > math.MaxUint32 {
		ms = math.MaxUint32
	}
	if ms == 0 {
		return 0, errZeroDuration
	}
	return uint32(ms), nil
}

// millisToDuration is the inverse of durationToMillis.
func millisToDuration(ms uint32) OptDuration {
	if ms == 0 {
		return OptDuration{}
	}
	return DurationOf(time.Duration(ms) * time.Millisecond)
}

// durationToSeconds truncates d to whole seconds, saturated at max.
func durationToSeconds(d time.Duration, max int64) (int64, error) {
	if d < 0 {
		return 0, errNegativeDuration
	}
	secs := int64(d / time.Second)
	if secs > max {
		secs = max
	}
	return secs, nil
}
