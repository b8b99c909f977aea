// /home/krylon/go/src/github.com/blicero/wecker/objects/timer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-27 21:02:55 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/wecker/objects/kind"
)

//go:generate ffjson timer.go

// Timer is a countdown timer. Its ID lives in a separate space from
// Alarm IDs, starting at kind.MinTimerID. Duration is the total run
// time, it grows when time is added mid-run.
type Timer struct {
	ID       int64
	Label    string
	EndTime  time.Time
	Duration time.Duration
	UUID     string
	Changed  time.Time
}

// Remaining returns the time left until the Timer goes off, relative
// to the given reference point. A negative value means the Timer is
// overdue.
func (t *Timer) Remaining(ref time.Time) time.Duration {
	return t.EndTime.Sub(ref)
} // func (t *Timer) Remaining(ref time.Time) time.Duration

// AddTime extends the Timer by the given number of seconds, preserving
// elapsed time. If the Timer has already run out, the new end is
// relative to ref instead of the stale end time.
func (t *Timer) AddTime(seconds int, ref time.Time) {
	var ext = time.Second * time.Duration(seconds)

	if t.EndTime.Before(ref) {
		t.EndTime = ref.Add(ext)
	} else {
		t.EndTime = t.EndTime.Add(ext)
	}

	t.Duration += ext
} // func (t *Timer) AddTime(seconds int, ref time.Time)

// RingID returns the Timer's ID.
func (t *Timer) RingID() int64 { return t.ID }

// RingKind returns kind.Timer.
func (t *Timer) RingKind() kind.Kind { return kind.Timer }

// Payload returns the title and body to display when notifying the
// user about the Timer.
func (t *Timer) Payload() (string, string) {
	var title = t.Label

	if title == "" {
		title = fmt.Sprintf("Timer #%d", t.ID)
	}

	return title, fmt.Sprintf("Timer over %s", t.Duration)
} // func (t *Timer) Payload() (string, string)
