// /home/krylon/go/src/github.com/blicero/wecker/objects/alarm.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 19:41:26 krylon>

package objects

import (
	"fmt"
	"time"

	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/objects/speech"
)

//go:generate ffjson alarm.go

// Alarm is a wall-clock alarm, possibly recurring on a set of weekdays.
//
// Override is a one-shot replacement for the next regular firing, it is
// cleared once it fires or is reset. SnoozeUntil is set while the Alarm
// is snoozing. SkippedUntil suppresses firings up to and including that
// instant. SnoozeMinutes, MaxSnoozes and AutoStopMinutes override the
// global defaults when positive, zero means "inherit".
//
// At most one of SnoozeUntil/Override determines the next firing at any
// given time, a snooze in the future always outranks the Override.
type Alarm struct {
	ID              int64
	GroupID         int64
	Label           string
	Hour            int
	Minute          int
	Days            Weekdays
	Enabled         bool
	SelfDestruct    bool
	Override        time.Time
	SnoozeUntil     time.Time
	SkippedUntil    time.Time
	SnoozeMinutes   int
	MaxSnoozes      int
	AutoStopMinutes int
	SnoozeCount     int
	LastTrigger     time.Time
	Sound           string
	Volume          int
	FadeInSeconds   int
	Vibrate         bool
	Speech          speech.Mode
	UUID            string
	Changed         time.Time
}

// overrideSlack is the buffer applied when testing the Override against
// the reference point, so an Override right at "now" does not get
// swallowed by clock jitter.
const overrideSlack = time.Second

// NextOccurrence computes the next instant an alarm with the given
// parameters is due to fire, strictly after notBefore.
//
// A snooze in the future wins unconditionally and ignores the
// recurrence entirely. Next in line is the one-shot override.
// Otherwise the target is notBefore's date at hour:minute, shifted by
// the group offset, advanced one day at a time until it is past
// notBefore and - for recurring alarms - lands on one of the configured
// weekdays. The weekday test is applied to the shifted date, not the
// nominal one, so a negative offset crossing midnight matches the day
// the alarm actually goes off.
func NextOccurrence(hour, minute int, days Weekdays, offset time.Duration, override, snooze, notBefore time.Time) time.Time {
	if !snooze.IsZero() && snooze.After(notBefore) {
		return snooze
	} else if !override.IsZero() && override.After(notBefore.Add(overrideSlack)) {
		return override
	}

	var target = time.Date(
		notBefore.Year(),
		notBefore.Month(),
		notBefore.Day(),
		hour,
		minute,
		0,
		0,
		notBefore.Location()).Add(offset)

	if days.Count() == 0 {
		// One-shot Alarm
		if !target.After(notBefore) {
			target = target.AddDate(0, 0, 1)
		}

		return target
	}

	for !target.After(notBefore) || !days.On(target.Weekday()) {
		target = target.AddDate(0, 0, 1)
	}

	return target
} // func NextOccurrence(hour, minute int, days Weekdays, offset time.Duration, override, snooze, notBefore time.Time) time.Time

// NextOccurrence computes the Alarm's next firing after notBefore,
// honoring snooze and override. offset is the owning Group's time shift.
func (a *Alarm) NextOccurrence(offset time.Duration, notBefore time.Time) time.Time {
	return NextOccurrence(
		a.Hour,
		a.Minute,
		a.Days,
		offset,
		a.Override,
		a.SnoozeUntil,
		notBefore)
} // func (a *Alarm) NextOccurrence(offset time.Duration, notBefore time.Time) time.Time

// NormalNext computes the Alarm's next regular firing after notBefore,
// ignoring snooze and override.
func (a *Alarm) NormalNext(offset time.Duration, notBefore time.Time) time.Time {
	return NextOccurrence(
		a.Hour,
		a.Minute,
		a.Days,
		offset,
		time.Time{},
		time.Time{},
		notBefore)
} // func (a *Alarm) NormalNext(offset time.Duration, notBefore time.Time) time.Time

// TimeString returns the Alarm's nominal time of day, formatted HH:MM.
func (a *Alarm) TimeString() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
} // func (a *Alarm) TimeString() string

// RingID returns the Alarm's ID.
func (a *Alarm) RingID() int64 { return a.ID }

// RingKind returns kind.Alarm.
func (a *Alarm) RingKind() kind.Kind { return kind.Alarm }

// Payload returns the title and body to display when notifying the
// user about the Alarm.
func (a *Alarm) Payload() (string, string) {
	var title = a.Label

	if title == "" {
		title = fmt.Sprintf("Alarm %s", a.TimeString())
	}

	return title, fmt.Sprintf("%s (%s)",
		a.TimeString(),
		a.Days.String())
} // func (a *Alarm) Payload() (string, string)

// IsNewer returns true if the receiver's Changed stamp is
// more recent than the argument's.
func (a *Alarm) IsNewer(other *Alarm) bool {
	return a.Changed.After(other.Changed)
} // func (a *Alarm) IsNewer(other *Alarm) bool
