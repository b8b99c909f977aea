// /home/krylon/go/src/github.com/blicero/wecker/objects/01_occurrence_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 20:15:02 krylon>

package objects

import (
	"testing"
	"time"

	"github.com/blicero/wecker/common"
)

var workdays = Weekdays{true, true, true, true, true, false, false}

// 2026-08-05 is a Wednesday.
var wednesday = time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

func TestNextOccurrence(t *testing.T) {
	type testCase struct {
		name      string
		hour, min int
		days      Weekdays
		offset    time.Duration
		override  time.Time
		snooze    time.Time
		notBefore time.Time
		expect    time.Time
	}

	var cases = []testCase{
		testCase{
			name:      "OnceToday",
			hour:      14,
			min:       30,
			notBefore: wednesday.Add(time.Hour * 8),
			expect:    wednesday.Add(time.Hour*14 + time.Minute*30),
		},
		testCase{
			name:      "OncePassed",
			hour:      14,
			min:       30,
			notBefore: wednesday.Add(time.Hour * 20),
			expect:    wednesday.AddDate(0, 0, 1).Add(time.Hour*14 + time.Minute*30),
		},
		testCase{
			name:      "ShiftedToday",
			hour:      7,
			min:       0,
			days:      workdays,
			offset:    time.Minute * -10,
			notBefore: wednesday.Add(time.Hour*6 + time.Minute*49 + time.Second*30),
			expect:    wednesday.Add(time.Hour*6 + time.Minute*50),
		},
		testCase{
			name:      "ShiftedTomorrow",
			hour:      7,
			min:       0,
			days:      workdays,
			offset:    time.Minute * -10,
			notBefore: wednesday.Add(time.Hour*6 + time.Minute*51),
			expect:    wednesday.AddDate(0, 0, 1).Add(time.Hour*6 + time.Minute*50),
		},
		testCase{
			name:      "SkipWeekend",
			hour:      8,
			min:       0,
			days:      workdays,
			notBefore: wednesday.AddDate(0, 0, 2).Add(time.Hour * 9), // Friday 09:00
			expect:    wednesday.AddDate(0, 0, 5).Add(time.Hour * 8), // Monday 08:00
		},
		testCase{
			name:      "SnoozeBeatsAll",
			hour:      7,
			min:       0,
			days:      workdays,
			override:  wednesday.Add(time.Hour * 9),
			snooze:    wednesday.Add(time.Hour*8 + time.Minute*15),
			notBefore: wednesday.Add(time.Hour * 8),
			expect:    wednesday.Add(time.Hour*8 + time.Minute*15),
		},
		testCase{
			name:      "OverrideBeatsRecurrence",
			hour:      7,
			min:       0,
			days:      workdays,
			override:  wednesday.Add(time.Hour * 9),
			notBefore: wednesday.Add(time.Hour * 8),
			expect:    wednesday.Add(time.Hour * 9),
		},
		testCase{
			name:      "OverrideAtNowIsIgnored",
			hour:      7,
			min:       0,
			days:      workdays,
			override:  wednesday.Add(time.Hour * 8),
			notBefore: wednesday.Add(time.Hour * 8),
			expect:    wednesday.AddDate(0, 0, 1).Add(time.Hour * 7),
		},
		testCase{
			name:      "ExpiredSnoozeFallsThrough",
			hour:      7,
			min:       0,
			days:      workdays,
			snooze:    wednesday.Add(time.Hour * 7),
			notBefore: wednesday.Add(time.Hour * 8),
			expect:    wednesday.AddDate(0, 0, 1).Add(time.Hour * 7),
		},
	}

	for _, c := range cases {
		var next = NextOccurrence(
			c.hour,
			c.min,
			c.days,
			c.offset,
			c.override,
			c.snooze,
			c.notBefore)

		if !next.Equal(c.expect) {
			t.Errorf(`Unexpected occurrence for case %s:
Expected:  %s
Got:       %s
`,
				c.name,
				c.expect.Format(common.TimestampFormat),
				next.Format(common.TimestampFormat))
		}
	}
} // func TestNextOccurrence(t *testing.T)

// Without a future snooze or override, the result must be strictly
// after the reference point.
func TestNextOccurrenceMonotonic(t *testing.T) {
	var refs = []time.Time{
		wednesday,
		wednesday.Add(time.Hour*6 + time.Minute*59 + time.Second*59),
		wednesday.Add(time.Hour * 7),
		wednesday.Add(time.Hour*23 + time.Minute*59),
		wednesday.AddDate(0, 0, 3), // Saturday
	}

	for _, ref := range refs {
		for _, days := range []Weekdays{{}, workdays} {
			var next = NextOccurrence(7, 0, days, 0, time.Time{}, time.Time{}, ref)

			if !next.After(ref) {
				t.Errorf("Occurrence %s is not after reference point %s",
					next.Format(common.TimestampFormat),
					ref.Format(common.TimestampFormat))
			} else if days.Count() > 0 && !days.On(next.Weekday()) {
				t.Errorf("Occurrence %s falls on %s, which is not in the recurrence set",
					next.Format(common.TimestampFormat),
					next.Weekday())
			}
		}
	}
} // func TestNextOccurrenceMonotonic(t *testing.T)

func TestTimerAddTime(t *testing.T) {
	var (
		now   = wednesday.Add(time.Hour * 12)
		timer = Timer{
			ID:       1001,
			EndTime:  now.Add(time.Minute * 5),
			Duration: time.Minute * 10,
		}
	)

	timer.AddTime(60, now)

	if !timer.EndTime.Equal(now.Add(time.Minute * 6)) {
		t.Errorf("Unexpected end time after adding 60s: %s",
			timer.EndTime.Format(common.TimestampFormat))
	} else if timer.Duration != time.Minute*11 {
		t.Errorf("Unexpected total duration after adding 60s: %s",
			timer.Duration)
	}

	// An overdue Timer restarts relative to now.
	timer.EndTime = now.Add(time.Minute * -1)
	timer.AddTime(120, now)

	if !timer.EndTime.Equal(now.Add(time.Minute * 2)) {
		t.Errorf("Unexpected end time for overdue Timer: %s",
			timer.EndTime.Format(common.TimestampFormat))
	}
} // func TestTimerAddTime(t *testing.T)
