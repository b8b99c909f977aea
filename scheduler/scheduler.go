// /home/krylon/go/src/github.com/blicero/wecker/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 23:58:27 krylon>

// Package scheduler decides when the wake-up timers get armed. It
// computes each Alarm's next occurrence, applies the grace window so a
// computation running a little late does not push today's firing to
// tomorrow, arms the wake-up service, and keeps the shared lead-time
// wake-up for the upcoming-alarm indicator current.
package scheduler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/database"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/wakeup"
)

// GracePeriod is the window within which a freshly computed trigger
// time may lie in the past and still be considered current. If the
// scheduling computation runs a few seconds after the intended minute
// boundary, the Alarm must still be armed for today, not tomorrow.
const GracePeriod = time.Second * 60

// LeadID is the reserved wake-up slot for the shared lead-time
// indicator. It lies outside both the Alarm and the Timer ID space.
const LeadID int64 = -1

// Indicator is the collaborator that renders the upcoming-alarm
// notice.
type Indicator interface {
	ShowUpcoming(id int64, label string, at time.Time)
	HideUpcoming()
}

// Upcoming describes the next Alarm due system-wide.
type Upcoming struct {
	AlarmID    int64
	Label      string
	When       time.Time
	TimeString string
	Countdown  time.Duration
}

// Scheduler arms and cancels wake-up timers for Alarms and Timers.
type Scheduler struct {
	log       *log.Logger
	pool      *database.Pool
	timers    wakeup.Service
	indicator Indicator
	settings  func() objects.Settings
	clock     func() time.Time
}

// New creates a Scheduler. indicator may be nil if no lead-time
// indicator is wanted.
func New(pool *database.Pool, timers wakeup.Service, indicator Indicator, settings func() objects.Settings) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{
			pool:      pool,
			timers:    timers,
			indicator: indicator,
			settings:  settings,
			clock:     time.Now,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	if s.settings == nil {
		s.settings = objects.DefaultSettings
	}

	return s, nil
} // func New(...) (*Scheduler, error)

// Schedule computes the Alarm's next occurrence and arms the wake-up
// timer for it. g is the Alarm's Group, nil for ungrouped Alarms.
func (s *Scheduler) Schedule(a *objects.Alarm, g *objects.Group) error {
	var now = s.clock()

	if !a.Enabled {
		s.timers.Cancel(a.ID)
		s.refreshLead(now)
		return nil
	}

	// A snooze is an absolute instant, it must not be subject to
	// the grace window.
	var notBefore time.Time

	if !a.SnoozeUntil.After(now) {
		notBefore = maxTime(
			now.Add(-GracePeriod),
			a.SkippedUntil,
			g.Skip())
	}

	var trigger = a.NextOccurrence(g.Offset(), notBefore)

	if !trigger.After(now.Add(-GracePeriod)) {
		// Guards against double-processing of old events. The
		// lead-time wake-up still needs recomputing, whatever
		// was armed for this Alarm no longer counts.
		s.log.Printf("[INFO] Computed trigger time for Alarm %d is stale (%s), not arming\n",
			a.ID,
			trigger.Format(common.TimestampFormat))
		s.timers.Cancel(a.ID)
		s.refreshLead(now)
		return nil
	}

	if err := s.arm(a.ID, kind.Alarm, trigger); err != nil {
		return err
	}

	s.log.Printf("[DEBUG] Alarm %d is armed for %s\n",
		a.ID,
		trigger.Format(common.TimestampFormat))

	s.refreshLead(now)
	return nil
} // func (s *Scheduler) Schedule(a *objects.Alarm, g *objects.Group) error

// ScheduleTimer arms the wake-up timer for a Timer's end time.
func (s *Scheduler) ScheduleTimer(t *objects.Timer) error {
	return s.arm(t.ID, kind.Timer, t.EndTime)
} // func (s *Scheduler) ScheduleTimer(t *objects.Timer) error

// Cancel unconditionally cancels the wake-up timer for the given ID
// and recomputes the shared lead-time wake-up, since cancelling the
// nearest Alarm may change what "next" is.
func (s *Scheduler) Cancel(id int64) {
	s.timers.Cancel(id)
	s.refreshLead(s.clock())
} // func (s *Scheduler) Cancel(id int64)

// arm arms the wake-up service, falling back to an inexact wake-up if
// exact scheduling is denied.
func (s *Scheduler) arm(id int64, k kind.Kind, at time.Time) error {
	var err error

	if err = s.timers.Arm(id, k, at, true); err == nil {
		return nil
	} else if !errors.Is(err, wakeup.ErrDenied) {
		s.log.Printf("[ERROR] Cannot arm wake-up %d: %s\n",
			id,
			err.Error())
		return err
	}

	s.log.Printf("[INFO] Exact scheduling is not permitted, arming inexact wake-up for %d\n",
		id)

	if err = s.timers.Arm(id, k, at, false); err != nil {
		s.log.Printf("[ERROR] Inexact fallback for wake-up %d failed as well: %s\n",
			id,
			err.Error())
		return err
	}

	return nil
} // func (s *Scheduler) arm(id int64, k kind.Kind, at time.Time) error

type candidate struct {
	alarm objects.Alarm
	group *objects.Group
	when  time.Time
}

// scan computes the next occurrence of every enabled Alarm, using
// max(now, alarm skip, group skip) as the reference point.
func (s *Scheduler) scan(now time.Time) ([]candidate, error) {
	var (
		err    error
		db     = s.pool.Get()
		groups []objects.Group
		alarms []objects.Alarm
	)

	if db == nil {
		return nil, errors.New("no database connection available")
	}
	defer s.pool.Put(db)

	if groups, err = db.GroupGetAll(); err != nil {
		s.log.Printf("[ERROR] Cannot load Groups: %s\n",
			err.Error())
		return nil, err
	} else if alarms, err = db.AlarmGetAll(); err != nil {
		s.log.Printf("[ERROR] Cannot load Alarms: %s\n",
			err.Error())
		return nil, err
	}

	var gmap = make(map[int64]*objects.Group, len(groups))
	for idx := range groups {
		gmap[groups[idx].ID] = &groups[idx]
	}

	var cands = make([]candidate, 0, len(alarms))

	for idx := range alarms {
		var a = alarms[idx]

		if !a.Enabled {
			continue
		}

		var g = gmap[a.GroupID]
		var notBefore = maxTime(now, a.SkippedUntil, g.Skip())

		cands = append(cands, candidate{
			alarm: a,
			group: g,
			when:  a.NextOccurrence(g.Offset(), notBefore),
		})
	}

	return cands, nil
} // func (s *Scheduler) scan(now time.Time) ([]candidate, error)

// NextSystemAlarm returns the next Alarm due across all Groups, or nil
// if no Alarm is enabled.
func (s *Scheduler) NextSystemAlarm() (*Upcoming, error) {
	var (
		err   error
		now   = s.clock()
		cands []candidate
	)

	if cands, err = s.scan(now); err != nil {
		return nil, err
	}

	var best *candidate

	for idx := range cands {
		if best == nil || cands[idx].when.Before(best.when) {
			best = &cands[idx]
		}
	}

	if best == nil {
		return nil, nil
	}

	return &Upcoming{
		AlarmID:    best.alarm.ID,
		Label:      best.alarm.Label,
		When:       best.when,
		TimeString: best.when.Format(common.TimestampFormatMinute),
		Countdown:  best.when.Sub(now),
	}, nil
} // func (s *Scheduler) NextSystemAlarm() (*Upcoming, error)

// SkipNext suppresses the next firing of the system-wide next Alarm by
// stamping its skip time one second past the computed occurrence, then
// re-arms the Alarm so the wake-up timer advances to the occurrence
// after the skipped one.
func (s *Scheduler) SkipNext() (*Upcoming, error) {
	var (
		err   error
		now   = s.clock()
		cands []candidate
	)

	if cands, err = s.scan(now); err != nil {
		return nil, err
	}

	var best *candidate

	for idx := range cands {
		if best == nil || cands[idx].when.Before(best.when) {
			best = &cands[idx]
		}
	}

	if best == nil {
		return nil, nil
	}

	var db = s.pool.Get()
	if db == nil {
		return nil, errors.New("no database connection available")
	}
	defer s.pool.Put(db)

	if err = db.AlarmSetSkip(&best.alarm, best.when.Add(time.Second)); err != nil {
		s.log.Printf("[ERROR] Cannot set skip stamp on Alarm %d: %s\n",
			best.alarm.ID,
			err.Error())
		return nil, err
	}

	s.log.Printf("[INFO] Skipping Alarm %d at %s\n",
		best.alarm.ID,
		best.when.Format(common.TimestampFormat))

	if err = s.Schedule(&best.alarm, best.group); err != nil {
		return nil, err
	}

	return &Upcoming{
		AlarmID:    best.alarm.ID,
		Label:      best.alarm.Label,
		When:       best.when,
		TimeString: best.when.Format(common.TimestampFormatMinute),
		Countdown:  best.when.Sub(now),
	}, nil
} // func (s *Scheduler) SkipNext() (*Upcoming, error)

// HandleLead is called when the lead-time wake-up fires, it shows the
// upcoming-alarm indicator for whatever is next at that point.
func (s *Scheduler) HandleLead() {
	var (
		err error
		up  *Upcoming
	)

	if up, err = s.NextSystemAlarm(); err != nil || up == nil {
		return
	}

	if s.indicator != nil {
		s.indicator.ShowUpcoming(up.AlarmID, up.Label, up.When)
	}
} // func (s *Scheduler) HandleLead()

// refreshLead recomputes the shared lead-time wake-up.
func (s *Scheduler) refreshLead(now time.Time) {
	var (
		err error
		up  *Upcoming
	)

	if up, err = s.NextSystemAlarm(); err != nil {
		return
	} else if up == nil {
		s.timers.Cancel(LeadID)
		if s.indicator != nil {
			s.indicator.HideUpcoming()
		}
		return
	}

	var lead = time.Minute * time.Duration(s.settings().NotifyLeadMinutes)
	var leadAt = up.When.Add(-lead)

	if !leadAt.After(now) {
		// Lead time has already passed, show the indicator right away.
		s.timers.Cancel(LeadID)
		if s.indicator != nil {
			s.indicator.ShowUpcoming(up.AlarmID, up.Label, up.When)
		}
		return
	}

	if err = s.timers.Arm(LeadID, kind.Alarm, leadAt, false); err != nil {
		s.log.Printf("[ERROR] Cannot arm lead-time wake-up: %s\n",
			err.Error())
	}
} // func (s *Scheduler) refreshLead(now time.Time)

// SetClock replaces the Scheduler's time source. Tests use this to get
// deterministic results.
func (s *Scheduler) SetClock(clock func() time.Time) {
	s.clock = clock
} // func (s *Scheduler) SetClock(clock func() time.Time)

func maxTime(stamps ...time.Time) time.Time {
	var max time.Time

	for _, t := range stamps {
		if t.After(max) {
			max = t
		}
	}

	return max
} // func maxTime(stamps ...time.Time) time.Time
