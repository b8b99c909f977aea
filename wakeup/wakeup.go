// /home/krylon/go/src/github.com/blicero/wecker/wakeup/wakeup.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 18:21:46 krylon>

// Package wakeup provides the wake-up timer service, the primitive the
// scheduler uses to get called back at a precise instant. The slot for
// any given ID is exclusive, arming it again replaces the previous
// timer, so no ID can fire twice.
package wakeup

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects/kind"
)

// ErrDenied is returned by Arm when exact scheduling was requested but
// is not currently permitted.
var ErrDenied = errors.New("exact scheduling is not permitted")

// Callback is invoked when an armed timer fires.
type Callback func(id int64, k kind.Kind)

// Service is the wake-up timer primitive the scheduler talks to.
type Service interface {
	Arm(id int64, k kind.Kind, at time.Time, exact bool) error
	Cancel(id int64)
	CanScheduleExact() bool
}

// slot is one armed wake-up. gen identifies the arming that created
// it; a firing carrying an older gen was superseded by a re-arm and
// must not be delivered.
type slot struct {
	tm  *time.Timer
	at  time.Time
	gen uint64
}

// InProcess is a Service backed by in-process timers. It is the
// implementation used by the daemon; on platforms with a real OS-level
// alarm facility a Service wrapping that would take its place.
type InProcess struct {
	log    *log.Logger
	lock   sync.Mutex
	timers map[int64]*slot
	gen    uint64
	cb     Callback
	exact  bool
}

// NewInProcess creates an InProcess service delivering firings to the
// given Callback.
func NewInProcess(cb Callback) (*InProcess, error) {
	var (
		err error
		srv = &InProcess{
			timers: make(map[int64]*slot),
			cb:     cb,
			exact:  true,
		}
	)

	if srv.log, err = common.GetLogger(logdomain.Wakeup); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	return srv, nil
} // func NewInProcess(cb Callback) (*InProcess, error)

// Arm schedules a firing for the given ID at the given instant,
// replacing any previous timer for that ID. A firing in the past is
// delivered immediately. Stopping the old timer can lose the race
// against its firing, so each arming gets a fresh generation stamp
// and fire drops anything stamped older.
func (s *InProcess) Arm(id int64, k kind.Kind, at time.Time, exact bool) error {
	if exact && !s.CanScheduleExact() {
		return ErrDenied
	}

	var delay = time.Until(at)
	if delay < 0 {
		delay = 0
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if old, ok := s.timers[id]; ok {
		old.tm.Stop()
	}

	s.gen++

	var sl = &slot{at: at, gen: s.gen}
	var gen = s.gen

	sl.tm = time.AfterFunc(delay, func() { s.fire(id, k, gen) })
	s.timers[id] = sl

	s.log.Printf("[DEBUG] Armed wake-up %d (%s) for %s\n",
		id,
		k,
		at.Format(common.TimestampFormat))

	return nil
} // func (s *InProcess) Arm(id int64, k kind.Kind, at time.Time, exact bool) error

// Cancel stops and removes the timer for the given ID, if one is armed.
func (s *InProcess) Cancel(id int64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if sl, ok := s.timers[id]; ok {
		sl.tm.Stop()
		delete(s.timers, id)
		s.log.Printf("[DEBUG] Cancelled wake-up %d\n", id)
	}
} // func (s *InProcess) Cancel(id int64)

// CanScheduleExact returns true if exact scheduling is permitted.
func (s *InProcess) CanScheduleExact() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.exact
} // func (s *InProcess) CanScheduleExact() bool

// SetExactPermitted toggles the exact-scheduling capability.
func (s *InProcess) SetExactPermitted(ok bool) {
	s.lock.Lock()
	s.exact = ok
	s.lock.Unlock()
} // func (s *InProcess) SetExactPermitted(ok bool)

// Armed returns true if a timer is currently armed for the given ID.
func (s *InProcess) Armed(id int64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	var _, ok = s.timers[id]
	return ok
} // func (s *InProcess) Armed(id int64) bool

// ArmedAt returns the instant the timer for the given ID is armed for,
// if one is armed.
func (s *InProcess) ArmedAt(id int64) (time.Time, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if sl, ok := s.timers[id]; ok {
		return sl.at, true
	}

	return time.Time{}, false
} // func (s *InProcess) ArmedAt(id int64) (time.Time, bool)

func (s *InProcess) fire(id int64, k kind.Kind, gen uint64) {
	s.lock.Lock()

	var sl, ok = s.timers[id]
	if !ok || sl.gen != gen {
		// This firing lost the race against a re-arm or a
		// Cancel, the slot no longer belongs to it.
		s.lock.Unlock()
		s.log.Printf("[DEBUG] Dropping superseded firing of wake-up %d\n",
			id)
		return
	}

	delete(s.timers, id)
	s.lock.Unlock()

	s.log.Printf("[DEBUG] Wake-up %d (%s) is firing\n",
		id,
		k)

	s.cb(id, k)
} // func (s *InProcess) fire(id int64, k kind.Kind, gen uint64)
