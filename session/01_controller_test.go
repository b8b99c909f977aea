// /home/krylon/go/src/github.com/blicero/wecker/session/01_controller_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 01:41:17 krylon>

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/database"
	"github.com/blicero/wecker/effector"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/scheduler"
	"github.com/blicero/wecker/session/state"
)

type fakeEffects struct {
	active bool
	starts int
}

func (f *fakeEffects) Start(effector.Params) {
	f.active = true
	f.starts++
} // func (f *fakeEffects) Start(effector.Params)

func (f *fakeEffects) Stop() { f.active = false }

type fakeNotifier struct {
	ringing    []int64
	background []int64
	missed     []int64
}

func (f *fakeNotifier) RenderRinging(id int64, _ kind.Kind, _ string) {
	f.ringing = append(f.ringing, id)
} // func (f *fakeNotifier) RenderRinging(...)

func (f *fakeNotifier) RenderBackground(id int64, _ kind.Kind, _ string) {
	f.background = append(f.background, id)
} // func (f *fakeNotifier) RenderBackground(...)

func (f *fakeNotifier) RenderMissed(id int64, _, _ string) {
	f.missed = append(f.missed, id)
} // func (f *fakeNotifier) RenderMissed(...)

func (f *fakeNotifier) Cancel(int64, kind.Kind) {}

// noopWake satisfies wakeup.Service without starting real timers.
type noopWake struct{}

func (noopWake) Arm(int64, kind.Kind, time.Time, bool) error { return nil }
func (noopWake) Cancel(int64)                                {}
func (noopWake) CanScheduleExact() bool                      { return true }

var (
	pool     *database.Pool
	effects  *fakeEffects
	notifier *fakeNotifier
	ctl      *Controller
)

// 2026-08-05 was a Wednesday.
var wednesday = time.Date(2026, 8, 5, 12, 0, 30, 0, time.Local)

var workdays = objects.Weekdays{true, true, true, true, true, false, false}

func TestMain(m *testing.M) {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("wecker_session_test_%d", time.Now().Unix()))

	if err := common.SetBaseDir(baseDir); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	var result = m.Run()

	os.RemoveAll(baseDir) // nolint: errcheck
	os.Exit(result)
} // func TestMain(m *testing.M)

func TestSummonController(t *testing.T) {
	var (
		err   error
		sched *scheduler.Scheduler
	)

	if pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	} else if sched, err = scheduler.New(pool, noopWake{}, nil, nil); err != nil {
		t.Fatalf("Cannot create Scheduler: %s",
			err.Error())
	}

	sched.SetClock(func() time.Time { return wednesday })

	effects = &fakeEffects{}
	notifier = &fakeNotifier{}

	if ctl, err = New(pool, nil, sched, effects, notifier, nil); err != nil {
		ctl = nil
		t.Fatalf("Cannot create Controller: %s",
			err.Error())
	}

	ctl.SetClock(func() time.Time { return wednesday })

	var db = pool.Get()
	if db == nil {
		t.Fatal("Cannot get database connection from pool")
	}
	defer pool.Put(db)

	var alarms = []objects.Alarm{
		{
			Label:      "Wecken",
			Hour:       7,
			Minute:     0,
			Days:       workdays,
			Enabled:    true,
			MaxSnoozes: 2,
		},
		{
			Label:   "Zweiter",
			Hour:    8,
			Minute:  0,
			Days:    workdays,
			Enabled: true,
		},
		{
			Label:        "Einmalig",
			Hour:         14,
			Minute:       0,
			Enabled:      true,
			SelfDestruct: true,
		},
		{
			Label:   "Mittag",
			Hour:    13,
			Minute:  0,
			Days:    workdays,
			Enabled: true,
		},
	}

	for idx := range alarms {
		if err = db.AlarmAdd(&alarms[idx]); err != nil {
			t.Fatalf("Cannot add Alarm %q: %s",
				alarms[idx].Label,
				err.Error())
		}
	}

	var tmr = objects.Timer{
		ID:       kind.MinTimerID,
		Label:    "Tee",
		EndTime:  wednesday.Add(time.Minute * 5),
		Duration: time.Minute * 5,
	}

	if err = db.TimerAdd(&tmr); err != nil {
		t.Fatalf("Cannot add Timer: %s", err.Error())
	}
} // func TestSummonController(t *testing.T)

// A second trigger while a session rings must not displace it, it goes
// to the back of the queue.
func TestSingleActiveSession(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
	)

	defer pool.Put(db)

	var a1, _ = db.AlarmGetByID(1)
	var a2, _ = db.AlarmGetByID(2)

	if err = ctl.StartOrQueue(a1); err != nil {
		t.Fatalf("Cannot start session for Alarm 1: %s",
			err.Error())
	}

	var st, cur, depth = ctl.Status()

	if st != state.Ringing {
		t.Fatalf("Controller should be Ringing, not %s", st)
	} else if cur == nil || cur.ID != 1 {
		t.Fatal("The active session should belong to Alarm 1")
	} else if !effects.active {
		t.Error("The effectors should be running")
	}

	if err = ctl.StartOrQueue(a2); err != nil {
		t.Fatalf("Cannot queue session for Alarm 2: %s",
			err.Error())
	}

	if st, cur, depth = ctl.Status(); cur == nil || cur.ID != 1 {
		t.Error("Alarm 2 must not displace the active session")
	} else if depth != 1 {
		t.Errorf("Queue depth should be 1, not %d", depth)
	} else if len(notifier.background) != 1 || notifier.background[0] != 2 {
		t.Error("Alarm 2 should have gotten a background notification")
	}
} // func TestSingleActiveSession(t *testing.T)

// Queued sessions resume strictly oldest-first.
func TestResumeOrder(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
	)

	defer pool.Put(db)

	var tmr, _ = db.TimerGetByID(kind.MinTimerID)

	if err = ctl.StartOrQueue(tmr); err != nil {
		t.Fatalf("Cannot queue session for Timer: %s",
			err.Error())
	}

	if _, _, depth := ctl.Status(); depth != 2 {
		t.Fatalf("Queue depth should be 2, not %d", depth)
	}

	if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}

	if _, cur, _ := ctl.Status(); cur == nil || cur.ID != 2 {
		t.Fatal("Alarm 2 should have resumed first")
	}

	if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}

	if _, cur, _ := ctl.Status(); cur == nil || cur.ID != kind.MinTimerID {
		t.Fatal("The Timer should have resumed last")
	}

	if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}

	if st, cur, _ := ctl.Status(); st != state.Idle || cur != nil {
		t.Errorf("Controller should be Idle, state is %s", st)
	} else if effects.active {
		t.Error("The effectors should have been stopped")
	}

	// Timers are single-use, stopping one deletes it.
	if tmr, err = db.TimerGetByID(kind.MinTimerID); err != nil {
		t.Fatalf("Cannot look up Timer: %s", err.Error())
	} else if tmr != nil {
		t.Error("The stopped Timer should have been deleted")
	}
} // func TestResumeOrder(t *testing.T)

// Stopping an Alarm whose regular next occurrence is close sets a skip
// stamp so it does not fire again right away.
func TestStopSetsSkip(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		a   *objects.Alarm
	)

	defer pool.Put(db)

	if a, err = db.AlarmGetByID(4); err != nil {
		t.Fatalf("Cannot look up Alarm 4: %s", err.Error())
	} else if err = ctl.StartOrQueue(a); err != nil {
		t.Fatalf("Cannot start session for Alarm 4: %s",
			err.Error())
	} else if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}

	// Alarm 4 fires at 13:00, half an hour from "now", well within
	// the skip window.
	var want = time.Date(2026, 8, 5, 13, 0, 1, 0, time.Local)

	if a, err = db.AlarmGetByID(4); err != nil {
		t.Fatalf("Cannot look up Alarm 4: %s", err.Error())
	} else if !a.SkippedUntil.Equal(want) {
		t.Errorf("Alarm 4 should be skipped until %s, not %s",
			want.Format(common.TimestampFormat),
			a.SkippedUntil.Format(common.TimestampFormat))
	}
} // func TestStopSetsSkip(t *testing.T)

// An unanswered Alarm with snoozes left gets snoozed automatically.
func TestTimeoutAutoSnooze(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		a   *objects.Alarm
	)

	defer pool.Put(db)

	if a, err = db.AlarmGetByID(1); err != nil {
		t.Fatalf("Cannot look up Alarm 1: %s", err.Error())
	} else if err = ctl.StartOrQueue(a); err != nil {
		t.Fatalf("Cannot start session for Alarm 1: %s",
			err.Error())
	}

	var _, cur, _ = ctl.Status()
	if cur == nil {
		t.Fatal("No session is active")
	}

	ctl.post(command{op: opTimeout, seq: cur.seq})

	if st, cur, _ := ctl.Status(); st != state.Idle || cur != nil {
		t.Fatalf("Controller should be Idle after auto-snooze, state is %s",
			st)
	}

	// Default snooze duration is 10 minutes.
	var want = wednesday.Add(time.Minute * 10)

	if a, err = db.AlarmGetByID(1); err != nil {
		t.Fatalf("Cannot look up Alarm 1: %s", err.Error())
	} else if !a.SnoozeUntil.Equal(want) {
		t.Errorf("Alarm 1 should be snoozed until %s, not %s",
			want.Format(common.TimestampFormat),
			a.SnoozeUntil.Format(common.TimestampFormat))
	} else if a.SnoozeCount != 1 {
		t.Errorf("Alarm 1 should have snooze count 1, not %d",
			a.SnoozeCount)
	}
} // func TestTimeoutAutoSnooze(t *testing.T)

// With the snooze ceiling reached, a timeout means the Alarm was
// missed.
func TestTimeoutMissed(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		a   *objects.Alarm
	)

	defer pool.Put(db)

	if a, err = db.AlarmGetByID(1); err != nil {
		t.Fatalf("Cannot look up Alarm 1: %s", err.Error())
	} else if err = db.AlarmSetSnoozeCount(a, 2); err != nil {
		t.Fatalf("Cannot set snooze count: %s", err.Error())
	} else if err = ctl.StartOrQueue(a); err != nil {
		t.Fatalf("Cannot start session for Alarm 1: %s",
			err.Error())
	}

	var _, cur, _ = ctl.Status()
	if cur == nil {
		t.Fatal("No session is active")
	}

	ctl.post(command{op: opTimeout, seq: cur.seq})

	if st, cur, _ := ctl.Status(); st != state.Idle || cur != nil {
		t.Fatalf("Controller should be Idle after a missed Alarm, state is %s",
			st)
	} else if len(notifier.missed) != 1 || notifier.missed[0] != 1 {
		t.Error("Alarm 1 should have been reported as missed")
	}

	// A missed Alarm has its transient state cleared.
	if a, err = db.AlarmGetByID(1); err != nil {
		t.Fatalf("Cannot look up Alarm 1: %s", err.Error())
	} else if a.SnoozeCount != 0 {
		t.Errorf("Alarm 1 should have snooze count 0, not %d",
			a.SnoozeCount)
	}
} // func TestTimeoutMissed(t *testing.T)

// A stale timeout for a session that has already ended must be
// ignored.
func TestStaleTimeout(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		a   *objects.Alarm
	)

	defer pool.Put(db)

	if a, err = db.AlarmGetByID(2); err != nil {
		t.Fatalf("Cannot look up Alarm 2: %s", err.Error())
	} else if err = ctl.StartOrQueue(a); err != nil {
		t.Fatalf("Cannot start session for Alarm 2: %s",
			err.Error())
	}

	var _, cur, _ = ctl.Status()

	ctl.post(command{op: opTimeout, seq: cur.seq - 1})

	if st, cur, _ := ctl.Status(); st != state.Ringing || cur == nil {
		t.Errorf("A stale timeout must not end the session, state is %s",
			st)
	}

	if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}
} // func TestStaleTimeout(t *testing.T)

// A single-use Alarm is deleted when its session is stopped.
func TestSelfDestruct(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		a   *objects.Alarm
	)

	defer pool.Put(db)

	if a, err = db.AlarmGetByID(3); err != nil {
		t.Fatalf("Cannot look up Alarm 3: %s", err.Error())
	} else if err = ctl.StartOrQueue(a); err != nil {
		t.Fatalf("Cannot start session for Alarm 3: %s",
			err.Error())
	} else if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}

	if a, err = db.AlarmGetByID(3); err != nil {
		t.Fatalf("Cannot look up Alarm 3: %s", err.Error())
	} else if a != nil {
		t.Error("The single-use Alarm should have been deleted")
	}
} // func TestSelfDestruct(t *testing.T)

// Extending a ringing Timer ends the ring without deleting the Timer.
func TestAddTime(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
		tmr = objects.Timer{
			ID:       kind.MinTimerID + 1,
			Label:    "Nudeln",
			EndTime:  wednesday.Add(time.Minute * 8),
			Duration: time.Minute * 8,
		}
	)

	defer pool.Put(db)

	if err = db.TimerAdd(&tmr); err != nil {
		t.Fatalf("Cannot add Timer: %s", err.Error())
	} else if err = ctl.StartOrQueue(&tmr); err != nil {
		t.Fatalf("Cannot start session for Timer: %s",
			err.Error())
	} else if err = ctl.AddTime(tmr.ID, 300); err != nil {
		t.Fatalf("Cannot extend Timer: %s", err.Error())
	}

	if st, cur, _ := ctl.Status(); st != state.Idle || cur != nil {
		t.Errorf("Extending the ringing Timer should end the ring, state is %s",
			st)
	}

	var fresh *objects.Timer

	if fresh, err = db.TimerGetByID(tmr.ID); err != nil {
		t.Fatalf("Cannot look up Timer: %s", err.Error())
	} else if fresh == nil {
		t.Fatal("Extending a Timer must not delete it")
	}

	var want = wednesday.Add(time.Minute*8 + time.Second*300)

	if !fresh.EndTime.Equal(want) {
		t.Errorf("Timer should end at %s, not %s",
			want.Format(common.TimestampFormat),
			fresh.EndTime.Format(common.TimestampFormat))
	}

	if err = db.TimerDelete(fresh); err != nil {
		t.Fatalf("Cannot clean up Timer: %s", err.Error())
	}
} // func TestAddTime(t *testing.T)

// Restoring queued sessions after a restart drops entries whose
// targets no longer exist.
func TestRestoreStale(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var queue = []objects.Interruption{
		{
			ID:       100,
			TargetID: 99, // does not exist
			Kind:     kind.Alarm,
			Label:    "Geist",
			QueuedAt: wednesday,
		},
		{
			ID:       101,
			TargetID: 2,
			Kind:     kind.Alarm,
			Label:    "Zweiter",
			QueuedAt: wednesday,
		},
	}

	if err := ctl.Restore(queue); err != nil {
		t.Fatalf("Cannot restore queue: %s", err.Error())
	}

	if st, cur, depth := ctl.Status(); st != state.Ringing || cur == nil {
		t.Fatalf("Restore should have resumed Alarm 2, state is %s", st)
	} else if cur.ID != 2 {
		t.Errorf("Restored session should belong to Alarm 2, not %d",
			cur.ID)
	} else if depth != 0 {
		t.Errorf("Queue depth should be 0, not %d", depth)
	}

	if err := ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}
} // func TestRestoreStale(t *testing.T)

// Stopping a target that is merely queued drops its queue entry
// without touching the active session.
func TestStopQueuedTarget(t *testing.T) {
	if ctl == nil {
		t.SkipNow()
	}

	var (
		err error
		db  = pool.Get()
	)

	defer pool.Put(db)

	var a1, _ = db.AlarmGetByID(1)
	var a2, _ = db.AlarmGetByID(2)

	if err = ctl.StartOrQueue(a1); err != nil {
		t.Fatalf("Cannot start session for Alarm 1: %s",
			err.Error())
	} else if err = ctl.StartOrQueue(a2); err != nil {
		t.Fatalf("Cannot queue session for Alarm 2: %s",
			err.Error())
	}

	if err = ctl.Stop(2); err != nil {
		t.Fatalf("Cannot stop queued Alarm 2: %s", err.Error())
	}

	if st, cur, depth := ctl.Status(); st != state.Ringing || cur == nil || cur.ID != 1 {
		t.Errorf("Stopping a queued target must not end the active session, state is %s",
			st)
	} else if depth != 0 {
		t.Errorf("Queue depth should be 0, not %d", depth)
	}

	if err = ctl.Stop(77); err == nil {
		t.Error("Stopping an unknown target should fail")
	}

	if err = ctl.Stop(0); err != nil {
		t.Fatalf("Cannot stop session: %s", err.Error())
	}
} // func TestStopQueuedTarget(t *testing.T)
