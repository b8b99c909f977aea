// /home/krylon/go/src/github.com/blicero/wecker/session/session.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 01:22:40 krylon>

// Package session implements the ringing session controller. At most
// one session is ringing at any instant, triggers that arrive while
// another session is active are parked on a FIFO queue and resumed in
// order. All state transitions run on a single mailbox goroutine, so
// they are serialized against each other.
package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/database"
	"github.com/blicero/wecker/effector"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/scheduler"
	"github.com/blicero/wecker/session/state"
)

const (
	mailboxDepth = 16
	// An Alarm the user just dismissed must not fire again right
	// away due to a tight recurrence.
	stopSkipWindow = time.Hour * 6
	// Floor for the auto-stop timeout.
	minTimeout = time.Minute
)

// ErrNotRinging is returned by commands that need an active session
// when there is none.
var ErrNotRinging = errors.New("no session is ringing")

// Effects is the output side of a ringing session.
type Effects interface {
	Start(p effector.Params)
	Stop()
}

// Notifier renders the visual side of the session lifecycle.
type Notifier interface {
	RenderRinging(id int64, k kind.Kind, label string)
	RenderBackground(id int64, k kind.Kind, label string)
	RenderMissed(id int64, label, timeStr string)
	Cancel(id int64, k kind.Kind)
}

// SessionInfo describes the currently ringing session.
type SessionInfo struct {
	ID       int64
	Kind     kind.Kind
	Label    string
	Started  time.Time
	Deadline time.Time
	seq      uint64
}

type opcode uint8

const (
	opStart opcode = iota
	opStop
	opSnooze
	opCancelSnooze
	opAddTime
	opTimeout
	opRestore
	opStatus
	opClose
)

type command struct {
	op      opcode
	id      int64
	kind    kind.Kind
	label   string
	minutes int
	seconds int
	seq     uint64
	queue   []objects.Interruption
	res     chan result
}

type result struct {
	err   error
	st    state.State
	cur   *SessionInfo
	depth int
}

// active is the loop-owned record of the session that is ringing.
type active struct {
	id           int64
	kind         kind.Kind
	label        string
	started      time.Time
	deadline     time.Time
	seq          uint64
	snoozeMin    int
	maxSnooze    int
	snoozeCount  int
	selfDestruct bool
	timeout      *time.Timer
}

// Controller owns the single active ringing session.
type Controller struct {
	log      *log.Logger
	pool     *database.Pool
	writer   *database.Writer
	sched    *scheduler.Scheduler
	effects  Effects
	notifier Notifier
	settings func() objects.Settings
	clock    func() time.Time
	mailbox  chan command

	// The following fields belong to the mailbox goroutine, nobody
	// else gets to touch them.
	st      state.State
	cur     *active
	queue   []objects.Interruption
	seq     uint64
	nextQID int64
}

// New creates a Controller and starts its mailbox goroutine.
func New(pool *database.Pool, writer *database.Writer, sched *scheduler.Scheduler, effects Effects, notifier Notifier, settings func() objects.Settings) (*Controller, error) {
	var (
		err error
		c   = &Controller{
			pool:     pool,
			writer:   writer,
			sched:    sched,
			effects:  effects,
			notifier: notifier,
			settings: settings,
			clock:    time.Now,
			mailbox:  make(chan command, mailboxDepth),
			st:       state.Idle,
			nextQID:  1,
		}
	)

	if c.log, err = common.GetLogger(logdomain.Session); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	if c.settings == nil {
		c.settings = objects.DefaultSettings
	}

	go c.loop()

	return c, nil
} // func New(...) (*Controller, error)

// SetClock replaces the Controller's time source, for testing.
func (c *Controller) SetClock(clock func() time.Time) {
	c.clock = clock
} // func (c *Controller) SetClock(clock func() time.Time)

// StartOrQueue starts a ringing session for the given Ringer, or
// queues it if another session is active.
func (c *Controller) StartOrQueue(r objects.Ringer) error {
	var label, _ = r.Payload()
	return c.post(command{
		op:    opStart,
		id:    r.RingID(),
		kind:  r.RingKind(),
		label: label,
	}).err
} // func (c *Controller) StartOrQueue(r objects.Ringer) error

// Stop ends the active ringing session. A non-zero id that does not
// match the active session removes the matching entry from the
// preemption queue instead.
func (c *Controller) Stop(id int64) error {
	return c.post(command{op: opStop, id: id}).err
} // func (c *Controller) Stop(id int64) error

// Snooze snoozes the active session. minutes may be 0 to use the
// per-alarm or global default.
func (c *Controller) Snooze(minutes int) error {
	return c.post(command{op: opSnooze, minutes: minutes}).err
} // func (c *Controller) Snooze(minutes int) error

// CancelSnooze clears an Alarm's snooze and re-arms it for its regular
// next occurrence.
func (c *Controller) CancelSnooze(id int64) error {
	return c.post(command{op: opCancelSnooze, id: id}).err
} // func (c *Controller) CancelSnooze(id int64) error

// AddTime extends a Timer by the given number of seconds. If that
// Timer is currently ringing, the ring ends and the Timer waits for
// its new end time.
func (c *Controller) AddTime(id int64, seconds int) error {
	return c.post(command{op: opAddTime, id: id, seconds: seconds}).err
} // func (c *Controller) AddTime(id int64, seconds int) error

// Restore reloads persisted Interruptions after a restart and starts
// ringing the oldest one whose target still exists.
func (c *Controller) Restore(queue []objects.Interruption) error {
	return c.post(command{op: opRestore, queue: queue}).err
} // func (c *Controller) Restore(queue []objects.Interruption) error

// Status returns the Controller's state, the active session (nil when
// idle), and the depth of the preemption queue.
func (c *Controller) Status() (state.State, *SessionInfo, int) {
	var res = c.post(command{op: opStatus})
	return res.st, res.cur, res.depth
} // func (c *Controller) Status() (state.State, *SessionInfo, int)

// Close shuts down the mailbox goroutine, stopping any active session.
func (c *Controller) Close() {
	c.post(command{op: opClose})
} // func (c *Controller) Close()

func (c *Controller) post(cmd command) result {
	cmd.res = make(chan result, 1)
	c.mailbox <- cmd
	return <-cmd.res
} // func (c *Controller) post(cmd command) result

func (c *Controller) loop() {
	for cmd := range c.mailbox {
		var res result

		switch cmd.op {
		case opStart:
			res.err = c.handleStart(cmd.id, cmd.kind, cmd.label)
		case opStop:
			res.err = c.handleStop(cmd.id)
		case opSnooze:
			res.err = c.handleSnooze(cmd.minutes)
		case opCancelSnooze:
			res.err = c.handleCancelSnooze(cmd.id)
		case opAddTime:
			res.err = c.handleAddTime(cmd.id, cmd.seconds)
		case opTimeout:
			c.handleTimeout(cmd.seq)
		case opRestore:
			res.err = c.handleRestore(cmd.queue)
		case opStatus:
			res.st = c.st
			res.depth = len(c.queue)
			if c.cur != nil {
				res.cur = &SessionInfo{
					ID:       c.cur.id,
					Kind:     c.cur.kind,
					Label:    c.cur.label,
					Started:  c.cur.started,
					Deadline: c.cur.deadline,
					seq:      c.cur.seq,
				}
			}
		case opClose:
			if c.cur != nil {
				c.endEffects()
				c.cur = nil
			}
			cmd.res <- res
			return
		default:
			c.log.Printf("[CANTHAPPEN] Unknown opcode %d\n",
				cmd.op)
		}

		cmd.res <- res
	}
} // func (c *Controller) loop()

func (c *Controller) handleStart(id int64, k kind.Kind, label string) error {
	if c.cur != nil {
		if c.cur.id == id && c.cur.kind == k {
			c.log.Printf("[DEBUG] %s %d is already ringing\n",
				k,
				id)
			return nil
		}
		c.enqueue(id, k, label)
		return nil
	}

	return c.beginRing(id, k)
} // func (c *Controller) handleStart(id int64, k kind.Kind, label string) error

// enqueue parks a trigger on the preemption queue. A fresh trigger for
// an already-queued target replaces the old entry.
func (c *Controller) enqueue(id int64, k kind.Kind, label string) {
	for idx := range c.queue {
		if c.queue[idx].TargetID == id && c.queue[idx].Kind == k {
			c.queue = append(c.queue[:idx], c.queue[idx+1:]...)
			break
		}
	}

	var entry = objects.Interruption{
		ID:       c.nextQID,
		TargetID: id,
		Kind:     k,
		Label:    label,
		QueuedAt: c.clock(),
	}
	c.nextQID++

	c.queue = append(c.queue, entry)

	c.log.Printf("[INFO] %s %d interrupted while %s %d is ringing, queued at position %d\n",
		k,
		id,
		c.cur.kind,
		c.cur.id,
		len(c.queue))

	if c.writer != nil {
		c.writer.Persist("queue interruption", func(db *database.Database) error {
			return db.InterruptionAdd(&entry)
		})
	}

	if c.notifier != nil {
		c.notifier.RenderBackground(id, k, label)
	}
} // func (c *Controller) enqueue(id int64, k kind.Kind, label string)

// beginRing starts the effectors and the timeout for the given target.
// Returns without starting anything if the target no longer exists.
func (c *Controller) beginRing(id int64, k kind.Kind) error {
	var (
		err error
		db  = c.pool.Get()
		now = c.clock()
		cfg = c.settings()
		p   effector.Params
		cur = &active{
			id:      id,
			kind:    k,
			started: now,
		}
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	switch k {
	case kind.Alarm:
		var a *objects.Alarm

		if a, err = db.AlarmGetByID(id); err != nil {
			return err
		} else if a == nil {
			c.log.Printf("[INFO] Alarm %d no longer exists, dropping trigger\n",
				id)
			return nil
		}

		p = effector.Params{
			Label:         a.Label,
			Sound:         a.Sound,
			Volume:        a.Volume,
			FadeInSeconds: a.FadeInSeconds,
			Vibrate:       a.Vibrate,
			Speech:        a.Speech,
		}
		if p.Sound == "" {
			p.Sound = cfg.DefaultSound
		}

		cur.label = a.Label
		cur.selfDestruct = a.SelfDestruct
		cur.snoozeCount = a.SnoozeCount
		if cur.snoozeMin = a.SnoozeMinutes; cur.snoozeMin == 0 {
			cur.snoozeMin = cfg.SnoozeMinutes
		}
		if cur.maxSnooze = a.MaxSnoozes; cur.maxSnooze == 0 {
			cur.maxSnooze = cfg.MaxSnoozes
		}

		var timeout = a.AutoStopMinutes
		if timeout == 0 {
			timeout = cfg.AutoStopAlarmMinutes
		}
		cur.deadline = now.Add(maxDuration(
			time.Duration(timeout)*time.Minute,
			minTimeout))

		// The snooze that got us here is consumed.
		if err = db.AlarmSetSnooze(a, time.Time{}); err != nil {
			return err
		}

		var alarm = *a
		if c.writer != nil {
			c.writer.Persist("stamp last trigger", func(db *database.Database) error {
				return db.AlarmSetLastTrigger(&alarm, now)
			})
		}

	case kind.Timer:
		var t *objects.Timer

		if t, err = db.TimerGetByID(id); err != nil {
			return err
		} else if t == nil {
			c.log.Printf("[INFO] Timer %d no longer exists, dropping trigger\n",
				id)
			return nil
		}

		p = effector.Params{
			Label:   t.Label,
			Sound:   cfg.TimerSound,
			Volume:  cfg.TimerVolume,
			Vibrate: cfg.TimerVibrate,
			Speech:  cfg.TimerSpeech,
		}

		cur.label = t.Label
		cur.deadline = now.Add(maxDuration(
			time.Duration(cfg.AutoStopTimerMinutes)*time.Minute,
			minTimeout))
	}

	c.seq++
	cur.seq = c.seq
	c.cur = cur
	c.st = state.Ringing

	c.log.Printf("[INFO] %s %d (%q) starts ringing, timeout at %s\n",
		k,
		id,
		cur.label,
		cur.deadline.Format(common.TimestampFormat))

	if c.effects != nil {
		c.effects.Start(p)
	}
	if c.notifier != nil {
		c.notifier.RenderRinging(id, k, cur.label)
	}

	var (
		seq      = cur.seq
		deadline = cur.deadline.Sub(now)
	)
	cur.timeout = time.AfterFunc(deadline, func() {
		c.post(command{op: opTimeout, seq: seq})
	})

	return nil
} // func (c *Controller) beginRing(id int64, k kind.Kind) error

// endEffects silences the effectors and cancels the timeout for the
// active session.
func (c *Controller) endEffects() {
	if c.cur.timeout != nil {
		c.cur.timeout.Stop()
	}
	if c.effects != nil {
		c.effects.Stop()
	}
	if c.notifier != nil {
		c.notifier.Cancel(c.cur.id, c.cur.kind)
	}
} // func (c *Controller) endEffects()

// resume pops the preemption queue and begins ringing the oldest
// entry whose target still exists, or goes idle.
func (c *Controller) resume() {
	c.cur = nil
	c.st = state.Idle

	for len(c.queue) > 0 {
		var entry = c.queue[0]
		c.queue = c.queue[1:]

		if c.writer != nil {
			c.writer.Persist("drop interruption", func(db *database.Database) error {
				return db.InterruptionDelete(entry.TargetID, entry.Kind)
			})
		}

		if err := c.beginRing(entry.TargetID, entry.Kind); err != nil {
			c.log.Printf("[ERROR] Cannot resume %s %d: %s\n",
				entry.Kind,
				entry.TargetID,
				err.Error())
			continue
		}

		if c.cur != nil {
			return
		}
		// Target vanished, try the next entry.
	}
} // func (c *Controller) resume()

func (c *Controller) handleStop(id int64) error {
	if c.cur == nil || (id != 0 && (id != c.cur.id)) {
		return c.dropQueued(id)
	}

	c.endEffects()

	var err error

	switch c.cur.kind {
	case kind.Alarm:
		err = c.finishAlarm()
	case kind.Timer:
		err = c.finishTimer()
	}

	c.st = state.Stopped
	c.log.Printf("[INFO] %s %d stopped\n",
		c.cur.kind,
		c.cur.id)

	c.resume()
	return err
} // func (c *Controller) handleStop(id int64) error

// dropQueued removes a queued entry by target id.
func (c *Controller) dropQueued(id int64) error {
	for idx := range c.queue {
		if c.queue[idx].TargetID != id {
			continue
		}

		var entry = c.queue[idx]
		c.queue = append(c.queue[:idx], c.queue[idx+1:]...)

		if c.writer != nil {
			c.writer.Persist("drop interruption", func(db *database.Database) error {
				return db.InterruptionDelete(entry.TargetID, entry.Kind)
			})
		}
		if c.notifier != nil {
			c.notifier.Cancel(entry.TargetID, entry.Kind)
		}
		return nil
	}

	return ErrNotRinging
} // func (c *Controller) dropQueued(id int64) error

/// finishAlarm applies the stop semantics to the active Alarm: a
// self-destroying Alarm is deleted, any other has its transient state
// cleared and is re-armed, with a skip stamp if its normal next
// occurrence is uncomfortably close.
func (c *Controller) finishAlarm() error {
	var (
		err error
		db  = c.pool.Get()
		now = c.clock()
		a   *objects.Alarm
		g   *objects.Group
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	if a, err = db.AlarmGetByID(c.cur.id); err != nil {
		return err
	} else if a == nil {
		return nil
	}

	if a.SelfDestruct {
		c.log.Printf("[INFO] Alarm %d was single-use, deleting it\n",
			a.ID)
		c.sched.Cancel(a.ID)
		return db.AlarmDelete(a)
	}

	if a.GroupID != 0 {
		if g, err = db.GroupGetByID(a.GroupID); err != nil {
			return err
		}
	}

	if err = db.AlarmClearTransient(a); err != nil {
		return err
	}

	var normal = a.NormalNext(g.Offset(), now)
	if normal.Sub(now) <= stopSkipWindow {
		if err = db.AlarmSetSkip(a, normal.Add(time.Second)); err != nil {
			return err
		}
	}

	return c.sched.Schedule(a, g)
} // func (c *Controller) finishAlarm() error

// finishTimer deletes the active Timer, Timers are single-use.
func (c *Controller) finishTimer() error {
	var (
		err error
		db  = c.pool.Get()
		t   *objects.Timer
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	if t, err = db.TimerGetByID(c.cur.id); err != nil {
		return err
	} else if t == nil {
		return nil
	}

	c.sched.Cancel(t.ID)
	return db.TimerDelete(t)
} // func (c *Controller) finishTimer() error

func (c *Controller) handleSnooze(minutes int) error {
	if c.cur == nil {
		return ErrNotRinging
	} else if c.cur.kind != kind.Alarm {
		return fmt.Errorf("cannot snooze a %s",
			c.cur.kind)
	}

	c.endEffects()

	var err = c.snoozeAlarm(minutes)

	c.st = state.Snoozed
	c.resume()
	return err
} // func (c *Controller) handleSnooze(minutes int) error

// snoozeAlarm persists the snooze stamp for the active Alarm and
// re-arms it.
func (c *Controller) snoozeAlarm(minutes int) error {
	var (
		err error
		db  = c.pool.Get()
		now = c.clock()
		a   *objects.Alarm
		g   *objects.Group
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	if a, err = db.AlarmGetByID(c.cur.id); err != nil {
		return err
	} else if a == nil {
		return nil
	}

	if minutes == 0 {
		minutes = c.cur.snoozeMin
	}

	var until = now.Add(time.Duration(minutes) * time.Minute)

	if err = db.AlarmSetSnooze(a, until); err != nil {
		return err
	} else if err = db.AlarmSetSnoozeCount(a, c.cur.snoozeCount+1); err != nil {
		return err
	}

	c.log.Printf("[INFO] Alarm %d snoozed until %s (%d/%d)\n",
		a.ID,
		until.Format(common.TimestampFormat),
		a.SnoozeCount,
		c.cur.maxSnooze)

	if a.GroupID != 0 {
		if g, err = db.GroupGetByID(a.GroupID); err != nil {
			return err
		}
	}

	return c.sched.Schedule(a, g)
} // func (c *Controller) snoozeAlarm(minutes int) error

func (c *Controller) handleCancelSnooze(id int64) error {
	var (
		err error
		db  = c.pool.Get()
		a   *objects.Alarm
		g   *objects.Group
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		return err
	} else if a == nil {
		return fmt.Errorf("no such Alarm: %d", id)
	}

	if err = db.AlarmSetSnooze(a, time.Time{}); err != nil {
		return err
	} else if err = db.AlarmSetSnoozeCount(a, 0); err != nil {
		return err
	}

	if a.GroupID != 0 {
		if g, err = db.GroupGetByID(a.GroupID); err != nil {
			return err
		}
	}

	return c.sched.Schedule(a, g)
} // func (c *Controller) handleCancelSnooze(id int64) error

func (c *Controller) handleAddTime(id int64, seconds int) error {
	var (
		err error
		db  = c.pool.Get()
		now = c.clock()
		t   *objects.Timer
	)

	if db == nil {
		return errors.New("no database connection available")
	}
	defer c.pool.Put(db)

	if t, err = db.TimerGetByID(id); err != nil {
		return err
	} else if t == nil {
		return fmt.Errorf("no such Timer: %d", id)
	}

	t.AddTime(seconds, now)

	if err = db.TimerSetEnd(t, t.EndTime, t.Duration); err != nil {
		return err
	} else if err = c.sched.ScheduleTimer(t); err != nil {
		return err
	}

	// Extending the ringing Timer ends the current ring, the Timer
	// waits for its new end time.
	if c.cur != nil && c.cur.kind == kind.Timer && c.cur.id == id {
		c.endEffects()
		c.st = state.Stopped
		c.resume()
	}

	return nil
} // func (c *Controller) handleAddTime(id int64, seconds int) error

// handleTimeout fires when a ringing session has gone unanswered. If
// the session is an Alarm with snoozes left, it behaves like an
// automatic snooze, otherwise the session is missed.
func (c *Controller) handleTimeout(seq uint64) {
	if c.cur == nil || c.cur.seq != seq {
		// A timeout for a session that has already ended.
		return
	}

	if c.cur.kind == kind.Alarm &&
		(c.cur.maxSnooze == 0 || c.cur.snoozeCount < c.cur.maxSnooze) {
		c.log.Printf("[INFO] Alarm %d timed out, snoozing automatically\n",
			c.cur.id)

		c.endEffects()
		if err := c.snoozeAlarm(0); err != nil {
			c.log.Printf("[ERROR] Cannot auto-snooze Alarm %d: %s\n",
				c.cur.id,
				err.Error())
		}
		c.st = state.Snoozed
		c.resume()
		return
	}

	c.log.Printf("[INFO] %s %d timed out and was missed\n",
		c.cur.kind,
		c.cur.id)

	var (
		id      = c.cur.id
		label   = c.cur.label
		timeStr = c.cur.started.Format(common.TimestampFormatMinute)
	)

	c.endEffects()

	var err error
	switch c.cur.kind {
	case kind.Alarm:
		err = c.finishAlarm()
	case kind.Timer:
		err = c.finishTimer()
	}

	if err != nil {
		c.log.Printf("[ERROR] Cannot finish missed %s %d: %s\n",
			c.cur.kind,
			c.cur.id,
			err.Error())
	}

	if c.notifier != nil {
		c.notifier.RenderMissed(id, label, timeStr)
	}

	c.st = state.Missed
	c.resume()
} // func (c *Controller) handleTimeout(seq uint64)

func (c *Controller) handleRestore(queue []objects.Interruption) error {
	if c.cur != nil {
		return errors.New("cannot restore while a session is active")
	}

	c.queue = append(c.queue, queue...)
	for idx := range queue {
		if queue[idx].ID >= c.nextQID {
			c.nextQID = queue[idx].ID + 1
		}
	}

	if len(c.queue) > 0 {
		c.log.Printf("[INFO] Restoring %d queued session(s)\n",
			len(c.queue))
		c.resume()
	}

	return nil
} // func (c *Controller) handleRestore(queue []objects.Interruption) error

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
} // func maxDuration(a, b time.Duration) time.Duration
