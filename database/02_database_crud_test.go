// /home/krylon/go/src/github.com/blicero/wecker/database/02_database_crud_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 23:40:19 krylon>

package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
)

const alarmCnt = 16

var (
	grp    = objects.Group{Name: "Workdays", OffsetMinutes: -10}
	alarms []*objects.Alarm
)

func init() {
	alarms = make([]*objects.Alarm, alarmCnt)

	for i := range alarms {
		alarms[i] = &objects.Alarm{
			Label:   fmt.Sprintf("TEST #%03d", i),
			Hour:    6 + i%12,
			Minute:  (i * 5) % 60,
			Days:    objects.Weekdays{true, true, true, true, true, false, false},
			Enabled: true,
		}
	}
}

func TestGroupAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var err error

	if err = db.GroupAdd(&grp); err != nil {
		t.Fatalf("Cannot add Group %q: %s",
			grp.Name,
			err.Error())
	} else if grp.ID == 0 {
		t.Fatalf("ID of Group %q is 0", grp.Name)
	}
} // func TestGroupAdd(t *testing.T)

func TestAlarmAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for _, a := range alarms {
		var err error

		a.GroupID = grp.ID

		if err = db.AlarmAdd(a); err != nil {
			t.Fatalf("Cannot add Alarm %s: %s",
				a.Label,
				err.Error())
		} else if a.ID == 0 {
			t.Errorf("ID of Alarm %q is 0", a.Label)
		}
	}
} // func TestAlarmAdd(t *testing.T)

func TestAlarmGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		all []objects.Alarm
	)

	if all, err = db.AlarmGetAll(); err != nil {
		t.Fatalf("Cannot fetch all Alarms: %s",
			err.Error())
	} else if len(all) != len(alarms) {
		t.Fatalf("Unexpected number of Alarms: %d (expected %d)",
			len(all),
			len(alarms))
	}
} // func TestAlarmGetAll(t *testing.T)

func TestAlarmTransientState(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		a      = alarms[0]
		snooze = time.Now().Add(time.Minute * 10).Truncate(time.Second)
	)

	if err = db.AlarmSetSnooze(a, snooze); err != nil {
		t.Fatalf("Cannot set snooze on Alarm %q: %s",
			a.Label,
			err.Error())
	} else if err = db.AlarmSetSnoozeCount(a, 2); err != nil {
		t.Fatalf("Cannot set snooze count on Alarm %q: %s",
			a.Label,
			err.Error())
	}

	var fresh *objects.Alarm

	if fresh, err = db.AlarmGetByID(a.ID); err != nil {
		t.Fatalf("Cannot look up Alarm %d: %s",
			a.ID,
			err.Error())
	} else if fresh == nil {
		t.Fatalf("Alarm %d was not found in database", a.ID)
	} else if !fresh.SnoozeUntil.Equal(snooze) {
		t.Errorf("Unexpected snooze stamp on Alarm %d: %s (expected %s)",
			a.ID,
			fresh.SnoozeUntil,
			snooze)
	} else if fresh.SnoozeCount != 2 {
		t.Errorf("Unexpected snooze count on Alarm %d: %d (expected 2)",
			a.ID,
			fresh.SnoozeCount)
	}

	if err = db.AlarmClearTransient(a); err != nil {
		t.Fatalf("Cannot clear transient state of Alarm %d: %s",
			a.ID,
			err.Error())
	} else if fresh, err = db.AlarmGetByID(a.ID); err != nil {
		t.Fatalf("Cannot look up Alarm %d: %s",
			a.ID,
			err.Error())
	} else if !fresh.SnoozeUntil.IsZero() || fresh.SnoozeCount != 0 {
		t.Errorf("Transient state of Alarm %d was not cleared: snooze = %s, count = %d",
			a.ID,
			fresh.SnoozeUntil,
			fresh.SnoozeCount)
	}
} // func TestAlarmTransientState(t *testing.T)

func TestAlarmGetByGroup(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err     error
		members []objects.Alarm
	)

	if members, err = db.AlarmGetByGroup(&grp); err != nil {
		t.Fatalf("Cannot fetch Alarms of Group %d: %s",
			grp.ID,
			err.Error())
	} else if len(members) != len(alarms) {
		t.Errorf("Unexpected number of Alarms in Group %d: %d (expected %d)",
			grp.ID,
			len(members),
			len(alarms))
	}
} // func TestAlarmGetByGroup(t *testing.T)

func TestTimerCRUD(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		timer = objects.Timer{
			ID:       kind.MinTimerID,
			Label:    "Tea",
			EndTime:  time.Now().Add(time.Minute * 5).Truncate(time.Second),
			Duration: time.Minute * 5,
		}
	)

	if err = db.TimerAdd(&timer); err != nil {
		t.Fatalf("Cannot add Timer: %s", err.Error())
	}

	var newEnd = timer.EndTime.Add(time.Minute)

	if err = db.TimerSetEnd(&timer, newEnd, timer.Duration+time.Minute); err != nil {
		t.Fatalf("Cannot extend Timer %d: %s",
			timer.ID,
			err.Error())
	}

	var fresh *objects.Timer

	if fresh, err = db.TimerGetByID(timer.ID); err != nil {
		t.Fatalf("Cannot look up Timer %d: %s",
			timer.ID,
			err.Error())
	} else if fresh == nil {
		t.Fatalf("Timer %d was not found in database", timer.ID)
	} else if !fresh.EndTime.Equal(newEnd) {
		t.Errorf("Unexpected end time on Timer %d: %s (expected %s)",
			timer.ID,
			fresh.EndTime,
			newEnd)
	} else if fresh.Duration != time.Minute*6 {
		t.Errorf("Unexpected duration on Timer %d: %s",
			timer.ID,
			fresh.Duration)
	}

	if err = db.TimerDelete(&timer); err != nil {
		t.Fatalf("Cannot delete Timer %d: %s",
			timer.ID,
			err.Error())
	} else if fresh, err = db.TimerGetByID(timer.ID); err != nil {
		t.Fatalf("Cannot look up deleted Timer %d: %s",
			timer.ID,
			err.Error())
	} else if fresh != nil {
		t.Errorf("Timer %d still exists after deletion", timer.ID)
	}
} // func TestTimerCRUD(t *testing.T)

// An Interruption for a (target, kind) pair that is already queued must
// replace the old entry, not duplicate it.
func TestInterruptionUnique(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		items []objects.Interruption
		i1    = objects.Interruption{
			TargetID: alarms[1].ID,
			Kind:     kind.Alarm,
			Label:    "first",
			QueuedAt: time.Now().Add(time.Minute * -2),
		}
		i2 = objects.Interruption{
			TargetID: alarms[1].ID,
			Kind:     kind.Alarm,
			Label:    "second",
			QueuedAt: time.Now(),
		}
	)

	if err = db.InterruptionAdd(&i1); err != nil {
		t.Fatalf("Cannot add Interruption: %s", err.Error())
	} else if err = db.InterruptionAdd(&i2); err != nil {
		t.Fatalf("Cannot add second Interruption: %s", err.Error())
	}

	if items, err = db.InterruptionGetAll(); err != nil {
		t.Fatalf("Cannot load Interruptions: %s", err.Error())
	} else if len(items) != 1 {
		t.Fatalf("Unexpected number of Interruptions: %d (expected 1)",
			len(items))
	} else if items[0].Label != "second" {
		t.Errorf("Queued Interruption was not replaced: label is %q",
			items[0].Label)
	}

	if err = db.InterruptionDelete(alarms[1].ID, kind.Alarm); err != nil {
		t.Fatalf("Cannot delete Interruption: %s", err.Error())
	} else if items, err = db.InterruptionGetAll(); err != nil {
		t.Fatalf("Cannot load Interruptions: %s", err.Error())
	} else if len(items) != 0 {
		t.Errorf("Unexpected number of Interruptions: %d (expected 0)",
			len(items))
	}
} // func TestInterruptionUnique(t *testing.T)

func TestSettings(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		s   objects.Settings
	)

	if s, err = db.Settings(); err != nil {
		t.Fatalf("Cannot load settings: %s", err.Error())
	} else if s != objects.DefaultSettings() {
		t.Errorf("Settings from an empty table should be the defaults")
	}

	if err = db.SettingSet("snooze_minutes", "5"); err != nil {
		t.Fatalf("Cannot store setting: %s", err.Error())
	} else if s, err = db.Settings(); err != nil {
		t.Fatalf("Cannot load settings: %s", err.Error())
	} else if s.SnoozeMinutes != 5 {
		t.Errorf("Unexpected snooze default: %d (expected 5)",
			s.SnoozeMinutes)
	}
} // func TestSettings(t *testing.T)
