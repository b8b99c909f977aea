// /home/krylon/go/src/github.com/blicero/wecker/wakeup/01_wakeup_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 03:17:40 krylon>

package wakeup

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/objects/kind"
)

var srv *InProcess

var fired chan int64

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/wecker_wakeup_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot create BaseDir %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	result = m.Run()

	if result == 0 {
		os.RemoveAll(baseDir) // nolint: errcheck
	} else {
		fmt.Printf(">>> Log files can be found in %s\n",
			baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func TestCreateService(t *testing.T) {
	var err error

	fired = make(chan int64, 4)

	if srv, err = NewInProcess(func(id int64, k kind.Kind) { fired <- id }); err != nil {
		srv = nil
		t.Fatalf("Cannot create wake-up service: %s",
			err.Error())
	}
} // func TestCreateService(t *testing.T)

func TestArmFires(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var err error

	if err = srv.Arm(23, kind.Alarm, time.Now().Add(time.Millisecond*50), true); err != nil {
		t.Fatalf("Cannot arm wake-up: %s",
			err.Error())
	} else if !srv.Armed(23) {
		t.Fatal("Wake-up 23 should be armed")
	}

	select {
	case id := <-fired:
		if id != 23 {
			t.Errorf("Unexpected wake-up fired: %d (expected 23)",
				id)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("Wake-up 23 did not fire within two seconds")
	}

	if srv.Armed(23) {
		t.Error("Wake-up 23 should be disarmed after firing")
	}
} // func TestArmFires(t *testing.T)

func TestArmReplaces(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var err error

	// The first timer is far in the future, re-arming the same ID
	// must replace it, so we see exactly one firing.
	if err = srv.Arm(42, kind.Alarm, time.Now().Add(time.Hour), true); err != nil {
		t.Fatalf("Cannot arm wake-up: %s",
			err.Error())
	} else if err = srv.Arm(42, kind.Alarm, time.Now().Add(time.Millisecond*50), true); err != nil {
		t.Fatalf("Cannot re-arm wake-up: %s",
			err.Error())
	}

	select {
	case id := <-fired:
		if id != 42 {
			t.Errorf("Unexpected wake-up fired: %d (expected 42)",
				id)
		}
	case <-time.After(time.Second * 2):
		t.Fatal("Wake-up 42 did not fire within two seconds")
	}

	select {
	case id := <-fired:
		t.Errorf("Wake-up %d fired twice", id)
	case <-time.After(time.Millisecond * 200):
		// good
	}
} // func TestArmReplaces(t *testing.T)

// Re-arming an ID whose old timer is already firing must neither
// deliver the old callback nor evict the replacement from its slot.
func TestRearmSupersedes(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var (
		err  error
		loc  *InProcess
		hits = make(chan int64, 4096)
	)

	if loc, err = NewInProcess(func(id int64, k kind.Kind) { hits <- id }); err != nil {
		t.Fatalf("Cannot create wake-up service: %s",
			err.Error())
	}

	for i := 0; i < 2000; i++ {
		if err = loc.Arm(7, kind.Alarm, time.Now(), false); err != nil {
			t.Fatalf("Cannot arm wake-up: %s",
				err.Error())
		} else if err = loc.Arm(7, kind.Alarm, time.Now().Add(time.Hour), false); err != nil {
			t.Fatalf("Cannot re-arm wake-up: %s",
				err.Error())
		} else if !loc.Armed(7) {
			t.Fatalf("Wake-up 7 lost its replacement timer in iteration %d",
				i)
		}
	}

	// Give in-flight firings of superseded timers time to run.
	time.Sleep(time.Millisecond * 100)

	if !loc.Armed(7) {
		t.Fatal("Wake-up 7 lost its replacement timer to a superseded firing")
	} else if at, ok := loc.ArmedAt(7); !ok || time.Until(at) < time.Minute*50 {
		t.Errorf("Wake-up 7 should be armed about an hour out, not at %s",
			at.Format(common.TimestampFormat))
	}

	loc.Cancel(7)
} // func TestRearmSupersedes(t *testing.T)

func TestCancel(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	var err error

	if err = srv.Arm(57, kind.Alarm, time.Now().Add(time.Millisecond*100), false); err != nil {
		t.Fatalf("Cannot arm wake-up: %s",
			err.Error())
	}

	srv.Cancel(57)

	if srv.Armed(57) {
		t.Error("Wake-up 57 should be disarmed after Cancel")
	}

	select {
	case id := <-fired:
		t.Errorf("Cancelled wake-up %d fired anyway", id)
	case <-time.After(time.Millisecond * 300):
		// good
	}
} // func TestCancel(t *testing.T)

func TestExactDenied(t *testing.T) {
	if srv == nil {
		t.SkipNow()
	}

	srv.SetExactPermitted(false)
	defer srv.SetExactPermitted(true)

	var err = srv.Arm(99, kind.Alarm, time.Now().Add(time.Hour), true)

	if err == nil {
		t.Error("Arming an exact wake-up should fail while exact scheduling is denied")
		srv.Cancel(99)
	} else if err != ErrDenied {
		t.Errorf("Unexpected error arming exact wake-up: %s",
			err.Error())
	}

	if err = srv.Arm(99, kind.Alarm, time.Now().Add(time.Hour), false); err != nil {
		t.Errorf("Arming an inexact wake-up should succeed: %s",
			err.Error())
	}

	srv.Cancel(99)
} // func TestExactDenied(t *testing.T)
