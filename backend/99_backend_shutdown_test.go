// /home/krylon/go/src/github.com/blicero/wecker/backend/99_backend_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 03:06:12 krylon>

package backend

import "testing"

func TestBanish(t *testing.T) {
	if back == nil || !back.IsAlive() {
		t.SkipNow()
	}

	if err := back.Banish(); err != nil {
		t.Errorf("Cannot banish Daemon: %s",
			err.Error())
	} else if back.IsAlive() {
		t.Error("Daemon claims to be alive after being banished")
	}
} // func TestBanish(t *testing.T)
