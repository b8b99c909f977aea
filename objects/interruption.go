// /home/krylon/go/src/github.com/blicero/wecker/objects/interruption.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-27 21:10:31 krylon>

package objects

import (
	"time"

	"github.com/blicero/wecker/objects/kind"
)

//go:generate ffjson interruption.go

// Interruption records a ringing session that was preempted by a later
// trigger and is waiting on the queue to be resumed. At most one
// Interruption exists per (TargetID, Kind) at any time, a fresh trigger
// for an already-queued target replaces the old entry.
//
// Interruptions are persisted so a queued session survives a crash of
// the daemon.
type Interruption struct {
	ID       int64
	TargetID int64
	Kind     kind.Kind
	Label    string
	QueuedAt time.Time
}

// Ringer is the common interface of the things that can ring, i.e.
// Alarms and Timers.
type Ringer interface {
	RingID() int64
	RingKind() kind.Kind
	Payload() (string, string)
}
