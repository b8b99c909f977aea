// /home/krylon/go/src/github.com/blicero/wecker/objects/kind/kind.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-25 21:48:33 krylon>

//go:generate stringer -type=Kind

// Package kind tells apart the two sorts of things that can ring,
// Alarms and Timers. The two live in disjoint ID spaces, Timer IDs
// start at MinTimerID.
package kind

// Kind identifies the sort of item a ringing session or wake-up
// timer belongs to.
type Kind uint8

const (
	Alarm Kind = iota
	Timer
)

// MinTimerID is the lowest ID a Timer can have. IDs below that
// belong to Alarms.
const MinTimerID int64 = 1001

// ForID returns the Kind implied by the given ID.
func ForID(id int64) Kind {
	if id >= MinTimerID {
		return Timer
	}

	return Alarm
} // func ForID(id int64) Kind
