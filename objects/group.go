// /home/krylon/go/src/github.com/blicero/wecker/objects/group.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-27 20:55:03 krylon>

package objects

import "time"

//go:generate ffjson group.go

// Group is a named bundle of Alarms sharing a time shift and a skip
// state. OffsetMinutes is added to every member Alarm's computed time,
// it can be negative. SkippedUntil combines with the per-Alarm skip
// via max. Members point back at the Group by ID.
type Group struct {
	ID            int64
	Name          string
	OffsetMinutes int
	SkippedUntil  time.Time
	UUID          string
	Changed       time.Time
}

// Offset returns the Group's time shift as a Duration.
func (g *Group) Offset() time.Duration {
	if g == nil {
		return 0
	}

	return time.Minute * time.Duration(g.OffsetMinutes)
} // func (g *Group) Offset() time.Duration

// Skip returns the Group's skip stamp, the zero Time for a nil Group.
func (g *Group) Skip() time.Time {
	if g == nil {
		return time.Time{}
	}

	return g.SkippedUntil
} // func (g *Group) Skip() time.Time
