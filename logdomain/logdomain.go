// /home/krylon/go/src/github.com/blicero/wecker/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-27 19:12:40 krylon>

// Package logdomain provides symbolic constants to identify the
// various parts of the application that need to do logging.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source.
type ID uint8

// These constants identify the various log sources.
const (
	Common ID = iota
	Backend
	Database
	DBPool
	Scheduler
	Session
	Effector
	Wakeup
)

// AllDomains returns a slice of all the valid values for ID.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Database,
		DBPool,
		Scheduler,
		Session,
		Effector,
		Wakeup,
	}
} // func AllDomains() []ID
