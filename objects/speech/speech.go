// /home/krylon/go/src/github.com/blicero/wecker/objects/speech/speech.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-25 22:04:17 krylon>

//go:generate stringer -type=Mode

// Package speech contains symbolic constants to specify if and how
// often a ringing session announces itself verbally.
package speech

// Mode describes the announcement schedule of a ringing session.
//
// Off means no announcements are made.
// Once means a single announcement when the session starts ringing.
// EveryMinute means announcements are repeated, aligned to wall-clock
// minute boundaries.
type Mode uint8

const (
	Off Mode = iota
	Once
	EveryMinute
)
