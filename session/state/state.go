// /home/krylon/go/src/github.com/blicero/wecker/session/state/state.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 00:21:48 krylon>

// Package state defines the states a ringing session can be in.
package state

//go:generate stringer -type=State

// State is the lifecycle state of a ringing session.
type State uint8

const (
	Idle State = iota
	Ringing
	Snoozed
	Stopped
	Missed
)
