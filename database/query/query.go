// /home/krylon/go/src/github.com/blicero/wecker/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 21:02:48 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	GroupAdd ID = iota
	GroupUpdate
	GroupSetSkip
	GroupDelete
	GroupGetAll
	GroupGetByID
	AlarmAdd
	AlarmUpdate
	AlarmSetEnabled
	AlarmSetSnooze
	AlarmSetSnoozeCount
	AlarmSetOverride
	AlarmSetSkip
	AlarmSetLastTrigger
	AlarmClearTransient
	AlarmDelete
	AlarmGetAll
	AlarmGetByGroup
	AlarmGetByID
	TimerAdd
	TimerSetEnd
	TimerDelete
	TimerGetAll
	TimerGetByID
	InterruptionAdd
	InterruptionDelete
	InterruptionGetAll
	SettingSet
	SettingGetAll
)
