// /home/krylon/go/src/github.com/blicero/wecker/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 21:14:55 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE alarm_group (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL DEFAULT '',
    offset_minutes INTEGER NOT NULL DEFAULT 0,
    skipped_until  INTEGER NOT NULL DEFAULT 0,
    uuid           TEXT NOT NULL,
    changed        INTEGER NOT NULL
)
`,
	`
CREATE TABLE alarm (
    id                INTEGER PRIMARY KEY,
    group_id          INTEGER NOT NULL DEFAULT 0,
    label             TEXT NOT NULL DEFAULT '',
    hour              INTEGER NOT NULL,
    minute            INTEGER NOT NULL,
    days              INTEGER NOT NULL DEFAULT 0,
    enabled           INTEGER NOT NULL DEFAULT 1,
    self_destruct     INTEGER NOT NULL DEFAULT 0,
    override_time     INTEGER NOT NULL DEFAULT 0,
    snooze_until      INTEGER NOT NULL DEFAULT 0,
    skipped_until     INTEGER NOT NULL DEFAULT 0,
    snooze_minutes    INTEGER NOT NULL DEFAULT 0,
    max_snoozes       INTEGER NOT NULL DEFAULT 0,
    auto_stop_minutes INTEGER NOT NULL DEFAULT 0,
    snooze_count      INTEGER NOT NULL DEFAULT 0,
    last_trigger      INTEGER NOT NULL DEFAULT 0,
    sound             TEXT NOT NULL DEFAULT '',
    volume            INTEGER NOT NULL DEFAULT 100,
    fade_in_seconds   INTEGER NOT NULL DEFAULT 0,
    vibrate           INTEGER NOT NULL DEFAULT 0,
    speech            INTEGER NOT NULL DEFAULT 0,
    uuid              TEXT NOT NULL,
    changed           INTEGER NOT NULL,
    CHECK (hour BETWEEN 0 AND 23),
    CHECK (minute BETWEEN 0 AND 59),
    CHECK (id < 1001)
)
`,
	"CREATE INDEX alarm_group_idx ON alarm (group_id)",
	"CREATE INDEX alarm_enabled_idx ON alarm (enabled)",
	`
CREATE TABLE timer (
    id       INTEGER PRIMARY KEY,
    label    TEXT NOT NULL DEFAULT '',
    end_time INTEGER NOT NULL,
    duration INTEGER NOT NULL,
    uuid     TEXT NOT NULL,
    changed  INTEGER NOT NULL,
    CHECK (id >= 1001)
)
`,
	`
CREATE TABLE interruption (
    id        INTEGER PRIMARY KEY,
    target_id INTEGER NOT NULL,
    kind      INTEGER NOT NULL,
    label     TEXT NOT NULL DEFAULT '',
    queued_at INTEGER NOT NULL,
    UNIQUE (target_id, kind)
)
`,
	`
CREATE TABLE setting (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)
`,
}
