// /home/krylon/go/src/github.com/blicero/wecker/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 21:26:17 krylon>

package database

import "github.com/blicero/wecker/database/query"

var dbQueries = map[query.ID]string{
	query.GroupAdd: `
INSERT INTO alarm_group (name, offset_minutes, skipped_until, uuid, changed)
VALUES                  (   ?,              ?,             ?,    ?,       ?)
`,
	query.GroupUpdate: `
UPDATE alarm_group
SET name = ?, offset_minutes = ?, changed = ?
WHERE id = ?
`,
	query.GroupSetSkip: `
UPDATE alarm_group
SET skipped_until = ?, changed = ?
WHERE id = ?
`,
	query.GroupDelete: "DELETE FROM alarm_group WHERE id = ?",
	query.GroupGetAll: `
SELECT
    id,
    name,
    offset_minutes,
    skipped_until,
    uuid,
    changed
FROM alarm_group
ORDER BY id
`,
	query.GroupGetByID: `
SELECT
    name,
    offset_minutes,
    skipped_until,
    uuid,
    changed
FROM alarm_group
WHERE id = ?
`,
	query.AlarmAdd: `
INSERT INTO alarm (id, group_id, label, hour, minute, days, enabled, self_destruct,
                   snooze_minutes, max_snoozes, auto_stop_minutes,
                   sound, volume, fade_in_seconds, vibrate, speech, uuid, changed)
VALUES            ( ?,        ?,     ?,    ?,      ?,    ?,       ?,             ?,
                                ?,           ?,                 ?,
                       ?,      ?,               ?,       ?,      ?,    ?,       ?)
`,
	query.AlarmUpdate: `
UPDATE alarm
SET
    group_id = ?,
    label = ?,
    hour = ?,
    minute = ?,
    days = ?,
    enabled = ?,
    self_destruct = ?,
    snooze_minutes = ?,
    max_snoozes = ?,
    auto_stop_minutes = ?,
    sound = ?,
    volume = ?,
    fade_in_seconds = ?,
    vibrate = ?,
    speech = ?,
    changed = ?
WHERE id = ?
`,
	query.AlarmSetEnabled: `
UPDATE alarm
SET enabled = ?, changed = ?
WHERE id = ?
`,
	query.AlarmSetSnooze: `
UPDATE alarm
SET snooze_until = ?, changed = ?
WHERE id = ?
`,
	query.AlarmSetSnoozeCount: `
UPDATE alarm
SET snooze_count = ?, changed = ?
WHERE id = ?
`,
	query.AlarmSetOverride: `
UPDATE alarm
SET override_time = ?, changed = ?
WHERE id = ?
`,
	query.AlarmSetSkip: `
UPDATE alarm
SET skipped_until = ?, changed = ?
WHERE id = ?
`,
	query.AlarmSetLastTrigger: `
UPDATE alarm
SET last_trigger = ?, changed = ?
WHERE id = ?
`,
	query.AlarmClearTransient: `
UPDATE alarm
SET snooze_until = 0, override_time = 0, snooze_count = 0, changed = ?
WHERE id = ?
`,
	query.AlarmDelete: "DELETE FROM alarm WHERE id = ?",
	query.AlarmGetAll: `
SELECT
    id,
    group_id,
    label,
    hour,
    minute,
    days,
    enabled,
    self_destruct,
    override_time,
    snooze_until,
    skipped_until,
    snooze_minutes,
    max_snoozes,
    auto_stop_minutes,
    snooze_count,
    last_trigger,
    sound,
    volume,
    fade_in_seconds,
    vibrate,
    speech,
    uuid,
    changed
FROM alarm
ORDER BY hour, minute, id
`,
	query.AlarmGetByGroup: `
SELECT
    id,
    label,
    hour,
    minute,
    days,
    enabled,
    self_destruct,
    override_time,
    snooze_until,
    skipped_until,
    snooze_minutes,
    max_snoozes,
    auto_stop_minutes,
    snooze_count,
    last_trigger,
    sound,
    volume,
    fade_in_seconds,
    vibrate,
    speech,
    uuid,
    changed
FROM alarm
WHERE group_id = ?
ORDER BY hour, minute, id
`,
	query.AlarmGetByID: `
SELECT
    group_id,
    label,
    hour,
    minute,
    days,
    enabled,
    self_destruct,
    override_time,
    snooze_until,
    skipped_until,
    snooze_minutes,
    max_snoozes,
    auto_stop_minutes,
    snooze_count,
    last_trigger,
    sound,
    volume,
    fade_in_seconds,
    vibrate,
    speech,
    uuid,
    changed
FROM alarm
WHERE id = ?
`,
	query.TimerAdd: `
INSERT INTO timer (id, label, end_time, duration, uuid, changed)
VALUES            ( ?,     ?,        ?,        ?,    ?,       ?)
`,
	query.TimerSetEnd: `
UPDATE timer
SET end_time = ?, duration = ?, changed = ?
WHERE id = ?
`,
	query.TimerDelete: "DELETE FROM timer WHERE id = ?",
	query.TimerGetAll: `
SELECT
    id,
    label,
    end_time,
    duration,
    uuid,
    changed
FROM timer
ORDER BY end_time
`,
	query.TimerGetByID: `
SELECT
    label,
    end_time,
    duration,
    uuid,
    changed
FROM timer
WHERE id = ?
`,
	query.InterruptionAdd: `
INSERT OR REPLACE INTO interruption (target_id, kind, label, queued_at)
VALUES                              (        ?,    ?,     ?,         ?)
`,
	query.InterruptionDelete: "DELETE FROM interruption WHERE target_id = ? AND kind = ?",
	query.InterruptionGetAll: `
SELECT
    id,
    target_id,
    kind,
    label,
    queued_at
FROM interruption
ORDER BY id
`,
	query.SettingSet: `
INSERT INTO setting (key, value)
VALUES              (  ?,     ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value
`,
	query.SettingGetAll: "SELECT key, value FROM setting",
}
