// /home/krylon/go/src/github.com/blicero/wecker/objects/settings.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-28 18:30:46 krylon>

package objects

import (
	"strconv"

	"github.com/blicero/wecker/objects/speech"
)

//go:generate ffjson settings.go

// Settings is a read-only snapshot of the global defaults. Per-Alarm
// overrides take precedence where set.
type Settings struct {
	SnoozeMinutes        int
	MaxSnoozes           int // 0 = no limit
	AutoStopAlarmMinutes int
	AutoStopTimerMinutes int
	NotifyLeadMinutes    int
	DefaultSound         string
	TimerSound           string
	TimerVolume          int
	TimerVibrate         bool
	TimerSpeech          speech.Mode
}

// DefaultSettings are the settings used until the user changes them.
func DefaultSettings() Settings {
	return Settings{
		SnoozeMinutes:        10,
		MaxSnoozes:           0,
		AutoStopAlarmMinutes: 10,
		AutoStopTimerMinutes: 5,
		NotifyLeadMinutes:    30,
		DefaultSound:         "classic",
		TimerSound:           "beep",
		TimerVolume:          80,
		TimerVibrate:         true,
		TimerSpeech:          speech.Off,
	}
} // func DefaultSettings() Settings

// SettingsFromMap builds a Settings snapshot from the raw key/value
// pairs of the setting table, falling back to the defaults for keys
// that are missing or malformed.
func SettingsFromMap(raw map[string]string) Settings {
	var s = DefaultSettings()

	for key, val := range raw {
		switch key {
		case "snooze_minutes":
			parseInt(val, &s.SnoozeMinutes)
		case "max_snoozes":
			parseInt(val, &s.MaxSnoozes)
		case "auto_stop_alarm_minutes":
			parseInt(val, &s.AutoStopAlarmMinutes)
		case "auto_stop_timer_minutes":
			parseInt(val, &s.AutoStopTimerMinutes)
		case "notify_lead_minutes":
			parseInt(val, &s.NotifyLeadMinutes)
		case "default_sound":
			s.DefaultSound = val
		case "timer_sound":
			s.TimerSound = val
		case "timer_volume":
			parseInt(val, &s.TimerVolume)
		case "timer_vibrate":
			s.TimerVibrate = val == "1" || val == "true"
		case "timer_speech":
			var n int
			parseInt(val, &n)
			s.TimerSpeech = speech.Mode(n)
		}
	}

	return s
} // func SettingsFromMap(raw map[string]string) Settings

func parseInt(val string, dst *int) {
	if n, err := strconv.Atoi(val); err == nil {
		*dst = n
	}
} // func parseInt(val string, dst *int)
