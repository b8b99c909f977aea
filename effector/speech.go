// /home/krylon/go/src/github.com/blicero/wecker/effector/speech.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 00:49:33 krylon>

package effector

import (
	"fmt"
	"log"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/godbus/dbus/v5"
)

const (
	speechObj    = "org.freedesktop.Notifications"
	speechPath   = "/org/freedesktop/Notifications"
	speechMethod = "org.freedesktop.Notifications.Notify"
	speechExpire = 10000 // milliseconds
)

// BusSpeaker delivers spoken announcements over the session bus.
// Until a proper TTS service is wired up, it posts the announcement
// text as a transient desktop notification.
type BusSpeaker struct {
	log *log.Logger
	bus *dbus.Conn
}

// NewBusSpeaker connects to the session bus and returns a BusSpeaker.
func NewBusSpeaker() (*BusSpeaker, error) {
	var (
		err error
		s   = new(BusSpeaker)
	)

	if s.log, err = common.GetLogger(logdomain.Effector); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if s.bus, err = dbus.SessionBus(); err != nil {
		s.log.Printf("[ERROR] Failed to connect to DBus session bus: %s\n",
			err.Error())
		return nil, err
	}

	return s, nil
} // func NewBusSpeaker() (*BusSpeaker, error)

// Say utters the given text.
func (s *BusSpeaker) Say(text string) error {
	var obj = s.bus.Object(speechObj, speechPath)

	if obj == nil {
		var err = fmt.Errorf("Did not find object %s (%s) on session bus",
			speechObj,
			speechPath)
		s.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	var res = obj.Call(
		speechMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		common.AppName,
		text,
		[]string{},
		map[string]dbus.Variant{
			"transient": dbus.MakeVariant(true),
		},
		int32(speechExpire),
	)

	if res.Err != nil {
		s.log.Printf("[ERROR] Cannot deliver announcement %q: %s\n",
			text,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (s *BusSpeaker) Say(text string) error
