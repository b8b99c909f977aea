// /home/krylon/go/src/github.com/blicero/wecker/backend/notify.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 02:18:31 krylon>

package backend

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects/kind"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj         = "org.freedesktop.Notifications"
	notifyPath        = "/org/freedesktop/Notifications"
	notifyMethod      = "org.freedesktop.Notifications.Notify"
	notifyCloseMethod = "org.freedesktop.Notifications.CloseNotification"
)

// Renderer displays the visual side of the session lifecycle as
// desktop notifications on the session bus. It remembers the
// notification IDs it was handed out so it can withdraw them again.
type Renderer struct {
	log   *log.Logger
	bus   *dbus.Conn
	lock  sync.Mutex
	known map[string]uint32
}

// NewRenderer connects to the session bus and returns a Renderer.
func NewRenderer() (*Renderer, error) {
	var (
		err error
		r   = &Renderer{
			known: make(map[string]uint32),
		}
	)

	if r.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if r.bus, err = dbus.SessionBus(); err != nil {
		r.log.Printf("[ERROR] Failed to connect to DBus Session bus: %s\n",
			err.Error())
		return nil, err
	}

	return r, nil
} // func NewRenderer() (*Renderer, error)

func notifyKey(id int64, k kind.Kind) string {
	return fmt.Sprintf("%s-%d", k, id)
} // func notifyKey(id int64, k kind.Kind) string

// post sends a notification and remembers its ID under the given key,
// replacing (and withdrawing) any previous notification for that key.
func (r *Renderer) post(key, head, body string, expire int32) {
	var obj = r.bus.Object(notifyObj, notifyPath)

	if obj == nil {
		r.log.Printf("[ERROR] Did not find object %s (%s) on session bus\n",
			notifyObj,
			notifyPath)
		return
	}

	r.lock.Lock()
	var replace = r.known[key]
	r.lock.Unlock()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		replace,
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expire,
	)

	if res.Err != nil {
		r.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return
	}

	var nid uint32
	if err := res.Store(&nid); err != nil {
		r.log.Printf("[ERROR] Cannot read Notification ID: %s\n",
			err.Error())
		return
	}

	r.lock.Lock()
	r.known[key] = nid
	r.lock.Unlock()
} // func (r *Renderer) post(key, head, body string, expire int32)

// withdraw closes the notification stored under the given key, if any.
func (r *Renderer) withdraw(key string) {
	r.lock.Lock()
	var nid, ok = r.known[key]
	if ok {
		delete(r.known, key)
	}
	r.lock.Unlock()

	if !ok {
		return
	}

	var obj = r.bus.Object(notifyObj, notifyPath)
	if obj == nil {
		return
	}

	if res := obj.Call(notifyCloseMethod, 0, nid); res.Err != nil {
		r.log.Printf("[ERROR] Cannot close Notification %d: %s\n",
			nid,
			res.Err.Error())
	}
} // func (r *Renderer) withdraw(key string)

// RenderRinging displays the notification for an actively ringing
// session.
func (r *Renderer) RenderRinging(id int64, k kind.Kind, label string) {
	r.post(notifyKey(id, k),
		label,
		fmt.Sprintf("%s %d is ringing", k, id),
		0)
} // func (r *Renderer) RenderRinging(id int64, k kind.Kind, label string)

// RenderBackground displays the notification for a session that was
// parked on the preemption queue.
func (r *Renderer) RenderBackground(id int64, k kind.Kind, label string) {
	r.post(notifyKey(id, k),
		label,
		fmt.Sprintf("%s %d is waiting for its turn", k, id),
		0)
} // func (r *Renderer) RenderBackground(id int64, k kind.Kind, label string)

// RenderMissed displays the notification for a session that timed out
// unanswered.
func (r *Renderer) RenderMissed(id int64, label, timeStr string) {
	r.post(fmt.Sprintf("missed-%d", id),
		fmt.Sprintf("Missed: %s", label),
		fmt.Sprintf("Went off at %s, nobody answered", timeStr),
		0)
} // func (r *Renderer) RenderMissed(id int64, label, timeStr string)

// Cancel withdraws the notification for the given session.
func (r *Renderer) Cancel(id int64, k kind.Kind) {
	r.withdraw(notifyKey(id, k))
} // func (r *Renderer) Cancel(id int64, k kind.Kind)

// ShowUpcoming displays the upcoming-alarm indicator.
func (r *Renderer) ShowUpcoming(id int64, label string, at time.Time) {
	r.post("upcoming",
		label,
		fmt.Sprintf("Next alarm at %s",
			at.Format(common.TimestampFormatMinute)),
		0)
} // func (r *Renderer) ShowUpcoming(id int64, label string, at time.Time)

// HideUpcoming withdraws the upcoming-alarm indicator.
func (r *Renderer) HideUpcoming() {
	r.withdraw("upcoming")
} // func (r *Renderer) HideUpcoming()
