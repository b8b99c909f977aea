// /home/krylon/go/src/github.com/blicero/wecker/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 02:44:09 krylon>

package backend

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/blicero/wecker/database"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/scheduler"
	"github.com/blicero/wecker/session"
	"github.com/blicero/wecker/session/state"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/group/add", d.handleGroupAdd)
	d.router.HandleFunc("/group/all", d.handleGroupGetAll)
	d.router.HandleFunc("/group/{id:(?:\\d+)}/update", d.handleGroupUpdate)
	d.router.HandleFunc("/group/{id:(?:\\d+)}/skip", d.handleGroupSkip)
	d.router.HandleFunc("/group/{id:(?:\\d+)}/delete", d.handleGroupDelete)

	d.router.HandleFunc("/alarm/add", d.handleAlarmAdd)
	d.router.HandleFunc("/alarm/all", d.handleAlarmGetAll)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/update", d.handleAlarmUpdate)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/enabled", d.handleAlarmSetEnabled)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/override", d.handleAlarmSetOverride)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/skip", d.handleAlarmSetSkip)
	d.router.HandleFunc("/alarm/{id:(?:\\d+)}/delete", d.handleAlarmDelete)

	d.router.HandleFunc("/timer/add", d.handleTimerAdd)
	d.router.HandleFunc("/timer/all", d.handleTimerGetAll)
	d.router.HandleFunc("/timer/{id:(?:\\d+)}/delete", d.handleTimerDelete)

	d.router.HandleFunc("/cmd/ring", d.handleCmdRing)
	d.router.HandleFunc("/cmd/stop", d.handleCmdStop)
	d.router.HandleFunc("/cmd/snooze", d.handleCmdSnooze)
	d.router.HandleFunc("/cmd/cancel-snooze/{id:(?:\\d+)}", d.handleCmdCancelSnooze)
	d.router.HandleFunc("/cmd/addtime", d.handleCmdAddTime)
	d.router.HandleFunc("/cmd/skip-next", d.handleCmdSkipNext)
	d.router.HandleFunc("/cmd/status", d.handleCmdStatus)

	d.router.HandleFunc("/upcoming", d.handleUpcoming)

	d.router.HandleFunc("/settings/all", d.handleSettingsGetAll)
	d.router.HandleFunc("/settings/set", d.handleSettingsSet)

	return nil
} // func (d *Daemon) initWebHandlers() error

// rescheduleAlarm re-arms an Alarm after one of its scheduling-relevant
// fields changed.
func (d *Daemon) rescheduleAlarm(db *database.Database, a *objects.Alarm) error {
	var (
		err error
		g   *objects.Group
	)

	if a.GroupID != 0 {
		if g, err = db.GroupGetByID(a.GroupID); err != nil {
			return err
		}
	}

	return d.sched.Schedule(a, g)
} // func (d *Daemon) rescheduleAlarm(db *database.Database, a *objects.Alarm) error

// rescheduleGroup re-arms all Alarms belonging to a Group.
func (d *Daemon) rescheduleGroup(db *database.Database, g *objects.Group) error {
	var (
		err    error
		alarms []objects.Alarm
	)

	if alarms, err = db.AlarmGetByGroup(g); err != nil {
		return err
	}

	for idx := range alarms {
		if !alarms[idx].Enabled {
			continue
		}
		if err = d.sched.Schedule(&alarms[idx], g); err != nil {
			return err
		}
	}

	return nil
} // func (d *Daemon) rescheduleGroup(db *database.Database, g *objects.Group) error

func (d *Daemon) handleGroupAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		msg      string
		offset   int64
		g        objects.Group
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	g.Name = r.PostFormValue("name")

	if offset, err = strconv.ParseInt(r.PostFormValue("offset"), 10, 32); err != nil {
		msg = fmt.Sprintf("Cannot parse offset %q: %s",
			r.PostFormValue("offset"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	g.OffsetMinutes = int(offset)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.GroupAdd(&g); err != nil {
		msg = fmt.Sprintf("Cannot add Group %q to database: %s",
			g.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = strconv.FormatInt(g.ID, 10)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleGroupAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleGroupGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		db     *database.Database
		groups []objects.Group
		buf    []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if groups, err = db.GroupGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Groups: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(groups); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Group list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleGroupGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleGroupUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id, offset int64
		g          *objects.Group
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if offset, err = strconv.ParseInt(r.FormValue("offset"), 10, 32); err != nil {
		msg = fmt.Sprintf("Cannot parse offset %q: %s",
			r.FormValue("offset"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if g, err = db.GroupGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Group #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if g == nil {
		msg = fmt.Sprintf("Group #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.GroupUpdate(g, r.FormValue("name"), int(offset)); err != nil {
		msg = fmt.Sprintf("Cannot update Group %d (%q): %s",
			id,
			g.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	// A changed offset moves every Alarm in the Group.
	if err = d.rescheduleGroup(db, g); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarms of Group %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleGroupUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleGroupSkip(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err              error
		db               *database.Database
		msg, idstr, tstr string
		id               int64
		until            time.Time
		g                *objects.Group
		response         = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	// An empty timestamp clears the skip.
	if tstr = r.FormValue("until"); tstr != "" {
		if until, err = time.Parse(time.RFC3339, tstr); err != nil {
			msg = fmt.Sprintf("Cannot parse timestamp %q: %s",
				tstr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if g, err = db.GroupGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Group #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if g == nil {
		msg = fmt.Sprintf("Group #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.GroupSetSkip(g, until); err != nil {
		msg = fmt.Sprintf("Cannot set skip on Group %d (%q): %s",
			id,
			g.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.rescheduleGroup(db, g); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarms of Group %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleGroupSkip(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleGroupDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id         int64
		g          *objects.Group
		alarms     []objects.Alarm
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if g, err = db.GroupGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Group #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if g == nil {
		msg = fmt.Sprintf("Group #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if alarms, err = db.AlarmGetByGroup(g); err != nil {
		msg = fmt.Sprintf("Cannot load Alarms of Group %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.GroupDelete(g); err != nil {
		msg = fmt.Sprintf("Failed to delete Group %d (%q): %s",
			id,
			g.Name,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	// Orphaned Alarms keep ringing, just without the Group's offset.
	for idx := range alarms {
		alarms[idx].GroupID = 0
		if alarms[idx].Enabled {
			d.sched.Schedule(&alarms[idx], nil) // nolint: errcheck
		}
	}

	response.Message = fmt.Sprintf("Group %d (%q) was deleted",
		id,
		g.Name)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleGroupDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		msg      string
		body     []byte
		a        objects.Alarm
		response = objects.Response{ID: d.getID()}
	)

	if body, err = io.ReadAll(r.Body); err != nil {
		d.log.Printf("[ERROR] Cannot read request body: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if err = ffjson.Unmarshal(body, &a); err != nil {
		msg = fmt.Sprintf("Cannot parse Alarm: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if a.Hour < 0 || a.Hour > 23 || a.Minute < 0 || a.Minute > 59 {
		msg = fmt.Sprintf("Invalid alarm time %02d:%02d",
			a.Hour,
			a.Minute)
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.AlarmAdd(&a); err != nil {
		msg = fmt.Sprintf("Cannot add Alarm %q to database: %s",
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if a.Enabled {
		if err = d.rescheduleAlarm(db, &a); err != nil {
			msg = fmt.Sprintf("Cannot arm Alarm %d: %s",
				a.ID,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	response.Message = strconv.FormatInt(a.ID, 10)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		db     *database.Database
		alarms []objects.Alarm
		buf    []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if alarms, err = db.AlarmGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Alarms: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(alarms); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Alarm list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleAlarmGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmUpdate(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id         int64
		body       []byte
		a          objects.Alarm
		old        *objects.Alarm
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if body, err = io.ReadAll(r.Body); err != nil {
		d.log.Printf("[ERROR] Cannot read request body: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if err = ffjson.Unmarshal(body, &a); err != nil {
		msg = fmt.Sprintf("Cannot parse Alarm: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	a.ID = id

	db = d.pool.Get()
	defer d.pool.Put(db)

	if old, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if old == nil {
		msg = fmt.Sprintf("Alarm #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	// The request body only carries the editable fields, the transient
	// state stays whatever the database says it is. An active snooze
	// in particular must survive an edit, it still outranks the
	// recurrence when re-arming.
	a.Override = old.Override
	a.SnoozeUntil = old.SnoozeUntil
	a.SkippedUntil = old.SkippedUntil
	a.SnoozeCount = old.SnoozeCount
	a.LastTrigger = old.LastTrigger

	if err = db.AlarmUpdate(&a); err != nil {
		msg = fmt.Sprintf("Cannot update Alarm %d (%q): %s",
			id,
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.rescheduleAlarm(db, &a); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmUpdate(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmSetEnabled(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id         int64
		enabled    bool
		a          *objects.Alarm
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if enabled, err = strconv.ParseBool(r.FormValue("enabled")); err != nil {
		msg = fmt.Sprintf("Cannot parse enabled flag %q: %s",
			r.FormValue("enabled"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Alarm #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmSetEnabled(a, enabled); err != nil {
		msg = fmt.Sprintf("Cannot set enabled flag on Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.rescheduleAlarm(db, a); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmSetEnabled(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmSetOverride(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err              error
		db               *database.Database
		msg, idstr, tstr string
		id               int64
		at               time.Time
		a                *objects.Alarm
		response         = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	// An empty timestamp clears the override.
	if tstr = r.FormValue("time"); tstr != "" {
		if at, err = time.Parse(time.RFC3339, tstr); err != nil {
			msg = fmt.Sprintf("Cannot parse timestamp %q: %s",
				tstr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Alarm #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmSetOverride(a, at); err != nil {
		msg = fmt.Sprintf("Cannot set override on Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.rescheduleAlarm(db, a); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmSetOverride(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmSetSkip(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err              error
		db               *database.Database
		msg, idstr, tstr string
		id               int64
		until            time.Time
		a                *objects.Alarm
		response         = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if tstr = r.FormValue("until"); tstr != "" {
		if until, err = time.Parse(time.RFC3339, tstr); err != nil {
			msg = fmt.Sprintf("Cannot parse timestamp %q: %s",
				tstr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Alarm #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmSetSkip(a, until); err != nil {
		msg = fmt.Sprintf("Cannot set skip on Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.rescheduleAlarm(db, a); err != nil {
		msg = fmt.Sprintf("Cannot re-arm Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmSetSkip(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAlarmDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id         int64
		a          *objects.Alarm
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if a, err = db.AlarmGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Alarm #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if a == nil {
		msg = fmt.Sprintf("Alarm #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.AlarmDelete(a); err != nil {
		msg = fmt.Sprintf("Failed to delete Alarm %d (%q): %s",
			id,
			a.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	d.sched.Cancel(id)
	d.ctl.Stop(id) // nolint: errcheck

	response.Message = fmt.Sprintf("Alarm %d (%q) was deleted",
		id,
		a.Label)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleAlarmDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		msg      string
		seconds  int64
		t        objects.Timer
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if seconds, err = strconv.ParseInt(r.PostFormValue("seconds"), 10, 64); err != nil || seconds <= 0 {
		msg = fmt.Sprintf("Invalid duration %q",
			r.PostFormValue("seconds"))
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	t.Label = r.PostFormValue("label")
	t.Duration = time.Duration(seconds) * time.Second
	t.EndTime = time.Now().Add(t.Duration)

	if t.ID, err = d.nextTimerID(db); err != nil {
		msg = fmt.Sprintf("Cannot allocate Timer ID: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.TimerAdd(&t); err != nil {
		msg = fmt.Sprintf("Cannot add Timer %q to database: %s",
			t.Label,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.sched.ScheduleTimer(&t); err != nil {
		msg = fmt.Sprintf("Cannot arm Timer %d: %s",
			t.ID,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = strconv.FormatInt(t.ID, 10)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleTimerAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		db   *database.Database
		tmrs []objects.Timer
		buf  []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if tmrs, err = db.TimerGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Timers: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(tmrs); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Timer list: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleTimerGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTimerDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg, idstr string
		id         int64
		t          *objects.Timer
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if t, err = db.TimerGetByID(id); err != nil {
		msg = fmt.Sprintf("Failed to get Timer #%d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if t == nil {
		msg = fmt.Sprintf("Timer #%d was not found in database", id)
		d.log.Printf("[DEBUG] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = db.TimerDelete(t); err != nil {
		msg = fmt.Sprintf("Failed to delete Timer %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	d.sched.Cancel(id)
	d.ctl.Stop(id) // nolint: errcheck

	response.Message = fmt.Sprintf("Timer %d was deleted", id)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleTimerDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdRing(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		db       *database.Database
		msg      string
		id       int64
		ringer   objects.Ringer
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(r.FormValue("id"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			r.FormValue("id"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	switch kind.ForID(id) {
	case kind.Alarm:
		var a *objects.Alarm
		if a, err = db.AlarmGetByID(id); err != nil || a == nil {
			msg = fmt.Sprintf("Alarm #%d was not found in database", id)
			d.log.Printf("[DEBUG] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
		ringer = a
	case kind.Timer:
		var t *objects.Timer
		if t, err = db.TimerGetByID(id); err != nil || t == nil {
			msg = fmt.Sprintf("Timer #%d was not found in database", id)
			d.log.Printf("[DEBUG] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
		ringer = t
	}

	if err = d.ctl.StartOrQueue(ringer); err != nil {
		msg = fmt.Sprintf("Cannot start ringing session for %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdRing(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdStop(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		msg      string
		id       int64
		idstr    string
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	// Without an ID, stop whatever is ringing right now.
	if idstr = r.FormValue("id"); idstr != "" {
		if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
			msg = fmt.Sprintf("Cannot parse ID %q: %s",
				idstr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	if err = d.ctl.Stop(id); err != nil {
		msg = fmt.Sprintf("Cannot stop session: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdStop(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdSnooze(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		msg      string
		minutes  int64
		mstr     string
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	if mstr = r.FormValue("minutes"); mstr != "" {
		if minutes, err = strconv.ParseInt(mstr, 10, 32); err != nil {
			msg = fmt.Sprintf("Cannot parse snooze duration %q: %s",
				mstr,
				err.Error())
			d.log.Printf("[ERROR] %s\n", msg)
			response.Message = msg
			goto SEND_RESPONSE
		}
	}

	if err = d.ctl.Snooze(int(minutes)); err != nil {
		msg = fmt.Sprintf("Cannot snooze session: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdSnooze(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdCancelSnooze(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		msg, idstr string
		id         int64
		response   = objects.Response{ID: d.getID()}
	)

	idstr = mux.Vars(r)["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if err = d.ctl.CancelSnooze(id); err != nil {
		msg = fmt.Sprintf("Cannot cancel snooze on Alarm %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdCancelSnooze(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdAddTime(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err         error
		msg         string
		id, seconds int64
		response    = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	} else if id, err = strconv.ParseInt(r.FormValue("id"), 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			r.FormValue("id"),
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if seconds, err = strconv.ParseInt(r.FormValue("seconds"), 10, 32); err != nil || seconds <= 0 {
		msg = fmt.Sprintf("Invalid extension %q",
			r.FormValue("seconds"))
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	if err = d.ctl.AddTime(id, int(seconds)); err != nil {
		msg = fmt.Sprintf("Cannot extend Timer %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdAddTime(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleCmdSkipNext(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		msg      string
		up       *scheduler.Upcoming
		response = objects.Response{ID: d.getID()}
	)

	if up, err = d.sched.SkipNext(); err != nil {
		msg = fmt.Sprintf("Cannot skip next Alarm: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if up == nil {
		response.Message = "No Alarm is scheduled"
		goto SEND_RESPONSE
	}

	response.Message = fmt.Sprintf("Skipped Alarm %d at %s",
		up.AlarmID,
		up.TimeString)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleCmdSkipNext(w http.ResponseWriter, r *http.Request)

// sessionStatus is the wire format of /cmd/status.
type sessionStatus struct {
	State      string
	ID         int64
	Kind       string
	Label      string
	Started    string
	Deadline   string
	QueueDepth int
}

func (d *Daemon) handleCmdStatus(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err    error
		buf    []byte
		st     state.State
		cur    *session.SessionInfo
		depth  int
		status sessionStatus
	)

	st, cur, depth = d.ctl.Status()

	status.State = st.String()
	status.QueueDepth = depth

	if cur != nil {
		status.ID = cur.ID
		status.Kind = cur.Kind.String()
		status.Label = cur.Label
		status.Started = cur.Started.Format(time.RFC3339)
		status.Deadline = cur.Deadline.Format(time.RFC3339)
	}

	if buf, err = ffjson.Marshal(&status); err != nil {
		d.log.Printf("[ERROR] Cannot serialize session status: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleCmdStatus(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		buf []byte
		up  *scheduler.Upcoming
	)

	if up, err = d.sched.NextSystemAlarm(); err != nil {
		d.log.Printf("[ERROR] Cannot determine next Alarm: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(up); err != nil {
		d.log.Printf("[ERROR] Cannot serialize next Alarm: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleUpcoming(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSettingsGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		db  *database.Database
		raw map[string]string
		buf []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if raw, err = db.SettingGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load settings: %s\n",
			err.Error())
	} else if buf, err = ffjson.Marshal(raw); err != nil {
		d.log.Printf("[ERROR] Cannot serialize settings: %s\n",
			err.Error())
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleSettingsGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleSettingsSet(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		db         *database.Database
		msg        string
		key, value string
		response   = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		goto SEND_RESPONSE
	}

	if key = r.PostFormValue("key"); key == "" {
		response.Message = "Missing setting key"
		goto SEND_RESPONSE
	}

	value = r.PostFormValue("value")

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.SettingSet(key, value); err != nil {
		msg = fmt.Sprintf("Cannot store setting %q: %s",
			key,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	} else if err = d.loadSettings(); err != nil {
		msg = fmt.Sprintf("Cannot refresh settings cache: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		goto SEND_RESPONSE
	}

	response.Message = "OK"
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response)
} // func (d *Daemon) handleSettingsSet(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response) {
	var (
		err error
		buf []byte
	)

	res.Timestamp = time.Now()

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response)

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64

// nextTimerID hands out the lowest free ID from the Timer ID space.
func (d *Daemon) nextTimerID(db *database.Database) (int64, error) {
	var (
		err  error
		tmrs []objects.Timer
		next = kind.MinTimerID
	)

	if tmrs, err = db.TimerGetAll(); err != nil {
		return 0, err
	}

	for idx := range tmrs {
		if tmrs[idx].ID >= next {
			next = tmrs[idx].ID + 1
		}
	}

	return next, nil
} // func (d *Daemon) nextTimerID(db *database.Database) (int64, error)
