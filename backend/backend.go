// /home/krylon/go/src/github.com/blicero/wecker/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 02:10:44 krylon>

// Package backend ties the pieces together: it owns the database pool,
// the wake-up service, the Scheduler, the session Controller and the
// effectors, restores persisted state after a restart, and exposes the
// whole thing over HTTP.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/database"
	"github.com/blicero/wecker/effector"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/scheduler"
	"github.com/blicero/wecker/session"
	"github.com/blicero/wecker/wakeup"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const poolSize = 4

// Daemon is the centerpiece of the backend, coordinating between the
// database, the Scheduler, the session Controller, and the clients.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	writer     *database.Writer
	timers     wakeup.Service
	sched      *scheduler.Scheduler
	ctl        *session.Controller
	render     *Renderer
	web        http.Server
	router     *mux.Router
	dnssd      *zeroconf.Server
	hostname   string
	listenAddr string
	lock       sync.RWMutex
	active     bool
	idLock     sync.Mutex
	idCnt      int64
	setLock    sync.RWMutex
	settings   objects.Settings
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is
// required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.writer, err = database.NewWriter(d.pool); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database writer: %s\n",
			err.Error())
		return nil, err
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		d.hostname = "localhost"
	}

	if d.render, err = NewRenderer(); err != nil {
		// Running headless is fine, the daemon just rings
		// without visual notifications.
		d.log.Printf("[INFO] No notification renderer available: %s\n",
			err.Error())
		d.render = nil
	}

	if err = d.loadSettings(); err != nil {
		return nil, err
	}

	if d.timers, err = wakeup.NewInProcess(d.onWake); err != nil {
		return nil, err
	}

	var (
		indicator scheduler.Indicator
		notifier  session.Notifier
	)
	if d.render != nil {
		indicator = d.render
		notifier = d.render
	}

	if d.sched, err = scheduler.New(d.pool, d.timers, indicator, d.Settings); err != nil {
		return nil, err
	}

	var bundle *effector.Bundle
	if bundle, err = d.makeBundle(); err != nil {
		return nil, err
	}

	if d.ctl, err = session.New(d.pool, d.writer, d.sched, bundle, notifier, d.Settings); err != nil {
		return nil, err
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		// Not fatal, clients can still connect by address.
		d.log.Printf("[ERROR] Cannot register with DNS-SD: %s\n",
			err.Error())
	}

	if err = d.restore(); err != nil {
		d.log.Printf("[ERROR] Cannot restore persisted state: %s\n",
			err.Error())
	}

	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// makeBundle assembles the effector Bundle. A missing audio device or
// session bus downgrades the Bundle rather than failing the Daemon.
func (d *Daemon) makeBundle() (*effector.Bundle, error) {
	var (
		err     error
		audio   *effector.OtoAudio
		vib     *effector.PatternVibrator
		speaker *effector.BusSpeaker
		a       effector.Audio
		v       effector.Vibrator
		s       effector.Speaker
	)

	if audio, err = effector.NewOtoAudio(); err != nil {
		d.log.Printf("[ERROR] Cannot initialize audio: %s\n",
			err.Error())
	} else {
		a = audio
	}

	if vib, err = effector.NewPatternVibrator(); err != nil {
		d.log.Printf("[ERROR] Cannot initialize vibrator: %s\n",
			err.Error())
	} else {
		v = vib
	}

	if speaker, err = effector.NewBusSpeaker(); err != nil {
		d.log.Printf("[INFO] No speech output available: %s\n",
			err.Error())
	} else {
		s = speaker
	}

	return effector.NewBundle(a, v, s)
} // func (d *Daemon) makeBundle() (*effector.Bundle, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if d.dnssd != nil {
		d.dnssd.Shutdown()
	}

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.ctl.Close()
	d.writer.Stop()

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

// Settings returns the cached snapshot of the global settings.
func (d *Daemon) Settings() objects.Settings {
	d.setLock.RLock()
	var s = d.settings
	d.setLock.RUnlock()
	return s
} // func (d *Daemon) Settings() objects.Settings

// loadSettings refreshes the settings cache from the database.
func (d *Daemon) loadSettings() error {
	var (
		err error
		db  = d.pool.Get()
		s   objects.Settings
	)

	if db == nil {
		return fmt.Errorf("no database connection available")
	}
	defer d.pool.Put(db)

	if s, err = db.Settings(); err != nil {
		d.log.Printf("[ERROR] Cannot load settings: %s\n",
			err.Error())
		return err
	}

	d.setLock.Lock()
	d.settings = s
	d.setLock.Unlock()
	return nil
} // func (d *Daemon) loadSettings() error

// onWake is the callback the wake-up service invokes when an armed
// timer fires.
func (d *Daemon) onWake(id int64, k kind.Kind) {
	if id == scheduler.LeadID {
		d.sched.HandleLead()
		return
	}

	var (
		err error
		db  = d.pool.Get()
		r   objects.Ringer
	)

	if db == nil {
		d.log.Printf("[ERROR] No database connection to handle wake-up %d\n",
			id)
		return
	}
	defer d.pool.Put(db)

	switch k {
	case kind.Alarm:
		var a *objects.Alarm
		if a, err = db.AlarmGetByID(id); err != nil || a == nil {
			d.log.Printf("[INFO] Alarm %d is gone, ignoring wake-up\n",
				id)
			return
		}
		r = a
	case kind.Timer:
		var t *objects.Timer
		if t, err = db.TimerGetByID(id); err != nil || t == nil {
			d.log.Printf("[INFO] Timer %d is gone, ignoring wake-up\n",
				id)
			return
		}
		r = t
	}

	if err = d.ctl.StartOrQueue(r); err != nil {
		d.log.Printf("[ERROR] Cannot start session for %s %d: %s\n",
			k,
			id,
			err.Error())
	}
} // func (d *Daemon) onWake(id int64, k kind.Kind)

// restore re-arms all enabled Alarms and surviving Timers after a
// restart and resurrects queued ringing sessions.
func (d *Daemon) restore() error {
	var (
		err    error
		db     = d.pool.Get()
		now    = time.Now()
		groups []objects.Group
		alarms []objects.Alarm
		tmrs   []objects.Timer
		queue  []objects.Interruption
	)

	if db == nil {
		return fmt.Errorf("no database connection available")
	}
	defer d.pool.Put(db)

	if groups, err = db.GroupGetAll(); err != nil {
		return err
	} else if alarms, err = db.AlarmGetAll(); err != nil {
		return err
	} else if tmrs, err = db.TimerGetAll(); err != nil {
		return err
	} else if queue, err = db.InterruptionGetAll(); err != nil {
		return err
	}

	var gmap = make(map[int64]*objects.Group, len(groups))
	for idx := range groups {
		gmap[groups[idx].ID] = &groups[idx]
	}

	for idx := range alarms {
		var a = &alarms[idx]
		if !a.Enabled {
			continue
		}

		if err = d.sched.Schedule(a, gmap[a.GroupID]); err != nil {
			d.log.Printf("[ERROR] Cannot re-arm Alarm %d: %s\n",
				a.ID,
				err.Error())
		}
	}

	for idx := range tmrs {
		var t = &tmrs[idx]

		if t.EndTime.After(now) {
			if err = d.sched.ScheduleTimer(t); err != nil {
				d.log.Printf("[ERROR] Cannot re-arm Timer %d: %s\n",
					t.ID,
					err.Error())
			}
		} else {
			// The Timer expired while we were not running.
			d.log.Printf("[INFO] Timer %d ran out at %s, ringing now\n",
				t.ID,
				t.EndTime.Format(common.TimestampFormat))
			if err = d.ctl.StartOrQueue(t); err != nil {
				d.log.Printf("[ERROR] Cannot ring Timer %d: %s\n",
					t.ID,
					err.Error())
			}
		}
	}

	if len(queue) > 0 {
		if err = d.ctl.Restore(queue); err != nil {
			d.log.Printf("[ERROR] Cannot restore session queue: %s\n",
				err.Error())
		}
	}

	return nil
} // func (d *Daemon) restore() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Command interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()
