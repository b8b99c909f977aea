// /home/krylon/go/src/github.com/blicero/wecker/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 22:40:12 krylon>

// Package database provides the persistence layer of the application.
// It stores Alarms, Groups, Timers, queued Interruptions, and the
// global settings in an SQLite database.
//
// The rest of the application treats the store as eventually
// consistent: in-memory state is authoritative, writes that fail are
// logged and retried, they never block a session transition.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/database/query"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/objects/kind"
	"github.com/blicero/wecker/objects/speech"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction
// failed because there is already one in progress.
var ErrTxInProgress = fmt.Errorf("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = fmt.Errorf("There is no transaction in progress")

// If a query returns an error and the error text is matched by this
// regex, we consider the error as transient and try again after a
// short delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a failed
// database operation.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database wraps a database connection and associated state.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does
// not exist already, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	// I wonder if would make more snese to panic() if something goes
	// wrong, because such a failure is highly unusual.
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		ok   bool
		err  error
	)

	if stmt, ok = db.queries[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start
// one, while another transaction is already in progress will yield
// ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Cannot start transaction: %s\n",
				err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) Begin() error

// Commit ends the active transaction, making any changes made during
// that transaction permanent and visible to other connections.
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

COMMIT_TX:
	if err = db.tx.Commit(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto COMMIT_TX
		}

		db.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if err = db.tx.Rollback(); err != nil {
		db.log.Printf("[ERROR] Cannot roll back transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// timeToStamp converts a timestamp to Unix seconds for storage; the
// zero Time maps to 0.
func timeToStamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.Unix()
} // func timeToStamp(t time.Time) int64

// stampToTime is the inverse of timeToStamp.
func stampToTime(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}

	return time.Unix(s, 0)
} // func stampToTime(s int64) time.Time

////////////////////////////////////////////////////////////////////////
// Groups //////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// GroupAdd adds a Group to the database, the ID of the newly inserted
// record is stored in the object.
func (db *Database) GroupAdd(g *objects.Group) error {
	const qid query.ID = query.GroupAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Error starting transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	if g.UUID == "" {
		g.UUID = common.GetUUID()
	}
	g.Changed = time.Now()

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if res, err = stmt.Exec(
		g.Name,
		g.OffsetMinutes,
		timeToStamp(g.SkippedUntil),
		g.UUID,
		g.Changed.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Group %q to database: %s\n",
			g.Name,
			err.Error())
		return err
	}

	if g.ID, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new Group %q: %s\n",
			g.Name,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) GroupAdd(g *objects.Group) error

// GroupUpdate updates a Group's name and offset.
func (db *Database) GroupUpdate(g *objects.Group, name string, offsetMinutes int) error {
	var err error

	if err = db.execMutation(query.GroupUpdate, name, offsetMinutes, time.Now().Unix(), g.ID); err != nil {
		return err
	}

	g.Name = name
	g.OffsetMinutes = offsetMinutes
	return nil
} // func (db *Database) GroupUpdate(g *objects.Group, name string, offsetMinutes int) error

// GroupSetSkip sets a Group's skip stamp.
func (db *Database) GroupSetSkip(g *objects.Group, until time.Time) error {
	var err error

	if err = db.execMutation(query.GroupSetSkip, timeToStamp(until), time.Now().Unix(), g.ID); err != nil {
		return err
	}

	g.SkippedUntil = until
	return nil
} // func (db *Database) GroupSetSkip(g *objects.Group, until time.Time) error

// GroupDelete removes a Group from the database. Member Alarms are not
// touched, they fall back to a zero offset.
func (db *Database) GroupDelete(g *objects.Group) error {
	return db.execMutation(query.GroupDelete, g.ID)
} // func (db *Database) GroupDelete(g *objects.Group) error

// GroupGetAll loads all Groups from the database.
func (db *Database) GroupGetAll() ([]objects.Group, error) {
	const qid query.ID = query.GroupGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Groups: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var groups = make([]objects.Group, 0, 8)

	for rows.Next() {
		var (
			g            objects.Group
			skip, change int64
		)

		if err = rows.Scan(
			&g.ID,
			&g.Name,
			&g.OffsetMinutes,
			&skip,
			&g.UUID,
			&change); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		g.SkippedUntil = stampToTime(skip)
		g.Changed = time.Unix(change, 0)
		groups = append(groups, g)
	}

	return groups, nil
} // func (db *Database) GroupGetAll() ([]objects.Group, error)

// GroupGetByID looks up a Group by its ID, returning nil if it does
// not exist.
func (db *Database) GroupGetByID(id int64) (*objects.Group, error) {
	const qid query.ID = query.GroupGetByID
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Group %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			g            = objects.Group{ID: id}
			skip, change int64
		)

		if err = rows.Scan(
			&g.Name,
			&g.OffsetMinutes,
			&skip,
			&g.UUID,
			&change); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		g.SkippedUntil = stampToTime(skip)
		g.Changed = time.Unix(change, 0)
		return &g, nil
	}

	return nil, nil
} // func (db *Database) GroupGetByID(id int64) (*objects.Group, error)

////////////////////////////////////////////////////////////////////////
// Alarms //////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// AlarmAdd adds an Alarm to the database. If the Alarm's ID is zero,
// the database assigns one, otherwise the caller-chosen ID is kept.
func (db *Database) AlarmAdd(a *objects.Alarm) error {
	const qid query.ID = query.AlarmAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
		res    sql.Result
		rawID  interface{}
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Error starting transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	if a.UUID == "" {
		a.UUID = common.GetUUID()
	}
	a.Changed = time.Now()

	if a.ID != 0 {
		rawID = a.ID
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if res, err = stmt.Exec(
		rawID,
		a.GroupID,
		a.Label,
		a.Hour,
		a.Minute,
		a.Days.Bitfield(),
		a.Enabled,
		a.SelfDestruct,
		a.SnoozeMinutes,
		a.MaxSnoozes,
		a.AutoStopMinutes,
		a.Sound,
		a.Volume,
		a.FadeInSeconds,
		a.Vibrate,
		a.Speech,
		a.UUID,
		a.Changed.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Alarm %q to database: %s\n",
			a.Label,
			err.Error())
		return err
	}

	if a.ID == 0 {
		if a.ID, err = res.LastInsertId(); err != nil {
			db.log.Printf("[ERROR] Cannot get ID of new Alarm %q: %s\n",
				a.Label,
				err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) AlarmAdd(a *objects.Alarm) error

// AlarmUpdate writes an Alarm's user-editable fields to the database.
// Transient state (snooze, override, skip, counters) is updated through
// the dedicated methods.
func (db *Database) AlarmUpdate(a *objects.Alarm) error {
	a.Changed = time.Now()

	return db.execMutation(query.AlarmUpdate,
		a.GroupID,
		a.Label,
		a.Hour,
		a.Minute,
		a.Days.Bitfield(),
		a.Enabled,
		a.SelfDestruct,
		a.SnoozeMinutes,
		a.MaxSnoozes,
		a.AutoStopMinutes,
		a.Sound,
		a.Volume,
		a.FadeInSeconds,
		a.Vibrate,
		a.Speech,
		a.Changed.Unix(),
		a.ID)
} // func (db *Database) AlarmUpdate(a *objects.Alarm) error

// AlarmSetEnabled sets an Alarm's enabled flag.
func (db *Database) AlarmSetEnabled(a *objects.Alarm, enabled bool) error {
	var err error

	if err = db.execMutation(query.AlarmSetEnabled, enabled, time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.Enabled = enabled
	return nil
} // func (db *Database) AlarmSetEnabled(a *objects.Alarm, enabled bool) error

// AlarmSetSnooze sets an Alarm's snooze stamp. The zero Time clears it.
func (db *Database) AlarmSetSnooze(a *objects.Alarm, until time.Time) error {
	var err error

	if err = db.execMutation(query.AlarmSetSnooze, timeToStamp(until), time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.SnoozeUntil = until
	return nil
} // func (db *Database) AlarmSetSnooze(a *objects.Alarm, until time.Time) error

// AlarmSetSnoozeCount sets an Alarm's snooze counter.
func (db *Database) AlarmSetSnoozeCount(a *objects.Alarm, cnt int) error {
	var err error

	if err = db.execMutation(query.AlarmSetSnoozeCount, cnt, time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.SnoozeCount = cnt
	return nil
} // func (db *Database) AlarmSetSnoozeCount(a *objects.Alarm, cnt int) error

// AlarmSetOverride sets an Alarm's one-shot override time. The zero
// Time clears it.
func (db *Database) AlarmSetOverride(a *objects.Alarm, at time.Time) error {
	var err error

	if err = db.execMutation(query.AlarmSetOverride, timeToStamp(at), time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.Override = at
	return nil
} // func (db *Database) AlarmSetOverride(a *objects.Alarm, at time.Time) error

// AlarmSetSkip sets an Alarm's skip stamp.
func (db *Database) AlarmSetSkip(a *objects.Alarm, until time.Time) error {
	var err error

	if err = db.execMutation(query.AlarmSetSkip, timeToStamp(until), time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.SkippedUntil = until
	return nil
} // func (db *Database) AlarmSetSkip(a *objects.Alarm, until time.Time) error

// AlarmSetLastTrigger stamps the instant the Alarm last went off.
func (db *Database) AlarmSetLastTrigger(a *objects.Alarm, at time.Time) error {
	var err error

	if err = db.execMutation(query.AlarmSetLastTrigger, timeToStamp(at), time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.LastTrigger = at
	return nil
} // func (db *Database) AlarmSetLastTrigger(a *objects.Alarm, at time.Time) error

// AlarmClearTransient clears an Alarm's snooze, override, and snooze
// counter in one go.
func (db *Database) AlarmClearTransient(a *objects.Alarm) error {
	var err error

	if err = db.execMutation(query.AlarmClearTransient, time.Now().Unix(), a.ID); err != nil {
		return err
	}

	a.SnoozeUntil = time.Time{}
	a.Override = time.Time{}
	a.SnoozeCount = 0
	return nil
} // func (db *Database) AlarmClearTransient(a *objects.Alarm) error

// AlarmDelete removes an Alarm from the database.
func (db *Database) AlarmDelete(a *objects.Alarm) error {
	return db.execMutation(query.AlarmDelete, a.ID)
} // func (db *Database) AlarmDelete(a *objects.Alarm) error

func (db *Database) alarmFromRow(rows *sql.Rows, a *objects.Alarm, withID, withGroup bool) error {
	var (
		err                                          error
		days                                         uint8
		speechMode                                   uint8
		override, snooze, skip, lastTrigger, changed int64
		fields                                       = make([]interface{}, 0, 23)
	)

	if withID {
		fields = append(fields, &a.ID)
	}
	if withGroup {
		fields = append(fields, &a.GroupID)
	}

	fields = append(fields,
		&a.Label,
		&a.Hour,
		&a.Minute,
		&days,
		&a.Enabled,
		&a.SelfDestruct,
		&override,
		&snooze,
		&skip,
		&a.SnoozeMinutes,
		&a.MaxSnoozes,
		&a.AutoStopMinutes,
		&a.SnoozeCount,
		&lastTrigger,
		&a.Sound,
		&a.Volume,
		&a.FadeInSeconds,
		&a.Vibrate,
		&speechMode,
		&a.UUID,
		&changed)

	if err = rows.Scan(fields...); err != nil {
		db.log.Printf("[ERROR] Cannot scan row: %s\n",
			err.Error())
		return err
	}

	a.Days = objects.WeekdaysFromBitfield(days)
	a.Speech = speech.Mode(speechMode)
	a.Override = stampToTime(override)
	a.SnoozeUntil = stampToTime(snooze)
	a.SkippedUntil = stampToTime(skip)
	a.LastTrigger = stampToTime(lastTrigger)
	a.Changed = time.Unix(changed, 0)

	return nil
} // func (db *Database) alarmFromRow(...) error

// AlarmGetAll loads all Alarms from the database.
func (db *Database) AlarmGetAll() ([]objects.Alarm, error) {
	const qid query.ID = query.AlarmGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Alarms: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var alarms = make([]objects.Alarm, 0, 16)

	for rows.Next() {
		var a objects.Alarm

		if err = db.alarmFromRow(rows, &a, true, true); err != nil {
			return nil, err
		}

		alarms = append(alarms, a)
	}

	return alarms, nil
} // func (db *Database) AlarmGetAll() ([]objects.Alarm, error)

// AlarmGetByGroup loads all Alarms belonging to the given Group.
func (db *Database) AlarmGetByGroup(g *objects.Group) ([]objects.Alarm, error) {
	const qid query.ID = query.AlarmGetByGroup
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(g.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Alarms of Group %d: %s\n",
			g.ID,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var alarms = make([]objects.Alarm, 0, 8)

	for rows.Next() {
		var a = objects.Alarm{GroupID: g.ID}

		if err = db.alarmFromRow(rows, &a, true, false); err != nil {
			return nil, err
		}

		alarms = append(alarms, a)
	}

	return alarms, nil
} // func (db *Database) AlarmGetByGroup(g *objects.Group) ([]objects.Alarm, error)

// AlarmGetByID looks up an Alarm by its ID, returning nil if it does
// not exist.
func (db *Database) AlarmGetByID(id int64) (*objects.Alarm, error) {
	const qid query.ID = query.AlarmGetByID
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Alarm %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var a = objects.Alarm{ID: id}

		if err = db.alarmFromRow(rows, &a, false, true); err != nil {
			return nil, err
		}

		return &a, nil
	}

	return nil, nil
} // func (db *Database) AlarmGetByID(id int64) (*objects.Alarm, error)

////////////////////////////////////////////////////////////////////////
// Timers //////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// TimerAdd adds a Timer to the database. The caller must have assigned
// an ID from the Timer ID space already.
func (db *Database) TimerAdd(t *objects.Timer) error {
	if t.ID < kind.MinTimerID {
		return fmt.Errorf("Invalid Timer ID %d (must be >= %d)",
			t.ID,
			kind.MinTimerID)
	}

	if t.UUID == "" {
		t.UUID = common.GetUUID()
	}
	t.Changed = time.Now()

	return db.execMutation(query.TimerAdd,
		t.ID,
		t.Label,
		t.EndTime.Unix(),
		int64(t.Duration/time.Millisecond),
		t.UUID,
		t.Changed.Unix())
} // func (db *Database) TimerAdd(t *objects.Timer) error

// TimerSetEnd updates a Timer's end time and total duration.
func (db *Database) TimerSetEnd(t *objects.Timer, end time.Time, total time.Duration) error {
	var err error

	if err = db.execMutation(query.TimerSetEnd,
		end.Unix(),
		int64(total/time.Millisecond),
		time.Now().Unix(),
		t.ID); err != nil {
		return err
	}

	t.EndTime = end
	t.Duration = total
	return nil
} // func (db *Database) TimerSetEnd(t *objects.Timer, end time.Time, total time.Duration) error

// TimerDelete removes a Timer from the database.
func (db *Database) TimerDelete(t *objects.Timer) error {
	return db.execMutation(query.TimerDelete, t.ID)
} // func (db *Database) TimerDelete(t *objects.Timer) error

// TimerGetAll loads all Timers, ordered by end time.
func (db *Database) TimerGetAll() ([]objects.Timer, error) {
	const qid query.ID = query.TimerGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Timers: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var timers = make([]objects.Timer, 0, 4)

	for rows.Next() {
		var (
			t             objects.Timer
			end, dur, chg int64
		)

		if err = rows.Scan(
			&t.ID,
			&t.Label,
			&end,
			&dur,
			&t.UUID,
			&chg); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		t.EndTime = time.Unix(end, 0)
		t.Duration = time.Duration(dur) * time.Millisecond
		t.Changed = time.Unix(chg, 0)
		timers = append(timers, t)
	}

	return timers, nil
} // func (db *Database) TimerGetAll() ([]objects.Timer, error)

// TimerGetByID looks up a Timer by its ID, returning nil if it does
// not exist.
func (db *Database) TimerGetByID(id int64) (*objects.Timer, error) {
	const qid query.ID = query.TimerGetByID
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Timer %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			t             = objects.Timer{ID: id}
			end, dur, chg int64
		)

		if err = rows.Scan(
			&t.Label,
			&end,
			&dur,
			&t.UUID,
			&chg); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		t.EndTime = time.Unix(end, 0)
		t.Duration = time.Duration(dur) * time.Millisecond
		t.Changed = time.Unix(chg, 0)
		return &t, nil
	}

	return nil, nil
} // func (db *Database) TimerGetByID(id int64) (*objects.Timer, error)

////////////////////////////////////////////////////////////////////////
// Interruptions ///////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// InterruptionAdd records a preempted session on the waiting queue.
// Adding an entry for a (target, kind) pair that is already queued
// replaces the old entry.
func (db *Database) InterruptionAdd(i *objects.Interruption) error {
	return db.execMutation(query.InterruptionAdd,
		i.TargetID,
		i.Kind,
		i.Label,
		i.QueuedAt.Unix())
} // func (db *Database) InterruptionAdd(i *objects.Interruption) error

// InterruptionDelete removes the queue entry for the given target, if
// one exists.
func (db *Database) InterruptionDelete(targetID int64, k kind.Kind) error {
	return db.execMutation(query.InterruptionDelete, targetID, k)
} // func (db *Database) InterruptionDelete(targetID int64, k kind.Kind) error

// InterruptionGetAll loads the waiting queue in FIFO order.
func (db *Database) InterruptionGetAll() ([]objects.Interruption, error) {
	const qid query.ID = query.InterruptionGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load Interruptions: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var items = make([]objects.Interruption, 0, 4)

	for rows.Next() {
		var (
			i      objects.Interruption
			k      uint8
			queued int64
		)

		if err = rows.Scan(
			&i.ID,
			&i.TargetID,
			&k,
			&i.Label,
			&queued); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		i.Kind = kind.Kind(k)
		i.QueuedAt = time.Unix(queued, 0)
		items = append(items, i)
	}

	return items, nil
} // func (db *Database) InterruptionGetAll() ([]objects.Interruption, error)

////////////////////////////////////////////////////////////////////////
// Settings ////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// SettingSet stores a single setting.
func (db *Database) SettingSet(key, value string) error {
	return db.execMutation(query.SettingSet, key, value)
} // func (db *Database) SettingSet(key, value string) error

// SettingGetAll loads the raw key/value pairs from the setting table.
func (db *Database) SettingGetAll() (map[string]string, error) {
	const qid query.ID = query.SettingGetAll
	var (
		err  error
		stmt *sql.Stmt
		rows *sql.Rows
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot load settings: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var raw = make(map[string]string)

	for rows.Next() {
		var key, value string

		if err = rows.Scan(&key, &value); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		raw[key] = value
	}

	return raw, nil
} // func (db *Database) SettingGetAll() (map[string]string, error)

// Settings loads the global settings as a snapshot, falling back to
// the defaults for anything missing.
func (db *Database) Settings() (objects.Settings, error) {
	var (
		err error
		raw map[string]string
	)

	if raw, err = db.SettingGetAll(); err != nil {
		return objects.DefaultSettings(), err
	}

	return objects.SettingsFromMap(raw), nil
} // func (db *Database) Settings() (objects.Settings, error)

////////////////////////////////////////////////////////////////////////
// Helpers /////////////////////////////////////////////////////////////
////////////////////////////////////////////////////////////////////////

// execMutation runs a write query that needs no result beyond
// success/failure, wrapped in an ad-hoc transaction unless one is
// already in progress.
func (db *Database) execMutation(qid query.ID, args ...interface{}) error {
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Error starting transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			var err2 error
			if status {
				if err2 = tx.Commit(); err2 != nil {
					db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
						err2.Error())
				}
			} else if err2 = tx.Rollback(); err2 != nil {
				db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
					err2.Error())
			}
		}()
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(args...); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot execute query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) execMutation(qid query.ID, args ...interface{}) error
