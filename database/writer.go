// /home/krylon/go/src/github.com/blicero/wecker/database/writer.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 23:05:12 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/cenkalti/backoff"
)

// writerQueueDepth is the capacity of the Writer's job queue. If the
// queue is full, Persist drops the job rather than block the caller.
const writerQueueDepth = 64

// writerMaxRetries bounds the retries per job, so one wedged write
// cannot stall the queue forever.
const writerMaxRetries = 5

type writeJob struct {
	desc string
	op   func(db *Database) error
}

// Writer is the write-behind queue for persistence updates. Session
// transitions hand their store writes to the Writer and move on, the
// in-memory state stays authoritative whether or not the write ever
// succeeds. Failed writes are retried with exponential backoff.
type Writer struct {
	log    *log.Logger
	pool   *Pool
	queue  chan writeJob
	lock   sync.RWMutex
	active bool
}

// NewWriter creates a Writer on top of the given Pool and starts its
// worker.
func NewWriter(pool *Pool) (*Writer, error) {
	var (
		err error
		w   = &Writer{
			pool:   pool,
			queue:  make(chan writeJob, writerQueueDepth),
			active: true,
		}
	)

	if w.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	go w.loop()

	return w, nil
} // func NewWriter(pool *Pool) (*Writer, error)

// IsAlive returns true until the Writer has been stopped.
func (w *Writer) IsAlive() bool {
	w.lock.RLock()
	var alive = w.active
	w.lock.RUnlock()
	return alive
} // func (w *Writer) IsAlive() bool

// Stop tells the Writer's worker to drain the queue and quit.
func (w *Writer) Stop() {
	w.lock.Lock()
	if w.active {
		w.active = false
		close(w.queue)
	}
	w.lock.Unlock()
} // func (w *Writer) Stop()

// Persist enqueues a store write. It never blocks; if the queue is
// full, the job is dropped with an error logged, and the caller's
// in-memory state remains the source of truth until the next mutation
// gets written.
func (w *Writer) Persist(desc string, op func(db *Database) error) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	if !w.active {
		w.log.Printf("[ERROR] Writer is stopped, dropping write %q\n",
			desc)
		return
	}

	select {
	case w.queue <- writeJob{desc: desc, op: op}:
		// ok
	default:
		w.log.Printf("[ERROR] Write queue is full, dropping write %q\n",
			desc)
	}
} // func (w *Writer) Persist(desc string, op func(db *Database) error)

func (w *Writer) loop() {
	defer w.log.Println("[TRACE] Writer is shutting down")

	for job := range w.queue {
		var (
			err error
			db  = w.pool.Get()
		)

		if db == nil {
			w.log.Printf("[ERROR] No database connection, dropping write %q\n",
				job.desc)
			continue
		}

		var strategy = backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			writerMaxRetries)

		if err = backoff.Retry(func() error { return job.op(db) }, strategy); err != nil {
			w.log.Printf("[ERROR] Write %q failed permanently: %s\n",
				job.desc,
				err.Error())
		}

		w.pool.Put(db)
	}
} // func (w *Writer) loop()
