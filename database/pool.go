// /home/krylon/go/src/github.com/blicero/wecker/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-29 22:51:40 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
)

// Pool is a pool of database connections.
type Pool struct {
	meta sync.Mutex
	log  *log.Logger
	pool []*Database
}

// NewPool creates a Pool of database connections with the given
// initial size.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			pool.log.Printf("[ERROR] Cannot open database %s: %s\n",
				common.DbPath,
				err.Error())
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a connection from the Pool. If the Pool is empty, a
// fresh connection is opened. On error, nil is returned, so the
// caller has to check.
func (p *Pool) Get() *Database {
	p.meta.Lock()

	if len(p.pool) > 0 {
		var db = p.pool[len(p.pool)-1]
		p.pool = p.pool[:len(p.pool)-1]
		p.meta.Unlock()
		return db
	}

	p.meta.Unlock()

	var (
		err error
		db  *Database
	)

	if db, err = Open(common.DbPath); err != nil {
		p.log.Printf("[ERROR] Cannot open database %s: %s\n",
			common.DbPath,
			err.Error())
		return nil
	}

	return db
} // func (p *Pool) Get() *Database

// Put returns a connection to the Pool.
func (p *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	p.meta.Lock()
	p.pool = append(p.pool, db)
	p.meta.Unlock()
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() error {
	p.meta.Lock()
	defer p.meta.Unlock()

	for _, db := range p.pool {
		if err := db.Close(); err != nil {
			p.log.Printf("[ERROR] Cannot close database connection: %s\n",
				err.Error())
			return err
		}
	}

	p.pool = p.pool[:0]
	return nil
} // func (p *Pool) Close() error
