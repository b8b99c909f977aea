// /home/krylon/go/src/github.com/blicero/wecker/objects/response.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-27 21:18:29 krylon>

// Package objects provides the data types used by the application.
package objects

import "time"

//go:generate ffjson response.go

// Response is what the backend sends to a client after processing a
// request.
type Response struct {
	ID        int64
	Status    bool
	Message   string
	Timestamp time.Time
}
