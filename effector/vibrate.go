// /home/krylon/go/src/github.com/blicero/wecker/effector/vibrate.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 00:47:12 krylon>

package effector

import (
	"fmt"
	"log"
	"sync"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
)

// PatternVibrator is the Vibrator for machines without a vibration
// motor, i.e. pretty much anything this program runs on. It records
// the requested pattern and logs the transitions, so the rest of the
// pipeline can be exercised unchanged.
type PatternVibrator struct {
	log     *log.Logger
	lock    sync.Mutex
	pattern string
	running bool
}

// NewPatternVibrator creates a PatternVibrator.
func NewPatternVibrator() (*PatternVibrator, error) {
	var (
		err error
		v   = new(PatternVibrator)
	)

	if v.log, err = common.GetLogger(logdomain.Effector); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	return v, nil
} // func NewPatternVibrator() (*PatternVibrator, error)

// Start begins the given vibration pattern.
func (v *PatternVibrator) Start(pattern string) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.pattern = pattern
	v.running = true
	v.log.Printf("[DEBUG] Vibration pattern %q starts\n",
		pattern)
	return nil
} // func (v *PatternVibrator) Start(pattern string) error

// Stop ends the vibration.
func (v *PatternVibrator) Stop() {
	v.lock.Lock()
	defer v.lock.Unlock()

	if v.running {
		v.running = false
		v.log.Printf("[DEBUG] Vibration pattern %q stops\n",
			v.pattern)
	}
} // func (v *PatternVibrator) Stop()

// Running returns true while a pattern is active.
func (v *PatternVibrator) Running() bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.running
} // func (v *PatternVibrator) Running() bool
