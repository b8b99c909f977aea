// /home/krylon/go/src/github.com/blicero/wecker/effector/effector.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 00:33:19 krylon>

// Package effector drives the output side of a ringing session, i.e.
// sound, vibration, and spoken announcements. The individual effectors
// are isolated from one another, a failure in one must not keep the
// others from running.
package effector

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/blicero/wecker/objects/speech"
)

// duckFactor is the fraction of the target volume we play at while a
// spoken announcement is going on.
const duckFactor = 0.2

// fadeSteps is the number of volume increments during a fade-in.
const fadeSteps = 20

// Audio plays a named alarm sound in a loop until stopped.
type Audio interface {
	Play(sound string, volume float64) error
	SetVolume(volume float64)
	Stop()
}

// Vibrator runs a vibration pattern until stopped.
type Vibrator interface {
	Start(pattern string) error
	Stop()
}

// Speaker utters a spoken announcement.
type Speaker interface {
	Say(text string) error
}

// Params describes how a ringing session is to be rendered.
type Params struct {
	Label         string
	Sound         string
	Volume        int
	FadeInSeconds int
	Vibrate       bool
	Speech        speech.Mode
}

// Bundle coordinates the effectors for one ringing session at a time.
type Bundle struct {
	log     *log.Logger
	audio   Audio
	vib     Vibrator
	speaker Speaker
	clock   func() time.Time

	lock    sync.Mutex
	running bool
	ducked  bool
	target  float64
	cancel  chan struct{}
}

// NewBundle creates a Bundle from the given effectors, any of which
// may be nil.
func NewBundle(audio Audio, vib Vibrator, speaker Speaker) (*Bundle, error) {
	var (
		err error
		b   = &Bundle{
			audio:   audio,
			vib:     vib,
			speaker: speaker,
			clock:   time.Now,
		}
	)

	if b.log, err = common.GetLogger(logdomain.Effector); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	return b, nil
} // func NewBundle(audio Audio, vib Vibrator, speaker Speaker) (*Bundle, error)

// Start begins rendering a ringing session. A session already in
// progress is stopped first.
func (b *Bundle) Start(p Params) {
	b.Stop()

	b.lock.Lock()
	b.running = true
	b.ducked = false
	b.target = float64(p.Volume) / 100.0
	b.cancel = make(chan struct{})
	var cancel = b.cancel
	b.lock.Unlock()

	if b.audio != nil {
		var initial = b.target
		if p.FadeInSeconds > 0 {
			initial = b.target / fadeSteps
		}

		if err := b.audio.Play(p.Sound, initial); err != nil {
			b.log.Printf("[ERROR] Cannot start playback of %q: %s\n",
				p.Sound,
				err.Error())
		} else if p.FadeInSeconds > 0 {
			go b.fade(p.FadeInSeconds, cancel)
		}
	}

	if p.Vibrate && b.vib != nil {
		if err := b.vib.Start("default"); err != nil {
			b.log.Printf("[ERROR] Cannot start vibration: %s\n",
				err.Error())
		}
	}

	if p.Speech != speech.Off && b.speaker != nil {
		go b.announce(p, cancel)
	}
} // func (b *Bundle) Start(p Params)

// Stop ends the current ringing session, if any.
func (b *Bundle) Stop() {
	b.lock.Lock()
	if !b.running {
		b.lock.Unlock()
		return
	}

	b.running = false
	close(b.cancel)
	b.cancel = nil
	b.lock.Unlock()

	if b.audio != nil {
		b.audio.Stop()
	}
	if b.vib != nil {
		b.vib.Stop()
	}
} // func (b *Bundle) Stop()

// Active returns true while a session is being rendered.
func (b *Bundle) Active() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.running
} // func (b *Bundle) Active() bool

// Duck lowers the playback volume so a spoken announcement remains
// intelligible.
func (b *Bundle) Duck() {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.running || b.ducked {
		return
	}

	b.ducked = true
	if b.audio != nil {
		b.audio.SetVolume(b.target * duckFactor)
	}
} // func (b *Bundle) Duck()

// Restore undoes Duck.
func (b *Bundle) Restore() {
	b.lock.Lock()
	defer b.lock.Unlock()

	if !b.running || !b.ducked {
		return
	}

	b.ducked = false
	if b.audio != nil {
		b.audio.SetVolume(b.target)
	}
} // func (b *Bundle) Restore()

// fade ramps the playback volume up to the target over the given
// number of seconds.
func (b *Bundle) fade(seconds int, cancel <-chan struct{}) {
	var (
		interval = time.Duration(seconds) * time.Second / fadeSteps
		ticker   = time.NewTicker(interval)
	)

	defer ticker.Stop()

	for step := 2; step <= fadeSteps; step++ {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			b.lock.Lock()
			if b.running && !b.ducked && b.audio != nil {
				b.audio.SetVolume(b.target * float64(step) / fadeSteps)
			}
			b.lock.Unlock()
		}
	}
} // func (b *Bundle) fade(seconds int, cancel <-chan struct{})

// announce speaks the session label and current time, once or aligned
// to every minute boundary, depending on the Params.
func (b *Bundle) announce(p Params, cancel <-chan struct{}) {
	b.say(p.Label)

	if p.Speech != speech.EveryMinute {
		return
	}

	for {
		var delay = delayToNextMinute(b.clock())

		select {
		case <-cancel:
			return
		case <-time.After(delay):
			b.say(p.Label)
		}
	}
} // func (b *Bundle) announce(p Params, cancel <-chan struct{})

func (b *Bundle) say(label string) {
	var text = fmt.Sprintf("%s. It is %s.",
		label,
		b.clock().Format("15:04"))

	b.Duck()
	defer b.Restore()

	if err := b.speaker.Say(text); err != nil {
		b.log.Printf("[ERROR] Cannot speak announcement: %s\n",
			err.Error())
	}
} // func (b *Bundle) say(label string)

// delayToNextMinute returns the time remaining until the next full
// minute.
func delayToNextMinute(t time.Time) time.Duration {
	return t.Truncate(time.Minute).Add(time.Minute).Sub(t)
} // func delayToNextMinute(t time.Time) time.Duration
