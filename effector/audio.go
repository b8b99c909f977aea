// /home/krylon/go/src/github.com/blicero/wecker/effector/audio.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 00:41:55 krylon>

package effector

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/logdomain"
	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2
)

// The named alarm sounds are rendered as simple tones, each name maps
// to a frequency in Hz.
var soundFreq = map[string]float64{
	"classic": 880,
	"beep":    1000,
	"chime":   660,
	"gentle":  440,
}

const defaultFreq = 880

var (
	audioCtx     *oto.Context
	audioCtxOnce sync.Once
	audioCtxErr  error
)

func initAudioContext() {
	audioCtxOnce.Do(func() {
		var (
			op = &oto.NewContextOptions{
				SampleRate:   sampleRate,
				ChannelCount: channelCount,
				Format:       oto.FormatSignedInt16LE,
			}
			ready chan struct{}
		)

		if audioCtx, ready, audioCtxErr = oto.NewContext(op); audioCtxErr != nil {
			return
		}

		// Wait for the audio hardware to become available.
		<-ready
	})
} // func initAudioContext()

// toneReader produces an endless pulsed sine tone as 16 bit signed
// little-endian stereo samples.
type toneReader struct {
	freq float64
	pos  int64
}

func (t *toneReader) Read(buf []byte) (int, error) {
	const bytesPerSample = 2 * channelCount

	var cnt = len(buf) / bytesPerSample

	for idx := 0; idx < cnt; idx++ {
		var sample int16

		// Pulse the tone, half a second on, half a second off.
		if (t.pos/(sampleRate/2))%2 == 0 {
			var v = math.Sin(2 * math.Pi * t.freq * float64(t.pos) / sampleRate)
			sample = int16(v * math.MaxInt16)
		}

		for ch := 0; ch < channelCount; ch++ {
			var off = idx*bytesPerSample + ch*2
			buf[off] = byte(sample)
			buf[off+1] = byte(sample >> 8)
		}

		t.pos++
	}

	return cnt * bytesPerSample, nil
} // func (t *toneReader) Read(buf []byte) (int, error)

// OtoAudio renders alarm sounds through the system's audio hardware.
type OtoAudio struct {
	log    *log.Logger
	lock   sync.Mutex
	player *oto.Player
}

// NewOtoAudio creates an OtoAudio.
func NewOtoAudio() (*OtoAudio, error) {
	var (
		err error
		a   = new(OtoAudio)
	)

	if a.log, err = common.GetLogger(logdomain.Effector); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	}

	return a, nil
} // func NewOtoAudio() (*OtoAudio, error)

// Play starts looping the named sound at the given volume (0..1).
func (a *OtoAudio) Play(sound string, volume float64) error {
	initAudioContext()
	if audioCtxErr != nil {
		return audioCtxErr
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if a.player != nil {
		a.player.Close() // nolint: errcheck
		a.player = nil
	}

	var freq, ok = soundFreq[sound]
	if !ok {
		a.log.Printf("[DEBUG] Unknown sound %q, using default tone\n",
			sound)
		freq = defaultFreq
	}

	a.player = audioCtx.NewPlayer(&toneReader{freq: freq})
	a.player.SetVolume(volume)
	a.player.Play()

	return nil
} // func (a *OtoAudio) Play(sound string, volume float64) error

// SetVolume adjusts the playback volume (0..1).
func (a *OtoAudio) SetVolume(volume float64) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.player != nil {
		a.player.SetVolume(volume)
	}
} // func (a *OtoAudio) SetVolume(volume float64)

// Stop ends playback.
func (a *OtoAudio) Stop() {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.player != nil {
		if err := a.player.Close(); err != nil {
			a.log.Printf("[ERROR] Cannot close audio player: %s\n",
				err.Error())
		}
		a.player = nil
	}
} // func (a *OtoAudio) Stop()
