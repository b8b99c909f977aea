// /home/krylon/go/src/github.com/blicero/wecker/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 03:04:51 krylon>

package backend

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/blicero/wecker/common"
	"github.com/blicero/wecker/objects"
	"github.com/blicero/wecker/wakeup"
	"github.com/pquerna/ffjson/ffjson"
)

var back *Daemon

var testAddr = fmt.Sprintf("[::1]:%d",
	10000+rand.Intn(10000))

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/wecker_backend_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot create BaseDir %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	}

	result = m.Run()

	if result == 0 {
		os.RemoveAll(baseDir) // nolint: errcheck
	} else {
		fmt.Printf(">>> Log files can be found in %s\n",
			baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func TestSummon(t *testing.T) {
	var err error

	if back, err = Summon(testAddr); err != nil {
		back = nil
		t.Fatalf("Cannot summon Daemon: %s",
			err.Error())
	} else if !back.IsAlive() {
		back = nil
		t.Fatal("Freshly summoned Daemon is not alive")
	}
} // func TestSummon(t *testing.T)

func TestSettingsCached(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var s = back.Settings()

	if s.SnoozeMinutes <= 0 {
		t.Errorf("Settings have an invalid snooze duration: %d",
			s.SnoozeMinutes)
	}
} // func TestSettingsCached(t *testing.T)

// apiCall posts to the Daemon's command interface and decodes the
// Response object.
func apiCall(t *testing.T, path string, values url.Values) *objects.Response {
	t.Helper()

	var (
		err   error
		body  []byte
		res   *http.Response
		reply objects.Response
	)

	if res, err = http.PostForm(fmt.Sprintf("http://%s%s", testAddr, path), values); err != nil {
		t.Fatalf("Cannot POST to %s: %s",
			path,
			err.Error())
	}

	defer res.Body.Close() // nolint: errcheck

	if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read response from %s: %s",
			path,
			err.Error())
	} else if err = ffjson.Unmarshal(body, &reply); err != nil {
		t.Fatalf("Cannot parse response from %s: %s",
			path,
			err.Error())
	}

	return &reply
} // func apiCall(t *testing.T, path string, values url.Values) *objects.Response

// apiPostJSON posts a JSON body and decodes the Response object.
func apiPostJSON(t *testing.T, path string, payload interface{}) *objects.Response {
	t.Helper()

	var (
		err       error
		buf, body []byte
		res       *http.Response
		reply     objects.Response
	)

	if buf, err = ffjson.Marshal(payload); err != nil {
		t.Fatalf("Cannot serialize payload for %s: %s",
			path,
			err.Error())
	}

	defer ffjson.Pool(buf)

	if res, err = http.Post(fmt.Sprintf("http://%s%s", testAddr, path), "application/json", bytes.NewReader(buf)); err != nil {
		t.Fatalf("Cannot POST to %s: %s",
			path,
			err.Error())
	}

	defer res.Body.Close() // nolint: errcheck

	if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read response from %s: %s",
			path,
			err.Error())
	} else if err = ffjson.Unmarshal(body, &reply); err != nil {
		t.Fatalf("Cannot parse response from %s: %s",
			path,
			err.Error())
	}

	return &reply
} // func apiPostJSON(t *testing.T, path string, payload interface{}) *objects.Response

// Editing a snoozed Alarm must not shake off the snooze: the wake-up
// stays armed for the snooze instant, not the regular occurrence.
func TestUpdateKeepsSnooze(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err   error
		id    int64
		reply *objects.Response
		when  = time.Now().Add(time.Hour * 2)
		a     = objects.Alarm{
			Label:   "Kaffee",
			Hour:    when.Hour(),
			Minute:  when.Minute(),
			Days:    objects.Weekdays{true, true, true, true, true, true, true},
			Enabled: true,
		}
	)

	if reply = apiPostJSON(t, "/alarm/add", &a); !reply.Status {
		t.Fatalf("Adding Alarm failed: %s", reply.Message)
	} else if id, err = strconv.ParseInt(reply.Message, 10, 64); err != nil {
		t.Fatalf("Response to adding an Alarm should carry its ID, not %q",
			reply.Message)
	}

	var idstr = strconv.FormatInt(id, 10)

	if reply = apiCall(t, "/cmd/ring", url.Values{"id": []string{idstr}}); !reply.Status {
		t.Fatalf("Ringing Alarm %d failed: %s", id, reply.Message)
	} else if reply = apiCall(t, "/cmd/snooze", url.Values{"minutes": []string{"15"}}); !reply.Status {
		t.Fatalf("Snoozing Alarm %d failed: %s", id, reply.Message)
	}

	a.ID = id
	a.Label = "Tee"

	if reply = apiPostJSON(t, fmt.Sprintf("/alarm/%d/update", id), &a); !reply.Status {
		t.Fatalf("Updating Alarm %d failed: %s", id, reply.Message)
	}

	var (
		srv   = back.timers.(*wakeup.InProcess)
		armed time.Time
		ok    bool
	)

	if armed, ok = srv.ArmedAt(id); !ok {
		t.Fatalf("No wake-up is armed for Alarm %d", id)
	} else if left := time.Until(armed); left < time.Minute*14 || left > time.Minute*16 {
		t.Errorf("Alarm %d is armed for %s, the snooze instant should be about 15 minutes out",
			id,
			armed.Format(common.TimestampFormat))
	}

	if reply = apiCall(t, fmt.Sprintf("/alarm/%d/delete", id), nil); !reply.Status {
		t.Errorf("Cannot clean up Alarm %d: %s", id, reply.Message)
	}
} // func TestUpdateKeepsSnooze(t *testing.T)
